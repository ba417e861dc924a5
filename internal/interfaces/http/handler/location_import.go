package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
	sheetimport "github.com/storefront/backend/internal/infrastructure/import"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// DefaultMaxImportFileSize bounds spreadsheet uploads when no limit is configured
const DefaultMaxImportFileSize int64 = 10 << 20

// LocationImportHandler handles bulk location imports from xlsx or csv files
type LocationImportHandler struct {
	BaseHandler
	importService *locationapp.ImportService
	maxFileSize   int64
}

// NewLocationImportHandler creates a new LocationImportHandler
func NewLocationImportHandler(importService *locationapp.ImportService, maxFileSize int64) *LocationImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxImportFileSize
	}
	return &LocationImportHandler{importService: importService, maxFileSize: maxFileSize}
}

// Import godoc
//
//	@Summary		Import locations from a spreadsheet
//	@Description	Upserts countries, states, cities or pincodes from the first worksheet of an xlsx or csv file. Invalid rows are reported and skipped.
//	@Tags			locations
//	@ID				importLocations
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			kind	path		string	true	"Location level"	Enums(countries, states, cities, pincodes)
//	@Param			file	formData	file	true	"Spreadsheet, at most 10MB"
//	@Success		200		{object}	dto.ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/{kind}/import [post]
func (h *LocationImportHandler) Import(kind locationapp.ImportKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serve(c, kind)
	}
}

func (h *LocationImportHandler) serve(c *gin.Context, kind locationapp.ImportKind) {
	file, header, ok := h.formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		h.BadRequest(c, fmt.Sprintf("file exceeds maximum size of %dMB", h.maxFileSize>>20))
		return
	}

	format, err := sheetimport.DetectFormat(header.Filename)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sheet, err := sheetimport.Parse(file, format, h.maxFileSize)
	if err != nil {
		if errors.Is(err, sheetimport.ErrFileTooLarge) {
			h.BadRequest(c, fmt.Sprintf("file exceeds maximum size of %dMB", h.maxFileSize>>20))
			return
		}
		if isReportableSheetError(err) {
			h.BadRequest(c, err.Error())
			return
		}
		logger.L(c.Request.Context()).Warn("Spreadsheet could not be parsed",
			zap.String("request_id", getRequestID(c)),
			zap.String("filename", header.Filename),
			zap.Error(err))
		h.BadRequest(c, "could not read spreadsheet")
		return
	}

	var result *locationapp.ImportResult
	labels := telemetry.OperationLabels("location_import", map[string]string{"kind": string(kind)})
	telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
		result, err = h.importService.Import(ctx, kind, sheet)
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rowErrors := result.Errors
	if rowErrors == nil {
		rowErrors = []string{}
	}
	c.JSON(http.StatusOK, dto.ImportResponse{
		Success: true,
		Message: "Import completed",
		Data: dto.ImportSummary{
			TotalRows:  result.TotalRows,
			ValidRows:  result.ValidRows,
			Created:    result.Created,
			Updated:    result.Updated,
			FailedRows: result.FailedRows,
		},
		Errors: rowErrors,
	})
}

// isReportableSheetError reports parse failures whose message is safe to
// return to the client
func isReportableSheetError(err error) bool {
	for _, known := range []error{
		sheetimport.ErrEmptyFile,
		sheetimport.ErrMissingHeader,
		sheetimport.ErrInvalidEncoding,
		sheetimport.ErrNoWorksheet,
		sheetimport.ErrUnsupportedFormat,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
