package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler writes the response envelope shared by every handler.
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

func getCaller(c *gin.Context) (identity.Principal, bool) {
	return middleware.GetPrincipal(c)
}

func (h *BaseHandler) Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}

func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, data))
}

// Page writes a list envelope built by dto.NewListResponse.
func (h *BaseHandler) Page(c *gin.Context, resp dto.Response) {
	c.JSON(http.StatusOK, resp)
}

// Fail writes an error envelope. The status follows from code, which may
// be either an API code or a shared.DomainError code.
func (h *BaseHandler) Fail(c *gin.Context, code, message string) {
	code = dto.NormalizeErrorCode(code)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeUnauthorized, message)
}

// BindError reports a failed ShouldBind* call as a validation error with
// per-field details.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", getRequestID(c), middleware.ValidationDetails(err)))
}

// HandleError converts domain errors to HTTP responses. Anything else is
// logged and reported as a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Fail(c, domainErr.Code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("request_id", getRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Fail(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// formFile opens the "file" part of a multipart request. A body cut off by
// the body limit is reported as 413, anything else as a missing file.
func (h *BaseHandler) formFile(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Fail(c, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
			return nil, nil, false
		}
		h.BadRequest(c, "file is required")
		return nil, nil, false
	}
	return file, header, true
}

// bindList binds the common pagination query. It writes a 400 and returns
// false when the query cannot be parsed.
func (h *BaseHandler) bindList(c *gin.Context, target any) bool {
	if err := c.ShouldBindQuery(target); err != nil {
		h.BindError(c, err)
		return false
	}
	return true
}

// listQuery binds only the common pagination block
func (h *BaseHandler) listQuery(c *gin.Context) (query.ListQuery, bool) {
	var q query.ListQuery
	return q, h.bindList(c, &q)
}

// pathUUID parses a uuid path parameter. label names the id in the error.
func (h *BaseHandler) pathUUID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter. An absent parameter
// yields nil; a malformed one writes a 400.
func (h *BaseHandler) queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

// targetID picks the id of the resource a mutation addresses. The path
// parameter wins, then the id query parameter, then bodyID.
func (h *BaseHandler) targetID(c *gin.Context, bodyID *uuid.UUID) (uuid.UUID, bool) {
	if raw := c.Param("id"); raw != "" {
		return h.pathUUID(c, "id", "resource")
	}
	if raw := strings.TrimSpace(c.Query("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid resource ID format")
			return uuid.Nil, false
		}
		return id, true
	}
	if bodyID != nil && *bodyID != uuid.Nil {
		return *bodyID, true
	}
	h.BadRequest(c, "id is required in the path, query string or body")
	return uuid.Nil, false
}

// deleteTargetID resolves the id of a DELETE, which may also arrive as a
// JSON body {"id": "..."} on the collection route.
func (h *BaseHandler) deleteTargetID(c *gin.Context) (uuid.UUID, bool) {
	if c.Param("id") != "" || c.Query("id") != "" {
		return h.targetID(c, nil)
	}
	var body struct {
		ID *uuid.UUID `json:"id"`
	}
	if c.Request.Body != nil {
		if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			h.BindError(c, err)
			return uuid.Nil, false
		}
	}
	return h.targetID(c, body.ID)
}

// isMultipart reports whether the request carries a multipart form
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
