package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/media"
)

// UploadHandler stores images for products and categories
type UploadHandler struct {
	BaseHandler
	uploadService *media.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *media.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage godoc
//
//	@Summary		Upload an image
//	@Description	Accepts jpeg, png, webp or gif up to 5MB. The type is detected from the file content.
//	@Tags			uploads
//	@ID				uploadImage
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image"
//	@Success		201		{object}	APIResponse[media.UploadResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/uploads/images [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, header, ok := h.formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	if header.Size > h.uploadService.MaxSize() {
		h.BadRequest(c, fmt.Sprintf("file exceeds the %d MB limit", h.uploadService.MaxSize()>>20))
		return
	}

	uploaded, err := h.uploadService.UploadImage(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Image uploaded successfully", uploaded)
}

// DeleteImage godoc
//
//	@Summary	Delete an uploaded image
//	@Tags		uploads
//	@ID			deleteImage
//	@Produce	json
//	@Param		key	query		string	true	"Storage key returned by the upload, images/..."
//	@Success	200	{object}	SuccessResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/uploads/images [delete]
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key is required")
		return
	}
	if err := h.uploadService.DeleteImage(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Image deleted successfully", nil)
}
