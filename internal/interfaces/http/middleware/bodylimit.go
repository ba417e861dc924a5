package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
// multipart/form-data requests to one of multipartPaths (matched against the
// gin route pattern) get multipartMaxBytes so file uploads and spreadsheet
// imports can exceed the JSON limit. Every other request, multipart or not,
// gets maxBytes. A limit of zero or less disables the check.
func BodyLimit(maxBytes, multipartMaxBytes int64, multipartPaths ...string) gin.HandlerFunc {
	fileRoutes := make(map[string]struct{}, len(multipartPaths))
	for _, p := range multipartPaths {
		fileRoutes[p] = struct{}{}
	}

	return func(c *gin.Context) {
		limit := maxBytes
		if _, ok := fileRoutes[c.FullPath()]; ok && isMultipart(c) {
			limit = multipartMaxBytes
		}
		if limit <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
				requestIDFromContext(c),
			))
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == "multipart/form-data"
}
