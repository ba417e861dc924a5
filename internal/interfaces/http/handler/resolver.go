package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
)

// ResolverHandler resolves postal codes to their location chain
type ResolverHandler struct {
	BaseHandler
	resolver *locationapp.ResolverService
}

// NewResolverHandler creates a new ResolverHandler
func NewResolverHandler(resolver *locationapp.ResolverService) *ResolverHandler {
	return &ResolverHandler{resolver: resolver}
}

// Resolve godoc
//
//	@Summary		Resolve a pincode
//	@Description	Walks pincode, city, state and country. The first missing link is reported by name.
//	@Tags			locations
//	@ID				resolvePincode
//	@Produce		json
//	@Param			pincode	path		string	true	"Six digit postal code"	example(411001)
//	@Success		200		{object}	APIResponse[locationapp.ResolvedLocation]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/locations/resolve/{pincode} [get]
func (h *ResolverHandler) Resolve(c *gin.Context) {
	resolved, err := h.resolver.Resolve(c.Request.Context(), c.Param("pincode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Location resolved successfully", resolved)
}
