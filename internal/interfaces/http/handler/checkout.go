package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// CheckoutHandler prices carts for the storefront
type CheckoutHandler struct {
	BaseHandler
	quoteService *checkoutapp.QuoteService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(quoteService *checkoutapp.QuoteService) *CheckoutHandler {
	return &CheckoutHandler{quoteService: quoteService}
}

// Quote godoc
//
//	@Summary		Price a cart
//	@Description	Applies quantity tiers, checks stock, the caller's address, the payment gateway and an optional coupon. Nothing is persisted.
//	@Tags			checkout
//	@ID				checkoutQuote
//	@Accept			json
//	@Produce		json
//	@Param			request	body		checkoutapp.QuoteRequest	true	"Cart"
//	@Success		200		{object}	APIResponse[checkoutapp.QuoteResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/checkout/quote [post]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req checkoutapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Quote calculated successfully", quote)
}
