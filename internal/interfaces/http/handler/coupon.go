package handler

import (
	"github.com/gin-gonic/gin"
	couponapp "github.com/storefront/backend/internal/application/coupon"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CouponHandler handles coupon endpoints
type CouponHandler struct {
	BaseHandler
	couponService *couponapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *couponapp.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// List godoc
//
//	@Summary	List coupons
//	@Tags		coupons
//	@ID			listCoupons
//	@Produce	json
//	@Param		search		query		string	false	"Code contains"
//	@Param		status		query		string	false	"Status filter"	Enums(active, inactive)
//	@Param		page		query		int		false	"Page number"		default(1)
//	@Param		limit		query		int		false	"Items per page"	default(10)
//	@Param		sort_by		query		string	false	"Sort field"		Enums(code, end_date, created_at)
//	@Param		sort_order	query		string	false	"Sort order"		Enums(asc, desc)
//	@Success	200			{object}	ListResponse[couponapp.CouponResponse]
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	var filter couponapp.CouponListFilter
	if !h.bindList(c, &filter) {
		return
	}

	coupons, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Coupons fetched successfully", coupons))
}

// GetByID godoc
//
//	@Summary	Get coupon by ID
//	@Tags		coupons
//	@ID			getCoupon
//	@Produce	json
//	@Param		id	path		string	true	"Coupon ID"	format(uuid)
//	@Success	200	{object}	APIResponse[couponapp.CouponResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/coupons/{id} [get]
func (h *CouponHandler) GetByID(c *gin.Context) {
	couponID, ok := h.pathUUID(c, "id", "coupon")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetByID(c.Request.Context(), couponID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Coupon fetched successfully", coupon)
}

// Create godoc
//
//	@Summary		Create a coupon
//	@Description	The code is stored uppercase and must be unique.
//	@Tags			coupons
//	@ID				createCoupon
//	@Accept			json
//	@Produce		json
//	@Param			request	body		couponapp.CreateCouponRequest	true	"Coupon"
//	@Success		201		{object}	APIResponse[couponapp.CouponResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req couponapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Coupon created successfully", coupon)
}

// Update godoc
//
//	@Summary	Update a coupon
//	@Tags		coupons
//	@ID			updateCoupon
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Coupon ID"	format(uuid)
//	@Param		request	body		couponapp.UpdateCouponRequest	true	"Fields to change"
//	@Success	200		{object}	APIResponse[couponapp.CouponResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	var req couponapp.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	couponID, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), couponID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Coupon updated successfully", coupon)
}

// Delete godoc
//
//	@Summary	Delete a coupon
//	@Tags		coupons
//	@ID			deleteCoupon
//	@Produce	json
//	@Param		id	path		string	true	"Coupon ID"	format(uuid)
//	@Success	200	{object}	SuccessResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	couponID, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), couponID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Coupon deleted successfully", nil)
}

// Validate godoc
//
//	@Summary		Validate a coupon against an order amount
//	@Description	Returns the discount the coupon grants, or 400 with the reason it does not apply
//	@Tags			coupons
//	@ID				validateCoupon
//	@Produce		json
//	@Param			code	query		string	true	"Coupon code"
//	@Param			amount	query		number	true	"Order subtotal"
//	@Success		200		{object}	APIResponse[couponapp.CouponValidationResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/coupons/validate [get]
func (h *CouponHandler) Validate(c *gin.Context) {
	var q couponapp.ValidateCouponQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.couponService.Validate(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Coupon is valid", result)
}
