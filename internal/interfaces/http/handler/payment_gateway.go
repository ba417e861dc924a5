package handler

import (
	"github.com/gin-gonic/gin"
	paymentapp "github.com/storefront/backend/internal/application/payment"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// PaymentGatewayHandler handles payment gateway configuration endpoints.
// Secret keys are accepted on write and only ever returned masked.
type PaymentGatewayHandler struct {
	BaseHandler
	gatewayService *paymentapp.GatewayService
}

// NewPaymentGatewayHandler creates a new PaymentGatewayHandler
func NewPaymentGatewayHandler(gatewayService *paymentapp.GatewayService) *PaymentGatewayHandler {
	return &PaymentGatewayHandler{gatewayService: gatewayService}
}

// List godoc
//
//	@Summary	List payment gateways
//	@Tags		payment-gateways
//	@ID			listPaymentGateways
//	@Produce	json
//	@Param		is_active	query		bool	false	"Active filter"
//	@Param		search		query		string	false	"Name contains"
//	@Param		page		query		int		false	"Page number"		default(1)
//	@Param		limit		query		int		false	"Items per page"	default(10)
//	@Success	200			{object}	ListResponse[paymentapp.GatewayResponse]
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/payment-gateways [get]
func (h *PaymentGatewayHandler) List(c *gin.Context) {
	var filter paymentapp.GatewayListFilter
	if !h.bindList(c, &filter) {
		return
	}

	gateways, err := h.gatewayService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Payment gateways fetched successfully", gateways))
}

// Active godoc
//
//	@Summary		List active payment gateways
//	@Description	Gateways offered at checkout, without credentials
//	@Tags			payment-gateways
//	@ID				listActivePaymentGateways
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]paymentapp.PublicGatewayResponse]
//	@Router			/payment-gateways/active [get]
func (h *PaymentGatewayHandler) Active(c *gin.Context) {
	gateways, err := h.gatewayService.Active(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Active payment gateways fetched successfully", gateways)
}

// GetByID godoc
//
//	@Summary	Get payment gateway by ID
//	@Tags		payment-gateways
//	@ID			getPaymentGateway
//	@Produce	json
//	@Param		id	path		string	true	"Gateway ID"	format(uuid)
//	@Success	200	{object}	APIResponse[paymentapp.GatewayResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/payment-gateways/{id} [get]
func (h *PaymentGatewayHandler) GetByID(c *gin.Context) {
	gatewayID, ok := h.pathUUID(c, "id", "payment gateway")
	if !ok {
		return
	}

	gateway, err := h.gatewayService.GetByID(c.Request.Context(), gatewayID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payment gateway fetched successfully", gateway)
}

// Create godoc
//
//	@Summary	Create a payment gateway
//	@Tags		payment-gateways
//	@ID			createPaymentGateway
//	@Accept		json
//	@Produce	json
//	@Param		request	body		paymentapp.CreateGatewayRequest	true	"Gateway"
//	@Success	201		{object}	APIResponse[paymentapp.GatewayResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/payment-gateways [post]
func (h *PaymentGatewayHandler) Create(c *gin.Context) {
	var req paymentapp.CreateGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	gateway, err := h.gatewayService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Payment gateway created successfully", gateway)
}

// Update godoc
//
//	@Summary		Update a payment gateway
//	@Description	An omitted secret_key keeps the stored one
//	@Tags			payment-gateways
//	@ID				updatePaymentGateway
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Gateway ID"	format(uuid)
//	@Param			request	body		paymentapp.UpdateGatewayRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[paymentapp.GatewayResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/payment-gateways/{id} [put]
func (h *PaymentGatewayHandler) Update(c *gin.Context) {
	var req paymentapp.UpdateGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	gatewayID, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	gateway, err := h.gatewayService.Update(c.Request.Context(), gatewayID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payment gateway updated successfully", gateway)
}

// Delete godoc
//
//	@Summary	Delete a payment gateway
//	@Tags		payment-gateways
//	@ID			deletePaymentGateway
//	@Produce	json
//	@Param		id	path		string	true	"Gateway ID"	format(uuid)
//	@Success	200	{object}	SuccessResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/payment-gateways/{id} [delete]
func (h *PaymentGatewayHandler) Delete(c *gin.Context) {
	gatewayID, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.gatewayService.Delete(c.Request.Context(), gatewayID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payment gateway deleted successfully", nil)
}
