package handler

import (
	"github.com/gin-gonic/gin"
	addressapp "github.com/storefront/backend/internal/application/address"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// AddressHandler handles the caller's delivery addresses. Customers only see
// their own rows; admins may pass user_id to act for a user.
type AddressHandler struct {
	BaseHandler
	addressService *addressapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *addressapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) caller(c *gin.Context) (identity.Principal, bool) {
	principal, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
	}
	return principal, ok
}

// List godoc
//
//	@Summary		List addresses
//	@Description	Default address first. Admins may filter by user_id or list every address.
//	@Tags			addresses
//	@ID				listAddresses
//	@Produce		json
//	@Param			user_id	query		string	false	"Owner (admin only)"	format(uuid)
//	@Param			search	query		string	false	"Full name contains"
//	@Param			status	query		string	false	"Status filter"	Enums(active, inactive)
//	@Param			page	query		int		false	"Page number"		default(1)
//	@Param			limit	query		int		false	"Items per page"	default(10)
//	@Success		200		{object}	ListResponse[addressapp.AddressResponse]
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var filter addressapp.AddressListFilter
	if !h.bindList(c, &filter) {
		return
	}
	userID, ok := h.queryUUID(c, "user_id")
	if !ok {
		return
	}
	filter.UserID = userID

	addresses, err := h.addressService.List(c.Request.Context(), caller, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Addresses fetched successfully", addresses))
}

// GetByID godoc
//
//	@Summary	Get address by ID
//	@Tags		addresses
//	@ID			getAddress
//	@Produce	json
//	@Param		id	path		string	true	"Address ID"	format(uuid)
//	@Success	200	{object}	APIResponse[addressapp.AddressResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/addresses/{id} [get]
func (h *AddressHandler) GetByID(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(c, "id", "address")
	if !ok {
		return
	}

	addr, err := h.addressService.GetByID(c.Request.Context(), caller, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Address fetched successfully", addr)
}

// Create godoc
//
//	@Summary		Create an address
//	@Description	The first address of a user becomes the default. When only postal_code is given the location ids are filled in from the pincode.
//	@Tags			addresses
//	@ID				createAddress
//	@Accept			json
//	@Produce		json
//	@Param			request	body		addressapp.CreateAddressRequest	true	"Address"
//	@Success		201		{object}	APIResponse[addressapp.AddressResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req addressapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	addr, err := h.addressService.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Address created successfully", addr)
}

// Update godoc
//
//	@Summary	Update an address
//	@Tags		addresses
//	@ID			updateAddress
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Address ID"	format(uuid)
//	@Param		request	body		addressapp.UpdateAddressRequest	true	"Fields to change"
//	@Success	200		{object}	APIResponse[addressapp.AddressResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req addressapp.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	addressID, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	addr, err := h.addressService.Update(c.Request.Context(), caller, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Address updated successfully", addr)
}

// SetDefault godoc
//
//	@Summary	Make an address the default
//	@Tags		addresses
//	@ID			setDefaultAddress
//	@Produce	json
//	@Param		id	path		string	true	"Address ID"	format(uuid)
//	@Success	200	{object}	APIResponse[addressapp.AddressResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/addresses/{id}/default [post]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(c, "id", "address")
	if !ok {
		return
	}

	addr, err := h.addressService.SetDefault(c.Request.Context(), caller, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Default address updated successfully", addr)
}

// Delete godoc
//
//	@Summary		Delete an address
//	@Description	Deleting the default promotes the most recently updated remaining address
//	@Tags			addresses
//	@ID				deleteAddress
//	@Produce		json
//	@Param			id	path		string	true	"Address ID"	format(uuid)
//	@Success		200	{object}	SuccessResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	addressID, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), caller, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Address deleted successfully", nil)
}
