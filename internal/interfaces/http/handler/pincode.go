package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// PincodeHandler handles pincode endpoints
type PincodeHandler struct {
	BaseHandler
	pincodeService *locationapp.PincodeService
	importer       *LocationImportHandler
}

// NewPincodeHandler creates a new PincodeHandler
func NewPincodeHandler(pincodeService *locationapp.PincodeService, importer *LocationImportHandler) *PincodeHandler {
	return &PincodeHandler{pincodeService: pincodeService, importer: importer}
}

// List godoc
//
//	@Summary		List pincodes
//	@Tags			locations
//	@ID				listPincodes
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)
//	@Param			status		query		string	false	"Status filter"		Enums(active, inactive)
//	@Param			city_id	query		string	false	"City ID"	format(uuid)
//	@Param			search		query		string	false	"Pincode starts with or contains"
//	@Param			sort_by		query		string	false	"Sort field"
//	@Param			sort_order	query		string	false	"Sort order"	Enums(asc, desc)
//	@Success		200			{object}	ListResponse[locationapp.PincodeResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/locations/pincodes [get]
func (h *PincodeHandler) List(c *gin.Context) {
	var filter locationapp.PincodeListFilter
	if !h.bindList(c, &filter) {
		return
	}
	parentID, ok := h.queryUUID(c, "city_id")
	if !ok {
		return
	}
	filter.CityID = parentID

	page, err := h.pincodeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Pincodes fetched successfully", page))
}

// GetByID godoc
//
//	@Summary	Get pincode by ID
//	@Tags		locations
//	@ID			getPincode
//	@Produce	json
//	@Param		id	path		string	true	"Pincode ID"	format(uuid)
//	@Success	200	{object}	APIResponse[locationapp.PincodeResponse]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/pincodes/{id} [get]
func (h *PincodeHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "pincode")
	if !ok {
		return
	}

	pincode, err := h.pincodeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Pincode fetched successfully", pincode)
}

// Create godoc
//
//	@Summary		Create a pincode
//	@Description	Creates a pincode from a JSON body. A multipart/form-data request with a file field is treated as a bulk import.
//	@Tags			locations
//	@ID				createPincode
//	@Accept			json
//	@Produce		json
//	@Param			request	body		locationapp.CreatePincodeRequest	true	"Pincode"
//	@Success		201		{object}	APIResponse[locationapp.PincodeResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/pincodes [post]
func (h *PincodeHandler) Create(c *gin.Context) {
	if isMultipart(c) {
		h.importer.serve(c, locationapp.ImportPincodes)
		return
	}

	var req locationapp.CreatePincodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pincode, err := h.pincodeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Pincode created successfully", pincode)
}

// Update godoc
//
//	@Summary		Update a pincode
//	@Description	Partial update. The id may be given in the path, the query string or the body.
//	@Tags			locations
//	@ID				updatePincode
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								false	"Pincode ID"	format(uuid)
//	@Param			request	body		locationapp.UpdatePincodeRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[locationapp.PincodeResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/pincodes/{id} [put]
func (h *PincodeHandler) Update(c *gin.Context) {
	var req locationapp.UpdatePincodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	id, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	pincode, err := h.pincodeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Pincode updated successfully", pincode)
}

// Delete godoc
//
//	@Summary		Delete a pincode
//	@Description	Fails with 409 while addresses still reference the pincode.
//	@Tags			locations
//	@ID				deletePincode
//	@Produce		json
//	@Param			id	path		string	false	"Pincode ID"	format(uuid)
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/pincodes/{id} [delete]
func (h *PincodeHandler) Delete(c *gin.Context) {
	id, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.pincodeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Pincode deleted successfully", nil)
}
