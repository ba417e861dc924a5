package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CityHandler handles city endpoints
type CityHandler struct {
	BaseHandler
	cityService *locationapp.CityService
	importer    *LocationImportHandler
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cityService *locationapp.CityService, importer *LocationImportHandler) *CityHandler {
	return &CityHandler{cityService: cityService, importer: importer}
}

// List godoc
//
//	@Summary		List cities
//	@Tags			locations
//	@ID				listCities
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)
//	@Param			status		query		string	false	"Status filter"		Enums(active, inactive)
//	@Param			state_id	query		string	false	"State ID"	format(uuid)
//	@Param			search		query		string	false	"Name contains"
//	@Param			sort_by		query		string	false	"Sort field"
//	@Param			sort_order	query		string	false	"Sort order"	Enums(asc, desc)
//	@Success		200			{object}	ListResponse[locationapp.CityResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/locations/cities [get]
func (h *CityHandler) List(c *gin.Context) {
	var filter locationapp.CityListFilter
	if !h.bindList(c, &filter) {
		return
	}
	parentID, ok := h.queryUUID(c, "state_id")
	if !ok {
		return
	}
	filter.StateID = parentID

	page, err := h.cityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Cities fetched successfully", page))
}

// GetByID godoc
//
//	@Summary	Get city by ID
//	@Tags		locations
//	@ID			getCity
//	@Produce	json
//	@Param		id	path		string	true	"City ID"	format(uuid)
//	@Success	200	{object}	APIResponse[locationapp.CityResponse]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/cities/{id} [get]
func (h *CityHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "city")
	if !ok {
		return
	}

	city, err := h.cityService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "City fetched successfully", city)
}

// Create godoc
//
//	@Summary		Create a city
//	@Description	Creates a city from a JSON body. A multipart/form-data request with a file field is treated as a bulk import.
//	@Tags			locations
//	@ID				createCity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		locationapp.CreateCityRequest	true	"City"
//	@Success		201		{object}	APIResponse[locationapp.CityResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/cities [post]
func (h *CityHandler) Create(c *gin.Context) {
	if isMultipart(c) {
		h.importer.serve(c, locationapp.ImportCities)
		return
	}

	var req locationapp.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	city, err := h.cityService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "City created successfully", city)
}

// Update godoc
//
//	@Summary		Update a city
//	@Description	Partial update. The id may be given in the path, the query string or the body.
//	@Tags			locations
//	@ID				updateCity
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								false	"City ID"	format(uuid)
//	@Param			request	body		locationapp.UpdateCityRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[locationapp.CityResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/cities/{id} [put]
func (h *CityHandler) Update(c *gin.Context) {
	var req locationapp.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	id, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	city, err := h.cityService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "City updated successfully", city)
}

// Delete godoc
//
//	@Summary		Delete a city
//	@Description	Fails with 409 while pincodes still reference the city.
//	@Tags			locations
//	@ID				deleteCity
//	@Produce		json
//	@Param			id	path		string	false	"City ID"	format(uuid)
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/cities/{id} [delete]
func (h *CityHandler) Delete(c *gin.Context) {
	id, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.cityService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "City deleted successfully", nil)
}
