package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CountryHandler handles country endpoints
type CountryHandler struct {
	BaseHandler
	countryService *locationapp.CountryService
	importer       *LocationImportHandler
}

// NewCountryHandler creates a new CountryHandler
func NewCountryHandler(countryService *locationapp.CountryService, importer *LocationImportHandler) *CountryHandler {
	return &CountryHandler{countryService: countryService, importer: importer}
}

// List godoc
//
//	@Summary		List countries
//	@Tags			locations
//	@ID				listCountries
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)
//	@Param			status		query		string	false	"Status filter"		Enums(active, inactive)
//	@Param			search		query		string	false	"Name contains"
//	@Param			sort_by		query		string	false	"Sort field"
//	@Param			sort_order	query		string	false	"Sort order"	Enums(asc, desc)
//	@Success		200			{object}	ListResponse[locationapp.CountryResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/locations/countries [get]
func (h *CountryHandler) List(c *gin.Context) {
	var filter locationapp.CountryListFilter
	if !h.bindList(c, &filter) {
		return
	}

	page, err := h.countryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Countries fetched successfully", page))
}

// GetByID godoc
//
//	@Summary	Get country by ID
//	@Tags		locations
//	@ID			getCountry
//	@Produce	json
//	@Param		id	path		string	true	"Country ID"	format(uuid)
//	@Success	200	{object}	APIResponse[locationapp.CountryResponse]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/countries/{id} [get]
func (h *CountryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "country")
	if !ok {
		return
	}

	country, err := h.countryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Country fetched successfully", country)
}

// Create godoc
//
//	@Summary		Create a country
//	@Description	Creates a country from a JSON body. A multipart/form-data request with a file field is treated as a bulk import.
//	@Tags			locations
//	@ID				createCountry
//	@Accept			json
//	@Produce		json
//	@Param			request	body		locationapp.CreateCountryRequest	true	"Country"
//	@Success		201		{object}	APIResponse[locationapp.CountryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/countries [post]
func (h *CountryHandler) Create(c *gin.Context) {
	if isMultipart(c) {
		h.importer.serve(c, locationapp.ImportCountries)
		return
	}

	var req locationapp.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	country, err := h.countryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Country created successfully", country)
}

// Update godoc
//
//	@Summary		Update a country
//	@Description	Partial update. The id may be given in the path, the query string or the body.
//	@Tags			locations
//	@ID				updateCountry
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								false	"Country ID"	format(uuid)
//	@Param			request	body		locationapp.UpdateCountryRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[locationapp.CountryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/countries/{id} [put]
func (h *CountryHandler) Update(c *gin.Context) {
	var req locationapp.UpdateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	id, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	country, err := h.countryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Country updated successfully", country)
}

// Delete godoc
//
//	@Summary		Delete a country
//	@Description	Fails with 409 while states still reference the country.
//	@Tags			locations
//	@ID				deleteCountry
//	@Produce		json
//	@Param			id	path		string	false	"Country ID"	format(uuid)
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/countries/{id} [delete]
func (h *CountryHandler) Delete(c *gin.Context) {
	id, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.countryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Country deleted successfully", nil)
}
