package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// StateHandler handles state endpoints
type StateHandler struct {
	BaseHandler
	stateService *locationapp.StateService
	importer     *LocationImportHandler
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(stateService *locationapp.StateService, importer *LocationImportHandler) *StateHandler {
	return &StateHandler{stateService: stateService, importer: importer}
}

// List godoc
//
//	@Summary		List states
//	@Tags			locations
//	@ID				listStates
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)
//	@Param			status		query		string	false	"Status filter"		Enums(active, inactive)
//	@Param			country_id	query		string	false	"Country ID"	format(uuid)
//	@Param			search		query		string	false	"Name contains"
//	@Param			sort_by		query		string	false	"Sort field"
//	@Param			sort_order	query		string	false	"Sort order"	Enums(asc, desc)
//	@Success		200			{object}	ListResponse[locationapp.StateResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/locations/states [get]
func (h *StateHandler) List(c *gin.Context) {
	var filter locationapp.StateListFilter
	if !h.bindList(c, &filter) {
		return
	}
	parentID, ok := h.queryUUID(c, "country_id")
	if !ok {
		return
	}
	filter.CountryID = parentID

	page, err := h.stateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("States fetched successfully", page))
}

// GetByID godoc
//
//	@Summary	Get state by ID
//	@Tags		locations
//	@ID			getState
//	@Produce	json
//	@Param		id	path		string	true	"State ID"	format(uuid)
//	@Success	200	{object}	APIResponse[locationapp.StateResponse]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/states/{id} [get]
func (h *StateHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "state")
	if !ok {
		return
	}

	state, err := h.stateService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "State fetched successfully", state)
}

// Create godoc
//
//	@Summary		Create a state
//	@Description	Creates a state from a JSON body. A multipart/form-data request with a file field is treated as a bulk import.
//	@Tags			locations
//	@ID				createState
//	@Accept			json
//	@Produce		json
//	@Param			request	body		locationapp.CreateStateRequest	true	"State"
//	@Success		201		{object}	APIResponse[locationapp.StateResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/states [post]
func (h *StateHandler) Create(c *gin.Context) {
	if isMultipart(c) {
		h.importer.serve(c, locationapp.ImportStates)
		return
	}

	var req locationapp.CreateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	state, err := h.stateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "State created successfully", state)
}

// Update godoc
//
//	@Summary		Update a state
//	@Description	Partial update. The id may be given in the path, the query string or the body.
//	@Tags			locations
//	@ID				updateState
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								false	"State ID"	format(uuid)
//	@Param			request	body		locationapp.UpdateStateRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[locationapp.StateResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/states/{id} [put]
func (h *StateHandler) Update(c *gin.Context) {
	var req locationapp.UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	id, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	state, err := h.stateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "State updated successfully", state)
}

// Delete godoc
//
//	@Summary		Delete a state
//	@Description	Fails with 409 while cities still reference the state.
//	@Tags			locations
//	@ID				deleteState
//	@Produce		json
//	@Param			id	path		string	false	"State ID"	format(uuid)
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/locations/states/{id} [delete]
func (h *StateHandler) Delete(c *gin.Context) {
	id, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.stateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "State deleted successfully", nil)
}
