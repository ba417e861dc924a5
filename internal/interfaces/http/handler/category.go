package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// List godoc
//
//	@Summary		List categories
//	@Description	Retrieve a paginated list of categories
//	@Tags			categories
//	@ID				listCategories
//	@Produce		json
//	@Param			parent_id	query		string	false	"Parent category ID"	format(uuid)
//	@Param			search		query		string	false	"Name contains"
//	@Param			status		query		string	false	"Status filter"	Enums(active, inactive)
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)
//	@Param			sort_by		query		string	false	"Sort field"		Enums(name, sort_order, created_at)
//	@Param			sort_order	query		string	false	"Sort order"		Enums(asc, desc)
//	@Success		200			{object}	ListResponse[catalogapp.CategoryResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var filter catalogapp.CategoryListFilter
	if !h.bindList(c, &filter) {
		return
	}
	parentID, ok := h.queryUUID(c, "parent_id")
	if !ok {
		return
	}
	filter.ParentID = parentID

	categories, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Categories fetched successfully", categories))
}

// GetByID godoc
//
//	@Summary	Get category by ID
//	@Tags		categories
//	@ID			getCategory
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"	format(uuid)
//	@Success	200	{object}	APIResponse[catalogapp.CategoryResponse]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, ok := h.pathUUID(c, "id", "category")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category fetched successfully", category)
}

// Create godoc
//
//	@Summary		Create a new category
//	@Description	Create a root category or a child of an existing category. The slug is derived from the name when omitted.
//	@Tags			categories
//	@ID				createCategory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapp.CreateCategoryRequest	true	"Category creation request"
//	@Success		201		{object}	APIResponse[catalogapp.CategoryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Category created successfully", category)
}

// Update godoc
//
//	@Summary	Update a category
//	@Tags		categories
//	@ID			updateCategory
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Category ID"	format(uuid)
//	@Param		request	body		catalogapp.UpdateCategoryRequest	true	"Fields to change"
//	@Success	200		{object}	APIResponse[catalogapp.CategoryResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	categoryID, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category updated successfully", category)
}

// Delete godoc
//
//	@Summary		Delete a category
//	@Description	Fails with 409 while products or child categories reference it
//	@Tags			categories
//	@ID				deleteCategory
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"	format(uuid)
//	@Success		200	{object}	SuccessResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category deleted successfully", nil)
}
