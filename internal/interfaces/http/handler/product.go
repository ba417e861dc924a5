package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// List godoc
//
//	@Summary		List products
//	@Description	Retrieve a paginated list of products filtered by category, status and price range
//	@Tags			products
//	@ID				listProducts
//	@Produce		json
//	@Param			category_id	query		string	false	"Category ID"	format(uuid)
//	@Param			min_price	query		number	false	"Minimum price"
//	@Param			max_price	query		number	false	"Maximum price"
//	@Param			search		query		string	false	"Name contains"
//	@Param			status		query		string	false	"Status filter"	Enums(active, inactive)
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)
//	@Param			sort_by		query		string	false	"Sort field"		Enums(name, price, created_at)
//	@Param			sort_order	query		string	false	"Sort order"		Enums(asc, desc)
//	@Success		200			{object}	ListResponse[catalogapp.ProductResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.bindList(c, &filter) {
		return
	}
	categoryID, ok := h.queryUUID(c, "category_id")
	if !ok {
		return
	}
	filter.CategoryID = categoryID

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Products fetched successfully", products))
}

// GetByID godoc
//
//	@Summary	Get product by ID
//	@Tags		products
//	@ID			getProduct
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	format(uuid)
//	@Success	200	{object}	APIResponse[catalogapp.ProductResponse]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product fetched successfully", product)
}

// GetBySlug godoc
//
//	@Summary	Get product by slug
//	@Tags		products
//	@ID			getProductBySlug
//	@Produce	json
//	@Param		slug	path		string	true	"Product slug"
//	@Success	200		{object}	APIResponse[catalogapp.ProductResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		h.BadRequest(c, "slug is required")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product fetched successfully", product)
}

// Create godoc
//
//	@Summary		Create a new product
//	@Description	qty_offers accepts a JSON array or a string holding one. Tiers must have distinct positive quantities.
//	@Tags			products
//	@ID				createProduct
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapp.CreateProductRequest	true	"Product creation request"
//	@Success		201		{object}	APIResponse[catalogapp.ProductResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product created successfully", product)
}

// Update godoc
//
//	@Summary		Update a product
//	@Description	Partial update. A null qty_offers clears the tiers.
//	@Tags			products
//	@ID				updateProduct
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"	format(uuid)
//	@Param			request	body		catalogapp.UpdateProductRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[catalogapp.ProductResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	productID, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product updated successfully", product)
}

// Delete godoc
//
//	@Summary	Delete a product
//	@Tags		products
//	@ID			deleteProduct
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	format(uuid)
//	@Success	200	{object}	SuccessResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product deleted successfully", nil)
}
