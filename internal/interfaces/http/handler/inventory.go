package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List godoc
//
//	@Summary	List inventory
//	@Tags		inventory
//	@ID			listInventory
//	@Produce	json
//	@Param		product_id	query		string	false	"Product ID"	format(uuid)
//	@Param		low_stock	query		bool	false	"Only rows at or below their threshold"
//	@Param		status		query		string	false	"Status filter"	Enums(active, inactive)
//	@Param		page		query		int		false	"Page number"		default(1)
//	@Param		limit		query		int		false	"Items per page"	default(10)
//	@Success	200			{object}	ListResponse[inventoryapp.InventoryResponse]
//	@Failure	400			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.InventoryListFilter
	if !h.bindList(c, &filter) {
		return
	}
	productID, ok := h.queryUUID(c, "product_id")
	if !ok {
		return
	}
	filter.ProductID = productID

	items, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Inventory fetched successfully", items))
}

// GetByID godoc
//
//	@Summary	Get inventory row by ID
//	@Tags		inventory
//	@ID			getInventory
//	@Produce	json
//	@Param		id	path		string	true	"Inventory ID"	format(uuid)
//	@Success	200	{object}	APIResponse[inventoryapp.InventoryResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	inventoryID, ok := h.pathUUID(c, "id", "inventory")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), inventoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Inventory fetched successfully", item)
}

// Create godoc
//
//	@Summary		Create an inventory row
//	@Description	Each product has at most one inventory row
//	@Tags			inventory
//	@ID				createInventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.CreateInventoryRequest	true	"Inventory"
//	@Success		201		{object}	APIResponse[inventoryapp.InventoryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Inventory created successfully", item)
}

// Update godoc
//
//	@Summary	Update an inventory row
//	@Tags		inventory
//	@ID			updateInventory
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Inventory ID"	format(uuid)
//	@Param		request	body		inventoryapp.UpdateInventoryRequest	true	"Fields to change"
//	@Success	200		{object}	APIResponse[inventoryapp.InventoryResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	var req inventoryapp.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	inventoryID, ok := h.targetID(c, req.ID)
	if !ok {
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), inventoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Inventory updated successfully", item)
}

// Delete godoc
//
//	@Summary	Delete an inventory row
//	@Tags		inventory
//	@ID			deleteInventory
//	@Produce	json
//	@Param		id	path		string	true	"Inventory ID"	format(uuid)
//	@Success	200	{object}	SuccessResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	inventoryID, ok := h.deleteTargetID(c)
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), inventoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Inventory deleted successfully", nil)
}

// Adjust godoc
//
//	@Summary		Adjust on-hand stock
//	@Description	Applies a signed delta and records a stock movement. A result below zero or below the reserved quantity is rejected with 422.
//	@Tags			inventory
//	@ID				adjustInventory
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Inventory ID"	format(uuid)
//	@Param			request	body		inventoryapp.AdjustStockRequest	true	"Adjustment"
//	@Success		200		{object}	APIResponse[inventoryapp.AdjustResult]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	inventoryID, ok := h.pathUUID(c, "id", "inventory")
	if !ok {
		return
	}
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	caller, _ := getCaller(c)
	result, err := h.inventoryService.Adjust(c.Request.Context(), caller, inventoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Stock adjusted successfully", result)
}

// Movements godoc
//
//	@Summary	List stock movements
//	@Tags		inventory
//	@ID			listStockMovements
//	@Produce	json
//	@Param		id		path		string	true	"Inventory ID"	format(uuid)
//	@Param		page	query		int		false	"Page number"		default(1)
//	@Param		limit	query		int		false	"Items per page"	default(10)
//	@Success	200		{object}	ListResponse[inventoryapp.StockMovementResponse]
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory/{id}/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	inventoryID, ok := h.pathUUID(c, "id", "inventory")
	if !ok {
		return
	}
	q, ok := h.listQuery(c)
	if !ok {
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), inventoryID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("Stock movements fetched successfully", movements))
}
