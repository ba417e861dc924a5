package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ProductContentHandler serves the detail, FAQ and review content of a product
type ProductContentHandler struct {
	BaseHandler
	contentService *catalogapp.ContentService
}

// NewProductContentHandler creates a new ProductContentHandler
func NewProductContentHandler(contentService *catalogapp.ContentService) *ProductContentHandler {
	return &ProductContentHandler{contentService: contentService}
}

// ReviewListResponse is a page of reviews with the product's rating aggregate
// @Description Paginated reviews with rating summary
type ReviewListResponse struct {
	dto.Response
	Summary catalogapp.RatingSummaryResponse `json:"summary"`
}

// GetDetail godoc
//
//	@Summary	Get product detail
//	@Tags		products
//	@ID			getProductDetail
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	format(uuid)
//	@Success	200	{object}	APIResponse[catalogapp.ProductDetailResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id}/detail [get]
func (h *ProductContentHandler) GetDetail(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}

	detail, err := h.contentService.GetDetail(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product detail fetched successfully", detail)
}

// UpsertDetail godoc
//
//	@Summary	Create or replace product detail
//	@Tags		products
//	@ID			upsertProductDetail
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string									true	"Product ID"	format(uuid)
//	@Param		request	body		catalogapp.UpsertProductDetailRequest	true	"Detail content"
//	@Success	200		{object}	APIResponse[catalogapp.ProductDetailResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/detail [put]
func (h *ProductContentHandler) UpsertDetail(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.UpsertProductDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	detail, err := h.contentService.UpsertDetail(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product detail saved successfully", detail)
}

// ListFAQs godoc
//
//	@Summary	List product FAQs
//	@Tags		products
//	@ID			listProductFAQs
//	@Produce	json
//	@Param		id		path		string	true	"Product ID"	format(uuid)
//	@Param		page	query		int		false	"Page number"		default(1)
//	@Param		limit	query		int		false	"Items per page"	default(10)
//	@Param		status	query		string	false	"Status filter"		Enums(active, inactive)
//	@Param		search	query		string	false	"Question contains"
//	@Success	200		{object}	ListResponse[catalogapp.FAQResponse]
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{id}/faqs [get]
func (h *ProductContentHandler) ListFAQs(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	q, ok := h.listQuery(c)
	if !ok {
		return
	}

	faqs, err := h.contentService.ListFAQs(c.Request.Context(), productID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, dto.NewListResponse("FAQs fetched successfully", faqs))
}

// CreateFAQ godoc
//
//	@Summary	Add a product FAQ
//	@Tags		products
//	@ID			createProductFAQ
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID"	format(uuid)
//	@Param		request	body		catalogapp.CreateFAQRequest	true	"FAQ"
//	@Success	201		{object}	APIResponse[catalogapp.FAQResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/faqs [post]
func (h *ProductContentHandler) CreateFAQ(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	faq, err := h.contentService.CreateFAQ(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "FAQ created successfully", faq)
}

// UpdateFAQ godoc
//
//	@Summary	Update a product FAQ
//	@Tags		products
//	@ID			updateProductFAQ
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID"	format(uuid)
//	@Param		faqId	path		string						true	"FAQ ID"		format(uuid)
//	@Param		request	body		catalogapp.UpdateFAQRequest	true	"Fields to change"
//	@Success	200		{object}	APIResponse[catalogapp.FAQResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/faqs/{faqId} [put]
func (h *ProductContentHandler) UpdateFAQ(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	faqID, ok := h.pathUUID(c, "faqId", "FAQ")
	if !ok {
		return
	}
	var req catalogapp.UpdateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	faq, err := h.contentService.UpdateFAQ(c.Request.Context(), productID, faqID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "FAQ updated successfully", faq)
}

// DeleteFAQ godoc
//
//	@Summary	Delete a product FAQ
//	@Tags		products
//	@ID			deleteProductFAQ
//	@Produce	json
//	@Param		id		path		string	true	"Product ID"	format(uuid)
//	@Param		faqId	path		string	true	"FAQ ID"		format(uuid)
//	@Success	200		{object}	SuccessResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/faqs/{faqId} [delete]
func (h *ProductContentHandler) DeleteFAQ(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	faqID, ok := h.pathUUID(c, "faqId", "FAQ")
	if !ok {
		return
	}

	if err := h.contentService.DeleteFAQ(c.Request.Context(), productID, faqID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "FAQ deleted successfully", nil)
}

// ListReviews godoc
//
//	@Summary		List product reviews
//	@Description	Returns published reviews and the rating aggregate. Admin callers also see hidden reviews.
//	@Tags			products
//	@ID				listProductReviews
//	@Produce		json
//	@Param			id		path		string	true	"Product ID"	format(uuid)
//	@Param			page	query		int		false	"Page number"		default(1)
//	@Param			limit	query		int		false	"Items per page"	default(10)
//	@Param			search	query		string	false	"Comment contains"
//	@Success		200		{object}	ReviewListResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id}/reviews [get]
func (h *ProductContentHandler) ListReviews(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	q, ok := h.listQuery(c)
	if !ok {
		return
	}

	moderator := middleware.HasRole(c, identity.RoleAdmin)
	reviews, summary, err := h.contentService.ListReviews(c.Request.Context(), productID, q, moderator)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReviewListResponse{
		Response: dto.NewListResponse("Reviews fetched successfully", reviews),
		Summary:  summary,
	})
}

// CreateReview godoc
//
//	@Summary		Submit a product review
//	@Description	Reviews are hidden until an admin publishes them. A bearer token links the review to the customer.
//	@Tags			products
//	@ID				createProductReview
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"	format(uuid)
//	@Param			request	body		catalogapp.CreateReviewRequest	true	"Review"
//	@Success		201		{object}	APIResponse[catalogapp.ReviewResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id}/reviews [post]
func (h *ProductContentHandler) CreateReview(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	caller, _ := getCaller(c)
	review, err := h.contentService.CreateReview(c.Request.Context(), caller, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Review submitted successfully", review)
}

// ModerateReview godoc
//
//	@Summary	Publish or hide a review
//	@Tags		products
//	@ID			moderateProductReview
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string								true	"Product ID"	format(uuid)
//	@Param		reviewId	path		string								true	"Review ID"		format(uuid)
//	@Param		request		body		catalogapp.ModerateReviewRequest	true	"New status"
//	@Success	200			{object}	APIResponse[catalogapp.ReviewResponse]
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/reviews/{reviewId} [patch]
func (h *ProductContentHandler) ModerateReview(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	reviewID, ok := h.pathUUID(c, "reviewId", "review")
	if !ok {
		return
	}
	var req catalogapp.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.contentService.ModerateReview(c.Request.Context(), productID, reviewID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Review updated successfully", review)
}

// DeleteReview godoc
//
//	@Summary	Delete a review
//	@Tags		products
//	@ID			deleteProductReview
//	@Produce	json
//	@Param		id			path		string	true	"Product ID"	format(uuid)
//	@Param		reviewId	path		string	true	"Review ID"		format(uuid)
//	@Success	200			{object}	SuccessResponse
//	@Failure	404			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/reviews/{reviewId} [delete]
func (h *ProductContentHandler) DeleteReview(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	reviewID, ok := h.pathUUID(c, "reviewId", "review")
	if !ok {
		return
	}

	if err := h.contentService.DeleteReview(c.Request.Context(), productID, reviewID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Review deleted successfully", nil)
}
