package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"max=200"`
	Description string     `json:"description" binding:"max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Image       string     `json:"image" binding:"max=500"`
	SortOrder   *int       `json:"sort_order"`
	Status      string     `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateCategoryRequest is a partial category update
type UpdateCategoryRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string    `json:"slug" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Image       *string    `json:"image" binding:"omitempty,max=500"`
	SortOrder   *int       `json:"sort_order"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CategoryListFilter filters the category list
type CategoryListFilter struct {
	query.ListQuery
	ParentID *uuid.UUID `form:"-"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Image       string     `json:"image"`
	SortOrder   int        `json:"sort_order"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		Image:       c.Image,
		SortOrder:   c.SortOrder,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateProductRequest represents a request to create a product.
// QtyOffers accepts a JSON array or a string holding a JSON array.
type CreateProductRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Slug             string           `json:"slug" binding:"max=200"`
	SKU              string           `json:"sku" binding:"required,min=1,max=64"`
	CategoryID       uuid.UUID        `json:"category_id" binding:"required"`
	ShortDescription string           `json:"short_description" binding:"max=500"`
	Price            decimal.Decimal  `json:"price"`
	OfferPrice       *decimal.Decimal `json:"offer_price"`
	QtyOffers        json.RawMessage  `json:"qty_offers" swaggertype:"array,object"`
	Images           []string         `json:"images"`
	Keywords         []string         `json:"keywords"`
	Status           string           `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateProductRequest is a partial product update. A qty_offers value of
// null clears the tiers; an absent field leaves them unchanged.
type UpdateProductRequest struct {
	ID               *uuid.UUID       `json:"id"`
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Slug             *string          `json:"slug" binding:"omitempty,max=200"`
	SKU              *string          `json:"sku" binding:"omitempty,min=1,max=64"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=500"`
	Price            *decimal.Decimal `json:"price"`
	OfferPrice       *decimal.Decimal `json:"offer_price"`
	QtyOffers        json.RawMessage  `json:"qty_offers" swaggertype:"array,object"`
	Images           *[]string        `json:"images"`
	Keywords         *[]string        `json:"keywords"`
	Status           *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProductListFilter filters the product list
type ProductListFilter struct {
	query.ListQuery
	CategoryID *uuid.UUID `form:"-"`
	MinPrice   string     `form:"min_price"`
	MaxPrice   string     `form:"max_price"`
}

// QtyOfferDTO is one quantity tier
type QtyOfferDTO struct {
	Qty    int             `json:"qty"`
	Price  decimal.Decimal `json:"price"`
	Label  string          `json:"label"`
	Label2 string          `json:"label2,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	SKU              string          `json:"sku"`
	CategoryID       uuid.UUID       `json:"category_id"`
	ShortDescription string          `json:"short_description"`
	Price            decimal.Decimal `json:"price"`
	OfferPrice       decimal.Decimal `json:"offer_price"`
	QtyOffers        []QtyOfferDTO   `json:"qty_offers"`
	Images           []string        `json:"images"`
	Keywords         []string        `json:"keywords"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	offers := make([]QtyOfferDTO, len(p.QtyOffers))
	for i, o := range p.QtyOffers {
		offers[i] = QtyOfferDTO{Qty: o.Qty, Price: o.Price, Label: o.Label, Label2: o.Label2}
	}
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		CategoryID:       p.CategoryID,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		OfferPrice:       p.OfferPrice,
		QtyOffers:        offers,
		Images:           nonNil(p.Images),
		Keywords:         nonNil(p.Keywords),
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// SpecificationDTO is one key/value row of a product detail
type SpecificationDTO struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpsertProductDetailRequest replaces the detail content of a product
type UpsertProductDetailRequest struct {
	Description    string             `json:"description"`
	Specifications []SpecificationDTO `json:"specifications" binding:"dive"`
	ShippingInfo   string             `json:"shipping_info"`
	ReturnPolicy   string             `json:"return_policy"`
}

// ProductDetailResponse represents a product detail in API responses
type ProductDetailResponse struct {
	ProductID      uuid.UUID          `json:"product_id"`
	Description    string             `json:"description"`
	Specifications []SpecificationDTO `json:"specifications"`
	ShippingInfo   string             `json:"shipping_info"`
	ReturnPolicy   string             `json:"return_policy"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ToProductDetailResponse converts a domain ProductDetail
func ToProductDetailResponse(d *catalog.ProductDetail) ProductDetailResponse {
	specs := make([]SpecificationDTO, len(d.Specifications))
	for i, s := range d.Specifications {
		specs[i] = SpecificationDTO{Key: s.Key, Value: s.Value}
	}
	return ProductDetailResponse{
		ProductID:      d.ProductID,
		Description:    d.Description,
		Specifications: specs,
		ShippingInfo:   d.ShippingInfo,
		ReturnPolicy:   d.ReturnPolicy,
		UpdatedAt:      d.UpdatedAt,
	}
}

// CreateFAQRequest represents a request to add a product FAQ
type CreateFAQRequest struct {
	Question  string `json:"question" binding:"required,max=500"`
	Answer    string `json:"answer" binding:"required"`
	SortOrder int    `json:"sort_order"`
	Status    string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateFAQRequest is a partial FAQ update
type UpdateFAQRequest struct {
	Question  *string `json:"question" binding:"omitempty,max=500"`
	Answer    *string `json:"answer"`
	SortOrder *int    `json:"sort_order"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// FAQResponse represents a product FAQ in API responses
type FAQResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	SortOrder int       `json:"sort_order"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToFAQResponse converts a domain ProductFAQ
func ToFAQResponse(f *catalog.ProductFAQ) FAQResponse {
	return FAQResponse{
		ID:        f.ID,
		ProductID: f.ProductID,
		Question:  f.Question,
		Answer:    f.Answer,
		SortOrder: f.SortOrder,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// CreateReviewRequest represents a customer review submission
type CreateReviewRequest struct {
	ReviewerName string `json:"reviewer_name" binding:"required,max=100"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Title        string `json:"title" binding:"max=200"`
	Comment      string `json:"comment" binding:"max=5000"`
}

// ModerateReviewRequest publishes or hides a review
type ModerateReviewRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ReviewResponse represents a product review in API responses
type ReviewResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	ReviewerName string     `json:"reviewer_name"`
	Rating       int        `json:"rating"`
	Title        string     `json:"title"`
	Comment      string     `json:"comment"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToReviewResponse converts a domain ProductReview
func ToReviewResponse(r *catalog.ProductReview) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		UserID:       r.UserID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

// RatingSummaryResponse is the aggregate of a product's published reviews
type RatingSummaryResponse struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func toResponses[E any, R any](items []E, convert func(*E) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = convert(&items[i])
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
