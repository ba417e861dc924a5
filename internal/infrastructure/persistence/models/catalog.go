package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryModel is the persistence model for the Category entity
type CategoryModel struct {
	BaseModel
	Name        string        `gorm:"type:varchar(100);not null"`
	Slug        string        `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string        `gorm:"type:text"`
	ParentID    *uuid.UUID    `gorm:"type:uuid;index"`
	Image       string        `gorm:"type:varchar(500)"`
	SortOrder   int           `gorm:"not null;default:0"`
	Status      shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		ParentID:    m.ParentID,
		Image:       m.Image,
		SortOrder:   m.SortOrder,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Description = c.Description
	m.ParentID = c.ParentID
	m.Image = c.Image
	m.SortOrder = c.SortOrder
	m.Status = c.Status
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// QtyOfferModel is the stored shape of one quantity tier
type QtyOfferModel struct {
	Qty    int             `json:"qty"`
	Price  decimal.Decimal `json:"price"`
	Label  string          `json:"label"`
	Label2 string          `json:"label2"`
}

// ProductModel is the persistence model for the Product aggregate root.
// Tiers, images and keywords are stored as JSON columns.
type ProductModel struct {
	BaseModel
	Name             string          `gorm:"type:varchar(200);not null"`
	Slug             string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	SKU              string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShortDescription string          `gorm:"type:varchar(500)"`
	Price            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OfferPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	QtyOffers        []QtyOfferModel `gorm:"type:text;serializer:json"`
	Images           []string        `gorm:"type:text;serializer:json"`
	Keywords         []string        `gorm:"type:text;serializer:json"`
	Status           shared.Status   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	offers := make(catalog.QtyOffers, 0, len(m.QtyOffers))
	for _, o := range m.QtyOffers {
		offers = append(offers, catalog.QtyOffer{Qty: o.Qty, Price: o.Price, Label: o.Label, Label2: o.Label2})
	}
	images := m.Images
	if images == nil {
		images = []string{}
	}
	keywords := m.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &catalog.Product{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		Slug:             m.Slug,
		SKU:              m.SKU,
		CategoryID:       m.CategoryID,
		ShortDescription: m.ShortDescription,
		Price:            m.Price,
		OfferPrice:       m.OfferPrice,
		QtyOffers:        offers,
		Images:           images,
		Keywords:         keywords,
		Status:           m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Slug = p.Slug
	m.SKU = p.SKU
	m.CategoryID = p.CategoryID
	m.ShortDescription = p.ShortDescription
	m.Price = p.Price
	m.OfferPrice = p.OfferPrice
	m.QtyOffers = make([]QtyOfferModel, 0, len(p.QtyOffers))
	for _, o := range p.QtyOffers {
		m.QtyOffers = append(m.QtyOffers, QtyOfferModel{Qty: o.Qty, Price: o.Price, Label: o.Label, Label2: o.Label2})
	}
	m.Images = append([]string{}, p.Images...)
	m.Keywords = append([]string{}, p.Keywords...)
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// SpecificationModel is one stored key/value specification row
type SpecificationModel struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ProductDetailModel holds the long-form content of a product, one row per product
type ProductDetailModel struct {
	BaseModel
	ProductID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Description    string               `gorm:"type:text"`
	Specifications []SpecificationModel `gorm:"type:text;serializer:json"`
	ShippingInfo   string               `gorm:"type:text"`
	ReturnPolicy   string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductDetailModel) TableName() string {
	return "product_details"
}

// ToDomain converts the persistence model to a domain ProductDetail
func (m *ProductDetailModel) ToDomain() *catalog.ProductDetail {
	specs := make([]catalog.Specification, 0, len(m.Specifications))
	for _, s := range m.Specifications {
		specs = append(specs, catalog.Specification{Key: s.Key, Value: s.Value})
	}
	return &catalog.ProductDetail{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		Description:    m.Description,
		Specifications: specs,
		ShippingInfo:   m.ShippingInfo,
		ReturnPolicy:   m.ReturnPolicy,
	}
}

// FromDomain populates the persistence model from a domain ProductDetail
func (m *ProductDetailModel) FromDomain(d *catalog.ProductDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ProductID = d.ProductID
	m.Description = d.Description
	m.Specifications = make([]SpecificationModel, 0, len(d.Specifications))
	for _, s := range d.Specifications {
		m.Specifications = append(m.Specifications, SpecificationModel{Key: s.Key, Value: s.Value})
	}
	m.ShippingInfo = d.ShippingInfo
	m.ReturnPolicy = d.ReturnPolicy
}

// ProductFAQModel is the persistence model for a product FAQ entry
type ProductFAQModel struct {
	BaseModel
	ProductID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Question  string        `gorm:"type:varchar(500);not null"`
	Answer    string        `gorm:"type:text;not null"`
	SortOrder int           `gorm:"not null;default:0"`
	Status    shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductFAQModel) TableName() string {
	return "product_faqs"
}

// ToDomain converts the persistence model to a domain ProductFAQ
func (m *ProductFAQModel) ToDomain() *catalog.ProductFAQ {
	return &catalog.ProductFAQ{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		Question:   m.Question,
		Answer:     m.Answer,
		SortOrder:  m.SortOrder,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain ProductFAQ
func (m *ProductFAQModel) FromDomain(f *catalog.ProductFAQ) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.ProductID = f.ProductID
	m.Question = f.Question
	m.Answer = f.Answer
	m.SortOrder = f.SortOrder
	m.Status = f.Status
}

// ProductReviewModel is the persistence model for a product review
type ProductReviewModel struct {
	BaseModel
	ProductID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	UserID       *uuid.UUID    `gorm:"type:uuid;index"`
	ReviewerName string        `gorm:"type:varchar(100);not null"`
	Rating       int           `gorm:"not null"`
	Title        string        `gorm:"type:varchar(200)"`
	Comment      string        `gorm:"type:text"`
	Status       shared.Status `gorm:"type:varchar(20);not null;default:'inactive'"`
}

// TableName returns the table name for GORM
func (ProductReviewModel) TableName() string {
	return "product_reviews"
}

// ToDomain converts the persistence model to a domain ProductReview
func (m *ProductReviewModel) ToDomain() *catalog.ProductReview {
	return &catalog.ProductReview{
		BaseEntity:   m.BaseModel.ToDomain(),
		ProductID:    m.ProductID,
		UserID:       m.UserID,
		ReviewerName: m.ReviewerName,
		Rating:       m.Rating,
		Title:        m.Title,
		Comment:      m.Comment,
		Status:       m.Status,
	}
}

// FromDomain populates the persistence model from a domain ProductReview
func (m *ProductReviewModel) FromDomain(r *catalog.ProductReview) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.UserID = r.UserID
	m.ReviewerName = r.ReviewerName
	m.Rating = r.Rating
	m.Title = r.Title
	m.Comment = r.Comment
	m.Status = r.Status
}
