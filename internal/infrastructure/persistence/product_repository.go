package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a product by its slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the products with the given ids. Missing ids are skipped.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "category_id", "category_id")
	query = applySearch(query, filter.Search, "name")
	if v, ok := filter.Filters["min_price"].(decimal.Decimal); ok {
		query = query.Where("price >= ?", v)
	}
	if v, ok := filter.Filters["max_price"].(decimal.Decimal); ok {
		query = query.Where("price <= ?", v)
	}

	rows, total, err := findPage[models.ProductModel](query, filter, productSort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, total, nil
}

// ExistsBySlug checks if another product already uses the slug
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug)))
	return existsQuery(query, excludeID)
}

// ExistsBySKU checks if another product already uses the SKU
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("sku = ?", strings.TrimSpace(sku))
	return existsQuery(query, excludeID)
}

// CountByCategory counts products in a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error)
}

// Delete deletes a product. Detail, FAQ, review and inventory rows go with it
// through ON DELETE CASCADE.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id))
}

// GormProductDetailRepository implements ProductDetailRepository using GORM
type GormProductDetailRepository struct {
	db *gorm.DB
}

// NewGormProductDetailRepository creates a new GormProductDetailRepository
func NewGormProductDetailRepository(db *gorm.DB) *GormProductDetailRepository {
	return &GormProductDetailRepository{db: db}
}

// FindByProductID finds the detail row of a product
func (r *GormProductDetailRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*catalog.ProductDetail, error) {
	var model models.ProductDetailModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates the detail row
func (r *GormProductDetailRepository) Save(ctx context.Context, detail *catalog.ProductDetail) error {
	model := &models.ProductDetailModel{}
	model.FromDomain(detail)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// GormProductFAQRepository implements ProductFAQRepository using GORM
type GormProductFAQRepository struct {
	db *gorm.DB
}

// NewGormProductFAQRepository creates a new GormProductFAQRepository
func NewGormProductFAQRepository(db *gorm.DB) *GormProductFAQRepository {
	return &GormProductFAQRepository{db: db}
}

// FindByID finds a FAQ entry by its ID
func (r *GormProductFAQRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductFAQ, error) {
	var model models.ProductFAQModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists FAQ entries matching the filter
func (r *GormProductFAQRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductFAQ, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductFAQModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "product_id", "product_id")
	query = applySearch(query, filter.Search, "question")

	rows, total, err := findPage[models.ProductFAQModel](query, filter, faqSort, "sort_order")
	if err != nil {
		return nil, 0, err
	}
	faqs := make([]catalog.ProductFAQ, len(rows))
	for i := range rows {
		faqs[i] = *rows[i].ToDomain()
	}
	return faqs, total, nil
}

// Save creates or updates a FAQ entry
func (r *GormProductFAQRepository) Save(ctx context.Context, faq *catalog.ProductFAQ) error {
	model := &models.ProductFAQModel{}
	model.FromDomain(faq)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a FAQ entry
func (r *GormProductFAQRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.ProductFAQModel{}, "id = ?", id))
}

// GormProductReviewRepository implements ProductReviewRepository using GORM
type GormProductReviewRepository struct {
	db *gorm.DB
}

// NewGormProductReviewRepository creates a new GormProductReviewRepository
func NewGormProductReviewRepository(db *gorm.DB) *GormProductReviewRepository {
	return &GormProductReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormProductReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductReview, error) {
	var model models.ProductReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists reviews matching the filter
func (r *GormProductReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductReview, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductReviewModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "product_id", "product_id")
	query = applySearch(query, filter.Search, "comment", "title")

	rows, total, err := findPage[models.ProductReviewModel](query, filter, reviewSort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	reviews := make([]catalog.ProductReview, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, total, nil
}

// Summary aggregates the active reviews of a product
func (r *GormProductReviewRepository) Summary(ctx context.Context, productID uuid.UUID) (catalog.RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&models.ProductReviewModel{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, shared.StatusActive).
		Scan(&row).Error
	if err != nil {
		return catalog.RatingSummary{}, err
	}
	summary := catalog.RatingSummary{ReviewCount: row.Count}
	if row.Average != nil {
		summary.AverageRating = *row.Average
	}
	return summary, nil
}

// Save creates or updates a review
func (r *GormProductReviewRepository) Save(ctx context.Context, review *catalog.ProductReview) error {
	model := &models.ProductReviewModel{}
	model.FromDomain(review)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a review
func (r *GormProductReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.ProductReviewModel{}, "id = ?", id))
}

var (
	_ catalog.ProductRepository       = (*GormProductRepository)(nil)
	_ catalog.ProductDetailRepository = (*GormProductDetailRepository)(nil)
	_ catalog.ProductFAQRepository    = (*GormProductFAQRepository)(nil)
	_ catalog.ProductReviewRepository = (*GormProductReviewRepository)(nil)
)
