package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentGatewayRepository implements PaymentGatewayRepository using GORM
type GormPaymentGatewayRepository struct {
	db *gorm.DB
}

// NewGormPaymentGatewayRepository creates a new GormPaymentGatewayRepository
func NewGormPaymentGatewayRepository(db *gorm.DB) *GormPaymentGatewayRepository {
	return &GormPaymentGatewayRepository{db: db}
}

// FindByID finds a gateway by its ID
func (r *GormPaymentGatewayRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentGateway, error) {
	var model models.PaymentGatewayModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists gateways matching the filter
func (r *GormPaymentGatewayRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.PaymentGateway, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentGatewayModel{})
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	query = applySearch(query, filter.Search, "name")

	rows, total, err := findPage[models.PaymentGatewayModel](query, filter, paymentGatewaySort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	gateways := make([]payment.PaymentGateway, len(rows))
	for i := range rows {
		gateways[i] = *rows[i].ToDomain()
	}
	return gateways, total, nil
}

// FindActive lists active gateways ordered for display
func (r *GormPaymentGatewayRepository) FindActive(ctx context.Context) ([]payment.PaymentGateway, error) {
	var rows []models.PaymentGatewayModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	gateways := make([]payment.PaymentGateway, len(rows))
	for i := range rows {
		gateways[i] = *rows[i].ToDomain()
	}
	return gateways, nil
}

// ExistsByName checks whether another gateway uses the name, ignoring case
func (r *GormPaymentGatewayRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentGatewayModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	return existsQuery(query, excludeID)
}

// Save creates or updates a gateway
func (r *GormPaymentGatewayRepository) Save(ctx context.Context, g *payment.PaymentGateway) error {
	model := &models.PaymentGatewayModel{}
	model.FromDomain(g)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a gateway
func (r *GormPaymentGatewayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.PaymentGatewayModel{}, "id = ?", id))
}

var _ payment.PaymentGatewayRepository = (*GormPaymentGatewayRepository)(nil)
