package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/payment"
)

// CreateGatewayRequest represents a request to configure a payment gateway
type CreateGatewayRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	AppID     string `json:"app_id" binding:"max=255"`
	SecretKey string `json:"secret_key" binding:"max=500"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// UpdateGatewayRequest is a partial gateway update. An absent secret_key
// keeps the stored secret.
type UpdateGatewayRequest struct {
	ID        *uuid.UUID `json:"id"`
	Name      *string    `json:"name" binding:"omitempty,max=100"`
	AppID     *string    `json:"app_id" binding:"omitempty,max=255"`
	SecretKey *string    `json:"secret_key" binding:"omitempty,max=500"`
	IsActive  *bool      `json:"is_active"`
	SortOrder *int       `json:"sort_order"`
}

// GatewayListFilter filters the gateway list
type GatewayListFilter struct {
	query.ListQuery
	IsActive *bool `form:"is_active"`
}

// GatewayResponse represents a gateway in admin responses. The secret is masked.
type GatewayResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AppID        string    `json:"app_id"`
	SecretKey    string    `json:"secret_key"`
	HasSecretKey bool      `json:"has_secret_key"`
	IsActive     bool      `json:"is_active"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToGatewayResponse converts a domain PaymentGateway
func ToGatewayResponse(g *payment.PaymentGateway) GatewayResponse {
	return GatewayResponse{
		ID:           g.ID,
		Name:         g.Name,
		AppID:        g.AppID,
		SecretKey:    g.MaskedSecret(),
		HasSecretKey: g.SecretKey != "",
		IsActive:     g.IsActive,
		SortOrder:    g.SortOrder,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// PublicGatewayResponse is what the storefront sees at checkout
type PublicGatewayResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	AppID string    `json:"app_id"`
}

// ToPublicGatewayResponse converts a gateway for the storefront
func ToPublicGatewayResponse(g *payment.PaymentGateway) PublicGatewayResponse {
	return PublicGatewayResponse{ID: g.ID, Name: g.Name, AppID: g.AppID}
}
