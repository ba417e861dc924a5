// Package payment holds payment-gateway configuration shown at checkout.
package payment

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentGateway is a configured payment provider
type PaymentGateway struct {
	shared.BaseEntity
	Name      string
	AppID     string
	SecretKey string
	IsActive  bool
	SortOrder int
}

// NewPaymentGateway creates an inactive gateway
func NewPaymentGateway(name, appID, secret string) (*PaymentGateway, error) {
	g := &PaymentGateway{BaseEntity: shared.NewBaseEntity()}
	if err := g.SetName(name); err != nil {
		return nil, err
	}
	g.SetCredentials(appID, secret)
	return g, nil
}

// SetName sets the gateway name
func (g *PaymentGateway) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name cannot exceed 100 characters")
	}
	g.Name = name
	g.Touch()
	return nil
}

// SetCredentials replaces the app id and secret
func (g *PaymentGateway) SetCredentials(appID, secret string) {
	g.AppID = strings.TrimSpace(appID)
	g.SecretKey = strings.TrimSpace(secret)
	g.Touch()
}

// SetActive toggles availability at checkout
func (g *PaymentGateway) SetActive(active bool) {
	g.IsActive = active
	g.Touch()
}

// SetSortOrder sets the display order
func (g *PaymentGateway) SetSortOrder(order int) {
	g.SortOrder = order
	g.Touch()
}

// MaskedSecret returns the secret key with all but the last 4 characters hidden
func (g *PaymentGateway) MaskedSecret() string {
	return MaskSecret(g.SecretKey)
}

// MaskSecret hides all but the last 4 characters of a secret
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
