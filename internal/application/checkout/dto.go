package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	addressapp "github.com/storefront/backend/internal/application/address"
)

// QuoteItem is one cart line sent by the storefront
type QuoteItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty" binding:"required,min=1,max=10000"`
}

// QuoteRequest is the cart, address, gateway and coupon chosen at checkout
type QuoteRequest struct {
	Items            []QuoteItem `json:"items" binding:"required,min=1,max=100,dive"`
	AddressID        uuid.UUID   `json:"address_id" binding:"required"`
	PaymentGatewayID uuid.UUID   `json:"payment_gateway_id" binding:"required"`
	CouponCode       string      `json:"coupon_code" binding:"max=32"`
}

// QuoteLine is a priced cart line
type QuoteLine struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Qty        int             `json:"qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	OfferLabel string          `json:"offer_label,omitempty"`
}

// QuoteGateway identifies the chosen payment gateway
type QuoteGateway struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuoteResponse is the priced order intent. Nothing is persisted.
type QuoteResponse struct {
	Lines          []QuoteLine                `json:"lines"`
	Subtotal       decimal.Decimal            `json:"subtotal"`
	Discount       decimal.Decimal            `json:"discount"`
	Total          decimal.Decimal            `json:"total"`
	CouponCode     string                     `json:"coupon_code,omitempty"`
	Address        addressapp.AddressResponse `json:"address"`
	PaymentGateway QuoteGateway               `json:"payment_gateway"`
}
