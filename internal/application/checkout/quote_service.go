// Package checkout prices a cart into an order intent.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	addressapp "github.com/storefront/backend/internal/application/address"
	"github.com/storefront/backend/internal/domain/address"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductFinder loads the products in a cart
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error)
}

// StockReader loads inventory rows keyed by product id
type StockReader interface {
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*inventory.Inventory, error)
}

// AddressFinder loads an address owned by a user
type AddressFinder interface {
	FindForUser(ctx context.Context, userID, id uuid.UUID) (*address.Address, error)
}

// GatewayFinder loads an active payment gateway
type GatewayFinder interface {
	FindActive(ctx context.Context, id uuid.UUID) (*payment.PaymentGateway, error)
}

// CouponApplier computes a coupon discount on an amount
type CouponApplier interface {
	Apply(ctx context.Context, code string, amount decimal.Decimal) (*coupon.Coupon, decimal.Decimal, error)
}

// QuoteService prices a cart
type QuoteService struct {
	products  ProductFinder
	stock     StockReader
	addresses AddressFinder
	gateways  GatewayFinder
	coupons   CouponApplier
	logger    *zap.Logger
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	products ProductFinder,
	stock StockReader,
	addresses AddressFinder,
	gateways GatewayFinder,
	coupons CouponApplier,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		products:  products,
		stock:     stock,
		addresses: addresses,
		gateways:  gateways,
		coupons:   coupons,
		logger:    logger,
	}
}

// Quote prices the cart for caller. Repeated product ids are merged. Each
// line uses the best quantity tier of its product. Products without an
// inventory row are not stock-tracked.
func (s *QuoteService) Quote(ctx context.Context, caller identity.Principal, req QuoteRequest) (*QuoteResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("items cannot be empty")
	}

	order := make([]uuid.UUID, 0, len(req.Items))
	qtys := make(map[uuid.UUID]int, len(req.Items))
	for i, item := range req.Items {
		if item.Qty <= 0 {
			return nil, shared.NewValidationError("items[%d].qty must be greater than 0", i)
		}
		if _, seen := qtys[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		qtys[item.ProductID] += item.Qty
	}

	addr, err := s.addresses.FindForUser(ctx, caller.UserID, req.AddressID)
	if err != nil {
		return nil, err
	}
	if addr.Status != shared.StatusActive {
		return nil, shared.NewValidationError("address is not active")
	}

	gateway, err := s.gateways.FindActive(ctx, req.PaymentGatewayID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	stock, err := s.stock.FindByProductIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("load cart inventory: %w", err)
	}

	lines := make([]QuoteLine, 0, len(order))
	subtotal := decimal.Zero
	for _, id := range order {
		product, ok := byID[id]
		if !ok || !product.IsActive() {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Product %s not found", id))
		}
		qty := qtys[id]
		if inv, tracked := stock[id]; tracked && !inv.CanFulfill(qty) {
			return nil, shared.NewDomainError(shared.CodeInsufficientStock,
				fmt.Sprintf("Only %d of %s available", inv.Available(), product.Name))
		}

		unit, label := product.UnitPriceFor(qty)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, QuoteLine{
			ProductID:  id,
			Name:       product.Name,
			Qty:        qty,
			UnitPrice:  unit,
			LineTotal:  lineTotal,
			OfferLabel: label,
		})
	}

	discount := decimal.Zero
	couponCode := ""
	if req.CouponCode != "" {
		c, d, err := s.coupons.Apply(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount, couponCode = d, c.Code
	}

	s.logger.Debug("Checkout quoted",
		zap.String("user_id", caller.UserID.String()),
		zap.Int("lines", len(lines)),
		zap.String("subtotal", subtotal.StringFixed(2)),
		zap.String("discount", discount.StringFixed(2)))

	return &QuoteResponse{
		Lines:          lines,
		Subtotal:       subtotal,
		Discount:       discount,
		Total:          subtotal.Sub(discount),
		CouponCode:     couponCode,
		Address:        addressapp.ToAddressResponse(addr),
		PaymentGateway: QuoteGateway{ID: gateway.ID, Name: gateway.Name},
	}, nil
}
