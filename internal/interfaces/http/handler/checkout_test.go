package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	addressapp "github.com/storefront/backend/internal/application/address"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	couponapp "github.com/storefront/backend/internal/application/coupon"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	paymentapp "github.com/storefront/backend/internal/application/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	router    *gin.Engine
	productID uuid.UUID
	addressID uuid.UUID
	gatewayID uuid.UUID
}

func newCheckoutFixture(t *testing.T) (*testEnv, checkoutFixture) {
	t.Helper()
	env := newTestEnv(t)
	env.seedLocation(t, "560034")
	product := env.seedProduct(t, "TEA-250", "500", `[{"qty":3,"price":"450","label":"Buy 3"},{"qty":10,"price":"400","label":"Buy 10"}]`)

	_, err := env.inventory.Create(env.ctx, inventoryapp.CreateInventoryRequest{ProductID: product.ID, Quantity: 12})
	require.NoError(t, err)

	addr, err := env.addresses.Create(env.ctx, customerCaller, addressapp.CreateAddressRequest{
		FullName:     "Asha Rao",
		Mobile:       "9876543210",
		AddressLine1: "12 MG Road",
		PostalCode:   "560034",
	})
	require.NoError(t, err)

	gateway, err := env.gateways.Create(env.ctx, paymentapp.CreateGatewayRequest{Name: "Razorpay", AppID: "rzp", IsActive: true})
	require.NoError(t, err)

	start, end := couponWindow()
	_, err = env.coupons.Create(env.ctx, couponapp.CreateCouponRequest{
		Code:          "SAVE10",
		DiscountType:  "percentage",
		DiscountValue: mustDecimal(t, "10"),
		StartDate:     start,
		EndDate:       end,
	})
	require.NoError(t, err)

	r := env.router(&customerCaller)
	r.POST("/checkout/quote", NewCheckoutHandler(env.quotes).Quote)
	return env, checkoutFixture{router: r, productID: product.ID, addressID: addr.ID, gatewayID: gateway.ID}
}

func (f checkoutFixture) body(qty int, coupon string) map[string]any {
	return map[string]any{
		"items":              []map[string]any{{"product_id": f.productID, "qty": qty}},
		"address_id":         f.addressID,
		"payment_gateway_id": f.gatewayID,
		"coupon_code":        coupon,
	}
}

func TestCheckoutHandler_Quote(t *testing.T) {
	_, f := newCheckoutFixture(t)

	t.Run("tier price and coupon", func(t *testing.T) {
		w := perform(f.router, http.MethodPost, "/checkout/quote", f.body(4, "save10"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		quote := decode[checkoutapp.QuoteResponse](t, w).Data

		require.Len(t, quote.Lines, 1)
		line := quote.Lines[0]
		assert.Equal(t, 4, line.Qty)
		assert.Equal(t, "Buy 3", line.OfferLabel)
		assert.True(t, line.UnitPrice.Equal(mustDecimal(t, "450")), line.UnitPrice.String())
		assert.True(t, quote.Subtotal.Equal(mustDecimal(t, "1800")), quote.Subtotal.String())
		assert.True(t, quote.Discount.Equal(mustDecimal(t, "180")), quote.Discount.String())
		assert.True(t, quote.Total.Equal(mustDecimal(t, "1620")), quote.Total.String())
		assert.Equal(t, "SAVE10", quote.CouponCode)
		assert.Equal(t, f.addressID, quote.Address.ID)
		assert.Equal(t, "Razorpay", quote.PaymentGateway.Name)
	})

	t.Run("base price below the first tier", func(t *testing.T) {
		w := perform(f.router, http.MethodPost, "/checkout/quote", f.body(1, ""))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		quote := decode[checkoutapp.QuoteResponse](t, w).Data
		assert.Empty(t, quote.Lines[0].OfferLabel)
		assert.True(t, quote.Total.Equal(mustDecimal(t, "500")))
		assert.True(t, quote.Discount.IsZero())
	})

	t.Run("more than is in stock", func(t *testing.T) {
		w := perform(f.router, http.MethodPost, "/checkout/quote", f.body(20, ""))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	t.Run("invalid coupon", func(t *testing.T) {
		w := perform(f.router, http.MethodPost, "/checkout/quote", f.body(1, "BOGUS"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty cart", func(t *testing.T) {
		body := f.body(1, "")
		body["items"] = []map[string]any{}
		w := perform(f.router, http.MethodPost, "/checkout/quote", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown address", func(t *testing.T) {
		body := f.body(1, "")
		body["address_id"] = uuid.New()
		w := perform(f.router, http.MethodPost, "/checkout/quote", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckoutHandler_InactiveGateway(t *testing.T) {
	env, f := newCheckoutFixture(t)
	inactive := false
	_, err := env.gateways.Update(env.ctx, f.gatewayID, paymentapp.UpdateGatewayRequest{IsActive: &inactive})
	require.NoError(t, err)

	w := perform(f.router, http.MethodPost, "/checkout/quote", f.body(1, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCheckoutHandler_RequiresCaller(t *testing.T) {
	env := newTestEnv(t)
	r := env.router(nil)
	r.POST("/checkout/quote", NewCheckoutHandler(env.quotes).Quote)

	w := perform(r, http.MethodPost, "/checkout/quote", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
