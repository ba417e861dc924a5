package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("derives slug from name", func(t *testing.T) {
		p, err := NewProduct(categoryID, "Basmati Rice 5kg", "", "RICE-5KG", decimal.NewFromInt(499))
		require.NoError(t, err)
		assert.Equal(t, "basmati-rice-5kg", p.Slug)
		assert.Equal(t, shared.StatusActive, p.Status)
		assert.Empty(t, p.QtyOffers)
	})

	t.Run("rejects invalid sku", func(t *testing.T) {
		_, err := NewProduct(categoryID, "Rice", "", "RICE 5KG", decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects nil category", func(t *testing.T) {
		_, err := NewProduct(uuid.Nil, "Rice", "", "RICE", decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects bad slug", func(t *testing.T) {
		_, err := NewProduct(categoryID, "Rice", "Rice--Bag", "RICE", decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestProduct_SetPricing(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Tea", "", "TEA", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.SetPricing(decimal.NewFromInt(100), decimal.NewFromInt(90)))
	assert.True(t, p.BasePrice().Equal(decimal.NewFromInt(90)))

	assert.Error(t, p.SetPricing(decimal.NewFromInt(100), decimal.NewFromInt(120)))
	assert.Error(t, p.SetPricing(decimal.NewFromInt(-1), decimal.Zero))
}

func TestParseQtyOffers(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		offers, err := ParseQtyOffers(json.RawMessage(`[{"qty":2,"price":180,"label":"Buy 2"},{"qty":"5","price":"400.50","label":" Buy 5 ","label2":"Save more"}]`))
		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Equal(t, 2, offers[0].Qty)
		assert.True(t, offers[0].Price.Equal(decimal.NewFromInt(180)))
		assert.Equal(t, 5, offers[1].Qty)
		assert.Equal(t, "Buy 5", offers[1].Label)
		assert.Equal(t, "Save more", offers[1].Label2)
		assert.Equal(t, "400.5", offers[1].Price.String())
	})

	t.Run("json encoded string", func(t *testing.T) {
		offers, err := ParseQtyOffers(json.RawMessage(`"[{\"qty\":3,\"price\":0,\"label\":\"Free\"}]"`))
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, 3, offers[0].Qty)
		assert.True(t, offers[0].Price.IsZero())
	})

	t.Run("null and empty", func(t *testing.T) {
		offers, err := ParseQtyOffers(json.RawMessage(`null`))
		require.NoError(t, err)
		assert.Empty(t, offers)

		offers, err = ParseQtyOffers(nil)
		require.NoError(t, err)
		assert.Empty(t, offers)

		offers, err = ParseQtyOffers(json.RawMessage(`""`))
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	invalid := map[string]string{
		"malformed json":     `[{"qty":1`,
		"malformed string":   `"[{qty:1}]"`,
		"not an array":       `{"qty":1,"price":1,"label":"x"}`,
		"element not object": `[1]`,
		"zero qty":           `[{"qty":0,"price":1,"label":"x"}]`,
		"negative qty":       `[{"qty":-2,"price":1,"label":"x"}]`,
		"fractional qty":     `[{"qty":1.5,"price":1,"label":"x"}]`,
		"non numeric qty":    `[{"qty":"two","price":1,"label":"x"}]`,
		"missing qty":        `[{"price":1,"label":"x"}]`,
		"negative price":     `[{"qty":1,"price":-0.01,"label":"x"}]`,
		"nan price":          `[{"qty":1,"price":"NaN","label":"x"}]`,
		"missing price":      `[{"qty":1,"label":"x"}]`,
		"blank label":        `[{"qty":1,"price":1,"label":"   "}]`,
		"missing label":      `[{"qty":1,"price":1}]`,
		"one bad among good": `[{"qty":1,"price":1,"label":"ok"},{"qty":2,"price":1,"label":""}]`,
		"trailing text":      `[{"qty":1,"price":1,"label":"x"}] garbage`,
		"extra brackets":     `[{"qty":1,"price":1,"label":"x"}]]]`,
		"second array":       `[{"qty":1,"price":1,"label":"x"}][]`,
		"string with tail":   `"[{\"qty\":1,\"price\":1,\"label\":\"x\"}]]"`,
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			offers, err := ParseQtyOffers(json.RawMessage(raw))
			require.Error(t, err)
			assert.Nil(t, offers)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestProduct_UnitPriceFor(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Soap", "", "SOAP", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, p.SetPricing(decimal.NewFromInt(50), decimal.NewFromInt(45)))
	require.NoError(t, p.SetQtyOffers(QtyOffers{
		{Qty: 6, Price: decimal.NewFromInt(40), Label: "Pack of 6"},
		{Qty: 3, Price: decimal.NewFromInt(43), Label: "Pack of 3"},
	}))

	price, label := p.UnitPriceFor(1)
	assert.True(t, price.Equal(decimal.NewFromInt(45)))
	assert.Empty(t, label)

	price, label = p.UnitPriceFor(4)
	assert.True(t, price.Equal(decimal.NewFromInt(43)))
	assert.Equal(t, "Pack of 3", label)

	price, label = p.UnitPriceFor(12)
	assert.True(t, price.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Pack of 6", label)
}

func TestQtyOffers_Validate(t *testing.T) {
	assert.NoError(t, QtyOffers{}.Validate())
	assert.Error(t, QtyOffers{{Qty: 0, Price: decimal.Zero, Label: "x"}}.Validate())
	assert.Error(t, QtyOffers{{Qty: 1, Price: decimal.NewFromInt(-1), Label: "x"}}.Validate())
	assert.Error(t, QtyOffers{{Qty: 1, Price: decimal.Zero, Label: ""}}.Validate())
}
