package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// QtyOffer is a tiered price granted when at least Qty units are bought
type QtyOffer struct {
	Qty    int
	Price  decimal.Decimal
	Label  string
	Label2 string
}

// QtyOffers is the ordered list of tiers attached to a product
type QtyOffers []QtyOffer

// Validate checks every tier. A single bad tier rejects the whole list.
func (o QtyOffers) Validate() error {
	for i, offer := range o {
		if offer.Qty <= 0 {
			return shared.NewValidationError("qty_offers[%d].qty must be an integer greater than 0", i)
		}
		if offer.Price.IsNegative() {
			return shared.NewValidationError("qty_offers[%d].price must be greater than or equal to 0", i)
		}
		if strings.TrimSpace(offer.Label) == "" {
			return shared.NewValidationError("qty_offers[%d].label is required", i)
		}
	}
	return nil
}

// Best returns the tier with the highest Qty not exceeding qty
func (o QtyOffers) Best(qty int) (QtyOffer, bool) {
	var (
		best  QtyOffer
		found bool
	)
	for _, offer := range o {
		if offer.Qty <= qty && (!found || offer.Qty > best.Qty) {
			best = offer
			found = true
		}
	}
	return best, found
}

// ParseQtyOffers decodes qty_offers from a request payload. The payload may
// be a JSON array or a string containing a JSON-encoded array; null or an
// empty value yields an empty list. qty and price accept numbers or numeric
// strings.
func ParseQtyOffers(raw json.RawMessage) (QtyOffers, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return QtyOffers{}, nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, shared.NewValidationError("qty_offers must be valid JSON")
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			return QtyOffers{}, nil
		}
		raw = json.RawMessage(encoded)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var elems []any
	if err := dec.Decode(&elems); err != nil {
		return nil, shared.NewValidationError("qty_offers must be a JSON array")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, shared.NewValidationError("qty_offers must be a single JSON array")
	}

	offers := make(QtyOffers, 0, len(elems))
	for i, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, shared.NewValidationError("qty_offers[%d] must be an object", i)
		}

		qty, ok := parseOfferQty(obj["qty"])
		if !ok {
			return nil, shared.NewValidationError("qty_offers[%d].qty must be an integer greater than 0", i)
		}
		price, ok := parseOfferPrice(obj["price"])
		if !ok {
			return nil, shared.NewValidationError("qty_offers[%d].price must be a number greater than or equal to 0", i)
		}
		label, _ := obj["label"].(string)
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, shared.NewValidationError("qty_offers[%d].label is required", i)
		}
		label2, _ := obj["label2"].(string)

		offers = append(offers, QtyOffer{
			Qty:    qty,
			Price:  price,
			Label:  label,
			Label2: strings.TrimSpace(label2),
		})
	}
	return offers, nil
}

func parseOfferQty(v any) (int, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func parseOfferPrice(v any) (decimal.Decimal, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
