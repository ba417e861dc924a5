package persistence

import (
	"strings"
)

// SortColumns whitelists the columns a list query may order by. id,
// created_at and updated_at are always present.
type SortColumns map[string]struct{}

func sortable(columns ...string) SortColumns {
	s := SortColumns{"id": {}, "created_at": {}, "updated_at": {}}
	for _, c := range columns {
		s[c] = struct{}{}
	}
	return s
}

// Resolve returns field when it is whitelisted and fallback otherwise.
func (s SortColumns) Resolve(field, fallback string) string {
	field = strings.ToLower(strings.TrimSpace(field))
	if _, ok := s[field]; ok {
		return field
	}
	return fallback
}

// descending reports whether dir asks for descending order. Anything but
// "asc" sorts descending so newest rows come first by default.
func descending(dir string) bool {
	return !strings.EqualFold(strings.TrimSpace(dir), "asc")
}

var (
	baseSort           = sortable()
	countrySort        = sortable("name", "iso_code", "status")
	stateSort          = sortable("name", "state_code", "country_id", "status")
	citySort           = sortable("name", "state_id", "status")
	pincodeSort        = sortable("pincode", "area_name", "city_id", "status")
	addressSort        = sortable("full_name", "address_type", "postal_code")
	categorySort       = sortable("name", "slug", "sort_order", "status")
	productSort        = sortable("name", "slug", "sku", "category_id", "price", "offer_price", "status")
	faqSort            = sortable("sort_order", "status")
	reviewSort         = sortable("rating", "status")
	inventorySort      = sortable("quantity", "reserved_quantity", "low_stock_threshold", "status")
	couponSort         = sortable("code", "start_date", "end_date", "used_count", "status")
	paymentGatewaySort = sortable("name", "sort_order", "is_active")
)
