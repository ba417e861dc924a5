package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Specification is a single key/value row on the product detail page
type Specification struct {
	Key   string
	Value string
}

// ProductDetail holds the long-form content of a product. There is at most
// one detail per product.
type ProductDetail struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	Description    string
	Specifications []Specification
	ShippingInfo   string
	ReturnPolicy   string
}

// NewProductDetail creates an empty detail record for a product
func NewProductDetail(productID uuid.UUID) *ProductDetail {
	return &ProductDetail{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Specifications: []Specification{},
	}
}

// Update replaces the detail content
func (d *ProductDetail) Update(description, shippingInfo, returnPolicy string, specs []Specification) error {
	cleaned := make([]Specification, 0, len(specs))
	for i, s := range specs {
		key := strings.TrimSpace(s.Key)
		if key == "" {
			return shared.NewValidationError("specifications[%d].key is required", i)
		}
		cleaned = append(cleaned, Specification{Key: key, Value: strings.TrimSpace(s.Value)})
	}
	d.Description = strings.TrimSpace(description)
	d.ShippingInfo = strings.TrimSpace(shippingInfo)
	d.ReturnPolicy = strings.TrimSpace(returnPolicy)
	d.Specifications = cleaned
	d.Touch()
	return nil
}
