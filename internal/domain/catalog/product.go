package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	skuPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Product is a sellable catalog item
type Product struct {
	shared.BaseEntity
	Name             string
	Slug             string
	SKU              string
	CategoryID       uuid.UUID
	ShortDescription string
	Price            decimal.Decimal
	OfferPrice       decimal.Decimal
	QtyOffers        QtyOffers
	Images           []string
	Keywords         []string
	Status           shared.Status
}

// NewProduct creates a new active product. When slug is blank it is derived
// from the name.
func NewProduct(categoryID uuid.UUID, name, slug, sku string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		Price:      decimal.Zero,
		OfferPrice: decimal.Zero,
		QtyOffers:  QtyOffers{},
		Images:     []string{},
		Keywords:   []string{},
		Status:     shared.StatusActive,
	}
	if err := p.SetCategory(categoryID); err != nil {
		return nil, err
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(slug) == "" {
		slug = shared.Slugify(name)
	}
	if err := p.SetSlug(slug); err != nil {
		return nil, err
	}
	if err := p.SetSKU(sku); err != nil {
		return nil, err
	}
	if err := p.SetPricing(price, decimal.Zero); err != nil {
		return nil, err
	}
	return p, nil
}

// SetName renames the product
func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Product name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetSlug changes the URL slug
func (p *Product) SetSlug(slug string) error {
	slug, err := ValidateSlug(slug)
	if err != nil {
		return err
	}
	p.Slug = slug
	p.Touch()
	return nil
}

// SetSKU changes the stock keeping unit
func (p *Product) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewValidationError("sku is required")
	}
	if len(sku) > 64 {
		return shared.NewValidationError("sku cannot exceed 64 characters")
	}
	if !skuPattern.MatchString(sku) {
		return shared.NewValidationError("sku can only contain letters, numbers, underscores, and hyphens")
	}
	p.SKU = sku
	p.Touch()
	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewValidationError("category_id is required")
	}
	p.CategoryID = categoryID
	p.Touch()
	return nil
}

// SetPricing sets the list price and the optional offer price. A zero offer
// price means no offer.
func (p *Product) SetPricing(price, offerPrice decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("price must be greater than or equal to 0")
	}
	if offerPrice.IsNegative() {
		return shared.NewValidationError("offer_price must be greater than or equal to 0")
	}
	if offerPrice.GreaterThan(price) {
		return shared.NewValidationError("offer_price cannot exceed price")
	}
	p.Price = price
	p.OfferPrice = offerPrice
	p.Touch()
	return nil
}

// SetQtyOffers replaces the tiered offers
func (p *Product) SetQtyOffers(offers QtyOffers) error {
	if offers == nil {
		offers = QtyOffers{}
	}
	if err := offers.Validate(); err != nil {
		return err
	}
	p.QtyOffers = offers
	p.Touch()
	return nil
}

// SetShortDescription sets the listing blurb
func (p *Product) SetShortDescription(desc string) error {
	desc = strings.TrimSpace(desc)
	if len(desc) > 500 {
		return shared.NewValidationError("short_description cannot exceed 500 characters")
	}
	p.ShortDescription = desc
	p.Touch()
	return nil
}

// SetImages replaces the image URLs
func (p *Product) SetImages(images []string) {
	p.Images = shared.CleanStrings(images)
	p.Touch()
}

// SetKeywords replaces the search keywords
func (p *Product) SetKeywords(keywords []string) {
	p.Keywords = shared.CleanStrings(keywords)
	p.Touch()
}

// SetStatus changes the status
func (p *Product) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	p.Status = status
	p.Touch()
	return nil
}

// IsActive reports whether the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == shared.StatusActive
}

// BasePrice is the single-unit price: the offer price when set, else the list price
func (p *Product) BasePrice() decimal.Decimal {
	if p.OfferPrice.IsPositive() {
		return p.OfferPrice
	}
	return p.Price
}

// UnitPriceFor returns the unit price for buying qty units and the label of
// the tier that produced it (empty when the base price applies).
func (p *Product) UnitPriceFor(qty int) (decimal.Decimal, string) {
	if offer, ok := p.QtyOffers.Best(qty); ok {
		return offer.Price, offer.Label
	}
	return p.BasePrice(), ""
}

// ValidateSlug normalizes and checks a URL slug
func ValidateSlug(slug string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return "", shared.NewValidationError("slug is required")
	}
	if len(slug) > 200 {
		return "", shared.NewValidationError("slug cannot exceed 200 characters")
	}
	if !slugPattern.MatchString(slug) {
		return "", shared.NewValidationError("slug can only contain lowercase letters, numbers, and single hyphens")
	}
	return slug, nil
}
