package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	offers, err := catalog.ParseQtyOffers(req.QtyOffers)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.CategoryID, req.Name, req.Slug, req.SKU, req.Price)
	if err != nil {
		return nil, err
	}
	if req.OfferPrice != nil {
		if err := product.SetPricing(req.Price, *req.OfferPrice); err != nil {
			return nil, err
		}
	}
	if err := product.SetQtyOffers(offers); err != nil {
		return nil, err
	}
	if err := product.SetShortDescription(req.ShortDescription); err != nil {
		return nil, err
	}
	product.SetImages(req.Images)
	product.SetKeywords(req.Keywords)
	if err := applyStatus(req.Status, product.SetStatus); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, product, nil); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.Int("qty_offers", len(product.QtyOffers)))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Product")
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySlug retrieves an active product by its slug for the storefront
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, notFoundAs(err, "Product")
	}
	if !product.IsActive() {
		return nil, shared.NewNotFoundError("Product")
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List lists products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	f := filter.Filter()
	if filter.CategoryID != nil {
		f = f.With("category_id", *filter.CategoryID)
	}

	var minPrice, maxPrice *decimal.Decimal
	for _, bound := range []struct {
		raw  string
		key  string
		dest **decimal.Decimal
	}{
		{filter.MinPrice, "min_price", &minPrice},
		{filter.MaxPrice, "max_price", &maxPrice},
	} {
		raw := strings.TrimSpace(bound.raw)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return shared.Paginated[ProductResponse]{}, shared.NewValidationError("%s must be a non-negative number", bound.key)
		}
		*bound.dest = &d
		f = f.With(bound.key, d)
	}
	if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
		return shared.Paginated[ProductResponse]{}, shared.NewValidationError("min_price cannot exceed max_price")
	}

	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(toResponses(products, ToProductResponse), total, f), nil
}

// Update applies the fields present in req. Tiered offers go through the
// same validator as Create.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Product")
	}

	if req.Name != nil {
		if err := product.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil {
		if err := product.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
	}
	if req.SKU != nil {
		if err := product.SetSKU(*req.SKU); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		if err := product.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.ShortDescription != nil {
		if err := product.SetShortDescription(*req.ShortDescription); err != nil {
			return nil, err
		}
	}
	if req.Price != nil || req.OfferPrice != nil {
		price, offer := product.Price, product.OfferPrice
		if req.Price != nil {
			price = *req.Price
		}
		if req.OfferPrice != nil {
			offer = *req.OfferPrice
		}
		if err := product.SetPricing(price, offer); err != nil {
			return nil, err
		}
	}
	if req.QtyOffers != nil {
		offers, err := catalog.ParseQtyOffers(req.QtyOffers)
		if err != nil {
			return nil, err
		}
		if err := product.SetQtyOffers(offers); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		product.SetImages(*req.Images)
	}
	if req.Keywords != nil {
		product.SetKeywords(*req.Keywords)
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, product.SetStatus); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUnique(ctx, product, &product.ID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product together with its detail, FAQs, reviews and inventory row
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "Product")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return notFoundAs(err, "Category")
	}
	return nil
}

func (s *ProductService) ensureUnique(ctx context.Context, product *catalog.Product, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, product.Slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("Product with slug '%s' already exists", product.Slug)
	}

	exists, err = s.productRepo.ExistsBySKU(ctx, product.SKU, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("Product with sku '%s' already exists", product.SKU)
	}
	return nil
}
