package catalog

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContentService manages the product page content hanging off a product:
// the long-form detail, FAQs and customer reviews.
type ContentService struct {
	productRepo catalog.ProductRepository
	detailRepo  catalog.ProductDetailRepository
	faqRepo     catalog.ProductFAQRepository
	reviewRepo  catalog.ProductReviewRepository
	logger      *zap.Logger
}

// NewContentService creates a new ContentService
func NewContentService(
	productRepo catalog.ProductRepository,
	detailRepo catalog.ProductDetailRepository,
	faqRepo catalog.ProductFAQRepository,
	reviewRepo catalog.ProductReviewRepository,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		productRepo: productRepo,
		detailRepo:  detailRepo,
		faqRepo:     faqRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// GetDetail returns the detail of a product. A product without a stored
// detail yields an empty one.
func (s *ContentService) GetDetail(ctx context.Context, productID uuid.UUID) (*ProductDetailResponse, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	detail, err := s.detailRepo.FindByProductID(ctx, productID)
	if errors.Is(err, shared.ErrNotFound) {
		detail = catalog.NewProductDetail(productID)
	} else if err != nil {
		return nil, err
	}
	resp := ToProductDetailResponse(detail)
	return &resp, nil
}

// UpsertDetail creates or replaces the detail of a product
func (s *ContentService) UpsertDetail(ctx context.Context, productID uuid.UUID, req UpsertProductDetailRequest) (*ProductDetailResponse, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	detail, err := s.detailRepo.FindByProductID(ctx, productID)
	if errors.Is(err, shared.ErrNotFound) {
		detail = catalog.NewProductDetail(productID)
	} else if err != nil {
		return nil, err
	}

	specs := make([]catalog.Specification, len(req.Specifications))
	for i, spec := range req.Specifications {
		specs[i] = catalog.Specification{Key: spec.Key, Value: spec.Value}
	}
	if err := detail.Update(req.Description, req.ShippingInfo, req.ReturnPolicy, specs); err != nil {
		return nil, err
	}
	if err := s.detailRepo.Save(ctx, detail); err != nil {
		return nil, err
	}

	resp := ToProductDetailResponse(detail)
	return &resp, nil
}

// ListFAQs lists the FAQs of a product ordered by sort_order
func (s *ContentService) ListFAQs(ctx context.Context, productID uuid.UUID, q query.ListQuery) (shared.Paginated[FAQResponse], error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return shared.Paginated[FAQResponse]{}, err
	}
	f := q.Filter().With("product_id", productID)
	if q.SortBy == "" {
		f.OrderBy = "sort_order"
		f.OrderDir = "asc"
	}
	faqs, total, err := s.faqRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[FAQResponse]{}, err
	}
	return shared.NewPaginated(toResponses(faqs, ToFAQResponse), total, f), nil
}

// CreateFAQ adds a FAQ to a product
func (s *ContentService) CreateFAQ(ctx context.Context, productID uuid.UUID, req CreateFAQRequest) (*FAQResponse, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	faq, err := catalog.NewProductFAQ(productID, req.Question, req.Answer)
	if err != nil {
		return nil, err
	}
	faq.SetSortOrder(req.SortOrder)
	if err := applyStatus(req.Status, faq.SetStatus); err != nil {
		return nil, err
	}
	if err := s.faqRepo.Save(ctx, faq); err != nil {
		return nil, err
	}
	resp := ToFAQResponse(faq)
	return &resp, nil
}

// UpdateFAQ applies the fields present in req
func (s *ContentService) UpdateFAQ(ctx context.Context, productID, faqID uuid.UUID, req UpdateFAQRequest) (*FAQResponse, error) {
	faq, err := s.findFAQ(ctx, productID, faqID)
	if err != nil {
		return nil, err
	}
	if req.Question != nil {
		if err := faq.SetQuestion(*req.Question); err != nil {
			return nil, err
		}
	}
	if req.Answer != nil {
		if err := faq.SetAnswer(*req.Answer); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		faq.SetSortOrder(*req.SortOrder)
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, faq.SetStatus); err != nil {
			return nil, err
		}
	}
	if err := s.faqRepo.Save(ctx, faq); err != nil {
		return nil, err
	}
	resp := ToFAQResponse(faq)
	return &resp, nil
}

// DeleteFAQ removes a FAQ from a product
func (s *ContentService) DeleteFAQ(ctx context.Context, productID, faqID uuid.UUID) error {
	if _, err := s.findFAQ(ctx, productID, faqID); err != nil {
		return err
	}
	return s.faqRepo.Delete(ctx, faqID)
}

// ListReviews lists the reviews of a product with its rating summary.
// Hidden reviews are included only for moderators.
func (s *ContentService) ListReviews(ctx context.Context, productID uuid.UUID, q query.ListQuery, includeHidden bool) (shared.Paginated[ReviewResponse], RatingSummaryResponse, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return shared.Paginated[ReviewResponse]{}, RatingSummaryResponse{}, err
	}

	f := q.Filter().With("product_id", productID)
	if !includeHidden {
		f.Status = shared.StatusActive
	}
	reviews, total, err := s.reviewRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ReviewResponse]{}, RatingSummaryResponse{}, err
	}

	summary, err := s.reviewRepo.Summary(ctx, productID)
	if err != nil {
		return shared.Paginated[ReviewResponse]{}, RatingSummaryResponse{}, err
	}

	return shared.NewPaginated(toResponses(reviews, ToReviewResponse), total, f), RatingSummaryResponse{
		AverageRating: math.Round(summary.AverageRating*10) / 10,
		ReviewCount:   summary.ReviewCount,
	}, nil
}

// CreateReview records a customer review. It stays hidden until an admin
// publishes it.
func (s *ContentService) CreateReview(ctx context.Context, caller identity.Principal, productID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, notFoundAs(err, "Product")
	}
	if !product.IsActive() {
		return nil, shared.NewNotFoundError("Product")
	}

	var userID *uuid.UUID
	if caller.UserID != uuid.Nil {
		id := caller.UserID
		userID = &id
	}
	review, err := catalog.NewProductReview(productID, userID, req.ReviewerName, req.Rating, req.Title, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("rating", review.Rating))

	resp := ToReviewResponse(review)
	return &resp, nil
}

// ModerateReview publishes or hides a review
func (s *ContentService) ModerateReview(ctx context.Context, productID, reviewID uuid.UUID, req ModerateReviewRequest) (*ReviewResponse, error) {
	review, err := s.findReview(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := applyStatus(req.Status, review.SetStatus); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	resp := ToReviewResponse(review)
	return &resp, nil
}

// DeleteReview removes a review
func (s *ContentService) DeleteReview(ctx context.Context, productID, reviewID uuid.UUID) error {
	if _, err := s.findReview(ctx, productID, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *ContentService) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return notFoundAs(err, "Product")
	}
	return nil
}

func (s *ContentService) findFAQ(ctx context.Context, productID, faqID uuid.UUID) (*catalog.ProductFAQ, error) {
	faq, err := s.faqRepo.FindByID(ctx, faqID)
	if err != nil {
		return nil, notFoundAs(err, "FAQ")
	}
	if faq.ProductID != productID {
		return nil, shared.NewNotFoundError("FAQ")
	}
	return faq, nil
}

func (s *ContentService) findReview(ctx context.Context, productID, reviewID uuid.UUID) (*catalog.ProductReview, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundAs(err, "Review")
	}
	if review.ProductID != productID {
		return nil, shared.NewNotFoundError("Review")
	}
	return review, nil
}
