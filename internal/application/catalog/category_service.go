package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, category.Slug, nil); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if err := s.setParent(ctx, category, req.ParentID); err != nil {
			return nil, err
		}
	}

	category.SetDescription(req.Description)
	category.SetImage(req.Image)
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if err := applyStatus(req.Status, category.SetStatus); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Category")
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List lists categories
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) (shared.Paginated[CategoryResponse], error) {
	f := filter.Filter()
	if filter.SortBy == "" {
		f.OrderBy = "sort_order"
		f.OrderDir = "asc"
	}
	if filter.ParentID != nil {
		f = f.With("parent_id", *filter.ParentID)
	}

	categories, total, err := s.categoryRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}
	return shared.NewPaginated(toResponses(categories, ToCategoryResponse), total, f), nil
}

// Update applies the fields present in req
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Category")
	}

	if req.Name != nil {
		if err := category.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil {
		if err := category.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, category.Slug, &category.ID); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		if err := s.setParent(ctx, category, req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		category.SetDescription(*req.Description)
	}
	if req.Image != nil {
		category.SetImage(*req.Image)
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, category.SetStatus); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete deletes a category that has no sub-categories and no products
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "Category")
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewConflictError("Category has sub-categories and cannot be deleted")
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewConflictError("Category has %d products and cannot be deleted", count)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("Category with slug '%s' already exists", slug)
	}
	return nil
}

func (s *CategoryService) setParent(ctx context.Context, category *catalog.Category, parentID *uuid.UUID) error {
	if *parentID != category.ID {
		if _, err := s.categoryRepo.FindByID(ctx, *parentID); err != nil {
			return notFoundAs(err, "Parent category")
		}
	}
	return category.SetParent(parentID)
}
