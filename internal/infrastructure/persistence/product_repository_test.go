package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, categoryID uuid.UUID, name, sku, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(categoryID, name, "", sku, decimal.RequireFromString(price))
	require.NoError(t, err)
	return p
}

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormProductRepository(db)

	category, err := catalog.NewCategory("Snacks", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	chips := newTestProduct(t, category.ID, "Potato Chips", "CHIPS-1", "40")
	require.NoError(t, chips.SetQtyOffers(catalog.QtyOffers{
		{Qty: 5, Price: decimal.RequireFromString("35.50"), Label: "5+", Label2: "save 11%"},
		{Qty: 10, Price: decimal.RequireFromString("32"), Label: "10+"},
	}))
	chips.SetImages([]string{"https://cdn.example.com/chips.png"})
	chips.SetKeywords([]string{"crisps"})
	cookies := newTestProduct(t, category.ID, "Butter Cookies", "COOK-1", "120")
	nuts := newTestProduct(t, uuid.New(), "Cashew Nuts", "NUTS-1", "650")
	for _, p := range []*catalog.Product{chips, cookies, nuts} {
		require.NoError(t, repo.Save(ctx, p))
	}

	t.Run("qty offers and arrays round trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, chips.ID)
		require.NoError(t, err)
		require.Len(t, found.QtyOffers, 2)
		assert.Equal(t, 5, found.QtyOffers[0].Qty)
		assert.True(t, decimal.RequireFromString("35.5").Equal(found.QtyOffers[0].Price))
		assert.Equal(t, "save 11%", found.QtyOffers[0].Label2)
		assert.Equal(t, []string{"https://cdn.example.com/chips.png"}, found.Images)
		assert.Equal(t, []string{"crisps"}, found.Keywords)
		assert.True(t, decimal.NewFromInt(40).Equal(found.Price))
	})

	t.Run("empty arrays stay empty", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cookies.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.QtyOffers)
		assert.Empty(t, found.QtyOffers)
		assert.Equal(t, []string{}, found.Images)
	})

	t.Run("FindBySlug", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "potato-chips")
		require.NoError(t, err)
		assert.Equal(t, chips.ID, found.ID)

		_, err = repo.FindBySlug(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByIDs skips unknown ids", func(t *testing.T) {
		products, err := repo.FindByIDs(ctx, []uuid.UUID{chips.ID, nuts.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("price range and category filters", func(t *testing.T) {
		f := shared.NewFilter(1, 10, "", "").
			With("min_price", decimal.NewFromInt(50)).
			With("max_price", decimal.NewFromInt(700))
		products, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, products, 2)

		products, total, err = repo.FindAll(ctx, f.With("category_id", category.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, cookies.ID, products[0].ID)
	})

	t.Run("sort by price ascending", func(t *testing.T) {
		f := shared.NewFilter(1, 10, "", "")
		f.OrderBy, f.OrderDir = "price", "asc"
		products, _, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, chips.ID, products[0].ID)
		assert.Equal(t, nuts.ID, products[2].ID)
	})

	t.Run("slug and sku uniqueness", func(t *testing.T) {
		exists, err := repo.ExistsBySlug(ctx, "potato-chips", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, "CHIPS-1", &chips.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		dup := newTestProduct(t, category.ID, "Potato Chips", "CHIPS-2", "10")
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("CountByCategory", func(t *testing.T) {
		n, err := repo.CountByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestGormCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCategoryRepository(db)

	root, err := catalog.NewCategory("Food", "")
	require.NoError(t, err)
	root.SetSortOrder(2)
	require.NoError(t, repo.Save(ctx, root))

	child, err := catalog.NewCategory("Snacks", "")
	require.NoError(t, err)
	require.NoError(t, child.SetParent(&root.ID))
	child.SetSortOrder(1)
	require.NoError(t, repo.Save(ctx, child))

	has, err := repo.HasChildren(ctx, root.ID)
	require.NoError(t, err)
	assert.True(t, has)

	f := shared.NewFilter(1, 10, "", "")
	f.OrderBy, f.OrderDir = "sort_order", "asc"
	items, total, err := repo.FindAll(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, child.ID, items[0].ID)

	items, total, err = repo.FindAll(ctx, f.With("parent_id", root.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, items[0].ParentID)
	assert.Equal(t, root.ID, *items[0].ParentID)

	exists, err := repo.ExistsBySlug(ctx, "food", &root.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormProductContentRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	productID := uuid.New()

	t.Run("detail upsert", func(t *testing.T) {
		repo := NewGormProductDetailRepository(db)
		_, err := repo.FindByProductID(ctx, productID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		detail := catalog.NewProductDetail(productID)
		detail.Description = "Long form"
		detail.Specifications = []catalog.Specification{{Key: "Weight", Value: "200g"}}
		require.NoError(t, repo.Save(ctx, detail))

		detail.ReturnPolicy = "7 days"
		require.NoError(t, repo.Save(ctx, detail))

		found, err := repo.FindByProductID(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, "7 days", found.ReturnPolicy)
		assert.Equal(t, []catalog.Specification{{Key: "Weight", Value: "200g"}}, found.Specifications)
	})

	t.Run("faqs are listed by sort order", func(t *testing.T) {
		repo := NewGormProductFAQRepository(db)
		for i, q := range []string{"Second?", "First?"} {
			faq, err := catalog.NewProductFAQ(productID, q, "Yes")
			require.NoError(t, err)
			faq.SortOrder = 10 - i
			require.NoError(t, repo.Save(ctx, faq))
		}
		f := shared.NewFilter(1, 10, "", "").With("product_id", productID)
		f.OrderBy, f.OrderDir = "sort_order", "asc"
		faqs, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "First?", faqs[0].Question)
	})

	t.Run("review summary counts only active reviews", func(t *testing.T) {
		repo := NewGormProductReviewRepository(db)

		empty, err := repo.Summary(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, catalog.RatingSummary{}, empty)

		for i, rating := range []int{5, 4, 1} {
			review, err := catalog.NewProductReview(productID, nil, "Asha", rating, "", "tasty")
			require.NoError(t, err)
			if i < 2 {
				require.NoError(t, review.SetStatus(shared.StatusActive))
			}
			require.NoError(t, repo.Save(ctx, review))
		}

		summary, err := repo.Summary(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.ReviewCount)
		assert.InDelta(t, 4.5, summary.AverageRating, 0.001)

		f := shared.NewFilter(1, 10, "active", "").With("product_id", productID)
		reviews, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, reviews, 2)
	})
}
