package catalog

import (
	"testing"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("Home & Kitchen", "")
	require.NoError(t, err)
	assert.Equal(t, "home-kitchen", c.Slug)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, shared.StatusActive, c.Status)

	_, err = NewCategory("", "")
	assert.Error(t, err)
}

func TestCategory_SetParent(t *testing.T) {
	c, err := NewCategory("Tea", "")
	require.NoError(t, err)

	self := c.ID
	assert.Error(t, c.SetParent(&self))
	assert.NoError(t, c.SetParent(nil))
}

func TestNewProductReview(t *testing.T) {
	c, err := NewCategory("x", "")
	require.NoError(t, err)

	r, err := NewProductReview(c.ID, nil, "Asha", 5, "Great", "Loved it")
	require.NoError(t, err)
	assert.Equal(t, shared.StatusInactive, r.Status)

	_, err = NewProductReview(c.ID, nil, "Asha", 6, "", "")
	assert.Error(t, err)
	_, err = NewProductReview(c.ID, nil, "Asha", 0, "", "")
	assert.Error(t, err)
	_, err = NewProductReview(c.ID, nil, " ", 3, "", "")
	assert.Error(t, err)
}

func TestProductDetail_Update(t *testing.T) {
	c, err := NewCategory("x", "")
	require.NoError(t, err)
	d := NewProductDetail(c.ID)

	require.NoError(t, d.Update(" Long ", "", "", []Specification{{Key: " Weight ", Value: " 1kg "}}))
	assert.Equal(t, "Long", d.Description)
	assert.Equal(t, []Specification{{Key: "Weight", Value: "1kg"}}, d.Specifications)

	assert.Error(t, d.Update("", "", "", []Specification{{Key: "", Value: "v"}}))
}
