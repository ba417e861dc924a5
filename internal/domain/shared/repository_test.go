package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFilter_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		status        string
		wantPage      int
		wantLimit     int
		wantStatus    Status
		wantOffsetVal int
	}{
		{"zero values use defaults", 0, 0, "", 1, 10, "", 0},
		{"negative values use defaults", -3, -1, "", 1, 10, "", 0},
		{"limit clamped to max", 2, 500, "", 2, 100, "", 100},
		{"active status applied", 3, 20, "active", 3, 20, StatusActive, 40},
		{"inactive status applied", 1, 10, "inactive", 1, 10, StatusInactive, 0},
		{"unknown status ignored", 1, 10, "ACTIVE", 1, 10, "", 0},
		{"garbage status ignored", 1, 10, "deleted", 1, 10, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.page, tt.limit, tt.status, "")
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
			assert.Equal(t, tt.wantStatus, f.Status)
			assert.Equal(t, tt.wantOffsetVal, f.Offset())
			assert.Equal(t, "created_at", f.OrderBy)
			assert.Equal(t, "desc", f.OrderDir)
		})
	}
}

func TestNewPagination(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		p := NewPagination(1, 10, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("first page of many", func(t *testing.T) {
		p := NewPagination(1, 10, 25)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPagination(3, 10, 25)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := NewPagination(2, 10, 20)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("page beyond total", func(t *testing.T) {
		p := NewPagination(5, 10, 11)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})
}

func TestFilter_With(t *testing.T) {
	f := Filter{}
	f = f.With("country_id", "abc")
	assert.Equal(t, "abc", f.Filters["country_id"])
}
