package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add pincode index", "add_pincode_index"},
		{"Add-Pincode-Index", "add_pincode_index"},
		{"ADD__PINCODE__INDEX", "add_pincode_index"},
		{"Create Coupons 2", "create_coupons_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	mf, err := createMigrationAt(dir, "Add Review Index", "Index reviews by rating", now)
	require.NoError(t, err)

	assert.Equal(t, "20260314092653", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20260314092653_add_review_index.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20260314092653_add_review_index.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_review_index")
	assert.Contains(t, string(up), "Index reviews by rating")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")
}

func TestCreateMigration_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	_, err := createMigrationAt(dir, "same", "", now)
	require.NoError(t, err)
	_, err = createMigrationAt(dir, "same", "", now)
	assert.Error(t, err)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"20260102000000_b.up.sql":   {Data: []byte("--")},
		"20260102000000_b.down.sql": {Data: []byte("--")},
		"20260101000000_a.up.sql":   {Data: []byte("--")},
		"20260101000000_a.down.sql": {Data: []byte("--")},
		"README.md":                 {Data: []byte("docs")},
		"subdir.up.sql/x":           {Data: []byte("--")},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_a", "20260102000000_b"}, names)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	names, err := ListMigrations(os.DirFS("/nonexistent/path/to/migrations"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "20260105090000_create_locations", names[0])

	for _, name := range names {
		_, err := migrations.FS.Open(name + ".down.sql")
		assert.NoError(t, err, "missing rollback for %s", name)
	}
}
