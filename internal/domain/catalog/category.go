package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Category groups products. Categories may nest one under another.
type Category struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Description string
	ParentID    *uuid.UUID
	Image       string
	SortOrder   int
	Status      shared.Status
}

// NewCategory creates a new active category. When slug is blank it is
// derived from the name.
func NewCategory(name, slug string) (*Category, error) {
	c := &Category{
		BaseEntity: shared.NewBaseEntity(),
		Status:     shared.StatusActive,
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(slug) == "" {
		slug = shared.Slugify(name)
	}
	if err := c.SetSlug(slug); err != nil {
		return nil, err
	}
	return c, nil
}

// SetName renames the category
func (c *Category) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Category name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetSlug changes the URL slug
func (c *Category) SetSlug(slug string) error {
	slug, err := ValidateSlug(slug)
	if err != nil {
		return err
	}
	c.Slug = slug
	c.Touch()
	return nil
}

// SetParent nests the category under parentID. nil makes it a root category.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewValidationError("Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.Touch()
	return nil
}

// SetDescription sets the free-text description
func (c *Category) SetDescription(desc string) {
	c.Description = strings.TrimSpace(desc)
	c.Touch()
}

// SetImage sets the category banner image URL
func (c *Category) SetImage(image string) {
	c.Image = strings.TrimSpace(image)
	c.Touch()
}

// SetSortOrder sets the display position
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.Touch()
}

// SetStatus changes the status
func (c *Category) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	c.Status = status
	c.Touch()
	return nil
}
