package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductFAQ is a question and answer shown on a product page
type ProductFAQ struct {
	shared.BaseEntity
	ProductID uuid.UUID
	Question  string
	Answer    string
	SortOrder int
	Status    shared.Status
}

// NewProductFAQ creates a new active FAQ entry
func NewProductFAQ(productID uuid.UUID, question, answer string) (*ProductFAQ, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id is required")
	}
	f := &ProductFAQ{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Status:     shared.StatusActive,
	}
	if err := f.SetQuestion(question); err != nil {
		return nil, err
	}
	if err := f.SetAnswer(answer); err != nil {
		return nil, err
	}
	return f, nil
}

// SetQuestion changes the question text
func (f *ProductFAQ) SetQuestion(q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return shared.NewValidationError("question is required")
	}
	if len(q) > 500 {
		return shared.NewValidationError("question cannot exceed 500 characters")
	}
	f.Question = q
	f.Touch()
	return nil
}

// SetAnswer changes the answer text
func (f *ProductFAQ) SetAnswer(a string) error {
	a = strings.TrimSpace(a)
	if a == "" {
		return shared.NewValidationError("answer is required")
	}
	f.Answer = a
	f.Touch()
	return nil
}

// SetSortOrder sets the display position
func (f *ProductFAQ) SetSortOrder(order int) {
	f.SortOrder = order
	f.Touch()
}

// SetStatus changes the status
func (f *ProductFAQ) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	f.Status = status
	f.Touch()
	return nil
}
