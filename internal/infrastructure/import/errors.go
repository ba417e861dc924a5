package sheetimport

import (
	"errors"
	"fmt"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the upload has no content
	ErrEmptyFile = errors.New("file is empty")

	// ErrMissingHeader is returned when no non-empty header row exists
	ErrMissingHeader = errors.New("file has no header row")

	// ErrFileTooLarge is returned when the file exceeds the configured size
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")

	// ErrInvalidEncoding is returned when a CSV file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding, expected UTF-8")

	// ErrNoWorksheet is returned when a workbook has no sheets
	ErrNoWorksheet = errors.New("workbook has no worksheets")
)

// MissingColumnsError reports required columns the header row lacks
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column(s): %v", e.Columns)
}

// RowError is a validation failure on one spreadsheet row
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Error formats the error with its 1-based spreadsheet row number
func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ErrorCollection accumulates row errors in the order they occur
type ErrorCollection struct {
	errors []RowError
}

// NewErrorCollection creates an empty collection
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{errors: make([]RowError, 0)}
}

// Add records a row error
func (ec *ErrorCollection) Add(row int, format string, args ...any) {
	ec.errors = append(ec.errors, RowError{Row: row, Message: fmt.Sprintf(format, args...)})
}

// Errors returns the collected errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Messages returns every error formatted as "Row N: message"
func (ec *ErrorCollection) Messages() []string {
	out := make([]string, len(ec.errors))
	for i, e := range ec.errors {
		out[i] = e.Error()
	}
	return out
}

// Count returns the number of collected errors
func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}
