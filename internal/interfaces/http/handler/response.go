package handler

import "github.com/storefront/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Fetched successfully"`
	Data    T      `json:"data,omitempty"`
}

// ListResponse represents a paginated list response for OpenAPI documentation
// @Description Paginated list wrapper
type ListResponse[T any] struct {
	Success    bool            `json:"success" example:"true"`
	Message    string          `json:"message" example:"Fetched successfully"`
	Data       []T             `json:"data"`
	Pagination *dto.Pagination `json:"pagination"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Message string         `json:"message" example:"Country not found"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse represents a simple success API response for OpenAPI documentation
// @Description Simple success response without data
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Deleted successfully"`
}
