package dto

import (
	"net/http"

	"github.com/storefront/backend/internal/domain/shared"
)

// API error codes returned in the error envelope. Every code is prefixed
// with ERR_ and listed in the registry below.
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationRange    = "ERR_VALIDATION_RANGE"
	ErrCodeValidationLength   = "ERR_VALIDATION_LENGTH"

	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED" // logged out
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"

	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT" // e.g. deleting a state that still has cities

	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// codeInfo describes one API error code. domain is the shared.DomainError
// code that translates to it, if any.
type codeInfo struct {
	status int
	domain string
}

var registry = map[string]codeInfo{
	ErrCodeUnknown:  {status: http.StatusInternalServerError},
	ErrCodeInternal: {status: http.StatusInternalServerError, domain: "INTERNAL_ERROR"},

	ErrCodeValidation:         {status: http.StatusBadRequest, domain: "VALIDATION_ERROR"},
	ErrCodeValidationRequired: {status: http.StatusBadRequest},
	ErrCodeValidationFormat:   {status: http.StatusBadRequest},
	ErrCodeValidationRange:    {status: http.StatusBadRequest},
	ErrCodeValidationLength:   {status: http.StatusBadRequest},

	ErrCodeUnauthorized:       {status: http.StatusUnauthorized, domain: shared.CodeUnauthorized},
	ErrCodeForbidden:          {status: http.StatusForbidden, domain: shared.CodeForbidden},
	ErrCodeTokenExpired:       {status: http.StatusUnauthorized},
	ErrCodeTokenInvalid:       {status: http.StatusUnauthorized},
	ErrCodeTokenRevoked:       {status: http.StatusUnauthorized},
	ErrCodeInvalidCredentials: {status: http.StatusUnauthorized, domain: "INVALID_CREDENTIALS"},

	ErrCodeNotFound:      {status: http.StatusNotFound, domain: shared.CodeNotFound},
	ErrCodeAlreadyExists: {status: http.StatusConflict, domain: shared.CodeAlreadyExists},
	ErrCodeConflict:      {status: http.StatusConflict, domain: shared.CodeConflict},

	ErrCodeInvalidState:      {status: http.StatusUnprocessableEntity, domain: shared.CodeInvalidState},
	ErrCodeInsufficientStock: {status: http.StatusUnprocessableEntity, domain: shared.CodeInsufficientStock},

	ErrCodeBadRequest:      {status: http.StatusBadRequest, domain: "BAD_REQUEST"},
	ErrCodeInvalidInput:    {status: http.StatusBadRequest, domain: shared.CodeInvalidInput},
	ErrCodeInvalidJSON:     {status: http.StatusBadRequest},
	ErrCodePayloadTooLarge: {status: http.StatusRequestEntityTooLarge},

	ErrCodeRateLimited: {status: http.StatusTooManyRequests},
}

var fromDomain = func() map[string]string {
	m := make(map[string]string, len(registry))
	for code, info := range registry {
		if info.domain != "" {
			m[info.domain] = code
		}
	}
	return m
}()

// GetHTTPStatus returns the status for an API error code, or 500 for codes
// outside the registry.
func GetHTTPStatus(code string) int {
	if info, ok := registry[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// IsKnownErrorCode reports whether code is a registered API error code.
func IsKnownErrorCode(code string) bool {
	_, ok := registry[code]
	return ok
}

// NormalizeErrorCode translates a domain error code into its API code.
// API codes and unrecognised codes pass through.
func NormalizeErrorCode(code string) string {
	if api, ok := fromDomain[code]; ok {
		return api
	}
	return code
}
