package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

var (
	pincodeRe     = regexp.MustCompile(`^\d{6}$`)
	validatorOnce sync.Once
)

// SetupValidator makes binding errors name fields by their json (or form)
// tag and registers the storefront tags:
//
//	pincode  six digits, surrounding spaces ignored
func SetupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
			return pincodeRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidationDetails converts a binding error into per-field details.
func ValidationDetails(err error) []dto.ValidationDetail {
	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		details := make([]dto.ValidationDetail, len(fieldErrs))
		for i, fe := range fieldErrs {
			details[i] = dto.ValidationDetail{Field: fe.Field(), Message: describe(fe)}
		}
		return details
	case errors.As(err, &typeErr):
		return []dto.ValidationDetail{{Field: typeErr.Field, Message: "Must be of type " + typeErr.Type.String()}}
	case errors.As(err, &syntaxErr):
		return []dto.ValidationDetail{{Field: "body", Message: "Malformed JSON"}}
	default:
		return []dto.ValidationDetail{{Field: "body", Message: err.Error()}}
	}
}

// HandleValidationError aborts with a 400 validation envelope.
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.NewValidationErrorResponse("Request validation failed", requestIDFromContext(c), ValidationDetails(err)))
}

func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return sanitizeRequestID(c.GetHeader(RequestIDHeader))
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"url":      "Invalid URL format",
	"numeric":  "Must be numeric",
	"pincode":  "Must be a 6-digit pincode",
}

var comparisons = map[string]string{
	"gte": "Must be greater than or equal to ",
	"lte": "Must be less than or equal to ",
	"gt":  "Must be greater than ",
	"lt":  "Must be less than ",
}

func describe(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	if prefix, ok := comparisons[fe.Tag()]; ok {
		return prefix + fe.Param()
	}

	switch fe.Tag() {
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		switch fe.Kind() {
		case reflect.String:
			return "Must be " + bound + fe.Param() + " characters"
		case reflect.Slice, reflect.Array, reflect.Map:
			return "Must contain " + bound + fe.Param() + " items"
		}
		return "Must be " + bound + fe.Param()
	}
	return "Invalid value"
}
