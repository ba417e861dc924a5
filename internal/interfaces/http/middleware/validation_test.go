package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateRequest struct {
	CountryID string   `json:"country_id" binding:"required,uuid"`
	Name      string   `json:"name" binding:"required,max=10"`
	Status    string   `json:"status" binding:"omitempty,oneof=active inactive"`
	Tags      []string `json:"tags" binding:"max=2"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/states", func(c *gin.Context) {
		var req stateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
	})
	return router
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	router := validationRouter()

	t.Run("lists each rejected field by its json name", func(t *testing.T) {
		w := postJSON(router, "/states", `{"country_id":"nope","name":"far too long a name","status":"gone","tags":["a","b","c"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid UUID format", messages["country_id"])
		assert.Equal(t, "Must be at most 10 characters", messages["name"])
		assert.Equal(t, "Must be one of: active inactive", messages["status"])
		assert.Equal(t, "Must contain at most 2 items", messages["tags"])
	})

	t.Run("required fields", func(t *testing.T) {
		w := postJSON(router, "/states", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "This field is required")
	})

	t.Run("type mismatch names the field", func(t *testing.T) {
		w := postJSON(router, "/states", `{"country_id":"7c1e8a5e-5d39-4c38-9d0e-0d1f0f8f4a11","name":42}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := postJSON(router, "/states", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := postJSON(router, "/states", `{"country_id":"7c1e8a5e-5d39-4c38-9d0e-0d1f0f8f4a11","name":"Kerala"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPincodeTag(t *testing.T) {
	SetupValidator()
	v := binding.Validator.Engine().(*validator.Validate)

	type addressRequest struct {
		PostalCode string `json:"postal_code" binding:"required,pincode"`
	}
	for pin, ok := range map[string]bool{
		"560034":   true,
		" 560034 ": true,
		"56003":    false,
		"5600341":  false,
		"56003a":   false,
	} {
		err := v.Struct(addressRequest{PostalCode: pin})
		if ok {
			assert.NoError(t, err, pin)
			continue
		}
		require.Error(t, err, pin)
		details := ValidationDetails(err)
		require.Len(t, details, 1)
		assert.Equal(t, "postal_code", details[0].Field)
		assert.Equal(t, "Must be a 6-digit pincode", details[0].Message)
	}
}
