package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryHandler_CRUD(t *testing.T) {
	env := newTestEnv(t)
	h := NewCountryHandler(env.countries, env.importHandler())
	r := env.router(&adminCaller)
	r.GET("/countries", h.List)
	r.GET("/countries/:id", h.GetByID)
	r.POST("/countries", h.Create)
	r.PUT("/countries", h.Update)
	r.PUT("/countries/:id", h.Update)
	r.DELETE("/countries", h.Delete)
	r.DELETE("/countries/:id", h.Delete)

	w := perform(r, http.MethodPost, "/countries", map[string]any{"name": "India", "iso_code": "IN", "phone_code": "+91"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[locationapp.CountryResponse](t, w)
	assert.True(t, created.Success)
	assert.Equal(t, "Country created successfully", created.Message)
	assert.Equal(t, "India", created.Data.Name)
	assert.Equal(t, "active", created.Data.Status)
	id := created.Data.ID

	t.Run("list is paginated", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/countries?page=1&limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]locationapp.CountryResponse](t, w)
		require.Len(t, list.Data, 1)
		require.NotNil(t, list.Pagination)
		assert.Equal(t, int64(1), list.Pagination.TotalItems)
	})

	t.Run("update with id in path", func(t *testing.T) {
		w := perform(r, http.MethodPut, "/countries/"+id.String(), map[string]any{"name": "Bharat"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Bharat", decode[locationapp.CountryResponse](t, w).Data.Name)
	})

	t.Run("update with id in query", func(t *testing.T) {
		w := perform(r, http.MethodPut, "/countries?id="+id.String(), map[string]any{"phone_code": "91"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "91", decode[locationapp.CountryResponse](t, w).Data.PhoneCode)
	})

	t.Run("update with id in body", func(t *testing.T) {
		w := perform(r, http.MethodPut, "/countries", map[string]any{"id": id, "status": "inactive"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "inactive", decode[locationapp.CountryResponse](t, w).Data.Status)
	})

	t.Run("update without id", func(t *testing.T) {
		w := perform(r, http.MethodPut, "/countries", map[string]any{"name": "Nowhere"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid id format", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/countries/not-a-uuid", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid country ID format", decode[any](t, w).Error.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/countries/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete with id in body", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/countries", map[string]any{"id": id})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = perform(r, http.MethodGet, "/countries/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCountryHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewCountryHandler(env.countries, env.importHandler())
	r := env.router(&adminCaller)
	r.POST("/countries", h.Create)

	w := perform(r, http.MethodPost, "/countries", map[string]any{"iso_code": "IN"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[any](t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestCountryHandler_DeleteWithStates(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "560034")
	h := NewCountryHandler(env.countries, env.importHandler())
	r := env.router(&adminCaller)
	r.DELETE("/countries/:id", h.Delete)

	w := perform(r, http.MethodDelete, "/countries/"+loc.CountryID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStateHandler_ListByCountry(t *testing.T) {
	env := newTestEnv(t)
	first := env.seedLocation(t, "560001")
	env.seedLocation(t, "110001")

	h := NewStateHandler(env.states, env.importHandler())
	r := env.router(nil)
	r.GET("/states", h.List)

	w := perform(r, http.MethodGet, "/states?country_id="+first.CountryID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[[]locationapp.StateResponse](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, first.StateID, list.Data[0].ID)

	w = perform(r, http.MethodGet, "/states?country_id=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCityHandler_CreateRequiresExistingState(t *testing.T) {
	env := newTestEnv(t)
	h := NewCityHandler(env.cities, env.importHandler())
	r := env.router(&adminCaller)
	r.POST("/cities", h.Create)

	w := perform(r, http.MethodPost, "/cities", map[string]any{"state_id": uuid.New(), "name": "Mysuru"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPincodeHandler_UpdateAndResolve(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "560034")

	pincodes := NewPincodeHandler(env.pincodes, env.importHandler())
	resolver := NewResolverHandler(env.resolver)
	r := env.router(&adminCaller)
	r.PUT("/pincodes/:id", pincodes.Update)
	r.GET("/resolve/:pincode", resolver.Resolve)

	w := perform(r, http.MethodGet, "/resolve/560034", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resolved := decode[locationapp.ResolvedLocation](t, w)
	assert.Equal(t, "Location resolved successfully", resolved.Message)
	assert.Equal(t, loc.CountryID, resolved.Data.CountryID)
	assert.Equal(t, "Koramangala", resolved.Data.AreaName)

	w = perform(r, http.MethodPut, "/pincodes/"+loc.PincodeID.String(), map[string]any{"area_name": "Indiranagar"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// cache is invalidated on writes
	w = perform(r, http.MethodGet, "/resolve/560034", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Indiranagar", decode[locationapp.ResolvedLocation](t, w).Data.AreaName)
}

func TestResolverHandler_Errors(t *testing.T) {
	env := newTestEnv(t)
	r := env.router(nil)
	r.GET("/resolve/:pincode", NewResolverHandler(env.resolver).Resolve)

	w := perform(r, http.MethodGet, "/resolve/12ab", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/resolve/999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocationImportHandler(t *testing.T) {
	env := newTestEnv(t)
	importer := env.importHandler()
	countries := NewCountryHandler(env.countries, importer)
	r := env.router(&adminCaller)
	r.POST("/countries", countries.Create)
	r.POST("/countries/import", importer.Import(locationapp.ImportCountries))
	r.POST("/states/import", importer.Import(locationapp.ImportStates))

	csv := "Country Name,ISO Code,Phone Code\nIndia,IN,+91\nNepal,NP,+977\n,XX,\n"

	t.Run("multipart create imports the sheet", func(t *testing.T) {
		w := performMultipart(t, r, http.MethodPost, "/countries", "countries.csv", []byte(csv))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				TotalRows  int `json:"totalRows"`
				Created    int `json:"created"`
				Updated    int `json:"updated"`
				FailedRows int `json:"failedRows"`
			} `json:"data"`
			Errors []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.Data.TotalRows)
		assert.Equal(t, 2, resp.Data.Created)
		assert.Equal(t, 1, resp.Data.FailedRows)
		assert.Len(t, resp.Errors, 1)
	})

	t.Run("reimport updates by name", func(t *testing.T) {
		w := performMultipart(t, r, http.MethodPost, "/countries/import", "countries.csv", []byte("name,iso_code\nIndia,IND\n"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"updated":1`)
	})

	t.Run("unknown parent is reported per row", func(t *testing.T) {
		body := "country_id,state_name\n" + uuid.NewString() + ",Karnataka\n"
		w := performMultipart(t, r, http.MethodPost, "/states/import", "states.csv", []byte(body))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Country not found")
	})

	t.Run("missing required column", func(t *testing.T) {
		w := performMultipart(t, r, http.MethodPost, "/countries/import", "countries.csv", []byte("iso_code\nIN\n"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		w := performMultipart(t, r, http.MethodPost, "/countries/import", "countries.txt", []byte(csv))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected files", func(t *testing.T) {
		tests := []struct {
			name        string
			filename    string
			content     []byte
			wantMessage string
			hidden      string
		}{
			{name: "legacy xls", filename: "countries.xls", content: []byte(csv), wantMessage: "unsupported file format"},
			{name: "corrupt workbook", filename: "countries.xlsx", content: []byte("PK\x03\x04 not really a zip"), wantMessage: "could not read spreadsheet", hidden: "zip"},
			{name: "empty csv", filename: "countries.csv", content: []byte{}, wantMessage: "file is empty"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := performMultipart(t, r, http.MethodPost, "/countries/import", tt.filename, tt.content)
				require.Equal(t, http.StatusBadRequest, w.Code)
				resp := decode[any](t, w)
				require.NotNil(t, resp.Error)
				assert.Contains(t, resp.Error.Message, tt.wantMessage)
				if tt.hidden != "" {
					assert.NotContains(t, resp.Error.Message, tt.hidden)
				}
			})
		}
	})

	t.Run("file too large", func(t *testing.T) {
		small := NewLocationImportHandler(env.importer, 16)
		r := env.router(&adminCaller)
		r.POST("/import", small.Import(locationapp.ImportCountries))
		w := performMultipart(t, r, http.MethodPost, "/import", "countries.csv", []byte(csv))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("file is required", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/countries/import", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
