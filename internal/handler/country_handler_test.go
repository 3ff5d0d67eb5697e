package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/khairunnisaa/palmcode-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock CountryService ---

type mockCountryService struct {
	listFn   func(ctx context.Context, q dto.ListQuery) (*service.Page[models.Country], error)
	createFn func(ctx context.Context, req dto.CountryRequest) (*models.Country, error)
	getFn    func(ctx context.Context, id uint) (*models.Country, error)
	updateFn func(ctx context.Context, id uint, req dto.CountryRequest) (*models.Country, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockCountryService) List(ctx context.Context, q dto.ListQuery) (*service.Page[models.Country], error) {
	return m.listFn(ctx, q)
}
func (m *mockCountryService) Create(ctx context.Context, req dto.CountryRequest) (*models.Country, error) {
	return m.createFn(ctx, req)
}
func (m *mockCountryService) Get(ctx context.Context, id uint) (*models.Country, error) {
	return m.getFn(ctx, id)
}
func (m *mockCountryService) Update(ctx context.Context, id uint, req dto.CountryRequest) (*models.Country, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockCountryService) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

func TestGetCountry_Handler_Success(t *testing.T) {
	code := "ID"
	svc := &mockCountryService{
		getFn: func(ctx context.Context, id uint) (*models.Country, error) {
			return &models.Country{ID: id, Name: "Indonesia", Code: &code}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/api/countries/2", "", "")
	require.NoError(t, NewCountryHandler(svc).GetCountry(withID(c, "2")))

	assert.JSONEq(t, `{
		"success": true,
		"data": {"id": 2, "name": "Indonesia", "flag_url": null, "code": "ID"},
		"message": "Country retrieved successfully."
	}`, rec.Body.String())
}

func TestGetCountry_Handler_NotFound(t *testing.T) {
	svc := &mockCountryService{
		getFn: func(ctx context.Context, id uint) (*models.Country, error) {
			return nil, &service.NotFoundError{Model: "Country", ID: id}
		},
	}

	c, rec := newContext(http.MethodGet, "/api/countries/2", "", "")
	require.NoError(t, NewCountryHandler(svc).GetCountry(withID(c, "2")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Country not found."}`, rec.Body.String())
}

func TestUpdateCountry_Handler(t *testing.T) {
	svc := &mockCountryService{
		updateFn: func(ctx context.Context, id uint, req dto.CountryRequest) (*models.Country, error) {
			if req.Name == "" {
				return nil, &service.ValidationError{Errors: validation.Errors{"name": {"The name field is required."}}}
			}
			return &models.Country{ID: id, Name: req.Name}, nil
		},
	}
	h := NewCountryHandler(svc)

	c, rec := newContext(http.MethodPut, "/api/countries/1", `{"name":"Peru"}`, echo.MIMEApplicationJSON)
	require.NoError(t, h.UpdateCountry(withID(c, "1")))
	assert.JSONEq(t, `{
		"success": true,
		"data": {"id": 1, "name": "Peru", "flag_url": null, "code": null},
		"message": "Country updated successfully."
	}`, rec.Body.String())

	c, _ = newContext(http.MethodPut, "/api/countries/1", `{"name":""}`, echo.MIMEApplicationJSON)
	he := httpError(t, h.UpdateCountry(withID(c, "1")))
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

func TestCreateCountry_Handler_WrongFieldType(t *testing.T) {
	svc := &mockCountryService{}

	c, _ := newContext(http.MethodPost, "/api/countries", `{"name":"Peru","code":51}`, echo.MIMEApplicationJSON)
	he := httpError(t, NewCountryHandler(svc).CreateCountry(c))

	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
	body, ok := he.Message.(dto.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"code": {"The code field must be a string."}}, body.Data)
}

func TestDeleteCountry_Handler_NotFound(t *testing.T) {
	svc := &mockCountryService{
		deleteFn: func(ctx context.Context, id uint) error {
			return &service.NotFoundError{Model: "Country", ID: id}
		},
	}

	c, _ := newContext(http.MethodDelete, "/api/countries/8", "", "")
	he := httpError(t, NewCountryHandler(svc).DeleteCountry(withID(c, "8")))
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "No query results for model [Country] 8", he.Message)
}

func TestListCountries_Handler_EmptyPage(t *testing.T) {
	svc := &mockCountryService{
		listFn: func(ctx context.Context, q dto.ListQuery) (*service.Page[models.Country], error) {
			return &service.Page[models.Country]{Items: nil, Page: 3, PerPage: 10, Total: 4}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/api/countries?page=3", "", "")
	require.NoError(t, NewCountryHandler(svc).ListCountries(c))

	assert.JSONEq(t, `{
		"success": true,
		"data": {"current_page": 3, "data": [], "per_page": 10, "to": null, "total": 4},
		"message": "Countries retrieved successfully"
	}`, rec.Body.String())
}
