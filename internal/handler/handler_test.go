package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"product-dashboard/internal/model"
	"product-dashboard/internal/query"
	"product-dashboard/internal/service"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDashboardService is a mock implementation of DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDashboardService) Loaded() bool {
	return m.Called().Bool(0)
}

func (m *MockDashboardService) View() model.DashboardView {
	return m.Called().Get(0).(model.DashboardView)
}

func (m *MockDashboardService) Products() []model.Product {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Product)
}

func (m *MockDashboardService) Product(id string) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockDashboardService) Matching() []model.Product {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Product)
}

func (m *MockDashboardService) SetSearch(term string) {
	m.Called(term)
}

func (m *MockDashboardService) SetCategory(category string) {
	m.Called(category)
}

func (m *MockDashboardService) SetSort(key query.SortKey) {
	m.Called(key)
}

func (m *MockDashboardService) SetPage(page int) {
	m.Called(page)
}

func (m *MockDashboardService) SetViewMode(mode model.ViewMode) error {
	return m.Called(mode).Error(0)
}

func (m *MockDashboardService) AddProduct(ctx context.Context, fields model.FormFields) (*model.Product, model.ValidationErrors, error) {
	return m.mutation(m.Called(ctx, fields))
}

func (m *MockDashboardService) EditProduct(ctx context.Context, id string, fields model.FormFields) (*model.Product, model.ValidationErrors, error) {
	return m.mutation(m.Called(ctx, id, fields))
}

func (m *MockDashboardService) SubmitForm(ctx context.Context, fields model.FormFields) (*model.Product, bool, model.ValidationErrors, error) {
	args := m.Called(ctx, fields)
	product, invalid, err := m.mutation(append(mock.Arguments{args.Get(0)}, args[2:]...))
	return product, args.Bool(1), invalid, err
}

func (m *MockDashboardService) mutation(args mock.Arguments) (*model.Product, model.ValidationErrors, error) {
	var product *model.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*model.Product)
	}
	var invalid model.ValidationErrors
	if args.Get(1) != nil {
		invalid = args.Get(1).(model.ValidationErrors)
	}
	return product, invalid, args.Error(2)
}

func (m *MockDashboardService) DeleteProduct(ctx context.Context, id string, confirmer service.Confirmer) error {
	return m.Called(ctx, id, confirmer).Error(0)
}

func (m *MockDashboardService) BeginEdit(id string) (model.FormFields, error) {
	args := m.Called(id)
	return args.Get(0).(model.FormFields), args.Error(1)
}

func (m *MockDashboardService) CancelEdit() {
	m.Called()
}

func (m *MockDashboardService) DismissNotification(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockDashboardService) Close() {
	m.Called()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		data           interface{}
		expectedStatus int
	}{
		{"encodable value", http.StatusCreated, model.Summary{TotalProducts: 1}, http.StatusCreated},
		{"infinite total", http.StatusOK, model.Summary{TotalValue: math.Inf(1)}, http.StatusInternalServerError},
		{"not a number", http.StatusOK, map[string]float64{"value": math.NaN()}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeJSON(w, tt.status, tt.data)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.True(t, json.Valid(w.Body.Bytes()), "body must be complete JSON: %q", w.Body.String())
			if tt.expectedStatus == http.StatusInternalServerError {
				var resp model.ErrorResponse
				decodeBody(t, w, &resp)
				assert.Equal(t, model.ErrCodeInternalError, resp.Error)
			}
		})
	}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", model.ErrProductNotFound, http.StatusNotFound, model.ErrCodeProductNotFound},
		{"wrapped not found", errors.Join(errors.New("lookup"), model.ErrProductNotFound), http.StatusNotFound, model.ErrCodeProductNotFound},
		{"notification missing", model.ErrNotificationNotFound, http.StatusNotFound, model.ErrCodeNotificationMissing},
		{"not loaded", model.ErrNotLoaded, http.StatusServiceUnavailable, model.ErrCodeNotLoaded},
		{"declined", model.ErrDeleteNotConfirmed, http.StatusConflict, model.ErrCodeDeleteNotConfirmed},
		{"bad view mode", model.ErrInvalidViewMode, http.StatusBadRequest, model.ErrCodeInvalidViewMode},
		{"invalid product", model.ErrInvalidProduct, http.StatusUnprocessableEntity, model.ErrCodeValidationFailed},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeDomainError(w, tt.err, "failed", zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp model.ErrorResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.expectedCode, resp.Error)
		})
	}
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/api/products/42", "42"},
		{"/api/products/", ""},
		{"/api/products/42/extra", ""},
		{"/api/other/42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expected, pathParam(req, "/api/products/"))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"term":"desk"}`, false},
		{"empty", ``, true},
		{"malformed", `{"term":`, true},
		{"too large", `{"term":"` + strings.Repeat("a", maxBodyBytes) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst searchRequest
			err := decodeJSON(w, req, &dst)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "desk", dst.Term)
			}
		})
	}
}
