package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"product-dashboard/internal/handler"
	"product-dashboard/internal/repository"
	"product-dashboard/internal/service"
	"product-dashboard/internal/storage"
	"product-dashboard/internal/validation"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()

	repo := repository.NewProductRepository(storage.NewMemoryStore(), "", logger)
	svc := service.NewDashboardService(repo, validation.NewProductValidator(logger), service.Options{
		Clock: clock.NewMock(),
	}, logger)
	require.NoError(t, svc.Load(context.Background()))
	t.Cleanup(svc.Close)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})

	return New(
		handler.NewDashboardHandler(svc, logger),
		handler.NewProductHandler(svc, logger),
		handler.NewExportHandler(svc, logger),
		metrics,
		logger,
	)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"dashboard", http.MethodGet, "/api/dashboard", "", http.StatusOK},
		{"dashboard control", http.MethodPut, "/api/dashboard/page", `{"page":2}`, http.StatusOK},
		{"product list", http.MethodGet, "/api/products", "", http.StatusOK},
		{"product list with slash", http.MethodGet, "/api/products/", "", http.StatusOK},
		{"product item", http.MethodGet, "/api/products/1", "", http.StatusOK},
		{"unknown product", http.MethodGet, "/api/products/999", "", http.StatusNotFound},
		{"form target", http.MethodPut, "/api/form/target", `{"id":"1"}`, http.StatusOK},
		{"unknown notification", http.MethodDelete, "/api/notifications/missing", "", http.StatusNotFound},
		{"export", http.MethodGet, "/api/export.xlsx", "", http.StatusOK},
		{"preflight", http.MethodOptions, "/api/products/1", "", http.StatusNoContent},
		{"unknown route", http.MethodGet, "/api/orders", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
