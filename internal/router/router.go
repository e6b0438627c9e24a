package router

import (
	"net/http"

	"product-dashboard/internal/handler"
	"product-dashboard/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	dashboardHandler *handler.DashboardHandler,
	productHandler *handler.ProductHandler,
	exportHandler *handler.ExportHandler,
	metricsHandler http.Handler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("/metrics", metricsHandler)

	mux.HandleFunc("/api/dashboard", dashboardHandler.Get)
	mux.HandleFunc("/api/dashboard/", dashboardHandler.Update)
	mux.HandleFunc("/api/notifications/", dashboardHandler.DismissNotification)

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productHandler.Collection)
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/" {
			productHandler.Collection(w, r)
			return
		}
		productHandler.Item(w, r)
	})

	mux.HandleFunc("/api/form", productHandler.SubmitForm)
	mux.HandleFunc("/api/form/target", productHandler.FormTarget)

	mux.HandleFunc("/api/export.xlsx", exportHandler.Workbook)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
