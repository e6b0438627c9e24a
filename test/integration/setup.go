package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"product-dashboard/internal/database"
	"product-dashboard/internal/handler"
	"product-dashboard/internal/metrics"
	"product-dashboard/internal/repository"
	"product-dashboard/internal/router"
	"product-dashboard/internal/service"
	"product-dashboard/internal/storage"
	"product-dashboard/internal/validation"

	"github.com/benbjohnson/clock"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// searchDebounce matches the production default; tests step past it on the mock clock.
const searchDebounce = 500 * time.Millisecond

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Store     *storage.PostgresStore
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and a key-value store on it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, database.DefaultPoolSettings, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	store := storage.NewPostgresStore(pool, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Store:     store,
		ConnStr:   connStr,
	}
}

// CleanupDB removes every stored blob.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM kv_store"); err != nil {
		t.Logf("failed to clean kv_store: %v", err)
	}
}

// TestApp is a fully wired dashboard over the test database.
type TestApp struct {
	Handler  http.Handler
	Service  service.DashboardService
	Clock    *clock.Mock
	Registry *prometheus.Registry
}

// SetupTestApp builds and loads the dashboard stack the way the binary does,
// with a mock clock driving the search debounce.
func SetupTestApp(t *testing.T, testDB *TestDB) *TestApp {
	t.Helper()

	logger := zerolog.Nop()
	mockClock := clock.NewMock()
	registry := prometheus.NewRegistry()

	repo := repository.NewProductRepository(testDB.Store, repository.DefaultKey, logger)
	svc := service.NewDashboardService(repo, validation.NewProductValidator(logger), service.Options{
		SearchDebounce: searchDebounce,
		Clock:          mockClock,
		Metrics:        metrics.New(registry),
	}, logger)
	t.Cleanup(svc.Close)

	require.NoError(t, svc.Load(context.Background()))

	mux := router.New(
		handler.NewDashboardHandler(svc, logger),
		handler.NewProductHandler(svc, logger),
		handler.NewExportHandler(svc, logger),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		logger,
	)

	return &TestApp{
		Handler:  mux,
		Service:  svc,
		Clock:    mockClock,
		Registry: registry,
	}
}
