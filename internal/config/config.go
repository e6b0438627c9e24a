package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends understood by the storage factory.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	S3        S3Config
	Dashboard DashboardConfig
}

// ServerConfig holds the local HTTP bridge address.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// StorageConfig selects where the product collection is persisted.
type StorageConfig struct {
	Backend    string
	Key        string
	FilePath   string // directory for the file backend
	SQLitePath string
	// FallbackPath, when set, keeps a local file copy used while a remote
	// backend (postgres or s3) is unavailable.
	FallbackPath string
}

// DatabaseConfig holds PostgreSQL settings for the postgres backend.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// S3Config holds settings for the s3 backend.
type S3Config struct {
	Bucket string
	Region string
	Prefix string
}

// DashboardConfig tunes the controller.
type DashboardConfig struct {
	SearchDebounce time.Duration
	PageSize       int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.key", "product_dashboard_data")
	v.SetDefault("storage.file_path", "./data")
	v.SetDefault("storage.sqlite_path", "./data/dashboard.db")
	v.SetDefault("storage.fallback_path", "")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "dashboard")
	v.SetDefault("db.max_connections", 5)
	v.SetDefault("db.min_connections", 1)
	v.SetDefault("db.max_conn_lifetime", 300)

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "dashboard/")

	v.SetDefault("dashboard.search_debounce", 500*time.Millisecond)
	v.SetDefault("dashboard.page_size", 9)
}

// Load reads an optional .env file, then environment variables over defaults.
// Nested keys map to upper-case env names, e.g. storage.backend is
// STORAGE_BACKEND.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Storage: StorageConfig{
			Backend:      strings.ToLower(v.GetString("storage.backend")),
			Key:          v.GetString("storage.key"),
			FilePath:     v.GetString("storage.file_path"),
			SQLitePath:   v.GetString("storage.sqlite_path"),
			FallbackPath: v.GetString("storage.fallback_path"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Database:        v.GetString("db.name"),
			MaxConnections:  v.GetInt("db.max_connections"),
			MinConnections:  v.GetInt("db.min_connections"),
			MaxConnLifetime: v.GetInt("db.max_conn_lifetime"),
		},
		S3: S3Config{
			Bucket: v.GetString("s3.bucket"),
			Region: v.GetString("s3.region"),
			Prefix: v.GetString("s3.prefix"),
		},
		Dashboard: DashboardConfig{
			SearchDebounce: v.GetDuration("dashboard.search_debounce"),
			PageSize:       v.GetInt("dashboard.page_size"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("storage file path is required for the file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for the sqlite backend")
		}
	case BackendPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 backend")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (must be memory, file, sqlite, postgres, or s3)", c.Storage.Backend)
	}

	if c.Dashboard.PageSize < 1 {
		return fmt.Errorf("dashboard page size must be at least 1")
	}

	if c.Dashboard.SearchDebounce < 0 {
		return fmt.Errorf("search debounce cannot be negative")
	}

	return nil
}

// Validate checks the PostgreSQL settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
