// Package config loads application settings from environment variables,
// applies defaults, and validates everything on startup so misconfiguration
// fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Export   ExportConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on. PORT is accepted for PaaS compatibility.
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"3000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds each request via middleware (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxBodyBytes limits JSON request bodies (default: 1MB)
	MaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES" default:"1048576"`
}

// StorageConfig selects and tunes the record store.
type StorageConfig struct {
	// Mode is one of: memory, file, postgres (default: file)
	Mode string `env:"STORAGE_MODE" default:"file"`

	// DataDir and FileName locate the JSON file for the file mode.
	DataDir  string `env:"STORAGE_DATA_DIR" default:"data"`
	FileName string `env:"STORAGE_FILE_NAME" default:"pins.json"`

	// MaxRecords is the retention cap; oldest records are evicted first.
	MaxRecords int `env:"STORE_MAX_RECORDS" default:"1000"`

	// MaxFileBytes guards the encoded size of the JSON file (default: 10MB)
	MaxFileBytes int `env:"STORE_MAX_FILE_BYTES" default:"10485760"`

	// DatabaseURL is required when Mode is postgres.
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated list; empty allows any origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" default:"true"`
	Requests int           `env:"RATE_LIMIT_REQUESTS" default:"100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" default:"15m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	// FileName is sent in the Content-Disposition header.
	FileName string `env:"EXPORT_FILENAME" default:"pins_export.csv"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
