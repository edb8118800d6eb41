package config

import (
	"time"
)

// Auth mode selectors for the credential verifier strategy.
const (
	AuthModeLocal  = "local"
	AuthModeRemote = "remote"
)

// Storage backend selectors for the record-set store.
const (
	StorageBackendFile     = "file"
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
)

// StructuredConfig is the top-level configuration container for the review
// engine. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds authentication and token settings.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter configures the remote auth service client, used when
	// App.AuthMode is "remote".
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings controlling authentication.
type App struct {
	// AuthMode selects the credential verifier: "local" checks credentials
	// against the engine's own store, "remote" delegates to the auth
	// service configured under Adapter.
	// Env: APP_AUTH_MODE
	AuthMode string `env:"AUTH_MODE"`

	// TokenSignKey is the secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration controls how long an issued JWT remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage selects the record-set store backend and its location.
type Storage struct {
	// Backend is one of "file", "sqlite", "postgres".
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DataDir is the directory holding the per-collection JSON files of the
	// file backend, or the directory of the SQLite database file. An empty
	// value with the file backend keeps all data in memory.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// DB holds the relational database settings for the postgres backend.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the PostgreSQL backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound HTTP layer.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter configures the outbound client of the remote auth service.
type Adapter struct {
	// BaseURL is the root URL of the remote auth service
	// (e.g. "https://auth.example.com").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// FlushInterval enables write-behind persistence for the file backend:
	// when positive, saves are buffered in memory and flushed to disk on
	// this interval (and at shutdown). Zero keeps write-through behaviour.
	// Env: WORKERS_FLUSH_INTERVAL
	FlushInterval time.Duration `env:"FLUSH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources in priority order (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Missing optional values fall back to defaults before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (c *StructuredConfig) applyDefaults() {
	if c.App.AuthMode == "" {
		c.App.AuthMode = AuthModeLocal
	}
	if c.App.TokenIssuer == "" {
		c.App.TokenIssuer = "closed-loop"
	}
	if c.App.TokenDuration == 0 {
		c.App.TokenDuration = 24 * time.Hour
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageBackendFile
	}
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = "localhost:8080"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 30 * time.Second
	}
	if c.Adapter.RequestTimeout == 0 {
		c.Adapter.RequestTimeout = 15 * time.Second
	}
}
