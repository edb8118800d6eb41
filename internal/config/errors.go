package config

import "errors"

// Validation errors returned (joined) by [StructuredConfig.validate].
var (
	// ErrUnknownAuthMode is returned when APP_AUTH_MODE is neither "local"
	// nor "remote".
	ErrUnknownAuthMode = errors.New("unknown auth mode")

	// ErrRemoteBaseURLRequired is returned when the remote auth mode is
	// selected without a remote service base URL.
	ErrRemoteBaseURLRequired = errors.New("remote auth mode requires adapter base URL")

	// ErrUnknownStorageBackend is returned when STORAGE_BACKEND names an
	// unsupported backend.
	ErrUnknownStorageBackend = errors.New("unknown storage backend")

	// ErrDatabaseDSNRequired is returned when the postgres backend is
	// selected without a connection string.
	ErrDatabaseDSNRequired = errors.New("postgres backend requires a database DSN")

	// ErrTokenSignKeyRequired is returned when no JWT signing key is
	// configured.
	ErrTokenSignKeyRequired = errors.New("token sign key is required")

	// ErrNegativeFlushInterval is returned for a negative write-behind
	// flush interval.
	ErrNegativeFlushInterval = errors.New("flush interval must not be negative")

	// ErrFlushIntervalBackend is returned when write-behind flushing is
	// requested for a backend other than the file store.
	ErrFlushIntervalBackend = errors.New("flush interval is only supported by the file backend")
)
