package config

import (
	"errors"
	"fmt"
)

// validate checks cross-field consistency after defaults are applied.
func (c *StructuredConfig) validate() error {
	var errs []error

	switch c.App.AuthMode {
	case AuthModeLocal, AuthModeRemote:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAuthMode, c.App.AuthMode))
	}

	if c.App.AuthMode == AuthModeRemote && c.Adapter.BaseURL == "" {
		errs = append(errs, ErrRemoteBaseURLRequired)
	}

	switch c.Storage.Backend {
	case StorageBackendFile, StorageBackendSQLite:
	case StorageBackendPostgres:
		if c.Storage.DB.DSN == "" {
			errs = append(errs, ErrDatabaseDSNRequired)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownStorageBackend, c.Storage.Backend))
	}

	if c.App.TokenSignKey == "" {
		errs = append(errs, ErrTokenSignKeyRequired)
	}

	if c.Workers.FlushInterval < 0 {
		errs = append(errs, ErrNegativeFlushInterval)
	}

	if c.Workers.FlushInterval > 0 && c.Storage.Backend != StorageBackendFile {
		errs = append(errs, ErrFlushIntervalBackend)
	}

	return errors.Join(errs...)
}
