package store

import (
	"context"
	"fmt"

	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
)

// NewStore constructs the Store selected by cfg.Backend.
func NewStore(ctx context.Context, cfg config.Storage, flushEnabled bool, log *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendFile:
		var opts []FileStoreOption
		if flushEnabled {
			opts = append(opts, WithWriteBehind())
		}
		return NewFileStore(cfg.DataDir, log, opts...)
	case config.StorageBackendSQLite:
		return NewSQLiteStore(ctx, cfg.DataDir, log)
	case config.StorageBackendPostgres:
		return NewPostgresStore(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
