package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/asig/closed-loop/internal/logger"
)

// FileStore persists each named record set as one JSON file inside a data
// directory. With an empty directory it keeps everything in memory, which
// is the mode the tests use.
//
// By default every Save writes through to disk. With write-behind enabled
// (see WithWriteBehind) saves only update the in-memory cache and mark the
// key dirty; a flush worker calls Flush on an interval and at shutdown.
type FileStore struct {
	dir         string
	inMemory    bool
	writeBehind bool

	mu    sync.RWMutex
	cache map[string][]byte
	dirty map[string]struct{}

	logger *logger.Logger
}

// FileStoreOption configures a FileStore at construction time.
type FileStoreOption func(*FileStore)

// WithWriteBehind switches the store to buffered persistence. Durability
// then depends on periodic Flush calls; a crash loses the buffered writes.
func WithWriteBehind() FileStoreOption {
	return func(s *FileStore) {
		s.writeBehind = true
	}
}

// NewFileStore constructs a FileStore rooted at dir. An empty dir selects
// the in-memory mode. The directory is created when missing.
func NewFileStore(dir string, log *logger.Logger, opts ...FileStoreOption) (*FileStore, error) {
	s := &FileStore{
		dir:      dir,
		inMemory: dir == "",
		cache:    make(map[string][]byte),
		dirty:    make(map[string]struct{}),
		logger:   log,
	}

	for _, opt := range opts {
		opt(s)
	}

	if !s.inMemory {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	return s, nil
}

// Load fills dest with the records stored under key. A missing or
// malformed payload leaves dest empty and returns nil: a corrupt record
// set resets silently rather than taking the engine down.
func (s *FileStore) Load(ctx context.Context, key string, dest any) error {
	s.mu.RLock()
	data, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok && !s.inMemory {
		fileData, err := os.ReadFile(s.filePath(key))
		switch {
		case os.IsNotExist(err):
			return nil
		case err != nil:
			s.logger.Warn().Err(err).Str("key", key).Msg("record set unreadable, treating as empty")
			return nil
		}
		data = fileData

		s.mu.Lock()
		s.cache[key] = data
		s.mu.Unlock()
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("record set malformed, treating as empty")
		resetDest(dest)
		return nil
	}

	return nil
}

// Save replaces the record set stored under key with value.
func (s *FileStore) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecords, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = payload

	if s.inMemory {
		return nil
	}

	if s.writeBehind {
		s.dirty[key] = struct{}{}
		return nil
	}

	return s.writeFile(key, payload)
}

// Flush persists all buffered record sets. A no-op for write-through and
// in-memory stores.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inMemory {
		return nil
	}

	for key := range s.dirty {
		if err := s.writeFile(key, s.cache[key]); err != nil {
			return err
		}
		delete(s.dirty, key)
	}

	return nil
}

// Close flushes any buffered writes.
func (s *FileStore) Close() error {
	return s.Flush()
}

func (s *FileStore) writeFile(key string, payload []byte) error {
	if err := os.WriteFile(s.filePath(key), payload, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	return nil
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// resetDest zeroes the slice dest points at, discarding any partial fill
// left behind by a failed unmarshal.
func resetDest(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	elem := v.Elem()
	elem.Set(reflect.Zero(elem.Type()))
}
