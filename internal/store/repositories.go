package store

import (
	"sync"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
)

// Repositories aggregates the typed repositories over one Store.
//
// All three share a single mutex: every read-modify-write cycle — including
// the cross-set ones (registration seeding, cascade delete) — runs under
// it, so mutations never interleave within one process. The Store contract
// itself offers no transactions; this lock is what restores the
// single-writer guarantee.
type Repositories struct {
	Users       UserRepository
	Collections CollectionRepository
	Items       ItemRepository
}

// NewRepositories wires the repositories to the given store, id generator
// and clock.
func NewRepositories(s Store, ids IDGenerator, clock utils.Clock, log *logger.Logger) *Repositories {
	mu := &sync.Mutex{}

	return &Repositories{
		Users:       newUserRepository(s, mu, ids, clock, log),
		Collections: newCollectionRepository(s, mu, ids, log),
		Items:       newItemRepository(s, mu, ids, clock, log),
	}
}
