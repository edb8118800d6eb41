package store

import (
	"context"
	"sync"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/models"
)

// collectionRepository implements [CollectionRepository] over the
// record-set store.
type collectionRepository struct {
	store  Store
	mu     *sync.Mutex
	ids    IDGenerator
	logger *logger.Logger
}

func newCollectionRepository(s Store, mu *sync.Mutex, ids IDGenerator, log *logger.Logger) *collectionRepository {
	log.Debug().Msg("creating collection repository")
	return &collectionRepository{store: s, mu: mu, ids: ids, logger: log}
}

// ListCollections returns the user's collections in insertion order.
func (r *collectionRepository) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return nil, err
	}

	owned := make([]models.Collection, 0, len(collections))
	for _, c := range collections {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}

	return owned, nil
}

// GetCollection returns the collection with the given id.
func (r *collectionRepository) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return models.Collection{}, err
	}

	for _, c := range collections {
		if c.ID == id {
			return c, nil
		}
	}

	return models.Collection{}, ErrNotFound
}

// CreateCollection persists c with a fresh id. The owning user must exist;
// a dangling UserID is rejected with [ErrNotFound] to keep the reference
// invariant intact.
func (r *collectionRepository) CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	if err := r.store.Load(ctx, UsersKey, &users); err != nil {
		return models.Collection{}, err
	}

	ownerExists := false
	for _, u := range users {
		if u.ID == c.UserID {
			ownerExists = true
			break
		}
	}
	if !ownerExists {
		return models.Collection{}, ErrNotFound
	}

	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return models.Collection{}, err
	}

	c.ID = r.ids.Generate()
	collections = append(collections, c)
	if err := r.store.Save(ctx, CollectionsKey, collections); err != nil {
		return models.Collection{}, err
	}

	return c, nil
}

// DeleteCollection removes the collection and cascades to every item whose
// CollectionID matches. Both record sets are rewritten within the same
// guarded step; items of other collections are untouched.
func (r *collectionRepository) DeleteCollection(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return err
	}

	kept := collections[:0]
	found := false
	for _, c := range collections {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrNotFound
	}

	if err := r.store.Save(ctx, CollectionsKey, kept); err != nil {
		return err
	}

	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return err
	}

	keptItems := items[:0]
	removed := 0
	for _, item := range items {
		if item.CollectionID == id {
			removed++
			continue
		}
		keptItems = append(keptItems, item)
	}

	if err := r.store.Save(ctx, ItemsKey, keptItems); err != nil {
		return err
	}

	log.Debug().Str("collectionId", id).Int("itemsRemoved", removed).Msg("collection deleted with cascade")

	return nil
}
