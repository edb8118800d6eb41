package store

import (
	"context"
	"sync"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

// itemRepository implements [ItemRepository] over the record-set store.
type itemRepository struct {
	store  Store
	mu     *sync.Mutex
	ids    IDGenerator
	clock  utils.Clock
	logger *logger.Logger
}

func newItemRepository(s Store, mu *sync.Mutex, ids IDGenerator, clock utils.Clock, log *logger.Logger) *itemRepository {
	log.Debug().Msg("creating item repository")
	return &itemRepository{store: s, mu: mu, ids: ids, clock: clock, logger: log}
}

// ListItems returns the items of one collection in insertion order.
func (r *itemRepository) ListItems(ctx context.Context, collectionID string) ([]models.ReviewItem, error) {
	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return nil, err
	}

	owned := make([]models.ReviewItem, 0, len(items))
	for _, item := range items {
		if item.CollectionID == collectionID {
			owned = append(owned, item)
		}
	}

	return owned, nil
}

// ListAllItemsForUser joins through the user's collections and returns
// every owned item, in insertion order, with no duplicates and no foreign
// items.
func (r *itemRepository) ListAllItemsForUser(ctx context.Context, userID string) ([]models.ReviewItem, error) {
	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return nil, err
	}

	owned := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		if c.UserID == userID {
			owned[c.ID] = struct{}{}
		}
	}

	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return nil, err
	}

	result := make([]models.ReviewItem, 0, len(items))
	for _, item := range items {
		if _, ok := owned[item.CollectionID]; ok {
			result = append(result, item)
		}
	}

	return result, nil
}

// GetItem returns the item with the given id.
func (r *itemRepository) GetItem(ctx context.Context, id string) (models.ReviewItem, error) {
	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return models.ReviewItem{}, err
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.ReviewItem{}, ErrNotFound
}

// CreateItem persists one new item with the initial scheduling state.
func (r *itemRepository) CreateItem(ctx context.Context, fields models.NewItem) (models.ReviewItem, error) {
	created, err := r.BatchCreateItems(ctx, []models.NewItem{fields})
	if err != nil {
		return models.ReviewItem{}, err
	}

	return created[0], nil
}

// BatchCreateItems initializes and appends many items in a single rewrite
// of the item record set. Every referenced collection must exist.
func (r *itemRepository) BatchCreateItems(ctx context.Context, fields []models.NewItem) ([]models.ReviewItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		known[c.ID] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := known[f.CollectionID]; !ok {
			return nil, ErrNotFound
		}
	}

	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return nil, err
	}

	now := r.clock.Now().UnixMilli()
	created := make([]models.ReviewItem, 0, len(fields))
	for _, f := range fields {
		item := models.ReviewItem{
			ID:           r.ids.Generate(),
			CollectionID: f.CollectionID,
			Title:        f.Title,
			Content:      f.Content,
			GroupName:    f.GroupName,
			Status:       models.StatusNew,
			ReviewCount:  0,
			NextReviewAt: now,
			CreatedAt:    now,
		}
		created = append(created, item)
		items = append(items, item)
	}

	if err := r.store.Save(ctx, ItemsKey, items); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateItem shallow-merges the patch into the stored record.
func (r *itemRepository) UpdateItem(ctx context.Context, id string, patch models.ItemUpdate) (models.ReviewItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return models.ReviewItem{}, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}

		patch.Apply(&items[i])
		if err := r.store.Save(ctx, ItemsKey, items); err != nil {
			return models.ReviewItem{}, err
		}
		return items[i], nil
	}

	return models.ReviewItem{}, ErrNotFound
}

// SaveItem replaces the stored record matching item.ID with item.
func (r *itemRepository) SaveItem(ctx context.Context, item models.ReviewItem) (models.ReviewItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []models.ReviewItem
	if err := r.store.Load(ctx, ItemsKey, &items); err != nil {
		return models.ReviewItem{}, err
	}

	for i := range items {
		if items[i].ID != item.ID {
			continue
		}

		items[i] = item
		if err := r.store.Save(ctx, ItemsKey, items); err != nil {
			return models.ReviewItem{}, err
		}
		return item, nil
	}

	return models.ReviewItem{}, ErrNotFound
}
