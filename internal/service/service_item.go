package service

import (
	"context"
	"fmt"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/scheduler"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/internal/validators"
	"github.com/asig/closed-loop/models"
)

// itemService is the concrete implementation of ItemService. It owns the
// ownership checks (item → collection → user) and drives the scheduler for
// review outcomes; persistence stays in the repositories.
type itemService struct {
	items       store.ItemRepository
	collections store.CollectionRepository
	scheduler   *scheduler.Ebbinghaus
	clock       utils.Clock
	validator   validators.Validator
	logger      *logger.Logger
}

// NewItemService constructs an ItemService over the given repositories,
// scheduler and clock.
func NewItemService(items store.ItemRepository, collections store.CollectionRepository, sched *scheduler.Ebbinghaus, clock utils.Clock, validator validators.Validator, log *logger.Logger) ItemService {
	return &itemService{
		items:       items,
		collections: collections,
		scheduler:   sched,
		clock:       clock,
		validator:   validator,
		logger:      log,
	}
}

// ListItems returns the items of one of the user's collections.
func (s *itemService) ListItems(ctx context.Context, userID, collectionID string) ([]models.ReviewItem, error) {
	if err := s.checkCollectionOwnership(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	return s.items.ListItems(ctx, collectionID)
}

// ListAllItems returns every item across all of the user's collections.
func (s *itemService) ListAllItems(ctx context.Context, userID string) ([]models.ReviewItem, error) {
	return s.items.ListAllItemsForUser(ctx, userID)
}

// CreateItem validates and persists one new item in one of the user's
// collections.
func (s *itemService) CreateItem(ctx context.Context, userID string, fields models.NewItem) (models.ReviewItem, error) {
	created, err := s.BatchCreateItems(ctx, userID, []models.NewItem{fields})
	if err != nil {
		return models.ReviewItem{}, err
	}

	return created[0], nil
}

// BatchCreateItems validates and persists many new items in a single store
// rewrite. Every target collection must belong to the user.
func (s *itemService) BatchCreateItems(ctx context.Context, userID string, fields []models.NewItem) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, fields); err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("invalid item data")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	for _, f := range fields {
		if err := s.checkCollectionOwnership(ctx, userID, f.CollectionID); err != nil {
			return nil, err
		}
	}

	created, err := s.items.BatchCreateItems(ctx, fields)
	if err != nil {
		log.Err(err).Str("userId", userID).Int("count", len(fields)).Msg("item creation failed")
		return nil, err
	}

	return created, nil
}

// UpdateItem merges the patch into one of the user's items.
func (s *itemService) UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemUpdate) (models.ReviewItem, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, patch); err != nil {
		log.Error().Err(err).Str("itemId", itemID).Msg("invalid item patch")
		return models.ReviewItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return models.ReviewItem{}, err
	}

	return s.items.UpdateItem(ctx, itemID, patch)
}

// ReviewItem applies one review outcome through the scheduler and persists
// the rescheduled item. The operation is a pure state transition: aside from
// the NotFound lookup it cannot fail.
func (s *itemService) ReviewItem(ctx context.Context, userID, itemID string, success bool) (models.ReviewItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return models.ReviewItem{}, err
	}

	reviewed := s.scheduler.Review(item, success, s.clock.Now())

	saved, err := s.items.SaveItem(ctx, reviewed)
	if err != nil {
		log.Err(err).Str("itemId", itemID).Msg("error persisting review outcome")
		return models.ReviewItem{}, err
	}

	log.Debug().
		Str("itemId", itemID).
		Bool("success", success).
		Str("status", string(saved.Status)).
		Int("reviewCount", saved.ReviewCount).
		Msg("item reviewed")

	return saved, nil
}

// ownedItem returns the item when it belongs to one of the user's
// collections, store.ErrNotFound otherwise.
func (s *itemService) ownedItem(ctx context.Context, userID, itemID string) (models.ReviewItem, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.ReviewItem{}, err
	}

	if err := s.checkCollectionOwnership(ctx, userID, item.CollectionID); err != nil {
		return models.ReviewItem{}, err
	}

	return item, nil
}

func (s *itemService) checkCollectionOwnership(ctx context.Context, userID, collectionID string) error {
	c, err := s.collections.GetCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return store.ErrNotFound
	}

	return nil
}
