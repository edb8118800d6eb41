package service

import (
	"context"
	"fmt"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/validators"
	"github.com/asig/closed-loop/models"
)

// collectionService is the concrete implementation of CollectionService.
// Every operation is scoped to the calling user: a collection owned by
// someone else behaves exactly like a missing one.
type collectionService struct {
	collections store.CollectionRepository
	validator   validators.Validator
	logger      *logger.Logger
}

// NewCollectionService constructs a CollectionService over the given
// repository.
func NewCollectionService(collections store.CollectionRepository, validator validators.Validator, log *logger.Logger) CollectionService {
	return &collectionService{collections: collections, validator: validator, logger: log}
}

// ListCollections returns the user's collections in insertion order.
func (s *collectionService) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	return s.collections.ListCollections(ctx, userID)
}

// CreateCollection validates and persists a new collection owned by userID.
// The UserID field of c is overwritten with the caller's identity; clients
// cannot create collections for other users.
func (s *collectionService) CreateCollection(ctx context.Context, userID string, c models.Collection) (models.Collection, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, c); err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("invalid collection data")
		return models.Collection{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	c.UserID = userID

	created, err := s.collections.CreateCollection(ctx, c)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("collection creation failed")
		return models.Collection{}, err
	}

	return created, nil
}

// DeleteCollection removes the collection and cascades to its items.
// Returns store.ErrNotFound when the collection does not exist or belongs to
// another user.
func (s *collectionService) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	c, err := s.collections.GetCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return store.ErrNotFound
	}

	return s.collections.DeleteCollection(ctx, collectionID)
}
