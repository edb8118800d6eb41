package store

import (
	"context"

	"github.com/asig/closed-loop/models"
)

// Record-set keys of the three persisted collections.
const (
	UsersKey       = "users"
	CollectionsKey = "collections"
	ItemsKey       = "items"
)

// Store is the persistent record-set abstraction backing the repositories.
//
// Load fills dest (a pointer to a slice) with the records stored under key.
// An absent or malformed payload yields an empty slice, never an error.
// Save replaces the entire named collection with value. There are no
// partial updates and no cross-key transactions; callers needing a
// consistent read-modify-write cycle must serialize access themselves
// (the repositories do this through a shared mutex).
type Store interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, value any) error
	Close() error
}

// IDGenerator issues unique record identifiers. Injected so tests can
// assert deterministic ids.
type IDGenerator interface {
	Generate() string
}

// UserRepository manages user accounts.
type UserRepository interface {
	// CreateUser registers a new account and seeds the two default
	// collections (vocab and algorithm) as one compound operation.
	// The secret is stored as a bcrypt hash, never in plain text.
	CreateUser(ctx context.Context, email, secret string) (models.User, error)

	// Authenticate returns the user matching email and secret, or
	// ErrInvalidCredentials when no user matches both.
	Authenticate(ctx context.Context, email, secret string) (models.User, error)

	// GetUser returns the user with the given id, or ErrNotFound.
	GetUser(ctx context.Context, id string) (models.User, error)

	// UpdateUser shallow-merges the patch into the stored record.
	UpdateUser(ctx context.Context, id string, patch models.UserUpdate) (models.User, error)

	// MirrorUser upserts a remotely authenticated identity into the local
	// store so it stays readable offline. Locally cached profile fields
	// are preserved when the record already exists.
	MirrorUser(ctx context.Context, user models.User) (models.User, error)
}

// CollectionRepository manages collections and their referential
// integrity towards users and items.
type CollectionRepository interface {
	// ListCollections returns the user's collections in insertion order.
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)

	// GetCollection returns the collection with the given id, or ErrNotFound.
	GetCollection(ctx context.Context, id string) (models.Collection, error)

	// CreateCollection persists a new collection. The owning user must exist.
	CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error)

	// DeleteCollection removes the collection and every item referencing
	// it, rewriting both record sets in the same logical step.
	DeleteCollection(ctx context.Context, id string) error
}

// ItemRepository manages review items.
type ItemRepository interface {
	// ListItems returns the items of one collection in insertion order.
	ListItems(ctx context.Context, collectionID string) ([]models.ReviewItem, error)

	// ListAllItemsForUser returns every item across all of the user's
	// collections. Used by the aggregation queries.
	ListAllItemsForUser(ctx context.Context, userID string) ([]models.ReviewItem, error)

	// GetItem returns the item with the given id, or ErrNotFound.
	GetItem(ctx context.Context, id string) (models.ReviewItem, error)

	// CreateItem persists a new item with the initial scheduling state:
	// status "new", zero streak, due immediately.
	CreateItem(ctx context.Context, fields models.NewItem) (models.ReviewItem, error)

	// BatchCreateItems creates many items in a single rewrite of the item
	// record set.
	BatchCreateItems(ctx context.Context, fields []models.NewItem) ([]models.ReviewItem, error)

	// UpdateItem shallow-merges the patch into the stored record.
	UpdateItem(ctx context.Context, id string, patch models.ItemUpdate) (models.ReviewItem, error)

	// SaveItem replaces the stored record with item, matched by id.
	// Used by the scheduler to persist review outcomes.
	SaveItem(ctx context.Context, item models.ReviewItem) (models.ReviewItem, error)
}
