package service

import (
	"context"

	"github.com/asig/closed-loop/models"
)

// AuthService handles registration, login, profile access and the JWT token
// lifecycle. Credential verification itself is delegated to the configured
// CredentialVerifier strategy.
type AuthService interface {
	Register(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	GetProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.UserUpdate) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CredentialVerifier is the strategy behind AuthService: it establishes who
// the caller is, either against the local store or against the remote auth
// service. Both implementations return a user record backed by the local
// store, so downstream code never cares which mode is active.
type CredentialVerifier interface {
	// Register creates a new account for the credentials.
	Register(ctx context.Context, creds models.Credentials) (models.User, error)

	// Verify checks the credentials and returns the matching user.
	Verify(ctx context.Context, creds models.Credentials) (models.User, error)
}

// CollectionService manages a user's collections.
type CollectionService interface {
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)
	CreateCollection(ctx context.Context, userID string, c models.Collection) (models.Collection, error)
	DeleteCollection(ctx context.Context, userID, collectionID string) error
}

// ItemService manages review items and applies review outcomes through the
// scheduler. All operations are scoped to the calling user; touching another
// user's data yields the same error as a missing record.
type ItemService interface {
	ListItems(ctx context.Context, userID, collectionID string) ([]models.ReviewItem, error)
	ListAllItems(ctx context.Context, userID string) ([]models.ReviewItem, error)
	CreateItem(ctx context.Context, userID string, fields models.NewItem) (models.ReviewItem, error)
	BatchCreateItems(ctx context.Context, userID string, fields []models.NewItem) ([]models.ReviewItem, error)
	UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemUpdate) (models.ReviewItem, error)

	// ReviewItem applies one review outcome and persists the rescheduled item.
	ReviewItem(ctx context.Context, userID, itemID string, success bool) (models.ReviewItem, error)
}

// StatsService computes the dashboard aggregates and the activity heatmap
// over a user's full item set.
type StatsService interface {
	DashboardStats(ctx context.Context, userID string) (models.DashboardStats, error)
	Heatmap(ctx context.Context, userID string) ([]models.ActivityBucket, error)
}
