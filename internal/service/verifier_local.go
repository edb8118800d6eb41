package service

import (
	"context"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/models"
)

// localVerifier checks credentials against the local store. Registration
// creates the account (and its seeded default collections) directly in the
// user repository; verification is a bcrypt comparison against the stored
// hash.
type localVerifier struct {
	users  store.UserRepository
	logger *logger.Logger
}

// NewLocalVerifier constructs the store-backed CredentialVerifier.
func NewLocalVerifier(users store.UserRepository, log *logger.Logger) CredentialVerifier {
	return &localVerifier{users: users, logger: log}
}

// Register implements [CredentialVerifier] against the local store.
func (v *localVerifier) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	return v.users.CreateUser(ctx, creds.Email, creds.Secret)
}

// Verify implements [CredentialVerifier] against the local store.
func (v *localVerifier) Verify(ctx context.Context, creds models.Credentials) (models.User, error) {
	return v.users.Authenticate(ctx, creds.Email, creds.Secret)
}
