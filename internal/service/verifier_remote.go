package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/asig/closed-loop/internal/adapter"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/models"
)

// remoteVerifier delegates credential checks to the remote auth service and
// mirrors the vouched identity into the local store, so collections, items
// and profile data remain readable offline. Locally cached profile fields
// survive a re-login; only the identity fields are refreshed.
type remoteVerifier struct {
	gateway     adapter.AuthGateway
	users       store.UserRepository
	collections store.CollectionRepository
	logger      *logger.Logger
}

// NewRemoteVerifier constructs the gateway-backed CredentialVerifier.
func NewRemoteVerifier(gateway adapter.AuthGateway, users store.UserRepository, collections store.CollectionRepository, log *logger.Logger) CredentialVerifier {
	return &remoteVerifier{gateway: gateway, users: users, collections: collections, logger: log}
}

// Register implements [CredentialVerifier] against the remote service. The
// remote identity is mirrored locally; a first-time identity also gets the
// default collections seeded, matching local registration.
func (v *remoteVerifier) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	identity, err := v.gateway.Register(ctx, creds)
	if err != nil {
		return models.User{}, mapGatewayError(err)
	}

	_, lookupErr := v.users.GetUser(ctx, identity.ID)
	firstSeen := errors.Is(lookupErr, store.ErrNotFound)

	user, err := v.mirror(ctx, identity)
	if err != nil {
		return models.User{}, err
	}

	if firstSeen {
		if err := v.seedDefaultCollections(ctx, user.ID); err != nil {
			logger.FromContext(ctx).Err(err).Str("userId", user.ID).Msg("error seeding default collections for remote identity")
			return models.User{}, err
		}
	}

	return user, nil
}

// Verify implements [CredentialVerifier] against the remote service. The
// returned user is the mirrored local record with cached profile fields
// merged in.
func (v *remoteVerifier) Verify(ctx context.Context, creds models.Credentials) (models.User, error) {
	identity, err := v.gateway.Login(ctx, creds)
	if err != nil {
		return models.User{}, mapGatewayError(err)
	}

	return v.mirror(ctx, identity)
}

func (v *remoteVerifier) mirror(ctx context.Context, identity models.AuthPayload) (models.User, error) {
	user, err := v.users.MirrorUser(ctx, models.User{ID: identity.ID, Email: identity.Email})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("userId", identity.ID).Msg("error mirroring remote identity")
		return models.User{}, fmt.Errorf("error mirroring remote identity: %w", err)
	}

	return user, nil
}

func (v *remoteVerifier) seedDefaultCollections(ctx context.Context, userID string) error {
	seeds := []models.Collection{
		{UserID: userID, Kind: models.KindVocab, Name: "Vocabulary", Theme: "amber", Icon: "book"},
		{UserID: userID, Kind: models.KindAlgorithm, Name: "Algorithms", Theme: "sky", Icon: "code"},
	}

	for _, seed := range seeds {
		if _, err := v.collections.CreateCollection(ctx, seed); err != nil {
			return err
		}
	}

	return nil
}

// mapGatewayError folds adapter sentinels into the store error taxonomy so
// that callers see the same errors in local and remote mode.
func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, adapter.ErrConflict):
		return store.ErrDuplicateEmail
	case errors.Is(err, adapter.ErrUnauthorized):
		return store.ErrInvalidCredentials
	default:
		return err
	}
}
