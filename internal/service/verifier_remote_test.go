package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asig/closed-loop/internal/adapter"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/models"
)

func TestRemoteVerifier_RegisterMirrorsAndSeeds(t *testing.T) {
	ctx := context.Background()

	gateway := &mockAuthGateway{
		registerFn: func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
			return models.AuthPayload{ID: "remote-1", Email: creds.Email}, nil
		},
	}

	var mirrored models.User
	users := &mockUserRepository{
		getUserFn: func(ctx context.Context, id string) (models.User, error) {
			return models.User{}, store.ErrNotFound
		},
		mirrorUserFn: func(ctx context.Context, user models.User) (models.User, error) {
			mirrored = user
			return user, nil
		},
	}

	var seeded []models.Collection
	collections := &mockCollectionRepository{
		createCollectionFn: func(ctx context.Context, c models.Collection) (models.Collection, error) {
			seeded = append(seeded, c)
			return c, nil
		},
	}

	v := NewRemoteVerifier(gateway, users, collections, logger.Nop())

	user, err := v.Register(ctx, models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "remote-1", user.ID)
	assert.Equal(t, "remote-1", mirrored.ID)
	assert.Equal(t, "ada@example.com", mirrored.Email)

	require.Len(t, seeded, 2, "first-time identity gets the default collections")
	assert.Equal(t, models.KindVocab, seeded[0].Kind)
	assert.Equal(t, models.KindAlgorithm, seeded[1].Kind)
	for _, c := range seeded {
		assert.Equal(t, "remote-1", c.UserID)
	}
}

func TestRemoteVerifier_RegisterKnownIdentitySkipsSeeding(t *testing.T) {
	ctx := context.Background()

	gateway := &mockAuthGateway{
		registerFn: func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
			return models.AuthPayload{ID: "remote-1", Email: creds.Email}, nil
		},
	}

	users := &mockUserRepository{
		getUserFn: func(ctx context.Context, id string) (models.User, error) {
			return models.User{ID: id}, nil
		},
	}

	seeds := 0
	collections := &mockCollectionRepository{
		createCollectionFn: func(ctx context.Context, c models.Collection) (models.Collection, error) {
			seeds++
			return c, nil
		},
	}

	v := NewRemoteVerifier(gateway, users, collections, logger.Nop())

	_, err := v.Register(ctx, models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
	require.NoError(t, err)
	assert.Zero(t, seeds)
}

func TestRemoteVerifier_VerifyReturnsMergedLocalRecord(t *testing.T) {
	ctx := context.Background()

	gateway := &mockAuthGateway{
		loginFn: func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
			return models.AuthPayload{ID: "remote-1", Email: creds.Email}, nil
		},
	}

	users := &mockUserRepository{
		mirrorUserFn: func(ctx context.Context, user models.User) (models.User, error) {
			// The repository merges cached profile fields into the identity.
			user.Name = "Cached Name"
			user.Avatar = "cached-avatar"
			return user, nil
		},
	}

	v := NewRemoteVerifier(gateway, users, &mockCollectionRepository{}, logger.Nop())

	user, err := v.Verify(ctx, models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Cached Name", user.Name)
	assert.Equal(t, "cached-avatar", user.Avatar)
}

func TestRemoteVerifier_GatewayErrorMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("conflict becomes duplicate email", func(t *testing.T) {
		gateway := &mockAuthGateway{
			registerFn: func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
				return models.AuthPayload{}, adapter.ErrConflict
			},
		}

		v := NewRemoteVerifier(gateway, &mockUserRepository{}, &mockCollectionRepository{}, logger.Nop())

		_, err := v.Register(ctx, models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
		assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	t.Run("unauthorized becomes invalid credentials", func(t *testing.T) {
		gateway := &mockAuthGateway{
			loginFn: func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
				return models.AuthPayload{}, adapter.ErrUnauthorized
			},
		}

		v := NewRemoteVerifier(gateway, &mockUserRepository{}, &mockCollectionRepository{}, logger.Nop())

		_, err := v.Verify(ctx, models.Credentials{Email: "ada@example.com", Secret: "wrong"})
		assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	})

	t.Run("other failures pass through", func(t *testing.T) {
		gateway := &mockAuthGateway{
			loginFn: func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
				return models.AuthPayload{}, adapter.ErrRemoteFailure
			},
		}

		v := NewRemoteVerifier(gateway, &mockUserRepository{}, &mockCollectionRepository{}, logger.Nop())

		_, err := v.Verify(ctx, models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
		assert.ErrorIs(t, err, adapter.ErrRemoteFailure)
	})
}
