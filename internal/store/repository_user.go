package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

// userRepository implements [UserRepository] over the record-set store.
type userRepository struct {
	store  Store
	mu     *sync.Mutex
	ids    IDGenerator
	clock  utils.Clock
	logger *logger.Logger
}

func newUserRepository(s Store, mu *sync.Mutex, ids IDGenerator, clock utils.Clock, log *logger.Logger) *userRepository {
	log.Debug().Msg("creating user repository")
	return &userRepository{store: s, mu: mu, ids: ids, clock: clock, logger: log}
}

// CreateUser registers a new account and seeds the two default collections
// in the same guarded step. The user and collection record sets are
// rewritten back to back; the shared mutex keeps other mutations from
// interleaving, though the store itself offers no rollback if the second
// write fails.
//
// Returns [ErrDuplicateEmail] when a user with the same email (exact,
// case-sensitive match) already exists.
func (r *userRepository) CreateUser(ctx context.Context, email, secret string) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	if err := r.store.Load(ctx, UsersKey, &users); err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Email == email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("error hashing secret")
		return models.User{}, fmt.Errorf("error hashing secret: %w", err)
	}

	user := models.User{
		ID:        r.ids.Generate(),
		Email:     email,
		Name:      displayNameFromEmail(email),
		Secret:    string(hash),
		Gender:    models.GenderSecret,
		CreatedAt: r.clock.Now().UnixMilli(),
	}

	users = append(users, user)
	if err := r.store.Save(ctx, UsersKey, users); err != nil {
		return models.User{}, err
	}

	if err := r.seedDefaultCollections(ctx, user.ID); err != nil {
		log.Err(err).Str("userId", user.ID).Msg("error seeding default collections")
		return models.User{}, err
	}

	return user, nil
}

// seedDefaultCollections appends the vocab and algorithm starter
// collections for a freshly registered user. Caller must hold the mutex.
func (r *userRepository) seedDefaultCollections(ctx context.Context, userID string) error {
	var collections []models.Collection
	if err := r.store.Load(ctx, CollectionsKey, &collections); err != nil {
		return err
	}

	collections = append(collections,
		models.Collection{
			ID:     r.ids.Generate(),
			UserID: userID,
			Kind:   models.KindVocab,
			Name:   "Vocabulary",
			Theme:  "amber",
			Icon:   "book",
		},
		models.Collection{
			ID:     r.ids.Generate(),
			UserID: userID,
			Kind:   models.KindAlgorithm,
			Name:   "Algorithms",
			Theme:  "sky",
			Icon:   "code",
		},
	)

	return r.store.Save(ctx, CollectionsKey, collections)
}

// Authenticate returns the user matching both email and secret.
//
// The same [ErrInvalidCredentials] is returned whether the email is
// unknown or the secret does not match, so callers cannot probe for
// registered addresses.
func (r *userRepository) Authenticate(ctx context.Context, email, secret string) (models.User, error) {
	var users []models.User
	if err := r.store.Load(ctx, UsersKey, &users); err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Secret), []byte(secret)) != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return u, nil
	}

	return models.User{}, ErrInvalidCredentials
}

// GetUser returns the user with the given id.
func (r *userRepository) GetUser(ctx context.Context, id string) (models.User, error) {
	var users []models.User
	if err := r.store.Load(ctx, UsersKey, &users); err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}

	return models.User{}, ErrNotFound
}

// UpdateUser shallow-merges the patch into the stored record: nil fields
// are preserved, set fields replace.
func (r *userRepository) UpdateUser(ctx context.Context, id string, patch models.UserUpdate) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	if err := r.store.Load(ctx, UsersKey, &users); err != nil {
		return models.User{}, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}

		patch.Apply(&users[i])
		if err := r.store.Save(ctx, UsersKey, users); err != nil {
			return models.User{}, err
		}
		return users[i], nil
	}

	return models.User{}, ErrNotFound
}

// MirrorUser upserts a remotely authenticated identity for offline reads.
// When the record already exists, only the identity fields are refreshed
// and locally cached profile fields survive. The merged record is
// returned.
func (r *userRepository) MirrorUser(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	if err := r.store.Load(ctx, UsersKey, &users); err != nil {
		return models.User{}, err
	}

	for i := range users {
		if users[i].ID != user.ID {
			continue
		}

		users[i].Email = user.Email
		if err := r.store.Save(ctx, UsersKey, users); err != nil {
			return models.User{}, err
		}
		return users[i], nil
	}

	if user.Name == "" {
		user.Name = displayNameFromEmail(user.Email)
	}
	if user.Gender == "" {
		user.Gender = models.GenderSecret
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = r.clock.Now().UnixMilli()
	}

	users = append(users, user)
	if err := r.store.Save(ctx, UsersKey, users); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func displayNameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
