package service

import (
	"context"

	"github.com/asig/closed-loop/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn   func(ctx context.Context, email, secret string) (models.User, error)
	authenticateFn func(ctx context.Context, email, secret string) (models.User, error)
	getUserFn      func(ctx context.Context, id string) (models.User, error)
	updateUserFn   func(ctx context.Context, id string, patch models.UserUpdate) (models.User, error)
	mirrorUserFn   func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, email, secret string) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, email, secret)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) Authenticate(ctx context.Context, email, secret string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, email, secret)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetUser(ctx context.Context, id string) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, id string, patch models.UserUpdate) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, id, patch)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) MirrorUser(ctx context.Context, user models.User) (models.User, error) {
	if m.mirrorUserFn != nil {
		return m.mirrorUserFn(ctx, user)
	}
	return user, nil
}

// ─────────────────────────────────────────────
// Mock: store.CollectionRepository
// ─────────────────────────────────────────────

type mockCollectionRepository struct {
	listCollectionsFn  func(ctx context.Context, userID string) ([]models.Collection, error)
	getCollectionFn    func(ctx context.Context, id string) (models.Collection, error)
	createCollectionFn func(ctx context.Context, c models.Collection) (models.Collection, error)
	deleteCollectionFn func(ctx context.Context, id string) error
}

func (m *mockCollectionRepository) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	if m.listCollectionsFn != nil {
		return m.listCollectionsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCollectionRepository) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	if m.getCollectionFn != nil {
		return m.getCollectionFn(ctx, id)
	}
	return models.Collection{}, nil
}

func (m *mockCollectionRepository) CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	if m.createCollectionFn != nil {
		return m.createCollectionFn(ctx, c)
	}
	return c, nil
}

func (m *mockCollectionRepository) DeleteCollection(ctx context.Context, id string) error {
	if m.deleteCollectionFn != nil {
		return m.deleteCollectionFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.ItemRepository
// ─────────────────────────────────────────────

type mockItemRepository struct {
	listItemsFn           func(ctx context.Context, collectionID string) ([]models.ReviewItem, error)
	listAllItemsForUserFn func(ctx context.Context, userID string) ([]models.ReviewItem, error)
	getItemFn             func(ctx context.Context, id string) (models.ReviewItem, error)
	createItemFn          func(ctx context.Context, fields models.NewItem) (models.ReviewItem, error)
	batchCreateItemsFn    func(ctx context.Context, fields []models.NewItem) ([]models.ReviewItem, error)
	updateItemFn          func(ctx context.Context, id string, patch models.ItemUpdate) (models.ReviewItem, error)
	saveItemFn            func(ctx context.Context, item models.ReviewItem) (models.ReviewItem, error)
}

func (m *mockItemRepository) ListItems(ctx context.Context, collectionID string) ([]models.ReviewItem, error) {
	if m.listItemsFn != nil {
		return m.listItemsFn(ctx, collectionID)
	}
	return nil, nil
}

func (m *mockItemRepository) ListAllItemsForUser(ctx context.Context, userID string) ([]models.ReviewItem, error) {
	if m.listAllItemsForUserFn != nil {
		return m.listAllItemsForUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockItemRepository) GetItem(ctx context.Context, id string) (models.ReviewItem, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, id)
	}
	return models.ReviewItem{}, nil
}

func (m *mockItemRepository) CreateItem(ctx context.Context, fields models.NewItem) (models.ReviewItem, error) {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, fields)
	}
	return models.ReviewItem{}, nil
}

func (m *mockItemRepository) BatchCreateItems(ctx context.Context, fields []models.NewItem) ([]models.ReviewItem, error) {
	if m.batchCreateItemsFn != nil {
		return m.batchCreateItemsFn(ctx, fields)
	}
	return nil, nil
}

func (m *mockItemRepository) UpdateItem(ctx context.Context, id string, patch models.ItemUpdate) (models.ReviewItem, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, id, patch)
	}
	return models.ReviewItem{}, nil
}

func (m *mockItemRepository) SaveItem(ctx context.Context, item models.ReviewItem) (models.ReviewItem, error) {
	if m.saveItemFn != nil {
		return m.saveItemFn(ctx, item)
	}
	return item, nil
}

// ─────────────────────────────────────────────
// Mock: adapter.AuthGateway
// ─────────────────────────────────────────────

type mockAuthGateway struct {
	registerFn func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error)
	loginFn    func(ctx context.Context, creds models.Credentials) (models.AuthPayload, error)
}

func (m *mockAuthGateway) Register(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, creds)
	}
	return models.AuthPayload{}, nil
}

func (m *mockAuthGateway) Login(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, creds)
	}
	return models.AuthPayload{}, nil
}

// ─────────────────────────────────────────────
// Mock: CredentialVerifier
// ─────────────────────────────────────────────

type mockVerifier struct {
	registerFn func(ctx context.Context, creds models.Credentials) (models.User, error)
	verifyFn   func(ctx context.Context, creds models.Credentials) (models.User, error)
}

func (m *mockVerifier) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, creds)
	}
	return models.User{}, nil
}

func (m *mockVerifier) Verify(ctx context.Context, creds models.Credentials) (models.User, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, creds)
	}
	return models.User{}, nil
}
