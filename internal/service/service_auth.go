package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/internal/validators"
	"github.com/asig/closed-loop/models"
)

// authService is the concrete implementation of AuthService.
// Credential verification is delegated to the injected CredentialVerifier
// (local store check or remote auth service, chosen by configuration); this
// type owns validation, profile access and the JWT token lifecycle.
type authService struct {
	// verifier establishes the caller's identity at register/login time.
	verifier CredentialVerifier

	// users is the data-access layer for profile reads and updates.
	users store.UserRepository

	// validator rejects malformed credentials and profile patches before
	// they reach the verifier or the store.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given verifier and
// user repository, with token parameters taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(verifier CredentialVerifier, users store.UserRepository, validator validators.Validator, cfg config.App, log *logger.Logger) AuthService {
	return &authService{
		verifier:      verifier,
		users:         users,
		validator:     validator,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        log,
	}
}

// Register creates a new user account through the configured verifier.
//
// Returns the registered user (credential material stripped) or:
//   - ErrInvalidDataProvided if the email is malformed or the secret empty.
//   - store.ErrDuplicateEmail if the email is already registered.
func (a *authService) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Error().Err(err).Str("email", creds.Email).Msg("invalid registration data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.verifier.Register(ctx, creds)
	if err != nil {
		log.Err(err).Str("email", creds.Email).Msg("user registration failed")
		return models.User{}, err
	}

	return user.Public(), nil
}

// Login authenticates an existing user through the configured verifier.
//
// Returns the authenticated user (credential material stripped) or:
//   - ErrInvalidDataProvided if the email is malformed or the secret empty.
//   - store.ErrInvalidCredentials if no user matches both email and secret.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Error().Err(err).Str("email", creds.Email).Msg("invalid login data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.verifier.Verify(ctx, creds)
	if err != nil {
		log.Err(err).Str("email", creds.Email).Msg("login failed")
		return models.User{}, err
	}

	return user.Public(), nil
}

// GetProfile returns the user's profile with credential material stripped.
func (a *authService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	return user.Public(), nil
}

// UpdateProfile merges the patch into the user's profile.
//
// Returns ErrInvalidDataProvided when the patch is empty or carries invalid
// field values.
func (a *authService) UpdateProfile(ctx context.Context, userID string, patch models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, patch); err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("invalid profile patch")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.UpdateUser(ctx, userID, patch)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("profile update failed")
		return models.User{}, err
	}

	return user.Public(), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
