// Package adapter provides transport-layer abstractions for communicating
// with the optional remote authentication service.
//
// The primary abstraction is [AuthGateway], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPAuthGateway]) speaking the {code, message, data} envelope of the
// remote contract.
//
// Error values defined in errors.go are mapped from envelope codes by
// mapEnvelope so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for a duplicate registration,
// [ErrUnauthorized] for rejected credentials).
package adapter

import (
	"context"

	"github.com/asig/closed-loop/models"
)

// AuthGateway defines transport-agnostic communication with the remote
// authentication service. Implementations are responsible for serialisation
// and for mapping transport-level and envelope-level failures to the sentinel
// values defined in this package.
type AuthGateway interface {
	// Register creates an account on the remote service and returns the
	// identity it vouches for. Returns ErrConflict (wrapped) when the email
	// is already registered remotely.
	Register(ctx context.Context, creds models.Credentials) (models.AuthPayload, error)

	// Login verifies the credentials against the remote service and returns
	// the identity it vouches for. Returns ErrUnauthorized (wrapped) when the
	// credentials are rejected.
	Login(ctx context.Context, creds models.Credentials) (models.AuthPayload, error)
}
