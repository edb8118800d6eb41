package adapter

import "errors"

var (
	// ErrUnauthorized signals that the remote service rejected the presented
	// credentials.
	ErrUnauthorized = errors.New("remote service rejected credentials")

	// ErrConflict signals that the remote service already holds an account
	// for the presented email.
	ErrConflict = errors.New("email already registered remotely")

	// ErrRemoteFailure signals any other application-level failure reported
	// through the response envelope.
	ErrRemoteFailure = errors.New("remote auth service failure")

	// ErrBadResponse signals a response that does not follow the envelope
	// contract (missing data on success, undecodable body).
	ErrBadResponse = errors.New("malformed remote auth response")
)
