package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrDuplicateEmail is returned when an attempt to register a new user
	// fails because a user with the same email already exists. Matching is
	// a case-sensitive exact comparison.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials is returned when no user matches both the
	// email and the secret presented at login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when an update or delete references an id
	// that does not exist in the store.
	ErrNotFound = errors.New("record not found")
)

// Low-level store errors, returned (or wrapped) when a backend operation
// fails before any domain logic can be applied.
var (
	// ErrExecutingQuery is returned when a read against a SQL backend fails.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrExecutingStatement is returned when a write against a SQL backend
	// fails.
	ErrExecutingStatement = errors.New("error executing statement")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrEncodingRecords is returned when a record set cannot be encoded
	// for persistence.
	ErrEncodingRecords = errors.New("error encoding records")

	// ErrWritingFile is returned when the file backend cannot persist a
	// record set to disk.
	ErrWritingFile = errors.New("error writing record set file")
)
