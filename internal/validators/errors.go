package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail      = errors.New("invalid email")
	ErrEmptySecret       = errors.New("secret is required")
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptyName         = errors.New("name is required")
	ErrEmptyCollectionID = errors.New("collection id is required")
	ErrInvalidKind       = errors.New("invalid collection kind")
	ErrInvalidTheme      = errors.New("invalid collection theme")
	ErrInvalidGender     = errors.New("invalid gender")
	ErrEmptyItems        = errors.New("items list cannot be empty")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrInvalidBirthDate  = errors.New("invalid birth date")
)
