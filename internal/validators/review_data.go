package validators

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/asig/closed-loop/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldEmail targets the login email of a credentials pair.
	FieldEmail = "email"

	// FieldSecret targets the secret of a credentials pair.
	FieldSecret = "secret"

	// FieldName targets the display name of a collection.
	FieldName = "name"

	// FieldKind targets the declared kind of a collection.
	FieldKind = "kind"

	// FieldTheme targets the display theme tag of a collection.
	FieldTheme = "theme"

	// FieldTitle targets the prompt title of a review item.
	FieldTitle = "title"

	// FieldCollectionID targets the owning collection reference of an item.
	FieldCollectionID = "collection_id"
)

// ReviewDataValidator implements the Validator interface for the domain
// models crossing the transport boundary: Credentials, Collection, NewItem,
// item batches, ItemUpdate, and UserUpdate.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type ReviewDataValidator struct {
}

// NewReviewDataValidator constructs a new ReviewDataValidator
// and returns it as the Validator interface.
func NewReviewDataValidator() Validator {
	return &ReviewDataValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
func (v *ReviewDataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.Collection:
		return v.validateCollection(ctx, value, fields...)
	case *models.Collection:
		return v.validateCollection(ctx, *value, fields...)

	case models.NewItem:
		return v.validateNewItem(ctx, value, fields...)
	case *models.NewItem:
		return v.validateNewItem(ctx, *value, fields...)

	case []models.NewItem:
		return v.validateNewItems(ctx, value, fields...)

	case models.ItemUpdate:
		return v.validateItemUpdate(value)
	case *models.ItemUpdate:
		return v.validateItemUpdate(*value)

	case models.UserUpdate:
		return v.validateUserUpdate(value)
	case *models.UserUpdate:
		return v.validateUserUpdate(*value)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *ReviewDataValidator) validateCredentials(_ context.Context, c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldSecret}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if _, err := mail.ParseAddress(c.Email); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, c.Email)
			}
		case FieldSecret:
			if c.Secret == "" {
				return ErrEmptySecret
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *ReviewDataValidator) validateCollection(_ context.Context, c models.Collection, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldKind, FieldTheme}
	}

	for _, field := range fields {
		switch field {
		case FieldName:
			if c.Name == "" {
				return ErrEmptyName
			}
		case FieldKind:
			if !models.ValidCollectionKind(c.Kind) {
				return fmt.Errorf("%w: %q", ErrInvalidKind, c.Kind)
			}
		case FieldTheme:
			if c.Theme != "" && !models.ValidCollectionTheme(c.Theme) {
				return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Theme)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *ReviewDataValidator) validateNewItem(_ context.Context, item models.NewItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldCollectionID}
	}

	for _, field := range fields {
		switch field {
		case FieldTitle:
			if item.Title == "" {
				return ErrEmptyTitle
			}
		case FieldCollectionID:
			if item.CollectionID == "" {
				return ErrEmptyCollectionID
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *ReviewDataValidator) validateNewItems(ctx context.Context, items []models.NewItem, fields ...string) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}

	for i, item := range items {
		if err := v.validateNewItem(ctx, item, fields...); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	return nil
}

func (v *ReviewDataValidator) validateItemUpdate(patch models.ItemUpdate) error {
	if patch.Title == nil && patch.Content == nil && patch.GroupName == nil {
		return ErrNoFieldsToUpdate
	}
	if patch.Title != nil && *patch.Title == "" {
		return ErrEmptyTitle
	}

	return nil
}

func (v *ReviewDataValidator) validateUserUpdate(patch models.UserUpdate) error {
	if patch.Name == nil && patch.Avatar == nil && patch.Address == nil &&
		patch.BirthDate == nil && patch.Gender == nil {
		return ErrNoFieldsToUpdate
	}

	if patch.Name != nil && *patch.Name == "" {
		return ErrEmptyName
	}
	if patch.Gender != nil && !models.ValidGender(*patch.Gender) {
		return fmt.Errorf("%w: %q", ErrInvalidGender, *patch.Gender)
	}
	if patch.BirthDate != nil && *patch.BirthDate != "" {
		if _, err := time.Parse(time.DateOnly, *patch.BirthDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidBirthDate, *patch.BirthDate)
		}
	}

	return nil
}
