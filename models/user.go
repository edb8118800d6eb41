package models

// Gender is the self-reported gender of a user profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
	GenderSecret Gender = "secret"
)

// ValidGender reports whether g is one of the known gender values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderSecret:
		return true
	}
	return false
}

// User represents an account entity used for authentication and profile data.
//
// Secret holds the bcrypt hash of the user's password. It is persisted with
// the record but never exposed via JSON outside the store.
type User struct {
	// ID is the unique identifier of the user (UUID).
	ID string `json:"id"`

	// Email is the unique login identifier. Matching is case-sensitive.
	Email string `json:"email"`

	// Name is the display name, defaulted at registration to the part of
	// the email address before the "@".
	Name string `json:"name"`

	// Secret is the bcrypt hash of the user's password.
	Secret string `json:"secret,omitempty"`

	// Avatar is an optional reference to the user's avatar image
	// (a data URL or an external location).
	Avatar string `json:"avatar,omitempty"`

	// Address is an optional free-form profile field.
	Address string `json:"address,omitempty"`

	// BirthDate is an optional date in "YYYY-MM-DD" form.
	BirthDate string `json:"birthDate,omitempty"`

	// Gender is an optional profile field; defaults to GenderSecret.
	Gender Gender `json:"gender,omitempty"`

	// CreatedAt is the registration timestamp in Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// Public returns a copy of the user with credential material removed,
// safe to hand to transport layers.
func (u User) Public() User {
	u.Secret = ""
	return u
}

// Credentials carry the email and secret a client presents at registration
// or login. The secret travels in plain text over the transport and is
// hashed before it ever reaches the store.
type Credentials struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// UserUpdate is a partial update of profile fields. Nil pointers mean
// "leave unchanged"; the merge is shallow, matching the repository contract.
type UserUpdate struct {
	Name      *string `json:"name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
}

// Apply merges the update into u in place.
func (p UserUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.BirthDate != nil {
		u.BirthDate = *p.BirthDate
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
}
