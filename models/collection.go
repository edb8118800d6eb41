package models

// CollectionKind declares what a collection groups: vocabulary entries,
// algorithm problems, or arbitrary user-defined notes.
type CollectionKind string

const (
	KindVocab     CollectionKind = "vocab"
	KindAlgorithm CollectionKind = "algorithm"
	KindCustom    CollectionKind = "custom"
)

// ValidCollectionKind reports whether k is one of the known kinds.
func ValidCollectionKind(k CollectionKind) bool {
	switch k {
	case KindVocab, KindAlgorithm, KindCustom:
		return true
	}
	return false
}

// Themes accepted for a collection's display theme. Presentation itself is
// out of scope here; the engine only stores and validates the tag.
var CollectionThemes = []string{"amber", "lime", "pink", "sky", "violet", "orange", "teal", "rose"}

// ValidCollectionTheme reports whether theme is a known theme tag.
func ValidCollectionTheme(theme string) bool {
	for _, t := range CollectionThemes {
		if t == theme {
			return true
		}
	}
	return false
}

// Collection is a named grouping of review items owned by exactly one user.
//
// Deleting a collection cascades to every item whose CollectionID matches;
// both record sets are rewritten in the same logical step.
type Collection struct {
	// ID is the unique identifier of the collection (UUID).
	ID string `json:"id"`

	// UserID references the owning user. Every persisted collection must
	// reference an existing user record.
	UserID string `json:"userId"`

	// Kind declares the collection's content type.
	Kind CollectionKind `json:"kind"`

	// Name is the display name chosen by the user.
	Name string `json:"name"`

	// Theme is the display theme tag (see CollectionThemes).
	Theme string `json:"theme"`

	// Icon is an optional icon tag (e.g. "book", "code", "star").
	Icon string `json:"icon,omitempty"`
}
