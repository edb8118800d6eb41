package models

import "time"

// ReviewStatus is the lifecycle state of a review item.
//
// Items start as StatusNew, move to StatusLearning on their first review
// attempt, and become StatusMastered after three consecutive successes.
// A failed review from any state returns the item to StatusLearning.
type ReviewStatus string

const (
	StatusNew      ReviewStatus = "new"
	StatusLearning ReviewStatus = "learning"
	StatusMastered ReviewStatus = "mastered"
)

// ReviewItem is the unit of spaced repetition: a single fact, problem or
// note tracked for re-learning.
//
// All timestamps are Unix milliseconds, matching the persisted wire format.
type ReviewItem struct {
	// ID is the unique identifier of the item (UUID).
	ID string `json:"id"`

	// CollectionID references the owning collection. Every persisted item
	// must reference an existing collection record.
	CollectionID string `json:"collectionId"`

	// Title is the prompt (front face) shown during review.
	Title string `json:"title"`

	// Content is the answer or notes, markdown or plain text.
	Content string `json:"content"`

	// GroupName is an optional sub-bucket label, e.g. a chapter name.
	GroupName string `json:"groupName,omitempty"`

	// Status is the lifecycle state.
	Status ReviewStatus `json:"status"`

	// ReviewCount is the streak of consecutive successful reviews since the
	// last failure or creation. Never negative; drives both the interval
	// lookup and the mastery threshold.
	ReviewCount int `json:"reviewCount"`

	// NextReviewAt is the due time in Unix milliseconds. Always set once
	// the item exists; a fresh item is due immediately.
	NextReviewAt int64 `json:"nextReviewAt"`

	// LastReviewedAt is the time of the most recent review attempt,
	// regardless of outcome. Zero means the item was never reviewed.
	LastReviewedAt int64 `json:"lastReviewedAt,omitempty"`

	// CreatedAt is the creation timestamp in Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// NextReviewTime returns NextReviewAt as a time.Time.
func (i ReviewItem) NextReviewTime() time.Time {
	return time.UnixMilli(i.NextReviewAt)
}

// LastReviewedTime returns LastReviewedAt as a time.Time and a flag telling
// whether the item has ever been reviewed.
func (i ReviewItem) LastReviewedTime() (time.Time, bool) {
	if i.LastReviewedAt == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(i.LastReviewedAt), true
}

// ItemUpdate is a partial update of an item's editable fields. Scheduling
// fields (status, counters, due time) are owned by the scheduler and cannot
// be patched directly.
type ItemUpdate struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	GroupName *string `json:"groupName,omitempty"`
}

// Apply merges the update into item in place.
func (p ItemUpdate) Apply(item *ReviewItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Content != nil {
		item.Content = *p.Content
	}
	if p.GroupName != nil {
		item.GroupName = *p.GroupName
	}
}

// NewItem describes the caller-supplied fields of an item to create.
// The repository assigns ID, timestamps and the initial scheduling state.
type NewItem struct {
	CollectionID string `json:"collectionId"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	GroupName    string `json:"groupName,omitempty"`
}
