// Package scheduler implements the spaced-repetition state machine.
//
// Items move through new → learning → mastered. Each successful review
// pushes the next due time further out along a fixed ascending interval
// table; a failed review resets the streak and makes the item due again
// immediately. Both transitions are pure functions of the current item
// state and the review instant, so the package holds no state of its own.
package scheduler

import (
	"time"

	"github.com/asig/closed-loop/models"
)

// DefaultIntervals is the Ebbinghaus-style interval table, in days.
var DefaultIntervals = []int{1, 2, 4, 7, 15, 30}

// DefaultMasteryThreshold is the successful-review streak at which an item
// becomes mastered.
const DefaultMasteryThreshold = 3

// Ebbinghaus schedules reviews along a fixed ascending interval table.
type Ebbinghaus struct {
	// Intervals is the ascending interval table in days. The streak before
	// the current success indexes it; streaks beyond the table reuse the
	// last entry.
	Intervals []int

	// MasteryThreshold is the streak at which status becomes mastered.
	MasteryThreshold int
}

// NewEbbinghaus returns a scheduler with the default interval table and
// mastery threshold.
func NewEbbinghaus() *Ebbinghaus {
	return &Ebbinghaus{
		Intervals:        DefaultIntervals,
		MasteryThreshold: DefaultMasteryThreshold,
	}
}

// Review applies one review outcome to item and returns the updated copy.
//
// On success the pre-increment streak indexes the interval table (the very
// first success uses Intervals[0]), the streak increments, and the item is
// mastered once the new streak reaches the threshold. On failure the streak
// resets, the item drops back to learning, and it is due again immediately.
// Either way lastReviewedAt is stamped with now.
func (e *Ebbinghaus) Review(item models.ReviewItem, success bool, now time.Time) models.ReviewItem {
	item.LastReviewedAt = now.UnixMilli()

	if !success {
		item.ReviewCount = 0
		item.Status = models.StatusLearning
		item.NextReviewAt = now.UnixMilli()
		return item
	}

	idx := item.ReviewCount
	if idx > len(e.Intervals)-1 {
		idx = len(e.Intervals) - 1
	}
	days := e.Intervals[idx]

	item.NextReviewAt = now.Add(time.Duration(days) * 24 * time.Hour).UnixMilli()
	item.ReviewCount++

	if item.ReviewCount >= e.MasteryThreshold {
		item.Status = models.StatusMastered
	} else {
		item.Status = models.StatusLearning
	}

	return item
}

// IsDue reports whether the item needs review at the given instant: not yet
// mastered and past its due time. A freshly created item is due immediately.
func IsDue(item models.ReviewItem, now time.Time) bool {
	return item.Status != models.StatusMastered && item.NextReviewAt <= now.UnixMilli()
}
