package models

import "net/http"

// AuthPayload is the identity part of the auth envelope: the minimal
// identity the remote service vouches for.
type AuthPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is the wire envelope of the auth endpoints
// (POST /auth/register, POST /auth/login).
//
// Code 200 signals success; any other value is an application-level failure
// carrying Message. The HTTP status of the response mirrors Code where it is
// a valid status.
type AuthResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    *AuthPayload `json:"data,omitempty"`
}

// OK reports whether the envelope signals success.
func (r AuthResponse) OK() bool {
	return r.Code == http.StatusOK
}

// DashboardStats are the aggregate counters shown on the dashboard,
// computed over a user's full item set.
type DashboardStats struct {
	// Due is the number of not-yet-mastered items whose due time has passed.
	Due int `json:"due"`

	// Mastered is the number of items with status "mastered".
	Mastered int `json:"mastered"`

	// TotalReviews is the sum of all review streak counters.
	TotalReviews int `json:"totalReviews"`

	// ActiveDays is the number of distinct calendar dates on which at least
	// one item was last reviewed.
	ActiveDays int `json:"activeDays"`
}

// ActivityBucket is one day of the activity heatmap.
type ActivityBucket struct {
	// Date is the calendar date in "YYYY-MM-DD" form.
	Date string `json:"date"`

	// Count is the number of items whose most recent review fell on Date.
	// Only the latest review per item is retained, so repeated reviews of
	// the same item contribute to a single bucket.
	Count int `json:"count"`
}
