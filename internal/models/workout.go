package models

import "time"

// WorkoutEntry is a logged run, either entered manually or imported from
// Strava. Imported entries carry the Strava activity id, which is unique per
// user and serves as the dedup key for sync.
type WorkoutEntry struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Type             string    `json:"type"`
	DistanceKM       float64   `json:"distance"`
	DurationMinutes  float64   `json:"duration"`
	Date             time.Time `json:"date"`
	Rating           int       `json:"rating"`
	Notes            *string   `json:"notes,omitempty"`
	StravaActivityID *int64    `json:"strava_activity_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
