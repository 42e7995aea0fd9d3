package models

import "time"

const (
	MoodGreat    = "great"
	MoodGood     = "good"
	MoodOkay     = "okay"
	MoodTired    = "tired"
	MoodStressed = "stressed"
)

// DailyChecklist is the per-day record a user fills in: did they run, what
// they ate, how they felt. One row per (user, calendar date).
type DailyChecklist struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Date          time.Time `json:"date"`
	RunDone       bool      `json:"run_done"`
	CaloriesEaten *int      `json:"calories_eaten,omitempty"`
	Mood          string    `json:"mood"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func IsValidMood(mood string) bool {
	switch mood {
	case MoodGreat, MoodGood, MoodOkay, MoodTired, MoodStressed:
		return true
	}
	return false
}
