package models

import "time"

const (
	WorkoutEasy      = "easy"
	WorkoutTempo     = "tempo"
	WorkoutIntervals = "intervals"
	WorkoutLong      = "long"
	WorkoutRest      = "rest"
)

const (
	PlanSourceGenerated = "generated"
	PlanSourceFallback  = "fallback"
)

// Weekdays ordered as they appear in a training week. Offsets within a week
// block are computed relative to the weekday the plan starts on.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

type TrainingPlan struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	Goal          string        `json:"goal"`
	CalorieTarget int           `json:"calorie_target"`
	Macros        MacroSplit    `json:"macros"`
	Active        bool          `json:"active"`
	Source        string        `json:"source"`
	RawContent    string        `json:"raw_content,omitempty"`
	Workouts      []PlanWorkout `json:"workouts"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type MacroSplit struct {
	ProteinGrams int `json:"protein"`
	CarbsGrams   int `json:"carbs"`
	FatsGrams    int `json:"fats"`
}

type PlanWorkout struct {
	ID               int64    `json:"id"`
	PlanID           int64    `json:"plan_id"`
	WeekNumber       int      `json:"week_number"`
	Day              string   `json:"day"`
	Type             string   `json:"type"`
	DistanceKM       *float64 `json:"distance,omitempty"`
	DurationMinutes  *int     `json:"duration,omitempty"`
	Description      string   `json:"description"`
	Completed        bool     `json:"completed"`
	StravaActivityID *int64   `json:"strava_activity_id,omitempty"`
}

// TotalWeeks derives the plan length from the workout rows. The plan has no
// independent week count, so an empty plan reports zero weeks.
func (p *TrainingPlan) TotalWeeks() int {
	max := 0
	for _, w := range p.Workouts {
		if w.WeekNumber > max {
			max = w.WeekNumber
		}
	}
	return max
}

func IsValidWorkoutType(t string) bool {
	switch t {
	case WorkoutEasy, WorkoutTempo, WorkoutIntervals, WorkoutLong, WorkoutRest:
		return true
	}
	return false
}

func IsValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
