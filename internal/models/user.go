package models

import "time"

const (
	GoalWeightLoss     = "weight_loss"
	GoalSpeed          = "speed"
	GoalEndurance      = "endurance"
	GoalGeneralFitness = "general_fitness"
)

const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

type User struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	GoalType       string     `json:"goal_type"`
	TargetPace     *float64   `json:"target_pace,omitempty"`
	TargetDistance *float64   `json:"target_distance,omitempty"`
	TargetWeight   *float64   `json:"target_weight,omitempty"`
	Experience     string     `json:"experience"`
	Strava         StravaLink `json:"strava"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// StravaLink holds the OAuth state for a user's linked Strava account.
// Token fields are empty while disconnected.
type StravaLink struct {
	Connected    bool       `json:"connected"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func IsValidGoalType(goal string) bool {
	switch goal {
	case GoalWeightLoss, GoalSpeed, GoalEndurance, GoalGeneralFitness:
		return true
	}
	return false
}

func IsValidExperience(level string) bool {
	switch level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}
