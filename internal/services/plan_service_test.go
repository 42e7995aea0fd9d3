package services

import (
	"strings"
	"testing"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
)

func planUser() *models.User {
	return &models.User{
		ID:         42,
		GoalType:   models.GoalEndurance,
		Experience: models.ExperienceBeginner,
	}
}

func TestParsePlanContent(t *testing.T) {
	raw := `{
		"weeks": [
			{"workouts": [
				{"day": "monday", "type": "easy", "distance": 5, "duration": 30, "description": "Easy shakeout"},
				{"day": "wednesday", "type": "rest", "description": "Rest"}
			]},
			{"workouts": [
				{"day": "saturday", "type": "long", "distance": 12, "duration": 75, "description": "Long run"}
			]}
		],
		"calorieTarget": 2300,
		"macros": {"protein": 150, "carbs": 260, "fats": 70}
	}`

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	plan, err := ParsePlanContent(planUser(), raw, now)
	if err != nil {
		t.Fatalf("ParsePlanContent: %v", err)
	}

	if plan.TotalWeeks() != 2 {
		t.Fatalf("expected 2 weeks, got %d", plan.TotalWeeks())
	}
	if got := len(plan.Workouts); got != 3 {
		t.Fatalf("expected 3 workouts, got %d", got)
	}
	if plan.CalorieTarget != 2300 {
		t.Fatalf("expected calorie target 2300, got %d", plan.CalorieTarget)
	}
	if plan.Macros.ProteinGrams != 150 || plan.Macros.CarbsGrams != 260 || plan.Macros.FatsGrams != 70 {
		t.Fatalf("unexpected macros: %+v", plan.Macros)
	}
	if !plan.Active || plan.Source != models.PlanSourceGenerated {
		t.Fatalf("expected active generated plan, got active=%v source=%q", plan.Active, plan.Source)
	}
	if plan.Goal != models.GoalEndurance {
		t.Fatalf("expected goal carried from user, got %q", plan.Goal)
	}

	wantStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !plan.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, plan.StartDate)
	}
	if !plan.EndDate.Equal(wantStart.AddDate(0, 0, 13)) {
		t.Fatalf("expected end 13 days after start, got %v", plan.EndDate)
	}

	long := plan.Workouts[2]
	if long.WeekNumber != 2 || long.Day != "saturday" || long.Type != models.WorkoutLong {
		t.Fatalf("unexpected week 2 workout: %+v", long)
	}
	if long.DistanceKM == nil || *long.DistanceKM != 12 {
		t.Fatalf("expected 12 km long run, got %+v", long.DistanceKM)
	}
}

func TestParsePlanContentRejectsBadContent(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "Sure! Here is your plan: run a lot."},
		{"no weeks", `{"weeks": [], "calorieTarget": 2000}`},
		{"empty week", `{"weeks": [{"workouts": []}]}`},
		{"bad day", `{"weeks": [{"workouts": [{"day": "someday", "type": "easy"}]}]}`},
		{"bad type", `{"weeks": [{"workouts": [{"day": "monday", "type": "sprint"}]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePlanContent(planUser(), tc.raw, time.Now()); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestFallbackPlanBeginner(t *testing.T) {
	plan := FallbackPlan(planUser(), time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	if plan.TotalWeeks() != fallbackPlanWeeks {
		t.Fatalf("expected %d weeks, got %d", fallbackPlanWeeks, plan.TotalWeeks())
	}
	if got := len(plan.Workouts); got != fallbackPlanWeeks*7 {
		t.Fatalf("expected a workout per day, got %d", got)
	}
	if plan.Source != models.PlanSourceFallback || !plan.Active {
		t.Fatalf("expected active fallback plan, got active=%v source=%q", plan.Active, plan.Source)
	}

	week1 := workoutsByDay(plan, 1)
	if week1["tuesday"].Type != models.WorkoutEasy {
		t.Fatalf("expected tuesday easy, got %q", week1["tuesday"].Type)
	}
	if week1["thursday"].Type != models.WorkoutTempo {
		t.Fatalf("expected thursday tempo, got %q", week1["thursday"].Type)
	}
	if week1["saturday"].Type != models.WorkoutLong {
		t.Fatalf("expected saturday long, got %q", week1["saturday"].Type)
	}
	if week1["monday"].Type != models.WorkoutRest {
		t.Fatalf("expected beginner monday rest, got %q", week1["monday"].Type)
	}

	if d := week1["tuesday"].DistanceKM; d == nil || *d != 4 {
		t.Fatalf("expected 4 km beginner easy run, got %+v", d)
	}
	if d := week1["saturday"].DistanceKM; d == nil || *d != 8 {
		t.Fatalf("expected long run at double base distance, got %+v", d)
	}
}

func TestFallbackPlanScalesWithExperience(t *testing.T) {
	user := planUser()
	user.Experience = models.ExperienceAdvanced

	plan := FallbackPlan(user, time.Now())

	week1 := workoutsByDay(plan, 1)
	if week1["monday"].Type != models.WorkoutEasy {
		t.Fatalf("expected advanced monday easy, got %q", week1["monday"].Type)
	}
	if week1["friday"].Type != models.WorkoutIntervals {
		t.Fatalf("expected advanced friday intervals, got %q", week1["friday"].Type)
	}
	if d := week1["tuesday"].DistanceKM; d == nil || *d != 8 {
		t.Fatalf("expected 8 km advanced easy run, got %+v", d)
	}
}

func TestBuildCoachPromptIncludesProfile(t *testing.T) {
	prompt := BuildCoachPrompt(PromptInput{
		Age:         31,
		WeightLbs:   172,
		Goal:        "weight loss",
		Experience:  "beginner",
		DaysPerWeek: 4,
	})

	for _, want := range []string{"Age: 31", "172 lbs", "weight loss", "beginner", "4 days per week"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q:\n%s", want, prompt)
		}
	}
}

func workoutsByDay(plan *models.TrainingPlan, week int) map[string]models.PlanWorkout {
	byDay := make(map[string]models.PlanWorkout)
	for _, workout := range plan.Workouts {
		if workout.WeekNumber == week {
			byDay[workout.Day] = workout
		}
	}
	return byDay
}
