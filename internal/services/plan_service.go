package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// fallbackPlanWeeks is the single authoritative length used when the
// generator cannot produce a structured plan. The plan's real length is
// always derived from its stored week blocks afterwards.
const fallbackPlanWeeks = 12

type PlanService struct {
	db          *pgxpool.Pool
	planRepo    *repository.PlanRepository
	workoutRepo workoutRangeReader
	generator   ContentGenerator
}

func NewPlanService(
	db *pgxpool.Pool,
	planRepo *repository.PlanRepository,
	workoutRepo workoutRangeReader,
	generator ContentGenerator,
) *PlanService {
	return &PlanService{
		db:          db,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		generator:   generator,
	}
}

// planContent is the strict JSON shape the generator is asked for. Anything
// that does not parse into it falls back to the default plan.
type planContent struct {
	Weeks []struct {
		Workouts []struct {
			Day         string   `json:"day"`
			Type        string   `json:"type"`
			Distance    *float64 `json:"distance"`
			Duration    *int     `json:"duration"`
			Description string   `json:"description"`
		} `json:"workouts"`
	} `json:"weeks"`
	CalorieTarget int `json:"calorieTarget"`
	Macros        struct {
		Protein int `json:"protein"`
		Carbs   int `json:"carbs"`
		Fats    int `json:"fats"`
	} `json:"macros"`
}

type PromptInput struct {
	Age         int
	WeightLbs   float64
	Goal        string
	Experience  string
	DaysPerWeek int
}

// BuildCoachPrompt produces the coach-and-nutritionist prompt for the
// stateless plan-text endpoint.
func BuildCoachPrompt(input PromptInput) string {
	return fmt.Sprintf(`You are a running coach and nutritionist. Create a weekly running plan for someone who is:
- Age: %d
- Weight: %.0f lbs
- Goal: %s
- Experience level: %s
- Wants to train %d days per week

Also provide:
- A daily calorie target to optimize fat loss + performance
- Macronutrient breakdown (protein, carbs, fats)
- Motivational message.`,
		input.Age, input.WeightLbs, input.Goal, input.Experience, input.DaysPerWeek)
}

func buildGoalPrompt(user *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a running plan for a %s runner with the goal of %s.\n", user.Experience, user.GoalType)
	if user.TargetPace != nil {
		fmt.Fprintf(&b, "Target pace: %.1f min/km\n", *user.TargetPace)
	}
	if user.TargetDistance != nil {
		fmt.Fprintf(&b, "Target distance: %.1f km\n", *user.TargetDistance)
	}
	if user.TargetWeight != nil {
		fmt.Fprintf(&b, "Target weight: %.1f kg\n", *user.TargetWeight)
	}
	fmt.Fprintf(&b, `Respond with a JSON object of the shape:
{"weeks":[{"workouts":[{"day":"monday","type":"easy","distance":5,"duration":30,"description":"..."}]}],"calorieTarget":2200,"macros":{"protein":150,"carbs":250,"fats":70}}
Days are monday..sunday, types are easy, tempo, intervals, long or rest, distance is in km and duration in minutes.`)
	return b.String()
}

// GeneratePlanText returns the raw coaching text for the stateless
// /generate-plan endpoint. Upstream failures surface to the caller here;
// only the persisted per-user plan has fallback semantics.
func (s *PlanService) GeneratePlanText(ctx context.Context, input PromptInput) (string, error) {
	if s.generator == nil {
		return "", ErrGeneratorDisabled
	}
	if input.Age <= 0 || input.DaysPerWeek <= 0 || input.DaysPerWeek > 7 {
		return "", ErrInvalidInput
	}
	return s.generator.Complete(ctx, BuildCoachPrompt(input), false)
}

// RegenerateForUser builds a fresh plan for the user's current goal and makes
// it the single active plan. Generation is a tagged outcome: a structured
// plan parsed from the LLM, or the fixed fallback plan when the API or the
// parse fails. Only infrastructure errors propagate.
func (s *PlanService) RegenerateForUser(ctx context.Context, user *models.User) (*models.TrainingPlan, error) {
	if user == nil {
		return nil, ErrInvalidInput
	}

	plan := s.buildPlanForUser(ctx, user)
	if err := s.swapActivePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) buildPlanForUser(ctx context.Context, user *models.User) *models.TrainingPlan {
	if s.generator == nil {
		return FallbackPlan(user, time.Now())
	}

	raw, err := s.generator.Complete(ctx, buildGoalPrompt(user), true)
	if err != nil {
		log.Printf("plan generation failed for user %d, using fallback: %v", user.ID, err)
		return FallbackPlan(user, time.Now())
	}

	plan, err := ParsePlanContent(user, raw, time.Now())
	if err != nil {
		log.Printf("plan content did not parse for user %d, using fallback: %v", user.ID, err)
		return FallbackPlan(user, time.Now())
	}
	return plan
}

// ParsePlanContent turns the generator's JSON into a plan. Errors here mean
// "fall back", never "fail the request".
func ParsePlanContent(user *models.User, raw string, now time.Time) (*models.TrainingPlan, error) {
	var content planContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("unmarshal plan content: %w", err)
	}
	if len(content.Weeks) == 0 {
		return nil, errors.New("plan content has no weeks")
	}

	start := dateOnly(now)
	plan := &models.TrainingPlan{
		UserID:        user.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, len(content.Weeks)*7-1),
		Goal:          user.GoalType,
		CalorieTarget: content.CalorieTarget,
		Macros: models.MacroSplit{
			ProteinGrams: content.Macros.Protein,
			CarbsGrams:   content.Macros.Carbs,
			FatsGrams:    content.Macros.Fats,
		},
		Active:     true,
		Source:     models.PlanSourceGenerated,
		RawContent: raw,
	}

	for i, week := range content.Weeks {
		if len(week.Workouts) == 0 {
			return nil, fmt.Errorf("week %d has no workouts", i+1)
		}
		for _, workout := range week.Workouts {
			if !models.IsValidWeekday(workout.Day) {
				return nil, fmt.Errorf("week %d has invalid day %q", i+1, workout.Day)
			}
			if !models.IsValidWorkoutType(workout.Type) {
				return nil, fmt.Errorf("week %d has invalid workout type %q", i+1, workout.Type)
			}
			plan.Workouts = append(plan.Workouts, models.PlanWorkout{
				WeekNumber:      i + 1,
				Day:             workout.Day,
				Type:            workout.Type,
				DistanceKM:      workout.Distance,
				DurationMinutes: workout.Duration,
				Description:     workout.Description,
			})
		}
	}

	return plan, nil
}

// FallbackPlan is the fixed default plan used whenever generation fails, so
// the UI always has renderable content. Run volume scales with experience;
// every week follows the same pattern.
func FallbackPlan(user *models.User, now time.Time) *models.TrainingPlan {
	runDays := map[string]string{
		"tuesday":  models.WorkoutEasy,
		"thursday": models.WorkoutTempo,
		"saturday": models.WorkoutLong,
	}
	if user.Experience == models.ExperienceIntermediate || user.Experience == models.ExperienceAdvanced {
		runDays["monday"] = models.WorkoutEasy
	}
	if user.Experience == models.ExperienceAdvanced {
		runDays["friday"] = models.WorkoutIntervals
	}

	baseDistance := map[string]float64{
		models.ExperienceBeginner:     4,
		models.ExperienceIntermediate: 6,
		models.ExperienceAdvanced:     8,
	}[user.Experience]
	if baseDistance == 0 {
		baseDistance = 4
	}

	start := dateOnly(now)
	plan := &models.TrainingPlan{
		UserID:        user.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, fallbackPlanWeeks*7-1),
		Goal:          user.GoalType,
		CalorieTarget: 2200,
		Macros:        models.MacroSplit{ProteinGrams: 140, CarbsGrams: 260, FatsGrams: 70},
		Active:        true,
		Source:        models.PlanSourceFallback,
	}

	for week := 1; week <= fallbackPlanWeeks; week++ {
		for _, day := range models.Weekdays {
			workoutType, isRun := runDays[day]
			if !isRun {
				plan.Workouts = append(plan.Workouts, models.PlanWorkout{
					WeekNumber:  week,
					Day:         day,
					Type:        models.WorkoutRest,
					Description: "Rest or light stretching",
				})
				continue
			}

			distance := baseDistance
			if workoutType == models.WorkoutLong {
				distance = baseDistance * 2
			}
			duration := int(distance * 7)
			plan.Workouts = append(plan.Workouts, models.PlanWorkout{
				WeekNumber:      week,
				Day:             day,
				Type:            workoutType,
				DistanceKM:      &distance,
				DurationMinutes: &duration,
				Description:     fmt.Sprintf("%s run, %.0f km at a comfortable effort", workoutType, distance),
			})
		}
	}

	return plan
}

// swapActivePlan deactivates the previous active plan and inserts the new
// one in one transaction, so there is never a window with zero or two active
// plans. The partial unique index on (user_id) WHERE active backstops this.
func (s *PlanService) swapActivePlan(ctx context.Context, plan *models.TrainingPlan) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPlanRepo := repository.NewPlanRepository(tx)
	if err := txPlanRepo.DeactivateActivePlan(ctx, plan.UserID); err != nil {
		return err
	}
	if err := txPlanRepo.CreatePlan(ctx, plan); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetPlanOverview returns the user's active plan together with computed
// progress. A user without an active plan gets ErrNotFound.
func (s *PlanService) GetPlanOverview(ctx context.Context, userID int64, now time.Time) (*models.TrainingPlan, *PlanProgress, error) {
	plan, err := s.planRepo.GetActivePlan(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	entries, err := s.workoutRepo.ListByUser(ctx, userID, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	progress := BuildPlanProgress(plan, entries, now)
	return plan, &progress, nil
}

// CompleteWorkout marks a plan workout done, optionally attaching the Strava
// activity that fulfilled it, and returns the updated plan.
func (s *PlanService) CompleteWorkout(ctx context.Context, workoutID int64, stravaActivityID *int64) (*models.TrainingPlan, error) {
	planID, err := s.planRepo.GetPlanIDForWorkout(ctx, workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.planRepo.MarkWorkoutCompleted(ctx, workoutID, stravaActivityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.planRepo.GetByID(ctx, planID)
}
