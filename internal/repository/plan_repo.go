package repository

import (
	"context"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

// CreatePlan inserts a plan and its workout rows. The caller decides whether
// db is a pool or a transaction; the atomic active-plan swap in the service
// layer runs this inside a transaction together with DeactivateActivePlan.
func (r *PlanRepository) CreatePlan(ctx context.Context, plan *models.TrainingPlan) error {
	query := `
		INSERT INTO plans (
			user_id, start_date, end_date, goal, calorie_target,
			protein_grams, carbs_grams, fats_grams, active, source, raw_content
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(
		ctx, query,
		plan.UserID, plan.StartDate, plan.EndDate, plan.Goal, plan.CalorieTarget,
		plan.Macros.ProteinGrams, plan.Macros.CarbsGrams, plan.Macros.FatsGrams,
		plan.Active, plan.Source, plan.RawContent,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range plan.Workouts {
		workout := &plan.Workouts[i]
		workout.PlanID = plan.ID
		err := r.db.QueryRow(
			ctx,
			`INSERT INTO plan_workouts (plan_id, week_number, day, type, distance_km, duration_minutes, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			plan.ID, workout.WeekNumber, workout.Day, workout.Type,
			workout.DistanceKM, workout.DurationMinutes, workout.Description,
		).Scan(&workout.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *PlanRepository) DeactivateActivePlan(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE plans SET active = FALSE, updated_at = now() WHERE user_id = $1 AND active`, userID)
	return err
}

func (r *PlanRepository) GetActivePlan(ctx context.Context, userID int64) (*models.TrainingPlan, error) {
	query := `
		SELECT id, user_id, start_date, end_date, goal, calorie_target,
		       protein_grams, carbs_grams, fats_grams, active, source, raw_content,
		       created_at, updated_at
		FROM plans
		WHERE user_id = $1 AND active
	`
	plan, err := r.scanPlan(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadWorkouts(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, planID int64) (*models.TrainingPlan, error) {
	query := `
		SELECT id, user_id, start_date, end_date, goal, calorie_target,
		       protein_grams, carbs_grams, fats_grams, active, source, raw_content,
		       created_at, updated_at
		FROM plans
		WHERE id = $1
	`
	plan, err := r.scanPlan(r.db.QueryRow(ctx, query, planID))
	if err != nil {
		return nil, err
	}
	if err := r.loadWorkouts(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlanIDForWorkout resolves which plan a workout row belongs to, used by
// the complete-workout endpoint which only receives a workout id.
func (r *PlanRepository) GetPlanIDForWorkout(ctx context.Context, workoutID int64) (int64, error) {
	var planID int64
	err := r.db.QueryRow(ctx, `SELECT plan_id FROM plan_workouts WHERE id = $1`, workoutID).Scan(&planID)
	if err != nil {
		return 0, err
	}
	return planID, nil
}

func (r *PlanRepository) MarkWorkoutCompleted(ctx context.Context, workoutID int64, stravaActivityID *int64) error {
	query := `
		UPDATE plan_workouts
		SET completed = TRUE,
		    strava_activity_id = COALESCE($2, strava_activity_id)
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, workoutID, stravaActivityID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PlanRepository) scanPlan(row pgx.Row) (*models.TrainingPlan, error) {
	var plan models.TrainingPlan
	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.StartDate,
		&plan.EndDate,
		&plan.Goal,
		&plan.CalorieTarget,
		&plan.Macros.ProteinGrams,
		&plan.Macros.CarbsGrams,
		&plan.Macros.FatsGrams,
		&plan.Active,
		&plan.Source,
		&plan.RawContent,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) loadWorkouts(ctx context.Context, plan *models.TrainingPlan) error {
	query := `
		SELECT id, plan_id, week_number, day, type, distance_km, duration_minutes,
		       description, completed, strava_activity_id
		FROM plan_workouts
		WHERE plan_id = $1
		ORDER BY week_number, id
	`
	rows, err := r.db.Query(ctx, query, plan.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	workouts := make([]models.PlanWorkout, 0)
	for rows.Next() {
		var workout models.PlanWorkout
		if err := rows.Scan(
			&workout.ID,
			&workout.PlanID,
			&workout.WeekNumber,
			&workout.Day,
			&workout.Type,
			&workout.DistanceKM,
			&workout.DurationMinutes,
			&workout.Description,
			&workout.Completed,
			&workout.StravaActivityID,
		); err != nil {
			return err
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	plan.Workouts = workouts
	return nil
}
