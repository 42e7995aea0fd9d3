package repository

import (
	"context"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
)

type CreateWorkoutEntryInput struct {
	UserID           int64
	Type             string
	DistanceKM       float64
	DurationMinutes  float64
	Date             time.Time
	Rating           int
	Notes            *string
	StravaActivityID *int64
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutEntryInput) (*models.WorkoutEntry, error) {
	query := `
		INSERT INTO workout_entries (user_id, type, distance_km, duration_minutes, entry_date, rating, notes, strava_activity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, type, distance_km, duration_minutes, entry_date, rating, notes, strava_activity_id, created_at
	`
	var entry models.WorkoutEntry
	err := r.db.QueryRow(
		ctx, query,
		input.UserID, input.Type, input.DistanceKM, input.DurationMinutes,
		input.Date, input.Rating, input.Notes, input.StravaActivityID,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Type,
		&entry.DistanceKM,
		&entry.DurationMinutes,
		&entry.Date,
		&entry.Rating,
		&entry.Notes,
		&entry.StravaActivityID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateIfNew inserts an imported entry unless one already exists for the
// (user, strava activity) pair. The partial unique index makes this safe under
// concurrent syncs; ON CONFLICT DO NOTHING reports zero rows instead of
// failing. Returns true when a row was inserted.
func (r *WorkoutRepository) CreateIfNew(ctx context.Context, input CreateWorkoutEntryInput) (bool, error) {
	query := `
		INSERT INTO workout_entries (user_id, type, distance_km, duration_minutes, entry_date, rating, notes, strava_activity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, strava_activity_id) WHERE strava_activity_id IS NOT NULL DO NOTHING
	`
	tag, err := r.db.Exec(
		ctx, query,
		input.UserID, input.Type, input.DistanceKM, input.DurationMinutes,
		input.Date, input.Rating, input.Notes, input.StravaActivityID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser returns entries newest-first, optionally bounded by an inclusive
// date range. Nil bounds are ignored.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]models.WorkoutEntry, error) {
	query := `
		SELECT id, user_id, type, distance_km, duration_minutes, entry_date, rating, notes, strava_activity_id, created_at
		FROM workout_entries
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR entry_date >= $2)
		  AND ($3::timestamptz IS NULL OR entry_date <= $3)
		ORDER BY entry_date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.WorkoutEntry, 0)
	for rows.Next() {
		var entry models.WorkoutEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.DistanceKM,
			&entry.DurationMinutes,
			&entry.Date,
			&entry.Rating,
			&entry.Notes,
			&entry.StravaActivityID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
