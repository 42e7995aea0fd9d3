package repository

import (
	"context"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
)

type UpsertChecklistInput struct {
	UserID        int64
	Date          time.Time
	RunDone       bool
	CaloriesEaten *int
	Mood          string
	Notes         *string
}

type ChecklistRepository struct {
	db DBTX
}

func NewChecklistRepository(db DBTX) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

const checklistColumns = `
	id, user_id, checklist_date, run_done, calories_eaten, mood, notes, created_at, updated_at
`

// Upsert writes the checklist for a (user, date) pair, replacing the previous
// values for that day if any. The unique constraint on (user_id,
// checklist_date) backs the one-per-day rule.
func (r *ChecklistRepository) Upsert(ctx context.Context, input UpsertChecklistInput) (*models.DailyChecklist, error) {
	query := `
		INSERT INTO daily_checklists (user_id, checklist_date, run_done, calories_eaten, mood, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, checklist_date) DO UPDATE
		SET run_done = EXCLUDED.run_done,
		    calories_eaten = EXCLUDED.calories_eaten,
		    mood = EXCLUDED.mood,
		    notes = EXCLUDED.notes,
		    updated_at = now()
		RETURNING ` + checklistColumns
	var checklist models.DailyChecklist
	err := r.db.QueryRow(
		ctx, query,
		input.UserID, input.Date, input.RunDone, input.CaloriesEaten, input.Mood, input.Notes,
	).Scan(
		&checklist.ID,
		&checklist.UserID,
		&checklist.Date,
		&checklist.RunDone,
		&checklist.CaloriesEaten,
		&checklist.Mood,
		&checklist.Notes,
		&checklist.CreatedAt,
		&checklist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (r *ChecklistRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*models.DailyChecklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM daily_checklists WHERE user_id = $1 AND checklist_date = $2`
	var checklist models.DailyChecklist
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&checklist.ID,
		&checklist.UserID,
		&checklist.Date,
		&checklist.RunDone,
		&checklist.CaloriesEaten,
		&checklist.Mood,
		&checklist.Notes,
		&checklist.CreatedAt,
		&checklist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (r *ChecklistRepository) ListByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.DailyChecklist, error) {
	query := `
		SELECT ` + checklistColumns + `
		FROM daily_checklists
		WHERE user_id = $1 AND checklist_date BETWEEN $2 AND $3
		ORDER BY checklist_date
	`
	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checklists := make([]models.DailyChecklist, 0)
	for rows.Next() {
		var checklist models.DailyChecklist
		if err := rows.Scan(
			&checklist.ID,
			&checklist.UserID,
			&checklist.Date,
			&checklist.RunDone,
			&checklist.CaloriesEaten,
			&checklist.Mood,
			&checklist.Notes,
			&checklist.CreatedAt,
			&checklist.UpdatedAt,
		); err != nil {
			return nil, err
		}
		checklists = append(checklists, checklist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checklists, nil
}
