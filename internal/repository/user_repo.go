package repository

import (
	"context"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const userColumns = `
	id, name, email, password_hash, goal_type, target_pace, target_distance,
	target_weight, experience, strava_connected, strava_access_token,
	strava_refresh_token, strava_expires_at, created_at, updated_at
`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, goal_type, experience)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.GoalType, user.Experience).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

type UpdateProfileInput struct {
	Name           string
	TargetPace     *float64
	TargetDistance *float64
	TargetWeight   *float64
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $2, target_pace = $3, target_distance = $4, target_weight = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRow(
		ctx, query, userID, input.Name, input.TargetPace, input.TargetDistance, input.TargetWeight,
	))
}

type UpdateGoalInput struct {
	GoalType       string
	TargetPace     *float64
	TargetDistance *float64
	TargetWeight   *float64
	Experience     string
}

func (r *UserRepository) UpdateGoal(ctx context.Context, userID int64, input UpdateGoalInput) (*models.User, error) {
	query := `
		UPDATE users
		SET goal_type = $2, target_pace = $3, target_distance = $4,
		    target_weight = $5, experience = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRow(
		ctx, query, userID,
		input.GoalType, input.TargetPace, input.TargetDistance, input.TargetWeight, input.Experience,
	))
}

func (r *UserRepository) SaveStravaTokens(
	ctx context.Context,
	userID int64,
	accessToken, refreshToken string,
	expiresAt time.Time,
) error {
	query := `
		UPDATE users
		SET strava_connected = TRUE, strava_access_token = $2,
		    strava_refresh_token = $3, strava_expires_at = $4, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, accessToken, refreshToken, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) ClearStravaTokens(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET strava_connected = FALSE, strava_access_token = NULL,
		    strava_refresh_token = NULL, strava_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var accessToken, refreshToken *string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.GoalType,
		&user.TargetPace,
		&user.TargetDistance,
		&user.TargetWeight,
		&user.Experience,
		&user.Strava.Connected,
		&accessToken,
		&refreshToken,
		&user.Strava.ExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if accessToken != nil {
		user.Strava.AccessToken = *accessToken
	}
	if refreshToken != nil {
		user.Strava.RefreshToken = *refreshToken
	}
	return &user, nil
}
