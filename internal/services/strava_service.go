package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

const (
	// Strava has no subjective effort rating, so imported runs get a neutral
	// default on the 1-10 scale.
	importedRunRating = 5
	syncPageSize      = 30
)

type stravaUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SaveStravaTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error
	ClearStravaTokens(ctx context.Context, userID int64) error
}

type workoutImporter interface {
	CreateIfNew(ctx context.Context, input repository.CreateWorkoutEntryInput) (bool, error)
}

type StravaService struct {
	userRepo    stravaUserStore
	workoutRepo workoutImporter
	client      StravaClient
	clientID    string
	redirectURI string
}

func NewStravaService(
	userRepo stravaUserStore,
	workoutRepo workoutImporter,
	client StravaClient,
	clientID string,
	redirectURI string,
) *StravaService {
	return &StravaService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		client:      client,
		clientID:    clientID,
		redirectURI: redirectURI,
	}
}

// InitiateLink builds the authorization redirect URL. Nothing is persisted
// until the callback completes the exchange.
func (s *StravaService) InitiateLink(userID int64) string {
	return AuthorizeURL(s.clientID, s.redirectURI, strconv.FormatInt(userID, 10))
}

// CompleteLink exchanges the authorization code and stores the resulting
// token set on the user in a single update. A failed exchange persists
// nothing.
func (s *StravaService) CompleteLink(ctx context.Context, userID int64, code string) error {
	if code == "" {
		return ErrInvalidInput
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	tokens, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	return s.userRepo.SaveStravaTokens(ctx, userID, tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt)
}

type StravaStatus struct {
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (s *StravaService) Status(ctx context.Context, userID int64) (*StravaStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &StravaStatus{Connected: user.Strava.Connected, ExpiresAt: user.Strava.ExpiresAt}, nil
}

// SyncActivities imports the user's recent Strava runs into the workout log.
// Dedup happens at the storage layer on (user, activity id), so running this
// twice, or concurrently, imports each activity exactly once. Returns the
// number of newly imported runs.
func (s *StravaService) SyncActivities(ctx context.Context, userID int64) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	accessToken, err := s.freshAccessToken(ctx, user)
	if err != nil {
		return 0, err
	}

	activities, err := s.client.ListActivities(ctx, accessToken, syncPageSize)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, activity := range activities {
		if activity.Type != "Run" {
			continue
		}

		activityID := activity.ID
		notes := activity.Name
		input := repository.CreateWorkoutEntryInput{
			UserID:           userID,
			Type:             models.WorkoutEasy,
			DistanceKM:       roundTo(activity.DistanceMeters/1000, 2),
			DurationMinutes:  roundTo(float64(activity.MovingTimeSeconds)/60, 1),
			Date:             activity.StartDate,
			Rating:           importedRunRating,
			Notes:            &notes,
			StravaActivityID: &activityID,
		}
		created, err := s.workoutRepo.CreateIfNew(ctx, input)
		if err != nil {
			return imported, err
		}
		if created {
			imported++
		}
	}

	return imported, nil
}

// Disconnect revokes access upstream on a best-effort basis and always clears
// the local token state.
func (s *StravaService) Disconnect(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if user.Strava.AccessToken != "" {
		if err := s.client.Deauthorize(ctx, user.Strava.AccessToken); err != nil {
			log.Printf("strava deauthorize failed for user %d: %v", userID, err)
		}
	}

	return s.userRepo.ClearStravaTokens(ctx, userID)
}

// FetchRuns proxies the raw activity list for a caller-supplied token,
// filtered to runs. Kept for the legacy /strava-runs endpoint.
func (s *StravaService) FetchRuns(ctx context.Context, accessToken string) ([]StravaActivity, error) {
	if accessToken == "" {
		return nil, ErrInvalidInput
	}
	activities, err := s.client.ListActivities(ctx, accessToken, syncPageSize)
	if err != nil {
		return nil, err
	}
	runs := make([]StravaActivity, 0, len(activities))
	for _, activity := range activities {
		if activity.Type == "Run" {
			runs = append(runs, activity)
		}
	}
	return runs, nil
}

// freshAccessToken returns a usable access token, refreshing and persisting a
// new pair first when the stored one has expired.
func (s *StravaService) freshAccessToken(ctx context.Context, user *models.User) (string, error) {
	if !user.Strava.Connected || user.Strava.AccessToken == "" {
		return "", ErrNotConnected
	}
	if user.Strava.ExpiresAt == nil || user.Strava.ExpiresAt.After(time.Now()) {
		return user.Strava.AccessToken, nil
	}

	if user.Strava.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}
	tokens, err := s.client.RefreshToken(ctx, user.Strava.RefreshToken)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.SaveStravaTokens(ctx, user.ID, tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt); err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
