package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubPlanService struct {
	planText     string
	planTextErr  error
	lastInput    services.PromptInput
	overview     *models.TrainingPlan
	progress     *services.PlanProgress
	overviewErr  error
	lastUserID   int64
	completed    *models.TrainingPlan
	completeErr  error
	lastWorkout  int64
	lastActivity *int64
}

func (s *stubPlanService) GeneratePlanText(_ context.Context, input services.PromptInput) (string, error) {
	s.lastInput = input
	return s.planText, s.planTextErr
}

func (s *stubPlanService) GetPlanOverview(_ context.Context, userID int64, _ time.Time) (*models.TrainingPlan, *services.PlanProgress, error) {
	s.lastUserID = userID
	return s.overview, s.progress, s.overviewErr
}

func (s *stubPlanService) CompleteWorkout(_ context.Context, workoutID int64, stravaActivityID *int64) (*models.TrainingPlan, error) {
	s.lastWorkout = workoutID
	s.lastActivity = stravaActivityID
	return s.completed, s.completeErr
}

func newPlanApp(service *stubPlanService) *fiber.App {
	handler := NewPlanHandler(service)
	app := fiber.New()
	app.Post("/generate-plan", handler.GeneratePlan)
	app.Get("/plan/:userId", handler.GetPlan)
	app.Post("/plan/complete", handler.CompleteWorkout)
	return app
}

func TestGeneratePlanForwardsProfile(t *testing.T) {
	service := &stubPlanService{planText: "Run more."}
	app := newPlanApp(service)

	body := `{"age":31,"weight":172,"goal":"weight loss","experience":"beginner","daysPerWeek":4}`
	req := httptest.NewRequest(http.MethodPost, "/generate-plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastInput.Age != 31 || service.lastInput.DaysPerWeek != 4 {
		t.Fatalf("unexpected forwarded input: %+v", service.lastInput)
	}

	var payload struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Plan != "Run more." {
		t.Fatalf("unexpected plan text: %q", payload.Plan)
	}
}

func TestGeneratePlanValidatesInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero age", `{"age":0,"daysPerWeek":4}`},
		{"zero days", `{"age":30,"daysPerWeek":0}`},
		{"too many days", `{"age":30,"daysPerWeek":8}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newPlanApp(&stubPlanService{})

			req := httptest.NewRequest(http.MethodPost, "/generate-plan", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGeneratePlanWhenGeneratorDisabled(t *testing.T) {
	app := newPlanApp(&stubPlanService{planTextErr: services.ErrGeneratorDisabled})

	body := `{"age":30,"daysPerWeek":3}`
	req := httptest.NewRequest(http.MethodPost, "/generate-plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestGetPlanReturnsPlanWithProgress(t *testing.T) {
	service := &stubPlanService{
		overview: &models.TrainingPlan{ID: 7, UserID: 42},
		progress: &services.PlanProgress{CurrentWeek: 3, TotalWeeks: 12, PercentComplete: 25},
	}
	app := newPlanApp(service)

	req := httptest.NewRequest(http.MethodGet, "/plan/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 {
		t.Fatalf("expected user 42 forwarded, got %d", service.lastUserID)
	}

	var payload struct {
		Plan     map[string]any `json:"plan"`
		Progress struct {
			CurrentWeek int `json:"current_week"`
		} `json:"progress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Progress.CurrentWeek != 3 {
		t.Fatalf("expected current week 3, got %d", payload.Progress.CurrentWeek)
	}
}

func TestGetPlanWithoutActivePlan(t *testing.T) {
	app := newPlanApp(&stubPlanService{overviewErr: services.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/plan/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetPlanRejectsBadUserID(t *testing.T) {
	app := newPlanApp(&stubPlanService{})

	req := httptest.NewRequest(http.MethodGet, "/plan/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCompleteWorkoutParsesStringIDs(t *testing.T) {
	service := &stubPlanService{completed: &models.TrainingPlan{ID: 7}}
	app := newPlanApp(service)

	body := `{"workoutId":"15","stravaActivityId":"9001"}`
	req := httptest.NewRequest(http.MethodPost, "/plan/complete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastWorkout != 15 {
		t.Fatalf("expected workout 15, got %d", service.lastWorkout)
	}
	if service.lastActivity == nil || *service.lastActivity != 9001 {
		t.Fatalf("expected strava activity 9001, got %+v", service.lastActivity)
	}
}

func TestCompleteWorkoutWithoutActivityID(t *testing.T) {
	service := &stubPlanService{completed: &models.TrainingPlan{ID: 7}}
	app := newPlanApp(service)

	body := `{"workoutId":"15"}`
	req := httptest.NewRequest(http.MethodPost, "/plan/complete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActivity != nil {
		t.Fatalf("expected nil activity id, got %d", *service.lastActivity)
	}
}

func TestCompleteWorkoutRejectsBadWorkoutID(t *testing.T) {
	app := newPlanApp(&stubPlanService{})

	body := `{"workoutId":"not-a-number"}`
	req := httptest.NewRequest(http.MethodPost, "/plan/complete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
