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
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type stubChecklistStore struct {
	checklist *models.DailyChecklist
	getErr    error
	upsertErr error
	lastInput repository.UpsertChecklistInput
	lastDate  time.Time
}

func (s *stubChecklistStore) Upsert(_ context.Context, input repository.UpsertChecklistInput) (*models.DailyChecklist, error) {
	s.lastInput = input
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	return s.checklist, nil
}

func (s *stubChecklistStore) GetByUserAndDate(_ context.Context, _ int64, date time.Time) (*models.DailyChecklist, error) {
	s.lastDate = date
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.checklist, nil
}

func newChecklistApp(store *stubChecklistStore) *fiber.App {
	handler := NewChecklistHandler(store)
	app := fiber.New()
	app.Get("/checklist/:userId/:date", handler.GetChecklist)
	app.Post("/checklist/:userId/:date", handler.UpsertChecklist)
	return app
}

func TestGetChecklistParsesDate(t *testing.T) {
	store := &stubChecklistStore{
		checklist: &models.DailyChecklist{ID: 3, UserID: 42, Mood: models.MoodGood},
	}
	app := newChecklistApp(store)

	req := httptest.NewRequest(http.MethodGet, "/checklist/42/2026-03-04", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if !store.lastDate.Equal(want) {
		t.Fatalf("expected date %v forwarded, got %v", want, store.lastDate)
	}
}

func TestGetChecklistNotFound(t *testing.T) {
	app := newChecklistApp(&stubChecklistStore{getErr: pgx.ErrNoRows})

	req := httptest.NewRequest(http.MethodGet, "/checklist/42/2026-03-04", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetChecklistRejectsBadDate(t *testing.T) {
	app := newChecklistApp(&stubChecklistStore{})

	req := httptest.NewRequest(http.MethodGet, "/checklist/42/tomorrow", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpsertChecklistForwardsFields(t *testing.T) {
	store := &stubChecklistStore{
		checklist: &models.DailyChecklist{ID: 3, UserID: 42, RunDone: true, Mood: models.MoodGreat},
	}
	app := newChecklistApp(store)

	body := `{"runDone":true,"caloriesEaten":2100,"mood":"great","notes":"felt strong"}`
	req := httptest.NewRequest(http.MethodPost, "/checklist/42/2026-03-04", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastInput.UserID != 42 || !store.lastInput.RunDone {
		t.Fatalf("unexpected upsert input: %+v", store.lastInput)
	}
	if store.lastInput.CaloriesEaten == nil || *store.lastInput.CaloriesEaten != 2100 {
		t.Fatalf("expected calories 2100, got %+v", store.lastInput.CaloriesEaten)
	}
	if store.lastInput.Notes == nil || *store.lastInput.Notes != "felt strong" {
		t.Fatalf("expected notes forwarded, got %+v", store.lastInput.Notes)
	}

	var payload models.DailyChecklist
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Mood != models.MoodGreat {
		t.Fatalf("expected saved checklist returned, got %+v", payload)
	}
}

func TestUpsertChecklistValidates(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown mood", `{"runDone":true,"mood":"ecstatic"}`},
		{"missing mood", `{"runDone":true}`},
		{"negative calories", `{"runDone":true,"mood":"good","caloriesEaten":-100}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newChecklistApp(&stubChecklistStore{})

			req := httptest.NewRequest(http.MethodPost, "/checklist/42/2026-03-04", strings.NewReader(tc.body))
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
