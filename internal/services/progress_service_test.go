package services

import (
	"context"
	"testing"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
)

// Monday, so week offsets line up with the weekday names directly.
var planStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func buildTwoWeekPlan() *models.TrainingPlan {
	return &models.TrainingPlan{
		ID:        1,
		UserID:    42,
		StartDate: planStart,
		EndDate:   planStart.AddDate(0, 0, 13),
		Workouts: []models.PlanWorkout{
			{ID: 1, WeekNumber: 1, Day: "monday", Type: models.WorkoutEasy},
			{ID: 2, WeekNumber: 1, Day: "tuesday", Type: models.WorkoutRest},
			{ID: 3, WeekNumber: 1, Day: "wednesday", Type: models.WorkoutTempo},
			{ID: 4, WeekNumber: 1, Day: "friday", Type: models.WorkoutLong},
			{ID: 5, WeekNumber: 2, Day: "monday", Type: models.WorkoutEasy},
		},
	}
}

func TestBuildPlanProgressStatuses(t *testing.T) {
	plan := buildTwoWeekPlan()
	// Wednesday of week 1; Monday's run was logged, Tuesday was rest.
	now := planStart.AddDate(0, 0, 2).Add(9 * time.Hour)
	entries := []models.WorkoutEntry{
		{UserID: 42, Date: planStart.Add(18 * time.Hour)},
	}

	progress := BuildPlanProgress(plan, entries, now)

	if progress.CurrentWeek != 1 || progress.TotalWeeks != 2 {
		t.Fatalf("expected week 1 of 2, got %d of %d", progress.CurrentWeek, progress.TotalWeeks)
	}
	if progress.PercentComplete != 50 {
		t.Fatalf("expected 50%% complete, got %.1f", progress.PercentComplete)
	}
	if got := len(progress.Weeks); got != 2 {
		t.Fatalf("expected 2 weeks, got %d", got)
	}

	week1 := progress.Weeks[0].Workouts
	if got := len(week1); got != 4 {
		t.Fatalf("expected 4 workouts in week 1, got %d", got)
	}
	assertStatus(t, week1[0], StatusCompleted) // logged run
	assertStatus(t, week1[1], StatusCompleted) // rest day in the past
	assertStatus(t, week1[2], StatusToday)
	assertStatus(t, week1[3], StatusUpcoming)
	assertStatus(t, progress.Weeks[1].Workouts[0], StatusUpcoming)
}

func TestBuildPlanProgressMarksUnloggedPastRunsSkipped(t *testing.T) {
	plan := buildTwoWeekPlan()
	now := planStart.AddDate(0, 0, 2)

	progress := BuildPlanProgress(plan, nil, now)

	monday := progress.Weeks[0].Workouts[0]
	if monday.Status != StatusSkipped {
		t.Fatalf("expected unlogged past run to be skipped, got %q", monday.Status)
	}
}

func TestBuildPlanProgressCompletedFlagWins(t *testing.T) {
	plan := buildTwoWeekPlan()
	plan.Workouts[0].Completed = true
	now := planStart.AddDate(0, 0, 2)

	progress := BuildPlanProgress(plan, nil, now)

	if got := progress.Weeks[0].Workouts[0].Status; got != StatusCompleted {
		t.Fatalf("expected completed workout to stay completed, got %q", got)
	}
}

func TestBuildPlanProgressClampsCurrentWeek(t *testing.T) {
	plan := buildTwoWeekPlan()

	before := BuildPlanProgress(plan, nil, planStart.AddDate(0, 0, -10))
	if before.CurrentWeek != 1 {
		t.Fatalf("expected current week clamped to 1 before start, got %d", before.CurrentWeek)
	}

	after := BuildPlanProgress(plan, nil, planStart.AddDate(0, 0, 60))
	if after.CurrentWeek != 2 {
		t.Fatalf("expected current week clamped to 2 after end, got %d", after.CurrentWeek)
	}
	if after.PercentComplete != 100 {
		t.Fatalf("expected 100%% complete after end, got %.1f", after.PercentComplete)
	}
}

func TestBuildPlanProgressEmptyPlan(t *testing.T) {
	plan := &models.TrainingPlan{ID: 1, UserID: 42, StartDate: planStart}

	progress := BuildPlanProgress(plan, nil, planStart)

	if progress.TotalWeeks != 0 || progress.CurrentWeek != 0 {
		t.Fatalf("expected 0 of 0 weeks, got %d of %d", progress.CurrentWeek, progress.TotalWeeks)
	}
	if progress.PercentComplete != 0 {
		t.Fatalf("expected 0%% complete, got %.1f", progress.PercentComplete)
	}
	if len(progress.Weeks) != 0 {
		t.Fatalf("expected no weeks, got %d", len(progress.Weeks))
	}
}

func TestWeekWindowIsSundayBased(t *testing.T) {
	// Wednesday, March 4th 2026.
	start, end := WeekWindow(time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC))

	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected week start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("expected week end %v, got %v", wantEnd, end)
	}

	// A Sunday is the start of its own window.
	start, _ = WeekWindow(wantStart)
	if !start.Equal(wantStart) {
		t.Fatalf("expected Sunday to start its own window, got %v", start)
	}
}

func TestAverageMood(t *testing.T) {
	cases := []struct {
		name  string
		moods []string
		want  string
	}{
		{"empty", nil, "N/A"},
		{"single great", []string{models.MoodGreat}, models.MoodGreat},
		{"rounds to good", []string{models.MoodGreat, models.MoodGreat, models.MoodOkay}, models.MoodGood},
		{"all stressed", []string{models.MoodStressed, models.MoodStressed}, models.MoodStressed},
		{"middle", []string{models.MoodGood, models.MoodTired}, models.MoodOkay},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checklists := make([]models.DailyChecklist, 0, len(tc.moods))
			for _, mood := range tc.moods {
				checklists = append(checklists, models.DailyChecklist{Mood: mood})
			}
			if got := AverageMood(checklists); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

type stubChecklistReader struct {
	checklists []models.DailyChecklist
	lastStart  time.Time
	lastEnd    time.Time
}

func (s *stubChecklistReader) ListByUserInRange(_ context.Context, _ int64, start, end time.Time) ([]models.DailyChecklist, error) {
	s.lastStart = start
	s.lastEnd = end
	return s.checklists, nil
}

type stubWorkoutReader struct {
	entries []models.WorkoutEntry
}

func (s *stubWorkoutReader) ListByUser(_ context.Context, _ int64, _, _ *time.Time) ([]models.WorkoutEntry, error) {
	return s.entries, nil
}

func TestGetWeeklyStatsAggregatesCurrentWeek(t *testing.T) {
	calories1, calories2 := 1800, 2100
	checklists := &stubChecklistReader{
		checklists: []models.DailyChecklist{
			{RunDone: true, CaloriesEaten: &calories1, Mood: models.MoodGreat},
			{RunDone: false, CaloriesEaten: &calories2, Mood: models.MoodOkay},
			{RunDone: true, Mood: models.MoodGreat},
		},
	}
	workouts := &stubWorkoutReader{
		entries: []models.WorkoutEntry{
			{DistanceKM: 5.5},
			{DistanceKM: 8.25},
		},
	}
	service := NewStatsService(checklists, workouts)

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	stats, err := service.GetWeeklyStats(context.Background(), 42, now)
	if err != nil {
		t.Fatalf("GetWeeklyStats: %v", err)
	}

	if stats.TotalDistance != 13.75 {
		t.Fatalf("expected 13.75 km, got %.2f", stats.TotalDistance)
	}
	if stats.TotalCalories != 3900 {
		t.Fatalf("expected 3900 calories, got %d", stats.TotalCalories)
	}
	if stats.CompletedWorkouts != 2 {
		t.Fatalf("expected 2 completed runs, got %d", stats.CompletedWorkouts)
	}
	if stats.AverageMood != models.MoodGood {
		t.Fatalf("expected average mood %q, got %q", models.MoodGood, stats.AverageMood)
	}

	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !checklists.lastStart.Equal(wantStart) {
		t.Fatalf("expected checklist range to start %v, got %v", wantStart, checklists.lastStart)
	}
}

func TestGetWeeklyStatsEmptyWeek(t *testing.T) {
	service := NewStatsService(&stubChecklistReader{}, &stubWorkoutReader{})

	stats, err := service.GetWeeklyStats(context.Background(), 42, time.Now())
	if err != nil {
		t.Fatalf("GetWeeklyStats: %v", err)
	}

	if stats.TotalDistance != 0 || stats.TotalCalories != 0 || stats.CompletedWorkouts != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.AverageMood != "N/A" {
		t.Fatalf("expected mood N/A, got %q", stats.AverageMood)
	}
}

func assertStatus(t *testing.T, workout WorkoutProgress, want string) {
	t.Helper()
	if workout.Status != want {
		t.Fatalf("expected %s %s to be %q, got %q", workout.Day, workout.Type, want, workout.Status)
	}
}
