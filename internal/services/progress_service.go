package services

import (
	"context"
	"errors"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	StatusCompleted = "completed"
	StatusToday     = "today"
	StatusUpcoming  = "upcoming"
	StatusSkipped   = "skipped"
)

var moodScores = map[string]float64{
	models.MoodGreat:    5,
	models.MoodGood:     4,
	models.MoodOkay:     3,
	models.MoodTired:    2,
	models.MoodStressed: 1,
}

// moodTiers maps an average score back to a mood label, highest threshold
// first.
var moodTiers = []struct {
	threshold float64
	mood      string
}{
	{4.5, models.MoodGreat},
	{3.5, models.MoodGood},
	{2.5, models.MoodOkay},
	{1.5, models.MoodTired},
	{0, models.MoodStressed},
}

type PlanProgress struct {
	CurrentWeek     int            `json:"current_week"`
	TotalWeeks      int            `json:"total_weeks"`
	PercentComplete float64        `json:"percent_complete"`
	Weeks           []WeekProgress `json:"weeks"`
}

type WeekProgress struct {
	WeekNumber int               `json:"week_number"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Workouts   []WorkoutProgress `json:"workouts"`
}

type WorkoutProgress struct {
	models.PlanWorkout
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

type WeeklyStats struct {
	TotalDistance     float64 `json:"totalDistance"`
	TotalCalories     int     `json:"totalCalories"`
	CompletedWorkouts int     `json:"completedWorkouts"`
	AverageMood       string  `json:"averageMood"`
}

// BuildPlanProgress derives the progress view of a plan: current week index,
// percent complete, and a dated status for every scheduled workout. It is a
// pure computation over the plan and the user's logged runs; a plan with no
// workout rows reports week 0 and 0% instead of dividing by zero.
func BuildPlanProgress(plan *models.TrainingPlan, entries []models.WorkoutEntry, now time.Time) PlanProgress {
	progress := PlanProgress{Weeks: []WeekProgress{}}
	if plan == nil {
		return progress
	}

	totalWeeks := plan.TotalWeeks()
	progress.TotalWeeks = totalWeeks
	if totalWeeks == 0 {
		return progress
	}

	elapsed := int(dateOnly(now).Sub(dateOnly(plan.StartDate)).Hours() / 24)
	currentWeek := elapsed/7 + 1
	if currentWeek < 1 {
		currentWeek = 1
	}
	if currentWeek > totalWeeks {
		currentWeek = totalWeeks
	}
	progress.CurrentWeek = currentWeek
	progress.PercentComplete = float64(currentWeek) / float64(totalWeeks) * 100

	loggedDays := make(map[time.Time]bool, len(entries))
	for _, entry := range entries {
		loggedDays[dateOnly(entry.Date)] = true
	}

	byWeek := make(map[int][]models.PlanWorkout)
	for _, workout := range plan.Workouts {
		byWeek[workout.WeekNumber] = append(byWeek[workout.WeekNumber], workout)
	}

	for week := 1; week <= totalWeeks; week++ {
		weekStart := dateOnly(plan.StartDate).AddDate(0, 0, (week-1)*7)
		weekProgress := WeekProgress{
			WeekNumber: week,
			StartDate:  weekStart,
			EndDate:    weekStart.AddDate(0, 0, 6),
			Workouts:   []WorkoutProgress{},
		}

		for _, workout := range byWeek[week] {
			scheduled := weekStart.AddDate(0, 0, dayOffset(weekStart, workout.Day))
			weekProgress.Workouts = append(weekProgress.Workouts, WorkoutProgress{
				PlanWorkout: workout,
				Date:        scheduled,
				Status:      workoutStatus(workout, scheduled, now, loggedDays),
			})
		}

		progress.Weeks = append(progress.Weeks, weekProgress)
	}

	return progress
}

func workoutStatus(workout models.PlanWorkout, scheduled, now time.Time, loggedDays map[time.Time]bool) string {
	today := dateOnly(now)
	day := dateOnly(scheduled)

	switch {
	case day.Equal(today):
		return StatusToday
	case day.Before(today):
		if workout.Completed || loggedDays[day] || workout.Type == models.WorkoutRest {
			return StatusCompleted
		}
		return StatusSkipped
	default:
		return StatusUpcoming
	}
}

// dayOffset is the number of days from the week start to the named weekday,
// relative to whichever weekday the week starts on.
func dayOffset(weekStart time.Time, day string) int {
	target := weekdayIndex(day)
	start := int(weekStart.Weekday()+6) % 7 // time.Weekday is Sunday-based; shift to Monday=0
	return (target - start + 7) % 7
}

func weekdayIndex(day string) int {
	for i, d := range models.Weekdays {
		if d == day {
			return i
		}
	}
	return 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekWindow returns the Sunday-through-Saturday window containing t.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	day := dateOnly(t)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

// AverageMood maps checklist moods onto a 1..5 scale, averages them, and maps
// the mean back to a label. No checklists yields "N/A".
func AverageMood(checklists []models.DailyChecklist) string {
	if len(checklists) == 0 {
		return "N/A"
	}

	sum := 0.0
	for _, checklist := range checklists {
		sum += moodScores[checklist.Mood]
	}
	avg := sum / float64(len(checklists))

	for _, tier := range moodTiers {
		if avg >= tier.threshold {
			return tier.mood
		}
	}
	return models.MoodStressed
}

type checklistRangeReader interface {
	ListByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.DailyChecklist, error)
}

type workoutRangeReader interface {
	ListByUser(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]models.WorkoutEntry, error)
}

type StatsService struct {
	checklistRepo checklistRangeReader
	workoutRepo   workoutRangeReader
}

func NewStatsService(checklistRepo checklistRangeReader, workoutRepo workoutRangeReader) *StatsService {
	return &StatsService{
		checklistRepo: checklistRepo,
		workoutRepo:   workoutRepo,
	}
}

// GetWeeklyStats aggregates the current week: run distance from the workout
// log, calories and completed-run count from the checklists, plus the average
// mood.
func (s *StatsService) GetWeeklyStats(ctx context.Context, userID int64, now time.Time) (*WeeklyStats, error) {
	weekStart, weekEnd := WeekWindow(now)

	checklists, err := s.checklistRepo.ListByUserInRange(ctx, userID, weekStart, weekEnd)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	endOfWeek := weekEnd.AddDate(0, 0, 1).Add(-time.Nanosecond)
	entries, err := s.workoutRepo.ListByUser(ctx, userID, &weekStart, &endOfWeek)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	stats := &WeeklyStats{AverageMood: AverageMood(checklists)}
	for _, entry := range entries {
		stats.TotalDistance += entry.DistanceKM
	}
	for _, checklist := range checklists {
		if checklist.RunDone {
			stats.CompletedWorkouts++
		}
		if checklist.CaloriesEaten != nil {
			stats.TotalCalories += *checklist.CaloriesEaten
		}
	}

	return stats, nil
}
