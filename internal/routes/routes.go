package routes

import (
	"github.com/JAMA60091234/runmaster-backend/internal/config"
	"github.com/JAMA60091234/runmaster-backend/internal/handlers"
	"github.com/JAMA60091234/runmaster-backend/internal/middleware"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/JAMA60091234/runmaster-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	var generator services.ContentGenerator
	if cfg.OpenRouterAPIKey != "" {
		generator = services.NewOpenRouterGenerator(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel)
	}
	stravaClient := services.NewHTTPStravaClient(cfg.StravaClientID, cfg.StravaClientSecret)

	planService := services.NewPlanService(db, planRepo, workoutRepo, generator)
	statsService := services.NewStatsService(checklistRepo, workoutRepo)
	stravaService := services.NewStravaService(userRepo, workoutRepo, stravaClient, cfg.StravaClientID, cfg.StravaRedirectURI)
	mealService := services.NewMealPlanService(generator)
	quoteService := services.NewQuoteService(quoteRepo)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo, planService)
	planHandler := handlers.NewPlanHandler(planService)
	workoutHandler := handlers.NewWorkoutHandler(workoutRepo)
	checklistHandler := handlers.NewChecklistHandler(checklistRepo)
	statsHandler := handlers.NewStatsHandler(statsService)
	stravaHandler := handlers.NewStravaHandler(stravaService, cfg.FrontendURL)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	mealHandler := handlers.NewMealHandler(mealService)

	// Public surface, keyed by path user id like the original frontend.
	app.Post("/generate-plan", planHandler.GeneratePlan)
	app.Get("/plan/:userId", planHandler.GetPlan)
	app.Post("/plan/complete", planHandler.CompleteWorkout)
	app.Get("/checklist/:userId/:date", checklistHandler.GetChecklist)
	app.Post("/checklist/:userId/:date", checklistHandler.UpsertChecklist)
	app.Get("/stats/:userId", statsHandler.GetWeeklyStats)
	app.Post("/user/:userId/goal", userHandler.UpdateGoal)

	strava := app.Group("/strava")
	strava.Get("/connect", stravaHandler.Connect)
	strava.Get("/callback", stravaHandler.Callback)
	strava.Get("/status/:userId", stravaHandler.Status)
	strava.Post("/sync/:userId", stravaHandler.Sync)
	strava.Post("/disconnect/:userId", stravaHandler.Disconnect)
	app.Get("/strava-runs", stravaHandler.Runs)

	api := app.Group("/api")
	api.Get("/quotes/today", quoteHandler.QuoteOfTheDay)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))
	authProtected.Get("/user/profile", profileHandler.GetProfile)
	authProtected.Put("/user/profile", profileHandler.UpdateProfile)
	authProtected.Post("/workouts", workoutHandler.LogWorkout)
	authProtected.Get("/workouts", workoutHandler.ListWorkouts)
	authProtected.Post("/generate-meal-plan", mealHandler.GenerateMealPlan)
}
