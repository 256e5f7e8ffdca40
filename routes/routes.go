package routes

import (
	"github.com/Rajeshwar-203/fitness-ai-backend/controllers"
	"github.com/Rajeshwar-203/fitness-ai-backend/metrics"
	"github.com/Rajeshwar-203/fitness-ai-backend/middlewares"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	Middleware *middlewares.Middleware
	Metrics    *metrics.Metrics
	Auth       *services.AuthService
	AIPlans    *services.AIPlanService
	History    *services.HistoryService
	Progress   *services.ProgressService
	DB         controllers.Pinger
	AIEnabled  bool
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		d.Middleware.RequestID(),
		d.Middleware.Logger(),
		d.Middleware.Recovery(),
		d.Middleware.ErrorHandler(),
	)

	health := controllers.NewHealthController(d.DB, d.AIEnabled)
	r.GET("/", health.Home)
	r.GET("/healthz", health.Healthz)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// Public auth routes
	auth := controllers.NewAuthController(d.Auth)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	user := r.Group("/")
	user.Use(middlewares.AuthMiddleware(d.Auth, true))
	{
		user.GET("/profile", controllers.NewUserController(d.Auth).GetProfile)
	}

	// A bearer token is optional here; when sent it fills a missing email.
	optionalAuth := middlewares.AuthMiddleware(d.Auth, false)

	plans := r.Group("/")
	plans.Use(optionalAuth)
	{
		plans.POST("/generate-plan", controllers.GeneratePlan)
		plans.POST("/generate-weekly-plan", controllers.GenerateWeeklyPlan)

		ai := controllers.NewAIPlanController(d.AIPlans)
		plans.POST("/generate-meal-plan", ai.GenerateMealPlan)
		plans.POST("/generate-workout-plan-ai", ai.GenerateWorkoutPlan)

		history := controllers.NewHistoryController(d.History)
		plans.GET("/meal-history", history.MealHistory)
		plans.GET("/workout-history", history.WorkoutHistory)

		progress := controllers.NewProgressController(d.Progress)
		plans.POST("/save-progress", progress.SaveProgress)
		plans.GET("/get-progress/:email", progress.GetProgress)
	}

	return r
}
