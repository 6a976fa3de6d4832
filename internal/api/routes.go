package api

import (
	"net/http"
	"time"

	"fitflow/internal/generator"
	"fitflow/internal/service"
	"fitflow/internal/session"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	jwtExpiration time.Duration,
	store service.StoreService,
	workouts *session.Manager,
	planGen generator.PlanGenerator,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(store, workouts, jwtSecret, jwtExpiration)
	profileHandler := NewProfileHandler(store)
	planHandler := NewPlanHandler(store, planGen)
	workoutHandler := NewWorkoutHandler(store, workouts)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/state", profileHandler.GetState)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.POST("/:id/activate", planHandler.ActivatePlan)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/start", workoutHandler.Start)
			workoutGroup.GET("/current", workoutHandler.Snapshot)
			workoutGroup.DELETE("/current", workoutHandler.Abort)
			workoutGroup.POST("/current/sets/complete", workoutHandler.CompleteSet)
			workoutGroup.POST("/current/rest/skip", workoutHandler.SkipRest)
			workoutGroup.POST("/current/advance", workoutHandler.Advance)
			workoutGroup.POST("/current/finish", workoutHandler.Finish)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
		}
	}
}
