package handlers

import (
	"log/slog"

	"github.com/asmec-academy/assessment-engine/internal/services"
	"github.com/asmec-academy/assessment-engine/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	assessmentHandler  *AssessmentHandler
	exerciseHandler    *ExerciseHandler
	proficiencyHandler *ProficiencyHandler
}

func NewHandlerManager(
	manager services.ServiceManager,
	validator *validator.Validator,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		assessmentHandler:  NewAssessmentHandler(manager.Assessment, logger),
		exerciseHandler:    NewExerciseHandler(manager.Exercise, validator, logger),
		proficiencyHandler: NewProficiencyHandler(manager.Proficiency, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.assessmentHandler.StartSession)
			sessions.POST("/:id/answers", hm.assessmentHandler.SubmitAnswer)
			sessions.GET("/:id/results", hm.assessmentHandler.GetResults)
		}

		exercises := v1.Group("/exercises")
		{
			exercises.POST("", hm.exerciseHandler.GenerateExercise)
			exercises.POST("/check", hm.exerciseHandler.CheckAnswer)
			exercises.GET("/hint/:topic", hm.exerciseHandler.GetHint)
		}

		users := v1.Group("/users")
		{
			users.GET("/:id/proficiency", hm.proficiencyHandler.GetProficiency)
			users.GET("/:id/recommended-lesson", hm.proficiencyHandler.GetRecommendedLesson)
		}
	}
}
