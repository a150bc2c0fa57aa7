package handlers

import (
	"log/slog"
	"net/http"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/asmec-academy/assessment-engine/internal/services"
	"github.com/asmec-academy/assessment-engine/internal/validator"
	"github.com/gin-gonic/gin"
)

// ExerciseHandler exposes practice exercise generation and checking.
type ExerciseHandler struct {
	service   services.ExerciseService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewExerciseHandler(service services.ExerciseService, validator *validator.Validator, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{service: service, validator: validator, logger: logger}
}

// GenerateExercise handles POST /api/v1/exercises
func (h *ExerciseHandler) GenerateExercise(c *gin.Context) {
	var req services.GenerateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: err.Error()})
		return
	}

	difficulty, _ := models.ParseDifficulty(req.Difficulty)
	exercise, err := h.service.Generate(req.Topic, difficulty)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// CheckAnswer handles POST /api/v1/exercises/check
func (h *ExerciseHandler) CheckAnswer(c *gin.Context) {
	var req services.CheckExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: err.Error()})
		return
	}

	correct, message := h.service.CheckAnswer(req.Exercise, req.Answer)
	c.JSON(http.StatusOK, services.CheckExerciseResponse{IsCorrect: correct, Message: message})
}

// GetHint handles GET /api/v1/exercises/hint/:topic
func (h *ExerciseHandler) GetHint(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hint": h.service.Hint(c.Param("topic"))})
}
