package handlers

import (
	"log/slog"
	"net/http"

	"github.com/asmec-academy/assessment-engine/internal/services"
	"github.com/gin-gonic/gin"
)

// ProficiencyHandler exposes per-user topic levels and lesson
// recommendations.
type ProficiencyHandler struct {
	service services.ProficiencyService
	logger  *slog.Logger
}

func NewProficiencyHandler(service services.ProficiencyService, logger *slog.Logger) *ProficiencyHandler {
	return &ProficiencyHandler{service: service, logger: logger}
}

// GetProficiency handles GET /api/v1/users/:id/proficiency
func (h *ProficiencyHandler) GetProficiency(c *gin.Context) {
	levels, err := h.service.Levels(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to load proficiency", "user_id", c.Param("id"), "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id"), "levels": levels})
}

// GetRecommendedLesson handles GET /api/v1/users/:id/recommended-lesson
func (h *ProficiencyHandler) GetRecommendedLesson(c *gin.Context) {
	lesson, err := h.service.RecommendedLesson(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if lesson == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "no suitable lesson found", Code: "NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}
