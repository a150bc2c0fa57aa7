package handlers

import (
	"log/slog"
	"net/http"

	"github.com/asmec-academy/assessment-engine/internal/services"
	"github.com/gin-gonic/gin"
)

// AssessmentHandler exposes the adaptive test session operations.
type AssessmentHandler struct {
	service services.AssessmentService
	logger  *slog.Logger
}

func NewAssessmentHandler(service services.AssessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, logger: logger}
}

// StartSession handles POST /api/v1/sessions
func (h *AssessmentHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	resp, err := h.service.StartSession(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to start session", "user_id", req.UserID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// SubmitAnswer handles POST /api/v1/sessions/:id/answers
func (h *AssessmentHandler) SubmitAnswer(c *gin.Context) {
	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}
	req.SessionID = c.Param("id")

	resp, err := h.service.SubmitAnswer(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to submit answer",
			"session_id", req.SessionID,
			"question_id", req.QuestionID,
			"error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetResults handles GET /api/v1/sessions/:id/results
func (h *AssessmentHandler) GetResults(c *gin.Context) {
	result, err := h.service.GetResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
