package services

import (
	"context"

	"github.com/asmec-academy/assessment-engine/internal/models"
)

// ===== REQUEST/RESPONSE DTOS =====

type StartSessionRequest struct {
	UserID        string `json:"user_id" validate:"required,max=64"`
	TestKind      string `json:"test_kind" validate:"required,test_kind"`
	StartingLevel int    `json:"starting_level" validate:"min=0,max=10"`
}

type StartSessionResponse struct {
	SessionID     string           `json:"session_id"`
	FirstQuestion *models.Question `json:"first_question"`
}

type SubmitAnswerRequest struct {
	SessionID  string `json:"session_id" validate:"required"`
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"time_spent_seconds" validate:"min=0"`
}

type SubmitAnswerResponse struct {
	IsCorrect    bool             `json:"is_correct"`
	Feedback     string           `json:"feedback"`
	NextQuestion *models.Question `json:"next_question,omitempty"`
	Completed    bool             `json:"completed"`
}

type GenerateExerciseRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required,difficulty_name"`
}

type CheckExerciseRequest struct {
	Exercise *models.Exercise `json:"exercise" validate:"required"`
	Answer   string           `json:"answer"`
}

type CheckExerciseResponse struct {
	IsCorrect bool   `json:"is_correct"`
	Message   string `json:"message"`
}

// ===== SERVICE INTERFACES =====

// AssessmentService drives adaptive test sessions end to end.
type AssessmentService interface {
	StartSession(ctx context.Context, req *StartSessionRequest) (*StartSessionResponse, error)
	SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error)
	GetResults(ctx context.Context, sessionID string) (*models.SessionResult, error)
}

// ServiceManager bundles the engine's services for the handler layer.
type ServiceManager struct {
	Assessment  AssessmentService
	Exercise    ExerciseService
	Proficiency ProficiencyService
}
