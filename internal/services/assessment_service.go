package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/asmec-academy/assessment-engine/internal/events"
	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/asmec-academy/assessment-engine/internal/repositories"
	"github.com/asmec-academy/assessment-engine/internal/validator"
	"github.com/google/uuid"
)

// SessionConfig bounds a test session.
type SessionConfig struct {
	// MaxQuestions is the number of questions a session presents before
	// completing.
	MaxQuestions int

	// Topics is the pool a session samples from. Entries not registered with
	// the question repository are dropped at construction.
	Topics []string
}

// DefaultSessionConfig matches the catalog's core subjects.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxQuestions: 20,
		Topics:       []string{"aritmetica", "algebra", "geometria"},
	}
}

// correctFeedbacks is the pool a success message is drawn from.
var correctFeedbacks = []string{
	"¡Excelente trabajo!",
	"¡Correcto! Sigue así.",
	"¡Muy bien! Tu respuesta es precisa.",
	"¡Perfecto! Dominas este concepto.",
}

// weakAreaThreshold is the per-topic accuracy (percent) below which a topic
// is reported as a weak area.
const weakAreaThreshold = 70.0

// rewardScoreThreshold is the normalized score from which a completed session
// grants a reward.
const rewardScoreThreshold = 70.0

// sessionState pairs a session record with its adaptive components. Calls
// touching one session are serialized on its own lock; the service map lock
// only guards lookup and insertion.
type sessionState struct {
	mu         sync.Mutex
	session    *models.AssessmentSession
	difficulty *DifficultyController
	ability    *AbilityEstimator
	finalized  bool
}

type assessmentService struct {
	questions   repositories.QuestionRepository
	proficiency ProficiencyService
	verifier    AnswerVerifier
	publisher   events.EventPublisher
	validator   *validator.Validator
	logger      *slog.Logger
	config      SessionConfig

	mu       sync.RWMutex
	sessions map[string]*sessionState

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewAssessmentService(
	questions repositories.QuestionRepository,
	proficiency ProficiencyService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
	rng *rand.Rand,
	config SessionConfig,
) AssessmentService {
	if config.MaxQuestions <= 0 {
		config.MaxQuestions = DefaultSessionConfig().MaxQuestions
	}
	if len(config.Topics) == 0 {
		config.Topics = DefaultSessionConfig().Topics
	}

	// Drop pool entries the catalog does not know. Selection escalates
	// through tiers per topic, so an unregistered topic would otherwise fail
	// a session mid-flight with ErrUnknownTopic.
	registered := make(map[string]bool)
	for _, topic := range questions.Topics() {
		registered[topic] = true
	}
	topics := make([]string, 0, len(config.Topics))
	for _, topic := range config.Topics {
		if registered[topic] {
			topics = append(topics, topic)
			continue
		}
		logger.Warn("Ignoring unregistered session topic", "topic", topic)
	}
	config.Topics = topics

	return &assessmentService{
		questions:   questions,
		proficiency: proficiency,
		publisher:   publisher,
		validator:   validator,
		logger:      logger,
		config:      config,
		sessions:    make(map[string]*sessionState),
		rng:         rng,
	}
}

// ===== SESSION LIFECYCLE =====

func (s *assessmentService) StartSession(ctx context.Context, req *StartSessionRequest) (*StartSessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	s.logger.Info("Starting assessment session",
		"user_id", req.UserID,
		"test_kind", req.TestKind,
		"starting_level", req.StartingLevel)

	if err := s.proficiency.BeginUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	ability := NewAbilityEstimator(float64(req.StartingLevel))
	state := &sessionState{
		session: &models.AssessmentSession{
			ID:         uuid.New().String(),
			UserID:     req.UserID,
			Kind:       models.TestKind(req.TestKind),
			Status:     models.SessionInProgress,
			Difficulty: BaseDifficultyFor(ability.Estimate(), 0.5),
			Ability:    ability.Estimate(),
			StartedAt:  time.Now(),
		},
		ability: ability,
	}
	state.difficulty = NewDifficultyController(state.session.Difficulty)

	first, err := s.selectNextQuestion(state)
	if err != nil {
		return nil, err
	}
	state.session.Records = append(state.session.Records, models.QuestionRecord{Question: first})

	s.mu.Lock()
	s.sessions[state.session.ID] = state
	s.mu.Unlock()

	s.publish(ctx, events.NewNotificationEvent(events.EventSessionStarted, events.SessionStartedEvent{
		SessionID:     state.session.ID,
		UserID:        req.UserID,
		TestKind:      req.TestKind,
		StartingLevel: ability.Estimate(),
		StartedAt:     state.session.StartedAt,
	}))

	return &StartSessionResponse{
		SessionID:     state.session.ID,
		FirstQuestion: first,
	}, nil
}

func (s *assessmentService) SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	state, ok := s.lookup(req.SessionID)
	if !ok {
		return nil, ErrInvalidSession
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	session := state.session
	if session.Status != models.SessionInProgress {
		return nil, ErrInvalidSession
	}
	pending := session.Pending()
	if pending == nil || pending.ID != req.QuestionID {
		return nil, ErrQuestionMismatch
	}

	correct := s.verifier.Verify(pending, req.Answer)

	record := &session.Records[len(session.Records)-1]
	record.Answer = req.Answer
	record.Answered = true
	record.Correct = correct
	record.TimeSpent = req.TimeSpent

	if correct {
		session.RawScore += pending.Points
	}
	session.Answered++
	session.Ability = state.ability.RecordAnswer(correct, pending.Difficulty)
	session.Difficulty = state.difficulty.RecordAnswer(correct)

	performance := 0.0
	if correct {
		performance = 1.0
	}
	s.proficiency.Update(session.UserID, pending.Topic, performance, pending.Difficulty)

	feedback := s.feedbackFor(pending, correct, req.Answer)

	s.logger.Info("Answer submitted",
		"session_id", session.ID,
		"question_id", pending.ID,
		"correct", correct,
		"ability", session.Ability,
		"difficulty", session.Difficulty.String())

	resp := &SubmitAnswerResponse{IsCorrect: correct, Feedback: feedback}

	if session.Answered < s.config.MaxQuestions {
		next, err := s.selectNextQuestion(state)
		if err == nil {
			session.Records = append(session.Records, models.QuestionRecord{Question: next})
			resp.NextQuestion = next
			return resp, nil
		}
		// The answer is already recorded; an exhausted pool ends the
		// session early instead of rejecting the submission.
		s.logger.Warn("Question pool exhausted, completing session early",
			"session_id", session.ID, "error", err)
	}

	s.completeLocked(ctx, state)
	resp.Completed = true
	return resp, nil
}

func (s *assessmentService) GetResults(ctx context.Context, sessionID string) (*models.SessionResult, error) {
	state, ok := s.lookup(sessionID)
	if !ok {
		return nil, ErrInvalidSession
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	// A caller may force results on an in-progress session; that finalizes
	// it with whatever was presented so far.
	if state.session.Status != models.SessionCompleted {
		s.completeLocked(ctx, state)
	}
	return s.resultLocked(state.session), nil
}

// ===== QUESTION SELECTION =====

// selectNextQuestion draws a topic by the session's policy and filters the
// catalog at the controller's tier. When a topic has no questions at the
// tier, the tier escalates (wrapping at EXPERT) and selection retries. The
// loop is bounded by topics × tiers attempts.
func (s *assessmentService) selectNextQuestion(state *sessionState) (*models.Question, error) {
	attempts := len(s.config.Topics) * int(models.DifficultyExpert)
	for i := 0; i < attempts; i++ {
		topic := s.selectTopic(state.session)
		candidates, err := s.questions.QuestionsForDifficulty(topic, state.difficulty.Current())
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			state.session.Difficulty = state.difficulty.Escalate()
			continue
		}
		return candidates[s.intn(len(candidates))], nil
	}
	return nil, ErrNoQuestionsAvailable
}

// selectTopic draws uniformly over the pool for a diagnostic test; a
// progress test prefers topics already answered incorrectly this session.
func (s *assessmentService) selectTopic(session *models.AssessmentSession) string {
	if session.Kind == models.TestProgress {
		if weak := incorrectTopics(session); len(weak) > 0 {
			return weak[s.intn(len(weak))]
		}
	}
	return s.config.Topics[s.intn(len(s.config.Topics))]
}

func incorrectTopics(session *models.AssessmentSession) []string {
	var topics []string
	seen := make(map[string]bool)
	for _, record := range session.Records {
		if record.Answered && !record.Correct && !seen[record.Question.Topic] {
			seen[record.Question.Topic] = true
			topics = append(topics, record.Question.Topic)
		}
	}
	return topics
}

// ===== COMPLETION =====

func (s *assessmentService) completeLocked(ctx context.Context, state *sessionState) {
	session := state.session
	if session.Status == models.SessionCompleted && state.finalized {
		return
	}
	session.Status = models.SessionCompleted
	state.finalized = true

	if err := s.proficiency.Flush(ctx, session.UserID); err != nil {
		s.logger.Error("Failed to persist proficiency",
			"session_id", session.ID,
			"user_id", session.UserID,
			"error", err)
	}

	result := s.resultLocked(session)
	s.logger.Info("Assessment session completed",
		"session_id", session.ID,
		"user_id", session.UserID,
		"raw_score", result.RawScore,
		"normalized_score", result.NormalizedScore)

	s.publish(ctx, events.NewNotificationEvent(events.EventSessionCompleted, events.SessionCompletedEvent{
		SessionID:       session.ID,
		UserID:          session.UserID,
		TestKind:        string(session.Kind),
		RawScore:        result.RawScore,
		NormalizedScore: result.NormalizedScore,
		Ability:         result.Ability,
		WeakAreas:       result.WeakAreas,
	}))
	s.emitGamification(ctx, session, result)
}

// emitGamification turns session outcomes into the payloads the external
// notification/reward service consumes. The engine never formats or
// delivers them.
func (s *assessmentService) emitGamification(ctx context.Context, session *models.AssessmentSession, result *models.SessionResult) {
	if result.NormalizedScore >= rewardScoreThreshold {
		s.publish(ctx, events.NewNotificationEvent(events.EventRewardGranted, events.RewardGrantedEvent{
			UserID: session.UserID,
			Points: result.RawScore,
			Coins:  result.RawScore / 2,
			Reason: "session_completed",
		}))
	}
	if result.NormalizedScore == 100.0 && result.QuestionsTotal > 0 {
		s.publish(ctx, events.NewNotificationEvent(events.EventAchievementUnlocked, events.AchievementUnlockedEvent{
			UserID:      session.UserID,
			Achievement: "perfect_session",
			Description: "Completó una evaluación sin errores",
			Points:      result.RawScore,
		}))
	}
	if session.Answered >= s.config.MaxQuestions {
		s.publish(ctx, events.NewNotificationEvent(events.EventQuestCompleted, events.QuestCompletedEvent{
			UserID: session.UserID,
			Quest:  "daily_assessment",
			Reward: 50,
		}))
	}
}

func (s *assessmentService) resultLocked(session *models.AssessmentSession) *models.SessionResult {
	maxPossible := 0
	for _, record := range session.Records {
		maxPossible += record.Question.Points
	}

	normalized := 0.0
	if maxPossible > 0 {
		normalized = math.Round(float64(session.RawScore)/float64(maxPossible)*1000) / 10
	}

	return &models.SessionResult{
		SessionID:        session.ID,
		RawScore:         session.RawScore,
		NormalizedScore:  normalized,
		Ability:          session.Ability,
		QuestionsTotal:   len(session.Records),
		WeakAreas:        weakAreas(session),
		IncorrectAnswers: incorrectAnswers(session),
	}
}

// weakAreas lists topics whose session accuracy fell below the threshold.
// A presented-but-unanswered question counts against its topic.
func weakAreas(session *models.AssessmentSession) []string {
	type tally struct{ correct, total int }
	byTopic := make(map[string]*tally)
	for _, record := range session.Records {
		t := byTopic[record.Question.Topic]
		if t == nil {
			t = &tally{}
			byTopic[record.Question.Topic] = t
		}
		t.total++
		if record.Correct {
			t.correct++
		}
	}

	var weak []string
	for topic, t := range byTopic {
		accuracy := float64(t.correct) / float64(t.total) * 100
		if accuracy < weakAreaThreshold {
			weak = append(weak, topic)
		}
	}
	sort.Strings(weak)
	return weak
}

func incorrectAnswers(session *models.AssessmentSession) []models.IncorrectAnswer {
	var incorrect []models.IncorrectAnswer
	for _, record := range session.Records {
		if !record.Answered || record.Correct {
			continue
		}
		incorrect = append(incorrect, models.IncorrectAnswer{
			Question:      record.Question.Text,
			UserAnswer:    record.Answer,
			CorrectAnswer: record.Question.CorrectAnswer,
			Topic:         record.Question.Topic,
			Hint:          record.Question.Hint,
		})
	}
	return incorrect
}

// ===== HELPERS =====

func (s *assessmentService) feedbackFor(question *models.Question, correct bool, answer string) string {
	if correct {
		return correctFeedbacks[s.intn(len(correctFeedbacks))]
	}

	feedback := fmt.Sprintf("Tu respuesta: %s\nRespuesta correcta: %s\n\n", answer, question.CorrectAnswer)
	if question.Hint != "" {
		return feedback + fmt.Sprintf("Pista para la próxima: %s", question.Hint)
	}
	return feedback + "Revisa los conceptos y vuelve a intentar."
}

func (s *assessmentService) lookup(sessionID string) (*sessionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	return state, ok
}

// intn serializes draws on the shared source; rand.Rand is not safe for
// concurrent use.
func (s *assessmentService) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *assessmentService) publish(ctx context.Context, event *events.NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
