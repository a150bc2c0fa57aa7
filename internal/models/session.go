package models

import (
	"time"
)

// TestKind selects the topic-sampling policy of a session.
type TestKind string

const (
	TestDiagnostic TestKind = "diagnostic"
	TestProgress   TestKind = "progress"
)

// SessionStatus is the lifecycle state of an assessment session.
type SessionStatus string

const (
	SessionInitialized SessionStatus = "initialized"
	SessionInProgress  SessionStatus = "in_progress"
	SessionCompleted   SessionStatus = "completed"
)

// QuestionRecord is one presented question together with what the learner
// did with it.
type QuestionRecord struct {
	Question  *Question `json:"question"`
	Answer    string    `json:"answer"`
	Answered  bool      `json:"answered"`
	Correct   bool      `json:"correct"`
	TimeSpent int       `json:"time_spent"`
}

// AssessmentSession is the full state of one adaptive test run.
//
// Invariants: len(Records) never exceeds the configured question limit,
// Difficulty stays in {1..4} and Ability in [1.0, 10.0]. Mutation happens
// only through answer submission on the owning service.
type AssessmentSession struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Kind       TestKind         `json:"kind"`
	Status     SessionStatus    `json:"status"`
	Records    []QuestionRecord `json:"records"`
	Difficulty Difficulty       `json:"difficulty"`
	Ability    float64          `json:"ability"`
	RawScore   int              `json:"raw_score"`
	Answered   int              `json:"answered"`
	StartedAt  time.Time        `json:"started_at"`
}

// Pending returns the question awaiting an answer, or nil when none is.
func (s *AssessmentSession) Pending() *Question {
	if len(s.Records) == 0 {
		return nil
	}
	last := &s.Records[len(s.Records)-1]
	if last.Answered {
		return nil
	}
	return last.Question
}

// IncorrectAnswer is one wrong submission surfaced for post-test review.
type IncorrectAnswer struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Topic         string `json:"topic"`
	Hint          string `json:"hint,omitempty"`
}

// SessionResult is the finalized outcome of a session.
type SessionResult struct {
	SessionID        string            `json:"session_id"`
	RawScore         int               `json:"raw_score"`
	NormalizedScore  float64           `json:"normalized_score"`
	Ability          float64           `json:"ability"`
	QuestionsTotal   int               `json:"questions_total"`
	WeakAreas        []string          `json:"weak_areas"`
	IncorrectAnswers []IncorrectAnswer `json:"incorrect_answers"`
}
