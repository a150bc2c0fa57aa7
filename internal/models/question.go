package models

import (
	"gorm.io/datatypes"
)

// QuestionType classifies how an answer is collected and compared.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionCalculation    QuestionType = "calculation"
	QuestionProblemSolving QuestionType = "problem_solving"
)

// Difficulty is the ordinal tier a question belongs to. Transitions between
// tiers are driven either by answers (clamped) or by question availability
// (wrapping); see the assessment service.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
	DifficultyExpert
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "EASY"
	case DifficultyMedium:
		return "MEDIUM"
	case DifficultyHard:
		return "HARD"
	case DifficultyExpert:
		return "EXPERT"
	}
	return "UNKNOWN"
}

// Valid reports whether d is one of the four defined tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyExpert
}

// Raise returns the next tier up, clamped at EXPERT.
func (d Difficulty) Raise() Difficulty {
	if d < DifficultyExpert {
		return d + 1
	}
	return DifficultyExpert
}

// Lower returns the next tier down, clamped at EASY.
func (d Difficulty) Lower() Difficulty {
	if d > DifficultyEasy {
		return d - 1
	}
	return DifficultyEasy
}

// Next returns the tier above d, wrapping EXPERT back to EASY. Used only for
// availability-driven escalation when a topic has no questions at the
// current tier; answer-driven transitions clamp instead.
func (d Difficulty) Next() Difficulty {
	if d >= DifficultyExpert {
		return DifficultyEasy
	}
	return d + 1
}

// ParseDifficulty maps an ordinal name ("EASY".."EXPERT") to its tier.
func ParseDifficulty(name string) (Difficulty, bool) {
	for d := DifficultyEasy; d <= DifficultyExpert; d++ {
		if d.String() == name {
			return d, true
		}
	}
	return 0, false
}

// Question is a single catalog entry. Immutable once loaded; sessions hold
// references, never copies they mutate.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	CorrectAnswer string       `json:"correct_answer"`
	Points        int          `json:"points"`
	Difficulty    Difficulty   `json:"difficulty"`
	Topic         string       `json:"topic"`
	Options       []string     `json:"options,omitempty"`
	Hint          string       `json:"hint,omitempty"`
}

// QuestionRow is the persistence shape of a Question. The choice list is
// stored as a JSON column.
type QuestionRow struct {
	ID            string         `json:"id" gorm:"primaryKey;size:64"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Type          QuestionType   `json:"type" gorm:"size:32;not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"size:200;not null"`
	Points        int            `json:"points" gorm:"not null"`
	Difficulty    int            `json:"difficulty" gorm:"not null;index"`
	Topic         string         `json:"topic" gorm:"size:64;not null;index"`
	Options       datatypes.JSON `json:"options"`
	Hint          string         `json:"hint" gorm:"type:text"`
}

func (QuestionRow) TableName() string {
	return "questions"
}
