package services

import (
	"testing"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func calculationQuestion(expected string) *models.Question {
	return &models.Question{
		ID:            "q_calc",
		Type:          models.QuestionCalculation,
		CorrectAnswer: expected,
		Topic:         "aritmetica",
	}
}

func TestVerify_NumericTolerance(t *testing.T) {
	v := AnswerVerifier{}
	q := calculationQuestion("42")

	assert.True(t, v.Verify(q, "42"))
	assert.True(t, v.Verify(q, "42.0"))
	assert.True(t, v.Verify(q, "  42.0005 "))
	assert.False(t, v.Verify(q, "42.01"))
	assert.False(t, v.Verify(q, "41"))
}

func TestVerify_NumericParseFallsBackToText(t *testing.T) {
	v := AnswerVerifier{}
	q := calculationQuestion("13/20")

	// Neither side parses as a float, so comparison is normalized text.
	assert.True(t, v.Verify(q, "13/20"))
	assert.True(t, v.Verify(q, " 13/20 "))
	assert.False(t, v.Verify(q, "0.65"))

	// Expected parses but submission does not: still text comparison.
	numeric := calculationQuestion("8")
	assert.False(t, v.Verify(numeric, "ocho"))
}

func TestVerify_MultipleChoiceLetterDecoding(t *testing.T) {
	v := AnswerVerifier{}
	q := &models.Question{
		ID:            "arith_001",
		Type:          models.QuestionMultipleChoice,
		CorrectAnswer: "42",
		Options:       []string{"40", "41", "42", "43"},
		Topic:         "aritmetica",
	}

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"lowercase letter at right index", "c", true},
		{"uppercase letter is case-insensitive", "C", true},
		{"letter at wrong index", "a", false},
		{"letter with surrounding whitespace", " c ", true},
		{"full answer text", "42", true},
		{"full answer text wrong", "40", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Verify(q, tt.answer))
		})
	}
}

func TestVerify_MultipleChoiceLetterOutOfRange(t *testing.T) {
	v := AnswerVerifier{}
	q := &models.Question{
		ID:            "q_mc",
		Type:          models.QuestionMultipleChoice,
		CorrectAnswer: "d",
		Options:       []string{"x", "y"},
		Topic:         "algebra",
	}

	// "d" maps past the two options, so it falls through to text
	// comparison against the expected answer.
	assert.True(t, v.Verify(q, "d"))
	assert.False(t, v.Verify(q, "c"))
}

func TestVerify_TrueFalseAndProblemSolving(t *testing.T) {
	v := AnswerVerifier{}

	tf := &models.Question{
		ID:            "q_tf",
		Type:          models.QuestionTrueFalse,
		CorrectAnswer: "verdadero",
		Topic:         "geometria",
	}
	assert.True(t, v.Verify(tf, "Verdadero"))
	assert.True(t, v.Verify(tf, "  VERDADERO  "))
	assert.False(t, v.Verify(tf, "falso"))

	ps := &models.Question{
		ID:            "q_ps",
		Type:          models.QuestionProblemSolving,
		CorrectAnswer: "x=6, y=4",
		Topic:         "algebra",
	}
	assert.True(t, v.Verify(ps, "X=6, Y=4"))
	assert.False(t, v.Verify(ps, "x=4, y=6"))
}
