package services

import (
	"strconv"
	"strings"

	"github.com/asmec-academy/assessment-engine/internal/models"
)

// AnswerVerifier judges a submitted answer against a question's expected
// answer. Stateless; a malformed submission is never an error, only an
// incorrect or text-compared answer.
type AnswerVerifier struct{}

// Verify normalizes both sides and applies the comparison rule for the
// question's answer kind.
//
// The order matters: numeric tolerance first for calculation/short-answer
// kinds, then letter-index decoding for multiple choice, then plain text
// equality. A numeric-looking multiple-choice submission must still be
// letter-decoded before falling back to text.
func (AnswerVerifier) Verify(question *models.Question, rawAnswer string) bool {
	submitted := normalizeAnswer(rawAnswer)
	expected := normalizeAnswer(question.CorrectAnswer)

	switch question.Type {
	case models.QuestionCalculation, models.QuestionShortAnswer:
		submittedNum, errSubmitted := strconv.ParseFloat(submitted, 64)
		expectedNum, errExpected := strconv.ParseFloat(expected, 64)
		if errSubmitted == nil && errExpected == nil {
			return numbersMatch(submittedNum, expectedNum)
		}
		return submitted == expected

	case models.QuestionMultipleChoice:
		if len(submitted) == 1 && submitted[0] >= 'a' && submitted[0] <= 'd' {
			index := int(submitted[0] - 'a')
			if index < len(question.Options) {
				return question.Options[index] == question.CorrectAnswer
			}
		}
		return submitted == expected
	}

	return submitted == expected
}

// answerTolerance is the numeric margin under which two parsed answers are
// considered equal.
const answerTolerance = 0.001

func numbersMatch(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < answerTolerance
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
