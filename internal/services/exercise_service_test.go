package services

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExercises(t *testing.T, templates TemplateTable) ExerciseService {
	t.Helper()
	return NewExerciseService(templates, DefaultHints(), testLogger(), rand.New(rand.NewSource(42)))
}

func TestFillTemplate(t *testing.T) {
	problem := fillTemplate("{a} + {b} = ?", map[string]any{"a": 5, "b": 7})
	assert.Equal(t, "5 + 7 = ?", problem)

	list := fillTemplate("Calcula la media de: {lista}", map[string]any{"lista": []int{1, 2, 3, 4, 5}})
	assert.Equal(t, "Calcula la media de: 1, 2, 3, 4, 5", list)

	// Unknown placeholders stay literal.
	assert.Equal(t, "{x} + 1", fillTemplate("{x} + 1", map[string]any{}))
}

func TestSolveTemplate_OperatorPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]any
		want     string
	}{
		{"addition", "{a} + {b} = ?", map[string]any{"a": 5, "b": 7}, "12"},
		{"subtraction", "Calcula: {a} - {b}", map[string]any{"a": 9, "b": 12}, "-3"},
		{"multiplication", "{a} × {b} = ?", map[string]any{"a": 6, "b": 7}, "42"},
		{"division", "{a} ÷ {b} = ?", map[string]any{"a": 10, "b": 4}, "2.5"},
		{"division rounds to two decimals", "{a} ÷ {b} = ?", map[string]any{"a": 10, "b": 3}, "3.33"},
		{"division by zero substitutes one", "{a} ÷ {b} = ?", map[string]any{"a": 10, "b": 0}, "10"},
		{"percentage", "¿Cuál es el {p}% de {n}?", map[string]any{"p": 15, "n": 120}, "18"},
		{"linear equation", "Resuelve: {a}x + {b} = {c}", map[string]any{"a": 2, "b": 5, "c": 13}, "4"},
		{"linear equation zero coefficient", "Resuelve: {a}x + {b} = {c}", map[string]any{"a": 0, "b": 5, "c": 13}, "8"},
		{"unrecognized pattern", "Encuentra el MCD de {a}, {b} y {c}", map[string]any{"a": 4, "b": 6, "c": 8}, unsolvedPlaceholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, solveTemplate(tt.template, tt.values))
		})
	}
}

func TestGenerate_ProducesSolvableExercise(t *testing.T) {
	svc := newTestExercises(t, DefaultTemplates())

	for i := 0; i < 50; i++ {
		exercise, err := svc.Generate("aritmetica", models.DifficultyEasy)
		require.NoError(t, err)

		assert.Equal(t, "aritmetica", exercise.Topic)
		assert.Equal(t, "EASY", exercise.Difficulty)
		assert.Equal(t, 10, exercise.Points)
		assert.NotEmpty(t, exercise.Problem)
		assert.NotEmpty(t, exercise.Solution)

		// The derived solution must check out against the exercise itself.
		if exercise.Solution != unsolvedPlaceholder {
			correct, _ := svc.CheckAnswer(exercise, exercise.Solution)
			assert.True(t, correct, "solution %q rejected for %q", exercise.Solution, exercise.Problem)
		}
	}
}

func TestGenerate_ValueRanges(t *testing.T) {
	svc := newTestExercises(t, DefaultTemplates())

	for i := 0; i < 50; i++ {
		exercise, err := svc.Generate("aritmetica", models.DifficultyMedium)
		require.NoError(t, err)
		for name, value := range exercise.Values {
			switch name {
			case "a", "b", "c", "d":
				n := value.(int)
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, 20)
			case "p":
				n := value.(int)
				assert.GreaterOrEqual(t, n, 5)
				assert.LessOrEqual(t, n, 50)
			case "n":
				n := value.(int)
				assert.GreaterOrEqual(t, n, 50)
				assert.LessOrEqual(t, n, 500)
			}
		}
	}
}

func TestGenerate_StepsDownWhenTierEmpty(t *testing.T) {
	templates := TemplateTable{
		"aritmetica": {
			models.DifficultyEasy: {"{a} + {b} = ?"},
		},
	}
	svc := newTestExercises(t, templates)

	exercise, err := svc.Generate("aritmetica", models.DifficultyExpert)
	require.NoError(t, err)
	assert.Equal(t, "EASY", exercise.Difficulty)
	assert.Equal(t, 10, exercise.Points)
}

func TestGenerate_FallbackWhenNoTemplatesAtAll(t *testing.T) {
	templates := TemplateTable{"aritmetica": {}}
	svc := newTestExercises(t, templates)

	exercise, err := svc.Generate("aritmetica", models.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, "fallback_001", exercise.ID)
	assert.Equal(t, "Calcula: 2 + 2", exercise.Problem)
	assert.Equal(t, "4", exercise.Solution)
}

func TestGenerate_UnknownTopic(t *testing.T) {
	svc := newTestExercises(t, DefaultTemplates())

	_, err := svc.Generate("historia", models.DifficultyEasy)
	assert.ErrorIs(t, err, ErrUnknownExerciseTopic)
}

func TestCheckAnswer_NumericToleranceAndText(t *testing.T) {
	svc := newTestExercises(t, DefaultTemplates())
	exercise := &models.Exercise{Solution: "2.5"}

	correct, message := svc.CheckAnswer(exercise, "2.5")
	assert.True(t, correct)
	assert.Equal(t, "¡Respuesta correcta!", message)

	correct, _ = svc.CheckAnswer(exercise, "2.5004")
	assert.True(t, correct)

	correct, message = svc.CheckAnswer(exercise, "2.6")
	assert.False(t, correct)
	assert.Equal(t, "La respuesta correcta es 2.5", message)

	textual := &models.Exercise{Solution: "(x-2)(x-3)"}
	correct, _ = svc.CheckAnswer(textual, " (x-2)(x-3) ")
	assert.True(t, correct)
}

func TestHint(t *testing.T) {
	svc := newTestExercises(t, DefaultTemplates())

	hint := svc.Hint("algebra")
	assert.Contains(t, DefaultHints()["algebra"], hint)

	assert.Equal(t, "Analiza el problema paso a paso", svc.Hint("historia"))
}

func TestGenerate_IDFormat(t *testing.T) {
	svc := newTestExercises(t, DefaultTemplates())
	exercise, err := svc.Generate("algebra", models.DifficultyEasy)
	require.NoError(t, err)

	require.Len(t, exercise.ID, 7)
	assert.Equal(t, "ex_", exercise.ID[:3])
	n, convErr := strconv.Atoi(exercise.ID[3:])
	require.NoError(t, convErr)
	assert.GreaterOrEqual(t, n, 1000)
	assert.LessOrEqual(t, n, 9999)
}
