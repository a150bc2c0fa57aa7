package services

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/asmec-academy/assessment-engine/internal/models"
)

// ExerciseService procedurally generates practice problems from the template
// table and checks answers against their derived solutions. Exercises are
// ephemeral and never scored into a session.
type ExerciseService interface {
	Generate(topic string, difficulty models.Difficulty) (*models.Exercise, error)
	CheckAnswer(exercise *models.Exercise, answer string) (bool, string)
	Hint(topic string) string
}

type exerciseService struct {
	templates TemplateTable
	hints     map[string][]string
	logger    *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewExerciseService(templates TemplateTable, hints map[string][]string, logger *slog.Logger, rng *rand.Rand) ExerciseService {
	return &exerciseService{
		templates: templates,
		hints:     hints,
		logger:    logger,
		rng:       rng,
	}
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

func (s *exerciseService) Generate(topic string, difficulty models.Difficulty) (*models.Exercise, error) {
	if _, ok := s.templates[topic]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExerciseTopic, topic)
	}
	if !difficulty.Valid() {
		difficulty = models.DifficultyEasy
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Step down through tiers until one has templates; the EASY fallback is
	// a fixed exercise so generation always succeeds.
	tier := difficulty
	for {
		pool := s.templates[topic][tier]
		if len(pool) > 0 {
			return s.generateFrom(topic, tier, pool), nil
		}
		if tier <= models.DifficultyEasy {
			s.logger.Warn("No templates for topic at any tier, using fallback",
				"topic", topic, "requested", difficulty.String())
			return fallbackExercise(), nil
		}
		tier = tier.Lower()
	}
}

func (s *exerciseService) generateFrom(topic string, tier models.Difficulty, pool []string) *models.Exercise {
	template := pool[s.rng.Intn(len(pool))]
	values := s.drawValues(template)

	return &models.Exercise{
		ID:         fmt.Sprintf("ex_%04d", 1000+s.rng.Intn(9000)),
		Problem:    fillTemplate(template, values),
		Solution:   solveTemplate(template, values),
		Points:     int(tier) * 10,
		Difficulty: tier.String(),
		Topic:      topic,
		Values:     values,
	}
}

// drawValues fills each named placeholder with a value from its policy
// range: generic operands 1–20, percentages 5–50, large operands 50–500,
// lists as five integers 1–100, anything else 1–100.
func (s *exerciseService) drawValues(template string) map[string]any {
	values := make(map[string]any)
	for _, match := range placeholderRe.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if _, done := values[name]; done {
			continue
		}
		switch name {
		case "a", "b", "c", "d":
			values[name] = 1 + s.rng.Intn(20)
		case "p":
			values[name] = 5 + s.rng.Intn(46)
		case "n":
			values[name] = 50 + s.rng.Intn(451)
		case "lista":
			list := make([]int, 5)
			for i := range list {
				list[i] = 1 + s.rng.Intn(100)
			}
			values[name] = list
		default:
			values[name] = 1 + s.rng.Intn(100)
		}
	}
	return values
}

func fillTemplate(template string, values map[string]any) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.Trim(match, "{}")
		value, ok := values[name]
		if !ok {
			return match
		}
		if list, isList := value.([]int); isList {
			parts := make([]string, len(list))
			for i, n := range list {
				parts[i] = strconv.Itoa(n)
			}
			return strings.Join(parts, ", ")
		}
		return fmt.Sprint(value)
	})
}

// unsolvedPlaceholder marks a template whose operator pattern the solver
// does not recognize.
const unsolvedPlaceholder = "[Solución calculada]"

// solveTemplate derives the solution by detecting the operator on the raw
// template text, in fixed precedence: addition, subtraction, multiplication,
// division, percentage, one-step linear equation. Anything else yields the
// placeholder string.
func solveTemplate(template string, values map[string]any) string {
	a := intValue(values, "a", 0)
	b := intValue(values, "b", 0)

	switch {
	case strings.Contains(template, " + ") && strings.Contains(template, "?"):
		return strconv.Itoa(a + b)
	case strings.Contains(template, " - "):
		return strconv.Itoa(a - b)
	case strings.Contains(template, " × "):
		return strconv.Itoa(a * b)
	case strings.Contains(template, " ÷ "):
		divisor := intValue(values, "b", 1)
		if divisor == 0 {
			divisor = 1
		}
		return formatRounded(float64(a) / float64(divisor))
	case strings.Contains(template, "%"):
		p := intValue(values, "p", 0)
		n := intValue(values, "n", 0)
		return formatRounded(float64(n) * float64(p) / 100)
	case strings.Contains(template, "x") && strings.Contains(template, "="):
		// One-step linear equation ax + b = c solved for x.
		coeff := intValue(values, "a", 1)
		if coeff == 0 {
			coeff = 1
		}
		c := intValue(values, "c", 0)
		return formatRounded(float64(c-b) / float64(coeff))
	}
	return unsolvedPlaceholder
}

func intValue(values map[string]any, name string, fallback int) int {
	if v, ok := values[name].(int); ok {
		return v
	}
	return fallback
}

// formatRounded renders a float rounded to two decimals without trailing
// zeros, so "4" rather than "4.00".
func formatRounded(v float64) string {
	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func fallbackExercise() *models.Exercise {
	return &models.Exercise{
		ID:         "fallback_001",
		Problem:    "Calcula: 2 + 2",
		Solution:   "4",
		Points:     10,
		Difficulty: models.DifficultyEasy.String(),
		Topic:      "aritmetica",
		Values:     map[string]any{"a": 2, "b": 2},
	}
}

// CheckAnswer applies the verifier's numeric-tolerance-then-text rule to a
// practice exercise.
func (s *exerciseService) CheckAnswer(exercise *models.Exercise, answer string) (bool, string) {
	correct := false
	submittedNum, errSubmitted := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	solutionNum, errSolution := strconv.ParseFloat(strings.TrimSpace(exercise.Solution), 64)
	if errSubmitted == nil && errSolution == nil {
		correct = numbersMatch(submittedNum, solutionNum)
	} else {
		correct = strings.TrimSpace(answer) == strings.TrimSpace(exercise.Solution)
	}

	if correct {
		return true, "¡Respuesta correcta!"
	}
	return false, fmt.Sprintf("La respuesta correcta es %s", exercise.Solution)
}

// Hint returns a random study hint for the topic.
func (s *exerciseService) Hint(topic string) string {
	pool, ok := s.hints[topic]
	if !ok || len(pool) == 0 {
		return "Analiza el problema paso a paso"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}
