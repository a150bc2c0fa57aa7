package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/asmec-academy/assessment-engine/internal/repositories"
)

// defaultProficiencies seeds a user's profile on first load. Core subjects
// start at the default level; the advanced subjects stay locked at zero
// until first touched.
var defaultProficiencies = map[string]float64{
	"aritmetica":  models.ProficiencyDefault,
	"algebra":     models.ProficiencyDefault,
	"geometria":   models.ProficiencyDefault,
	"calculo":     0.0,
	"estadistica": 0.0,
}

// lessonCatalog maps each topic to its study units, ordered by difficulty.
var lessonCatalog = map[string][]models.Lesson{
	"aritmetica": {
		{ID: 1, Title: "Operaciones Básicas", Topic: "aritmetica", Difficulty: 1},
		{ID: 2, Title: "Fracciones y Decimales", Topic: "aritmetica", Difficulty: 2},
		{ID: 3, Title: "Porcentajes y Razones", Topic: "aritmetica", Difficulty: 3},
	},
	"algebra": {
		{ID: 4, Title: "Introducción al Álgebra", Topic: "algebra", Difficulty: 1},
		{ID: 5, Title: "Ecuaciones Lineales", Topic: "algebra", Difficulty: 2},
		{ID: 6, Title: "Sistemas de Ecuaciones", Topic: "algebra", Difficulty: 3},
	},
	"geometria": {
		{ID: 7, Title: "Figuras Planas", Topic: "geometria", Difficulty: 1},
		{ID: 8, Title: "Áreas y Perímetros", Topic: "geometria", Difficulty: 2},
		{ID: 9, Title: "Teorema de Pitágoras", Topic: "geometria", Difficulty: 3},
	},
}

// ProficiencyService tracks per-user, per-topic skill levels. Levels live in
// memory while a user has active sessions and are flushed to the store when
// a session finalizes.
type ProficiencyService interface {
	// BeginUser loads the user's levels from the store, seeding defaults on
	// first contact. A user already resident in memory keeps their current
	// levels untouched.
	BeginUser(ctx context.Context, userID string) error

	// Get returns the level for (user, topic), creating the default record
	// on first access.
	Get(userID, topic string) float64

	// Update applies the performance-vs-expectation rule and returns the
	// new level.
	Update(userID, topic string, performance float64, difficulty models.Difficulty) float64

	// Flush persists the user's levels through the store.
	Flush(ctx context.Context, userID string) error

	// Levels returns a copy of the user's topic levels, loading them if the
	// user is not resident.
	Levels(ctx context.Context, userID string) (map[string]float64, error)

	// RecommendedLesson picks a lesson for the user's weakest topic, or nil
	// when no catalog entry fits.
	RecommendedLesson(ctx context.Context, userID string) (*models.Lesson, error)
}

type proficiencyService struct {
	store  repositories.ProficiencyStore
	logger *slog.Logger
	rng    *rand.Rand

	mu    sync.Mutex
	users map[string]map[string]float64
}

func NewProficiencyService(store repositories.ProficiencyStore, logger *slog.Logger, rng *rand.Rand) ProficiencyService {
	return &proficiencyService{
		store:  store,
		logger: logger,
		rng:    rng,
		users:  make(map[string]map[string]float64),
	}
}

func (s *proficiencyService) BeginUser(ctx context.Context, userID string) error {
	// A user with resident levels has a session in flight; reloading from the
	// store here would discard their unflushed updates.
	s.mu.Lock()
	_, resident := s.users[userID]
	s.mu.Unlock()
	if resident {
		return nil
	}

	levels, err := s.store.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load proficiency: %w", err)
	}
	if len(levels) == 0 {
		levels = make(map[string]float64, len(defaultProficiencies))
		for topic, level := range defaultProficiencies {
			levels[topic] = level
		}
	}

	s.mu.Lock()
	if _, resident := s.users[userID]; !resident {
		s.users[userID] = levels
	}
	s.mu.Unlock()
	return nil
}

func (s *proficiencyService) Get(userID, topic string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(userID, topic)
}

func (s *proficiencyService) getLocked(userID, topic string) float64 {
	levels, ok := s.users[userID]
	if !ok {
		levels = make(map[string]float64)
		s.users[userID] = levels
	}
	level, ok := levels[topic]
	if !ok {
		level = models.ProficiencyDefault
		levels[topic] = level
	}
	return level
}

func (s *proficiencyService) Update(userID, topic string, performance float64, difficulty models.Difficulty) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.getLocked(userID, topic)
	adjustment := proficiencyAdjustment(performance, difficulty)
	next := clampFloat(current+adjustment, models.ProficiencyMin, models.ProficiencyMax)
	s.users[userID][topic] = next

	s.logger.Debug("Updated proficiency",
		"user_id", userID,
		"topic", topic,
		"performance", performance,
		"difficulty", difficulty.String(),
		"level", next)
	return next
}

// proficiencyAdjustment compares actual performance against the accuracy
// expected at the question's tier: 100% at EASY down to 25% at EXPERT.
func proficiencyAdjustment(performance float64, difficulty models.Difficulty) float64 {
	expected := 1.0 - float64(difficulty-1)*0.25
	return (performance - expected) * 0.2
}

func (s *proficiencyService) Flush(ctx context.Context, userID string) error {
	s.mu.Lock()
	levels, ok := s.users[userID]
	var snapshot map[string]float64
	if ok {
		snapshot = make(map[string]float64, len(levels))
		for topic, level := range levels {
			snapshot[topic] = level
		}
	}
	s.mu.Unlock()

	if snapshot == nil {
		return nil
	}
	if err := s.store.Save(ctx, userID, snapshot); err != nil {
		return fmt.Errorf("failed to save proficiency: %w", err)
	}
	return nil
}

func (s *proficiencyService) Levels(ctx context.Context, userID string) (map[string]float64, error) {
	s.mu.Lock()
	levels, resident := s.users[userID]
	if resident {
		snapshot := make(map[string]float64, len(levels))
		for topic, level := range levels {
			snapshot[topic] = level
		}
		s.mu.Unlock()
		return snapshot, nil
	}
	s.mu.Unlock()

	if err := s.BeginUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Levels(ctx, userID)
}

func (s *proficiencyService) RecommendedLesson(ctx context.Context, userID string) (*models.Lesson, error) {
	levels, err := s.Levels(ctx, userID)
	if err != nil {
		return nil, err
	}

	weakest := ""
	weakestLevel := 0.0
	for topic := range lessonCatalog {
		level, ok := levels[topic]
		if !ok {
			level = models.ProficiencyDefault
		}
		if weakest == "" || level < weakestLevel {
			weakest = topic
			weakestLevel = level
		}
	}
	if weakest == "" {
		return nil, nil
	}

	var candidates []models.Lesson
	for _, lesson := range lessonCatalog[weakest] {
		if float64(lesson.Difficulty) <= weakestLevel+1 {
			candidates = append(candidates, lesson)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	pick := candidates[s.rng.Intn(len(candidates))]
	s.mu.Unlock()
	return &pick, nil
}
