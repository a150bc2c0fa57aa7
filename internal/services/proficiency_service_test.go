package services

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/asmec-academy/assessment-engine/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProficiency(t *testing.T) (ProficiencyService, repositories.ProficiencyStore) {
	t.Helper()
	store := repositories.NewMemoryProficiencyStore()
	svc := NewProficiencyService(store, testLogger(), rand.New(rand.NewSource(1)))
	return svc, store
}

func TestProficiency_DefaultsOnFirstContact(t *testing.T) {
	svc, _ := newTestProficiency(t)
	require.NoError(t, svc.BeginUser(context.Background(), "maria"))

	assert.InDelta(t, 1.0, svc.Get("maria", "aritmetica"), 1e-9)
	assert.InDelta(t, 1.0, svc.Get("maria", "algebra"), 1e-9)
	// Locked subjects start at zero until first updated.
	levels, err := svc.Levels(context.Background(), "maria")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, levels["calculo"], 1e-9)
	assert.InDelta(t, 0.0, levels["estadistica"], 1e-9)
}

func TestProficiency_GetCreatesDefaultRecord(t *testing.T) {
	svc, _ := newTestProficiency(t)

	// No BeginUser: first access still yields the default level.
	assert.InDelta(t, 1.0, svc.Get("carlos", "fracciones"), 1e-9)
}

func TestProficiency_UpdateRule(t *testing.T) {
	svc, _ := newTestProficiency(t)
	require.NoError(t, svc.BeginUser(context.Background(), "maria"))

	// expected=0.75 at MEDIUM, adjustment=(1.0-0.75)*0.2=0.05.
	got := svc.Update("maria", "algebra", 1.0, models.DifficultyMedium)
	assert.InDelta(t, 1.05, got, 1e-9)

	// EASY expects 100%, so a correct answer there moves nothing.
	got = svc.Update("maria", "aritmetica", 1.0, models.DifficultyEasy)
	assert.InDelta(t, 1.0, got, 1e-9)

	// EXPERT expects 25%; failing costs (0-0.25)*0.2 = -0.05.
	got = svc.Update("maria", "aritmetica", 0.0, models.DifficultyExpert)
	assert.InDelta(t, 0.95, got, 1e-9)
}

func TestProficiency_LevelBounds(t *testing.T) {
	svc, _ := newTestProficiency(t)
	require.NoError(t, svc.BeginUser(context.Background(), "maria"))

	for i := 0; i < 100; i++ {
		level := svc.Update("maria", "algebra", 0.0, models.DifficultyEasy)
		assert.GreaterOrEqual(t, level, models.ProficiencyMin)
	}
	assert.InDelta(t, models.ProficiencyMin, svc.Get("maria", "algebra"), 1e-9)

	for i := 0; i < 200; i++ {
		level := svc.Update("maria", "algebra", 1.0, models.DifficultyExpert)
		assert.LessOrEqual(t, level, models.ProficiencyMax)
	}
	assert.InDelta(t, models.ProficiencyMax, svc.Get("maria", "algebra"), 1e-9)
}

func TestProficiency_OverlappingSessionsKeepUnflushedUpdates(t *testing.T) {
	svc, store := newTestProficiency(t)
	ctx := context.Background()
	require.NoError(t, svc.BeginUser(ctx, "maria"))

	// First session updates a level but has not flushed yet.
	svc.Update("maria", "algebra", 1.0, models.DifficultyMedium)

	// A second session for the same user must not reload the stale stored
	// levels over the in-flight ones.
	require.NoError(t, svc.BeginUser(ctx, "maria"))
	assert.InDelta(t, 1.05, svc.Get("maria", "algebra"), 1e-9)

	// The update survives through to the flush.
	require.NoError(t, svc.Flush(ctx, "maria"))
	saved, err := store.Load(ctx, "maria")
	require.NoError(t, err)
	assert.InDelta(t, 1.05, saved["algebra"], 1e-9)
}

func TestProficiency_FlushPersistsThroughStore(t *testing.T) {
	svc, store := newTestProficiency(t)
	ctx := context.Background()
	require.NoError(t, svc.BeginUser(ctx, "maria"))

	svc.Update("maria", "algebra", 1.0, models.DifficultyMedium)
	require.NoError(t, svc.Flush(ctx, "maria"))

	saved, err := store.Load(ctx, "maria")
	require.NoError(t, err)
	assert.InDelta(t, 1.05, saved["algebra"], 1e-9)

	// A fresh service instance sees the persisted levels, not defaults.
	svc2 := NewProficiencyService(store, testLogger(), rand.New(rand.NewSource(2)))
	require.NoError(t, svc2.BeginUser(ctx, "maria"))
	assert.InDelta(t, 1.05, svc2.Get("maria", "algebra"), 1e-9)
}

func TestProficiency_RecommendedLesson(t *testing.T) {
	svc, _ := newTestProficiency(t)
	ctx := context.Background()
	require.NoError(t, svc.BeginUser(ctx, "maria"))

	// Push geometry down so it is unambiguously the weakest topic.
	for i := 0; i < 10; i++ {
		svc.Update("maria", "geometria", 0.0, models.DifficultyEasy)
	}

	lesson, err := svc.RecommendedLesson(ctx, "maria")
	require.NoError(t, err)
	require.NotNil(t, lesson)
	assert.Equal(t, "geometria", lesson.Topic)
	// Level is at the floor (0.5), so only difficulty ≤ 1.5 qualifies.
	assert.Equal(t, 1, lesson.Difficulty)
}
