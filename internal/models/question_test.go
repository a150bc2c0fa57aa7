package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficulty_Transitions(t *testing.T) {
	assert.Equal(t, DifficultyMedium, DifficultyEasy.Raise())
	assert.Equal(t, DifficultyExpert, DifficultyExpert.Raise())

	assert.Equal(t, DifficultyHard, DifficultyExpert.Lower())
	assert.Equal(t, DifficultyEasy, DifficultyEasy.Lower())

	// Availability escalation wraps where answer transitions clamp.
	assert.Equal(t, DifficultyMedium, DifficultyEasy.Next())
	assert.Equal(t, DifficultyEasy, DifficultyExpert.Next())
}

func TestDifficulty_Names(t *testing.T) {
	names := map[Difficulty]string{
		DifficultyEasy:   "EASY",
		DifficultyMedium: "MEDIUM",
		DifficultyHard:   "HARD",
		DifficultyExpert: "EXPERT",
	}
	for tier, name := range names {
		assert.Equal(t, name, tier.String())
		parsed, ok := ParseDifficulty(name)
		assert.True(t, ok)
		assert.Equal(t, tier, parsed)
	}

	assert.Equal(t, "UNKNOWN", Difficulty(9).String())
	_, ok := ParseDifficulty("IMPOSSIBLE")
	assert.False(t, ok)
	_, ok = ParseDifficulty("easy")
	assert.False(t, ok)
}

func TestDifficulty_Valid(t *testing.T) {
	assert.False(t, Difficulty(0).Valid())
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyExpert.Valid())
	assert.False(t, Difficulty(5).Valid())
}
