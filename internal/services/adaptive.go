package services

import (
	"github.com/asmec-academy/assessment-engine/internal/models"
)

// Ability estimate bounds for a session.
const (
	AbilityMin = 1.0
	AbilityMax = 10.0
)

// DifficultyController tracks the current tier for a session and moves it
// up or down on answers. Answer-driven transitions clamp at the extremes;
// only availability-driven escalation (Escalate) wraps.
type DifficultyController struct {
	current models.Difficulty
}

// NewDifficultyController starts at the given tier, or EASY when the tier is
// not one of the four defined values.
func NewDifficultyController(start models.Difficulty) *DifficultyController {
	if !start.Valid() {
		start = models.DifficultyEasy
	}
	return &DifficultyController{current: start}
}

func (c *DifficultyController) Current() models.Difficulty {
	return c.current
}

// RecordAnswer moves the tier one step up on a correct answer and one step
// down on an incorrect one, clamped to [EASY, EXPERT].
func (c *DifficultyController) RecordAnswer(correct bool) models.Difficulty {
	if correct {
		c.current = c.current.Raise()
	} else {
		c.current = c.current.Lower()
	}
	return c.current
}

// Escalate advances the tier because the current one has no questions for
// the chosen topic, wrapping EXPERT back to EASY so the search covers every
// tier.
func (c *DifficultyController) Escalate() models.Difficulty {
	c.current = c.current.Next()
	return c.current
}

// AbilityEstimator maintains the per-session scalar skill estimate.
//
// The update is a simplified monotone-in-difficulty analogue of item
// response scoring: a correct answer on a harder item moves the estimate up
// more, an incorrect answer on an easier item moves it down more. Failing a
// hard item costs less than failing an easy one; the asymmetry is part of
// the model.
type AbilityEstimator struct {
	ability float64
}

// NewAbilityEstimator clamps the starting level into [1.0, 10.0].
func NewAbilityEstimator(start float64) *AbilityEstimator {
	return &AbilityEstimator{ability: clampFloat(start, AbilityMin, AbilityMax)}
}

func (e *AbilityEstimator) Estimate() float64 {
	return e.ability
}

// RecordAnswer applies +0.1×tier on a correct answer and −0.1÷tier on an
// incorrect one, clamped into [1.0, 10.0].
func (e *AbilityEstimator) RecordAnswer(correct bool, tier models.Difficulty) float64 {
	var adjustment float64
	if correct {
		adjustment = 0.1 * float64(tier)
	} else {
		adjustment = -0.1 / float64(tier)
	}
	e.ability = clampFloat(e.ability+adjustment, AbilityMin, AbilityMax)
	return e.ability
}

// BaseDifficultyFor maps an ability estimate to the tier a session should
// open with, nudged one step by the learner's most recent performance ratio.
func BaseDifficultyFor(ability float64, previousPerformance float64) models.Difficulty {
	var base models.Difficulty
	switch {
	case ability < 3.0:
		base = models.DifficultyEasy
	case ability < 6.0:
		base = models.DifficultyMedium
	case ability < 9.0:
		base = models.DifficultyHard
	default:
		base = models.DifficultyExpert
	}

	if previousPerformance > 0.8 {
		return base.Raise()
	}
	if previousPerformance < 0.4 {
		return base.Lower()
	}
	return base
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
