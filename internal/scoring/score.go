package scoring

import (
	"errors"
	"math"
)

// ErrNegativeInput indicates a score component below zero.
var ErrNegativeInput = errors.New("score components must not be negative")

// ComposeScore combines a raw score with bonus points, deductions and the
// late penalty into the final score, clamped to [0, maxScore]. The upper
// clamp is deliberate: bonus points never push a grade past the configured
// maximum.
func ComposeScore(rawScore, bonusPoints, deductions, latePenalty, maxScore float64) (float64, error) {
	if maxScore <= 0 {
		return 0, ErrInvalidMaxScore
	}
	if rawScore < 0 || bonusPoints < 0 || deductions < 0 || latePenalty < 0 {
		return 0, ErrNegativeInput
	}

	final := rawScore + bonusPoints - deductions - latePenalty
	return math.Min(math.Max(final, 0), maxScore), nil
}
