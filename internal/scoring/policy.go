package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMaxScore indicates a non-positive maximum score.
var ErrInvalidMaxScore = errors.New("max score must be positive")

// ErrPolicyMismatch indicates a late policy whose configuration does not
// match its kind, e.g. a linear policy without a penalty rate.
var ErrPolicyMismatch = errors.New("late policy configuration mismatch")

// PolicyKind names a late-penalty strategy.
type PolicyKind string

const (
	// PolicyTiered deducts a fixed bracket of the maximum score per late
	// window: 10% within 24 hours, 25% within 48 hours, everything after.
	PolicyTiered PolicyKind = "tiered"
	// PolicyLinear deducts a configured percentage of the maximum score
	// per late hour, capped at full forfeiture.
	PolicyLinear PolicyKind = "linear"
)

// LatePolicy configures how lateness converts into a point deduction.
type LatePolicy struct {
	Kind PolicyKind
	// AllowLate gates the linear policy; when false no penalty applies
	// because the caller rejects late submissions outright.
	AllowLate bool
	// RatePercentPerHour is the linear deduction expressed as a percent of
	// the maximum score per late hour.
	RatePercentPerHour float64
	// MaxLateHours is the cutoff after which a submission forfeits the
	// full score. Zero means no cutoff.
	MaxLateHours float64
}

// Validate reports whether the policy configuration is coherent.
func (p LatePolicy) Validate() error {
	switch p.Kind {
	case PolicyTiered:
		return nil
	case PolicyLinear:
		if p.AllowLate && p.RatePercentPerHour <= 0 {
			return fmt.Errorf("%w: linear policy requires a positive rate", ErrPolicyMismatch)
		}
		if p.RatePercentPerHour < 0 || p.MaxLateHours < 0 {
			return fmt.Errorf("%w: negative policy parameter", ErrPolicyMismatch)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown policy kind %q", ErrPolicyMismatch, p.Kind)
	}
}

// LatePenalty converts hours of lateness into a point deduction under the
// given policy. Negative lateness is treated as on time. The returned
// penalty never exceeds maxScore.
func LatePenalty(hoursLate, maxScore float64, policy LatePolicy) (float64, error) {
	if maxScore <= 0 {
		return 0, ErrInvalidMaxScore
	}
	if err := policy.Validate(); err != nil {
		return 0, err
	}
	if hoursLate <= 0 {
		return 0, nil
	}

	switch policy.Kind {
	case PolicyTiered:
		return tieredPenalty(hoursLate, maxScore), nil
	case PolicyLinear:
		return linearPenalty(hoursLate, maxScore, policy), nil
	default:
		return 0, fmt.Errorf("%w: unknown policy kind %q", ErrPolicyMismatch, policy.Kind)
	}
}

func tieredPenalty(hoursLate, maxScore float64) float64 {
	switch {
	case hoursLate <= 24:
		return math.Floor(maxScore * 0.10)
	case hoursLate <= 48:
		return math.Floor(maxScore * 0.25)
	default:
		return maxScore
	}
}

func linearPenalty(hoursLate, maxScore float64, policy LatePolicy) float64 {
	if !policy.AllowLate {
		return 0
	}
	if policy.MaxLateHours > 0 && hoursLate > policy.MaxLateHours {
		return maxScore
	}

	penalty := policy.RatePercentPerHour / 100 * maxScore * hoursLate
	return math.Min(penalty, maxScore)
}
