// Package scoring implements the pure computation core for grading:
// deadline evaluation, late penalties, score composition, grade
// classification and leaderboard ranking. Functions in this package hold
// no state and perform no I/O; persistence and recompute timing belong to
// the service layer.
package scoring

import "time"

// Lateness describes how a submission relates to its deadline.
type Lateness struct {
	IsLate    bool    `json:"is_late"`
	HoursLate float64 `json:"hours_late"`
}

// EvaluateLateness compares a submission timestamp against the deadline.
// Submitting exactly on the deadline is on time; only a strictly later
// timestamp counts as late.
func EvaluateLateness(submittedAt, deadline time.Time) Lateness {
	if !submittedAt.After(deadline) {
		return Lateness{}
	}

	return Lateness{
		IsLate:    true,
		HoursLate: submittedAt.Sub(deadline).Hours(),
	}
}
