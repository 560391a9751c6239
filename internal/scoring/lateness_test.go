package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEvaluateLatenessOnTime(t *testing.T) {
	deadline := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	result := EvaluateLateness(deadline.Add(-2*time.Hour), deadline)
	require.False(t, result.IsLate)
	require.Zero(t, result.HoursLate)
}

func TestEvaluateLatenessExactDeadlineIsOnTime(t *testing.T) {
	deadline := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	result := EvaluateLateness(deadline, deadline)
	require.False(t, result.IsLate)
	require.Zero(t, result.HoursLate)
}

func TestEvaluateLatenessLate(t *testing.T) {
	deadline := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	result := EvaluateLateness(deadline.Add(10*time.Hour), deadline)
	require.True(t, result.IsLate)
	require.InDelta(t, 10.0, result.HoursLate, 1e-9)

	result = EvaluateLateness(deadline.Add(90*time.Minute), deadline)
	require.True(t, result.IsLate)
	require.InDelta(t, 1.5, result.HoursLate, 1e-9)
}
