package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skor-go-api/internal/dto"
	"github.com/noah-isme/skor-go-api/internal/scoring"
)

func TestAssignmentServiceCreateTiered(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAssignmentService(repo, validate, testLogger())

	result, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		ClassID:       1,
		Title:         "Final Essay",
		MaxScore:      100,
		Deadline:      time.Now().Add(7 * 24 * time.Hour),
		PenaltyPolicy: string(scoring.PolicyTiered),
	})
	require.NoError(t, err)
	require.Equal(t, string(scoring.PolicyTiered), result.PenaltyPolicy)
}

func TestAssignmentServiceCreateRejectsLinearWithoutRate(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAssignmentService(repo, validate, testLogger())

	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		ClassID:             1,
		Title:               "Lab Report",
		MaxScore:            100,
		Deadline:            time.Now().Add(24 * time.Hour),
		PenaltyPolicy:       string(scoring.PolicyLinear),
		AllowLateSubmission: true,
	})
	require.ErrorIs(t, err, scoring.ErrPolicyMismatch)
}

func TestAssignmentServiceCreateRejectsStartAfterDeadline(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAssignmentService(repo, validate, testLogger())

	deadline := time.Now().Add(24 * time.Hour)
	start := deadline.Add(time.Hour)
	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		ClassID:       1,
		Title:         "Quiz",
		MaxScore:      50,
		Deadline:      deadline,
		StartDate:     &start,
		PenaltyPolicy: string(scoring.PolicyTiered),
	})
	require.Error(t, err)
}

func TestAssignmentServiceCreateValidatesPayload(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAssignmentService(repo, validate, testLogger())

	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		ClassID:       1,
		Title:         "Quiz",
		MaxScore:      0,
		Deadline:      time.Now().Add(time.Hour),
		PenaltyPolicy: string(scoring.PolicyTiered),
	})
	require.Error(t, err, "zero max score must be rejected")
}
