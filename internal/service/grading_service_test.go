package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/skor-go-api/internal/dto"
	"github.com/noah-isme/skor-go-api/internal/models"
	"github.com/noah-isme/skor-go-api/internal/repository"
	"github.com/noah-isme/skor-go-api/internal/scoring"
)

type fakeSubmissionRepo struct {
	submission   models.Submission
	missing      bool
	updateCalls  int
	historyCalls int
	history      []models.SubmissionGradeHistory
}

func (f *fakeSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	return []models.Submission{f.submission}, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	if f.missing {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return f.submission, nil
}

func (f *fakeSubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = 1
	f.submission = *submission
	return nil
}

func (f *fakeSubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	f.updateCalls++
	f.submission = *submission
	return nil
}

func (f *fakeSubmissionRepo) CreateHistory(ctx context.Context, history *models.SubmissionGradeHistory) error {
	f.historyCalls++
	f.history = append(f.history, *history)
	return nil
}

func (f *fakeSubmissionRepo) ListHistory(ctx context.Context, submissionID uint) ([]models.SubmissionGradeHistory, error) {
	return f.history, nil
}

type fakeRecomputePublisher struct {
	classIDs []uint
}

func (f *fakeRecomputePublisher) PublishRecompute(ctx context.Context, classID uint) error {
	f.classIDs = append(f.classIDs, classID)
	return nil
}

func tieredAssignment() models.Assignment {
	return models.Assignment{
		ID:            2,
		ClassID:       7,
		Title:         "Essay",
		MaxScore:      100,
		Deadline:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PenaltyPolicy: string(scoring.PolicyTiered),
	}
}

func TestGradingServiceAppliesTieredPenalty(t *testing.T) {
	repo := &fakeSubmissionRepo{
		submission: models.Submission{
			ID:           1,
			AssignmentID: 2,
			StudentID:    3,
			IsLate:       true,
			HoursLate:    10,
			Status:       models.SubmissionStatusSubmitted,
			Assignment:   tieredAssignment(),
		},
	}
	publisher := &fakeRecomputePublisher{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, publisher, testLogger())

	result, err := svc.Grade(context.Background(), 1, dto.GradeSubmissionRequest{RawScore: 90, BonusPoints: 5, Feedback: "solid work"}, ActivityActor{ID: 10, Role: "teacher"})
	require.NoError(t, err)

	// 90 + 5 bonus - 10 tiered penalty (10% of 100 for <=24h).
	require.Equal(t, 85.0, *result.FinalScore)
	require.Equal(t, 10.0, result.LatePenaltyApplied)
	require.Equal(t, 85.0, *result.Percentage)
	require.Equal(t, scoring.LetterB, result.LetterGrade)
	require.Equal(t, models.SubmissionStatusGraded, result.Status)
	require.Equal(t, 1, repo.updateCalls)
	require.Equal(t, 1, repo.historyCalls)
	require.Equal(t, []uint{7}, publisher.classIDs, "expected a recompute event for the class")
}

func TestGradingServiceOnTimeNoPenalty(t *testing.T) {
	repo := &fakeSubmissionRepo{
		submission: models.Submission{
			ID:           1,
			AssignmentID: 2,
			StudentID:    3,
			Status:       models.SubmissionStatusSubmitted,
			Assignment:   tieredAssignment(),
		},
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, nil, testLogger())

	result, err := svc.Grade(context.Background(), 1, dto.GradeSubmissionRequest{RawScore: 75}, ActivityActor{ID: 10, Role: "teacher"})
	require.NoError(t, err)
	require.Zero(t, result.LatePenaltyApplied)
	require.Equal(t, 75.0, *result.FinalScore)
	require.Equal(t, scoring.LetterC, result.LetterGrade)
}

func TestGradingServiceLinearForfeiturePastCutoff(t *testing.T) {
	assignment := models.Assignment{
		ID:                  2,
		ClassID:             7,
		Title:               "Lab",
		MaxScore:            100,
		Deadline:            time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PenaltyPolicy:       string(scoring.PolicyLinear),
		AllowLateSubmission: true,
		LatePenaltyRate:     10,
		MaxLateHours:        24,
	}
	repo := &fakeSubmissionRepo{
		submission: models.Submission{
			ID:           1,
			AssignmentID: 2,
			StudentID:    3,
			IsLate:       true,
			HoursLate:    30,
			Status:       models.SubmissionStatusSubmitted,
			Assignment:   assignment,
		},
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, nil, testLogger())

	result, err := svc.Grade(context.Background(), 1, dto.GradeSubmissionRequest{RawScore: 95}, ActivityActor{ID: 10, Role: "teacher"})
	require.NoError(t, err)
	require.Equal(t, 100.0, result.LatePenaltyApplied)
	require.Zero(t, *result.FinalScore)
	require.Equal(t, scoring.LetterF, result.LetterGrade)
}

func TestGradingServiceScoreExceedsMax(t *testing.T) {
	assignment := tieredAssignment()
	assignment.MaxScore = 50
	repo := &fakeSubmissionRepo{
		submission: models.Submission{
			ID:         1,
			Status:     models.SubmissionStatusSubmitted,
			Assignment: assignment,
		},
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, nil, testLogger())

	_, err := svc.Grade(context.Background(), 1, dto.GradeSubmissionRequest{RawScore: 80}, ActivityActor{ID: 10, Role: "teacher"})
	require.ErrorIs(t, err, ErrScoreExceedsMax)
	require.Equal(t, 0, repo.updateCalls)
	require.Equal(t, 0, repo.historyCalls)
}

func TestGradingServiceNotFound(t *testing.T) {
	repo := &fakeSubmissionRepo{missing: true}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, nil, testLogger())

	_, err := svc.Grade(context.Background(), 99, dto.GradeSubmissionRequest{RawScore: 50}, ActivityActor{ID: 10, Role: "teacher"})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGradingServiceIdempotentRegrade(t *testing.T) {
	raw := 90.0
	final := 90.0
	gradedBy := uint(42)
	gradedAt := time.Now().Add(-time.Hour)
	repo := &fakeSubmissionRepo{
		submission: models.Submission{
			ID:           10,
			AssignmentID: 11,
			StudentID:    12,
			RawScore:     &raw,
			FinalScore:   &final,
			Feedback:     "Well done",
			Status:       models.SubmissionStatusGraded,
			GradedBy:     &gradedBy,
			GradedAt:     &gradedAt,
			Assignment:   tieredAssignment(),
		},
	}
	publisher := &fakeRecomputePublisher{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, publisher, testLogger())

	result, err := svc.Grade(context.Background(), 10, dto.GradeSubmissionRequest{RawScore: 90, Feedback: "Well done"}, ActivityActor{ID: gradedBy, Role: "teacher"})
	require.NoError(t, err)
	require.Equal(t, raw, *result.RawScore)
	require.Equal(t, 0, repo.updateCalls)
	require.Equal(t, 0, repo.historyCalls)
	require.Empty(t, publisher.classIDs)
}

func TestGradingServiceSanitizesFeedback(t *testing.T) {
	repo := &fakeSubmissionRepo{
		submission: models.Submission{
			ID:         1,
			Status:     models.SubmissionStatusSubmitted,
			Assignment: tieredAssignment(),
		},
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(repo, validate, nil, nil, testLogger())

	result, err := svc.Grade(context.Background(), 1, dto.GradeSubmissionRequest{RawScore: 70, Feedback: "<script>alert(1)</script>nice structure"}, ActivityActor{ID: 10, Role: "teacher"})
	require.NoError(t, err)
	require.Equal(t, "nice structure", result.Feedback)
}
