package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/skor-go-api/internal/dto"
	"github.com/noah-isme/skor-go-api/internal/models"
	"github.com/noah-isme/skor-go-api/internal/repository"
	"github.com/noah-isme/skor-go-api/internal/scoring"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrAssignmentNotOpen indicates the assignment start date is in the future.
var ErrAssignmentNotOpen = errors.New("assignment is not open for submissions yet")

// ErrLateNotAllowed indicates the deadline passed and the assignment does
// not accept late submissions.
var ErrLateNotAllowed = errors.New("assignment does not accept late submissions")

// ErrDuplicateSubmission indicates the student already submitted for this
// assignment.
var ErrDuplicateSubmission = errors.New("student already submitted for this assignment")

// SubmissionService orchestrates submission workflows. Lateness is
// evaluated exactly once, at submission time, and never re-derived.
type SubmissionService interface {
	List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assignmentRepo repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assignments: assignmentRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.SubmissionFilter{
		AssignmentID: filter.AssignmentID,
		StudentID:    filter.StudentID,
		Status:       filter.Status,
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	response := dto.NewSubmissionResponse(submission)

	history, err := s.submissions.ListHistory(ctx, submission.ID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to load grading history")
	} else {
		response.History = dto.NewSubmissionGradeHistoryResponseSlice(history)
	}

	return response, nil
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	now := s.now()
	if !assignment.IsOpen(now) {
		return dto.SubmissionResponse{}, ErrAssignmentNotOpen
	}

	lateness := scoring.EvaluateLateness(now, assignment.Deadline)
	if lateness.IsLate && !acceptsLate(assignment) {
		return dto.SubmissionResponse{}, ErrLateNotAllowed
	}

	if _, err := s.submissions.GetByAssignmentAndStudent(ctx, payload.AssignmentID, payload.StudentID); err == nil {
		return dto.SubmissionResponse{}, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		AssignmentID: payload.AssignmentID,
		StudentID:    payload.StudentID,
		SubmittedAt:  now,
		IsLate:       lateness.IsLate,
		HoursLate:    lateness.HoursLate,
		Status:       models.SubmissionStatusSubmitted,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	// Reload with associations
	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Bool("is_late", created.IsLate).
		Msg("submission created")

	return dto.NewSubmissionResponse(created), nil
}

// acceptsLate reports whether a late submission is still taken in. The
// tiered policy always accepts and penalizes; the linear policy accepts
// only when the assignment allows late work.
func acceptsLate(assignment models.Assignment) bool {
	if scoring.PolicyKind(assignment.PenaltyPolicy) == scoring.PolicyLinear {
		return assignment.AllowLateSubmission
	}
	return true
}
