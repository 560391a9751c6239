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
)

// ErrAssignmentNotFound indicates an assignment could not be found.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrInvalidSchedule indicates an assignment whose start date does not
// precede its deadline.
var ErrInvalidSchedule = errors.New("start date must precede the deadline")

// AssignmentService orchestrates assignment workflows.
type AssignmentService interface {
	List(ctx context.Context, filter dto.AssignmentFilter) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(repo repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: repo,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) List(ctx context.Context, filter dto.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{ClassID: filter.ClassID})
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if payload.StartDate != nil && !payload.StartDate.Before(payload.Deadline) {
		return dto.AssignmentResponse{}, ErrInvalidSchedule
	}

	assignment := models.Assignment{
		ClassID:             payload.ClassID,
		Title:               payload.Title,
		Description:         payload.Description,
		MaxScore:            payload.MaxScore,
		Deadline:            payload.Deadline.UTC(),
		StartDate:           normalizeStartDate(payload.StartDate),
		PenaltyPolicy:       payload.PenaltyPolicy,
		AllowLateSubmission: payload.AllowLateSubmission,
		LatePenaltyRate:     payload.LatePenaltyRate,
		MaxLateHours:        payload.MaxLateHours,
	}

	// Reject incoherent policy configs at write time so grading never has
	// to recover from them.
	if err := assignment.LatePolicy().Validate(); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Str("penalty_policy", assignment.PenaltyPolicy).
		Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func normalizeStartDate(start *time.Time) *time.Time {
	if start == nil {
		return nil
	}
	normalized := start.UTC()
	return &normalized
}
