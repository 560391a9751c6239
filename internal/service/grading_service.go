package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/skor-go-api/internal/dto"
	"github.com/noah-isme/skor-go-api/internal/models"
	"github.com/noah-isme/skor-go-api/internal/repository"
	"github.com/noah-isme/skor-go-api/internal/scoring"
)

// ErrScoreExceedsMax indicates a grading score surpasses the assignment max.
var ErrScoreExceedsMax = errors.New("score exceeds assignment max")

var gradingTracer trace.Tracer = otel.Tracer("github.com/noah-isme/skor-go-api/internal/service/grading")

// RecomputePublisher notifies interested parties that a class leaderboard
// needs recomputing. Implementations must be safe for concurrent use.
type RecomputePublisher interface {
	PublishRecompute(ctx context.Context, classID uint) error
}

// GradingService runs the grading pipeline: late penalty, score
// composition and grade classification, then persists the derived fields.
type GradingService interface {
	Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest, actor ActivityActor) (dto.SubmissionResponse, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	publisher   RecomputePublisher
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs the grading service.
func NewGradingService(submissions repository.SubmissionRepository, validate *validator.Validate, activity ActivityRecorder, publisher RecomputePublisher, logger zerolog.Logger) GradingService {
	return &gradingService{
		submissions: submissions,
		validator:   validate,
		activity:    activity,
		publisher:   publisher,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

func (s *gradingService) Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest, actor ActivityActor) (dto.SubmissionResponse, error) {
	ctx, span := gradingTracer.Start(ctx, "grading.grade")
	span.SetAttributes(
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.actor_id", int64(actor.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_lookup_failed")
		return dto.SubmissionResponse{}, err
	}

	maxScore := submission.Assignment.MaxScore
	if payload.RawScore > maxScore+1e-9 {
		err := ErrScoreExceedsMax
		span.RecordError(err)
		span.SetStatus(codes.Error, "score_exceeds_max")
		return dto.SubmissionResponse{}, err
	}

	feedback := strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback))

	if s.isIdempotentRegrade(submission, payload, feedback, actor) {
		span.SetAttributes(attribute.Bool("grading.idempotent", true))
		return dto.NewSubmissionResponse(submission), nil
	}

	penalty, err := scoring.LatePenalty(submission.HoursLate, maxScore, submission.Assignment.LatePolicy())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "penalty_failed")
		return dto.SubmissionResponse{}, err
	}

	finalScore, err := scoring.ComposeScore(payload.RawScore, payload.BonusPoints, payload.Deductions, penalty, maxScore)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compose_failed")
		return dto.SubmissionResponse{}, err
	}

	grade, err := scoring.Classify(finalScore, maxScore)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classify_failed")
		return dto.SubmissionResponse{}, err
	}

	rawScore := payload.RawScore
	submission.RawScore = &rawScore
	submission.BonusPoints = payload.BonusPoints
	submission.Deductions = payload.Deductions
	submission.LatePenaltyApplied = penalty
	submission.FinalScore = &finalScore
	submission.Percentage = &grade.Percentage
	submission.LetterGrade = grade.Letter
	submission.Feedback = feedback
	submission.Status = models.SubmissionStatusGraded
	gradedAt := s.now()
	submission.GradedAt = &gradedAt
	gradedBy := actor.ID
	submission.GradedBy = &gradedBy

	if err := s.submissions.Update(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_update_failed")
		return dto.SubmissionResponse{}, err
	}

	history := models.SubmissionGradeHistory{
		SubmissionID: submission.ID,
		RawScore:     payload.RawScore,
		FinalScore:   finalScore,
		Feedback:     feedback,
		GradedBy:     actor.ID,
		GradedAt:     gradedAt,
	}
	if err := s.submissions.CreateHistory(ctx, &history); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to persist grading history")
		span.RecordError(err)
	}

	if s.activity != nil {
		metadata := map[string]interface{}{
			"submission_id": submission.ID,
			"student_id":    submission.StudentID,
			"assignment_id": submission.AssignmentID,
			"raw_score":     payload.RawScore,
			"final_score":   finalScore,
			"late_penalty":  penalty,
			"letter_grade":  grade.Letter,
		}
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "submission.graded",
			EntityType: "submission",
			EntityID:   &submission.ID,
			Metadata:   metadata,
		})
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRecompute(ctx, submission.Assignment.ClassID); err != nil {
			s.logger.Warn().Err(err).
				Uint("class_id", submission.Assignment.ClassID).
				Msg("failed to publish leaderboard recompute")
			span.RecordError(err)
		}
	}

	span.SetAttributes(
		attribute.Float64("grading.final_score", finalScore),
		attribute.String("grading.letter", grade.Letter),
	)

	return dto.NewSubmissionResponse(submission), nil
}

// isIdempotentRegrade short-circuits a grading request that repeats the
// previous grading action verbatim by the same actor.
func (s *gradingService) isIdempotentRegrade(submission models.Submission, payload dto.GradeSubmissionRequest, feedback string, actor ActivityActor) bool {
	if !submission.IsGraded() || submission.RawScore == nil || submission.GradedBy == nil {
		return false
	}
	if *submission.GradedBy != actor.ID {
		return false
	}

	sameScore := math.Abs(*submission.RawScore-payload.RawScore) < 1e-6 &&
		math.Abs(submission.BonusPoints-payload.BonusPoints) < 1e-6 &&
		math.Abs(submission.Deductions-payload.Deductions) < 1e-6

	return sameScore && strings.TrimSpace(submission.Feedback) == feedback
}
