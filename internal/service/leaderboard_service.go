package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/skor-go-api/internal/dto"
	"github.com/noah-isme/skor-go-api/internal/models"
	"github.com/noah-isme/skor-go-api/internal/observability"
	"github.com/noah-isme/skor-go-api/internal/repository"
	"github.com/noah-isme/skor-go-api/internal/scoring"
)

// ErrInvalidWeights indicates leaderboard weights that do not describe a
// meaningful split.
var ErrInvalidWeights = errors.New("leaderboard weights must be non-negative and sum to a positive total")

var leaderboardTracer trace.Tracer = otel.Tracer("github.com/noah-isme/skor-go-api/internal/service/leaderboard")

// LeaderboardWeights expresses the composite score split. Each component
// contributes its ratio (0..1) times its weight, so the total score ranges
// over [0, sum of weights].
type LeaderboardWeights struct {
	Assignment float64
	Attendance float64
	Timeliness float64
}

// DefaultLeaderboardWeights mirrors the product's standard 50/30/20 split.
var DefaultLeaderboardWeights = LeaderboardWeights{Assignment: 50, Attendance: 30, Timeliness: 20}

// Validate reports whether the weights are usable.
func (w LeaderboardWeights) Validate() error {
	if w.Assignment < 0 || w.Attendance < 0 || w.Timeliness < 0 {
		return ErrInvalidWeights
	}
	if w.Assignment+w.Attendance+w.Timeliness <= 0 {
		return ErrInvalidWeights
	}
	return nil
}

// LeaderboardService owns recomputation timing and persistence of ranked
// class leaderboards; the ranking math itself stays in the scoring package.
type LeaderboardService interface {
	Get(ctx context.Context, classID uint) (dto.LeaderboardResponse, error)
	Recompute(ctx context.Context, classID uint) (dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	students    repository.StudentRepository
	submissions repository.SubmissionRepository
	attendance  repository.AttendanceRepository
	leaderboard repository.LeaderboardRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	weights     LeaderboardWeights
	logger      zerolog.Logger
	now         func() time.Time
}

// NewLeaderboardService constructs the leaderboard service.
func NewLeaderboardService(
	students repository.StudentRepository,
	submissions repository.SubmissionRepository,
	attendance repository.AttendanceRepository,
	leaderboard repository.LeaderboardRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	weights LeaderboardWeights,
	logger zerolog.Logger,
) (LeaderboardService, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	return &leaderboardService{
		students:    students,
		submissions: submissions,
		attendance:  attendance,
		leaderboard: leaderboard,
		cache:       cache,
		cacheTTL:    cacheTTL,
		weights:     weights,
		logger:      logger.With().Str("component", "leaderboard_service").Logger(),
		now:         time.Now,
	}, nil
}

func leaderboardCacheKey(classID uint) string {
	return fmt.Sprintf("leaderboard:class:%d", classID)
}

func (s *leaderboardService) Get(ctx context.Context, classID uint) (dto.LeaderboardResponse, error) {
	cacheKey := leaderboardCacheKey(classID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.LeaderboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("class_id", classID).Msg("leaderboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	entries, err := s.leaderboard.ListByClass(ctx, classID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	response := dto.NewLeaderboardResponse(classID, entries)
	s.storeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *leaderboardService) Recompute(ctx context.Context, classID uint) (dto.LeaderboardResponse, error) {
	ctx, span := leaderboardTracer.Start(ctx, "leaderboard.recompute")
	span.SetAttributes(attribute.Int64("leaderboard.class_id", int64(classID)))
	defer span.End()

	entries, err := s.buildEntries(ctx, classID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation_failed")
		return dto.LeaderboardResponse{}, err
	}

	ranked := scoring.Rank(entries)

	computedAt := s.now()
	rows := make([]models.LeaderboardEntry, 0, len(ranked))
	for _, entry := range ranked {
		rows = append(rows, models.LeaderboardEntry{
			ClassID:               classID,
			StudentID:             entry.UserID,
			AssignmentScore:       entry.AssignmentScore,
			AttendanceScore:       entry.AttendanceScore,
			TimelySubmissionScore: entry.TimelySubmissionScore,
			TotalScore:            entry.TotalScore,
			Rank:                  entry.Rank,
			ComputedAt:            computedAt,
		})
	}

	if err := s.leaderboard.ReplaceForClass(ctx, classID, rows); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist_failed")
		return dto.LeaderboardResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, leaderboardCacheKey(classID)).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
		}
	}

	observability.RecomputeRuns().Inc()
	observability.RecomputeEntries().Set(float64(len(rows)))

	s.logger.Info().
		Uint("class_id", classID).
		Int("entries", len(rows)).
		Msg("leaderboard recomputed")
	span.SetAttributes(attribute.Int("leaderboard.entries", len(rows)))

	persisted, err := s.leaderboard.ListByClass(ctx, classID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	response := dto.NewLeaderboardResponse(classID, persisted)
	s.storeCache(ctx, leaderboardCacheKey(classID), response)

	return response, nil
}

// buildEntries derives the weighted component scores for every active
// student in the class. Students without submissions or attendance simply
// contribute zero components.
func (s *leaderboardService) buildEntries(ctx context.Context, classID uint) ([]scoring.Entry, error) {
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	graded := models.SubmissionStatusGraded
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{ClassID: &classID, Status: &graded})
	if err != nil {
		return nil, err
	}

	summaries, err := s.attendance.SummarizeByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	type scoreAccumulator struct {
		earned   float64
		possible float64
		onTime   int
		total    int
	}
	scores := map[uint]*scoreAccumulator{}
	for _, submission := range submissions {
		if submission.FinalScore == nil || submission.Assignment.MaxScore <= 0 {
			continue
		}
		acc := scores[submission.StudentID]
		if acc == nil {
			acc = &scoreAccumulator{}
			scores[submission.StudentID] = acc
		}
		acc.earned += *submission.FinalScore
		acc.possible += submission.Assignment.MaxScore
		acc.total++
		if !submission.IsLate {
			acc.onTime++
		}
	}

	attendanceByStudent := map[uint]repository.AttendanceSummary{}
	for _, summary := range summaries {
		attendanceByStudent[summary.StudentID] = summary
	}

	entries := make([]scoring.Entry, 0, len(students))
	for _, student := range students {
		entry := scoring.Entry{UserID: student.ID}

		if acc := scores[student.ID]; acc != nil {
			if acc.possible > 0 {
				entry.AssignmentScore = acc.earned / acc.possible * s.weights.Assignment
			}
			if acc.total > 0 {
				entry.TimelySubmissionScore = float64(acc.onTime) / float64(acc.total) * s.weights.Timeliness
			}
		}

		if summary, ok := attendanceByStudent[student.ID]; ok && summary.Total > 0 {
			entry.AttendanceScore = float64(summary.Present) / float64(summary.Total) * s.weights.Attendance
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *leaderboardService) storeCache(ctx context.Context, key string, response dto.LeaderboardResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
	}
}
