package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skor-go-api/internal/models"
	"github.com/noah-isme/skor-go-api/internal/repository"
)

type fakeStudentRepo struct {
	students []models.Student
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	for _, student := range f.students {
		if student.ID == id {
			return student, nil
		}
	}
	return models.Student{}, nil
}

func (f *fakeStudentRepo) ListByClass(ctx context.Context, classID uint) ([]models.Student, error) {
	return f.students, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	f.students = append(f.students, *student)
	return nil
}

type fakeGradedSubmissionRepo struct {
	fakeSubmissionRepo
	submissions []models.Submission
}

func (f *fakeGradedSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	return f.submissions, nil
}

type fakeAttendanceRepo struct {
	summaries []repository.AttendanceSummary
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return nil
}

func (f *fakeAttendanceRepo) SummarizeByClass(ctx context.Context, classID uint) ([]repository.AttendanceSummary, error) {
	return f.summaries, nil
}

type fakeLeaderboardRepo struct {
	entries []models.LeaderboardEntry
}

func (f *fakeLeaderboardRepo) ListByClass(ctx context.Context, classID uint) ([]models.LeaderboardEntry, error) {
	return f.entries, nil
}

func (f *fakeLeaderboardRepo) ReplaceForClass(ctx context.Context, classID uint, entries []models.LeaderboardEntry) error {
	f.entries = entries
	return nil
}

func gradedSubmission(studentID uint, final, maxScore float64, late bool) models.Submission {
	return models.Submission{
		StudentID:  studentID,
		FinalScore: &final,
		IsLate:     late,
		Status:     models.SubmissionStatusGraded,
		Assignment: models.Assignment{MaxScore: maxScore},
	}
}

func TestLeaderboardServiceRecompute(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, Name: "Alice Johnson"},
		{ID: 2, Name: "Bob Stone"},
		{ID: 3, Name: "Cara Wells"},
	}}
	submissions := &fakeGradedSubmissionRepo{submissions: []models.Submission{
		gradedSubmission(1, 90, 100, false),
		gradedSubmission(2, 90, 100, true),
		// Student 3 has no graded submissions.
	}}
	attendance := &fakeAttendanceRepo{summaries: []repository.AttendanceSummary{
		{StudentID: 1, Present: 10, Total: 10},
		{StudentID: 2, Present: 10, Total: 10},
		{StudentID: 3, Present: 5, Total: 10},
	}}
	board := &fakeLeaderboardRepo{}
	svc, err := NewLeaderboardService(students, submissions, attendance, board, nil, time.Minute, DefaultLeaderboardWeights, testLogger())
	require.NoError(t, err)

	response, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, response.Entries, 3)

	// Alice: 90% of 50 + full attendance (30) + full timeliness (20) = 95.
	require.Equal(t, uint(1), response.Entries[0].StudentID)
	require.InDelta(t, 95.0, response.Entries[0].TotalScore, 1e-9)
	require.Equal(t, 1, response.Entries[0].Rank)

	// Bob submitted late: same assignment score, no timeliness component.
	require.Equal(t, uint(2), response.Entries[1].StudentID)
	require.InDelta(t, 75.0, response.Entries[1].TotalScore, 1e-9)
	require.Equal(t, 2, response.Entries[1].Rank)

	// Cara: attendance only.
	require.Equal(t, uint(3), response.Entries[2].StudentID)
	require.InDelta(t, 15.0, response.Entries[2].TotalScore, 1e-9)
	require.Equal(t, 3, response.Entries[2].Rank)
}

func TestLeaderboardServiceRecomputeTiesShareRank(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, Name: "Alice Johnson"},
		{ID: 2, Name: "Bob Stone"},
		{ID: 3, Name: "Cara Wells"},
	}}
	submissions := &fakeGradedSubmissionRepo{submissions: []models.Submission{
		gradedSubmission(1, 90, 100, false),
		gradedSubmission(2, 90, 100, false),
		gradedSubmission(3, 80, 100, false),
	}}
	board := &fakeLeaderboardRepo{}
	svc, err := NewLeaderboardService(students, submissions, &fakeAttendanceRepo{}, board, nil, time.Minute, DefaultLeaderboardWeights, testLogger())
	require.NoError(t, err)

	response, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, response.Entries[0].Rank)
	require.Equal(t, 1, response.Entries[1].Rank)
	require.Equal(t, 3, response.Entries[2].Rank, "rank after a tie reflects strictly higher entries")
}

func TestLeaderboardServiceRecomputeEmptyClass(t *testing.T) {
	board := &fakeLeaderboardRepo{}
	svc, err := NewLeaderboardService(&fakeStudentRepo{}, &fakeGradedSubmissionRepo{}, &fakeAttendanceRepo{}, board, nil, time.Minute, DefaultLeaderboardWeights, testLogger())
	require.NoError(t, err)

	response, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, response.Entries)
}

func TestLeaderboardServiceGetUsesCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	board := &fakeLeaderboardRepo{entries: []models.LeaderboardEntry{
		{ClassID: 1, StudentID: 1, TotalScore: 42, Rank: 1, ComputedAt: time.Now(), Student: models.Student{ID: 1, Name: "Alice Johnson"}},
	}}
	svc, err := NewLeaderboardService(&fakeStudentRepo{}, &fakeGradedSubmissionRepo{}, &fakeAttendanceRepo{}, board, redisClient, time.Minute, DefaultLeaderboardWeights, testLogger())
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, first.Entries, 1)

	// Mutate the store; the cached copy should still be served.
	board.entries = nil
	second, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, second.Entries, 1)

	// Recompute invalidates and refreshes the cache.
	_, err = svc.Recompute(context.Background(), 1)
	require.NoError(t, err)
	third, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, third.Entries)
}

func TestLeaderboardServiceRejectsInvalidWeights(t *testing.T) {
	_, err := NewLeaderboardService(&fakeStudentRepo{}, &fakeGradedSubmissionRepo{}, &fakeAttendanceRepo{}, &fakeLeaderboardRepo{}, nil, time.Minute, LeaderboardWeights{}, testLogger())
	require.ErrorIs(t, err, ErrInvalidWeights)

	_, err = NewLeaderboardService(&fakeStudentRepo{}, &fakeGradedSubmissionRepo{}, &fakeAttendanceRepo{}, &fakeLeaderboardRepo{}, nil, time.Minute, LeaderboardWeights{Assignment: -1, Attendance: 2}, testLogger())
	require.ErrorIs(t, err, ErrInvalidWeights)
}
