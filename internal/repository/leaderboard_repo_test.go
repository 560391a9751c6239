package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skor-go-api/internal/models"
)

func TestLeaderboardRepositoryReplaceForClass(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLeaderboardRepository(db)

	alice := models.Student{Name: "Alice Johnson", Email: "alice@example.com", ClassID: 1}
	bob := models.Student{Name: "Bob Stone", Email: "bob@example.com", ClassID: 1}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	now := time.Now()
	stale := []models.LeaderboardEntry{
		{ClassID: 1, StudentID: alice.ID, TotalScore: 10, Rank: 1, ComputedAt: now.Add(-time.Hour)},
	}
	require.NoError(t, repo.ReplaceForClass(context.Background(), 1, stale))

	fresh := []models.LeaderboardEntry{
		{ClassID: 1, StudentID: bob.ID, TotalScore: 90, Rank: 1, ComputedAt: now},
		{ClassID: 1, StudentID: alice.ID, TotalScore: 80, Rank: 2, ComputedAt: now},
	}
	require.NoError(t, repo.ReplaceForClass(context.Background(), 1, fresh))

	entries, err := repo.ListByClass(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2, "expected stale scope fully replaced")
	require.Equal(t, bob.ID, entries[0].StudentID)
	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, "Bob Stone", entries[0].Student.Name, "expected student preloaded")
}

func TestLeaderboardRepositoryReplaceForClassEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLeaderboardRepository(db)

	require.NoError(t, repo.ReplaceForClass(context.Background(), 3, nil))

	entries, err := repo.ListByClass(context.Background(), 3)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestAttendanceRepositorySummarizeByClass(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		{ClassID: 1, StudentID: 1, Date: day, Present: true},
		{ClassID: 1, StudentID: 1, Date: day.AddDate(0, 0, 1), Present: false},
		{ClassID: 1, StudentID: 2, Date: day, Present: true},
		{ClassID: 2, StudentID: 3, Date: day, Present: true},
	}
	for i := range records {
		require.NoError(t, repo.Create(context.Background(), &records[i]))
	}

	summaries, err := repo.SummarizeByClass(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byStudent := map[uint]AttendanceSummary{}
	for _, summary := range summaries {
		byStudent[summary.StudentID] = summary
	}
	require.Equal(t, int64(1), byStudent[1].Present)
	require.Equal(t, int64(2), byStudent[1].Total)
	require.Equal(t, int64(1), byStudent[2].Present)
	require.Equal(t, int64(1), byStudent[2].Total)
}
