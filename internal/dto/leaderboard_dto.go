package dto

import (
	"time"

	"github.com/noah-isme/skor-go-api/internal/models"
)

// LeaderboardEntryResponse is one ranked row within a class scope.
type LeaderboardEntryResponse struct {
	StudentID             uint    `json:"student_id"`
	StudentName           string  `json:"student_name"`
	AssignmentScore       float64 `json:"assignment_score"`
	AttendanceScore       float64 `json:"attendance_score"`
	TimelySubmissionScore float64 `json:"timely_submission_score"`
	TotalScore            float64 `json:"total_score"`
	Rank                  int     `json:"rank"`
}

// LeaderboardResponse is the full ranked board for a class.
type LeaderboardResponse struct {
	ClassID    uint                       `json:"class_id"`
	ComputedAt time.Time                  `json:"computed_at"`
	Entries    []LeaderboardEntryResponse `json:"entries"`
}

// NewLeaderboardResponse converts persisted leaderboard rows into a DTO.
func NewLeaderboardResponse(classID uint, entries []models.LeaderboardEntry) LeaderboardResponse {
	response := LeaderboardResponse{
		ClassID: classID,
		Entries: make([]LeaderboardEntryResponse, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.ComputedAt.After(response.ComputedAt) {
			response.ComputedAt = entry.ComputedAt
		}
		response.Entries = append(response.Entries, LeaderboardEntryResponse{
			StudentID:             entry.StudentID,
			StudentName:           entry.Student.Name,
			AssignmentScore:       entry.AssignmentScore,
			AttendanceScore:       entry.AttendanceScore,
			TimelySubmissionScore: entry.TimelySubmissionScore,
			TotalScore:            entry.TotalScore,
			Rank:                  entry.Rank,
		})
	}

	return response
}
