package models

import "time"

// LeaderboardEntry is the persisted ranking row for one student within a
// class scope. Entries are replaced wholesale on every recompute; nothing
// here is manually incremented.
type LeaderboardEntry struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	ClassID               uint      `gorm:"not null;uniqueIndex:idx_leaderboard_class_student" json:"class_id"`
	StudentID             uint      `gorm:"not null;uniqueIndex:idx_leaderboard_class_student" json:"student_id"`
	AssignmentScore       float64   `gorm:"not null;default:0" json:"assignment_score"`
	AttendanceScore       float64   `gorm:"not null;default:0" json:"attendance_score"`
	TimelySubmissionScore float64   `gorm:"not null;default:0" json:"timely_submission_score"`
	TotalScore            float64   `gorm:"not null;default:0" json:"total_score"`
	Rank                  int       `gorm:"not null;default:0" json:"rank"`
	ComputedAt            time.Time `gorm:"not null" json:"computed_at"`
	Student               Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}
