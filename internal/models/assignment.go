package models

import (
	"time"

	"github.com/noah-isme/skor-go-api/internal/scoring"
)

// Assignment is a gradable unit of work with a deadline and an explicit
// late-penalty configuration. Policy options are typed columns rather than
// a settings blob so only fields the grading pipeline actually reads
// exist.
type Assignment struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	ClassID             uint       `gorm:"index;not null" json:"class_id"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	MaxScore            float64    `gorm:"not null;default:100" json:"max_score"`
	Deadline            time.Time  `gorm:"not null" json:"deadline"`
	StartDate           *time.Time `json:"start_date"`
	PenaltyPolicy       string     `gorm:"size:16;not null;default:tiered" json:"penalty_policy"`
	AllowLateSubmission bool       `gorm:"not null;default:false" json:"allow_late_submission"`
	LatePenaltyRate     float64    `gorm:"not null;default:0" json:"late_penalty_rate"`
	MaxLateHours        float64    `gorm:"not null;default:0" json:"max_late_hours"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Submissions         []Submission
}

// LatePolicy builds the scoring policy configured on the assignment.
func (a Assignment) LatePolicy() scoring.LatePolicy {
	return scoring.LatePolicy{
		Kind:               scoring.PolicyKind(a.PenaltyPolicy),
		AllowLate:          a.AllowLateSubmission,
		RatePercentPerHour: a.LatePenaltyRate,
		MaxLateHours:       a.MaxLateHours,
	}
}

// IsOpen reports whether submissions are accepted at the given time. An
// assignment without a start date opens immediately.
func (a Assignment) IsOpen(reference time.Time) bool {
	return a.StartDate == nil || !reference.Before(*a.StartDate)
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.Deadline)
}
