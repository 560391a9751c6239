package models

import "time"

// Submission is a student's answer to an assignment. Lateness is stamped
// once at submission time; the remaining derived fields are written by the
// grading pipeline and never computed inside the model.
type Submission struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	AssignmentID       uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	StudentID          uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	SubmittedAt        time.Time  `gorm:"not null" json:"submitted_at"`
	IsLate             bool       `gorm:"not null;default:false" json:"is_late"`
	HoursLate          float64    `gorm:"not null;default:0" json:"hours_late"`
	RawScore           *float64   `json:"raw_score"`
	BonusPoints        float64    `gorm:"not null;default:0" json:"bonus_points"`
	Deductions         float64    `gorm:"not null;default:0" json:"deductions"`
	LatePenaltyApplied float64    `gorm:"not null;default:0" json:"late_penalty_applied"`
	FinalScore         *float64   `json:"final_score"`
	Percentage         *float64   `json:"percentage"`
	LetterGrade        string     `gorm:"size:2" json:"letter_grade"`
	Status             string     `gorm:"size:32;not null" json:"status"`
	Feedback           string     `gorm:"type:text" json:"feedback"`
	GradedBy           *uint      `json:"graded_by"`
	GradedAt           *time.Time `json:"graded_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Assignment         Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student            Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

const (
	// SubmissionStatusSubmitted indicates the submission has been received but not graded.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusGraded indicates the submission has been evaluated.
	SubmissionStatusGraded = "graded"
)

// IsGraded reports whether the submission carries a final score.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// SubmissionGradeHistory records every grading action applied to a
// submission, including re-grades.
type SubmissionGradeHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"index;not null" json:"submission_id"`
	RawScore     float64   `gorm:"not null" json:"raw_score"`
	FinalScore   float64   `gorm:"not null" json:"final_score"`
	Feedback     string    `gorm:"type:text" json:"feedback"`
	GradedBy     uint      `gorm:"not null" json:"graded_by"`
	GradedAt     time.Time `gorm:"not null" json:"graded_at"`
}
