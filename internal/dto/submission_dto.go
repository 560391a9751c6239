package dto

import (
	"time"

	"github.com/noah-isme/skor-go-api/internal/models"
)

// SubmissionCreateRequest describes the payload for handing in work.
type SubmissionCreateRequest struct {
	AssignmentID uint `json:"assignment_id" validate:"required,gt=0"`
	StudentID    uint `json:"student_id" validate:"required,gt=0"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	AssignmentID *uint   `query:"assignment_id"`
	StudentID    *uint   `query:"student_id"`
	Status       *string `query:"status" validate:"omitempty,oneof=submitted graded"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID                 uint                             `json:"id"`
	AssignmentID       uint                             `json:"assignment_id"`
	StudentID          uint                             `json:"student_id"`
	SubmittedAt        time.Time                        `json:"submitted_at"`
	IsLate             bool                             `json:"is_late"`
	HoursLate          float64                          `json:"hours_late"`
	RawScore           *float64                         `json:"raw_score"`
	BonusPoints        float64                          `json:"bonus_points"`
	Deductions         float64                          `json:"deductions"`
	LatePenaltyApplied float64                          `json:"late_penalty_applied"`
	FinalScore         *float64                         `json:"final_score"`
	Percentage         *float64                         `json:"percentage"`
	LetterGrade        string                           `json:"letter_grade"`
	Status             string                           `json:"status"`
	Feedback           string                           `json:"feedback"`
	GradedBy           *uint                            `json:"graded_by"`
	GradedAt           *time.Time                       `json:"graded_at"`
	History            []SubmissionGradeHistoryResponse `json:"history,omitempty"`
	CreatedAt          time.Time                        `json:"created_at"`
	UpdatedAt          time.Time                        `json:"updated_at"`
	Assignment         AssignmentLite                   `json:"assignment"`
	Student            StudentLite                      `json:"student"`
}

// AssignmentLite summarizes an assignment in submission responses.
type AssignmentLite struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	MaxScore float64   `json:"max_score"`
	Deadline time.Time `json:"deadline"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionGradeHistoryResponse serializes grading history entries.
type SubmissionGradeHistoryResponse struct {
	RawScore   float64   `json:"raw_score"`
	FinalScore float64   `json:"final_score"`
	Feedback   string    `json:"feedback"`
	GradedBy   uint      `json:"graded_by"`
	GradedAt   time.Time `json:"graded_at"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                 model.ID,
		AssignmentID:       model.AssignmentID,
		StudentID:          model.StudentID,
		SubmittedAt:        model.SubmittedAt,
		IsLate:             model.IsLate,
		HoursLate:          model.HoursLate,
		RawScore:           model.RawScore,
		BonusPoints:        model.BonusPoints,
		Deductions:         model.Deductions,
		LatePenaltyApplied: model.LatePenaltyApplied,
		FinalScore:         model.FinalScore,
		Percentage:         model.Percentage,
		LetterGrade:        model.LetterGrade,
		Status:             model.Status,
		Feedback:           model.Feedback,
		GradedBy:           model.GradedBy,
		GradedAt:           model.GradedAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
		Assignment: AssignmentLite{
			ID:       model.Assignment.ID,
			Title:    model.Assignment.Title,
			MaxScore: model.Assignment.MaxScore,
			Deadline: model.Assignment.Deadline,
		},
		Student: StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		},
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(items []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewSubmissionResponse(item))
	}
	return responses
}

// NewSubmissionGradeHistoryResponseSlice converts history rows into DTOs.
func NewSubmissionGradeHistoryResponseSlice(items []models.SubmissionGradeHistory) []SubmissionGradeHistoryResponse {
	responses := make([]SubmissionGradeHistoryResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, SubmissionGradeHistoryResponse{
			RawScore:   item.RawScore,
			FinalScore: item.FinalScore,
			Feedback:   item.Feedback,
			GradedBy:   item.GradedBy,
			GradedAt:   item.GradedAt,
		})
	}
	return responses
}
