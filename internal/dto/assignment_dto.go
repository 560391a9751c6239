package dto

import (
	"time"

	"github.com/noah-isme/skor-go-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	ClassID             uint       `json:"class_id" validate:"required,gt=0"`
	Title               string     `json:"title" validate:"required,min=3,max=255"`
	Description         string     `json:"description" validate:"omitempty,max=5000"`
	MaxScore            float64    `json:"max_score" validate:"required,gt=0"`
	Deadline            time.Time  `json:"deadline" validate:"required"`
	StartDate           *time.Time `json:"start_date"`
	PenaltyPolicy       string     `json:"penalty_policy" validate:"required,oneof=tiered linear"`
	AllowLateSubmission bool       `json:"allow_late_submission"`
	LatePenaltyRate     float64    `json:"late_penalty_rate" validate:"gte=0,lte=100"`
	MaxLateHours        float64    `json:"max_late_hours" validate:"gte=0"`
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	ClassID *uint `query:"class_id"`
}

// AssignmentResponse is returned to API clients when viewing assignments.
type AssignmentResponse struct {
	ID                  uint       `json:"id"`
	ClassID             uint       `json:"class_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	MaxScore            float64    `json:"max_score"`
	Deadline            time.Time  `json:"deadline"`
	StartDate           *time.Time `json:"start_date"`
	PenaltyPolicy       string     `json:"penalty_policy"`
	AllowLateSubmission bool       `json:"allow_late_submission"`
	LatePenaltyRate     float64    `json:"late_penalty_rate"`
	MaxLateHours        float64    `json:"max_late_hours"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                  model.ID,
		ClassID:             model.ClassID,
		Title:               model.Title,
		Description:         model.Description,
		MaxScore:            model.MaxScore,
		Deadline:            model.Deadline,
		StartDate:           model.StartDate,
		PenaltyPolicy:       model.PenaltyPolicy,
		AllowLateSubmission: model.AllowLateSubmission,
		LatePenaltyRate:     model.LatePenaltyRate,
		MaxLateHours:        model.MaxLateHours,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(items []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewAssignmentResponse(item))
	}
	return responses
}
