package dto

// GradeSubmissionRequest carries the instructor's grading decision. Bonus
// points and deductions are optional adjustments applied before the late
// penalty.
type GradeSubmissionRequest struct {
	RawScore    float64 `json:"raw_score" validate:"gte=0"`
	BonusPoints float64 `json:"bonus_points" validate:"gte=0"`
	Deductions  float64 `json:"deductions" validate:"gte=0"`
	Feedback    string  `json:"feedback" validate:"omitempty,max=5000"`
}
