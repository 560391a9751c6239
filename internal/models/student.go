package models

import "time"

// Student represents a learner that can submit assignments and appear on
// class leaderboards.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	ClassID   uint      `gorm:"index;not null" json:"class_id"`
	Status    string    `gorm:"size:32;not null;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// StudentStatusActive marks a student currently enrolled.
	StudentStatusActive = "active"
	// StudentStatusInactive marks a student that left the class.
	StudentStatusInactive = "inactive"
)
