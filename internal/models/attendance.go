package models

import "time"

// AttendanceRecord marks a student's presence for one class day. The
// leaderboard derives its attendance component from the present/total
// ratio, never from a stored counter.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"not null;uniqueIndex:idx_attendance_class_student_date" json:"class_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_attendance_class_student_date" json:"student_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_class_student_date" json:"date"`
	Present   bool      `gorm:"not null;default:false" json:"present"`
	CreatedAt time.Time `json:"created_at"`
}
