package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skor-go-api/internal/models"
)

// AttendanceSummary aggregates presence counts for one student.
type AttendanceSummary struct {
	StudentID uint
	Present   int64
	Total     int64
}

// AttendanceRepository defines data operations for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	SummarizeByClass(ctx context.Context, classID uint) ([]AttendanceSummary, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) SummarizeByClass(ctx context.Context, classID uint) ([]AttendanceSummary, error) {
	var summaries []AttendanceSummary
	err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Select("student_id, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present, COUNT(*) AS total").
		Where("class_id = ?", classID).
		Group("student_id").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}
