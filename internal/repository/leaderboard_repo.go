package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skor-go-api/internal/models"
)

// LeaderboardRepository defines data operations for leaderboard entries.
type LeaderboardRepository interface {
	ListByClass(ctx context.Context, classID uint) ([]models.LeaderboardEntry, error)
	ReplaceForClass(ctx context.Context, classID uint, entries []models.LeaderboardEntry) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository instantiates the repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) ListByClass(ctx context.Context, classID uint) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := r.db.WithContext(ctx).Model(&models.LeaderboardEntry{}).
		Preload("Student").
		Where("class_id = ?", classID).
		Order("rank ASC, student_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// ReplaceForClass swaps the whole scope atomically so readers never see a
// half-recomputed board.
func (r *leaderboardRepository) ReplaceForClass(ctx context.Context, classID uint, entries []models.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).Delete(&models.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}
