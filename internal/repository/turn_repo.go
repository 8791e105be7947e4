package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenquest/mythbuster-api/internal/models"
)

// TurnRepository stores the per-turn grading history.
type TurnRepository interface {
	Create(ctx context.Context, record *models.TurnRecord) error
	ListByUsername(ctx context.Context, username string, limit int) ([]models.TurnRecord, error)
}

type turnRepository struct {
	db *gorm.DB
}

// NewTurnRepository constructs a turn history repository.
func NewTurnRepository(db *gorm.DB) TurnRepository {
	return &turnRepository{db: db}
}

func (r *turnRepository) Create(ctx context.Context, record *models.TurnRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *turnRepository) ListByUsername(ctx context.Context, username string, limit int) ([]models.TurnRecord, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TurnRecord{}).
		Where("username = ?", username).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.TurnRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
