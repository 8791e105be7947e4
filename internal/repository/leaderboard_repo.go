package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenquest/mythbuster-api/internal/models"
)

// LeaderboardRepository persists best-known scores keyed by username.
type LeaderboardRepository interface {
	Upsert(ctx context.Context, entry models.LeaderboardEntry) error
	Ranked(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository constructs a leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// Upsert replaces the row for the entry's username, creating it on first
// write. The single-statement upsert keeps concurrent writes to different
// usernames independent and makes each row replacement atomic.
func (r *leaderboardRepository) Upsert(ctx context.Context, entry models.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "badges", "updated_at"}),
	}).Create(&entry).Error
}

// Ranked returns entries ordered by score descending. Ties break on
// username so the order is stable; the tie order carries no meaning.
func (r *leaderboardRepository) Ranked(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := r.db.WithContext(ctx).
		Model(&models.LeaderboardEntry{}).
		Order("score DESC").
		Order("username ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.LeaderboardEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
