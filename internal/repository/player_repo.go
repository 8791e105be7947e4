package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenquest/mythbuster-api/internal/models"
)

// PlayerRepository provides access to registered accounts.
type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByUsername(ctx context.Context, username string) (models.Player, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository constructs a player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// Create inserts the player. The unique index on username makes the
// uniqueness check and the insert atomic; a duplicate surfaces as
// gorm.ErrDuplicatedKey.
func (r *playerRepository) Create(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *playerRepository) GetByUsername(ctx context.Context, username string) (models.Player, error) {
	var player models.Player
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&player).Error; err != nil {
		return models.Player{}, err
	}

	return player, nil
}
