package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/greenquest/mythbuster-api/internal/dto"
	"github.com/greenquest/mythbuster-api/internal/models"
	"github.com/greenquest/mythbuster-api/internal/repository"
)

const leaderboardCacheKey = "leaderboard:ranked"

// LeaderboardService exposes the ranked leaderboard and its writes.
type LeaderboardService interface {
	Upsert(ctx context.Context, username string, score int, badges []string) error
	Ranked(ctx context.Context, limit int) (dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	entries  repository.LeaderboardRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewLeaderboardService constructs a LeaderboardService. The cache client
// may be nil, in which case every read hits the database.
func NewLeaderboardService(entryRepo repository.LeaderboardRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		entries:  entryRepo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

// Upsert replaces the player's leaderboard row and drops the cached
// ranking. Storage failures propagate; the leaderboard is the one stage of
// the turn pipeline allowed to fail hard.
func (s *leaderboardService) Upsert(ctx context.Context, username string, score int, badges []string) error {
	entry := models.LeaderboardEntry{
		Username: username,
		Score:    score,
		Badges:   models.JoinBadges(badges),
	}

	if err := s.entries.Upsert(ctx, entry); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, leaderboardCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
		}
	}

	return nil
}

func (s *leaderboardService) Ranked(ctx context.Context, limit int) (dto.LeaderboardResponse, error) {
	if s.cache != nil && limit <= 0 {
		if cached, err := s.cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var response dto.LeaderboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("leaderboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	entries, err := s.entries.Ranked(ctx, limit)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	response := dto.NewLeaderboardResponse(entries)

	if s.cache != nil && limit <= 0 {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return response, nil
}
