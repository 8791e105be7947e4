package dto

import "github.com/greenquest/mythbuster-api/internal/models"

// LeaderboardRow is one ranked leaderboard entry.
type LeaderboardRow struct {
	Rank     int      `json:"rank"`
	Username string   `json:"username"`
	Score    int      `json:"score"`
	Badges   []string `json:"badges"`
}

// LeaderboardResponse is the ranked leaderboard.
type LeaderboardResponse struct {
	Rows []LeaderboardRow `json:"rows"`
}

// NewLeaderboardResponse converts ranked entries for the wire, assigning
// 1-based ranks in order.
func NewLeaderboardResponse(entries []models.LeaderboardEntry) LeaderboardResponse {
	rows := make([]LeaderboardRow, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, LeaderboardRow{
			Rank:     i + 1,
			Username: entry.Username,
			Score:    entry.Score,
			Badges:   entry.BadgeList(),
		})
	}

	return LeaderboardResponse{Rows: rows}
}
