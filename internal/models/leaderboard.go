package models

import (
	"strings"
	"time"
)

// LeaderboardEntry is the persisted best-known score for one username.
// Rows are replaced wholesale on every turn; each session owns monotonic
// state, so last write wins.
type LeaderboardEntry struct {
	Username  string    `gorm:"primaryKey;size:64" json:"username"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	Badges    string    `gorm:"size:512" json:"badges"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BadgeList splits the comma-joined badge column, preserving earn order.
func (e LeaderboardEntry) BadgeList() []string {
	if e.Badges == "" {
		return []string{}
	}

	return strings.Split(e.Badges, ",")
}

// JoinBadges serialises a badge list for the leaderboard column.
func JoinBadges(badges []string) string {
	return strings.Join(badges, ",")
}
