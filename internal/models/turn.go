package models

import (
	"time"

	"gorm.io/datatypes"
)

// TurnRecord captures one graded turn for history and analytics. It is
// written after the leaderboard upsert; losing a record never fails the
// turn.
type TurnRecord struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Username    string            `gorm:"size:64;index;not null" json:"username"`
	Myth        string            `gorm:"type:text" json:"myth"`
	Submission  string            `gorm:"type:text" json:"submission"`
	Correctness bool              `json:"correctness"`
	Clarity     int               `json:"clarity"`
	Tone        int               `json:"tone"`
	Evidence    int               `json:"evidence"`
	Points      int               `json:"points"`
	Badge       string            `gorm:"size:64" json:"badge"`
	Details     datatypes.JSONMap `gorm:"type:json" json:"details"`
	CreatedAt   time.Time         `json:"created_at"`
}
