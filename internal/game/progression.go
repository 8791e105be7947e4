package game

import "strings"

// CitationNudge is appended to displayed feedback when a rebuttal scores
// well on evidence without citing a source.
const CitationNudge = " ⚡ Hint: name your source next time — opening with \"According to ...\" makes strong evidence even stronger."

const citationMarker = "according to"

// PlayerState is one session's progression snapshot. It is exclusively
// owned by the session that created it; only score and badges are ever
// persisted, via the leaderboard.
type PlayerState struct {
	Username    string   `json:"username"`
	Score       int      `json:"score"`
	Level       int      `json:"level"`
	Badges      []string `json:"badges"`
	CurrentMyth string   `json:"current_myth"`
}

// NewPlayerState returns the starting state for a freshly logged-in player.
func NewPlayerState(username string) PlayerState {
	return PlayerState{
		Username: username,
		Level:    1,
		Badges:   []string{},
	}
}

// Theme returns the myth theme the player's current level selects.
func (s PlayerState) Theme() string {
	return ThemeForLevel(s.Level)
}

// HasBadge reports whether the player already earned the badge.
func (s PlayerState) HasBadge(badge string) bool {
	for _, earned := range s.Badges {
		if earned == badge {
			return true
		}
	}

	return false
}

// Advance folds one normalized evaluation into the player state and
// returns the next state together with the evaluation as it should be
// displayed. Score and level never decrease and badges are append-only,
// so progression is monotonic. A qualifying turn raises the level by
// exactly one however high the points spike; that pacing is deliberate.
// Advance is total: it accepts any normalized evaluation and cannot fail.
func Advance(state PlayerState, eval Evaluation, submission string) (PlayerState, Evaluation) {
	next := state
	next.Badges = append([]string(nil), state.Badges...)

	next.Score += eval.Points

	if eval.LevelUp {
		next.Level++
	}

	if eval.Badge != "" && !next.HasBadge(eval.Badge) {
		next.Badges = append(next.Badges, eval.Badge)
	}

	if eval.Evidence > 2 && !strings.Contains(strings.ToLower(submission), citationMarker) {
		eval.Feedback += CitationNudge
	}

	return next, eval
}
