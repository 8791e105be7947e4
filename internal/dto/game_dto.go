package dto

import "github.com/greenquest/mythbuster-api/internal/game"

// TurnRequest submits a rebuttal for the session's current myth.
type TurnRequest struct {
	Submission string `json:"submission" validate:"required,min=1,max=4000"`
}

// EvaluationResponse is the graded result shown to the player.
type EvaluationResponse struct {
	Correctness bool   `json:"correctness"`
	Clarity     int    `json:"clarity"`
	Tone        int    `json:"tone"`
	Evidence    int    `json:"evidence"`
	Points      int    `json:"points"`
	Badge       string `json:"badge,omitempty"`
	LevelUp     bool   `json:"level_up"`
	Feedback    string `json:"feedback"`
}

// PlayerStateResponse is the session progression snapshot.
type PlayerStateResponse struct {
	Username    string   `json:"username"`
	Score       int      `json:"score"`
	Level       int      `json:"level"`
	Theme       string   `json:"theme"`
	Badges      []string `json:"badges"`
	CurrentMyth string   `json:"current_myth"`
}

// TurnResponse bundles everything a turn produces: the evaluation, the
// updated state and the next myth to bust.
type TurnResponse struct {
	Evaluation EvaluationResponse  `json:"evaluation"`
	State      PlayerStateResponse `json:"state"`
	NextMyth   string              `json:"next_myth"`
}

// SessionResponse is returned when a game session starts.
type SessionResponse struct {
	State PlayerStateResponse `json:"state"`
}

// NewEvaluationResponse converts a normalized evaluation for the wire.
func NewEvaluationResponse(eval game.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		Correctness: eval.Correctness,
		Clarity:     eval.Clarity,
		Tone:        eval.Tone,
		Evidence:    eval.Evidence,
		Points:      eval.Points,
		Badge:       eval.Badge,
		LevelUp:     eval.LevelUp,
		Feedback:    eval.Feedback,
	}
}

// NewPlayerStateResponse converts a player state for the wire.
func NewPlayerStateResponse(state game.PlayerState) PlayerStateResponse {
	badges := state.Badges
	if badges == nil {
		badges = []string{}
	}

	return PlayerStateResponse{
		Username:    state.Username,
		Score:       state.Score,
		Level:       state.Level,
		Theme:       state.Theme(),
		Badges:      badges,
		CurrentMyth: state.CurrentMyth,
	}
}
