package game

// Badge names awarded per turn. Thresholds are fixed product rules shared
// with the grading prompt; first match on points wins.
const (
	BadgeMythApprentice  = "Myth Apprentice"
	BadgeClarityChampion = "Clarity Champion"
	BadgeEvidenceMaster  = "Evidence Master"
	BadgeEcoMythBuster   = "Eco-Myth Buster"
)

// MaxAxisScore is the upper bound for each grading axis.
const MaxAxisScore = 5

// Evaluation is the canonical grading result for one rebuttal of one myth.
// Points, Badge and LevelUp are always derived from the axis scores here,
// never trusted from the model output.
type Evaluation struct {
	Correctness bool   `json:"correctness"`
	Clarity     int    `json:"clarity"`
	Tone        int    `json:"tone"`
	Evidence    int    `json:"evidence"`
	Points      int    `json:"points"`
	Badge       string `json:"badge"`
	LevelUp     bool   `json:"level_up"`
	Feedback    string `json:"feedback"`
}

// BadgeForPoints maps a per-turn points total onto the badge ladder.
func BadgeForPoints(points int) string {
	switch {
	case points <= 5:
		return BadgeMythApprentice
	case points <= 10:
		return BadgeClarityChampion
	case points <= 13:
		return BadgeEvidenceMaster
	default:
		return BadgeEcoMythBuster
	}
}

// IsLevelUpBadge reports whether earning the badge advances the player a level.
func IsLevelUpBadge(badge string) bool {
	return badge == BadgeEvidenceMaster || badge == BadgeEcoMythBuster
}

// finalize recomputes the derived fields from the axis scores so the
// evaluation is internally consistent whatever upstream claimed.
func (e Evaluation) finalize() Evaluation {
	e.Points = 0
	if e.Correctness {
		e.Points = e.Clarity + e.Tone + e.Evidence
	}
	e.Badge = BadgeForPoints(e.Points)
	e.LevelUp = IsLevelUpBadge(e.Badge)
	return e
}
