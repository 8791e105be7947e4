package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// gradeSchema is the structural contract expected from the grading model:
// an object carrying the three axis scores. Values are coerced afterwards,
// so only presence is enforced here.
var gradeSchema = jsonschema.MustCompileString("grade.json", `{
	"type": "object",
	"required": ["clarity", "tone", "evidence"]
}`)

const fallbackFeedback = "Keep going! Take another swing at busting this myth."

// Fallback returns the zero-score evaluation used when grading is
// unavailable or its output cannot be parsed. It is the last line of
// defense before progression; the turn still completes with it.
func Fallback(reason string) Evaluation {
	feedback := fallbackFeedback
	if reason != "" {
		feedback = fmt.Sprintf("⚠️ Could not evaluate your rebuttal (%s). No points this round — try again!", reason)
	}

	return Evaluation{
		Correctness: false,
		Feedback:    feedback,
	}
}

// Normalize converts the raw grading model output into a well-formed
// Evaluation. Markdown code fences are stripped, the payload must be a
// JSON object carrying the three axis scores, each score is clamped into
// [0, MaxAxisScore], and points/badge/level-up are recomputed from the
// clamped scores. Any structural failure yields Fallback; Normalize never
// returns an error and never panics.
func Normalize(raw string) Evaluation {
	payload := stripFences(raw)
	if payload == "" {
		return Fallback("empty grading response")
	}

	var value interface{}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return Fallback(fmt.Sprintf("invalid JSON: %v", err))
	}

	if err := gradeSchema.Validate(value); err != nil {
		return Fallback("grading response missing required scores")
	}

	fields := value.(map[string]interface{})

	eval := Evaluation{
		Correctness: coerceBool(fields["correctness"]),
		Clarity:     clampScore(fields["clarity"]),
		Tone:        clampScore(fields["tone"]),
		Evidence:    clampScore(fields["evidence"]),
		Feedback:    coerceString(fields["feedback"]),
	}

	if eval.Feedback == "" {
		eval.Feedback = fallbackFeedback
	}

	return eval.finalize()
}

// stripFences removes a Markdown code fence wrapper, with or without a
// "json" language tag, so the payload can be parsed structurally.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.Trim(trimmed, "`")
	trimmed = strings.TrimSpace(trimmed)
	if rest, ok := strings.CutPrefix(trimmed, "json"); ok {
		trimmed = strings.TrimSpace(rest)
	}

	return trimmed
}

func clampScore(value interface{}) int {
	number, ok := value.(float64)
	if !ok {
		return 0
	}

	score := int(number)
	if score < 0 || score > MaxAxisScore {
		return 0
	}

	return score
}

func coerceBool(value interface{}) bool {
	flag, ok := value.(bool)
	return ok && flag
}

func coerceString(value interface{}) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(text)
}
