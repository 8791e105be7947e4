package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeWellFormedPayload(t *testing.T) {
	eval := Normalize(`{"correctness": true, "clarity": 5, "tone": 5, "evidence": 4, "feedback": "Great work!"}`)

	require.True(t, eval.Correctness)
	require.Equal(t, 5, eval.Clarity)
	require.Equal(t, 5, eval.Tone)
	require.Equal(t, 4, eval.Evidence)
	require.Equal(t, 14, eval.Points)
	require.Equal(t, BadgeEcoMythBuster, eval.Badge)
	require.True(t, eval.LevelUp)
	require.Equal(t, "Great work!", eval.Feedback)
}

func TestNormalizeStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"correctness\": true, \"clarity\": 3, \"tone\": 2, \"evidence\": 1, \"feedback\": \"ok\"}\n```"
	eval := Normalize(raw)

	require.True(t, eval.Correctness)
	require.Equal(t, 6, eval.Points)
	require.Equal(t, BadgeClarityChampion, eval.Badge)

	bare := "```\n{\"correctness\": true, \"clarity\": 1, \"tone\": 1, \"evidence\": 1, \"feedback\": \"ok\"}\n```"
	eval = Normalize(bare)
	require.Equal(t, 3, eval.Points)
}

func TestNormalizeRecomputesDerivedFields(t *testing.T) {
	// Upstream claims wildly inconsistent points/badge/level_up; all three
	// must be recomputed from the axis scores.
	raw := `{"correctness": true, "clarity": 2, "tone": 2, "evidence": 1, "points": 99, "badge": "Eco-Myth Buster", "level_up": true, "feedback": "x"}`
	eval := Normalize(raw)

	require.Equal(t, 5, eval.Points)
	require.Equal(t, BadgeMythApprentice, eval.Badge)
	require.False(t, eval.LevelUp)
}

func TestNormalizeClampsAxisScores(t *testing.T) {
	raw := `{"correctness": true, "clarity": 9, "tone": -3, "evidence": "lots", "feedback": "x"}`
	eval := Normalize(raw)

	require.Equal(t, 0, eval.Clarity)
	require.Equal(t, 0, eval.Tone)
	require.Equal(t, 0, eval.Evidence)
	require.Equal(t, 0, eval.Points)
}

func TestNormalizeMalformedInputFallsBack(t *testing.T) {
	cases := []string{
		"",
		"not json at all",
		"```json\nstill not json\n```",
		`[1, 2, 3]`,
		`{"tone": 3, "evidence": 2, "feedback": "missing clarity"}`,
	}

	for _, raw := range cases {
		eval := Normalize(raw)
		require.False(t, eval.Correctness, "raw=%q", raw)
		require.Equal(t, 0, eval.Points, "raw=%q", raw)
		require.Empty(t, eval.Badge, "raw=%q", raw)
		require.False(t, eval.LevelUp, "raw=%q", raw)
		require.NotEmpty(t, eval.Feedback, "raw=%q", raw)
	}
}

func TestNormalizeFillsEmptyFeedback(t *testing.T) {
	eval := Normalize(`{"correctness": true, "clarity": 1, "tone": 1, "evidence": 1}`)
	require.NotEmpty(t, eval.Feedback)
}

func TestFallbackEmbedsReason(t *testing.T) {
	eval := Fallback("grader unreachable")
	require.False(t, eval.Correctness)
	require.Equal(t, 0, eval.Points)
	require.Contains(t, eval.Feedback, "grader unreachable")
}
