package ai

import "context"

// GradeInput contains the artefacts needed to grade one rebuttal.
type GradeInput struct {
	Myth       string
	Submission string
}

// Grader describes an AI model capable of grading a myth rebuttal. It
// returns the raw model text; the payload is treated as untrusted and
// normalized downstream.
type Grader interface {
	Grade(ctx context.Context, input GradeInput) (string, error)
}

// MythGenerator produces a fresh misinformation statement for a theme.
type MythGenerator interface {
	Generate(ctx context.Context, theme string) (string, error)
}

// Provider bundles the two model capabilities the game needs.
type Provider interface {
	Grader
	MythGenerator
}
