package ai

import (
	"fmt"
	"strings"
)

// graderSystemPrompt fixes the grading rubric. The thresholds mirror the
// game's badge ladder so the model and the engine agree; the engine still
// recomputes everything from the axis scores.
func graderSystemPrompt() string {
	return "You grade how well a teacher corrects a sustainability myth for students aged 6-12. " +
		"Respond with ONLY a JSON object with these fields: " +
		"correctness (true/false - did they debunk the myth correctly), " +
		"clarity (0-5 - simple enough for kids aged 6-12), " +
		"tone (0-5 - supportive, encouraging, age-appropriate, like a guide in a learning game), " +
		"evidence (0-5 - relatable examples, stories or facts kids can grasp), " +
		"points (clarity + tone + evidence when correctness is true, else 0), " +
		"badge (\"Myth Apprentice\" for 0-5 points, \"Clarity Champion\" for 6-10, \"Evidence Master\" for 11-13, \"Eco-Myth Buster\" for 14-15), " +
		"level_up (true if badge is \"Evidence Master\" or \"Eco-Myth Buster\"), " +
		"feedback (short string in a gamified mentor tone, as if guiding the teacher through a quest; " +
		"when points are 5 or less, include a concrete example of how the answer could be improved for kids). " +
		"Return ONLY JSON."
}

func buildGradePrompt(input GradeInput) string {
	builder := strings.Builder{}
	builder.WriteString("# Myth\n")
	builder.WriteString(input.Myth)
	builder.WriteString("\n\n# Teacher's Rebuttal\n")
	builder.WriteString(input.Submission)
	builder.WriteString("\n\nEvaluate the rebuttal and return JSON.")
	return builder.String()
}

func buildMythPrompt(theme string) string {
	return fmt.Sprintf(
		"You are a misinformed student. Generate one common, realistic, widely believed sustainability myth about %s. "+
			"Provide only the myth, one or two sentences, with no correction and no evidence.",
		theme,
	)
}
