package game

// Themes lists the myth topics in unlock order. The active theme is always
// derived from the player's level and cycles once the list is exhausted.
var Themes = []string{
	"recycling",
	"energy",
	"water",
	"food waste",
	"plastic",
	"transport",
}

// ThemeForLevel returns the theme a level selects. Levels start at 1;
// anything lower is treated as 1.
func ThemeForLevel(level int) string {
	if level < 1 {
		level = 1
	}

	return Themes[(level-1)%len(Themes)]
}
