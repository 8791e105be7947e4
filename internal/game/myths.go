package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenquest/mythbuster-api/internal/observability"
	"github.com/greenquest/mythbuster-api/pkg/ai"
)

// OfflineMyths is the stock pool served when the generation capability is
// unreachable or returns garbage. The game must always have a next myth.
var OfflineMyths = []string{
	"Recycling one plastic bottle makes no difference, so there is no point sorting waste.",
	"Paper bags are always better for the environment than plastic bags.",
	"Turning devices off and on uses more energy than leaving them running.",
	"Electric cars pollute just as much as petrol cars because of their batteries.",
	"Only big factories cause climate change, so nothing a household does matters.",
}

// Cycle produces the next myth for a player, asking the generation
// capability first and falling back to the offline pool on any failure.
type Cycle struct {
	generator ai.MythGenerator
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewCycle builds a myth cycle. A nil generator is allowed and means the
// offline pool is used exclusively.
func NewCycle(generator ai.MythGenerator, timeout time.Duration, logger zerolog.Logger) *Cycle {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Cycle{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With().Str("component", "myth_cycle").Logger(),
	}
}

// NextMyth returns a non-empty myth for the theme the level selects. It is
// the terminal fallback of the turn pipeline and never fails.
func (c *Cycle) NextMyth(ctx context.Context, level int) string {
	theme := ThemeForLevel(level)

	if c.generator != nil {
		generateCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		myth, err := c.generator.Generate(generateCtx, theme)
		if err == nil {
			if trimmed := strings.TrimSpace(myth); trimmed != "" {
				return trimmed
			}
			err = errors.New("generator returned an empty myth")
		}

		observability.MythFallbacks().Inc()
		c.logger.Warn().Err(err).Str("theme", theme).Msg("myth generation failed, serving offline myth")
	}

	return OfflineMyths[rand.IntN(len(OfflineMyths))]
}
