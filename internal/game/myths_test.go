package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	myth string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, theme string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.myth, nil
}

type hangingGenerator struct{}

func (hangingGenerator) Generate(ctx context.Context, theme string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestCycleReturnsGeneratedMyth(t *testing.T) {
	cycle := NewCycle(&stubGenerator{myth: "  Paper is always greener.  "}, time.Second, zerolog.Nop())

	myth := cycle.NextMyth(context.Background(), 1)
	require.Equal(t, "Paper is always greener.", myth)
}

func TestCycleFallsBackOnGeneratorError(t *testing.T) {
	cycle := NewCycle(&stubGenerator{err: errors.New("model unreachable")}, time.Second, zerolog.Nop())

	myth := cycle.NextMyth(context.Background(), 3)
	require.NotEmpty(t, myth)
	require.Contains(t, OfflineMyths, myth)
}

func TestCycleFallsBackOnEmptyMyth(t *testing.T) {
	cycle := NewCycle(&stubGenerator{myth: "   "}, time.Second, zerolog.Nop())

	myth := cycle.NextMyth(context.Background(), 1)
	require.Contains(t, OfflineMyths, myth)
}

func TestCycleFallsBackOnTimeout(t *testing.T) {
	cycle := NewCycle(hangingGenerator{}, 10*time.Millisecond, zerolog.Nop())

	done := make(chan string, 1)
	go func() {
		done <- cycle.NextMyth(context.Background(), 1)
	}()

	select {
	case myth := <-done:
		require.Contains(t, OfflineMyths, myth)
	case <-time.After(2 * time.Second):
		t.Fatal("NextMyth did not respect the generation timeout")
	}
}

func TestCycleWithoutGeneratorUsesOfflinePool(t *testing.T) {
	cycle := NewCycle(nil, time.Second, zerolog.Nop())

	for i := 0; i < 10; i++ {
		require.Contains(t, OfflineMyths, cycle.NextMyth(context.Background(), i+1))
	}
}
