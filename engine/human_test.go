package engine

import (
	"context"
	"testing"
	"time"

	"othello/game"
	"othello/utils"

	"github.com/stretchr/testify/require"
)

func TestHumanPlayer(t *testing.T) {
	state := game.NewGame(game.ModeAI)

	t.Run("plays submitted move", func(t *testing.T) {
		input := make(chan game.Move, 1)
		h := NewHumanPlayer(input, WithPollInterval(5*time.Millisecond))
		input <- game.Move{Row: 2, Col: 3}

		d, err := h.FindMove(context.Background(), state)

		require.NoError(t, err)
		require.True(t, d.Found)
		require.Equal(t, game.Move{Row: 2, Col: 3}, d.Move)
		require.False(t, d.Metric.Fallback)
	})

	t.Run("timeout forces a legal move", func(t *testing.T) {
		h := NewHumanPlayer(make(chan game.Move),
			WithTimeout(50*time.Millisecond),
			WithPollInterval(5*time.Millisecond),
			WithHumanSeed(1))

		start := time.Now()
		d, err := h.FindMove(context.Background(), state)

		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
		require.True(t, d.Found)
		require.True(t, utils.Contains(state.LegalMoves(), d.Move))
		require.True(t, d.Metric.Fallback)
	})

	t.Run("illegal input is rejected", func(t *testing.T) {
		input := make(chan game.Move, 2)
		var reasons []string
		h := NewHumanPlayer(input, WithPollInterval(5*time.Millisecond), WithPrompt(func(_ *game.State, reason string) {
			reasons = append(reasons, reason)
		}))
		input <- game.Move{Row: 0, Col: 0}
		input <- game.Move{Row: 5, Col: 4}

		d, err := h.FindMove(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 5, Col: 4}, d.Move)
		require.Len(t, reasons, 2, "Prompted at turn start and after the rejected move")
		require.Empty(t, reasons[0])
		require.Contains(t, reasons[1], "a1")
	})

	t.Run("cancelled game forces a legal move", func(t *testing.T) {
		h := NewHumanPlayer(make(chan game.Move))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d, err := h.FindMove(ctx, state)

		require.NoError(t, err)
		require.True(t, utils.Contains(state.LegalMoves(), d.Move))
	})

	t.Run("closed input forces a legal move", func(t *testing.T) {
		input := make(chan game.Move)
		close(input)
		h := NewHumanPlayer(input)

		d, err := h.FindMove(context.Background(), state)

		require.NoError(t, err)
		require.True(t, d.Metric.Fallback)
		require.True(t, utils.Contains(state.LegalMoves(), d.Move))
	})
}
