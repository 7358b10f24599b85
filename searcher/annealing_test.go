package searcher

import (
	"context"
	"testing"
	"time"

	"othello/game"
	"othello/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAnnealing(t *testing.T) {
	evaluate := game.BuiltinProfiles()[game.ProfileStable].Evaluator()

	t.Run("iteration schedule finds the best move", func(t *testing.T) {
		a := NewAnnealing(WithSeed(9), WithIterations(2000), WithEvaluationFn(evaluate), WithMetrics())

		for _, s := range positions(t, 10) {
			result, err := a.FindMove(context.Background(), s)

			require.NoError(t, err)
			require.True(t, result.Found)
			require.True(t, utils.Contains(s.LegalMoves(), result.Move))
			require.Equal(t, greedy(t, s, evaluate), result.Score, "Best move seen should be the best one-ply move")
			require.Equal(t, 2000, result.Metric.Iterations)
		}
	})

	t.Run("stops at the time budget", func(t *testing.T) {
		s := game.NewGame(game.ModeAuto)
		a := NewAnnealing(WithDuration(30*time.Millisecond), WithMetrics())

		start := time.Now()
		result, err := a.FindMove(context.Background(), s)
		elapsed := time.Since(start)

		require.NoError(t, err)
		require.GreaterOrEqual(t, elapsed, 25*time.Millisecond)
		require.Less(t, elapsed, time.Second)
		require.True(t, utils.Contains(s.LegalMoves(), result.Move))
		require.Positive(t, result.Metric.Iterations)
	})

	t.Run("context deadline caps the budget", func(t *testing.T) {
		s := game.NewGame(game.ModeAuto)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		result, err := NewAnnealing().FindMove(ctx, s)

		require.NoError(t, err)
		require.Less(t, time.Since(start), time.Second, "Default four second budget should be cut short")
		require.True(t, result.Found)
	})

	t.Run("expired context returns the initial move", func(t *testing.T) {
		s := game.NewGame(game.ModeAuto)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := NewAnnealing(WithMetrics()).FindMove(ctx, s)

		require.NoError(t, err)
		require.True(t, utils.Contains(s.LegalMoves(), result.Move))
		require.Zero(t, result.Metric.Iterations)
	})

	t.Run("no legal move", func(t *testing.T) {
		result, err := NewAnnealing().FindMove(context.Background(), blocked())

		require.NoError(t, err)
		require.False(t, result.Found)
	})
}

func TestAccept(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("fixed threshold", func(t *testing.T) {
		a := NewAnnealing(WithAcceptanceThreshold(0.5))

		require.True(t, a.accept(-0.1, 1, rng), "exp(-0.1) exceeds 0.5")
		require.False(t, a.accept(-1, 1, rng), "exp(-1) is below 0.5")
		require.False(t, a.accept(-0.1, 0.01, rng), "Cold temperature rejects worse moves")
	})

	t.Run("random draw", func(t *testing.T) {
		a := NewAnnealing()

		accepted := 0
		for i := 0; i < 10000; i++ {
			if a.accept(-1, 1, rng) {
				accepted++
			}
		}

		require.InDelta(t, 0.368, float64(accepted)/10000, 0.03, "Acceptance rate should approach exp(-1)")
	})
}
