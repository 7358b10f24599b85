package searcher

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"golang.org/x/exp/rand"
)

// Searcher picks a move for the player to move. FindMove never modifies the
// given state.
type Searcher interface {
	Name() string
	FindMove(ctx context.Context, state *game.State) (Result, error)
}

// Result of a search. Found is false when the player to move has no legal
// move; Score then holds the static evaluation of the state.
type Result struct {
	Move   game.Move
	Score  float64
	Found  bool
	Metric metrics.SearchMetric
}

// scoreMove applies move to a copy of state and evaluates the child from the
// mover's point of view.
func scoreMove(state *game.State, move game.Move, evaluate game.Evaluate) (float64, error) {
	child := state.Copy()
	if err := child.Apply(move); err != nil {
		return 0, err
	}
	return evaluate(game.Perspective(child, state.Current)), nil
}

// RandomMove picks a legal move uniformly at random. ok is false when there
// is none.
func RandomMove(state *game.State, rng *rand.Rand) (move game.Move, ok bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[rng.Intn(len(moves))], true
}

// withBudget bounds ctx by duration when one is set.
func withBudget(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration > 0 {
		return context.WithTimeout(ctx, duration)
	}
	return context.WithCancel(ctx)
}

func stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
