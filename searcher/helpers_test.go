package searcher

import (
	"testing"

	"othello/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// positions plays n seeded random games for a few plies each and returns the
// positions reached, all with at least one legal move.
func positions(t *testing.T, n int) []*game.State {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	states := []*game.State{game.NewGame(game.ModeAuto)}
	for len(states) < n {
		s := game.NewGame(game.ModeAuto)
		plies := 4 + rng.Intn(30)
		for i := 0; i < plies && !s.IsTerminal(); i++ {
			move, ok := RandomMove(s, rng)
			require.True(t, ok)
			require.NoError(t, s.Apply(move))
		}
		if !s.IsTerminal() {
			states = append(states, s)
		}
	}
	return states
}

// blocked returns a position where black, to move, has no legal move.
func blocked() *game.State {
	s := &game.State{Current: game.Black, Mode: game.ModeAuto}
	s.Board[0][0] = game.Black
	s.Board[7][7] = game.White
	return s
}

func greedy(t *testing.T, s *game.State, evaluate game.Evaluate) float64 {
	t.Helper()
	best := -1e18
	for _, move := range s.LegalMoves() {
		score, err := scoreMove(s, move, evaluate)
		require.NoError(t, err)
		best = max(best, score)
	}
	return best
}
