package gamemaster

import (
	"errors"
	"testing"

	"othello/game"

	"github.com/stretchr/testify/require"
)

func TestSessionInit(t *testing.T) {
	s := NewSession(game.ModeAI)
	getUpdate := s.Updates()

	state := s.State()
	require.Equal(t, game.NewGame(game.ModeAI), state)
	require.Len(t, s.LegalMoves(), 4)
	require.False(t, s.IsOver())

	_, ok := getUpdate()
	require.False(t, ok, "No update before the first move")
}

func TestSessionPlay(t *testing.T) {
	t.Run("legal move publishes update", func(t *testing.T) {
		s := NewSession(game.ModeFriend)
		getUpdate := s.Updates()

		err := s.Play(game.Move{Row: 2, Col: 3})

		require.NoError(t, err)
		u, ok := getUpdate()
		require.True(t, ok)
		require.Equal(t, game.Move{Row: 2, Col: 3}, u.Move)
		require.Equal(t, game.White, u.State.Current)
		require.Equal(t, s.State(), u.State)
	})

	t.Run("illegal move leaves state unchanged", func(t *testing.T) {
		s := NewSession(game.ModeFriend)
		before := s.State()

		err := s.Play(game.Move{Row: 0, Col: 0})

		var illegal *game.IllegalMoveError
		require.True(t, errors.As(err, &illegal))
		require.Equal(t, game.NoFlips, illegal.Reason)
		require.Equal(t, before, s.State())
	})

	t.Run("state is a copy", func(t *testing.T) {
		s := NewSession(game.ModeFriend)

		state := s.State()
		state.Board[0][0] = game.Black

		require.Equal(t, game.Empty, s.State().Board[0][0])
	})

	t.Run("pass", func(t *testing.T) {
		s := NewSession(game.ModeFriend)
		getUpdate := s.Updates()

		require.NoError(t, s.Pass())

		require.Equal(t, game.White, s.State().Current)
		u, ok := getUpdate()
		require.True(t, ok)
		require.True(t, u.Passed)
	})
}

func TestSessionGameOver(t *testing.T) {
	// Fool's mate: black wipes out white in nine moves
	moves := []string{"e6", "f4", "e3", "f6", "g5", "d6", "e7", "f5", "c5"}
	s := NewSession(game.ModeFriend)
	getUpdate := s.Updates()

	for _, m := range moves {
		move, err := game.ParseMove(m)
		require.NoError(t, err)
		require.NoError(t, s.Play(move), "Move %s should be legal", m)
	}

	require.True(t, s.IsOver())
	require.Equal(t, game.Black, s.Winner())
	require.ErrorIs(t, s.Play(game.Move{Row: 0, Col: 0}), ErrGameOver)
	require.ErrorIs(t, s.Pass(), ErrGameOver)

	n := 0
	for {
		_, ok := getUpdate()
		if !ok {
			break
		}
		n++
	}
	require.Equal(t, len(moves), n, "Every move should be published before the stream closes")
}
