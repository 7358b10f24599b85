package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatures(t *testing.T) {
	t.Run("opening position is balanced", func(t *testing.T) {
		s := NewGame(ModeFriend)

		require.Equal(t, Features{}, s.Features(nil))
		require.Equal(t, 0.0, Score(s, BuiltinProfiles()[ProfileStable].Phases[0].Weights))
	})

	t.Run("coin parity and mobility after the first move", func(t *testing.T) {
		s := NewGame(ModeFriend)
		require.NoError(t, s.Apply(Move{2, 3}))

		f := Perspective(s, Black).Features(nil)

		require.Equal(t, 3.0, f.CoinParity, "Black holds 4 disks against 1")
		black := len(Perspective(s, Black).LegalMoves())
		white := len(s.LegalMoves())
		require.Equal(t, float64(black-white), f.Mobility)
	})

	t.Run("corners and edges use the relative sign", func(t *testing.T) {
		s := &State{Current: Black, Board: boardFrom(t,
			"X.O....O",
			"........",
			"........",
			"X.......",
			"........",
			"........",
			"........",
			"O.......",
		)}

		black := s.Features(nil)
		white := Perspective(s, White).Features(nil)

		require.Equal(t, -1.0, black.CornerOccupancy, "One own corner against two opponent corners")
		require.Equal(t, 1.0, white.CornerOccupancy)
		require.Equal(t, 0.0, black.EdgeOccupancy, "One own edge disk against one opponent edge disk")

		s.Board[0][3] = Black
		require.Equal(t, 1.0, s.Features(nil).EdgeOccupancy)
	})

	t.Run("stability counts border and surrounded disks", func(t *testing.T) {
		s := &State{Current: Black, Board: boardFrom(t,
			"X.......",
			"........",
			"..XXX...",
			"..XXX...",
			"..XXX...",
			".....O..",
			"........",
			"........",
		)}

		f := s.Features(nil)

		// (0,0) lies on the border; (3,3) is enclosed by black on all sides.
		require.Equal(t, 2.0, f.Stability)
		require.Equal(t, 0.0, Perspective(s, White).Features(nil).Stability)
	})

	t.Run("positional table", func(t *testing.T) {
		var quadrant [16]float64
		quadrant[0] = 10
		s := &State{Current: White, Board: boardFrom(t,
			"O......X",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"O.......",
		)}

		require.Equal(t, 10.0, s.Features(MirrorTable(quadrant)).Positional)
		require.Equal(t, 0.0, s.Features(nil).Positional)
	})
}

func TestScore(t *testing.T) {
	t.Run("weighted sum of features", func(t *testing.T) {
		s := NewGame(ModeFriend)
		require.NoError(t, s.Apply(Move{2, 3}))
		view := Perspective(s, Black)
		f := view.Features(nil)
		w := Weights{CoinParity: 2, Mobility: 3, CornerOccupancy: 5, Stability: 7, EdgeOccupancy: 11}

		got := Score(view, w)

		want := 2*f.CoinParity + 3*f.Mobility + 5*f.CornerOccupancy + 7*f.Stability + 11*f.EdgeOccupancy
		require.InDelta(t, want, got, 1e-9)
		require.Equal(t, got, Score(view, w), "Score should be pure")
	})

	t.Run("wipeout", func(t *testing.T) {
		s := &State{Current: Black, Board: boardFrom(t,
			"XX......",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
		)}
		w := BuiltinProfiles()[ProfileClassic].Phases[0].Weights

		require.Equal(t, WipeoutScore, Score(s, w))
		require.Equal(t, -WipeoutScore, Score(Perspective(s, White), w))
	})
}

func TestMirrorTable(t *testing.T) {
	var quadrant [16]float64
	for i := range quadrant {
		quadrant[i] = float64(i)
	}

	table := MirrorTable(quadrant)

	require.Equal(t, 0.0, table[0][0])
	require.Equal(t, 0.0, table[0][7])
	require.Equal(t, 0.0, table[7][0])
	require.Equal(t, 0.0, table[7][7])
	require.Equal(t, 5.0, table[1][6])
	require.Equal(t, 15.0, table[4][4])
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			require.Equal(t, table[r][c], table[Size-1-r][c], "Table should mirror vertically")
			require.Equal(t, table[r][c], table[r][Size-1-c], "Table should mirror horizontally")
		}
	}
}

func TestProfiles(t *testing.T) {
	t.Run("at least three builtin profiles", func(t *testing.T) {
		profiles := BuiltinProfiles()

		require.Equal(t, []string{ProfileAdaptive, ProfileClassic, ProfileStable}, profiles.Names())
	})

	t.Run("unknown profile fails", func(t *testing.T) {
		_, err := BuiltinProfiles().Lookup("aggressive")

		require.True(t, errors.Is(err, ErrUnknownProfile))
	})

	t.Run("adaptive weights follow the stage of the game", func(t *testing.T) {
		adaptive, err := BuiltinProfiles().Lookup(ProfileAdaptive)
		require.NoError(t, err)

		s := &State{Current: Black}
		fill := func(n int) {
			s.Board = Board{}
			for i := 0; i < n; i++ {
				s.Board[i/Size][i%Size] = Black
			}
		}

		fill(4)
		require.Equal(t, adaptive.Phases[0].Weights, adaptive.WeightsFor(s))
		fill(30)
		require.Equal(t, adaptive.Phases[1].Weights, adaptive.WeightsFor(s))
		fill(50)
		require.Equal(t, adaptive.Phases[2].Weights, adaptive.WeightsFor(s))
		fill(64)
		require.Equal(t, adaptive.Phases[2].Weights, adaptive.WeightsFor(s))
	})

	t.Run("merge overrides by name", func(t *testing.T) {
		custom := NewProfile(ProfileClassic, Weights{CoinParity: 9})

		merged := BuiltinProfiles().Merge(Profiles{ProfileClassic: custom})

		require.Equal(t, custom, merged[ProfileClassic])
		require.Len(t, merged, 3)
	})
}
