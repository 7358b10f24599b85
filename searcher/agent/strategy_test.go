package agent

import (
	"testing"

	"othello/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseStrategy(t *testing.T) {
	for _, tc := range []struct {
		name string
		want StrategyID
	}{
		{"alphabeta", AlphaBeta},
		{"Alpha-Beta Pruning", AlphaBeta},
		{"genetic", Genetic},
		{"Genetic Algorithm", Genetic},
		{"annealing", Annealing},
		{"Simulated Annealing", Annealing},
		{" random ", Random},
	} {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseStrategy(tc.name)

			require.NoError(t, err)
			require.Equal(t, tc.want, id)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseStrategy("mcts")

		require.True(t, errors.Is(err, ErrUnknownStrategy))
	})
}

func TestStrategyYAML(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("strategy: Simulated Annealing\nduration: 250ms\nseed: 3\n"), &cfg)

	require.NoError(t, err)
	require.Equal(t, Annealing, cfg.Strategy)
	require.Equal(t, "250ms", cfg.Duration.String())
	require.Equal(t, uint64(3), *cfg.Seed)
}

func TestDefaultProfile(t *testing.T) {
	require.Equal(t, game.ProfileClassic, AlphaBeta.DefaultProfile())
	require.Equal(t, game.ProfileAdaptive, Genetic.DefaultProfile())
	require.Equal(t, game.ProfileStable, Annealing.DefaultProfile())
}
