package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent events", func(t *testing.T) {
		c := NewCollector()
		c.Start("genetic")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
				}
			}()
		}
		wg.Wait()
		c.AddIteration(true)
		c.AddIteration(false)
		c.SetDepth(3)

		got := c.Complete()

		require.Equal(t, "genetic", got.Strategy)
		require.Equal(t, 800, got.Nodes)
		require.Equal(t, 2, got.Iterations)
		require.Equal(t, 1, got.Accepted)
		require.Equal(t, 3, got.Depth)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("alphabeta")
		c.AddCacheHit()
		c.AddCutoff()

		c.Start("alphabeta")

		got := c.Complete()
		require.Zero(t, got.CacheHits)
		require.Zero(t, got.Cutoffs)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("annealing")
		c.AddNode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "tournament")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Name: "black", Strategy: "alphabeta", Profile: "classic", Budget: "depth=3"}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{Game: 1, BlackAgent: 1, WhiteAgent: 1, GameMetric: GameMetric{ID: "g", Winner: "black", Black: 40, White: 24, Duration: time.Second}}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 1, Move: "d3", SearchMetric: SearchMetric{Strategy: "alphabeta", Nodes: 12}}}}))

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		data, err := os.ReadFile(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2, "%s should hold a header and one row", name)
	}
}
