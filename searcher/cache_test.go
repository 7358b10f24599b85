package searcher

import (
	"sync"
	"testing"

	"othello/game"

	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("keys differ by depth and perspective", func(t *testing.T) {
		c := NewCache(0)
		s := game.NewGame(game.ModeAuto)

		c.Store(s, 1, game.Black, Entry{Value: 1})
		c.Store(s, 2, game.Black, Entry{Value: 2})
		c.Store(s, 1, game.White, Entry{Value: 3})

		for _, tc := range []struct {
			depth       int
			perspective game.Disk
			want        float64
		}{{1, game.Black, 1}, {2, game.Black, 2}, {1, game.White, 3}} {
			e, ok := c.Probe(s, tc.depth, tc.perspective)
			require.True(t, ok)
			require.Equal(t, tc.want, e.Value)
		}
		_, ok := c.Probe(s, 3, game.Black)
		require.False(t, ok)
		require.Equal(t, 3, c.Len())
	})

	t.Run("keys differ by player to move", func(t *testing.T) {
		c := NewCache(0)
		s := game.NewGame(game.ModeAuto)
		c.Store(s, 1, game.Black, Entry{Value: 1})

		_, ok := c.Probe(game.Perspective(s, game.White), 1, game.Black)

		require.False(t, ok)
	})

	t.Run("exact value not replaced by bound", func(t *testing.T) {
		c := NewCache(0)
		s := game.NewGame(game.ModeAuto)

		c.Store(s, 1, game.Black, Entry{Value: 1, Bound: Exact})
		c.Store(s, 1, game.Black, Entry{Value: 5, Bound: Lower})

		e, _ := c.Probe(s, 1, game.Black)
		require.Equal(t, 1.0, e.Value)
		require.Equal(t, Exact, e.Bound)
	})

	t.Run("bounded size", func(t *testing.T) {
		c := NewCache(CACHE_SHARDS)
		s := game.NewGame(game.ModeAuto)

		for depth := 0; depth < 10; depth++ {
			c.Store(s, depth, game.Black, Entry{Value: float64(depth)})
		}

		require.Equal(t, 1, c.Len(), "All keys of one state share a shard holding one entry")
	})

	t.Run("stats", func(t *testing.T) {
		c := NewCache(0)
		s := game.NewGame(game.ModeAuto)
		c.Store(s, 1, game.Black, Entry{})

		c.Probe(s, 1, game.Black)
		c.Probe(s, 2, game.Black)

		require.Equal(t, CacheStats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())
	})

	t.Run("concurrent use", func(t *testing.T) {
		c := NewCache(0)
		states := positions(t, 10)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for depth, s := range states {
					c.Store(s, depth, game.Black, Entry{Value: float64(depth)})
					c.Probe(s, depth, game.Black)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, len(states), c.Len())
	})
}
