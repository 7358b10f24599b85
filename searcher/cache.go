package searcher

import (
	"sync"

	"othello/game"

	"go.uber.org/atomic"
)

// Bound tells how a cached value relates to the true minimax value.
type Bound uint8

const (
	Exact Bound = iota
	Lower       // Search failed high, value is a lower bound
	Upper       // Search failed low, value is an upper bound
)

type Entry struct {
	Value float64
	Move  game.Move
	Bound Bound
}

// cacheKey holds every input the value of a node depends on: the position,
// remaining depth, player to move and the player the search is run for.
type cacheKey struct {
	board       game.Board
	depth       int
	current     game.Disk
	perspective game.Disk
}

type shard struct {
	sync.RWMutex
	entries map[cacheKey]Entry
}

// Cache memoises alpha-beta node values. It is safe for concurrent use and
// never evicts; with a limit set, new keys are dropped once a shard is full.
type Cache struct {
	shards [CACHE_SHARDS]shard
	limit  int // Entries per shard, 0 for unbounded
	hits   atomic.Int64
	misses atomic.Int64
}

type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// NewCache creates a cache holding at most size entries, or unbounded when
// size is 0.
func NewCache(size int) *Cache {
	c := &Cache{}
	if size > 0 {
		c.limit = max(1, size/CACHE_SHARDS)
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[cacheKey]Entry)
	}
	return c
}

func (c *Cache) shardOf(s *game.State) *shard {
	return &c.shards[uint64(s.Hash())&(CACHE_SHARDS-1)]
}

func (c *Cache) Probe(s *game.State, depth int, perspective game.Disk) (Entry, bool) {
	sh := c.shardOf(s)
	sh.RLock()
	e, ok := sh.entries[cacheKey{s.Board, depth, s.Current, perspective}]
	sh.RUnlock()

	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return e, ok
}

// Store records a node value. An exact value is never replaced by a bound.
func (c *Cache) Store(s *game.State, depth int, perspective game.Disk, e Entry) {
	key := cacheKey{s.Board, depth, s.Current, perspective}
	sh := c.shardOf(s)
	sh.Lock()
	defer sh.Unlock()

	old, ok := sh.entries[key]
	switch {
	case ok && old.Bound == Exact && e.Bound != Exact:
		return
	case !ok && c.limit > 0 && len(sh.entries) >= c.limit:
		return
	}
	sh.entries[key] = e
}

func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		c.shards[i].RLock()
		n += len(c.shards[i].entries)
		c.shards[i].RUnlock()
	}
	return n
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}
