package searcher

import (
	"context"
	"math"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// AlphaBeta is a depth-limited negamax search with alpha-beta pruning, move
// ordering and a transposition cache. With a duration set it deepens
// iteratively and returns the deepest completed iteration.
type AlphaBeta struct {
	opts options
}

func NewAlphaBeta(opts ...Option) *AlphaBeta {
	return &AlphaBeta{opts: newOptions(opts...)}
}

func (ab *AlphaBeta) Name() string {
	return AlphaBetaName
}

func (ab *AlphaBeta) FindMove(ctx context.Context, state *game.State) (Result, error) {
	ctx, cancel := withBudget(ctx, ab.opts.duration)
	defer cancel()

	ab.opts.metrics.Start(AlphaBetaName)
	root := state.Copy()
	if !root.HasLegalMove() {
		return Result{Score: ab.opts.evaluate(root), Metric: ab.opts.metrics.Complete()}, nil
	}

	cache := ab.opts.cache
	if cache == nil {
		cache = NewCache(0)
	}
	s := &search{
		ctx:      ctx,
		evaluate: ab.opts.evaluate,
		cache:    cache,
		metrics:  ab.opts.metrics,
		root:     root.Current,
	}

	first := ab.opts.depth
	if _, ok := ctx.Deadline(); ok {
		first = 1
	}

	var result Result
	for depth := first; depth <= ab.opts.depth; depth++ {
		value, move, ok, err := s.negamax(root, depth, math.Inf(-1), math.Inf(1))
		if err != nil {
			return Result{}, err
		}
		if !ok { // Out of time before the root was expanded
			move = OrderMoves(root.LegalMoves())[0]
		}
		if s.aborted && result.Found {
			break // Keep the deepest completed iteration
		}
		result = Result{Move: move, Score: value, Found: true}
		if s.aborted {
			break
		}
		s.metrics.SetDepth(depth)
	}

	result.Metric = s.metrics.Complete()
	log.Debug().Msgf("alpha-beta picked %s (%.2f) at depth %d", result.Move, result.Score, result.Metric.Depth)
	return result, nil
}

type search struct {
	ctx      context.Context
	evaluate game.Evaluate
	cache    *Cache
	metrics  metrics.Collector
	root     game.Disk
	aborted  bool
}

// leaf scores a state for the root player, negated when the opponent is to
// move so that values stay relative to the player to move.
func (s *search) leaf(state *game.State) float64 {
	value := s.evaluate(game.Perspective(state, s.root))
	if state.Current != s.root {
		return -value
	}
	return value
}

func (s *search) negamax(state *game.State, depth int, alpha, beta float64) (float64, game.Move, bool, error) {
	s.metrics.AddNode()
	if !s.aborted && stopped(s.ctx) {
		s.aborted = true
	}
	if s.aborted || depth == 0 || state.IsTerminal() {
		return s.leaf(state), game.Move{}, false, nil
	}

	alphaOrig := alpha
	if e, ok := s.cache.Probe(state, depth, s.root); ok {
		s.metrics.AddCacheHit()
		switch e.Bound {
		case Exact:
			return e.Value, e.Move, true, nil
		case Lower:
			alpha = max(alpha, e.Value)
		case Upper:
			beta = min(beta, e.Value)
		}
		if alpha >= beta {
			return e.Value, e.Move, true, nil
		}
	}

	best := math.Inf(-1)
	var bestMove game.Move
	for _, move := range OrderMoves(state.LegalMoves()) {
		child := state.Copy()
		if err := child.Apply(move); err != nil {
			return 0, game.Move{}, false, err
		}

		value, _, _, err := s.negamax(child, depth-1, -beta, -alpha)
		if err != nil {
			return 0, game.Move{}, false, err
		}
		value = -value

		if value > best {
			best, bestMove = value, move
		}
		alpha = max(alpha, value)
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
		if s.aborted {
			break
		}
	}

	// Values below an aborted node are partial
	if !s.aborted {
		bound := Exact
		switch {
		case best <= alphaOrig:
			bound = Upper
		case best >= beta:
			bound = Lower
		}
		s.cache.Store(state, depth, s.root, Entry{Value: best, Move: bestMove, Bound: bound})
	}
	return best, bestMove, true, nil
}

// OrderMoves sorts moves in place, corners first, then edges, keeping the
// relative order of moves with equal priority.
func OrderMoves(moves []game.Move) []game.Move {
	slices.SortStableFunc(moves, func(a, b game.Move) int {
		return priority(b) - priority(a)
	})
	return moves
}

func priority(m game.Move) int {
	switch {
	case game.IsCorner(m.Row, m.Col):
		return CORNER_PRIORITY
	case game.IsBorder(m.Row, m.Col):
		return EDGE_PRIORITY
	default:
		return 0
	}
}
