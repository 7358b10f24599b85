package searcher

import (
	"context"

	"othello/game"
)

// Random plays a uniformly random legal move.
type Random struct {
	opts options
}

func NewRandom(opts ...Option) *Random {
	return &Random{opts: newOptions(opts...)}
}

func (r *Random) Name() string {
	return RandomName
}

func (r *Random) FindMove(_ context.Context, state *game.State) (Result, error) {
	r.opts.metrics.Start(RandomName)
	move, ok := RandomMove(state, r.opts.rng())
	if !ok {
		return Result{Score: r.opts.evaluate(state), Metric: r.opts.metrics.Complete()}, nil
	}
	score, err := scoreMove(state, move, r.opts.evaluate)
	if err != nil {
		return Result{}, err
	}
	return Result{Move: move, Score: score, Found: true, Metric: r.opts.metrics.Complete()}, nil
}
