package searcher

import (
	"context"
	"math"
	"time"

	"othello/game"
	"othello/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Annealing samples random legal moves, moving to a candidate when it scores
// better or, with probability exp(delta/T), when it scores worse. The
// temperature T falls from 1 to 0 over the time budget, or over a fixed
// number of iterations when one is set.
type Annealing struct {
	opts options
}

func NewAnnealing(opts ...Option) *Annealing {
	a := &Annealing{opts: newOptions(opts...)}
	if a.opts.duration <= 0 {
		a.opts.duration = meta.ANNEALING_BUDGET
	}
	return a
}

func (a *Annealing) Name() string {
	return AnnealingName
}

func (a *Annealing) FindMove(ctx context.Context, state *game.State) (Result, error) {
	a.opts.metrics.Start(AnnealingName)
	root := state.Copy()
	legal := root.LegalMoves()
	if len(legal) == 0 {
		return Result{Score: a.opts.evaluate(root), Metric: a.opts.metrics.Complete()}, nil
	}

	rng := a.opts.rng()
	scores := make(map[game.Move]float64, len(legal))
	score := func(move game.Move) (float64, error) {
		if s, ok := scores[move]; ok {
			return s, nil
		}
		s, err := scoreMove(root, move, a.opts.evaluate)
		if err != nil {
			return 0, err
		}
		a.opts.metrics.AddNode()
		scores[move] = s
		return s, nil
	}

	start := time.Now()
	deadline := start.Add(a.opts.duration)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	total := deadline.Sub(start)

	current := legal[rng.Intn(len(legal))]
	currentScore, err := score(current)
	if err != nil {
		return Result{}, err
	}
	best, bestScore := current, currentScore

	for i := 0; ; i++ {
		var temperature float64
		if a.opts.iterations > 0 {
			if i >= a.opts.iterations {
				break
			}
			temperature = 1 - float64(i)/float64(a.opts.iterations)
		} else if total > 0 {
			temperature = float64(time.Until(deadline)) / float64(total)
		}
		if temperature <= 0 || stopped(ctx) {
			break
		}

		candidate := legal[rng.Intn(len(legal))]
		candidateScore, err := score(candidate)
		if err != nil {
			return Result{}, err
		}

		accepted := candidateScore > currentScore || a.accept(candidateScore-currentScore, temperature, rng)
		if accepted {
			current, currentScore = candidate, candidateScore
		}
		if candidateScore > bestScore {
			best, bestScore = candidate, candidateScore
		}
		a.opts.metrics.AddIteration(accepted)
	}

	result := Result{Move: best, Score: bestScore, Found: true, Metric: a.opts.metrics.Complete()}
	log.Debug().Msgf("annealing picked %s (%.2f) after %d iterations", result.Move, result.Score, result.Metric.Iterations)
	return result, nil
}

// accept decides on a candidate that is not better than the current move.
func (a *Annealing) accept(delta, temperature float64, rng *rand.Rand) bool {
	p := math.Exp(delta / temperature)
	if a.opts.threshold > 0 {
		return p > a.opts.threshold
	}
	return rng.Float64() < p
}
