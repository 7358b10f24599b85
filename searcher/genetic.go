package searcher

import (
	"context"
	"sync"

	"othello/experiments/metrics"
	"othello/game"
	"othello/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Genetic evolves a population of candidate moves. Fitness is the evaluation
// of the position after the move, for the mover. The population size stays
// constant across generations.
type Genetic struct {
	opts options
}

func NewGenetic(opts ...Option) *Genetic {
	return &Genetic{opts: newOptions(opts...)}
}

func (g *Genetic) Name() string {
	return GeneticName
}

func (g *Genetic) FindMove(ctx context.Context, state *game.State) (Result, error) {
	ctx, cancel := withBudget(ctx, g.opts.duration)
	defer cancel()

	g.opts.metrics.Start(GeneticName)
	root := state.Copy()
	legal := root.LegalMoves()
	if len(legal) == 0 {
		return Result{Score: g.opts.evaluate(root), Metric: g.opts.metrics.Complete()}, nil
	}

	rng := g.opts.rng()
	f := &fitness{
		root:       root,
		evaluate:   g.opts.evaluate,
		goroutines: g.opts.goroutines,
		scores:     make(map[game.Move]float64, len(legal)),
		metrics:    g.opts.metrics,
	}

	population := make([]game.Move, g.opts.population)
	for i := range population {
		population[i] = legal[rng.Intn(len(legal))]
	}

	for gen := 0; gen < g.opts.generations; gen++ {
		if stopped(ctx) {
			break
		}
		scores, err := f.of(population)
		if err != nil {
			return Result{}, err
		}
		parents := selectParents(population, scores)
		population = g.breed(parents, legal, rng)
		g.opts.metrics.AddGeneration()
	}

	scores, err := f.of(population)
	if err != nil {
		return Result{}, err
	}
	best := 0
	for i := range population {
		if scores[i] > scores[best] {
			best = i
		}
	}

	result := Result{Move: population[best], Score: scores[best], Found: true, Metric: g.opts.metrics.Complete()}
	log.Debug().Msgf("genetic picked %s (%.2f) after %d generations", result.Move, result.Score, result.Metric.Generations)
	return result, nil
}

// selectParents keeps the fitter half of the population, ties in population
// order.
func selectParents(population []game.Move, scores []float64) []game.Move {
	order := make([]int, len(population))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return 0
		}
	})

	parents := make([]game.Move, max(1, len(population)/2))
	for i := range parents {
		parents[i] = population[order[i]]
	}
	return parents
}

// breed pairs each parent with the next one, wrapping around, until the next
// generation is as large as the current one.
func (g *Genetic) breed(parents, legal []game.Move, rng *rand.Rand) []game.Move {
	next := make([]game.Move, 0, g.opts.population)
	for i := 0; len(next) < g.opts.population; i++ {
		a, b := parents[i%len(parents)], parents[(i+1)%len(parents)]
		for _, child := range crossover(a, b) {
			if len(next) == g.opts.population {
				break
			}
			next = append(next, g.mutate(child, legal, rng))
		}
	}
	return next
}

// crossover averages the coordinates of two parents, rounding down. Both
// offspring are that midpoint; mutate then diversifies them independently.
func crossover(a, b game.Move) [2]game.Move {
	child := game.Move{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
	return [2]game.Move{child, child}
}

// mutate replaces a child by a random legal move with the mutation rate, and
// always when the child is not legal.
func (g *Genetic) mutate(child game.Move, legal []game.Move, rng *rand.Rand) game.Move {
	if rng.Float64() < g.opts.mutationRate || !utils.Contains(legal, child) {
		return legal[rng.Intn(len(legal))]
	}
	return child
}

// fitness memoises move scores for one search and evaluates new moves on a
// pool of goroutines.
type fitness struct {
	root       *game.State
	evaluate   game.Evaluate
	goroutines int
	scores     map[game.Move]float64
	metrics    metrics.Collector
}

func (f *fitness) of(population []game.Move) ([]float64, error) {
	var pending []game.Move
	for _, move := range population {
		if _, ok := f.scores[move]; !ok && !utils.Contains(pending, move) {
			pending = append(pending, move)
		}
	}

	if len(pending) > 0 {
		task := make(chan game.Move, len(pending))
		for _, move := range pending {
			task <- move
		}
		close(task)

		var mu sync.Mutex
		var eg errgroup.Group
		for i := 0; i < min(f.goroutines, len(pending)); i++ {
			eg.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = errors.Errorf("scoring genetic candidate: %v", r)
					}
				}()
				for move := range task {
					score, err := scoreMove(f.root, move, f.evaluate)
					if err != nil {
						return err
					}
					f.metrics.AddNode()

					mu.Lock()
					f.scores[move] = score
					mu.Unlock()
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	scores := make([]float64, len(population))
	for i, move := range population {
		scores[i] = f.scores[move]
	}
	return scores, nil
}
