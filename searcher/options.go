package searcher

import (
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"go.uber.org/atomic"
	"golang.org/x/exp/rand"
)

// Option configures any searcher. Options that do not apply to a strategy are
// ignored by it.
type Option func(o *options)

type options struct {
	evaluate     game.Evaluate
	depth        int
	duration     time.Duration
	generations  int
	population   int
	mutationRate float64
	goroutines   int
	iterations   int
	threshold    float64 // 0 draws a fresh uniform number per candidate
	seed         uint64
	seeded       bool
	calls        *atomic.Uint64
	cache        *Cache
	metrics      metrics.Collector
}

func newOptions(opts ...Option) options {
	o := options{ // Default values
		evaluate:     game.BuiltinProfiles()[game.ProfileClassic].Evaluator(),
		depth:        meta.DEPTH,
		generations:  meta.GENERATIONS,
		population:   meta.POPULATION,
		mutationRate: meta.MUTATION_RATE,
		goroutines:   1,
		calls:        atomic.NewUint64(0),
		metrics:      metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// rng returns a generator for one search. Seeded searchers are reproducible
// across runs; each call still gets its own stream.
func (o *options) rng() *rand.Rand {
	seed := o.seed
	if !o.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed + o.calls.Inc()))
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(o *options) {
		if evaluate != nil {
			o.evaluate = evaluate
		}
	}
}

func WithDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.depth = depth
		}
	}
}

// WithDuration bounds a search by wall clock. Alpha-beta switches to
// iterative deepening; annealing uses it as its cooling schedule.
func WithDuration(duration time.Duration) Option {
	return func(o *options) {
		if duration > 0 {
			o.duration = duration
		}
	}
}

func WithGenerations(generations int) Option {
	return func(o *options) {
		if generations > 0 {
			o.generations = generations
		}
	}
}

func WithPopulation(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.population = size
		}
	}
}

func WithMutationRate(rate float64) Option {
	return func(o *options) {
		if rate >= 0 && rate <= 1 {
			o.mutationRate = rate
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(o *options) {
		if goroutines > 0 {
			o.goroutines = goroutines
		}
	}
}

// WithIterations replaces the wall clock cooling schedule of annealing with
// a fixed number of steps.
func WithIterations(iterations int) Option {
	return func(o *options) {
		if iterations > 0 {
			o.iterations = iterations
		}
	}
}

// WithAcceptanceThreshold makes annealing accept a worse candidate when its
// acceptance probability exceeds threshold, instead of drawing at random.
func WithAcceptanceThreshold(threshold float64) Option {
	return func(o *options) {
		if threshold > 0 && threshold < 1 {
			o.threshold = threshold
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithCache shares a cache across searches. Only share it between searchers
// using the same evaluation function.
func WithCache(cache *Cache) Option {
	return func(o *options) {
		if cache != nil {
			o.cache = cache
		}
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}
