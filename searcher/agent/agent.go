package agent

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"othello/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrInvalidConfig = errors.New("invalid agent config")

// Config describes an agent. Zero values select the strategy defaults.
type Config struct {
	Strategy     StrategyID    `yaml:"strategy" json:"strategy"`
	Profile      string        `yaml:"profile" json:"profile,omitempty"`
	Depth        int           `yaml:"depth" json:"depth,omitempty"`
	Duration     time.Duration `yaml:"duration" json:"duration,omitempty"`
	Generations  int           `yaml:"generations" json:"generations,omitempty"`
	Population   int           `yaml:"population" json:"population,omitempty"`
	MutationRate float64       `yaml:"mutation_rate" json:"mutation_rate,omitempty"`
	Goroutines   int           `yaml:"goroutines" json:"goroutines,omitempty"`
	Iterations   int           `yaml:"iterations" json:"iterations,omitempty"`
	Threshold    float64       `yaml:"acceptance_threshold" json:"acceptance_threshold,omitempty"`
	// FixedAcceptance compares against meta.ACCEPTANCE_THRESHOLD when Threshold is unset.
	FixedAcceptance bool    `yaml:"fixed_acceptance" json:"fixed_acceptance,omitempty"`
	Seed            *uint64 `yaml:"seed" json:"seed,omitempty"`
	SharedCache     bool    `yaml:"shared_cache" json:"shared_cache,omitempty"`
}

func (c Config) Validate() error {
	if !c.Strategy.valid() {
		return errors.WithMessagef(ErrUnknownStrategy, "%d", c.Strategy)
	}
	switch {
	case c.Depth < 0:
		return errors.WithMessagef(ErrInvalidConfig, "negative depth %d", c.Depth)
	case c.Duration < 0:
		return errors.WithMessagef(ErrInvalidConfig, "negative duration %s", c.Duration)
	case c.Generations < 0:
		return errors.WithMessagef(ErrInvalidConfig, "negative generations %d", c.Generations)
	case c.Population < 0 || c.Population == 1:
		return errors.WithMessagef(ErrInvalidConfig, "population %d", c.Population)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return errors.WithMessagef(ErrInvalidConfig, "mutation rate %g", c.MutationRate)
	case c.Goroutines < 0:
		return errors.WithMessagef(ErrInvalidConfig, "negative goroutines %d", c.Goroutines)
	case c.Iterations < 0:
		return errors.WithMessagef(ErrInvalidConfig, "negative iterations %d", c.Iterations)
	case c.Threshold < 0 || c.Threshold >= 1:
		return errors.WithMessagef(ErrInvalidConfig, "acceptance threshold %g", c.Threshold)
	}
	return nil
}

// Decision is the outcome of one agent turn. Found is false only when the
// player to move has no legal move.
type Decision struct {
	Move   game.Move
	Found  bool
	Score  float64
	Metric metrics.SearchMetric
}

// Agent plays moves with one strategy and weight profile for one game at a
// time. It never returns an illegal move: failing searches degrade to a
// random legal move.
type Agent struct {
	config   Config
	profile  game.Profile
	searcher searcher.Searcher
	rng      *rand.Rand
}

// New validates cfg and builds the agent. profiles may be nil for the
// builtin set.
func New(cfg Config, profiles game.Profiles) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = game.BuiltinProfiles()
	}
	name := cfg.Profile
	if name == "" {
		name = cfg.Strategy.DefaultProfile()
	}
	profile, err := profiles.Lookup(name)
	if err != nil {
		return nil, err
	}
	cfg.Profile = name
	if cfg.FixedAcceptance && cfg.Threshold == 0 {
		cfg.Threshold = meta.ACCEPTANCE_THRESHOLD
	}

	opts := []searcher.Option{
		searcher.WithEvaluationFn(profile.Evaluator()),
		searcher.WithDepth(cfg.Depth),
		searcher.WithDuration(cfg.Duration),
		searcher.WithGenerations(cfg.Generations),
		searcher.WithPopulation(cfg.Population),
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithIterations(cfg.Iterations),
		searcher.WithAcceptanceThreshold(cfg.Threshold),
		searcher.WithMetrics(),
	}
	if cfg.MutationRate > 0 {
		opts = append(opts, searcher.WithMutationRate(cfg.MutationRate))
	}
	if cfg.SharedCache {
		opts = append(opts, searcher.WithCache(searcher.NewCache(0)))
	}
	seed := uint64(time.Now().UnixNano())
	if cfg.Seed != nil {
		seed = *cfg.Seed
		opts = append(opts, searcher.WithSeed(seed))
	}

	a := &Agent{
		config:  cfg,
		profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
	}
	switch cfg.Strategy {
	case AlphaBeta:
		a.searcher = searcher.NewAlphaBeta(opts...)
	case Genetic:
		a.searcher = searcher.NewGenetic(opts...)
	case Annealing:
		a.searcher = searcher.NewAnnealing(opts...)
	case Random:
		a.searcher = searcher.NewRandom(opts...)
	}
	return a, nil
}

func (a *Agent) Config() Config {
	return a.config
}

func (a *Agent) String() string {
	return a.config.Strategy.String() + "/" + a.config.Profile
}

// FindMove searches a private copy of state.
func (a *Agent) FindMove(ctx context.Context, state *game.State) Decision {
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return Decision{Score: a.profile.Evaluator()(state), Metric: metrics.SearchMetric{Strategy: a.searcher.Name()}}
	}

	result, err := a.search(ctx, state.Copy())
	if err == nil && result.Found && utils.Contains(legal, result.Move) {
		return Decision{Move: result.Move, Found: true, Score: result.Score, Metric: result.Metric}
	}

	if err == nil {
		err = errors.Errorf("%s returned non-legal move %s", a.searcher.Name(), result.Move)
	}
	move := legal[a.rng.Intn(len(legal))]
	log.Warn().Err(err).Str("strategy", a.searcher.Name()).Str("move", move.String()).Msg("strategy failed, playing random move")

	metric := result.Metric
	metric.Strategy = a.searcher.Name()
	metric.Fallback = true
	return Decision{Move: move, Found: true, Metric: metric}
}

func (a *Agent) search(ctx context.Context, state *game.State) (result searcher.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s panicked: %v", a.searcher.Name(), r)
		}
	}()
	return a.searcher.FindMove(ctx, state)
}

// SelectMove runs strategy id with cfg on state. ok is false when the player
// to move has no legal move; err is only set for an invalid configuration.
func SelectMove(ctx context.Context, id StrategyID, state *game.State, cfg Config) (game.Move, bool, error) {
	cfg.Strategy = id
	a, err := New(cfg, nil)
	if err != nil {
		return game.Move{}, false, err
	}
	d := a.FindMove(ctx, state)
	return d.Move, d.Found, nil
}
