package experiments

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"othello/config"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Standing struct {
	Name   string
	Wins   int
	Losses int
	Ties   int
}

type Result struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Standings []Standing // Most wins first
	Dir       string     // Where records were written, empty when not stored
}

type match struct {
	game         int
	black, white int // Index into the agent list
}

// RunTournament plays every ordered pairing of the configured agents
// cfg.Games times, up to cfg.Parallel games at once, and stores the records
// under cfg.Output when set.
func RunTournament(ctx context.Context, cfg config.TournamentConfig, profiles game.Profiles) (Result, error) {
	pairings, err := cfg.Pairings()
	if err != nil {
		return Result{}, err
	}
	index := make(map[string]int, len(cfg.Agents))
	for i, a := range cfg.Agents {
		index[a.Name] = i
	}

	var matches []match
	for _, pair := range pairings {
		for i := 0; i < cfg.Games; i++ {
			matches = append(matches, match{
				game:  len(matches) + 1,
				black: index[pair[0].Name],
				white: index[pair[1].Name],
			})
		}
	}
	log.Info().Msgf("starting tournament of %d games between %d agents", len(matches), len(cfg.Agents))

	var (
		mu     sync.Mutex
		result Result
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Parallel))
	for _, m := range matches {
		g.Go(func() error {
			// Agents carry per-game search state, so every game builds its own
			black, err := agent.New(cfg.Agents[m.black].Config, profiles)
			if err != nil {
				return err
			}
			white, err := agent.New(cfg.Agents[m.white].Config, profiles)
			if err != nil {
				return err
			}

			e := engine.NewLocal(game.ModeAuto, engine.NewAgentPlayer(black), engine.NewAgentPlayer(white))
			gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			result.Games = append(result.Games, metrics.GameRecord{
				Game:       m.game,
				BlackAgent: m.black + 1,
				WhiteAgent: m.white + 1,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: m.game, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d of %d: %s (black) vs %s (white), winner %s",
				m.game, len(matches), cfg.Agents[m.black].Name, cfg.Agents[m.white].Name, gameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	slices.SortFunc(result.Games, func(a, b metrics.GameRecord) int { return a.Game - b.Game })
	slices.SortStableFunc(result.Moves, func(a, b metrics.MoveRecord) int { return a.Game - b.Game })
	result.Standings = standings(cfg.Agents, result.Games)

	if cfg.Output != "" {
		dir, err := store(cfg, result)
		if err != nil {
			return Result{}, err
		}
		result.Dir = dir
	}
	log.Info().Msgf("completed tournament of %d games", len(matches))
	return result, nil
}

func standings(agents []config.NamedAgent, games []metrics.GameRecord) []Standing {
	table := make([]Standing, len(agents))
	for i, a := range agents {
		table[i].Name = a.Name
	}
	for _, g := range games {
		black, white := &table[g.BlackAgent-1], &table[g.WhiteAgent-1]
		switch g.Winner {
		case game.Black.String():
			black.Wins++
			white.Losses++
		case game.White.String():
			white.Wins++
			black.Losses++
		default:
			black.Ties++
			white.Ties++
		}
	}
	slices.SortStableFunc(table, func(a, b Standing) int { return b.Wins - a.Wins })
	return table
}

func store(cfg config.TournamentConfig, result Result) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output, "tournament")
	if err != nil {
		return "", err
	}

	configs := make([]metrics.AgentConfig, 0, len(cfg.Agents))
	for i, a := range cfg.Agents {
		profile := a.Profile
		if profile == "" {
			profile = a.Strategy.DefaultProfile()
		}
		configs = append(configs, metrics.AgentConfig{
			ID:       i + 1,
			Name:     a.Name,
			Strategy: a.Strategy.String(),
			Profile:  profile,
			Budget:   budget(a.Config),
		})
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", err
	}
	log.Info().Msgf("stored tournament records in %s", writer.Dir())
	return writer.Dir(), nil
}

// budget summarises the search limits of an agent for the records.
func budget(c agent.Config) string {
	var parts []string
	add := func(name string, v any, set bool) {
		if set {
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	add("depth", c.Depth, c.Depth > 0)
	add("duration", c.Duration, c.Duration > 0)
	add("generations", c.Generations, c.Generations > 0)
	add("population", c.Population, c.Population > 0)
	add("iterations", c.Iterations, c.Iterations > 0)
	add("goroutines", c.Goroutines, c.Goroutines > 0)
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, " ")
}
