package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"othello/config"
	"othello/engine"
	"othello/experiments"
	"othello/game"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "", "Game mode: friend, ai or auto")
	black := flag.String("black", "", "Strategy of the black machine player")
	white := flag.String("white", "", "Strategy of the white machine player")
	experiment := flag.String("experiment", "", "Experiment to run instead of a game: tournament")
	games := flag.Int("games", 0, "Games per pairing and color in a tournament")
	serve := flag.String("serve", "", "Serve moves over HTTP on this address instead of playing, e.g. :8080")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := override(&cfg, *mode, *black, *white, *games); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *serve != "":
		err = agent.Serve(ctx, *serve, cfg.WeightProfiles())
	case *experiment == "tournament":
		err = runTournament(ctx, cfg)
	case *experiment != "":
		err = errors.Errorf("unknown experiment %q", *experiment)
	default:
		err = play(ctx, cfg)
	}
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func override(cfg *config.Config, mode, black, white string, games int) error {
	if mode != "" {
		m, err := game.ParseMode(mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}
	for _, seat := range []struct {
		name string
		seat *config.Seat
	}{{black, &cfg.Black}, {white, &cfg.White}} {
		if seat.name == "" {
			continue
		}
		id, err := agent.ParseStrategy(seat.name)
		if err != nil {
			return err
		}
		seat.seat.Strategy = id
		seat.seat.Profile = ""
	}
	if games > 0 {
		cfg.Tournament.Games = games
	}
	return nil
}

func runTournament(ctx context.Context, cfg config.Config) error {
	result, err := experiments.RunTournament(ctx, cfg.Tournament, cfg.WeightProfiles())
	if err != nil {
		return err
	}
	for _, s := range result.Standings {
		fmt.Printf("%-16s %3d wins %3d losses %3d ties\n", s.Name, s.Wins, s.Losses, s.Ties)
	}
	return nil
}

func play(ctx context.Context, cfg config.Config) error {
	input := make(chan game.Move)
	go readMoves(input)

	human := func(game.Disk) engine.Player {
		return engine.NewHumanPlayer(input, engine.WithTimeout(cfg.HumanTimeout), engine.WithPrompt(prompt))
	}
	machine := func(color game.Disk) (engine.Player, error) {
		seat := cfg.White
		if color == game.Black {
			seat = cfg.Black
		}
		if seat.Remote != "" {
			return engine.NewRemotePlayer(seat.Remote, seat.Config, nil), nil
		}
		a, err := agent.New(seat.Config, cfg.WeightProfiles())
		if err != nil {
			return nil, err
		}
		return engine.NewAgentPlayer(a), nil
	}

	blackPlayer, whitePlayer, err := engine.PlayersFor(cfg.Mode, human, machine)
	if err != nil {
		return err
	}
	e := engine.NewLocal(cfg.Mode, blackPlayer, whitePlayer)

	done := make(chan struct{})
	go render(e, done)
	gameMetric, _, err := e.Run(ctx)
	close(done)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\nGame over: black %d, white %d, winner %s\n", e.Session().State(), gameMetric.Black, gameMetric.White, gameMetric.Winner)
	return nil
}

// readMoves feeds parsed stdin lines to the human players.
func readMoves(input chan<- game.Move) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		move, err := game.ParseMove(line)
		if err != nil {
			fmt.Println("Enter a move like d3 or \"2 3\":", err)
			continue
		}
		input <- move
	}
	close(input)
}

func prompt(state *game.State, reason string) {
	if reason != "" {
		fmt.Printf("Invalid move: %s\n", reason)
	}
	moves := state.LegalMoves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	fmt.Printf("\n%s\n%s to move, legal: %s\n> ", state, state.Current, strings.Join(names, " "))
}

// render prints every move published by the session until done.
func render(e *engine.Local, done <-chan struct{}) {
	getUpdate := e.Session().Updates()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			for {
				u, ok := getUpdate()
				if !ok {
					break
				}
				if u.Passed {
					fmt.Printf("%s passes\n", u.State.Current.Opponent())
					continue
				}
				fmt.Printf("%s plays %s\n", u.State.Current.Opponent(), u.Move)
			}
		}
	}
}
