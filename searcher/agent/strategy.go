package agent

import (
	"strings"

	"othello/game"

	"github.com/pkg/errors"
)

// StrategyID names a move selection strategy.
type StrategyID int

const (
	AlphaBeta StrategyID = iota
	Genetic
	Annealing
	Random
)

var ErrUnknownStrategy = errors.New("unknown strategy")

func (id StrategyID) String() string {
	switch id {
	case AlphaBeta:
		return "alphabeta"
	case Genetic:
		return "genetic"
	case Annealing:
		return "annealing"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// ParseStrategy accepts short names as well as display names such as
// "Simulated Annealing".
func ParseStrategy(s string) (StrategyID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alphabeta", "alpha-beta", "alpha-beta pruning", "minimax":
		return AlphaBeta, nil
	case "genetic", "genetic algorithm":
		return Genetic, nil
	case "annealing", "simulated annealing":
		return Annealing, nil
	case "random":
		return Random, nil
	}
	return 0, errors.WithMessagef(ErrUnknownStrategy, "%q", s)
}

func (id *StrategyID) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id StrategyID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id StrategyID) valid() bool {
	return id >= AlphaBeta && id <= Random
}

// DefaultProfile is the weight profile a strategy uses when none is
// configured.
func (id StrategyID) DefaultProfile() string {
	switch id {
	case Genetic:
		return game.ProfileAdaptive
	case Annealing:
		return game.ProfileStable
	default:
		return game.ProfileClassic
	}
}
