package engine

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Player chooses moves for one side. The returned move is validated by the
// engine; an error or illegal move is replaced by a random legal move.
type Player interface {
	Name() string
	FindMove(ctx context.Context, state *game.State) (agent.Decision, error)
}

type agentPlayer struct {
	agent *agent.Agent
}

func NewAgentPlayer(a *agent.Agent) Player {
	return agentPlayer{agent: a}
}

func (p agentPlayer) Name() string {
	return p.agent.String()
}

func (p agentPlayer) FindMove(ctx context.Context, state *game.State) (agent.Decision, error) {
	return p.agent.FindMove(ctx, state), nil
}

type randomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer plays uniformly random legal moves. seed 0 seeds from the
// clock.
func NewRandomPlayer(seed uint64) Player {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return randomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p randomPlayer) Name() string {
	return searcher.RandomName
}

func (p randomPlayer) FindMove(_ context.Context, state *game.State) (agent.Decision, error) {
	move, ok := searcher.RandomMove(state, p.rng)
	return agent.Decision{Move: move, Found: ok, Metric: metrics.SearchMetric{Strategy: searcher.RandomName}}, nil
}

// PlayersFor seats players according to mode: two humans, a human (black)
// against the machine, or two machines.
func PlayersFor(mode game.Mode, human func(game.Disk) Player, machine func(game.Disk) (Player, error)) (black, white Player, err error) {
	switch mode {
	case game.ModeFriend:
		return human(game.Black), human(game.White), nil
	case game.ModeAI:
		white, err = machine(game.White)
		return human(game.Black), white, err
	case game.ModeAuto:
		if black, err = machine(game.Black); err != nil {
			return nil, nil, err
		}
		white, err = machine(game.White)
		return black, white, err
	}
	return nil, nil, errors.WithMessagef(game.ErrUnknownMode, "%d", mode)
}
