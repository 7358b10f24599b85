package engine

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"othello/searcher/agent"
	"othello/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const HumanName = "human"

// HumanPlayer receives moves on a channel, typically fed from a terminal or
// a front end. A turn that runs past its timeout is played with a random
// legal move.
type HumanPlayer struct {
	input   <-chan game.Move
	prompt  func(state *game.State, reason string)
	timeout time.Duration
	poll    time.Duration
	rng     *rand.Rand
}

type HumanOption func(h *HumanPlayer)

func WithTimeout(timeout time.Duration) HumanOption {
	return func(h *HumanPlayer) {
		if timeout > 0 {
			h.timeout = timeout
		}
	}
}

func WithPollInterval(poll time.Duration) HumanOption {
	return func(h *HumanPlayer) {
		if poll > 0 {
			h.poll = poll
		}
	}
}

// WithPrompt is called at the start of a turn with an empty reason, and
// again with a reason after each rejected move.
func WithPrompt(prompt func(state *game.State, reason string)) HumanOption {
	return func(h *HumanPlayer) {
		if prompt != nil {
			h.prompt = prompt
		}
	}
}

func WithHumanSeed(seed uint64) HumanOption {
	return func(h *HumanPlayer) {
		h.rng = rand.New(rand.NewSource(seed))
	}
}

func NewHumanPlayer(input <-chan game.Move, opts ...HumanOption) *HumanPlayer {
	h := &HumanPlayer{ // Default values
		input:   input,
		prompt:  func(*game.State, string) {},
		timeout: meta.HUMAN_TIMEOUT,
		poll:    meta.POLL_INTERVAL,
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HumanPlayer) Name() string {
	return HumanName
}

// FindMove waits for a legal move until the turn deadline, checked every
// poll interval. Illegal input is rejected and the player prompted again.
func (h *HumanPlayer) FindMove(ctx context.Context, state *game.State) (agent.Decision, error) {
	start := time.Now()
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return agent.Decision{Metric: metrics.SearchMetric{Strategy: HumanName}}, nil
	}

	deadline := start.Add(h.timeout)
	ticker := time.NewTicker(h.poll)
	defer ticker.Stop()

	h.prompt(state, "")
	for {
		select {
		case move, ok := <-h.input:
			if !ok {
				return h.forced(state, start, "input closed"), nil
			}
			if utils.Contains(legal, move) {
				return agent.Decision{
					Move:   move,
					Found:  true,
					Metric: metrics.SearchMetric{Strategy: HumanName, Duration: time.Since(start)},
				}, nil
			}
			reason := "illegal move"
			if err := state.Copy().Apply(move); err != nil {
				reason = err.Error()
			}
			log.Warn().Str("move", move.String()).Msg(reason)
			h.prompt(state, reason)
		case now := <-ticker.C:
			if now.After(deadline) {
				return h.forced(state, start, "turn timed out"), nil
			}
		case <-ctx.Done():
			return h.forced(state, start, "game cancelled"), nil
		}
	}
}

func (h *HumanPlayer) forced(state *game.State, start time.Time, reason string) agent.Decision {
	move, _ := searcher.RandomMove(state, h.rng)
	log.Info().Str("player", state.Current.String()).Str("move", move.String()).Msgf("%s, playing random move", reason)
	return agent.Decision{
		Move:   move,
		Found:  true,
		Metric: metrics.SearchMetric{Strategy: HumanName, Duration: time.Since(start), Fallback: true},
	}
}
