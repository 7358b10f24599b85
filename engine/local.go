package engine

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/gamemaster"
	"othello/meta"
	"othello/searcher"
	"othello/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Local runs one game between two players in this process.
type Local struct {
	id       string
	session  *gamemaster.Session
	players  map[game.Disk]Player
	maxTurns int
	rng      *rand.Rand
}

type LocalOption func(e *Local)

func WithMaxTurns(turns int) LocalOption {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithGameSeed seeds the random moves that replace failed player turns.
func WithGameSeed(seed uint64) LocalOption {
	return func(e *Local) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func NewLocal(mode game.Mode, black, white Player, opts ...LocalOption) *Local {
	e := &Local{ // Default values
		id:       uuid.NewString(),
		session:  gamemaster.NewSession(mode),
		players:  map[game.Disk]Player{game.Black: black, game.White: white},
		maxTurns: meta.MAX_TURNS,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Local) ID() string {
	return e.id
}

// Session exposes the game for observers, e.g. a renderer reading updates.
func (e *Local) Session() *gamemaster.Session {
	return e.session
}

// Run plays until the game is over, the turn limit is reached or ctx is
// done.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{ID: e.id, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Str("game", e.id).Msgf("%s (black) vs %s (white)", e.players[game.Black].Name(), e.players[game.White].Name())

	for turn := 1; !e.session.IsOver() && turn <= e.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return e.finish(gameMetric), moveMetrics, err
		}

		state := e.session.State()
		player := e.players[state.Current]
		legal := state.LegalMoves()

		if len(legal) == 0 {
			if err := e.session.Pass(); err != nil {
				return e.finish(gameMetric), moveMetrics, err
			}
			gameMetric.Passes++
			log.Info().Str("player", state.Current.String()).Msg("pass")
			continue
		}

		d, err := player.FindMove(ctx, state)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return e.finish(gameMetric), moveMetrics, ctxErr
		}
		if err != nil || !d.Found || !utils.Contains(legal, d.Move) {
			fallback, _ := searcher.RandomMove(state, e.rng)
			log.Error().Err(err).
				Str("player", player.Name()).
				Str("move", d.Move.String()).
				Str("fallback", fallback.String()).
				Msg("player returned no legal move")
			d.Move = fallback
			d.Found = true
			d.Metric.Fallback = true
		}

		if err := e.session.Play(d.Move); err != nil {
			return e.finish(gameMetric), moveMetrics, errors.WithMessagef(err, "turn %d", turn)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       int(state.Current),
			Move:         d.Move.String(),
			Score:        d.Score,
			SearchMetric: d.Metric,
		})
		gameMetric.TotalMoves++

		log.Debug().
			Int("turn", turn).
			Str("player", state.Current.String()).
			Str("strategy", d.Metric.Strategy).
			Str("move", d.Move.String()).
			Float64("score", d.Score).
			Dur("duration", d.Metric.Duration).
			Msg("move")
	}

	gameMetric = e.finish(gameMetric)
	log.Info().Str("game", e.id).Msgf("winner %s, %d-%d", gameMetric.Winner, gameMetric.Black, gameMetric.White)
	return gameMetric, moveMetrics, nil
}

func (e *Local) finish(m metrics.GameMetric) metrics.GameMetric {
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Black, m.White, _ = e.session.State().Count()
	if e.session.IsOver() {
		m.Winner = winnerName(e.session.Winner())
	}
	return m
}

func winnerName(d game.Disk) string {
	if d == game.Tie {
		return "tie"
	}
	return d.String()
}
