package gamemaster

import (
	"sync"

	"othello/game"
	"othello/meta"

	"github.com/pkg/errors"
)

var ErrGameOver = errors.New("game is over")

// Update is published after every move or pass.
type Update struct {
	Move   game.Move
	Passed bool
	State  *game.State
}

// UpdateGetter returns the next unread update without blocking. ok is false
// when there is none yet, or the game is over and every update was read.
type UpdateGetter func() (u Update, ok bool)

// Session owns the authoritative state of one game. Players only ever see
// copies.
type Session struct {
	mu       sync.Mutex
	state    *game.State
	updateCh chan Update
	over     bool
}

func NewSession(mode game.Mode) *Session {
	return &Session{
		state: game.NewGame(mode),
		// Room for every turn of a game, so publishing never blocks
		updateCh: make(chan Update, meta.MAX_TURNS+1),
	}
}

// Updates returns a getter over the moves played so far. There is a single
// stream per session; concurrent readers split it.
func (s *Session) Updates() UpdateGetter {
	return func() (Update, bool) {
		select {
		case u, ok := <-s.updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}
}

func (s *Session) State() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Copy()
}

func (s *Session) LegalMoves() []game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LegalMoves()
}

// Play applies move for the player to move. Illegal moves are returned as
// *game.IllegalMoveError and leave the state unchanged.
func (s *Session) Play(move game.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over {
		return ErrGameOver
	}
	next := s.state.Copy()
	if err := next.Apply(move); err != nil {
		return err
	}
	s.state = next
	s.publish(Update{Move: move, State: next.Copy()})
	return nil
}

// Pass hands the turn to the opponent.
func (s *Session) Pass() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over {
		return ErrGameOver
	}
	s.state.Pass()
	s.publish(Update{Passed: true, State: s.state.Copy()})
	return nil
}

// publish sends u and closes the stream once the game has ended.
func (s *Session) publish(u Update) {
	select {
	case s.updateCh <- u:
	default: // Stream full, nobody is reading
	}
	if s.state.IsTerminal() {
		s.over = true
		close(s.updateCh)
	}
}

func (s *Session) IsOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over || s.state.IsTerminal()
}

// Winner is game.Tie until the game is over, then the side with more disks.
func (s *Session) Winner() game.Disk {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.over && !s.state.IsTerminal() {
		return game.Tie
	}
	return s.state.Winner()
}
