package game

import (
	"hash/fnv"

	"github.com/pkg/errors"
)

// Mode selects who is seated at the board. It only matters to the turn
// coordinator; the engine and the searchers ignore it.
type Mode int

const (
	ModeFriend Mode = iota // Human vs human
	ModeAI                 // Human (black) vs AI (white)
	ModeAuto               // AI vs AI
)

var ErrUnknownMode = errors.New("unknown game mode")

func (m Mode) String() string {
	switch m {
	case ModeFriend:
		return "friend"
	case ModeAI:
		return "ai"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "friend", "":
		return ModeFriend, nil
	case "ai":
		return ModeAI, nil
	case "auto":
		return ModeAuto, nil
	}
	return 0, errors.WithMessagef(ErrUnknownMode, "%q", s)
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is the dynamic state of a game. Apply is the only operation that
// changes board contents; searchers work on copies.
type State struct {
	Board   Board
	Current Disk // Player to move
	Mode    Mode
}

// NewGame returns the standard opening position with black to move.
func NewGame(mode Mode) *State {
	s := &State{Current: Black, Mode: mode}
	s.Board[3][3] = White
	s.Board[3][4] = Black
	s.Board[4][3] = Black
	s.Board[4][4] = White
	return s
}

func (s *State) Copy() *State {
	c := *s
	return &c
}

// Perspective returns a copy of the state with player to move, so that an
// Evaluate scores the position for that player.
func Perspective(s *State, player Disk) *State {
	c := s.Copy()
	c.Current = player
	return c
}

func (s *State) Count() (black, white, empty int) {
	return s.Board.Count()
}

// IsLegal reports whether the player to move may place a disk at (row, col).
func (s *State) IsLegal(row, col int) bool {
	if !inBounds(row, col) || s.Board[row][col] != Empty {
		return false
	}
	for _, d := range directions {
		if s.bounded(row, col, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// bounded returns the length of the run of opponent disks starting next to
// (row, col) in direction (dr, dc) that is closed by a disk of the player to
// move, or 0 if the run is open or empty.
func (s *State) bounded(row, col, dr, dc int) int {
	opponent := s.Current.Opponent()
	n := 0
	r, c := row+dr, col+dc
	for inBounds(r, c) && s.Board[r][c] == opponent {
		n++
		r += dr
		c += dc
	}
	if n == 0 || !inBounds(r, c) || s.Board[r][c] != s.Current {
		return 0
	}
	return n
}

// Flips lists the disks that placing at (row, col) would turn over, in
// direction order. Empty when the move is not legal.
func (s *State) Flips(row, col int) []Move {
	if !inBounds(row, col) || s.Board[row][col] != Empty {
		return nil
	}
	var flips []Move
	for _, d := range directions {
		n := s.bounded(row, col, d[0], d[1])
		for i := 1; i <= n; i++ {
			flips = append(flips, Move{row + i*d[0], col + i*d[1]})
		}
	}
	return flips
}

// Apply places a disk for the player to move, flips every bounded run in all
// eight directions and hands the turn to the opponent.
func (s *State) Apply(m Move) error {
	if !inBounds(m.Row, m.Col) {
		return &IllegalMoveError{Move: m, Player: s.Current, Reason: OutOfBounds}
	}
	if s.Board[m.Row][m.Col] != Empty {
		return &IllegalMoveError{Move: m, Player: s.Current, Reason: Occupied}
	}
	flips := s.Flips(m.Row, m.Col)
	if len(flips) == 0 {
		return &IllegalMoveError{Move: m, Player: s.Current, Reason: NoFlips}
	}

	s.Board[m.Row][m.Col] = s.Current
	for _, f := range flips {
		s.Board[f.Row][f.Col] = s.Current
	}
	s.Current = s.Current.Opponent()
	return nil
}

// Pass hands the turn to the opponent without touching the board.
func (s *State) Pass() {
	s.Current = s.Current.Opponent()
}

// LegalMoves enumerates legal moves in row-major order.
func (s *State) LegalMoves() []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.IsLegal(r, c) {
				moves = append(moves, Move{r, c})
			}
		}
	}
	return moves
}

// HasLegalMove reports whether the player to move can place a disk.
func (s *State) HasLegalMove() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.IsLegal(r, c) {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports game over: the player to move has no legal move, or the
// board is full. A player without moves ends the game rather than passing.
func (s *State) IsTerminal() bool {
	if !s.HasLegalMove() {
		return true
	}
	_, _, empty := s.Count()
	return empty == 0
}

// Winner compares disk counts. Returns Tie on equal counts.
func (s *State) Winner() Disk {
	black, white, _ := s.Count()
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Tie
	}
}

func (s *State) Hash() StateHash {
	var buf [Size*Size + 1]byte

	// Hash current player, then cells row by row
	buf[0] = byte(s.Current)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			buf[1+r*Size+c] = byte(s.Board[r][c])
		}
	}

	hasher := fnv.New64a()
	hasher.Write(buf[:])
	return StateHash(hasher.Sum64())
}

func (s *State) String() string {
	return s.Board.String()
}
