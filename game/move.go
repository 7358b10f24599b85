package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedMove = errors.New("malformed move")

// Move names the cell a disk is placed on.
type Move struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the move in algebraic notation, column letter then row
// number, e.g. (2,3) is "d3".
func (m Move) String() string {
	if !inBounds(m.Row, m.Col) {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove accepts algebraic notation ("d3") or a "row col" pair ("2 3").
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if fields := strings.Fields(s); len(fields) == 2 {
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return Move{}, errors.WithMessagef(ErrMalformedMove, "row %q", fields[0])
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return Move{}, errors.WithMessagef(ErrMalformedMove, "col %q", fields[1])
		}
		return Move{Row: row, Col: col}, nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] >= 'a'+Size || s[1] < '1' || s[1] >= '1'+Size {
		return Move{}, errors.WithMessagef(ErrMalformedMove, "%q", s)
	}
	return Move{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
}
