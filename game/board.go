package game

import "strings"

// Disk is the content of a cell, and doubles as a player identity.
type Disk int8

const (
	Empty Disk = 0
	Black Disk = 1 // Moves first
	White Disk = -1
)

// Tie is the outcome reported by Winner when disk counts are equal.
const Tie = Empty

func (d Disk) Opponent() Disk {
	return -d
}

func (d Disk) String() string {
	switch d {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

func (d Disk) symbol() byte {
	switch d {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '.'
	}
}

// Board is a value type: assigning it copies every cell.
type Board [Size][Size]Disk

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var corners = [4]Move{{0, 0}, {0, Size - 1}, {Size - 1, 0}, {Size - 1, Size - 1}}

// edges lists the 24 border cells that are not corners
var edges = func() []Move {
	cells := make([]Move, 0, 4*(Size-2))
	for i := 1; i < Size-1; i++ {
		cells = append(cells, Move{0, i}, Move{Size - 1, i}, Move{i, 0}, Move{i, Size - 1})
	}
	return cells
}()

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// IsCorner reports whether the cell is one of the four corners.
func IsCorner(row, col int) bool {
	return (row == 0 || row == Size-1) && (col == 0 || col == Size-1)
}

// IsBorder reports whether the cell lies on the outer ring, corners included.
func IsBorder(row, col int) bool {
	return row == 0 || row == Size-1 || col == 0 || col == Size-1
}

// Count tallies disks of each kind.
func (b *Board) Count() (black, white, empty int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case Black:
				black++
			case White:
				white++
			default:
				empty++
			}
		}
	}
	return black, white, empty
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < Size; r++ {
		sb.WriteByte(byte('1' + r))
		for c := 0; c < Size; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(b[r][c].symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
