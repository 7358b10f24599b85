package game

// WipeoutScore is returned when one side has no disks left on the board.
const WipeoutScore = 1000.0

// Features holds the raw, unweighted evaluation terms of a position, all
// from the perspective of the player to move.
type Features struct {
	CoinParity      float64
	Mobility        float64
	CornerOccupancy float64
	Stability       float64
	EdgeOccupancy   float64
	Positional      float64
}

// Score evaluates the state for the player to move as a weighted sum of
// positional features. Pure in (s, w).
func Score(s *State, w Weights) float64 {
	own, opponent := s.disks()
	if own == 0 {
		return -WipeoutScore
	}
	if opponent == 0 {
		return WipeoutScore
	}

	f := s.Features(w.Table)
	return f.CoinParity*w.CoinParity +
		f.Mobility*w.Mobility +
		f.CornerOccupancy*w.CornerOccupancy +
		f.Stability*w.Stability +
		f.EdgeOccupancy*w.EdgeOccupancy +
		f.Positional*w.Positional
}

// Features computes every evaluation term. table may be nil, in which case
// the positional term is zero.
func (s *State) Features(table *Table) Features {
	own, opponent := s.disks()
	return Features{
		CoinParity:      float64(own - opponent),
		Mobility:        float64(s.mobility()),
		CornerOccupancy: s.signedSum(corners[:]),
		Stability:       float64(s.stableDisks()),
		EdgeOccupancy:   s.signedSum(edges),
		Positional:      s.positional(table),
	}
}

func (s *State) disks() (own, opponent int) {
	black, white, _ := s.Count()
	if s.Current == Black {
		return black, white
	}
	return white, black
}

// mobility compares legal move counts of both sides on the same board
func (s *State) mobility() int {
	own := len(s.LegalMoves())
	swapped := Perspective(s, s.Current.Opponent())
	return own - len(swapped.LegalMoves())
}

// signedSum adds +1 for each cell held by the player to move and -1 for each
// held by the opponent.
func (s *State) signedSum(cells []Move) float64 {
	sum := 0
	for _, cell := range cells {
		sum += int(s.Board[cell.Row][cell.Col] * s.Current)
	}
	return float64(sum)
}

// stableDisks approximates stability: own disks on the border, or whose
// in-bound neighbours are all own disks.
func (s *State) stableDisks() int {
	count := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.Board[r][c] != s.Current {
				continue
			}
			if IsBorder(r, c) || s.surrounded(r, c) {
				count++
			}
		}
	}
	return count
}

func (s *State) surrounded(row, col int) bool {
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if inBounds(r, c) && s.Board[r][c] != s.Current {
			return false
		}
	}
	return true
}

func (s *State) positional(table *Table) float64 {
	if table == nil {
		return 0
	}
	sum := 0.0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sum += table[r][c] * float64(s.Board[r][c]*s.Current)
		}
	}
	return sum
}
