package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrUnknownProfile = errors.New("unknown weight profile")

// Table weighs individual cells for the positional feature.
type Table [Size][Size]float64

// MirrorTable builds a full table from the 16 weights of the top-left
// quadrant (row-major), mirrored onto the other three quadrants.
func MirrorTable(quadrant [16]float64) *Table {
	var t Table
	half := Size / 2
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			qr, qc := min(r, Size-1-r), min(c, Size-1-c)
			t[r][c] = quadrant[qr*half+qc]
		}
	}
	return &t
}

// Weights selects the relative importance of each evaluation feature.
type Weights struct {
	CoinParity      float64 `yaml:"coin_parity"`
	Mobility        float64 `yaml:"mobility"`
	CornerOccupancy float64 `yaml:"corner_occupancy"`
	Stability       float64 `yaml:"stability"`
	EdgeOccupancy   float64 `yaml:"edge_occupancy"`
	Positional      float64 `yaml:"positional"`
	Table           *Table  `yaml:"-"`
}

// Phase applies its weights while the board has more than Above empty cells.
type Phase struct {
	Above   int
	Weights Weights
}

// Profile is a named weight configuration, possibly changing with the stage
// of the game.
type Profile struct {
	Name   string
	Phases []Phase
}

func NewProfile(name string, w Weights) Profile {
	return Profile{Name: name, Phases: []Phase{{Above: 0, Weights: w}}}
}

// WeightsFor picks the first phase (most empty cells first) that applies to
// the state, falling back to the last one.
func (p Profile) WeightsFor(s *State) Weights {
	if len(p.Phases) == 0 {
		return Weights{}
	}
	_, _, empty := s.Count()
	for _, phase := range p.Phases {
		if empty > phase.Above {
			return phase.Weights
		}
	}
	return p.Phases[len(p.Phases)-1].Weights
}

func (p Profile) Evaluator() Evaluate {
	return func(s *State) float64 {
		return Score(s, p.WeightsFor(s))
	}
}

// Profiles indexes weight profiles by name.
type Profiles map[string]Profile

const (
	ProfileClassic  = "classic"
	ProfileStable   = "stable"
	ProfileAdaptive = "adaptive"
)

// BuiltinProfiles returns a fresh copy of the predefined profiles.
func BuiltinProfiles() Profiles {
	return Profiles{
		ProfileClassic: NewProfile(ProfileClassic, Weights{
			CoinParity:      1.0,
			Mobility:        2.0,
			CornerOccupancy: 5.0,
			EdgeOccupancy:   2.0,
		}),
		ProfileStable: NewProfile(ProfileStable, Weights{
			CoinParity:      1.0,
			Mobility:        2.0,
			CornerOccupancy: 5.0,
			Stability:       3.0,
			EdgeOccupancy:   2.5,
		}),
		ProfileAdaptive: {
			Name: ProfileAdaptive,
			Phases: []Phase{
				{Above: 40, Weights: Weights{CoinParity: 1.0, Mobility: 3.0, CornerOccupancy: 5.0, Stability: 2.0, EdgeOccupancy: 2.0}},
				{Above: 20, Weights: Weights{CoinParity: 1.5, Mobility: 2.5, CornerOccupancy: 6.0, Stability: 3.0, EdgeOccupancy: 2.5}},
				{Above: 0, Weights: Weights{CoinParity: 2.0, Mobility: 1.5, CornerOccupancy: 7.0, Stability: 4.0, EdgeOccupancy: 3.0}},
			},
		},
	}
}

func (p Profiles) Lookup(name string) (Profile, error) {
	profile, ok := p[name]
	if !ok {
		return Profile{}, errors.WithMessagef(ErrUnknownProfile, "%q", name)
	}
	return profile, nil
}

// Merge returns a new set with other's profiles added, replacing same names.
func (p Profiles) Merge(other Profiles) Profiles {
	merged := make(Profiles, len(p)+len(other))
	maps.Copy(merged, p)
	maps.Copy(merged, other)
	return merged
}

func (p Profiles) Names() []string {
	names := maps.Keys(p)
	slices.Sort(names)
	return names
}
