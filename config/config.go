package config

import (
	"io"
	"os"
	"time"

	"othello/game"
	"othello/meta"
	"othello/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrNotEnoughAgents = errors.New("a tournament needs at least two agents")
)

const minAgentCount = 2

// Seat configures the machine player of one color. With Remote set, moves
// are requested from a move service at that URL.
type Seat struct {
	agent.Config `yaml:",inline"`
	Remote       string `yaml:"remote"`
}

type PhaseConfig struct {
	Above    int          `yaml:"above"`
	Weights  game.Weights `yaml:"weights"`
	Quadrant *[16]float64 `yaml:"quadrant"` // Top-left quadrant of the positional table
}

type ProfileConfig struct {
	Phases []PhaseConfig `yaml:"phases"`
}

type NamedAgent struct {
	Name         string `yaml:"name"`
	agent.Config `yaml:",inline"`
}

type TournamentConfig struct {
	Games    int          `yaml:"games"` // Per pairing and color
	Parallel int          `yaml:"parallel"`
	Output   string       `yaml:"output"`
	Agents   []NamedAgent `yaml:"agents"`
}

type Config struct {
	Mode         game.Mode                `yaml:"mode"`
	LogLevel     string                   `yaml:"log_level"`
	HumanTimeout time.Duration            `yaml:"human_timeout"`
	Black        Seat                     `yaml:"black"`
	White        Seat                     `yaml:"white"`
	Profiles     map[string]ProfileConfig `yaml:"profiles"`
	Tournament   TournamentConfig         `yaml:"tournament"`

	profiles game.Profiles
}

func Default() Config {
	return Config{
		Mode:         game.ModeAI,
		LogLevel:     zerolog.LevelInfoValue,
		HumanTimeout: meta.HUMAN_TIMEOUT,
		Black:        Seat{Config: agent.Config{Strategy: agent.AlphaBeta}},
		White:        Seat{Config: agent.Config{Strategy: agent.AlphaBeta}},
		Tournament: TournamentConfig{
			Games:    2,
			Parallel: 1,
			Output:   "results",
		},
		profiles: game.BuiltinProfiles(),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.WithMessage(err, "open config")
	}
	defer func() {
		_ = file.Close()
	}()
	return Parse(file)
}

func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.WithMessage(err, "decode config")
	}
	if err := cfg.build(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// build converts custom profiles and validates every section, so that a bad
// agent or profile fails before any game starts.
func (c *Config) build() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.WithMessagef(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	if c.HumanTimeout <= 0 {
		return errors.WithMessagef(ErrInvalidConfig, "human timeout %s", c.HumanTimeout)
	}

	custom := make(game.Profiles, len(c.Profiles))
	for name, pc := range c.Profiles {
		profile, err := pc.profile(name)
		if err != nil {
			return err
		}
		custom[name] = profile
	}
	c.profiles = game.BuiltinProfiles().Merge(custom)

	for color, seat := range map[string]Seat{"black": c.Black, "white": c.White} {
		if _, err := agent.New(seat.Config, c.profiles); err != nil {
			return errors.WithMessagef(err, "%s agent", color)
		}
	}
	return c.Tournament.validate(c.profiles)
}

func (pc ProfileConfig) profile(name string) (game.Profile, error) {
	if len(pc.Phases) == 0 {
		return game.Profile{}, errors.WithMessagef(ErrInvalidConfig, "profile %q has no phases", name)
	}
	phases := make([]game.Phase, 0, len(pc.Phases))
	for _, p := range pc.Phases {
		if p.Above < 0 {
			return game.Profile{}, errors.WithMessagef(ErrInvalidConfig, "profile %q phase above %d", name, p.Above)
		}
		w := p.Weights
		if p.Quadrant != nil {
			w.Table = game.MirrorTable(*p.Quadrant)
		}
		phases = append(phases, game.Phase{Above: p.Above, Weights: w})
	}
	// Most empty cells first, the order WeightsFor scans in
	slices.SortStableFunc(phases, func(a, b game.Phase) int {
		return b.Above - a.Above
	})
	return game.Profile{Name: name, Phases: phases}, nil
}

func (t TournamentConfig) validate(profiles game.Profiles) error {
	if t.Games < 0 || t.Parallel < 0 {
		return errors.WithMessagef(ErrInvalidConfig, "tournament games %d, parallel %d", t.Games, t.Parallel)
	}
	seen := make(map[string]bool, len(t.Agents))
	for _, a := range t.Agents {
		if a.Name == "" || seen[a.Name] {
			return errors.WithMessagef(ErrInvalidConfig, "tournament agent name %q", a.Name)
		}
		seen[a.Name] = true
		if _, err := agent.New(a.Config, profiles); err != nil {
			return errors.WithMessagef(err, "tournament agent %q", a.Name)
		}
	}
	return nil
}

// WeightProfiles returns the builtin profiles merged with the configured
// ones.
func (c Config) WeightProfiles() game.Profiles {
	if c.profiles == nil {
		return game.BuiltinProfiles()
	}
	return c.profiles
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Pairings lists every ordered pair of distinct tournament agents, so each
// pairing is played with both colors.
func (t TournamentConfig) Pairings() ([][2]NamedAgent, error) {
	if len(t.Agents) < minAgentCount {
		return nil, ErrNotEnoughAgents
	}
	var pairs [][2]NamedAgent
	for i := range t.Agents {
		for j := range t.Agents {
			if i != j {
				pairs = append(pairs, [2]NamedAgent{t.Agents[i], t.Agents[j]})
			}
		}
	}
	return pairs, nil
}
