package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// AgentConfig describes a participant of an experiment.
type AgentConfig struct {
	ID       int
	Name     string
	Strategy string
	Profile  string
	Budget   string
}

type GameRecord struct {
	Game       int
	BlackAgent int // AgentConfig.ID
	WhiteAgent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.Game
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "create experiment directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "strategy", "profile", "budget"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Strategy,
			config.Profile,
			config.Budget,
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"game", "id", "black_agent", "white_agent", "winner", "black", "white", "start_time", "end_time", "duration", "moves", "passes"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			record.ID,
			strconv.Itoa(record.BlackAgent),
			strconv.Itoa(record.WhiteAgent),
			record.Winner,
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Passes),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "score", "strategy", "duration", "nodes", "cache_hits", "cutoffs", "depth", "generations", "iterations", "accepted", "fallback"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Move,
			strconv.FormatFloat(record.Score, 'f', 3, 64),
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.CacheHits),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Generations),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Accepted),
			strconv.FormatBool(record.Fallback),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.WithMessagef(err, "create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return errors.WithMessagef(err, "write %s header", name)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return errors.WithMessagef(err, "write %s rows", name)
	}

	return nil
}
