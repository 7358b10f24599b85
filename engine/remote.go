package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// remotePlayer asks a move service over HTTP.
type remotePlayer struct {
	url    string
	config agent.Config
	client *http.Client
}

// NewRemotePlayer plays the moves a move service at baseURL finds with the
// given agent config.
func NewRemotePlayer(baseURL string, config agent.Config, client *http.Client) Player {
	if client == nil {
		client = http.DefaultClient
	}
	return remotePlayer{url: strings.TrimRight(baseURL, "/") + "/findmove", config: config, client: client}
}

func (p remotePlayer) Name() string {
	return "remote " + p.config.Strategy.String()
}

func (p remotePlayer) FindMove(ctx context.Context, state *game.State) (agent.Decision, error) {
	start := time.Now()
	body, err := json.Marshal(agent.FindMoveRequest{
		Board:   state.Board,
		Current: state.Current,
		Agent:   p.config,
	})
	if err != nil {
		return agent.Decision{}, errors.WithMessage(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return agent.Decision{}, errors.WithMessage(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return agent.Decision{}, errors.WithMessage(err, "request move")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return agent.Decision{}, errors.Errorf("move service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var out agent.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return agent.Decision{}, errors.WithMessage(err, "decode response")
	}
	return agent.Decision{
		Move:  game.Move{Row: out.Row, Col: out.Col},
		Found: out.Found,
		Score: out.Score,
		Metric: metrics.SearchMetric{
			Strategy: p.config.Strategy.String(),
			Duration: time.Since(start),
			Fallback: out.Fallback,
		},
	}, nil
}
