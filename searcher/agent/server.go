package agent

import (
	"context"
	"net/http"
	"time"

	"othello/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type FindMoveRequest struct {
	Board   game.Board `json:"board"`
	Current game.Disk  `json:"current"`
	Agent   Config     `json:"agent"`
}

type FindMoveResponse struct {
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Found    bool    `json:"found"`
	Score    float64 `json:"score"`
	Fallback bool    `json:"fallback,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers move requests for positions held by an external front end.
// Every request builds its own agent, so requests never share search state.
type Server struct {
	profiles game.Profiles
}

func NewServer(profiles game.Profiles) *Server {
	return &Server{profiles: profiles}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)
	return r
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"bad request: " + err.Error()})
		return
	}
	state, err := req.state()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}
	a, err := New(req.Agent, s.profiles)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	d := a.FindMove(r.Context(), state)
	log.Info().
		Str("request", middleware.GetReqID(r.Context())).
		Str("agent", a.String()).
		Str("move", d.Move.String()).
		Bool("found", d.Found).
		Dur("duration", d.Metric.Duration).
		Msg("served move")

	writeJSON(w, http.StatusOK, FindMoveResponse{
		Row:      d.Move.Row,
		Col:      d.Move.Col,
		Found:    d.Found,
		Score:    d.Score,
		Fallback: d.Metric.Fallback,
	})
}

func (req FindMoveRequest) state() (*game.State, error) {
	if req.Current != game.Black && req.Current != game.White {
		return nil, errors.Errorf("current player must be 1 or -1, got %d", req.Current)
	}
	for r := range req.Board {
		for c, cell := range req.Board[r] {
			if cell != game.Empty && cell != game.Black && cell != game.White {
				return nil, errors.Errorf("cell (%d,%d) holds %d", r, c, cell)
			}
		}
	}
	return &game.State{Board: req.Board, Current: req.Current, Mode: game.ModeAI}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// Serve runs the move service on addr until ctx is done.
func Serve(ctx context.Context, addr string, profiles game.Profiles) error {
	srv := &http.Server{Addr: addr, Handler: NewServer(profiles).Routes()}

	errc := make(chan error, 1)
	go func() {
		log.Info().Msgf("move service listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.WithMessage(err, "move service")
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}
