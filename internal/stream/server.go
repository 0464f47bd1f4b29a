// Package stream serves simulated price paths to plotting clients over
// WebSocket. Snapshots are read-only diagnostics; the stream is not part
// of the dataset contract.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/rng"
	"github.com/quantlab/optionsynth/internal/simulate"
)

// PointMsg is one streamed path point.
type PointMsg struct {
	Seq   int     `json:"seq"`
	Time  float64 `json:"time"`
	Price float64 `json:"price"`
}

// ServerConfig holds path streaming settings.
type ServerConfig struct {
	Params   model.SimulationParams // Path parameters for every stream
	Seed     uint64                 // Default seed; overridable per request
	Interval time.Duration          // Delay between streamed points
}

// Server streams one freshly simulated path per WebSocket request.
type Server struct {
	cfg      ServerConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a path streaming server.
func NewServer(cfg ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the request and streams a simulated path. A "seed"
// query parameter selects the path; identical seeds stream identical
// paths.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seed := s.cfg.Seed
	if q := r.URL.Query().Get("seed"); q != "" {
		parsed, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	path, err := s.simulatePath(seed)
	if err != nil {
		s.logger.Error("path simulation failed", "error", err, "seed", seed)
		http.Error(w, "simulation failed", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("path stream started",
		"remote", r.RemoteAddr,
		"seed", seed,
		"points", len(path),
	)
	s.streamPath(r.Context(), conn, path)
}

func (s *Server) simulatePath(seed uint64) (model.PricePath, error) {
	g := rng.New(seed)
	increments, err := g.Increments(s.cfg.Params.Steps, s.cfg.Params.Dt())
	if err != nil {
		return nil, err
	}
	return simulate.Path(s.cfg.Params, increments)
}

func (s *Server) streamPath(ctx context.Context, conn *websocket.Conn, path model.PricePath) {
	for i, pt := range path {
		if ctx.Err() != nil {
			return
		}
		msg, err := json.Marshal(PointMsg{Seq: i, Time: pt.Time, Price: pt.Price})
		if err != nil {
			s.logger.Error("marshal point", "error", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Debug("client disconnected", "error", err, "sent", i)
			return
		}
		if s.cfg.Interval > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.Interval):
			}
		}
	}
	deadline := time.Now().Add(time.Second)
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "path complete"), deadline)
}
