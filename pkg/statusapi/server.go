// Package statusapi exposes a read-only HTTP view of a running game for
// operators. It never mutates game state and is not a form of player
// input: no request handled here reaches the engine.
package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cbodonnell/setgame/pkg/log"
)

// PlayerStatus is one player's row in a State snapshot.
type PlayerStatus struct {
	ID           int   `json:"id"`
	Score        int   `json:"score"`
	FrozenMillis int64 `json:"frozenMillis"`
}

// State is the JSON body served at GET /state.
type State struct {
	Players          []PlayerStatus `json:"players"`
	CardsOnTable     int            `json:"cardsOnTable"`
	CountdownMillis  int64          `json:"countdownMillis"`
	CountdownWarning bool           `json:"countdownWarning"`
	Running          bool           `json:"running"`
}

// Snapshotter is anything that can produce a current State. pkg/game
// implements this over its live Table and seats.
type Snapshotter interface {
	Snapshot() State
}

// NewServerOptions configures a new Server.
type NewServerOptions struct {
	Port        int
	Snapshotter Snapshotter
}

// Server serves /healthz and /state for a running game.
type Server struct {
	server *http.Server

	mu      sync.RWMutex
	running bool
}

// NewServer builds a Server. It does not start listening until Start is
// called.
func NewServer(opts NewServerOptions) *Server {
	s := &Server{running: true}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz())
	mux.HandleFunc("/state", s.handleState(opts.Snapshotter))

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}
	return s
}

// Start blocks serving until the server is stopped or fails.
func (s *Server) Start() {
	log.Info("Status API listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Status API closed")
			return
		}
		log.Error("Status API error: %v", err)
	}
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return s.server.Shutdown(ctx)
}

func (s *Server) isRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Server) handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.isRunning() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) handleState(snap Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := snap.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			log.Error("Status API: failed to encode state: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

// FreezeMillis clamps a remaining duration to a non-negative millisecond
// count, the wire format used by both PlayerStatus.FrozenMillis and
// State.CountdownMillis.
func FreezeMillis(remaining time.Duration) int64 {
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}
