// Package inspect serves the state of the running renderer over HTTP: the
// ASCII board, the last frame as PNG, frame statistics, and a websocket
// stream with one JSON summary per published frame.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"gridcaster/internal/logger"
	"gridcaster/internal/present"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":2137"

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu     sync.RWMutex
	latest *Snapshot

	clientsMu sync.Mutex
	clients   map[*connection]struct{}
}

func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			// read-only debugging surface, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     logger.Named("inspect"),
		clients: make(map[*connection]struct{}),
	}
}

func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the route table. It is exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /board", s.handleBoard)
	mux.HandleFunc("GET /frame.png", s.handleFrame)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

// Publish stores snap as the latest state and pushes its JSON summary to
// every websocket subscriber. Slow subscribers are dropped.
func (s *Server) Publish(snap Snapshot) {
	s.mu.Lock()
	s.latest = &snap
	s.mu.Unlock()

	message, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("marshal snapshot", zap.Error(err))
		return
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		if !c.offer(message) {
			s.log.Warn("dropping slow subscriber", zap.String("remote", c.ws.RemoteAddr().String()))
			s.removeLocked(c)
		}
	}
}

// Latest returns the most recently published snapshot.
func (s *Server) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}

// Subscribers returns the number of connected websocket clients.
func (s *Server) Subscribers() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("inspection server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("inspection server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeClients()
	if err != nil {
		return fmt.Errorf("inspection server shutdown: %w", err)
	}
	return nil
}

func (s *Server) latestOr503(w http.ResponseWriter) (Snapshot, bool) {
	snap, ok := s.Latest()
	if !ok {
		http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
	}
	return snap, ok
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latestOr503(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, snap.Board)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latestOr503(w)
	if !ok {
		return
	}
	if snap.Image == nil {
		http.Error(w, "snapshot carries no image", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := present.WritePNG(w, snap.Image); err != nil {
		s.log.Warn("serve frame", zap.Error(err))
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latestOr503(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap.Stats); err != nil {
		s.log.Warn("serve stats", zap.Error(err))
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := newConnection(ws, s.log)

	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
	s.log.Debug("subscriber connected", zap.String("remote", ws.RemoteAddr().String()))

	if snap, ok := s.Latest(); ok {
		if message, err := json.Marshal(snap); err == nil {
			c.offer(message)
		}
	}

	go c.writePump()
	c.readPump()

	s.clientsMu.Lock()
	s.removeLocked(c)
	s.clientsMu.Unlock()
	s.log.Debug("subscriber left", zap.String("remote", ws.RemoteAddr().String()))
}

// removeLocked closes c's queue once. clientsMu must be held.
func (s *Server) removeLocked(c *connection) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		s.removeLocked(c)
	}
}
