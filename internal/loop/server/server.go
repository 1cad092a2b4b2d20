package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/game"
	"github.com/tomz197/towerstack/internal/logging"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportEvent(clientID int, ev game.Event)
	GetSnapshot() *Snapshot
}

// Recorder receives server activity for metrics. A nil Recorder is allowed.
type Recorder interface {
	ClientConnected()
	ClientDisconnected()
	GameStarted()
	LayerPlaced()
	GameOver(score int)
	TopScore(score int)
}

// Server keeps the shared leaderboard. Each client simulates its own tower;
// the server only collects their game events and publishes snapshots.
type Server struct {
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	reportCh     chan ClientReport
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	record   TopScoreEntry
	recorder Recorder
	log      *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	SessionID uuid.UUID
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Events sent to client (shutdown, records)

	state playerState // Owned by the server loop
}

// ClientReport is a game event reported by a specific client.
type ClientReport struct {
	ClientID int
	Event    game.Event
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	Username string // Record holder for EventNewRecord
	Score    int
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewRecord
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// NewServer creates a new game server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		reportCh:     make(chan ClientReport, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		log:          logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Create initial empty snapshot
	s.snapshot.Store(&Snapshot{})

	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.step()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// step runs one server tick.
func (s *Server) step() {
	s.processRegistrations()
	s.collectReports()
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:        id,
		SessionID: uuid.New(),
		Username:  username,
		EventsCh:  make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportEvent forwards a client's game event to the server loop.
func (s *Server) ReportEvent(clientID int, ev game.Event) {
	select {
	case s.reportCh <- ClientReport{ClientID: clientID, Event: ev}:
	default:
		s.log.Warn("report channel full, dropping event", "client", clientID, "outcome", ev.Outcome)
	}
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("client joined", "client", handle.ID, "user", handle.Username, "session", handle.SessionID)
			if s.recorder != nil {
				s.recorder.ClientConnected()
			}
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			handle, ok := s.clients[clientID]
			if ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			if ok {
				s.log.Info("client left", "client", clientID, "best", handle.state.best)
				if s.recorder != nil {
					s.recorder.ClientDisconnected()
				}
			}
		default:
			return
		}
	}
}

// collectReports applies all pending game events to the player states.
func (s *Server) collectReports() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case r := <-s.reportCh:
			handle, ok := s.clients[r.ClientID]
			if !ok {
				continue
			}
			s.applyLocked(handle, r.Event)
		default:
			return
		}
	}
}

// applyLocked updates one player from an event. Must be called with lock held.
func (s *Server) applyLocked(handle *ClientHandle, ev game.Event) {
	st := &handle.state
	switch ev.Outcome {
	case game.OutcomeStarted:
		st.playing = true
		st.score = 0
		if s.recorder != nil {
			s.recorder.GameStarted()
		}
	case game.OutcomeCut:
		st.score = ev.Score
		if s.recorder != nil {
			s.recorder.LayerPlaced()
		}
	case game.OutcomeMiss:
		st.playing = false
		st.score = 0
		st.best = max(st.best, ev.Score, ev.Best)
		if s.recorder != nil {
			s.recorder.GameOver(ev.Score)
		}
	default:
		return
	}

	if ev.Score > s.record.Score {
		s.record = TopScoreEntry{Username: handle.Username, Score: ev.Score, clientID: handle.ID}
		if s.recorder != nil {
			s.recorder.TopScore(ev.Score)
		}
		s.broadcastRecordLocked(handle.ID)
	}
}

// broadcastRecordLocked tells every other client about a new record.
func (s *Server) broadcastRecordLocked(holder int) {
	ev := ClientEvent{Type: EventNewRecord, Username: s.record.Username, Score: s.record.Score}
	for id, h := range s.clients {
		if id == holder {
			continue
		}
		select {
		case h.EventsCh <- ev:
		default:
		}
	}
}

// createSnapshot publishes an immutable snapshot of the shared state.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playing := 0
	for _, h := range s.clients {
		if h.state.playing {
			playing++
		}
	}

	s.snapshot.Store(&Snapshot{
		Players:   len(s.clients),
		Playing:   playing,
		Record:    s.record,
		TopScores: topScores(s.clients, config.TopScoreCount),
	})
}
