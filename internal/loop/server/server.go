// Package server hosts one match per connected client on a single tick goroutine.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/blastar/internal/config"
	loopconfig "github.com/tomz197/blastar/internal/loop/config"
	"github.com/tomz197/blastar/internal/match"
	"github.com/tomz197/blastar/internal/object"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and network-based transports.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(clientID int, cmd Command)
}

// Server owns every client's match and advances them at a fixed tick rate.
type Server struct {
	logger       *log.Logger
	matchConfig  match.Config
	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan ClientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	tick         uint64
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (sounds, game over, etc.)

	snapshot atomic.Pointer[Snapshot]

	// Owned by the server goroutine
	match    *match.Match
	settings config.Settings
	overSent bool
}

// Snapshot returns the latest published state of the client's match.
func (h *ClientHandle) Snapshot() *Snapshot {
	return h.snapshot.Load()
}

// NewServer creates a server that starts matches with cfg.
func NewServer(cfg match.Config, logger *log.Logger) *Server {
	return &Server{
		logger:       logger,
		matchConfig:  cfg,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan ClientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		s.Step(delta)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ServerTickTime {
			time.Sleep(loopconfig.ServerTickTime - elapsed)
		}
	}
}

// Step runs one server tick of delta simulated time. Run calls it at the tick rate.
func (s *Server) Step(delta time.Duration) {
	s.processRegistrations()
	s.collectCommands()
	s.updateMatches(delta)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		notify(handle, ClientEvent{Type: EventServerShutdown})
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
			if s.Clients() == 0 {
				return
			}
		}
	}
}

// Clients returns the number of registered clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	if r := []rune(username); len(r) > loopconfig.MaxUsernameLength {
		username = string(r[:loopconfig.MaxUsernameLength])
	}

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 64),
		settings: config.DefaultSettings(),
	}
	handle.snapshot.Store(&Snapshot{})

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues a command for the client's match.
func (s *Server) SendCommand(clientID int, cmd Command) {
	select {
	case s.commandCh <- ClientCommand{ClientID: clientID, Command: cmd}:
	default:
		// Command channel full, drop command
	}
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("client registered", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Debug("client unregistered", "id", clientID)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectCommands applies all pending commands in arrival order.
func (s *Server) collectCommands() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cc := <-s.commandCh:
			if handle, ok := s.clients[cc.ClientID]; ok {
				s.apply(handle, cc.Command)
			}
		default:
			return
		}
	}
}

// apply runs one command against the client's match. Must be called with lock held.
func (s *Server) apply(h *ClientHandle, cmd Command) {
	if cmd.Kind == CommandSettings {
		h.settings = cmd.Settings
		return
	}

	if cmd.Kind == CommandStart {
		if h.match != nil && !h.match.IsGameOver() {
			return
		}
		h.settings = cmd.Settings
		h.match = match.New(s.matchConfig, s.logger.With("client", h.ID))
		h.overSent = false
		s.sound(h, match.SoundCoin)
		s.logger.Info("match started", "client", h.ID, "user", h.Username)
		return
	}

	m := h.match
	if m == nil {
		return
	}
	switch cmd.Kind {
	case CommandMove:
		m.MovePlayerTo(cmd.X)
	case CommandFire:
		if res := m.Fire(); res.OK {
			s.sound(h, res.Sound)
		}
	case CommandPause:
		if m.IsGameOver() {
			return
		}
		m.TogglePause()
		s.sound(h, match.SoundPause)
	}
}

// updateMatches ticks every running match and publishes fresh snapshots.
func (s *Server) updateMatches(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	for _, h := range s.clients {
		if h.match == nil {
			h.snapshot.Store(&Snapshot{Tick: s.tick, Players: len(s.clients)})
			continue
		}

		prev := h.snapshot.Load()
		res := h.match.Tick(delta)

		for _, c := range res.Collisions {
			switch c.Outcome {
			case match.OutcomeKill, match.OutcomeGroundHit, match.OutcomeGroundSpent:
				for _, id := range c.Destroyed {
					if v, ok := prev.Visual(id); ok && v.Kind == object.KindHazard {
						notify(h, ClientEvent{Type: EventBurst, X: v.X, Y: v.Y})
					}
				}
			}
		}
		for _, snd := range res.Sounds {
			s.sound(h, snd)
		}
		if res.State == match.StateGameOver && !h.overSent {
			h.overSent = true
			notify(h, ClientEvent{Type: EventGameOver, Score: res.Score})
		}

		snap := &Snapshot{
			Tick:         s.tick,
			Playing:      true,
			Visuals:      res.Visuals,
			State:        res.State,
			Score:        res.Score,
			GroundHP:     res.GroundHP,
			MaxGroundHP:  h.match.Config().GroundHP,
			Band:         res.Band,
			SessionEnded: res.SessionEnded,
			Players:      len(s.clients),
		}
		if res.SessionEnded {
			// The client returns to its menu; the final state stays visible
			snap.Playing = false
			h.match = nil
			notify(h, ClientEvent{Type: EventSessionEnded, Score: res.Score})
			s.logger.Info("session ended", "client", h.ID, "score", res.Score)
		}
		h.snapshot.Store(snap)
	}
}

// sound forwards a sound cue unless the client muted effects.
func (s *Server) sound(h *ClientHandle, snd match.Sound) {
	if !h.settings.Sound {
		return
	}
	notify(h, ClientEvent{Type: EventSound, Sound: snd})
}

// notify sends without blocking; a client that stopped reading loses events.
func notify(h *ClientHandle, ev ClientEvent) {
	select {
	case h.EventsCh <- ev:
	default:
	}
}
