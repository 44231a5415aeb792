// Package web serves browser sessions over websockets: JSON commands in,
// msgpack frames out.
package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	loopconfig "github.com/tomz197/blastar/internal/loop/config"
	"github.com/tomz197/blastar/internal/loop/server"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 1024
	maxMessagesPerSec = 120
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Handler upgrades requests to websocket sessions on a game server.
type Handler struct {
	server server.GameServer
	logger *log.Logger
}

// NewHandler creates a handler whose sessions play on gs.
func NewHandler(gs server.GameServer, logger *log.Logger) *Handler {
	return &Handler{server: gs, logger: logger}
}

// ServeHTTP runs one session until the browser disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}

	handle := h.server.RegisterClient(r.URL.Query().Get("name"))
	s := &session{
		conn:   conn,
		server: h.server,
		handle: handle,
		logger: h.logger.With("client", handle.ID, "remote", r.RemoteAddr),
		done:   make(chan struct{}),
	}
	s.logger.Info("web session started")

	go s.writePump()
	s.readPump()

	h.server.UnregisterClient(handle.ID)
	s.logger.Info("web session ended")
}

// session is one browser connection.
type session struct {
	conn       *websocket.Conn
	server     server.GameServer
	handle     *server.ClientHandle
	logger     *log.Logger
	done       chan struct{} // Closed when the read side ends
	msgCount   int
	msgResetAt time.Time
}

// readPump applies browser messages until the connection fails.
func (s *session) readPump() {
	defer func() {
		close(s.done)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", "err", err)
			}
			return
		}

		// Rate limiting
		now := time.Now()
		if now.After(s.msgResetAt) {
			s.msgCount = 0
			s.msgResetAt = now.Add(time.Second)
		}
		s.msgCount++
		if s.msgCount > maxMessagesPerSec {
			s.logger.Warn("rate limit exceeded, disconnecting")
			return
		}

		var msg InMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Debug("bad message", "err", err)
			continue
		}
		cmd, ok := msg.command()
		if !ok {
			s.logger.Debug("unknown message type", "t", msg.T)
			continue
		}
		s.server.SendCommand(s.handle.ID, cmd)
	}
}

// writePump pushes a frame per client frame time whenever the snapshot or the
// pending events changed, and keeps the connection alive with pings.
func (s *session) writePump() {
	frames := time.NewTicker(loopconfig.ClientTargetFrameTime)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		frames.Stop()
		ping.Stop()
		s.conn.Close()
	}()

	var (
		lastTick uint64
		pending  Frame
		events   bool
	)

	for {
		select {
		case <-s.done:
			return

		case ev, ok := <-s.handle.EventsCh:
			if !ok {
				s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			events = true
			switch ev.Type {
			case server.EventSound:
				pending.Sounds = append(pending.Sounds, string(ev.Sound))
			case server.EventBurst:
				pending.Bursts = append(pending.Bursts, Burst{X: ev.X, Y: ev.Y})
			case server.EventSessionEnded:
				pending.LastScore = ev.Score
			case server.EventServerShutdown:
				pending.Shutdown = true
			}

		case <-frames.C:
			snap := s.handle.Snapshot()
			if snap.Tick == lastTick && !events {
				continue
			}
			lastTick = snap.Tick

			f := newFrame(snap)
			f.Sounds, f.Bursts, f.LastScore, f.Shutdown = pending.Sounds, pending.Bursts, pending.LastScore, pending.Shutdown
			pending, events = Frame{}, false

			data, err := msgpack.Marshal(&f)
			if err != nil {
				s.logger.Error("encode frame", "err", err)
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ping.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
