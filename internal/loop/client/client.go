// Package client runs one terminal session: it reads keys, forwards commands to
// the game server and renders the latest snapshot.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/blastar/internal/audio"
	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/draw"
	"github.com/tomz197/blastar/internal/input"
	loopconfig "github.com/tomz197/blastar/internal/loop/config"
	"github.com/tomz197/blastar/internal/loop/server"
	"github.com/tomz197/blastar/internal/match"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	audio        audio.Player
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Audio        audio.Player     // Defaults to silence
	Settings     *config.Settings // Defaults to config.DefaultSettings
	Logger       *log.Logger      // Defaults to a discarding logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}
	settings := config.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	logger := opts.Logger
	if logger == nil {
		logger = config.DiscardLogger()
	}

	handle := gs.RegisterClient(opts.Username)
	player.Apply(settings)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, loopconfig.ViewWidth, loopconfig.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(settings),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		audio:        player,
		logger:       logger.With("client", handle.ID),
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.frame()

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ClientTargetFrameTime {
			time.Sleep(loopconfig.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one frame of client logic, without drawing.
func (c *Client) frame() {
	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateMenu:
		c.updateMenuState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateShutdown:
		c.updateShutdownState()
	}

	c.state.particles = updateParticles(c.state.particles, c.state.delta.Seconds())
}

// processInput reads input and applies the session-wide keys.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > loopconfig.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > loopconfig.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	if c.state.Input.Music {
		c.applySettings(c.state.Settings.ToggleMusic())
	}
	if c.state.Input.Sound {
		c.applySettings(c.state.Settings.ToggleSound())
	}
}

// applySettings hands new toggles to the audio player and the server.
func (c *Client) applySettings(s config.Settings) {
	c.state.Settings = s
	c.audio.Apply(s)
	c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandSettings, Settings: s})
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventSound:
				c.audio.Play(event.Sound)
			case server.EventBurst:
				c.state.particles = spawnBurst(c.state.particles, c.state.rng, event.X, event.Y,
					loopconfig.BurstParticles, burstSpeed, loopconfig.BurstLifetime)
			case server.EventGameOver:
				c.logger.Debug("game over", "score", event.Score)
			case server.EventSessionEnded:
				c.state.LastScore = event.Score
				c.state.HasLastScore = true
				c.state.GameState = GameStateMenu
				c.inputStream.Reset()
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = loopconfig.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > loopconfig.MaxTermWidth {
		renderWidth = loopconfig.MaxTermWidth
	}
	if renderHeight > loopconfig.MaxTermHeight {
		renderHeight = loopconfig.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateMenuState handles the title screen.
func (c *Client) updateMenuState() {
	if c.state.Input.Fire || c.state.Input.Enter {
		c.startGame()
	}
}

// startGame asks the server for a fresh match.
func (c *Client) startGame() {
	c.inputStream.Reset()
	c.state.TargetX = 0
	c.state.particles = c.state.particles[:0]
	c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandStart, Settings: c.state.Settings})
	c.state.GameState = GameStatePlaying
}

// updatePlayingState forwards ship controls while the match is active.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	snap := c.handle.Snapshot()

	if in.Pause {
		c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandPause})
		return
	}
	if !snap.Playing || snap.State != match.StateActive {
		return
	}

	dir := 0.0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	if dir != 0 {
		limit := match.SceneWidth/2 - match.PlayerMargin
		x := c.state.TargetX + dir*loopconfig.PlayerSpeed*c.state.delta.Seconds()
		x = max(-limit, min(limit, x))
		if x != c.state.TargetX {
			c.state.TargetX = x
			c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandMove, X: x})
		}
	}

	if in.Fire {
		c.server.SendCommand(c.handle.ID, server.Command{Kind: server.CommandFire})
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
