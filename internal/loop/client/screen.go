package client

import (
	"fmt"
	"time"

	"github.com/tomz197/blastar/internal/draw"
	"github.com/tomz197/blastar/internal/loop/config"
	"github.com/tomz197/blastar/internal/loop/server"
	"github.com/tomz197/blastar/internal/match"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snapshot := c.handle.Snapshot()

	// On screen or overlay transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	paused := snapshot.State == match.StatePaused
	over := snapshot.State == match.StateGameOver
	if c.state.GameState != c.state.prevGameState || c.state.isInactive != c.state.wasInactive ||
		paused != c.state.wasPaused || over != c.state.wasOver {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
		c.state.wasPaused = paused
		c.state.wasOver = over
	}

	c.canvas.Clear()

	if c.state.GameState == GameStatePlaying && snapshot.Playing {
		drawScene(c.canvas, snapshot.Visuals, snapshot.Band)
		drawParticles(c.canvas, c.state.particles)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// text writes s at a canvas position and marks the cells for repaint next frame.
func (c *Client) text(col, row int, color draw.Color, s string) {
	c.chunkWriter.WriteColoredAt(col, row, color, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// centered writes s centered on row.
func (c *Client) centered(row int, color draw.Color, s string) {
	col := (c.canvas.TerminalWidth()-len([]rune(s)))/2 + 1
	if col < 1 {
		col = 1
	}
	c.text(col, row, color, s)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(snapshot)
	case GameStateMenu:
		c.drawMenuScreen(centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	c.centered(centerY-2, draw.ColorYellow, "INACTIVITY WARNING")
	c.centered(centerY, draw.ColorDefault, "You have been inactive for too long.")
	c.centered(centerY+1, draw.ColorDefault, fmt.Sprintf(
		"Disconnecting in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.centered(centerY+3, draw.ColorDefault, "Press any key to continue")
}

// titleArt is "BLASTAR" in the figlet "small" font.
var titleArt = []string{
	` ___ _      _   ___ _____ _   ___  `,
	`| _ ) |    /_\ / __|_   _/_\ | _ \ `,
	`| _ \ |__ / _ \\__ \ | |/ _ \|   / `,
	`|___/____/_/ \_\___/ |_/_/ \_\_|_\ `,
}

// onOff formats a toggle.
func onOff(b bool) string {
	if b {
		return "On "
	}
	return "Off"
}

// drawMenuScreen draws the title screen with the audio toggles.
func (c *Client) drawMenuScreen(centerY int) {
	titleStartY := centerY - 10
	for i, line := range titleArt {
		c.centered(titleStartY+i, draw.ColorMagenta, line)
	}
	c.centered(titleStartY+len(titleArt)+1, draw.ColorDefault, "~ Keep the hazards off the ground ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.centered(controlsY, draw.ColorDefault, "Controls")
	controlLines := []string{
		"A D / < >  . . . . Move",
		"SPACE  . . . . . . Fire",
		"P  . . . . . . .  Pause",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.centered(controlsY+1+i, draw.ColorDefault, line)
	}

	togglesY := controlsY + len(controlLines) + 2
	c.centered(togglesY, draw.ColorDefault, fmt.Sprintf("M  . . . . Music: %s", onOff(c.state.Settings.Music)))
	c.centered(togglesY+1, draw.ColorDefault, fmt.Sprintf("F  . . . . Sound: %s", onOff(c.state.Settings.Sound)))

	if c.state.HasLastScore {
		c.centered(togglesY+3, draw.ColorBrightCyan, fmt.Sprintf("Last score: %-6d", c.state.LastScore))
	}

	// Blinking start prompt
	prompt := ">>  Press SPACE to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = "                            "
	}
	c.centered(togglesY+5, draw.ColorDefault, prompt)
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	centerY := c.canvas.TerminalHeight() / 2

	if !snapshot.Playing {
		c.centered(centerY, draw.ColorDefault, "Starting...")
		return
	}

	// Score display (top left)
	c.text(2, 1, draw.ColorDefault, fmt.Sprintf("Score: %-6d", snapshot.Score))

	// Ground health (top right), colored by band
	hp := fmt.Sprintf("%4d/%d HP", snapshot.GroundHP, snapshot.MaxGroundHP)
	c.text(termWidth-len(hp), 1, bandColor(snapshot.Band), hp)

	switch snapshot.State {
	case match.StatePaused:
		c.centered(centerY-1, draw.ColorBrightYellow, "Game is paused")
		c.centered(centerY+1, draw.ColorDefault, "Press P to resume")
	case match.StateGameOver:
		c.centered(centerY-1, draw.ColorBrightRed, "GAME OVER")
		c.centered(centerY+1, draw.ColorDefault, fmt.Sprintf("Score: %d", snapshot.Score))
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	c.centered(centerY-3, draw.ColorBrightRed, "SERVER SHUTTING DOWN")
	c.centered(centerY-1, draw.ColorDefault, "The server is restarting.")
	c.centered(centerY, draw.ColorDefault, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerY+2, draw.ColorDefault, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.centered(centerY+4, draw.ColorDefault, "Press Q to disconnect now")
}
