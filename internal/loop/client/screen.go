package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/draw"
	"github.com/tomz197/towerstack/internal/loop/server"
)

// styles are the lipgloss styles for overlay panels, bound to one renderer
// so every SSH session gets its own color profile.
type styles struct {
	panel  lipgloss.Style
	title  lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	board  lipgloss.Style
	self   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 3).
			Align(lipgloss.Center),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
		board: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		self: r.NewStyle().Foreground(lipgloss.Color("51")),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.scene.Draw(c.canvas, c.view())

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(c.server.GetSnapshot())

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current screen.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth, termHeight, snapshot)
	switch c.state.Screen {
	case ScreenStart:
		c.drawStartScreen(centerX, centerY)
	case ScreenGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// drawBlock writes a multi-line string centered on (centerX, centerY) and
// marks its cells so the canvas repaints them next frame.
func (c *Client) drawBlock(block string, centerX, centerY int) {
	lines := strings.Split(block, "\n")
	top := max(centerY-len(lines)/2, 1)
	for i, line := range lines {
		w := lipgloss.Width(line)
		col := max(centerX-w/2, 1)
		c.chunkWriter.WriteAt(col, top+i, line)
		c.canvas.MarkTextDirty(col, top+i, w)
	}
}

// writeText writes plain text at (col, row) and marks it dirty.
func (c *Client) writeText(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// blink returns s or an equally wide blank, alternating every 600ms.
func blink(s string) string {
	if time.Now().UnixMilli()/600%2 == 0 {
		return s
	}
	return strings.Repeat(" ", lipgloss.Width(s))
}

// drawStartScreen draws the title panel.
func (c *Client) drawStartScreen(centerX, centerY int) {
	st := c.styles
	lines := []string{
		st.title.Render("T O W E R S T A C K"),
		"",
		"Stack the blocks as high as you can.",
		st.muted.Render("Each layer is cut to what overlaps the one below."),
		"",
		"SPACE / ENTER / CLICK . . Drop",
		"Q . . . . . . . . . . . . Quit",
		"",
		st.accent.Render(blink(">>  Press SPACE to Start  <<")),
	}
	if best := c.session.Best(); best > 0 {
		lines = append(lines, "", fmt.Sprintf("Best: %d", best))
	}
	c.drawBlock(st.panel.Render(strings.Join(lines, "\n")), centerX, centerY)
}

// drawGameOverScreen draws the panel shown after a miss.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	st := c.styles
	lines := []string{
		st.title.Render("G A M E   O V E R"),
		"",
		fmt.Sprintf("Score: %d", c.session.LastScore()),
		fmt.Sprintf("Best:  %d", c.session.Best()),
		"",
		st.accent.Render(blink(">>  Press SPACE to Restart  <<")),
	}
	c.drawBlock(st.panel.Render(strings.Join(lines, "\n")), centerX, centerY)
}

// drawHUD draws the score, player count, leaderboard and notices.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth, termHeight int, snapshot *server.Snapshot) {
	if c.state.Screen == ScreenPlaying {
		score := fmt.Sprintf("%s%4d%s", draw.ColorBold, c.session.Score(), draw.ColorReset)
		c.writeText(termWidth/2-2, 2, score)
	}

	best := fmt.Sprintf("Best: %-6d", c.session.Best())
	c.writeText(2, 1, best)

	players := fmt.Sprintf("Players: %-4d", snapshot.Players)
	c.writeText(termWidth-len(players)-1, termHeight, players)

	notice := fmt.Sprintf("%-48s", c.state.notice)
	c.writeText(2, termHeight, draw.ColorYellow+notice+draw.ColorReset)

	c.drawLeaderboard(termWidth, snapshot.TopScores)
}

// drawLeaderboard draws the top scores box in the top-right corner.
func (c *Client) drawLeaderboard(termWidth int, entries []server.TopScoreEntry) {
	nameWidth := config.MaxUsernameLength
	rows := make([]string, 0, config.TopScoreCount+1)
	rows = append(rows, c.styles.muted.Render(fmt.Sprintf("%-*s", nameWidth+8, "Top stacks")))
	for i := 0; i < config.TopScoreCount; i++ {
		if i >= len(entries) {
			rows = append(rows, strings.Repeat(" ", nameWidth+8))
			continue
		}
		e := entries[i]
		row := fmt.Sprintf("%d. %-*s %4d", i+1, nameWidth, e.Username, e.Score)
		if e.Username == c.username {
			row = c.styles.self.Render(row)
		}
		rows = append(rows, row)
	}

	box := c.styles.board.Render(strings.Join(rows, "\n"))
	boxWidth := lipgloss.Width(box)
	if termWidth < boxWidth+30 {
		return // Not enough space
	}
	col := termWidth - boxWidth
	for i, line := range strings.Split(box, "\n") {
		c.writeText(col, 2+i, line)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	st := c.styles
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	lines := []string{
		st.title.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %3d seconds.", max(remaining, 0)),
		"",
		st.muted.Render("Press any key to continue"),
	}
	c.drawBlock(st.panel.Render(strings.Join(lines, "\n")), centerX, centerY)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	st := c.styles
	remaining := int(c.state.shutdownTimer) + 1
	lines := []string{
		st.title.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %2d seconds...", remaining),
		"",
		st.muted.Render("Press Q to disconnect now"),
	}
	c.drawBlock(st.panel.Render(strings.Join(lines, "\n")), centerX, centerY)
}
