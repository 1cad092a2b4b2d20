// Package client runs one player's connection: it owns the game session,
// reads input, draws the tower and reports game events to the shared server.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/draw"
	"github.com/tomz197/towerstack/internal/game"
	"github.com/tomz197/towerstack/internal/input"
	"github.com/tomz197/towerstack/internal/logging"
	"github.com/tomz197/towerstack/internal/loop/server"
	"github.com/tomz197/towerstack/internal/physics"
	"github.com/tomz197/towerstack/internal/render"
)

// noticeSeconds is how long a record notice stays on the HUD.
const noticeSeconds = 4.0

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	session      *game.Session
	scene        *render.Scene
	world        *physics.World
	tuning       config.Tuning
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	styles       styles
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       *config.Tuning // nil uses config.DefaultTuning
	Logger       *log.Logger
	Renderer     *lipgloss.Renderer // nil creates an ANSI256 renderer on the writer
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.ANSI256)
		renderer.SetHasDarkBackground(true)
	}
	username := truncateName(opts.Username)

	handle := gs.RegisterClient(username)
	logger = logger.With("session", handle.SessionID)

	scene := render.NewScene()
	world := physics.NewWorld(tuning.Gravity)
	session := game.NewSession(scene, world, tuning, logger)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := draw.TerminalSizeRawWith(termSizeFunc)
	if err != nil {
		logger.Warn("using fallback terminal size", "err", err)
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		session:      session,
		scene:        scene,
		world:        world,
		tuning:       tuning,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     username,
		termSizeFunc: termSizeFunc,
		styles:       newStyles(renderer),
		log:          logger,
	}
	session.OnEvent = c.onGameEvent
	return c
}

// truncateName limits a display name to config.MaxUsernameLength runes.
func truncateName(name string) string {
	if name == "" {
		return "player"
	}
	runes := []rune(name)
	if len(runes) > config.MaxUsernameLength {
		runes = runes[:config.MaxUsernameLength]
	}
	return string(runes)
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Advance the game
		c.update()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and applies activations to the session.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		if c.inputStream.Closed() {
			c.log.Info("input closed")
		} else {
			c.log.Info("player quit")
		}
		c.state.Running = false
		return
	}

	if c.state.Screen == ScreenShutdown {
		return
	}
	for i := 0; i < c.state.Input.Activations; i++ {
		c.session.Activate()
	}
}

// onGameEvent forwards session events to the server and tracks finished games.
func (c *Client) onGameEvent(ev game.Event) {
	if ev.Outcome == game.OutcomeMiss {
		c.state.GamesPlayed++
	}
	c.server.ReportEvent(c.handle.ID, ev)
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
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventNewRecord:
				c.state.setNotice(fmt.Sprintf("New record: %s stacked %d", event.Username, event.Score), noticeSeconds)
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
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances the session one frame and derives the screen from it.
func (c *Client) update() {
	c.state.tickNotice()

	if c.state.Screen == ScreenShutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}

	c.session.Tick()

	switch {
	case !c.session.OverlayVisible():
		c.state.Screen = ScreenPlaying
	case c.state.GamesPlayed > 0:
		c.state.Screen = ScreenGameOver
	default:
		c.state.Screen = ScreenStart
	}
}

// view returns the camera for the current follow height.
func (c *Client) view() render.View {
	return render.View{
		Height:     c.session.CameraHeight(),
		BaseHeight: c.tuning.CameraBaseHeight,
		Units:      config.ViewUnits,
		Width:      config.ViewWidth,
		LogicalH:   config.ViewHeight,
	}
}
