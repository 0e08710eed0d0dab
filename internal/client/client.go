// Package client runs the terminal frontend: a fixed-rate render loop that
// feeds key input into a game session and draws its snapshots. One Client
// serves one connection, whether that is a local stdin/stdout pair or an
// SSH session.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/starfall-game/starfall/internal/draw"
	"github.com/starfall-game/starfall/internal/input"
	"github.com/starfall-game/starfall/internal/object"
	"github.com/starfall-game/starfall/internal/session"
	"github.com/starfall-game/starfall/internal/storage"
)

// Rendering and pacing.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	// Max render resolution; larger terminals get a centered, bordered
	// canvas instead of an ever-larger playfield.
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Inactivity handling, in seconds.
const (
	inactivityWarn       = 90
	inactivityDisconnect = 120
)

// Screen is the client-side state machine: the title screen, an active
// session, and the terminal result screen.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenEnd
)

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Email        string
	Name         string
	Stores       *storage.Stores // nil disables persistence
	Logger       *log.Logger
}

// Client handles rendering and input for a single connection.
type Client struct {
	sess         *session.Session
	snap         session.Snapshot
	screen       Screen
	prevScreen   Screen
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	isInactive   bool
	wasInactive  bool
	running      bool
	needClear    bool
	opts         Options
	logger       *log.Logger
	termSizeFunc draw.TermSizeFunc
}

// New creates a client reading keys from r and rendering to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, object.ScreenWidth, object.ScreenHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		screen:       ScreenStart,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		running:      true,
		opts:         opts,
		logger:       logger,
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the player quits or the
// connection drops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.running {
		frameStart := time.Now()

		in := c.processInput(frameStart)
		c.updateScreenSize()

		switch c.screen {
		case ScreenStart:
			if in.Fire || in.Enter {
				c.startGame(frameStart)
			}
		case ScreenPlaying:
			c.sess.Step(frameStart, session.Input{
				Left:    in.Left,
				Right:   in.Right,
				Fire:    in.Fire,
				Grenade: in.Grenade,
			})
			c.snap = c.sess.Snapshot(frameStart)
			if c.snap.Phase == "gameover" || c.snap.Phase == "victory" {
				c.screen = ScreenEnd
			}
		case ScreenEnd:
			// Keep the snapshot fresh so the save-state line updates once
			// the commit goroutine finishes.
			c.snap = c.sess.Snapshot(frameStart)
			if in.Fire || in.Enter {
				c.startGame(frameStart)
			}
		}

		if err := c.drawFrame(frameStart); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads keys, applies the inactivity policy, and returns this
// frame's input.
func (c *Client) processInput(now time.Time) input.Input {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.isInactive = false
	} else if now.Sub(c.lastInput).Seconds() > inactivityDisconnect {
		c.running = false
	} else if now.Sub(c.lastInput).Seconds() > inactivityWarn {
		c.isInactive = true
	}

	if in.Quit {
		c.running = false
	}
	return in
}

// startGame begins a fresh session. Key state is reset so the launch press
// does not fire the first shot.
func (c *Client) startGame(now time.Time) {
	input.ResetKeyInput(c.inputStream)

	cfg := session.Config{
		Email:  c.opts.Email,
		Name:   c.opts.Name,
		Logger: c.logger,
	}
	if c.opts.Stores != nil {
		cfg.Profiles = c.opts.Stores.Profiles
		cfg.Scores = c.opts.Stores.Scores
		cfg.Telemetry = c.opts.Stores.Telemetry
	}

	c.sess = session.New(cfg, now)
	c.snap = c.sess.Snapshot(now)
	c.screen = ScreenPlaying
}

// updateScreenSize handles terminal resize, clamping to max render
// resolution. On actual size changes the terminal is cleared to remove
// residual pixels outside the new canvas area.
func (c *Client) updateScreenSize() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.needClear = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > MaxTermWidth {
		renderWidth = MaxTermWidth
	}
	if renderHeight > MaxTermHeight {
		renderHeight = MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
