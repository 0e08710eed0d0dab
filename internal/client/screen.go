package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/starfall-game/starfall/internal/draw"
	"github.com/starfall-game/starfall/internal/object"
	"github.com/starfall-game/starfall/internal/session"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	// On screen or inactivity transitions, do a full terminal clear so UI
	// elements from the previous screen don't persist.
	if c.screen != c.prevScreen || c.isInactive != c.wasInactive || c.needClear {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.prevScreen = c.screen
		c.wasInactive = c.isInactive
		c.needClear = false
	}

	c.canvas.Clear()

	if c.isInactive {
		c.drawInactivityScreen(now)
		return c.chunkWriter.Flush()
	}

	switch c.screen {
	case ScreenStart:
		c.drawStartScreen()
	case ScreenPlaying:
		c.drawPlayfield()
		c.canvas.Render(c.chunkWriter)
		c.canvas.RenderBorder(c.chunkWriter)
		c.drawHUD()
	case ScreenEnd:
		c.drawEndScreen()
	}

	return c.chunkWriter.Flush()
}

// drawPlayfield renders every entity from the latest snapshot onto the
// canvas.
func (c *Client) drawPlayfield() {
	snap := &c.snap

	// Separator between the HUD band and the battle area.
	c.canvas.DrawLine(draw.Point{X: 0, Y: object.UIHeight}, draw.Point{X: object.ScreenWidth, Y: object.UIHeight})

	draw.Ship(c.canvas, snap.Player.X, snap.Player.Y, object.PlayerWidth, object.PlayerHeight)

	for _, e := range snap.Enemies {
		if e.Type == "sentinel" {
			draw.Sentinel(c.canvas, e.X, e.Y, e.W, e.H, e.ShieldHits > 0)
		} else {
			draw.Invader(c.canvas, e.X, e.Y, e.W, e.H)
		}
	}
	for _, b := range snap.Bullets {
		draw.ShipBullet(c.canvas, b.X, b.Y)
	}
	for _, b := range snap.EnemyBullets {
		draw.EnemyBolt(c.canvas, b.X, b.Y)
	}
	for _, g := range snap.GrenadesInFlight {
		draw.GrenadeShell(c.canvas, g.X, g.Y)
	}
	for _, p := range snap.Powerups {
		draw.PowerupBox(c.canvas, p.X, p.Y, object.PowerupSize)
	}
}

// drawHUD draws the status band. Text fields use fixed-width formatting so
// shrinking values don't leave residual characters on screen.
func (c *Client) drawHUD() {
	cw := c.chunkWriter
	snap := &c.snap
	termWidth := c.canvas.TerminalWidth()

	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))
	cw.WriteAt(2, 2, fmt.Sprintf("L%d %-20s", snap.Level, snap.LevelName))
	cw.WriteAt(2, 3, fmt.Sprintf("Tier: %-10s", snap.Tier))

	lives := fmt.Sprintf("Lives: %-2d", snap.Lives)
	cw.WriteAt(termWidth-len(lives)-1, 1, lives)
	grenades := fmt.Sprintf("Grenades: %-2d", snap.Grenades)
	cw.WriteAt(termWidth-len(grenades)-1, 2, grenades)

	centerX := termWidth / 2
	c.drawBar(centerX-12, 1, "HEAT", snap.Heat/snap.MaxHeat, false)
	if snap.MaxShield > 0 && snap.Level >= 2 {
		c.drawBar(centerX-12, 2, "SHLD", snap.Shield/snap.MaxShield, snap.ShieldFlash)
	}

	switch {
	case snap.LockedOut:
		cw.WriteAt(centerX-9, 3, fmt.Sprintf("!! JAMMED %4.1fs !!", float64(snap.LockoutMS)/1000))
	case snap.SpikeActive:
		cw.WriteAt(centerX-9, 3, "!! ENEMY SURGE !! ")
	case snap.AmmoBoost > 0:
		cw.WriteAt(centerX-9, 3, fmt.Sprintf("COLD AMMO: %-4d   ", snap.AmmoBoost))
	default:
		cw.WriteAt(centerX-9, 3, strings.Repeat(" ", 18))
	}

	if snap.Phase == "transition" {
		msg := fmt.Sprintf("LEVEL %d CLEARED", snap.Level)
		cw.WriteAt(centerX-len(msg)/2, c.canvas.TerminalHeight()/2, msg)
	}
}

// drawBar draws a labeled 16-cell meter. The last partial cell renders at a
// shade proportional to its remainder; flash swaps the fill for a medium
// shade so an absorbed hit reads as a blink.
func (c *Client) drawBar(col, row int, label string, frac float64, flash bool) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	const cells = 16
	filled := int(frac * cells)
	part := frac*cells - float64(filled)

	fill := draw.BlockFull
	if flash {
		fill = draw.BlockMedium
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" [")
	for i := 0; i < cells; i++ {
		switch {
		case i < filled:
			b.WriteRune(fill)
		case i == filled && draw.ShadeLevel(part) != draw.BlockEmpty:
			b.WriteRune(draw.ShadeLevel(part))
		default:
			b.WriteRune(draw.BlockLight)
		}
	}
	b.WriteString("]")
	c.chunkWriter.WriteAt(col, row, b.String())
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2
	cw := c.chunkWriter

	titleArt := []string{
		`  ___ _____ _   ___ ___ _   _    _    `,
		` / __|_   _/_\ | _ \ __/_\ | |  | |   `,
		` \__ \ | |/ _ \|   / _/ _ \| |__| |__ `,
		` |___/ |_/_/ \_\_|_\_/_/ \_\____|____|`,
	}
	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ Hold the line. The sky is falling. ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"A D / < >  . . .  Move",
		"SPACE  . . . . . Shoot",
		"G  . . . . . . Grenade",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Launch  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}
}

// drawEndScreen draws the game-over or victory screen with the final
// results and the persistence outcome.
func (c *Client) drawEndScreen() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2
	cw := c.chunkWriter
	snap := &c.snap

	title := "GAME OVER"
	if snap.Phase == "victory" {
		title = "SECTOR CLEARED - VICTORY"
	}
	cw.WriteAt(centerX-len(title)/2, centerY-5, title)

	score := fmt.Sprintf("Final Score: %d", snap.Score)
	cw.WriteAt(centerX-len(score)/2, centerY-3, score)

	level := fmt.Sprintf("Reached: L%d %s", snap.Level, snap.LevelName)
	cw.WriteAt(centerX-len(level)/2, centerY-2, level)

	if c.sess != nil {
		sum := c.sess.Summary()
		stats := fmt.Sprintf("Shots: %d   Accuracy: %.0f%%   Grenades: %d",
			sum.TotalShots, sum.Accuracy*100, sum.Grenades)
		cw.WriteAt(centerX-len(stats)/2, centerY-1, stats)
	}

	var saveLine string
	switch snap.SaveState {
	case session.SaveDone:
		saveLine = "Score saved            "
	case session.SavePending:
		saveLine = "Saving...              "
	case session.SaveFailed:
		saveLine = "Save failed            "
	default:
		saveLine = "Not recorded (too short)"
	}
	cw.WriteAt(centerX-len(saveLine)/2, centerY+1, saveLine)

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  SPACE to fly again, Q to quit  <<"
		cw.WriteAt(centerX-len(prompt)/2, centerY+3, prompt)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2
	cw := c.chunkWriter

	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(inactivityDisconnect-now.Sub(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}
