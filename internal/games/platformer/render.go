package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/sim"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlatformChar = '▬'
	GroundChar   = '▀'
	ObstacleChar = '▲'
	CoinChar     = 'o'
	PickupChar   = '+'
	EnemyChar    = 'X'
	GuardianChar = 'W'
	GoalChar     = '▓'
	FlagChar     = '▶'
)

const hudRows = 1

// viewport maps arena pixels onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
}

func newViewport(snap sim.Snapshot, w, h int) viewport {
	return viewport{
		sx: float64(w) / snap.Width,
		sy: float64(h-hudRows) / snap.Height,
	}
}

// rect returns the cells covered by r, at least one cell in each direction.
func (v viewport) rect(r core.Rect) (x, y, w, h int) {
	x0 := int(math.Floor(r.X * v.sx))
	y0 := int(math.Floor(r.Y * v.sy))
	x1 := int(math.Ceil(r.Right() * v.sx))
	y1 := int(math.Ceil(r.Bottom() * v.sy))
	return x0, y0 + hudRows, max(x1-x0, 1), max(y1-y0, 1)
}

func (v viewport) point(p core.Point) (x, y int) {
	return int(p.X * v.sx), int(p.Y*v.sy) + hudRows
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.flow == nil || g.flow.Session() == nil || dst.Height() <= hudRows {
		return
	}

	snap := g.flow.Snapshot()
	dst.SetBackground(snap.Background)
	v := newViewport(snap, dst.Width(), dst.Height())

	drawWorld(dst, v, snap)
	g.drawHUD(dst, snap)

	switch {
	case snap.State.Outcome():
		g.drawOutcome(dst, g.flow.Screen())
	case snap.Paused:
		drawMessage(dst, []string{"PAUSED", "", "Press P to resume"})
	}
}

func drawWorld(dst *core.Screen, v viewport, snap sim.Snapshot) {
	gx, gy, gw, gh := v.rect(core.NewRect(0, snap.GroundY, snap.Width, snap.Height-snap.GroundY))
	dst.FillRect(gx, gy, gw, gh, GroundChar, core.ColorGreen)

	for _, p := range snap.Platforms {
		x, y, w, _ := v.rect(p)
		dst.DrawHLine(x, y, w, PlatformChar, core.ColorWhite)
	}
	for _, o := range snap.Obstacles {
		x, y, w, h := v.rect(o)
		dst.FillRect(x, y, w, h, ObstacleChar, core.ColorOrange)
	}

	goalX, goalY, goalW, goalH := v.rect(snap.Goal)
	dst.FillRect(goalX, goalY, goalW, goalH, GoalChar, core.ColorBrightGreen)
	dst.SetColored(goalX, goalY, FlagChar, core.ColorBrightWhite)

	for _, c := range snap.Coins {
		x, y := v.point(c)
		dst.SetColored(x, y, CoinChar, core.ColorBrightYellow)
	}
	for _, p := range snap.HealthPickups {
		x, y := v.point(p)
		dst.SetColored(x, y, PickupChar, core.ColorBrightRed)
	}
	for _, e := range snap.Enemies {
		x, y, w, h := v.rect(e.Rect)
		dst.FillRect(x, y, w, h, EnemyChar, core.ColorRed)
	}
	gdx, gdy, gdw, gdh := v.rect(snap.Guardian.Rect)
	dst.FillRect(gdx, gdy, gdw, gdh, GuardianChar, core.ColorMagenta)

	drawPlayer(dst, v, snap)
}

// drawPlayer blinks during the post-hit grace window and glows while powered.
func drawPlayer(dst *core.Screen, v viewport, snap sim.Snapshot) {
	p := snap.Player
	color := core.ColorBrightCyan
	switch {
	case p.Power.Active():
		color = core.ColorBrightYellow
	case p.InvincibleTicks > 0 && (snap.Tick/6)%2 == 1:
		return
	}
	x, y, w, h := v.rect(p.Rect)
	dst.FillRect(x, y, w, h, PlayerChar, color)
}

func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	dst.FillRect(0, 0, dst.Width(), hudRows, ' ', core.ColorDefault)

	p := snap.Player
	hud := fmt.Sprintf(" Level %d/%d  Score %d  HP %d/%d  Coins %d/%d ",
		snap.Level, g.DisplayMax(), p.Score, p.Health, p.MaxHealth, p.Power.Coins, p.Power.Threshold)
	dst.DrawText(0, 0, hud)

	switch {
	case p.Power.Active():
		power := fmt.Sprintf(" POWER %.1fs ", float64(p.Power.TicksRemaining)/60)
		dst.DrawTextColored(len([]rune(hud)), 0, power, core.ColorBrightYellow)
	case p.Power.Ready():
		dst.DrawTextColored(len([]rune(hud)), 0, " [E] POWER READY ", core.ColorBrightYellow)
	}
}

func (g *Game) drawOutcome(dst *core.Screen, s sim.Screen) {
	var lines []string
	switch s.State {
	case sim.StateDead:
		lines = append(lines, "GAME OVER", "", fmt.Sprintf("Level Reached: %d/%d", s.Level, s.DisplayMax))
	case sim.StateLevelComplete:
		lines = append(lines, fmt.Sprintf("LEVEL %d COMPLETE", s.Level), "")
	case sim.StateVictory:
		lines = append(lines, "VICTORY!", "", fmt.Sprintf("All %d levels cleared", s.DisplayMax))
	}
	lines = append(lines, fmt.Sprintf("Score: %d", s.Score), "")

	for i, c := range s.Choices {
		marker := "  "
		if i == g.cursor {
			marker = "> "
		}
		lines = append(lines, marker+choiceLabel(c))
	}
	drawMessage(dst, lines)
}

func choiceLabel(c sim.Choice) string {
	switch c {
	case sim.ChoiceContinue:
		return "Next level"
	case sim.ChoiceRetry:
		return "Retry (R)"
	case sim.ChoiceMenu:
		return "Level select (B)"
	case sim.ChoiceQuit:
		return "Quit (Q)"
	default:
		return c.String()
	}
}

// drawMessage draws a centered box containing lines.
func drawMessage(dst *core.Screen, lines []string) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i, l)
	}
}
