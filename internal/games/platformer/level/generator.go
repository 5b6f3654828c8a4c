package level

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/pyjump/internal/config"
	"github.com/vovakirdan/pyjump/internal/core"
)

// Generator maps level numbers to arenas.
// Everything except enemy placement is arithmetic in the level number;
// enemies draw from the RNG passed to Generate.
type Generator struct {
	cfg       config.PlatformerConfig
	legacy    bool
	maxLevels int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLegacy switches to the legacy layout: enemies patrol the platforms they
// stand on and the campaign is shorter.
func WithLegacy() Option {
	return func(g *Generator) {
		g.legacy = true
	}
}

// NewGenerator creates a generator for the given configuration.
func NewGenerator(cfg config.PlatformerConfig, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	g.maxLevels = max(cfg.Levels.Max, 1)
	if g.legacy {
		g.maxLevels = max(cfg.Levels.Legacy.Max, 1)
	}
	return g
}

// Generate builds an arena with the default configuration.
func Generate(level int, width, height float64, rng *rand.Rand) *Arena {
	return NewGenerator(config.DefaultPlatformerConfig()).Generate(level, width, height, rng)
}

// MaxLevels returns the number of levels in the campaign.
func (g *Generator) MaxLevels() int {
	return g.maxLevels
}

// Legacy reports whether the generator uses the legacy layout.
func (g *Generator) Legacy() bool {
	return g.legacy
}

// ClampLevel restricts a level number to [1, MaxLevels].
func (g *Generator) ClampLevel(level int) int {
	return core.Clamp(level, 1, g.maxLevels)
}

// Generate builds the arena for a level. Out-of-range levels are clamped.
// A nil rng is replaced by one seeded with the level number.
func (g *Generator) Generate(level int, width, height float64, rng *rand.Rand) *Arena {
	level = g.ClampLevel(level)
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(level)))
	}
	if width <= 0 {
		width = g.cfg.Viewport.Width
	}
	if height <= 0 {
		height = g.cfg.Viewport.Height
	}

	gen := g.cfg.Generator
	a := &Arena{
		Level:     level,
		Width:     width,
		Height:    height,
		GroundY:   height - g.cfg.Viewport.GroundHeight,
		TopBorder: g.cfg.Viewport.TopBorder,
		GoalW:     gen.Goal.Width,
		GoalH:     gen.Goal.Height,
	}

	a.Background = g.background(level)
	a.Platforms = g.platforms(level, a)
	a.Coins = g.coins(level, a)
	a.Obstacles = g.obstacles(level, a)
	a.HealthPickups = g.healthPickups(level, a)
	a.Goal = g.goal(a)
	a.Guardian = g.guardian(level, a)
	a.Enemies = g.enemies(level, a, rng)

	return a
}

// background interpolates from the easy to the hard color across the campaign.
func (g *Generator) background(level int) core.RGB {
	t := 0.0
	if g.maxLevels > 1 {
		t = float64(level-1) / float64(g.maxLevels-1)
	}
	p := g.cfg.Generator.Palette
	return p.Easy.Lerp(p.Hard, t)
}

// platformTop is the highest y a platform top may reach so the goal still
// fits above the last platform.
func (g *Generator) platformTop(a *Arena) float64 {
	goal := g.cfg.Generator.Goal
	return a.TopBorder + goal.Height + goal.Lift + 10
}

func (g *Generator) platforms(level int, a *Arena) []core.Rect {
	lay := g.cfg.Generator.Platforms
	n := g.cfg.Generator.Density.Platforms.Count(level)
	if n == 0 {
		return nil
	}

	step := float64(level - 1)
	w := math.Max(lay.BaseWidth-lay.WidthShrink*step, lay.MinWidth)
	rise := math.Min(lay.BaseRise+lay.RiseStep*step, lay.MaxRise)
	gap := lay.BaseGap + lay.GapStep*step
	widened := lay.Breakpoint > 0 && level > lay.Breakpoint
	if widened {
		gap += lay.WidenBonus
	}
	pitch := w + gap

	top := g.platformTop(a)
	base := a.GroundY - lay.FirstLift
	right := a.Width - lay.RightMargin - w

	perRow := fitCount(right-lay.StartX, pitch)
	tiers := 1
	if rise > 0 {
		tiers = fitCount(base-top, rise)
	}

	// Surplus rows stack one lift above each other and wrap back down once
	// they run out of headroom, shifting sideways on each wrap.
	surplusX, surplusCols := lay.StartX, perRow
	if widened {
		surplusX = a.Width / 2
		surplusCols = fitCount(right-surplusX, pitch)
	}
	rowSlots := 1
	if lay.FirstLift > 0 {
		rowSlots = max(int((base-top)/lay.FirstLift), 1)
	}

	out := make([]core.Rect, 0, n)
	for i := range n {
		var x, y float64
		if i < perRow {
			x = lay.StartX + float64(i)*pitch
			y = base - float64(i%tiers)*rise
		} else {
			j := i - perRow
			row := j/surplusCols + 1
			col := j % surplusCols
			slot := (row-1)%rowSlots + 1
			wrap := (row - 1) / rowSlots
			x = surplusX + float64(col)*pitch + float64(row%2)*pitch/2 + float64(wrap)*pitch/4
			y = base - float64(slot)*lay.FirstLift - float64(col%tiers)*rise
		}
		x = core.ClampF(x, 0, right)
		y = core.ClampF(y, top, a.GroundY-lay.Height)
		out = append(out, core.NewRect(x, y, w, lay.Height))
	}
	return out
}

// fitCount returns how many items of the given pitch start within span, at least one.
func fitCount(span, pitch float64) int {
	if pitch <= 0 || span < 0 {
		return 1
	}
	return int(span/pitch) + 1
}

func (g *Generator) coins(level int, a *Arena) []core.Point {
	lay := g.cfg.Generator.Coins
	n := g.cfg.Generator.Density.Coins.Count(level)
	out := make([]core.Point, 0, n)

	// One above each platform first
	for i := 0; i < n && i < len(a.Platforms); i++ {
		p := a.Platforms[i]
		out = append(out, core.Point{X: p.X + p.W/2, Y: p.Y - lay.Lift})
	}

	// Surplus coins scatter through open air, wrapping within the playable band
	startX := g.cfg.Generator.Platforms.StartX
	spanX := a.Width - startX - g.cfg.Generator.Platforms.RightMargin
	r := g.cfg.Combat.CoinRadius
	top := a.TopBorder + r
	spanY := a.GroundY - r - top
	for k := 0; len(out) < n; k++ {
		x, y := startX, top
		if spanX > 0 {
			x += math.Mod(float64(k+1)*lay.StrideX, spanX)
		}
		if spanY > 0 {
			y += math.Mod(float64(k+1)*lay.StrideY, spanY)
		}
		out = append(out, core.Point{X: x, Y: y})
	}
	return out
}

func (g *Generator) obstacles(level int, a *Arena) []core.Rect {
	lay := g.cfg.Generator.Obstacles
	n := g.cfg.Generator.Density.Obstacles.Count(level)
	if n == 0 {
		return nil
	}

	grow := 0.0
	if lay.HeightStep > 0 {
		grow = float64(level / lay.HeightStep)
	}
	h := lay.BaseHeight + grow
	mh := lay.MountedHeight + grow/2

	onGround := (n + 1) / 2
	mounted := n / 2
	if len(a.Platforms) == 0 {
		onGround, mounted = n, 0
	}

	out := make([]core.Rect, 0, n)
	span := a.Width - g.cfg.Generator.Platforms.RightMargin - lay.Width - lay.StartX
	slot := span / float64(onGround)
	for k := range onGround {
		x := core.ClampF(lay.StartX+(float64(k)+0.5)*slot, 0, a.Width-lay.Width)
		out = append(out, core.NewRect(x, a.GroundY-h, lay.Width, h))
	}
	for k := range mounted {
		p := a.Platforms[(2*k+1)%len(a.Platforms)]
		x := p.X + (p.W-lay.MountedWidth)/2
		out = append(out, core.NewRect(x, p.Y-mh, lay.MountedWidth, mh))
	}
	return out
}

func (g *Generator) healthPickups(level int, a *Arena) []core.Point {
	n := g.cfg.Generator.Density.HealthPickups.Count(level)
	if n == 0 || len(a.Platforms) == 0 {
		return nil
	}
	lift := g.cfg.Generator.Coins.Lift
	out := make([]core.Point, 0, n)
	for i := range n {
		p := a.Platforms[i%len(a.Platforms)]
		out = append(out, core.Point{X: p.X + p.W/4, Y: p.Y - lift})
	}
	return out
}

// goal anchors the flag centered above the last platform, clamped to the viewport.
func (g *Generator) goal(a *Arena) core.Point {
	lay := g.cfg.Generator.Goal
	var x, y float64
	if n := len(a.Platforms); n > 0 {
		p := a.Platforms[n-1]
		x = p.X + p.W/2 - lay.Width/2
		y = p.Y - lay.Lift - lay.Height
	} else {
		x = a.Width*0.9 - lay.Width/2
		y = a.GroundY - lay.Height
	}
	return core.Point{
		X: core.ClampF(x, 0, a.Width-lay.Width),
		Y: core.ClampF(y, a.TopBorder, a.Height-lay.Height),
	}
}

func (g *Generator) guardian(level int, a *Arena) Enemy {
	lay := g.cfg.Generator.Guardian
	x := core.ClampF(a.Goal.X-lay.OffsetX, 0, a.Width-lay.Width)
	y := core.ClampF(a.Goal.Y-lay.OffsetY, a.TopBorder, a.GroundY-lay.Height)
	return Enemy{
		Rect:       core.NewRect(x, y, lay.Width, lay.Height),
		Speed:      lay.BaseSpeed + lay.SpeedStep*float64(level-1),
		Direction:  -1,
		VDirection: 1,
		Kind:       MotionHorizontal,
		PatrolMin:  0,
		PatrolMax:  a.Width,
		HasPatrol:  true,
	}
}

func (g *Generator) enemies(level int, a *Arena, rng *rand.Rand) []Enemy {
	lay := g.cfg.Generator.Enemies
	n := g.cfg.Generator.Density.Enemies.Count(level)
	speed := lay.BaseSpeed + lay.SpeedStep*float64(level-1)

	out := make([]Enemy, 0, n)
	for k := range n {
		e := Enemy{
			Speed:      speed,
			Direction:  randDir(rng),
			VDirection: randDir(rng),
		}
		if g.legacy && len(a.Platforms) > 0 {
			p := a.Platforms[(k+1)%len(a.Platforms)]
			e.Kind = MotionPatrolBounded
			e.HasPatrol = true
			e.PatrolMin = p.X
			e.PatrolMax = math.Max(p.Right(), p.X+lay.Width)
			x := p.X + randRange(rng, 0, p.W-lay.Width)
			e.Rect = core.NewRect(x, p.Y-lay.Height, lay.Width, lay.Height)
		} else {
			e.Kind = g.kindFor(level, rng)
			x := randRange(rng, lay.SafeZoneX, a.Width-lay.Width)
			y := randRange(rng, a.TopBorder, a.GroundY-lay.Height)
			e.Rect = core.NewRect(x, y, lay.Width, lay.Height)
		}
		out = append(out, e)
	}
	return out
}

// kindFor picks the motion tier for a level.
func (g *Generator) kindFor(level int, rng *rand.Rand) MotionKind {
	lay := g.cfg.Generator.Enemies
	switch {
	case level < lay.MidLevel:
		return MotionStatic
	case level < lay.HighLevel:
		if rng.Intn(2) == 0 {
			return MotionHorizontal
		}
		return MotionVertical
	default:
		return MotionDynamic
	}
}

func randDir(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// randRange returns lo + [0, hi-lo), or lo when the range is empty.
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
