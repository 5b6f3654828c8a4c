// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer.
package config

import "github.com/vovakirdan/pyjump/internal/core"

// PlatformerConfig contains all tunables of the platformer.
type PlatformerConfig struct {
	Viewport  ViewportConfig  `yaml:"viewport"`
	Player    PlayerConfig    `yaml:"player"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Combat    CombatConfig    `yaml:"combat"`
	PowerUp   PowerUpConfig   `yaml:"powerup"`
	Levels    LevelsConfig    `yaml:"levels"`
	Generator GeneratorConfig `yaml:"generator"`
}

// ViewportConfig defines the arena extents in pixels.
type ViewportConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"` // Thickness of the ground strip at the bottom
	TopBorder    float64 `yaml:"top_border"`    // Y of the ceiling
}

// GroundY returns the y-coordinate of the walkable ground line.
func (v ViewportConfig) GroundY() float64 {
	return v.Height - v.GroundHeight
}

// PlayerConfig defines player dimensions and movement.
type PlayerConfig struct {
	SpawnX    float64 `yaml:"spawn_x"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"` // Horizontal pixels per tick
	MaxHealth int     `yaml:"max_health"`
}

// PhysicsConfig defines gravity and the jump arc.
type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`     // Pixels per tick while not jumping
	JumpHeight int     `yaml:"jump_height"` // Jump phase counter; 0 derives it from the viewport
}

// CombatConfig defines damage, healing and scoring amounts.
type CombatConfig struct {
	EnemyDamage     int     `yaml:"enemy_damage"`
	GuardianDamage  int     `yaml:"guardian_damage"`
	InvincibleTicks int     `yaml:"invincible_ticks"` // Protected ticks following the tick of a hit
	HealAmount      int     `yaml:"heal_amount"`
	CoinScore       int     `yaml:"coin_score"`
	CoinRadius      float64 `yaml:"coin_radius"`
	PickupRadius    float64 `yaml:"pickup_radius"`
}

// PowerUpConfig defines the coin-gated invincibility power.
type PowerUpConfig struct {
	Threshold     int `yaml:"threshold"`      // Coins needed before activation is allowed
	DurationTicks int `yaml:"duration_ticks"` // 60 ticks = 1 second
}

// LevelsConfig defines level counts for each mode.
type LevelsConfig struct {
	Max        int         `yaml:"max"`
	DisplayMax int         `yaml:"display_max"` // Denominator shown on the death screen
	Legacy     LegacyLevel `yaml:"legacy"`
}

// LegacyLevel defines the level counts of the legacy platform-patrol variant.
type LegacyLevel struct {
	Max        int `yaml:"max"`
	DisplayMax int `yaml:"display_max"`
}

// GeneratorConfig defines the procedural difficulty curve.
type GeneratorConfig struct {
	Density   DensityConfig  `yaml:"density"`
	Palette   PaletteConfig  `yaml:"palette"`
	Platforms PlatformLayout `yaml:"platforms"`
	Coins     CoinLayout     `yaml:"coins"`
	Obstacles ObstacleLayout `yaml:"obstacles"`
	Enemies   EnemyLayout    `yaml:"enemies"`
	Guardian  GuardianLayout `yaml:"guardian"`
	Goal      GoalLayout     `yaml:"goal"`
}

// DensityConfig holds the per-level count formulas.
type DensityConfig struct {
	Platforms     CountFormula `yaml:"platforms"`
	Coins         CountFormula `yaml:"coins"`
	Obstacles     CountFormula `yaml:"obstacles"`
	Enemies       CountFormula `yaml:"enemies"`
	HealthPickups CountFormula `yaml:"health_pickups"`
}

// CountFormula computes base + level/step + level/bonus, optionally capped.
// A zero step or bonus disables that term; a zero cap means uncapped.
type CountFormula struct {
	Base  int `yaml:"base"`
	Step  int `yaml:"step"`
	Bonus int `yaml:"bonus"`
	Cap   int `yaml:"cap"`
}

// Count evaluates the formula for a level.
func (f CountFormula) Count(level int) int {
	n := f.Base
	if f.Step > 0 {
		n += level / f.Step
	}
	if f.Bonus > 0 {
		n += level / f.Bonus
	}
	if f.Cap > 0 && n > f.Cap {
		n = f.Cap
	}
	if n < 0 {
		n = 0
	}
	return n
}

// PaletteConfig defines the background gradient endpoints.
type PaletteConfig struct {
	Easy core.RGB `yaml:"easy"`
	Hard core.RGB `yaml:"hard"`
}

// PlatformLayout defines platform sizing and spacing.
type PlatformLayout struct {
	StartX      float64 `yaml:"start_x"`
	RightMargin float64 `yaml:"right_margin"`
	BaseWidth   float64 `yaml:"base_width"`
	MinWidth    float64 `yaml:"min_width"`
	WidthShrink float64 `yaml:"width_shrink"` // Width lost per level
	Height      float64 `yaml:"height"`
	FirstLift   float64 `yaml:"first_lift"` // Height of the lowest tier above ground
	BaseRise    float64 `yaml:"base_rise"`
	RiseStep    float64 `yaml:"rise_step"` // Extra rise per level
	MaxRise     float64 `yaml:"max_rise"`
	BaseGap     float64 `yaml:"base_gap"`
	GapStep     float64 `yaml:"gap_step"` // Extra gap per level
	Breakpoint  int     `yaml:"breakpoint"`
	WidenBonus  float64 `yaml:"widen_bonus"` // Extra gap past the breakpoint
}

// CoinLayout defines coin placement.
type CoinLayout struct {
	Lift    float64 `yaml:"lift"` // Distance above the platform top
	StrideX float64 `yaml:"stride_x"`
	StrideY float64 `yaml:"stride_y"`
}

// ObstacleLayout defines obstacle sizing.
type ObstacleLayout struct {
	StartX        float64 `yaml:"start_x"`
	Width         float64 `yaml:"width"`
	BaseHeight    float64 `yaml:"base_height"`
	HeightStep    int     `yaml:"height_step"` // Levels per extra pixel of height
	MountedWidth  float64 `yaml:"mounted_width"`
	MountedHeight float64 `yaml:"mounted_height"`
}

// EnemyLayout defines regular enemy sizing, speed and motion tiers.
type EnemyLayout struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"` // Extra speed per level
	SafeZoneX float64 `yaml:"safe_zone_x"`
	MidLevel  int     `yaml:"mid_level"`  // First level with moving enemies
	HighLevel int     `yaml:"high_level"` // First level with zigzag enemies
}

// GuardianLayout defines the goal guardian.
type GuardianLayout struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	OffsetX   float64 `yaml:"offset_x"` // Distance left of the goal
	OffsetY   float64 `yaml:"offset_y"` // Distance above the goal
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"`
}

// GoalLayout defines the goal flag.
type GoalLayout struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Lift   float64 `yaml:"lift"`
}

// JumpHeight returns the configured jump phase counter, deriving it from the
// viewport when unset: the largest J whose apex 0.5*sum(c^2, c=1..J) fits
// between a grounded player's head and the top border.
func (c PlatformerConfig) JumpHeight() int {
	if c.Physics.JumpHeight > 0 {
		return c.Physics.JumpHeight
	}
	room := c.Viewport.GroundY() - c.Player.Height - c.Viewport.TopBorder
	j, apex := 0, 0.0
	for {
		next := apex + float64((j+1)*(j+1))*0.5
		if next > room {
			return max(j, 1)
		}
		j++
		apex = next
	}
}
