package config

import (
	_ "embed"

	"github.com/vovakirdan/pyjump/internal/core"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// It mirrors defaults/platformer.yaml and is used when the embed cannot be parsed.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Viewport: ViewportConfig{
			Width:        800,
			Height:       400,
			GroundHeight: 20,
			TopBorder:    0,
		},
		Player: PlayerConfig{
			SpawnX:    50,
			Width:     40,
			Height:    50,
			Speed:     5,
			MaxHealth: 100,
		},
		Physics: PhysicsConfig{
			Gravity:    5,
			JumpHeight: 0, // Derived from viewport (12 for 800x400)
		},
		Combat: CombatConfig{
			EnemyDamage:     20,
			GuardianDamage:  40,
			InvincibleTicks: 60, // 1 second
			HealAmount:      25,
			CoinScore:       10,
			CoinRadius:      10,
			PickupRadius:    10,
		},
		PowerUp: PowerUpConfig{
			Threshold:     10,
			DurationTicks: 300, // 5 seconds
		},
		Levels: LevelsConfig{
			Max:        50,
			DisplayMax: 50,
			Legacy: LegacyLevel{
				Max:        20,
				DisplayMax: 20,
			},
		},
		Generator: GeneratorConfig{
			Density: DensityConfig{
				Platforms:     CountFormula{Base: 4, Step: 3, Bonus: 10},
				Coins:         CountFormula{Base: 5, Step: 2, Bonus: 7},
				Obstacles:     CountFormula{Base: 1, Step: 4, Bonus: 12},
				Enemies:       CountFormula{Base: 1, Step: 4, Bonus: 10},
				HealthPickups: CountFormula{Base: 1, Step: 8, Cap: 3},
			},
			Palette: PaletteConfig{
				Easy: core.RGB{R: 173, G: 216, B: 230},
				Hard: core.RGB{R: 20, G: 20, B: 30},
			},
			Platforms: PlatformLayout{
				StartX:      120,
				RightMargin: 20,
				BaseWidth:   140,
				MinWidth:    50,
				WidthShrink: 2,
				Height:      15,
				FirstLift:   70,
				BaseRise:    20,
				RiseStep:    2,
				MaxRise:     90,
				BaseGap:     20,
				GapStep:     1,
				Breakpoint:  25,
				WidenBonus:  30,
			},
			Coins: CoinLayout{
				Lift:    25,
				StrideX: 137,
				StrideY: 53,
			},
			Obstacles: ObstacleLayout{
				StartX:        160,
				Width:         20,
				BaseHeight:    20,
				HeightStep:    3,
				MountedWidth:  15,
				MountedHeight: 12,
			},
			Enemies: EnemyLayout{
				Width:     30,
				Height:    30,
				BaseSpeed: 1,
				SpeedStep: 0.08,
				SafeZoneX: 200,
				MidLevel:  10,
				HighLevel: 25,
			},
			Guardian: GuardianLayout{
				Width:     40,
				Height:    40,
				OffsetX:   80,
				OffsetY:   30,
				BaseSpeed: 1.5,
				SpeedStep: 0.05,
			},
			Goal: GoalLayout{
				Width:  40,
				Height: 50,
				Lift:   10,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
