package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScale holds the multipliers a preset applies on top of the loaded config.
type presetScale struct {
	health     float64
	damage     float64
	enemySpeed float64
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {health: 1.5, damage: 0.5, enemySpeed: 0.75},
	DifficultyNormal: {health: 1, damage: 1, enemySpeed: 1},
	DifficultyHard:   {health: 0.75, damage: 1.5, enemySpeed: 1.25},
}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(name)
	if _, ok := presetScales[p]; !ok {
		return "", fmt.Errorf("unknown difficulty %q (valid: easy, normal, hard)", name)
	}
	return p, nil
}

// Presets returns the valid preset names in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ApplyPlatformerPreset scales health, damage and enemy speed for a preset.
// Unknown presets leave the config unchanged.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	s, ok := presetScales[preset]
	if !ok || preset == DifficultyNormal {
		return
	}

	cfg.Player.MaxHealth = scaleInt(cfg.Player.MaxHealth, s.health)
	cfg.Combat.EnemyDamage = scaleInt(cfg.Combat.EnemyDamage, s.damage)
	cfg.Combat.GuardianDamage = scaleInt(cfg.Combat.GuardianDamage, s.damage)

	g := &cfg.Generator
	g.Enemies.BaseSpeed *= s.enemySpeed
	g.Enemies.SpeedStep *= s.enemySpeed
	g.Guardian.BaseSpeed *= s.enemySpeed
	g.Guardian.SpeedStep *= s.enemySpeed
}

func scaleInt(v int, f float64) int {
	return max(int(math.Round(float64(v)*f)), 1)
}
