package sim

import "github.com/vovakirdan/pyjump/internal/core"

// Player is the state of the player for one session.
type Player struct {
	core.Rect
	JumpPhase       int // Counts from +J down to -J while airborne
	Jumping         bool
	OnGround        bool
	Health          int
	MaxHealth       int
	InvincibleTicks int // Grace window after a hit
	Power           PowerUp
	Score           int
}

// Carry is what survives a transition into the next session.
type Carry struct {
	Score  int
	Health int // 0 means full health
}

// Damage subtracts health, clamped at zero, and reports whether the player died.
func (p *Player) Damage(amount int) bool {
	p.Health = core.Clamp(p.Health-amount, 0, p.MaxHealth)
	return p.Health == 0
}

// Heal adds health, clamped at MaxHealth.
func (p *Player) Heal(amount int) {
	p.Health = core.Clamp(p.Health+amount, 0, p.MaxHealth)
}

// Vulnerable reports whether enemies can currently hurt the player.
func (p *Player) Vulnerable() bool {
	return p.InvincibleTicks == 0 && !p.Power.Active()
}

// land puts the player on a surface whose top is at y and ends any jump.
func (p *Player) land(y float64, jumpHeight int) {
	p.Y = y - p.H
	p.OnGround = true
	p.Jumping = false
	p.JumpPhase = jumpHeight
}
