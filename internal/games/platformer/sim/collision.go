package sim

import (
	"slices"

	"github.com/vovakirdan/pyjump/internal/core"
)

// resolvePlatforms snaps the player out of every platform it overlaps or
// crossed during the tick, in generation order. A jump arc moves up to
// J*J/2 pixels per tick, more than a player and a platform are tall, so a
// platform top crossed between the previous and the current rect counts as
// a landing even without an overlap at the end of the tick. The same holds
// for a bottom crossed on the way up. Landing wins over a bonk from below,
// which wins over the left and right edges. Later platforms may override
// earlier corrections.
func (s *Session) resolvePlatforms(prev core.Rect) {
	p := &s.Player
	plats := s.Arena.Platforms
	for _, i := range s.world.near(prev.Union(p.Rect), tagPlatform, s.world.platforms) {
		plat := plats[i]
		across := p.X < plat.Right() && plat.X < p.Right()
		switch {
		case across && prev.Bottom() <= plat.Y && p.Bottom() > plat.Y:
			p.land(plat.Y, s.jumpHeight)
		case across && prev.Y >= plat.Bottom() && p.Y < plat.Bottom():
			p.Y = plat.Bottom()
			if p.Jumping && p.JumpPhase > 0 {
				p.JumpPhase = -p.JumpPhase // Bonk: fall back down along the mirrored arc
			}
		case !p.Intersects(plat):
			continue // Never reached it, or an earlier correction cleared it
		case prev.Right() <= plat.X:
			p.X = plat.X - p.W
		case prev.X >= plat.Right():
			p.X = plat.Right()
		default:
			p.land(plat.Y, s.jumpHeight)
		}
	}
}

// clampVertical keeps the player between the ceiling and the ground.
func (s *Session) clampVertical() {
	p := &s.Player
	if p.Bottom() >= s.Arena.GroundY {
		p.land(s.Arena.GroundY, s.jumpHeight)
	}
	if p.Y < s.Arena.TopBorder {
		p.Y = s.Arena.TopBorder
	}
}

// resolveObstacles pushes the player out sideways. Obstacles never hurt and
// never stop vertical movement.
func (s *Session) resolveObstacles(prev core.Rect) {
	p := &s.Player
	obs := s.Arena.Obstacles
	for _, i := range s.world.hits(p.Rect, tagObstacle, s.world.obstacles, func(i int) core.Rect { return obs[i] }) {
		o := obs[i]
		if !p.Intersects(o) {
			continue
		}
		switch {
		case prev.Right() <= o.X:
			p.X = o.X - p.W
		case prev.X >= o.Right():
			p.X = o.Right()
		case p.Center().X < o.Center().X:
			p.X = o.X - p.W
		default:
			p.X = o.Right()
		}
	}
	p.X = core.ClampF(p.X, 0, s.Arena.Width-p.W)
}

// checkDamage applies at most one hit per tick and reports whether one
// landed and whether it was fatal.
func (s *Session) checkDamage() (hit, dead bool) {
	p := &s.Player
	if !p.Vulnerable() {
		return false, false
	}

	enemies := s.Arena.Enemies
	damage := 0
	if hits := s.world.hits(p.Rect, tagEnemy, s.world.enemies, func(i int) core.Rect { return enemies[i].Rect }); len(hits) > 0 {
		damage = s.cfg.Combat.EnemyDamage
	} else if s.world.overlaps(p.Rect, tagGuardian, s.world.guardian, s.Arena.Guardian.Rect) {
		damage = s.cfg.Combat.GuardianDamage
	}
	if damage == 0 {
		return false, false
	}

	p.InvincibleTicks = s.cfg.Combat.InvincibleTicks
	dead = p.Damage(damage)
	s.log.Debug("player hit", "damage", damage, "health", p.Health, "tick", s.tick)
	return true, dead
}

// collectPickups removes every overlapping health pickup and heals the player.
func (s *Session) collectPickups() {
	p := &s.Player
	r := s.cfg.Combat.PickupRadius
	hits := s.world.hits(p.Rect, tagPickup, s.world.pickups, func(i int) core.Rect {
		return core.RectAround(s.Arena.HealthPickups[i], r)
	})
	// Remove from the back so earlier indices stay valid
	for _, i := range slices.Backward(hits) {
		s.Arena.HealthPickups = slices.Delete(s.Arena.HealthPickups, i, i+1)
		s.world.removePickup(i)
		p.Heal(s.cfg.Combat.HealAmount)
	}
}

// collectCoins removes every overlapping coin, scoring it and charging the power-up.
func (s *Session) collectCoins() {
	p := &s.Player
	r := s.cfg.Combat.CoinRadius
	hits := s.world.hits(p.Rect, tagCoin, s.world.coins, func(i int) core.Rect {
		return core.RectAround(s.Arena.Coins[i], r)
	})
	for _, i := range slices.Backward(hits) {
		s.Arena.Coins = slices.Delete(s.Arena.Coins, i, i+1)
		s.world.removeCoin(i)
		p.Score += s.cfg.Combat.CoinScore
		p.Power.AddCoin()
	}
}

// reachedGoal reports whether the player touches the goal flag.
func (s *Session) reachedGoal() bool {
	return s.world.overlaps(s.Player.Rect, tagGoal, s.world.goal, s.Arena.GoalRect())
}
