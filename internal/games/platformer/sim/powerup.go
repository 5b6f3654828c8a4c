package sim

// PowerState is the state of the coin power-up.
type PowerState int

const (
	PowerInactive PowerState = iota
	PowerActive
)

// String returns a human-readable name for the state.
func (s PowerState) String() string {
	if s == PowerActive {
		return "active"
	}
	return "inactive"
}

// PowerUp is timed full invincibility unlocked by collecting coins.
type PowerUp struct {
	State          PowerState
	TicksRemaining int
	Coins          int // Coins collected toward activation, at most Threshold
	Threshold      int
	Duration       int
}

// NewPowerUp creates an inactive power-up.
func NewPowerUp(threshold, duration int) PowerUp {
	return PowerUp{Threshold: max(threshold, 0), Duration: max(duration, 0)}
}

// AddCoin counts a collected coin toward activation.
func (p *PowerUp) AddCoin() {
	if p.Coins < p.Threshold {
		p.Coins++
	}
}

// Ready reports whether activation would succeed.
func (p *PowerUp) Ready() bool {
	return p.State == PowerInactive && p.Coins >= p.Threshold
}

// Active reports whether invincibility is on.
func (p *PowerUp) Active() bool {
	return p.State == PowerActive
}

// TryActivate starts the countdown if enough coins were collected.
// The coin counter resets on success.
func (p *PowerUp) TryActivate() bool {
	if !p.Ready() || p.Duration == 0 {
		return false
	}
	p.State = PowerActive
	p.TicksRemaining = p.Duration
	p.Coins = 0
	return true
}

// Tick advances the countdown by one tick.
func (p *PowerUp) Tick() {
	if p.State != PowerActive {
		return
	}
	p.TicksRemaining--
	if p.TicksRemaining <= 0 {
		p.TicksRemaining = 0
		p.State = PowerInactive
	}
}
