package sim

import (
	"context"
	"time"

	"github.com/vovakirdan/pyjump/internal/core"
)

// Input supplies one frame of player input per tick.
type Input interface {
	Poll() core.InputFrame
}

// UI draws frames and shows outcome screens. Show returns ChoiceNone until
// the player decides; the runner asks again at the idle rate.
type UI interface {
	Draw(Snapshot)
	Show(Screen) Choice
}

// RunnerConfig sets the pacing of a Runner. Zero rates run unpaced.
type RunnerConfig struct {
	TickRate int // Simulation ticks per second while playing
	IdleRate int // Polls per second on outcome screens
}

// DefaultRunnerConfig returns 60 Hz simulation and 10 Hz idle polling.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{TickRate: 60, IdleRate: 10}
}

// Runner is the blocking outer loop around a Flow.
type Runner struct {
	flow *Flow
	in   Input
	ui   UI
	cfg  RunnerConfig
}

// NewRunner creates a runner.
func NewRunner(flow *Flow, in Input, ui UI, cfg RunnerConfig) *Runner {
	return &Runner{flow: flow, in: in, ui: ui, cfg: cfg}
}

// Run plays from level until the player quits or returns to the menu and
// returns that final state. Cancelling ctx quits.
func (r *Runner) Run(ctx context.Context, lvl int) (State, error) {
	if err := r.flow.Start(lvl); err != nil {
		return r.flow.State(), err
	}

	tick := newPacer(r.cfg.TickRate)
	defer tick.stop()
	idle := newPacer(r.cfg.IdleRate)
	defer idle.stop()

	for {
		switch state := r.flow.State(); {
		case state == StateQuit || state == StateMenu:
			return state, nil
		case state == StatePlaying:
			r.flow.Step(r.in.Poll())
			r.ui.Draw(r.flow.Snapshot())
			if !tick.wait(ctx) {
				r.flow.Quit()
			}
		case state.Outcome():
			choice := r.ui.Show(r.flow.Screen())
			if choice != ChoiceNone {
				if err := r.flow.Choose(choice); err != nil {
					return r.flow.State(), err
				}
				continue
			}
			if !idle.wait(ctx) {
				r.flow.Quit()
			}
		}
	}
}

// pacer waits for the next period, or only checks ctx when unpaced.
type pacer struct {
	t *time.Ticker
}

func newPacer(rate int) pacer {
	if rate <= 0 {
		return pacer{}
	}
	return pacer{t: time.NewTicker(time.Second / time.Duration(rate))}
}

// wait blocks until the next period and reports false if ctx was cancelled.
func (p pacer) wait(ctx context.Context) bool {
	if p.t == nil {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.t.C:
		return true
	}
}

func (p pacer) stop() {
	if p.t != nil {
		p.t.Stop()
	}
}
