package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer"
	"github.com/vovakirdan/pyjump/internal/games/platformer/sim"
	"github.com/vovakirdan/pyjump/internal/progress"
)

// Input policies for simulate.
const (
	policyIdle = "idle"
	policyWalk = "walk"
)

var (
	flagSimLevel   int
	flagSimTicks   int
	flagSimPolicy  string
	flagSimRetries int
	flagSimPaced   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Run the simulation without a terminal UI",
	Long: `Play a mode headless with scripted input and log every outcome.

Policies:
  idle - Never press anything
  walk - Hold right, jump every half second and fire the power-up when ready

Cleared levels continue to the next one; deaths are retried up to
--retries times. Progress is kept in memory only.

Examples:
  pyjump simulate --policy walk
  pyjump simulate platformer --level 10 --ticks 3600 --seed 42
  pyjump simulate --paced --log-level info`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Start level")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 10_000, "Stop after this many ticks of play")
	simulateCmd.Flags().StringVar(&flagSimPolicy, "policy", policyWalk, "Input policy: idle, walk")
	simulateCmd.Flags().IntVar(&flagSimRetries, "retries", 3, "Retries after a death before quitting")
	simulateCmd.Flags().BoolVar(&flagSimPaced, "paced", false, "Run at --fps instead of as fast as possible")
}

// scriptedInput produces input frames from a policy and cancels the run
// once the tick budget is spent.
type scriptedInput struct {
	policy string
	limit  int
	n      int
	last   *sim.Snapshot
	cancel context.CancelFunc
}

func (s *scriptedInput) Poll() core.InputFrame {
	s.n++
	if s.n >= s.limit {
		s.cancel()
	}

	if s.policy != policyWalk {
		return core.NewInputFrame()
	}
	in := core.FrameOf(core.ActionRight)
	if s.n%30 == 0 {
		in.Set(core.ActionJump)
	}
	if s.last != nil && s.last.Player.Power.Ready() {
		in.Set(core.ActionActivate)
	}
	return in
}

// logUI reports outcomes through the logger and answers them on its own.
type logUI struct {
	log     *log.Logger
	input   *scriptedInput
	retries int
	deaths  int
	last    sim.Snapshot
}

func (u *logUI) Draw(s sim.Snapshot) {
	u.last = s
	u.input.last = &u.last
}

func (u *logUI) Show(s sim.Screen) sim.Choice {
	u.log.Info("outcome",
		"state", s.State,
		"reached", fmt.Sprintf("%d/%d", s.Level, s.DisplayMax),
		"score", s.Score,
		"tick", u.last.Tick,
	)

	switch s.State {
	case sim.StateLevelComplete:
		return sim.ChoiceContinue
	case sim.StateDead:
		u.deaths++
		if u.deaths <= u.retries {
			return sim.ChoiceRetry
		}
		return sim.ChoiceQuit
	default:
		return sim.ChoiceQuit
	}
}

func runSimulate(_ *cobra.Command, args []string) error {
	gameID := platformer.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagSimPolicy != policyIdle && flagSimPolicy != policyWalk {
		return fmt.Errorf("unknown policy %q (valid: idle, walk)", flagSimPolicy)
	}

	gen, err := generatorFor(gameID)
	if err != nil {
		return err
	}

	displayMax := gameConfig.Levels.DisplayMax
	if gameID == platformer.LegacyID {
		displayMax = gameConfig.Levels.Legacy.DisplayMax
	}

	store := progress.NewBestEffort(progress.NewMemory(gen.MaxLevels()), logger)
	flow := sim.NewFlow(gameConfig, gen, store, sim.FlowOptions{
		Seed:       flagSeed,
		DisplayMax: displayMax,
		Logger:     logger.With("game", gameID),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := &scriptedInput{policy: flagSimPolicy, limit: flagSimTicks, cancel: cancel}
	ui := &logUI{log: logger, input: in, retries: flagSimRetries}

	rcfg := sim.RunnerConfig{}
	if flagSimPaced {
		rcfg = sim.DefaultRunnerConfig()
		rcfg.TickRate = flagFPS
	}

	final, err := sim.NewRunner(flow, in, ui, rcfg).Run(ctx, flagSimLevel)
	if err != nil {
		return err
	}

	fmt.Printf("Final state:  %s\n", final)
	fmt.Printf("Ticks played: %d\n", in.n)
	fmt.Printf("Level:        %d/%d\n", flow.Level(), flow.MaxLevels())
	fmt.Printf("Score:        %d\n", ui.last.Player.Score)
	fmt.Printf("Unlocked:     %d\n", flow.Watermark())
	fmt.Printf("Deaths:       %d\n", ui.deaths)
	return nil
}
