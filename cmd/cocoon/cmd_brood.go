package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"cocoon/internal/cocoon"
	"cocoon/internal/config"
	"cocoon/internal/creature"
	"cocoon/internal/types"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// broodOptions extends hatchOptions with group settings.
type broodOptions struct {
	hatchOptions
	size    int
	stagger time.Duration
	timeout time.Duration
}

func newBroodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brood",
		Short: "Morph several cocoons and rally them all to one point",
		Long: `Spawns a brood of cocoons. Each successive cocoon hatches one stagger
later than the one before it. The whole brood is ordered to the rally point
while still pending, and every creature walks there as it hatches.

Interrupting the command (or hitting --timeout) cancels every cocoon that
has not hatched yet.

Example:
  cocoon brood --size 6 --interval 1s --stagger 250ms --x 10 --y 4`,
		Args: cobra.NoArgs,
		RunE: runBrood,
	}
	addCreatureFlags(cmd)
	cmd.Flags().Int("size", 0, "Number of cocoons (default from config)")
	cmd.Flags().Duration("stagger", 0, "Extra delay per successive cocoon (default from config)")
	cmd.Flags().Duration("timeout", 0, "Cancel unhatched cocoons after this long (0 = never)")
	return cmd
}

func resolveBroodOptions(cmd *cobra.Command) (broodOptions, error) {
	base := cfg
	if base == nil {
		base = config.DefaultConfig()
	}
	c := *base

	flags := cmd.Flags()
	if flags.Changed("size") {
		c.Brood.Size, _ = flags.GetInt("size")
	}
	if flags.Changed("stagger") {
		d, _ := flags.GetDuration("stagger")
		c.Brood.Stagger = d.String()
	}

	hopts, err := resolveHatchOptions(cmd, &c)
	if err != nil {
		return broodOptions{}, err
	}

	opts := broodOptions{
		hatchOptions: hopts,
		size:         c.Brood.Size,
		stagger:      c.GetBroodStagger(),
	}
	opts.timeout, _ = flags.GetDuration("timeout")
	if opts.timeout < 0 {
		return broodOptions{}, fmt.Errorf("timeout must not be negative, got %s", opts.timeout)
	}
	return opts, nil
}

// runBrood morphs a brood of cocoons.
func runBrood(cmd *cobra.Command, args []string) error {
	opts, err := resolveBroodOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Cocoons hatch on their own goroutines and share the output.
	out := &syncWriter{w: cmd.OutOrStdout()}
	var counts map[cocoon.State]int
	if opts.faction == types.FactionTerran {
		counts, err = broodAndWait[*creature.Marine](ctx, opts, creature.NewMarineCreator(opts.name, out))
	} else {
		counts, err = broodAndWait[*creature.Drone](ctx, opts, creature.NewDroneCreator(out))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "brood settled: %d hatched, %d cancelled\n",
		counts[cocoon.StateCreated], counts[cocoon.StateCancelled])
	return nil
}

// broodAndWait spawns the brood, rallies it and waits for every member to
// settle. Members still pending when ctx ends or the timeout passes are
// cancelled.
func broodAndWait[C types.Creature](ctx context.Context, opts broodOptions, creator types.Creator[C], cocoonOpts ...cocoon.Option) (map[cocoon.State]int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	b := cocoon.NewBrood[C](creator, cocoonOpts...)
	for i := 0; i < opts.size; i++ {
		b.Spawn(opts.interval + time.Duration(i)*opts.stagger)
	}
	logger.Info("Brood morphing",
		zap.Int("size", opts.size),
		zap.String("faction", string(opts.faction)),
		zap.Duration("interval", opts.interval),
		zap.Duration("stagger", opts.stagger))

	if opts.rally != nil {
		b.Move(*opts.rally)
	}

	waitCtx := ctx
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	if err := b.Wait(waitCtx); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("brood wait failed: %w", err)
		}
		logger.Info("Cancelling unhatched cocoons", zap.Error(err))
		b.Cancel()
	}

	counts := b.Counts()
	logger.Info("Brood settled",
		zap.Int("hatched", counts[cocoon.StateCreated]),
		zap.Int("cancelled", counts[cocoon.StateCancelled]))
	return counts, nil
}

// syncWriter serializes writes from concurrently hatching creatures.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
