// Package main implements the cocoon CLI commands.
// This file contains the hatch command and the creature flags it shares with brood.
package main

import (
	"context"
	"fmt"
	"time"

	"cocoon/internal/cocoon"
	"cocoon/internal/config"
	"cocoon/internal/creature"
	"cocoon/internal/types"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// hatchOptions is the config after command-line overrides.
type hatchOptions struct {
	faction     types.Faction
	name        string
	interval    time.Duration
	rally       *types.Point
	cancelAfter time.Duration
}

func newHatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Morph one cocoon and wait for it to hatch",
		Long: `Builds a cocoon, immediately orders it to the rally point and waits.

The order is remembered while the cocoon is pending; once the creature
hatches it greets and walks to the rally point.

Example:
  cocoon hatch --interval 3s --x 3 --y 2
  cocoon hatch --faction terran --name "Jim Raynor" --no-rally`,
		Args: cobra.NoArgs,
		RunE: runHatch,
	}
	addCreatureFlags(cmd)
	cmd.Flags().Duration("cancel-after", 0, "Cancel the cocoon after this long (0 = never)")
	return cmd
}

// addCreatureFlags registers the flags shared by hatch and brood.
func addCreatureFlags(cmd *cobra.Command) {
	cmd.Flags().String("faction", "", "Creature faction: zerg or terran (default from config)")
	cmd.Flags().String("name", "", "Marine name for terran cocoons (default from config)")
	cmd.Flags().Duration("interval", 0, "Creation delay (default from config)")
	cmd.Flags().Float64("x", 0, "Rally point X")
	cmd.Flags().Float64("y", 0, "Rally point Y")
	cmd.Flags().Bool("no-rally", false, "Do not order a move before hatching")
}

// resolveHatchOptions layers command-line flags over the loaded config.
func resolveHatchOptions(cmd *cobra.Command, base *config.Config) (hatchOptions, error) {
	if base == nil {
		base = config.DefaultConfig()
	}
	c := *base
	if base.Cocoon.RallyPoint != nil {
		rp := *base.Cocoon.RallyPoint
		c.Cocoon.RallyPoint = &rp
	}

	flags := cmd.Flags()
	if flags.Changed("faction") {
		c.Cocoon.Faction, _ = flags.GetString("faction")
	}
	if flags.Changed("name") {
		c.Cocoon.MarineName, _ = flags.GetString("name")
	}
	if flags.Changed("interval") {
		d, _ := flags.GetDuration("interval")
		c.Cocoon.CreationInterval = d.String()
	}
	if flags.Changed("x") || flags.Changed("y") {
		if c.Cocoon.RallyPoint == nil {
			c.Cocoon.RallyPoint = &config.PointConfig{}
		}
		if flags.Changed("x") {
			c.Cocoon.RallyPoint.X, _ = flags.GetFloat64("x")
		}
		if flags.Changed("y") {
			c.Cocoon.RallyPoint.Y, _ = flags.GetFloat64("y")
		}
	}
	if noRally, _ := flags.GetBool("no-rally"); noRally {
		c.Cocoon.RallyPoint = nil
	}

	if err := c.Validate(); err != nil {
		return hatchOptions{}, fmt.Errorf("invalid configuration: %w", err)
	}
	faction, err := types.ParseFaction(c.Cocoon.Faction)
	if err != nil {
		return hatchOptions{}, err
	}

	opts := hatchOptions{
		faction:  faction,
		name:     c.Cocoon.MarineName,
		interval: c.GetCreationInterval(),
	}
	if rp := c.Cocoon.RallyPoint; rp != nil {
		opts.rally = &types.Point{X: rp.X, Y: rp.Y}
	}
	if flags.Lookup("cancel-after") != nil {
		opts.cancelAfter, _ = flags.GetDuration("cancel-after")
		if opts.cancelAfter < 0 {
			return hatchOptions{}, fmt.Errorf("cancel-after must not be negative, got %s", opts.cancelAfter)
		}
	}
	return opts, nil
}

// runHatch morphs a single cocoon.
func runHatch(cmd *cobra.Command, args []string) error {
	opts, err := resolveHatchOptions(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	var state cocoon.State
	if opts.faction == types.FactionTerran {
		state = hatchAndWait[*creature.Marine](ctx, opts, creature.NewMarineCreator(opts.name, out))
	} else {
		state = hatchAndWait[*creature.Drone](ctx, opts, creature.NewDroneCreator(out))
	}

	if state == cocoon.StateCancelled {
		fmt.Fprintln(cmd.ErrOrStderr(), "cocoon cancelled before hatching")
	}
	return nil
}

// hatchAndWait blocks until the cocoon hatches or is cancelled by
// --cancel-after or ctx, and returns the final state.
func hatchAndWait[C types.Creature](ctx context.Context, opts hatchOptions, creator types.Creator[C], cocoonOpts ...cocoon.Option) cocoon.State {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cocoon.New[C](opts.interval, creator, cocoonOpts...)
	logger.Info("Cocoon morphing",
		zap.String("cocoon", c.ID()),
		zap.String("faction", string(opts.faction)),
		zap.Duration("interval", opts.interval))

	if opts.rally != nil {
		c.Move(*opts.rally)
	}

	var cancelAfter <-chan time.Time
	if opts.cancelAfter > 0 {
		t := time.NewTimer(opts.cancelAfter)
		defer t.Stop()
		cancelAfter = t.C
	}

	select {
	case <-c.Done():
	case <-cancelAfter:
		logger.Info("Cancel deadline reached", zap.String("cocoon", c.ID()))
		c.Cancel()
	case <-ctx.Done():
		logger.Info("Received shutdown signal", zap.String("cocoon", c.ID()))
		c.Cancel()
	}

	// Cancel can lose to a hatch already under way; either way Done closes.
	<-c.Done()

	state := c.State()
	logger.Info("Cocoon settled", zap.String("cocoon", c.ID()), zap.String("state", string(state)))
	return state
}
