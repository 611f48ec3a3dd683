package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cocoon/internal/config"
	"cocoon/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cocoon",
		Short: "cocoon - hatch creatures after a delay, rallying them once they exist",
		Long: `cocoon morphs creatures inside cocoons.

A cocoon stands in for a creature that does not exist yet. Move orders sent
to a cocoon are remembered (only the latest one) and carried out by the
creature as soon as it hatches. Greetings sent to a cocoon go unanswered.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Initialize logger
			zc := zap.NewProductionConfig()
			level, err := zapcore.ParseLevel(cfg.Logging.Level)
			if err != nil {
				level = zapcore.InfoLevel
			}
			if verbose {
				level = zapcore.DebugLevel
				cfg.Logging.DebugMode = true
			}
			zc.Level = zap.NewAtomicLevelAt(level)
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			logging.Initialize(logger, cfg.Logging)
			logging.Get(logging.CategoryBoot).Debug("config loaded", zap.String("path", configPath))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")

	rootCmd.AddCommand(newHatchCmd())
	rootCmd.AddCommand(newBroodCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
