package main

import (
	"fmt"
	"os"

	"cocoon/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the cocoon config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to --config",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config (file, environment and defaults) as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	return configCmd
}

// runConfigInit writes the default configuration
func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s. Use --force to overwrite.\n", configPath)
		return nil
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("Wrote default config", zap.String("path", configPath))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", configPath)
	return nil
}

// runConfigShow prints the loaded configuration
func runConfigShow(cmd *cobra.Command, args []string) error {
	c := cfg
	if c == nil {
		c = config.DefaultConfig()
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
