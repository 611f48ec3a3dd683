package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its config when --config is not set.
const DefaultPath = ".cocoon/config.yaml"

// Config holds all cocoon configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Single cocoon defaults (hatch command)
	Cocoon CocoonConfig `yaml:"cocoon"`

	// Brood defaults (brood command)
	Brood BroodConfig `yaml:"brood"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CocoonConfig configures how a single cocoon hatches.
type CocoonConfig struct {
	CreationInterval string       `yaml:"creation_interval"` // e.g. "3s"
	Faction          string       `yaml:"faction"`           // zerg, terran
	MarineName       string       `yaml:"marine_name"`       // terran creatures are named by the caller
	RallyPoint       *PointConfig `yaml:"rally_point,omitempty"`
}

// PointConfig is a rally point as written in YAML.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BroodConfig configures a group of cocoons spawned together.
type BroodConfig struct {
	Size    int    `yaml:"size"`
	Stagger string `yaml:"stagger"` // added to the interval of each successive cocoon
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "cocoon",
		Version: "0.3.0",

		Cocoon: CocoonConfig{
			CreationInterval: "3s",
			Faction:          "zerg",
			MarineName:       "Jim Raynor",
			RallyPoint:       &PointConfig{X: 3, Y: 2},
		},

		Brood: BroodConfig{
			Size:    4,
			Stagger: "500ms",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COCOON_INTERVAL"); v != "" {
		c.Cocoon.CreationInterval = v
	}
	if v := os.Getenv("COCOON_FACTION"); v != "" {
		c.Cocoon.Faction = v
	}
	if v := os.Getenv("COCOON_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
		}
	}
}

// GetCreationInterval returns the cocoon creation interval as a duration.
func (c *Config) GetCreationInterval() time.Duration {
	d, err := time.ParseDuration(c.Cocoon.CreationInterval)
	if err != nil || d < 0 {
		return 3 * time.Second
	}
	return d
}

// GetBroodStagger returns the brood stagger as a duration.
func (c *Config) GetBroodStagger() time.Duration {
	d, err := time.ParseDuration(c.Brood.Stagger)
	if err != nil || d < 0 {
		return 500 * time.Millisecond
	}
	return d
}

// ValidFactions lists the factions a cocoon can hatch.
var ValidFactions = []string{"zerg", "terran"}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Cocoon.CreationInterval)
	if err != nil {
		return fmt.Errorf("invalid creation_interval %q: %w", c.Cocoon.CreationInterval, err)
	}
	if d < 0 {
		return fmt.Errorf("creation_interval must not be negative, got %s", d)
	}

	if !contains(ValidFactions, c.Cocoon.Faction) {
		return fmt.Errorf("invalid faction: %s (valid: %v)", c.Cocoon.Faction, ValidFactions)
	}
	if c.Cocoon.Faction == "terran" && c.Cocoon.MarineName == "" {
		return fmt.Errorf("marine_name is required for terran cocoons")
	}

	if c.Brood.Size <= 0 {
		return fmt.Errorf("brood size must be positive, got %d", c.Brood.Size)
	}
	s, err := time.ParseDuration(c.Brood.Stagger)
	if err != nil {
		return fmt.Errorf("invalid brood stagger %q: %w", c.Brood.Stagger, err)
	}
	if s < 0 {
		return fmt.Errorf("brood stagger must not be negative, got %s", s)
	}

	if c.Logging.Level != "" && !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
