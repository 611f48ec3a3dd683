// Package logging provides config-driven categorized logging for cocoon.
// Every category is a named child of one zap base logger installed at startup.
// Logging is controlled by debug_mode in the config - when false, every
// category returns a no-op logger.
package logging

import (
	"sync"

	"cocoon/internal/config"

	"go.uber.org/zap"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // CLI startup, config loading
	CategoryCocoon   Category = "cocoon"   // Cocoon lifecycle: armed, buffered, hatched, cancelled
	CategoryCreature Category = "creature" // Creator output
	CategoryBrood    Category = "brood"    // Brood spawning and waiting
)

// AllCategories lists every known category in a stable order.
var AllCategories = []Category{CategoryBoot, CategoryCocoon, CategoryCreature, CategoryBrood}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.Logger)
)

// Initialize installs the base logger and the logging config.
// Should be called once at startup, before any cocoon is created.
func Initialize(l *zap.Logger, c config.LoggingConfig) {
	mu.Lock()
	if l == nil {
		l = zap.NewNop()
	}
	base = l
	cfg = c
	loggers = make(map[Category]*zap.Logger)
	mu.Unlock()

	boot := Get(CategoryBoot)
	boot.Debug("logging initialized",
		zap.String("level", c.Level),
		zap.Bool("debug_mode", c.DebugMode))
	for _, cat := range AllCategories {
		boot.Debug("category", zap.String("name", string(cat)), zap.Bool("enabled", IsCategoryEnabled(cat)))
	}
}

// Reset restores the no-op defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	base = zap.NewNop()
	cfg = config.LoggingConfig{}
	loggers = make(map[Category]*zap.Logger)
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.Named(string(category))
	loggers[category] = l
	return l
}
