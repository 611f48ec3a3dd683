package logging

import (
	"testing"

	"cocoon/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, c config.LoggingConfig) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	Initialize(zap.New(core), c)
	t.Cleanup(Reset)
	return logs
}

// TestAllCategoriesLog tests that every category writes when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	logs := observe(t, config.LoggingConfig{Level: "debug", DebugMode: true})
	logs.TakeAll() // drop boot messages

	for _, cat := range AllCategories {
		Get(cat).Info("hello")
	}

	entries := logs.TakeAll()
	require.Len(t, entries, len(AllCategories))
	for i, cat := range AllCategories {
		assert.Equal(t, string(cat), entries[i].LoggerName)
	}
}

func TestProductionModeIsSilent(t *testing.T) {
	logs := observe(t, config.LoggingConfig{Level: "info"})

	Get(CategoryCocoon).Info("should not appear")
	Get(CategoryBrood).Error("nor this")

	assert.False(t, IsDebugMode())
	assert.Zero(t, logs.Len())
}

func TestDisabledCategory(t *testing.T) {
	logs := observe(t, config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"cocoon": false},
	})
	logs.TakeAll()

	Get(CategoryCocoon).Info("muted")
	Get(CategoryBrood).Info("heard")

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, "heard", entries[0].Message)
	assert.False(t, IsCategoryEnabled(CategoryCocoon))
	assert.True(t, IsCategoryEnabled(CategoryBrood))
}

func TestGetCachesLoggers(t *testing.T) {
	observe(t, config.LoggingConfig{DebugMode: true})
	assert.Same(t, Get(CategoryCreature), Get(CategoryCreature))
}

func TestInitializeNilLogger(t *testing.T) {
	Initialize(nil, config.LoggingConfig{DebugMode: true})
	t.Cleanup(Reset)

	assert.NotPanics(t, func() { Get(CategoryBoot).Info("into the void") })
}
