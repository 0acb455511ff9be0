// File: internal/config/config_test.go
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deckforge-cli/internal/config"
)

func TestValidate_AppliesDefaults(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "deckforge", cfg.Logger.ServiceName)
	assert.InDelta(t, 13.333, cfg.Slide.WidthInches, 1e-3)
	assert.InDelta(t, 7.5, cfg.Slide.HeightInches, 1e-3)
	assert.Equal(t, 30*time.Second, cfg.Geometry.NavigationTimeout)
}

func TestValidate_KeepsExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logger.Level = "debug"
	cfg.Slide.WidthInches = 10
	cfg.Slide.HeightInches = 5.63
	cfg.Geometry.NavigationTimeout = 5 * time.Second

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.InDelta(t, 10, cfg.Slide.WidthInches, 1e-3)
	assert.Equal(t, 5*time.Second, cfg.Geometry.NavigationTimeout)
}

func TestValidate_RejectsNegativeSlide(t *testing.T) {
	cfg := &config.Config{}
	cfg.Slide.WidthInches = -1
	assert.Error(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.True(t, cfg.Geometry.Enabled)
	assert.True(t, cfg.Geometry.Headless)
	assert.InDelta(t, 13.333, cfg.Slide.WidthInches, 1e-3)
}
