// File: internal/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config holds the entire application configuration. It is populated by viper
// from the config file, DECKFORGE_* environment variables and CLI flags.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Slide    SlideConfig    `mapstructure:"slide" yaml:"slide"`
	Geometry GeometryConfig `mapstructure:"geometry" yaml:"geometry"`
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// SlideConfig sets the output slide dimensions in inches.
type SlideConfig struct {
	WidthInches  float64 `mapstructure:"width_inches" yaml:"width_inches"`
	HeightInches float64 `mapstructure:"height_inches" yaml:"height_inches"`
}

// GeometryConfig tunes the headless-browser geometry source.
type GeometryConfig struct {
	// Enabled gates the accurate geometry path. When false every run uses
	// the fallback layout simulator.
	Enabled           bool          `mapstructure:"enabled" yaml:"enabled"`
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	// AcquirePerSecond rate-limits renderer acquisition across concurrent
	// conversions. Zero means unlimited.
	AcquirePerSecond float64  `mapstructure:"acquire_per_second" yaml:"acquire_per_second"`
	Args             []string `mapstructure:"args" yaml:"args"`
}

// LayoutConfig exposes the empirically tuned classification and filtering
// tolerances. Zero values fall back to the built-in defaults.
type LayoutConfig struct {
	TriangleMaxSizeInches   float64 `mapstructure:"triangle_max_size_inches" yaml:"triangle_max_size_inches"`
	EllipseSquarenessInches float64 `mapstructure:"ellipse_squareness_inches" yaml:"ellipse_squareness_inches"`
	DecorativeRadiusPx      float64 `mapstructure:"decorative_radius_px" yaml:"decorative_radius_px"`
	OversizeRatio           float64 `mapstructure:"oversize_ratio" yaml:"oversize_ratio"`
	ExtremeOversizeRatio    float64 `mapstructure:"extreme_oversize_ratio" yaml:"extreme_oversize_ratio"`
}

// Validate applies defaults and rejects nonsensical values.
func (c *Config) Validate() error {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "console"
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = "deckforge"
	}
	if c.Slide.WidthInches == 0 {
		c.Slide.WidthInches = 13.333
	}
	if c.Slide.HeightInches == 0 {
		c.Slide.HeightInches = 7.5
	}
	if c.Slide.WidthInches < 0 || c.Slide.HeightInches < 0 {
		return fmt.Errorf("slide dimensions must be positive: %gx%g", c.Slide.WidthInches, c.Slide.HeightInches)
	}
	if c.Geometry.NavigationTimeout == 0 {
		c.Geometry.NavigationTimeout = 30 * time.Second
	}
	return nil
}

// Default returns a config with all defaults applied and the geometry source
// enabled in headless mode.
func Default() *Config {
	cfg := &Config{
		Geometry: GeometryConfig{Enabled: true, Headless: true},
	}
	// Validate cannot fail on the zero value.
	_ = cfg.Validate()
	return cfg
}
