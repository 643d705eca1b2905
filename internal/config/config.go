// Package config loads cardstack settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"cardstack/internal/deck"
	"cardstack/internal/geometry"
	"cardstack/internal/stack"
	"cardstack/internal/trace"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvVisibleCount = "CARDSTACK_VISIBLE_COUNT"
	EnvSettleDelay  = "CARDSTACK_SETTLE_DELAY"
	EnvLogFile      = "CARDSTACK_LOG_FILE"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// MaxVisibleCount caps the visible count the host offers to the user.
const MaxVisibleCount = 10

// Config holds all cardstack configuration.
type Config struct {
	VisibleCount int             `yaml:"visible_count"`
	SettleDelay  time.Duration   `yaml:"settle_delay"`
	Container    ContainerConfig `yaml:"container"`
	Geometry     GeometryConfig  `yaml:"geometry"`
	Cards        []CardConfig    `yaml:"cards"`
	Trace        TraceConfig     `yaml:"trace"`
	Log          LogConfig       `yaml:"log"`
}

// ContainerConfig is the container size used when no host size is known,
// and the scale between terminal cells and points.
type ContainerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	PointsPerCol float64 `yaml:"points_per_col"`
	PointsPerRow float64 `yaml:"points_per_row"`
}

// GeometryConfig overrides the stacking constants.
type GeometryConfig struct {
	ScaleYStep         float64 `yaml:"scale_y_step"`
	ScaleXStep         float64 `yaml:"scale_x_step"`
	StackOffsetFactor  float64 `yaml:"stack_offset_factor"`
	RotationFactor     float64 `yaml:"rotation_factor"`
	MaxRotationDegrees float64 `yaml:"max_rotation_degrees"`
}

// CardConfig is one configured card. Color may be a palette name or any
// lipgloss color.
type CardConfig struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// TraceConfig configures OTLP export of swipe sessions.
type TraceConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	Insecure     bool   `yaml:"insecure"`
	MaxSessions  int    `yaml:"max_sessions"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	File  string `yaml:"file"`  // Empty discards logs; the TUI owns stdout
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	p := geometry.DefaultParams()
	return &Config{
		VisibleCount: stack.DefaultVisibleCount,
		SettleDelay:  stack.DefaultSettleDelay,
		Container: ContainerConfig{
			Width:        300,
			Height:       600,
			PointsPerCol: 8,
			PointsPerRow: 16,
		},
		Geometry: GeometryConfig{
			ScaleYStep:         p.ScaleYStep,
			ScaleXStep:         p.ScaleXStep,
			StackOffsetFactor:  p.StackOffsetFactor,
			RotationFactor:     p.RotationFactor,
			MaxRotationDegrees: p.MaxRotationDegrees,
		},
		Trace: TraceConfig{
			ServiceName: trace.DefaultServiceName,
			Insecure:    true,
			MaxSessions: 10,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvVisibleCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVisibleCount, err)
		}
		c.VisibleCount = n
	}
	if v := os.Getenv(EnvSettleDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSettleDelay, err)
		}
		c.SettleDelay = d
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		c.Trace.OTLPEndpoint = v
	}
	if v := os.Getenv(EnvServiceName); v != "" {
		c.Trace.ServiceName = v
	}
	return nil
}

// Validate normalizes clampable values and rejects the rest.
func (c *Config) Validate() error {
	c.VisibleCount = min(max(c.VisibleCount, 1), MaxVisibleCount)
	if c.SettleDelay <= 0 {
		c.SettleDelay = stack.DefaultSettleDelay
	}
	if c.Container.Width <= 0 || c.Container.Height <= 0 {
		return fmt.Errorf("container size must be positive, got %vx%v", c.Container.Width, c.Container.Height)
	}
	if c.Container.PointsPerCol <= 0 || c.Container.PointsPerRow <= 0 {
		return fmt.Errorf("points per cell must be positive, got %vx%v", c.Container.PointsPerCol, c.Container.PointsPerRow)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	for i, card := range c.Cards {
		if card.Label == "" {
			return fmt.Errorf("cards[%d]: label is required", i)
		}
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	return c.Log.ParseLevel()
}

// ParseLevel parses Level, defaulting to info.
func (l LogConfig) ParseLevel() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Params returns the configured stacking constants.
func (c *Config) Params() geometry.Params {
	return geometry.Params{
		ScaleYStep:         c.Geometry.ScaleYStep,
		ScaleXStep:         c.Geometry.ScaleXStep,
		StackOffsetFactor:  c.Geometry.StackOffsetFactor,
		RotationFactor:     c.Geometry.RotationFactor,
		MaxRotationDegrees: c.Geometry.MaxRotationDegrees,
	}
}

// ContainerSize returns the configured container size in points.
func (c *Config) ContainerSize() geometry.Size {
	return geometry.Size{Width: c.Container.Width, Height: c.Container.Height}
}

// Deck returns the configured cards, or the default palette deck when none
// are configured.
func (c *Config) Deck() []deck.Card {
	if len(c.Cards) == 0 {
		return deck.Default()
	}
	cards := make([]deck.Card, len(c.Cards))
	for i, cc := range c.Cards {
		color := cc.Color
		if color == "" {
			color = cc.Label
		}
		cards[i] = deck.New(cc.Label, deck.ColorFor(color))
	}
	return cards
}

// ExporterConfig returns the OTLP exporter settings.
func (c *Config) ExporterConfig() trace.ExporterConfig {
	return trace.ExporterConfig{
		Endpoint:    c.Trace.OTLPEndpoint,
		ServiceName: c.Trace.ServiceName,
		Insecure:    c.Trace.Insecure,
	}
}
