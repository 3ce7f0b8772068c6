package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"picoclock/clock"
	"picoclock/hal"
	"picoclock/internal/logger"
)

// Config holds the host runner settings. Every field has a usable default,
// so an empty file (or no file) is valid.
type Config struct {
	// Start is the initial clock time, "HH:MM:SS" or "now".
	Start string `yaml:"start"`
	// TwelveHour starts the digital readout in 12-hour mode.
	TwelveHour bool `yaml:"twelve_hour"`
	// Headless runs without a window.
	Headless bool `yaml:"headless"`
	// Hz is the headless loop rate.
	Hz int `yaml:"hz"`
	// Ticks stops the headless loop after that many iterations (0 = forever).
	Ticks uint64 `yaml:"ticks"`
	// WindowScale is the integer zoom of the preview window.
	WindowScale int `yaml:"window_scale"`
	// Backlight is the initial backlight level in percent.
	Backlight *uint8 `yaml:"backlight"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// DebugAddr enables the debug HTTP server when set.
	DebugAddr string `yaml:"debug_addr"`
	// Script presses buttons at fixed offsets from start.
	Script []ScriptEntry `yaml:"script"`
}

// ScriptEntry holds Buttons down from At for Hold.
type ScriptEntry struct {
	At      time.Duration `yaml:"at"`
	Hold    time.Duration `yaml:"hold"`
	Buttons []string      `yaml:"buttons"`
}

const (
	// DefaultStart is the clock time used when none is configured.
	DefaultStart = "12:00:00"
	// StartNow takes the start time from the host's wall clock.
	StartNow = "now"

	DefaultHz          = 60
	DefaultWindowScale = 2
	DefaultBacklight   = 75
	DefaultLogLevel    = "info"
	// DefaultHold is used for script entries without a hold time.
	DefaultHold = 100 * time.Millisecond
)

var (
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrInvalidStart is returned for a start time that is neither HH:MM:SS nor "now".
	ErrInvalidStart = errors.New("start must be HH:MM:SS or now")
	// ErrInvalidButton is returned for an unknown button name in the script.
	ErrInvalidButton = errors.New("unknown button")
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := new(Config)
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from path and validates it. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fills in defaults and checks every field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Start == "" {
		cfg.Start = DefaultStart
	}

	if _, err := cfg.StartSeconds(time.Time{}); err != nil {
		return err
	}

	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}

	if cfg.Hz > 1000 {
		return fmt.Errorf("hz %d: must be at most 1000", cfg.Hz)
	}

	if cfg.WindowScale <= 0 {
		cfg.WindowScale = DefaultWindowScale
	}

	if cfg.Backlight == nil {
		level := uint8(DefaultBacklight)
		cfg.Backlight = &level
	}

	if *cfg.Backlight > 100 {
		return fmt.Errorf("backlight %d: must be at most 100", *cfg.Backlight)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.DebugAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.DebugAddr); err != nil {
			return fmt.Errorf("invalid debug address: %w", err)
		}
	}

	for i := range cfg.Script {
		e := &cfg.Script[i]
		if e.At < 0 {
			return fmt.Errorf("script[%d]: negative offset %s", i, e.At)
		}

		if e.Hold <= 0 {
			e.Hold = DefaultHold
		}

		if _, err := parseButtons(e.Buttons); err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
	}

	return nil
}

// StartSeconds converts Start to seconds since midnight. "now" reads the
// wall-clock time of now.
func (c *Config) StartSeconds(now time.Time) (int, error) {
	switch strings.ToLower(strings.TrimSpace(c.Start)) {
	case "":
		return clock.Noon, nil
	case StartNow:
		return now.Hour()*clock.SecondsPerHour + now.Minute()*clock.SecondsPerMinute + now.Second(), nil
	}

	s, ok := clock.Parse(strings.TrimSpace(c.Start))
	if !ok {
		return 0, fmt.Errorf("start %q: %w", c.Start, ErrInvalidStart)
	}

	return s, nil
}

// ScriptSteps converts the script to the host HAL's button script.
func (c *Config) ScriptSteps() ([]hal.ScriptStep, error) {
	steps := make([]hal.ScriptStep, 0, len(c.Script))
	for i, e := range c.Script {
		ids, err := parseButtons(e.Buttons)
		if err != nil {
			return nil, fmt.Errorf("script[%d]: %w", i, err)
		}

		hold := e.Hold
		if hold <= 0 {
			hold = DefaultHold
		}

		steps = append(steps, hal.ScriptStep{At: e.At, Hold: hold, Buttons: ids})
	}

	return steps, nil
}

func parseButtons(names []string) ([]hal.ButtonID, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no buttons: %w", ErrInvalidButton)
	}

	ids := make([]hal.ButtonID, 0, len(names))
	for _, name := range names {
		id, ok := buttonID(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrInvalidButton)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func buttonID(name string) (hal.ButtonID, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for id := hal.ButtonID(0); id < hal.ButtonCount; id++ {
		if id.String() == name {
			return id, true
		}
	}

	return 0, false
}
