// Package config resolves simulation settings from defaults, an optional
// YAML file and FOCUSSIM_* environment variables, in that order.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a simulation run.
type Config struct {
	Environment domain.Environment
	Level       domain.Level
	DBPath      string
	Seed        int64
	LogUseCases bool

	Tick                 time.Duration
	PhoneNotifRepeat     time.Duration
	MonitorNotifRepeat   time.Duration
	MonitorDisplay       time.Duration
	PhonePopupMinSpacing time.Duration // zero derives from the notification interval
	PhoneTodoMinSpacing  time.Duration // zero derives from the notification interval
	IntervalScale        float64
	FocusTargets         map[domain.Environment]domain.Vec3
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	targets := make(map[domain.Environment]domain.Vec3, len(DefaultFocusTargets))
	for env, v := range DefaultFocusTargets {
		targets[env] = v
	}
	return Config{
		Environment:        domain.EnvDesk,
		Level:              domain.LevelMedium,
		Tick:               900 * time.Millisecond,
		PhoneNotifRepeat:   30 * time.Second,
		MonitorNotifRepeat: 12 * time.Second,
		MonitorDisplay:     2120 * time.Millisecond,
		IntervalScale:      1.0,
		FocusTargets:       targets,
	}
}

// LoadConfig reads FOCUSSIM_CONFIG (if set) and then environment
// variables, falling back to defaults for any unset values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv("FOCUSSIM_CONFIG"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays FOCUSSIM_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("FOCUSSIM_ENV"); v != "" {
		env, err := domain.ParseEnvironment(v)
		if err != nil {
			return fmt.Errorf("FOCUSSIM_ENV: %w", err)
		}
		c.Environment = env
	}
	if v := os.Getenv("FOCUSSIM_LEVEL"); v != "" {
		lvl, err := domain.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("FOCUSSIM_LEVEL: %w", err)
		}
		c.Level = lvl
	}
	if v := os.Getenv("FOCUSSIM_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FOCUSSIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := os.Getenv("FOCUSSIM_LOG_USECASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
	applyDurationEnv(&c.Tick, "FOCUSSIM_TICK_MS")
	applyDurationEnv(&c.PhoneNotifRepeat, "FOCUSSIM_PHONE_REPEAT_MS")
	applyDurationEnv(&c.MonitorNotifRepeat, "FOCUSSIM_MONITOR_REPEAT_MS")
	applyDurationEnv(&c.PhonePopupMinSpacing, "FOCUSSIM_PHONE_POPUP_MIN_MS")
	applyDurationEnv(&c.PhoneTodoMinSpacing, "FOCUSSIM_PHONE_TODO_MIN_MS")
	if v := os.Getenv("FOCUSSIM_INTERVAL_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.IntervalScale = f
		}
	}
	return nil
}

func applyDurationEnv(dst *time.Duration, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = time.Duration(n) * time.Millisecond
}

type fileConfig struct {
	Environment     string                 `yaml:"environment"`
	Level           *int                   `yaml:"level"`
	DBPath          string                 `yaml:"db_path"`
	Seed            *int64                 `yaml:"seed"`
	LogUseCases     *bool                  `yaml:"log_use_cases"`
	TickMs          int                    `yaml:"tick_ms"`
	PhoneRepeatMs   int                    `yaml:"phone_repeat_ms"`
	MonitorRepeatMs int                    `yaml:"monitor_repeat_ms"`
	PhonePopupMinMs int                    `yaml:"phone_popup_min_ms"`
	PhoneTodoMinMs  int                    `yaml:"phone_todo_min_ms"`
	IntervalScale   float64                `yaml:"interval_scale"`
	FocusTargets    map[string]domain.Vec3 `yaml:"focus_targets"`
}

// ApplyFile overlays a YAML config file.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return c.ApplyYAML(data)
}

// ApplyYAML overlays YAML-encoded settings. Zero values leave the current
// setting untouched.
func (c *Config) ApplyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if fc.Environment != "" {
		env, err := domain.ParseEnvironment(fc.Environment)
		if err != nil {
			return fmt.Errorf("config environment: %w", err)
		}
		c.Environment = env
	}
	if fc.Level != nil {
		if *fc.Level < 0 || *fc.Level > int(domain.LevelHigh) {
			return fmt.Errorf("config level: %w: %d", domain.ErrInvalidLevel, *fc.Level)
		}
		c.Level = domain.Level(*fc.Level)
	}
	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if fc.LogUseCases != nil {
		c.LogUseCases = *fc.LogUseCases
	}
	setMs(&c.Tick, fc.TickMs)
	setMs(&c.PhoneNotifRepeat, fc.PhoneRepeatMs)
	setMs(&c.MonitorNotifRepeat, fc.MonitorRepeatMs)
	setMs(&c.PhonePopupMinSpacing, fc.PhonePopupMinMs)
	setMs(&c.PhoneTodoMinSpacing, fc.PhoneTodoMinMs)
	if fc.IntervalScale > 0 {
		c.IntervalScale = fc.IntervalScale
	}
	for name, v := range fc.FocusTargets {
		env, err := domain.ParseEnvironment(name)
		if err != nil {
			return fmt.Errorf("config focus target: %w", err)
		}
		if c.FocusTargets == nil {
			c.FocusTargets = make(map[domain.Environment]domain.Vec3)
		}
		c.FocusTargets[env] = v
	}
	return nil
}

func setMs(dst *time.Duration, n int) {
	if n > 0 {
		*dst = time.Duration(n) * time.Millisecond
	}
}

// Intervals returns the stimulus timer periods for level in the
// configured environment, scaled by IntervalScale.
func (c Config) Intervals(level domain.Level) Intervals {
	iv := IntervalsFor(level, c.Environment)
	if level.Index() == 0 || c.IntervalScale <= 0 || c.IntervalScale == 1 {
		return iv
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(math.Round(float64(d) * c.IntervalScale))
	}
	return Intervals{Visual: scale(iv.Visual), Audio: scale(iv.Audio), Notification: scale(iv.Notification)}
}

// PhonePopupMin is the minimum spacing between phone popups. It defaults
// to the notification interval.
func (c Config) PhonePopupMin(iv Intervals) time.Duration {
	if c.PhonePopupMinSpacing > 0 {
		return c.PhonePopupMinSpacing
	}
	return iv.Notification
}

// PhoneTodoMin is the minimum spacing between notification-driven task
// injections: max(10s, 1.35 * notification interval) unless overridden.
func (c Config) PhoneTodoMin(iv Intervals) time.Duration {
	if c.PhoneTodoMinSpacing > 0 {
		return c.PhoneTodoMinSpacing
	}
	derived := time.Duration(math.Round(float64(iv.Notification.Milliseconds())*1.35)) * time.Millisecond
	return max(10*time.Second, derived)
}

// FocusTarget returns the canonical refocus target for env.
func (c Config) FocusTarget(env domain.Environment) domain.Vec3 {
	if v, ok := c.FocusTargets[env]; ok {
		return v
	}
	return DefaultFocusTargets[env]
}
