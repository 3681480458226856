// Package config provides configuration management for pomo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/xvierd/pomo/internal/domain"
)

// ErrUnknownKey is returned by Set for keys that are not part of the file.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds all configuration for the pomo application.
type Config struct {
	Timer   TimerConfig   `mapstructure:"timer"`
	Logging LoggingConfig `mapstructure:"logging"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

// TimerConfig holds the session clock settings.
type TimerConfig struct {
	WorkMinutes             int    `mapstructure:"work_minutes"`
	ShortBreakMinutes       int    `mapstructure:"short_break_minutes"`
	LongBreakMinutes        int    `mapstructure:"long_break_minutes"`
	SessionsBeforeLongBreak int    `mapstructure:"sessions_before_long_break"`
	AutoAdvance             bool   `mapstructure:"auto_advance"`
	Preset                  string `mapstructure:"preset"`
}

// LoggingConfig holds debug log settings.
type LoggingConfig struct {
	Debug bool   `mapstructure:"debug"`
	File  string `mapstructure:"file"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork           string `mapstructure:"color_work"`
	ColorBreak          string `mapstructure:"color_break"`
	ColorPaused         string `mapstructure:"color_paused"`
	ColorTitle          string `mapstructure:"color_title"`
	ColorTask           string `mapstructure:"color_task"`
	ColorHelp           string `mapstructure:"color_help"`
	WorkGradientStart   string `mapstructure:"work_gradient_start"`
	WorkGradientEnd     string `mapstructure:"work_gradient_end"`
	BreakGradientStart  string `mapstructure:"break_gradient_start"`
	BreakGradientEnd    string `mapstructure:"break_gradient_end"`
	PausedGradientStart string `mapstructure:"paused_gradient_start"`
	PausedGradientEnd   string `mapstructure:"paused_gradient_end"`
	IconApp             string `mapstructure:"icon_app"`
	IconTask            string `mapstructure:"icon_task"`
	IconGit             string `mapstructure:"icon_git"`
	IconPaused          string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:           "#7C6FE0",
		ColorBreak:          "#4ECDC4",
		ColorPaused:         "#6B7280",
		ColorTitle:          "#6B7280",
		ColorTask:           "#A0AEC0",
		ColorHelp:           "#95A5A6",
		WorkGradientStart:   "#7C6FE0",
		WorkGradientEnd:     "#A78BFA",
		BreakGradientStart:  "#4ECDC4",
		BreakGradientEnd:    "#2ECC71",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",
		IconApp:             "🍅",
		IconTask:            "📋",
		IconGit:             "🌿",
		IconPaused:          "⏸",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	session := domain.DefaultSessionConfig()
	return &Config{
		Timer: TimerConfig{
			WorkMinutes:             session.WorkMinutes,
			ShortBreakMinutes:       session.ShortBreakMinutes,
			LongBreakMinutes:        session.LongBreakMinutes,
			SessionsBeforeLongBreak: session.SessionsBeforeLongBreak,
		},
		Theme: DefaultThemeConfig(),
	}
}

// SessionConfig returns the clock configuration, clamped. A named preset
// takes precedence over the individual minute values.
func (c *Config) SessionConfig() (domain.SessionConfig, error) {
	if c.Timer.Preset != "" {
		preset, err := domain.ValidatePreset(c.Timer.Preset)
		if err != nil {
			return domain.SessionConfig{}, err
		}
		return preset.Config(), nil
	}
	return domain.SessionConfig{
		WorkMinutes:             c.Timer.WorkMinutes,
		ShortBreakMinutes:       c.Timer.ShortBreakMinutes,
		LongBreakMinutes:        c.Timer.LongBreakMinutes,
		SessionsBeforeLongBreak: c.Timer.SessionsBeforeLongBreak,
	}.Clamp(), nil
}

// SetSessionConfig stores a clock configuration, clearing any preset.
func (c *Config) SetSessionConfig(session domain.SessionConfig) {
	session = session.Clamp()
	c.Timer.WorkMinutes = session.WorkMinutes
	c.Timer.ShortBreakMinutes = session.ShortBreakMinutes
	c.Timer.LongBreakMinutes = session.LongBreakMinutes
	c.Timer.SessionsBeforeLongBreak = session.SessionsBeforeLongBreak
	c.Timer.Preset = ""
}

// Load reads the config file at path, creating it with defaults if missing.
// An empty path means GetConfigPath.
func Load(path string) (*Config, error) {
	v, path, err := open(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(DefaultConfig(), path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to path. An empty path means GetConfigPath.
func Save(cfg *Config, path string) error {
	v, _, err := open(path)
	if err != nil {
		return err
	}

	for key, value := range values(cfg) {
		v.Set(key, value)
	}

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Set updates a single key in the file at path. Timer values are parsed as
// integers or booleans and the preset name is validated before writing.
func Set(path, key, value string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	current := values(cfg)
	old, ok := current[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var parsed any
	switch old.(type) {
	case int:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		parsed = n
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		parsed = b
	default:
		if key == "timer.preset" && value != "" {
			if _, err := domain.ValidatePreset(value); err != nil {
				return nil, err
			}
		}
		parsed = value
	}

	v, _, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, parsed)
	if err := v.WriteConfig(); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}

	return Load(path)
}

// Keys lists every settable key in file order.
func Keys() []string {
	return keyOrder
}

// Describe returns "key = value" lines in file order.
func Describe(cfg *Config) []string {
	current := values(cfg)
	lines := make([]string, 0, len(keyOrder))
	for _, key := range keyOrder {
		lines = append(lines, fmt.Sprintf("%s = %v", key, current[key]))
	}
	return lines
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

func open(path string) (*viper.Viper, string, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)
	return v, path, nil
}

var keyOrder = []string{
	"timer.work_minutes",
	"timer.short_break_minutes",
	"timer.long_break_minutes",
	"timer.sessions_before_long_break",
	"timer.auto_advance",
	"timer.preset",
	"logging.debug",
	"logging.file",
	"theme.color_work",
	"theme.color_break",
	"theme.color_paused",
	"theme.color_title",
	"theme.color_task",
	"theme.color_help",
	"theme.work_gradient_start",
	"theme.work_gradient_end",
	"theme.break_gradient_start",
	"theme.break_gradient_end",
	"theme.paused_gradient_start",
	"theme.paused_gradient_end",
	"theme.icon_app",
	"theme.icon_task",
	"theme.icon_git",
	"theme.icon_paused",
}

func values(cfg *Config) map[string]any {
	return map[string]any{
		"timer.work_minutes":               cfg.Timer.WorkMinutes,
		"timer.short_break_minutes":        cfg.Timer.ShortBreakMinutes,
		"timer.long_break_minutes":         cfg.Timer.LongBreakMinutes,
		"timer.sessions_before_long_break": cfg.Timer.SessionsBeforeLongBreak,
		"timer.auto_advance":               cfg.Timer.AutoAdvance,
		"timer.preset":                     cfg.Timer.Preset,
		"logging.debug":                    cfg.Logging.Debug,
		"logging.file":                     cfg.Logging.File,
		"theme.color_work":                 cfg.Theme.ColorWork,
		"theme.color_break":                cfg.Theme.ColorBreak,
		"theme.color_paused":               cfg.Theme.ColorPaused,
		"theme.color_title":                cfg.Theme.ColorTitle,
		"theme.color_task":                 cfg.Theme.ColorTask,
		"theme.color_help":                 cfg.Theme.ColorHelp,
		"theme.work_gradient_start":        cfg.Theme.WorkGradientStart,
		"theme.work_gradient_end":          cfg.Theme.WorkGradientEnd,
		"theme.break_gradient_start":       cfg.Theme.BreakGradientStart,
		"theme.break_gradient_end":         cfg.Theme.BreakGradientEnd,
		"theme.paused_gradient_start":      cfg.Theme.PausedGradientStart,
		"theme.paused_gradient_end":        cfg.Theme.PausedGradientEnd,
		"theme.icon_app":                   cfg.Theme.IconApp,
		"theme.icon_task":                  cfg.Theme.IconTask,
		"theme.icon_git":                   cfg.Theme.IconGit,
		"theme.icon_paused":                cfg.Theme.IconPaused,
	}
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	for key, value := range values(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}
