package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kk-code-lab/suha/internal/fs"
	"github.com/kk-code-lab/suha/internal/logging"
)

// ErrInvalid wraps every config parse or validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultFPS = 30
	MinFPS     = 1
	MaxFPS     = 240
)

// Config is the resolved configuration after defaults, file, env and flags
// have been merged.
type Config struct {
	ShowHidden bool      `mapstructure:"show_hidden"`
	ShowIcons  bool      `mapstructure:"show_icons"`
	FPS        int       `mapstructure:"fps"`
	Log        LogConfig `mapstructure:"log"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps must be between %d and %d, got %d", ErrInvalid, MinFPS, MaxFPS, c.FPS)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalid, logging.FormatText, logging.FormatJSON, c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits cannot be negative", ErrInvalid)
	}
	return nil
}

// DisplayOptions returns the listing options the directory cache uses.
func (c *Config) DisplayOptions() fs.DisplayOptions {
	return fs.DisplayOptions{
		ShowHidden: c.ShowHidden,
		ShowIcons:  c.ShowIcons,
	}
}

// LogOptions returns the options for logging.New.
func (c *Config) LogOptions() logging.Options {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.Options{
		File:       c.Log.File,
		Level:      level,
		Format:     strings.ToLower(c.Log.Format),
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
