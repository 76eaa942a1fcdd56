package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SUHA_SHOW_HIDDEN.
const EnvPrefix = "SUHA"

// FlagKeys maps command-line flag names to config keys. Only flags present in
// this map and explicitly set on the command line take part in the merge.
var FlagKeys = map[string]string{
	"hidden":    "show_hidden",
	"icons":     "show_icons",
	"fps":       "fps",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Options selects where Load reads from.
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Flags, when non-nil, supplies overrides for the keys in FlagKeys.
	Flags *pflag.FlagSet
}

// DefaultConfigPaths returns the config file candidates in search order.
func DefaultConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(home, ".config")
	return []string{
		filepath.Join(base, "suha.toml"),
		filepath.Join(base, "suha", "config.toml"),
		filepath.Join(base, "suha.d", "config.toml"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("show_hidden", false)
	v.SetDefault("show_icons", false)
	v.SetDefault("fps", DefaultFPS)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
}

// Load merges defaults, the first config file found, SUHA_* environment
// variables and explicitly set flags, in increasing precedence.
// A missing config file is not an error unless opts.Path names it.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("cannot bind flag --%s: %w", name, err)
			}
		}
	}

	source, err := locate(opts.Path)
	if err != nil {
		return nil, err
	}
	if source != "" {
		v.SetConfigFile(source)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, source, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromString parses TOML content over the defaults. Env and flags are
// not consulted.
func LoadFromString(content string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if err := v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("cannot read config %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, candidate := range DefaultConfigPaths() {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("cannot read config %s: %w", candidate, err)
		}
	}
	return "", nil
}
