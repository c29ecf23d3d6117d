// Package config resolves settings from flags, environment, an optional
// .env file and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. KEYMACRO_STORE.
const EnvPrefix = "KEYMACRO"

// Keys shared by flags, env and the config file.
const (
	KeyStore     = "store"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyFormat    = "format"
)

// Config is the resolved configuration.
type Config struct {
	Store     string
	LogLevel  string
	LogFormat string
	Format    string
}

// DefaultStore returns <user config dir>/keymacro, or ./keymacro when the
// user config dir is unknown.
func DefaultStore() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keymacro"
	}
	return filepath.Join(dir, "keymacro")
}

// Load builds a Config. flags are the command's flags; unset flags fall
// back to KEYMACRO_* variables (a .env file in the working directory is
// read first), then to config.yaml in the default store directory, then to
// defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyStore, DefaultStore())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyFormat, "yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyStore, KeyLogLevel, KeyLogFormat, KeyFormat} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultStore())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Store:     v.GetString(KeyStore),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		Format:    v.GetString(KeyFormat),
	}
	if cfg.Format != "yaml" && cfg.Format != "json" {
		return nil, fmt.Errorf("invalid format %q (expected yaml or json)", cfg.Format)
	}
	return cfg, nil
}
