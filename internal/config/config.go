// Package config loads repoatlas settings from flags, environment and an
// optional project config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/phobologic/repoatlas/internal/model"
)

const (
	// EnvPrefix namespaces environment overrides: REPOATLAS_MAX_INLINE_TAGS.
	EnvPrefix = "REPOATLAS"
	// FileName is the config file looked up in the project root, without
	// extension.
	FileName = ".repoatlas"
)

// Keys shared by flags, env and the config file.
const (
	KeyMaxInlineTags = "max-inline-tags"
	KeySensitivity   = "sensitivity"
	KeyExclude       = "exclude"
	KeyLogLevel      = "log-level"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	model.Settings `mapstructure:",squash"`
	LogLevel       string `mapstructure:"log-level"`
}

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error in field %q: %s", e.Field, e.Message)
}

// New returns a viper instance with defaults, env binding and the project
// config file search path set up. Callers bind flags before Load.
func New(projectRoot string) *viper.Viper {
	v := viper.New()

	defaults := model.DefaultSettings()
	v.SetDefault(KeyMaxInlineTags, defaults.MaxInlineTags)
	v.SetDefault(KeySensitivity, string(defaults.Sensitivity))
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(projectRoot)

	return v
}

// Load reads the optional config file and decodes the merged configuration.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxInlineTags < 0 {
		return &Error{Field: KeyMaxInlineTags, Message: "must not be negative"}
	}
	if !c.Sensitivity.Valid() {
		return &Error{Field: KeySensitivity, Message: fmt.Sprintf("%q is not one of low, medium, high", c.Sensitivity)}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return &Error{Field: KeyLogLevel, Message: err.Error()}
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
