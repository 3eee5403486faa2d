package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Environment variable names.
const (
	EnvConfigDir = "OPUSCTL_CONFIG_DIR"
	EnvLogLevel  = "OPUSCTL_LOG_LEVEL"
	EnvListen    = "OPUSCTL_LISTEN"
	EnvProfile   = "OPUSCTL_PROFILE"
)

// Env holds the settings that may come from the environment. Empty fields
// leave the config file values alone.
type Env struct {
	ConfigDir string `env:"OPUSCTL_CONFIG_DIR"`
	LogLevel  string `env:"OPUSCTL_LOG_LEVEL"`
	Listen    string `env:"OPUSCTL_LISTEN"`
	Profile   string `env:"OPUSCTL_PROFILE"`
}

// LoadEnv loads .env files (default ".env" in the working directory) into
// the process environment without overriding variables already set, then
// reads Env. Missing .env files are ignored.
func LoadEnv(ctx context.Context, dotenv ...string) (*Env, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return ProcessEnv(ctx, nil)
}

// ProcessEnv reads Env through lookuper, or the process environment when
// lookuper is nil.
func ProcessEnv(ctx context.Context, lookuper envconfig.Lookuper) (*Env, error) {
	var e Env
	if lookuper == nil {
		if err := envconfig.Process(ctx, &e); err != nil {
			return nil, err
		}
		return &e, nil
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &e, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	return &e, nil
}

// ApplyEnv overrides config values with non-empty environment values.
func (c *Config) ApplyEnv(e *Env) {
	if e == nil {
		return
	}
	if e.LogLevel != "" {
		c.LogLevel = e.LogLevel
	}
	if e.Listen != "" {
		c.Listen = e.Listen
	}
	if e.Profile != "" {
		c.CurrentProfile = e.Profile
	}
}
