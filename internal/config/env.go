package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// DefaultMaxLogFiles is the log rotation limit used when nothing overrides it
const DefaultMaxLogFiles = 1000

// Env holds the POMAR_* environment variables
type Env struct {
	Debug       bool   `env:"POMAR_DEBUG"`
	DebugFile   string `env:"POMAR_DEBUG_FILE"`
	Home        string `env:"POMAR_HOME"`
	MaxLogFiles int    `env:"POMAR_MAX_LOG_FILES" envDefault:"1000"`
	Sound       string `env:"POMAR_SOUND"`
	User        string `env:"POMAR_USER"`
}

// ParseEnv loads Env from the process environment
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.Home != "" {
		e.Home = ExpandPath(e.Home)
	}
	return e, nil
}

// SoundEnabled returns POMAR_SOUND as a bool, or fallback when it is unset or unparsable
func (e Env) SoundEnabled(fallback bool) bool {
	if e.Sound == "" {
		return fallback
	}
	enabled, err := strconv.ParseBool(e.Sound)
	if err != nil {
		return fallback
	}
	return enabled
}
