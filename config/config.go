// Package config holds the immutable settings threaded through every
// validation and parse call of a grammar. There is no package-level state:
// callers build a Config once and pass it explicitly.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

const (
	// DefaultAutoCorrectLimit is the maximum edit distance under which
	// a mistyped flag is reported with a suggestion.
	DefaultAutoCorrectLimit = 2
)

// ErrConfig is returned when a configuration cannot be loaded.
var ErrConfig = errors.New("invalid configuration")

// Config specifies how tokens are matched against a grammar.
type Config struct {
	// AutoCorrectLimit is the edit distance under which a token is
	// considered a typo of a known flag name.
	AutoCorrectLimit int `env:"GRAMMAR_AUTOCORRECT_LIMIT,default=2"`

	// CaseSensitive controls whether flag and command names must
	// match with exact case.
	CaseSensitive bool `env:"GRAMMAR_CASE_SENSITIVE,default=true"`
}

// OptFunc sets values in a Config.
type OptFunc func(cfg *Config)

// Default returns the default configuration.
func Default() Config {
	return Config{
		AutoCorrectLimit: DefaultAutoCorrectLimit,
		CaseSensitive:    true,
	}
}

// New returns the default configuration with the given options applied.
func New(opts ...OptFunc) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// AutoCorrectLimit sets the maximum edit distance used for flag suggestions.
func AutoCorrectLimit(limit int) OptFunc {
	return func(cfg *Config) {
		if limit < 0 {
			limit = 0
		}
		cfg.AutoCorrectLimit = limit
	}
}

// CaseInsensitive makes flag and command names match regardless of case.
func CaseInsensitive() OptFunc { return func(cfg *Config) { cfg.CaseSensitive = false } }

// FromEnv loads a configuration from the process environment, falling back
// on defaults for unset variables:
//
//	GRAMMAR_AUTOCORRECT_LIMIT  (default 2)
//	GRAMMAR_CASE_SENSITIVE     (default true)
func FromEnv() (Config, error) {
	var cfg Config

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Default(), fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if cfg.AutoCorrectLimit < 0 {
		return Default(), fmt.Errorf("%w: negative auto-correct limit %d", ErrConfig, cfg.AutoCorrectLimit)
	}

	return cfg, nil
}

// Normalize returns the form of s used for comparisons:
// unchanged when case-sensitive, lowercased otherwise.
func (c Config) Normalize(s string) string {
	if c.CaseSensitive {
		return s
	}

	return strings.ToLower(s)
}

// Equal reports whether two names are equal under this configuration.
func (c Config) Equal(a, b string) bool {
	return c.Normalize(a) == c.Normalize(b)
}
