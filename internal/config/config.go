// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Subtitles SubtitlesConfig `toml:"subtitles"`
	Extractor ExtractorConfig `toml:"extractor"`
	Requests  RequestsConfig  `toml:"requests"`
	Resync    ResyncConfig    `toml:"resync"`
	Log       LogConfig       `toml:"log"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type SubtitlesConfig struct {
	// Language is the default track requested when a submission does
	// not name one.
	Language string `toml:"language"`
	// Suffixes adds or overrides filename tags per language,
	// e.g. pt = "pt-BR".
	Suffixes map[string]string `toml:"suffixes"`
}

type ExtractorConfig struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

type RequestsConfig struct {
	MaxSpecs int `toml:"max_specs"`
}

type ResyncConfig struct {
	Binary  string   `toml:"binary"`
	Timeout Duration `toml:"timeout"`
}

// Duration wraps time.Duration so TOML strings like "5m" decode.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Load reads, substitutes, parses, validates, and defaults the
// configuration file. Unresolved environment variables and validation
// failures come back aggregated in a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./data/kinograb.db"
	}
	if c.Subtitles.Language == "" {
		c.Subtitles.Language = "en"
	}
	if c.Extractor.FFmpeg == "" {
		c.Extractor.FFmpeg = "ffmpeg"
	}
	if c.Extractor.FFprobe == "" {
		c.Extractor.FFprobe = "ffprobe"
	}
	if c.Requests.MaxSpecs == 0 {
		c.Requests.MaxSpecs = 8
	}
	if c.Resync.Binary == "" {
		c.Resync.Binary = "ffsubsync"
	}
	if c.Resync.Timeout.Duration == 0 {
		c.Resync.Timeout.Duration = 5 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:[-?][^}]*)?\}`)

// substituteEnvVars expands environment references in the raw config
// text. ${VAR:-default} falls back when VAR is unset or empty;
// ${VAR:?msg} and plain ${VAR} report the variable as missing instead.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	expanded := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, modifier := groups[1], groups[2]

		if value := os.Getenv(name); value != "" {
			return value
		}
		if strings.HasPrefix(modifier, ":-") {
			return modifier[2:]
		}
		missing = append(missing, name)
		return match
	})
	return expanded, missing
}
