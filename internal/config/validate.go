package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Requests.MaxSpecs < 1 || c.Requests.MaxSpecs > 64 {
		errs = append(errs, fmt.Sprintf("requests.max_specs: must be between 1 and 64, got %d", c.Requests.MaxSpecs))
	}

	if c.Resync.Timeout.Duration < 0 {
		errs = append(errs, fmt.Sprintf("resync.timeout: must be positive, got %s", c.Resync.Timeout))
	}

	for lang, tag := range c.Subtitles.Suffixes {
		if lang == "" || tag == "" {
			errs = append(errs, "subtitles.suffixes: language and tag must be non-empty")
		}
	}

	return errs
}
