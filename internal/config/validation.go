package config

import "fmt"

// Validate checks configuration values for consistency.
// Called by Load immediately after unmarshalling (fail-fast).
func (c *Config) Validate() error {
	if c.KBGlob == "" {
		return ErrMissingKBGlob
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model name is empty", ErrInvalidModelName)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: must be in [0, 2], got %g", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxTokens < 1 || c.MaxTokens > 65536 {
		return fmt.Errorf("%w: must be in [1, 65536], got %d", ErrInvalidMaxTokens, c.MaxTokens)
	}

	if c.DefaultYear < 2000 || c.DefaultYear > 2200 {
		return fmt.Errorf("%w: must be in [2000, 2200], got %d", ErrInvalidDefaultYear, c.DefaultYear)
	}

	if c.GenerateTimeout < 1 || c.GenerateTimeout > 300 {
		return fmt.Errorf("%w: must be in [1, 300] seconds, got %d", ErrInvalidTimeout, c.GenerateTimeout)
	}

	return nil
}

// Configured reports whether a generator credential is present.
func (c *Config) Configured() bool {
	return c.GeminiAPIKey != ""
}
