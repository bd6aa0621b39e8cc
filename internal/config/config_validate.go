// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package config

import (
	"fmt"

	"github.com/tomtom215/rewind/internal/validation"
)

// Validate checks that the configuration is complete and internally
// consistent. Any failure here is a configuration error: fatal, the
// pipeline does not run.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	// Cross-field checks the struct tags cannot express.
	if c.Pipeline.SessionGapMinutes <= 0 {
		return fmt.Errorf("session_gap_minutes must be positive, got %d", c.Pipeline.SessionGapMinutes)
	}
	if c.YouTube.BatchSize > 50 {
		return fmt.Errorf("api_batch_size %d exceeds the external service limit of 50", c.YouTube.BatchSize)
	}

	return c.validateLogging()
}

// validateLogging checks the logging section.
func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging format must be json or console, got %q", c.Logging.Format)
	}

	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}

	return nil
}
