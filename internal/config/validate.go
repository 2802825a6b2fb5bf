package config

import (
	"errors"
	"fmt"
	"time"

	"hwcheck/internal/digest"
	"hwcheck/internal/faults"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateRoster,
		c.validateHashing,
		c.validateDeadline,
		c.validateReport,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", faults.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateRoster() error {
	if c.Roster.IDHeaderMarker == "" {
		return errors.New("roster.id_header_marker must be set")
	}
	if c.Roster.ScanRows <= 0 {
		return errors.New("roster.scan_rows must be positive")
	}
	return nil
}

func (c *Config) validateHashing() error {
	switch c.Hashing.Algorithm {
	case digest.AlgorithmSHA256, digest.AlgorithmMD5:
	default:
		return fmt.Errorf("hashing.algorithm must be %q or %q, got %q", digest.AlgorithmSHA256, digest.AlgorithmMD5, c.Hashing.Algorithm)
	}
	if c.Hashing.Workers < 0 {
		return errors.New("hashing.workers must not be negative")
	}
	if c.Hashing.ChunkSize < 0 {
		return errors.New("hashing.chunk_size must not be negative")
	}
	return nil
}

func (c *Config) validateDeadline() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	sample := time.Date(2024, time.March, 4, 23, 59, 0, 0, time.UTC)
	if _, err := time.Parse(c.Deadline.Layout, sample.Format(c.Deadline.Layout)); err != nil {
		return fmt.Errorf("deadline.layout %q is not a usable time layout: %w", c.Deadline.Layout, err)
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("report.format must be table, json, or yaml, got %q", c.Report.Format)
	}
	switch c.Report.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("report.color must be auto, always, or never, got %q", c.Report.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
