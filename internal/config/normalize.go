package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeRoster()
	c.normalizeSubmissions()
	c.normalizeHashing()
	c.normalizeDeadline()
	c.normalizeReport()
	return c.normalizeLogging()
}

func (c *Config) normalizeRoster() {
	c.Roster.IDHeaderMarker = strings.TrimSpace(c.Roster.IDHeaderMarker)
	if c.Roster.IDHeaderMarker == "" {
		c.Roster.IDHeaderMarker = defaultIDHeaderMarker
	}
	c.Roster.NameHeader = strings.TrimSpace(c.Roster.NameHeader)
	if c.Roster.NameHeader == "" {
		c.Roster.NameHeader = defaultNameHeader
	}
	if c.Roster.NamePlaceholder == "" {
		c.Roster.NamePlaceholder = defaultNamePlaceholder
	}
	c.Roster.Sheet = strings.TrimSpace(c.Roster.Sheet)
}

func (c *Config) normalizeSubmissions() {
	cleaned := make([]string, 0, len(c.Submissions.Extensions))
	seen := make(map[string]struct{}, len(c.Submissions.Extensions))
	for _, ext := range c.Submissions.Extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		cleaned = append(cleaned, ext)
	}
	c.Submissions.Extensions = cleaned
}

func (c *Config) normalizeHashing() {
	c.Hashing.Algorithm = strings.ToLower(strings.TrimSpace(c.Hashing.Algorithm))
	if c.Hashing.Algorithm == "" {
		c.Hashing.Algorithm = defaultHashAlgorithm
	}
	if c.Hashing.ChunkSize == 0 {
		c.Hashing.ChunkSize = defaultHashChunkSize
	}
}

func (c *Config) normalizeDeadline() {
	c.Deadline.Layout = strings.TrimSpace(c.Deadline.Layout)
	if c.Deadline.Layout == "" {
		c.Deadline.Layout = defaultDeadlineLayout
	}
	c.Deadline.Timezone = strings.TrimSpace(c.Deadline.Timezone)
	if c.Deadline.Timezone == "" {
		c.Deadline.Timezone = defaultDeadlineZone
	}
}

func (c *Config) normalizeReport() {
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if c.Report.Format == "" {
		c.Report.Format = defaultReportFormat
	}
	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
	if c.Report.Color == "" {
		c.Report.Color = defaultReportColor
	}
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv("HWCHECK_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
