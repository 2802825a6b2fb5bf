package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Roster contains settings for locating the ID and name columns of a roster.
type Roster struct {
	// IDHeaderMarker is matched against header text to find the ID column.
	IDHeaderMarker string `toml:"id_header_marker"`
	// NameHeader labels the name column when the roster header offers none.
	NameHeader string `toml:"name_header"`
	// NamePlaceholder is used when the ID column is the last column.
	NamePlaceholder string `toml:"name_placeholder"`
	// ScanRows is how many non-empty values per column are inspected when no
	// header matches.
	ScanRows int `toml:"scan_rows"`
	// Sheet selects the worksheet of an xlsx roster. Empty means the first.
	Sheet string `toml:"sheet"`
}

// Submissions contains filters applied to discovered or uploaded files.
type Submissions struct {
	Extensions    []string `toml:"extensions"`
	IncludeHidden bool     `toml:"include_hidden"`
}

// Hashing contains content fingerprint settings.
type Hashing struct {
	Algorithm string `toml:"algorithm"`
	Workers   int    `toml:"workers"`
	ChunkSize int    `toml:"chunk_size"`
}

// Deadline contains settings for parsing the --deadline flag.
type Deadline struct {
	Layout   string `toml:"layout"`
	Timezone string `toml:"timezone"`
}

// Report contains output settings.
type Report struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for hwcheck.
type Config struct {
	Roster      Roster      `toml:"roster"`
	Submissions Submissions `toml:"submissions"`
	Hashing     Hashing     `toml:"hashing"`
	Deadline    Deadline    `toml:"deadline"`
	Report      Report      `toml:"report"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/hwcheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("hwcheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory when file logging is enabled.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Logging.Dir, err)
	}
	return nil
}

// Location returns the time zone used to interpret deadlines.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Deadline.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("deadline.timezone: %w", err)
	}
	return loc, nil
}

// ParseDeadline interprets value with the configured layout and time zone.
// RFC 3339 values are accepted as well.
func (c *Config) ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("deadline is empty")
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	ts, err := time.ParseInLocation(c.Deadline.Layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline %q (layout %q): %w", value, c.Deadline.Layout, err)
	}
	return ts, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
