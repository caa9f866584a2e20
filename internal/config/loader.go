package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the optional configuration file looked up in the database directory
const ConfigFileName = "config.yaml"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithFile sets an explicit configuration file path, taking precedence over TL_CONFIG
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML configuration file, if one is found
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 2: Load from the configuration file
	path, explicit := l.resolveFilePath()
	if path != "" {
		if err := l.config.LoadFromFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if err := config.ApplyOverrides(overrides); err != nil {
		return nil, err
	}

	return config, nil
}

// resolveFilePath returns the configuration file to read and whether it was
// requested explicitly. An explicit file must exist.
func (l *Loader) resolveFilePath() (string, bool) {
	if l.filePath != "" {
		return l.filePath, true
	}
	if path := os.Getenv("TL_CONFIG"); path != "" {
		return path, true
	}

	dir := l.config.Database.Dir
	if envDir := os.Getenv("TL_DB_DIR"); envDir != "" {
		dir = envDir
	}
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, ConfigFileName), false
}

// LoadFromFile overlays values from a YAML file onto the configuration.
// Keys missing from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.LoadFromReader(bytes.NewReader(data))
}

// LoadFromReader overlays values from YAML read from r onto the configuration
func (c *Config) LoadFromReader(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ConfigError{Field: "file", Message: fmt.Sprintf("invalid configuration file: %v", err)}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBDriver         *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Validation overrides
	TitleMaxLength *int

	// Display overrides
	DisplayTitle *string
	ListFormat   *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides applies command line overrides and re-validates the configuration
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) error {
	if overrides == nil {
		return nil
	}

	// Database overrides
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBDriver != nil {
		c.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBQueryTimeout != nil {
		c.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		c.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		c.Database.DirPermissions = *overrides.DBDirPermissions
	}

	// Validation overrides
	if overrides.TitleMaxLength != nil {
		c.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}

	// Display overrides
	if overrides.DisplayTitle != nil {
		c.Display.Title = *overrides.DisplayTitle
	}
	if overrides.ListFormat != nil {
		c.Display.ListFormat = *overrides.ListFormat
	}

	// Application overrides
	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}

	return c.Validate()
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
