package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the task list application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir"`             // TL_DB_DIR
	Filename       string        `yaml:"filename"`        // TL_DB_FILENAME
	Driver         string        `yaml:"driver"`          // TL_DB_DRIVER
	QueryTimeout   time.Duration `yaml:"query_timeout"`   // TL_DB_QUERY_TIMEOUT
	WriteTimeout   time.Duration `yaml:"write_timeout"`   // TL_DB_WRITE_TIMEOUT
	DirPermissions uint32        `yaml:"dir_permissions"` // TL_DB_DIR_PERMISSIONS
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength int `yaml:"title_max_length"` // TL_VALIDATION_TITLE_MAX
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Title      string `yaml:"title"`       // TL_DISPLAY_TITLE
	ListFormat string `yaml:"list_format"` // TL_LIST_FORMAT
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout"` // TL_APP_TIMEOUT
	Verbose bool          `yaml:"verbose"` // TL_APP_VERBOSE
}

// List formats understood by the list command
const (
	ListFormatPlain    = "plain"
	ListFormatNumbered = "numbered"
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tl")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tasks.db",
			Driver:         "sqlite",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			TitleMaxLength: 255,
		},
		Display: DisplayConfig{
			Title:      "Task List",
			ListFormat: ListFormatPlain,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file.
// The in-memory filename is passed through untouched.
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if driver := os.Getenv("TL_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if timeout := os.Getenv("TL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TL_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("TL_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}

	// Display configuration
	if title := os.Getenv("TL_DISPLAY_TITLE"); title != "" {
		c.Display.Title = title
	}
	if format := os.Getenv("TL_LIST_FORMAT"); format != "" {
		c.Display.ListFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "sqlite3" {
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or sqlite3"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.Title == "" {
		return &ConfigError{Field: "display.title", Message: "display title cannot be empty"}
	}
	if c.Display.ListFormat != ListFormatPlain && c.Display.ListFormat != ListFormatNumbered {
		return &ConfigError{Field: "display.list_format", Message: "list format must be plain or numbered"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
