// Package config loads disha's configuration from a YAML file, environment
// variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Assessment AssessmentConfig `yaml:"assessment"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres
	DSN    string `yaml:"dsn"`    // file path for sqlite, URL for postgres
}

// HTTPConfig configures `disha serve`.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	CORSOrigins    []string `yaml:"cors_origins"`
	RequestTimeout string   `yaml:"request_timeout"`
}

// AuthConfig configures bearer-token verification. An empty JWTSecret
// disables verification and every request acts as the default user.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// AssessmentConfig configures the question bank and sessions.
type AssessmentConfig struct {
	BankFile    string `yaml:"bank_file"` // empty = built-in bank
	DefaultUser string `yaml:"default_user"`
	SessionTTL  string `yaml:"session_ttl"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			CORSOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
			RequestTimeout: "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Assessment: AssessmentConfig{
			DefaultUser: "local",
			SessionTTL:  "2h",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/disha/config.yaml, falling back to
// ~/.config/disha/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "disha", "config.yaml")
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.Database.Driver = envOr("DISHA_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = envOr("DISHA_DB_DSN", envOr("DISHA_DB", c.Database.DSN))

	c.HTTP.Addr = envOr("DISHA_HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.CORSOrigins = csvOr("DISHA_CORS_ORIGINS", c.HTTP.CORSOrigins)

	c.Auth.JWTSecret = envOr("DISHA_JWT_SECRET", c.Auth.JWTSecret)

	c.Log.Level = envOr("DISHA_LOG_LEVEL", c.Log.Level)
	c.Log.File = envOr("DISHA_LOG_FILE", c.Log.File)

	c.Assessment.BankFile = envOr("DISHA_BANK", c.Assessment.BankFile)
	c.Assessment.DefaultUser = envOr("DISHA_USER", c.Assessment.DefaultUser)
}

var (
	validDrivers = []string{"sqlite", "sqlite3", "postgres", "postgresql", "pgx"}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
)

// Validate checks enumerated values and durations.
func (c *Config) Validate() error {
	var problems []string
	if !oneOf(c.Database.Driver, validDrivers) {
		problems = append(problems, fmt.Sprintf("database.driver %q (valid: %v)", c.Database.Driver, validDrivers))
	}
	if !oneOf(c.Log.Level, validLevels) {
		problems = append(problems, fmt.Sprintf("log.level %q (valid: %v)", c.Log.Level, validLevels))
	}
	if !oneOf(c.Log.Format, validFormats) {
		problems = append(problems, fmt.Sprintf("log.format %q (valid: %v)", c.Log.Format, validFormats))
	}
	if _, err := time.ParseDuration(c.HTTP.RequestTimeout); err != nil {
		problems = append(problems, fmt.Sprintf("http.request_timeout %q", c.HTTP.RequestTimeout))
	}
	if _, err := time.ParseDuration(c.Assessment.SessionTTL); err != nil {
		problems = append(problems, fmt.Sprintf("assessment.session_ttl %q", c.Assessment.SessionTTL))
	}
	if strings.TrimSpace(c.Assessment.DefaultUser) == "" {
		problems = append(problems, "assessment.default_user is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// GetRequestTimeout returns the HTTP request timeout as a duration.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetSessionTTL returns the idle session TTL as a duration.
func (c *Config) GetSessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Assessment.SessionTTL)
	if err != nil {
		return 2 * time.Hour
	}
	return d
}

func oneOf(v string, valid []string) bool {
	v = strings.ToLower(v)
	for _, s := range valid {
		if v == s {
			return true
		}
	}
	return false
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
