package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	bderror "github.com/msto63/boundary/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "BOUNDARY_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Guard    GuardConfig    `toml:"guard"`
	Reporter ReporterConfig `toml:"reporter"`
	Journal  JournalConfig  `toml:"journal"`
	Throttle ThrottleConfig `toml:"throttle"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	DataDir     string `toml:"data_dir"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogFile     string `toml:"log_file"`
}

// GuardConfig holds the fallback texts shown while a boundary is faulted
type GuardConfig struct {
	FallbackMessage string `toml:"fallback_message"`
	RetryLabel      string `toml:"retry_label"`
}

// ReporterConfig holds the remote fault sink settings
type ReporterConfig struct {
	Enabled     bool     `toml:"enabled"`
	Address     string   `toml:"address"`
	ServiceName string   `toml:"service_name"`
	BatchSize   int      `toml:"batch_size"`
	FlushPeriod Duration `toml:"flush_period"`
	DialTimeout Duration `toml:"dial_timeout"`
}

// JournalConfig holds the local SQLite fault journal settings
type JournalConfig struct {
	Enabled       bool   `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// ThrottleConfig suppresses repeated identical reports inside Window.
// A zero window disables throttling.
type ThrottleConfig struct {
	Window Duration `toml:"window"`
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, bderror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(bderror.CodeMissingConfig).
			WithDetail("path", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, bderror.Wrap(err, "failed to parse config").
			WithCode(bderror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from BOUNDARY_CONFIG or a default location.
// Without any config file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/boundary/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges that defaults cannot repair
func (c *Config) Validate() error {
	if c.Reporter.BatchSize < 0 {
		return bderror.New("reporter.batch_size must not be negative").
			WithCode(bderror.CodeInvalidConfig)
	}
	if c.Throttle.Window.Duration < 0 {
		return bderror.New("throttle.window must not be negative").
			WithCode(bderror.CodeInvalidConfig)
	}
	if c.Reporter.Enabled && c.Reporter.Address == "" {
		return bderror.New("reporter.address is required when the reporter is enabled").
			WithCode(bderror.CodeInvalidConfig)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "boundary"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	// Guard
	if c.Guard.FallbackMessage == "" {
		c.Guard.FallbackMessage = "Oops, there is an error!"
	}
	if c.Guard.RetryLabel == "" {
		c.Guard.RetryLabel = "Try again?"
	}

	// Reporter
	if c.Reporter.Address == "" {
		c.Reporter.Address = "localhost:9120"
	}
	if c.Reporter.ServiceName == "" {
		c.Reporter.ServiceName = c.General.Name
	}
	if c.Reporter.BatchSize == 0 {
		c.Reporter.BatchSize = 50
	}
	if c.Reporter.FlushPeriod.Duration == 0 {
		c.Reporter.FlushPeriod.Duration = 5 * time.Second
	}
	if c.Reporter.DialTimeout.Duration == 0 {
		c.Reporter.DialTimeout.Duration = 10 * time.Second
	}

	// Journal
	if c.Journal.Path == "" {
		c.Journal.Path = filepath.Join(c.General.DataDir, "faults.db")
	}
	if c.Journal.RetentionDays == 0 {
		c.Journal.RetentionDays = 30
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
}
