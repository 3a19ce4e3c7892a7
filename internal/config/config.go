package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Fetch configuration
	Fetch FetchConfig `mapstructure:"fetch"`

	// Cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Indexing configuration
	Index IndexConfig `mapstructure:"index"`

	// Report configuration
	Report ReportConfig `mapstructure:"report"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// FetchConfig holds network retrieval settings
type FetchConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RespectRobots     bool          `mapstructure:"respect_robots"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// CacheConfig holds the page cache settings
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	Refresh bool   `mapstructure:"refresh"`
}

// IndexConfig holds tokenizer settings
type IndexConfig struct {
	Extraction string `mapstructure:"extraction"` // "body" or "readable"
}

// ReportConfig holds report rendering settings
type ReportConfig struct {
	Top    int    `mapstructure:"top"`
	Format string `mapstructure:"format"` // "text", "json", "yaml", "markdown", "html"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"format":         "report.format",
	"extract":        "index.extraction",
	"cache-dir":      "cache.dir",
	"refresh":        "cache.refresh",
	"timeout":        "fetch.timeout",
	"user-agent":     "fetch.user_agent",
	"respect-robots": "fetch.respect_robots",
	"log-level":      "logging.level",
}

// Load loads configuration from defaults, an optional file, the environment
// and any flags the user set, in increasing order of precedence.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("pagewords")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.pagewords")
	}

	// Set defaults
	setDefaults(v)

	// Bind environment variables
	bindEnvVars(v)

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if flags != nil {
		if f := flags.Lookup("no-cache"); f != nil && f.Changed && f.Value.String() == "true" {
			config.Cache.Enabled = false
		}
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Fetch defaults
	v.SetDefault("fetch.user_agent", "pagewords/1.0")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.respect_robots", false)
	v.SetDefault("fetch.requests_per_second", 1.0)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", ".pagewords-cache")
	v.SetDefault("cache.refresh", false)

	// Index defaults
	v.SetDefault("index.extraction", "body")

	// Report defaults
	v.SetDefault("report.top", 10)
	v.SetDefault("report.format", "text")

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// bindEnvVars binds environment variables
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("PAGEWORDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch.requests_per_second must be positive")
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir must be set when the cache is enabled")
	}

	switch c.Index.Extraction {
	case "body", "readable":
	default:
		return fmt.Errorf("index.extraction must be body or readable, got %q", c.Index.Extraction)
	}

	switch c.Report.Format {
	case "text", "json", "yaml", "markdown", "html":
	default:
		return fmt.Errorf("unsupported report format: %s", c.Report.Format)
	}

	return nil
}
