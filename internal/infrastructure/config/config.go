package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileKey is the viper key holding an explicit config file path.
const FileKey = "config"

// Config holds all configuration for the application
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Review   ReviewConfig   `mapstructure:"review"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// StorageConfig selects where the notebook snapshot is kept.
// ReplaceUnreadable lets startup continue over a stored notebook that cannot be decoded.
type StorageConfig struct {
	Driver            string `mapstructure:"driver"`
	DSN               string `mapstructure:"dsn"`
	Key               string `mapstructure:"key"`
	LogSQL            bool   `mapstructure:"log_sql"`
	ReplaceUnreadable bool   `mapstructure:"replace_unreadable"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReviewConfig holds the day boundary used by scheduling and statistics
type ReviewConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// AutosaveConfig holds the periodic save interval of long running commands
type AutosaveConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// SeedConfig controls the example words written into an empty notebook
type SeedConfig struct {
	Examples bool `mapstructure:"examples"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	if file := viper.GetString(FileKey); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("vocnote")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := DataDir(); err == nil {
			viper.AddConfigPath(dir)
		}
	}

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.SetEnvPrefix("VOCNOTE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Storage defaults
	viper.SetDefault("storage.driver", "sqlite3")
	viper.SetDefault("storage.dsn", "")
	viper.SetDefault("storage.key", "vocnote_data")
	viper.SetDefault("storage.log_sql", false)
	viper.SetDefault("storage.replace_unreadable", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("review.timezone", "Local")
	viper.SetDefault("autosave.interval", 5*time.Minute)
	viper.SetDefault("seed.examples", true)
}

// DatabaseDriver returns the normalized database/sql driver name
func (c *Config) DatabaseDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch driver {
	case "", "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
}

// DatabaseURL returns the DSN, defaulting to a sqlite file in the data directory
func (c *Config) DatabaseURL() (string, error) {
	if dsn := strings.TrimSpace(c.Storage.DSN); dsn != "" {
		return dsn, nil
	}
	driver, err := c.DatabaseDriver()
	if err != nil {
		return "", err
	}
	if driver != "sqlite3" {
		return "", fmt.Errorf("storage.dsn is required for driver %q", driver)
	}
	path, err := DBPath()
	if err != nil {
		return "", err
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000", nil
}

// Location returns the time zone that decides calendar days
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Review.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load review.timezone %q: %w", name, err)
	}
	return loc, nil
}
