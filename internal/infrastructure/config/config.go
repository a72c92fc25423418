// Package config loads service configuration from defaults, an optional
// YAML file, FAQBOT_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FAQBOT"

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Matching MatchingConfig `mapstructure:"matching"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Addr             string        `mapstructure:"addr"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	GracefulShutdown time.Duration `mapstructure:"graceful_shutdown"`
}

// DatasetConfig selects the corpus source.
type DatasetConfig struct {
	Driver   string        `mapstructure:"driver"` // file, sqlite3 or postgres
	Path     string        `mapstructure:"path"`
	DSN      string        `mapstructure:"dsn"`
	Table    string        `mapstructure:"table"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// MatchingConfig tunes the engine.
type MatchingConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// CacheConfig selects the answer cache.
type CacheConfig struct {
	Driver     string        `mapstructure:"driver"` // none, memory or redis
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.graceful_shutdown", 5*time.Second)

	v.SetDefault("dataset.driver", "file")
	v.SetDefault("dataset.path", "qa_dataset.json")
	v.SetDefault("dataset.dsn", "")
	v.SetDefault("dataset.table", "qa_pairs")
	v.SetDefault("dataset.watch", true)
	v.SetDefault("dataset.debounce", 250*time.Millisecond)

	v.SetDefault("matching.threshold", 0.2)

	v.SetDefault("cache.driver", "none")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.max_entries", 10000)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "faqbot:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// NewViper returns a viper instance with defaults and environment binding.
// If file is non-empty it is used as the config file; otherwise
// faqbot.yaml is looked up in the working directory.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("faqbot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	return v
}

// Load reads the config file if one exists and decodes the result.
// A missing default config file is not an error; an explicit one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown drivers and out-of-range values.
func (c *Config) Validate() error {
	switch c.Dataset.Driver {
	case "file":
		if c.Dataset.Path == "" {
			return errors.New("invalid configuration: dataset.path is required for the file driver")
		}
	case "sqlite3", "postgres":
		if c.Dataset.DSN == "" {
			return fmt.Errorf("invalid configuration: dataset.dsn is required for the %s driver", c.Dataset.Driver)
		}
	default:
		return fmt.Errorf("invalid configuration: unknown dataset.driver %q", c.Dataset.Driver)
	}

	if c.Matching.Threshold < 0 || c.Matching.Threshold >= 1 {
		return fmt.Errorf("invalid configuration: matching.threshold %v must be in [0,1)", c.Matching.Threshold)
	}

	switch c.Cache.Driver {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("invalid configuration: unknown cache.driver %q", c.Cache.Driver)
	}

	if c.Dataset.Debounce < 0 {
		return errors.New("invalid configuration: dataset.debounce must not be negative")
	}
	return nil
}
