// Package config loads typeshapes settings from defaults, an optional YAML
// file, TYPESHAPES_* environment variables and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TYPESHAPES_LOG_LEVEL.
const EnvPrefix = "TYPESHAPES"

// Config is the complete typeshapes configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Analyze AnalyzeConfig `mapstructure:"analyze"`
	Output  OutputConfig  `mapstructure:"output"`
	Serve   ServeConfig   `mapstructure:"serve"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

type AnalyzeConfig struct {
	Filter          string `mapstructure:"filter"`
	IncludeInternal bool   `mapstructure:"include_internal"`
	Workers         int    `mapstructure:"workers"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

type ServeConfig struct {
	Port int `mapstructure:"port"`
}

type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "json")

	v.SetDefault("analyze.filter", "")
	v.SetDefault("analyze.include_internal", false)
	v.SetDefault("analyze.workers", 0) // one per CPU

	v.SetDefault("output.format", "markdown")
	v.SetDefault("output.path", "")

	v.SetDefault("serve.port", 8080)

	v.SetDefault("cache.dir", "")
	v.SetDefault("fetch.timeout", 30*time.Second)
}

// New returns a Viper instance wired to the environment and, when configFile
// is empty, to typeshapes.yaml in the working directory or
// $HOME/.config/typeshapes.
func New(configFile string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}
	v.SetConfigName("typeshapes")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "typeshapes"))
	}
	return v
}

// Read loads the config file into v. A missing file is not an error unless it
// was named explicitly.
func Read(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && v.ConfigFileUsed() == "" {
		return nil
	}
	return errors.Wrap(err, "reading config")
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Analyze.Workers < 0 {
		return errors.Newf("analyze.workers must be >= 0, got %d", c.Analyze.Workers)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.Newf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.Fetch.Timeout < 0 {
		return errors.Newf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
	}
	return nil
}
