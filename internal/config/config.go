// Package config loads path-explorer settings with viper.
//
// Precedence (lowest to highest): defaults < config file < PATH_EXPLORER_*
// environment variables < command-line flags bound by the caller.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables: server.heartbeat_timeout is
// read from PATH_EXPLORER_SERVER_HEARTBEAT_TIMEOUT.
const EnvPrefix = "PATH_EXPLORER"

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "path-explorer.toml"

// Config is the complete configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Types  TypesConfig  `mapstructure:"types"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures the socket server.
type ServerConfig struct {
	// HeartbeatTimeout stops the server when no line arrives for this long.
	// Zero disables the check.
	HeartbeatTimeout time.Duration `mapstructure:"heartbeat_timeout"`
	// HeartbeatInterval is how often the timeout is checked.
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	// ExitOnDisconnect stops the server when a client disconnects.
	ExitOnDisconnect bool `mapstructure:"exit_on_disconnect"`
	// MetricsAddr serves prometheus metrics when set (e.g. "127.0.0.1:9464").
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// TypesConfig names where types are read from.
type TypesConfig struct {
	// Packages are go/packages patterns for the Go type provider.
	Packages []string `mapstructure:"packages"`
	// Catalog is a YAML type catalog path or doublestar pattern.
	Catalog string `mapstructure:"catalog"`
	// Watch reloads the catalog while serving when its files change.
	Watch bool `mapstructure:"watch"`
	// Dir is the directory package patterns are resolved from.
	Dir string `mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	JSON      bool `mapstructure:"json"`
	Verbosity int  `mapstructure:"verbosity"`
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.heartbeat_timeout", 30*time.Second)
	v.SetDefault("server.heartbeat_interval", 5*time.Second)
	v.SetDefault("server.exit_on_disconnect", true)
	v.SetDefault("server.metrics_addr", "")
	v.SetDefault("types.packages", []string{})
	v.SetDefault("types.catalog", "")
	v.SetDefault("types.watch", false)
	v.SetDefault("types.dir", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// NewViper creates a viper instance with defaults, environment binding and
// the given TOML file. An empty path reads DefaultFile when it exists.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return v, nil
		}

		path = DefaultFile
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return v, nil
}

// Unmarshal decodes the settings of v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads the configuration from path (see NewViper).
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}

	return Unmarshal(v)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.HeartbeatTimeout < 0 {
		return errors.Newf("server.heartbeat_timeout must not be negative, got %s", c.Server.HeartbeatTimeout)
	}

	if c.Server.HeartbeatTimeout > 0 && c.Server.HeartbeatInterval <= 0 {
		return errors.Newf("server.heartbeat_interval must be positive, got %s", c.Server.HeartbeatInterval)
	}

	return nil
}
