// Package config loads landing's configuration from a TOML file, a .env file,
// the environment and the OS keyring, in that order of increasing priority
// (the keyring only fills an access key nothing else provided).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/balkashynov/landing/internal/contact"
)

// Environment variables read at load time
const (
	EnvAccessKey = "LANDING_WEB3_FORMS_ACCESS_KEY"
	EnvEndpoint  = "LANDING_RELAY_ENDPOINT"
	EnvLogLevel  = "LANDING_LOG_LEVEL"
	EnvDBPath    = "LANDING_DB"
)

// Default configuration values.
const (
	DefaultLogLevel   = "info"
	DefaultServerAddr = "127.0.0.1:8080"
	DefaultEnvFile    = ".env"
)

// Where the access key came from, for `landing key show` and startup logs
const (
	SourceNone    = "none"
	SourceEnv     = "environment"
	SourceKeyring = "keyring"
)

// Config represents the landing configuration.
type Config struct {
	Relay   RelayConfig   `toml:"relay"`
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`

	// AccessKey is never read from or written to the TOML file
	AccessKey       string `toml:"-"`
	AccessKeySource string `toml:"-"`
}

// RelayConfig describes the form-relay service.
type RelayConfig struct {
	Endpoint       string `toml:"endpoint" validate:"required,url"`
	SuccessMessage string `toml:"success_message"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=trace debug info warn error"`
	File  string `toml:"file"` // TUI log file; empty = <data dir>/landing.log
}

// StorageConfig holds the settings database location.
type StorageConfig struct {
	Path string `toml:"path"` // empty = ~/.landing/landing.db
}

// ServerConfig holds `landing serve` options.
type ServerConfig struct {
	Addr string `toml:"addr" validate:"required,hostname_port"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Relay: RelayConfig{
			Endpoint:       contact.DefaultEndpoint,
			SuccessMessage: contact.DefaultSuccessMessage,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		AccessKeySource: SourceNone,
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "landing", "config.toml")
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	Path        string // config file; empty = ConfigPath()
	EnvFile     string // dotenv file; empty = DefaultEnvFile
	SkipKeyring bool
}

// Load builds the configuration. A missing config file or .env file is not
// an error. A missing access key is not an error either: it is reported via
// AccessKeySource == SourceNone and still forwarded to the relay.
func Load(opts LoadOptions) (*Config, error) {
	path := opts.Path
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	applyEnv(cfg)

	if cfg.AccessKey == "" && !opts.SkipKeyring {
		if key, err := LoadAccessKey(); err == nil && key != "" {
			cfg.AccessKey = key
			cfg.AccessKeySource = SourceKeyring
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAccessKey); v != "" {
		cfg.AccessKey = v
		cfg.AccessKeySource = SourceEnv
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Relay.Endpoint = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Storage.Path = v
	}
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ContactConfig returns the submission flow's configuration
func (c *Config) ContactConfig() contact.Config {
	return contact.Config{
		Endpoint:       c.Relay.Endpoint,
		AccessKey:      c.AccessKey,
		SuccessMessage: c.Relay.SuccessMessage,
	}
}

// LogFile returns the TUI log path, defaulting next to the database
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "landing.log")
	}
	return filepath.Join(home, ".landing", "landing.log")
}
