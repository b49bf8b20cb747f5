// Package config loads slack-cli settings from a YAML file, the
// environment and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SLACK_CLI_SLEEP_MS.
	EnvPrefix = "SLACK_CLI"

	// TokenEnv is the conventional variable holding the API token.
	TokenEnv = "SLACK_API_TOKEN"

	// DefaultSleepMS is the default pause between channel actions.
	DefaultSleepMS = 10000

	configDirName  = "slack-cli"
	configFileName = "slack-cli.yaml"
)

// ErrMissingToken is returned by Validate when no API token is configured.
var ErrMissingToken = errors.New("missing API token: pass --token or set " + TokenEnv)

// Config holds application configuration loaded from YAML and the environment.
type Config struct {
	Token      string   `yaml:"token,omitempty" mapstructure:"token"`
	SleepMS    int      `yaml:"sleep_ms" mapstructure:"sleep_ms"`
	APIURL     string   `yaml:"api_url" mapstructure:"api_url"`
	TimeoutSec int      `yaml:"timeout_sec" mapstructure:"timeout_sec"`
	LogLevel   string   `yaml:"log_level" mapstructure:"log_level"`
	LogFormat  string   `yaml:"log_format" mapstructure:"log_format"`
	Exclude    []string `yaml:"exclude,omitempty" mapstructure:"exclude"`

	configFile string
}

// DefaultConfigPath returns ~/.config/slack-cli/slack-cli.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	path, err := filepath.Abs(filepath.Join(home, ".config", configDirName, configFileName))
	if err != nil {
		return filepath.Join(home, ".config", configDirName, configFileName)
	}
	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("sleep_ms", DefaultSleepMS)
	v.SetDefault("api_url", slack.DefaultBaseURL)
	v.SetDefault("timeout_sec", int(slack.DefaultHTTPTimeout/time.Second))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("exclude", []string{})
}

// Load reads configuration. An explicit path must exist; with an empty path
// the default location is used when present. Environment variables override
// file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", TokenEnv); err != nil {
		return nil, fmt.Errorf("binding token env: %w", err)
	}

	if path == "" {
		if def := DefaultConfigPath(); fileExists(def) {
			path = def
		}
	}

	var used string
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.configFile = used
	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ConfigFile returns the file the configuration was read from, or "" when
// only defaults and the environment were used.
func (c *Config) ConfigFile() string {
	return c.configFile
}

// Delay is the configured pause between channel actions.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.SleepMS) * time.Millisecond
}

// Timeout is the HTTP timeout for API calls.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive API calls.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return ErrMissingToken
	}
	if c.SleepMS < 0 {
		return fmt.Errorf("invalid sleep_ms %d: must not be negative", c.SleepMS)
	}
	if c.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout_sec %d: must be positive", c.TimeoutSec)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an http(s) URL", c.APIURL)
	}
	return nil
}
