// Package config loads the crwrapped configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pable/go-cr-wrapped/internal/royale"
)

// Config holds the recognized options. Values come from the TOML file at
// ~/.crwrapped/config.toml, overridden by the CLASH_ROYALE_API_TOKEN and
// USE_PROXY environment variables.
type Config struct {
	// UseProxy routes API calls through the RoyaleAPI proxy, which avoids
	// the official API's static-IP whitelist.
	UseProxy bool `toml:"use_proxy"`
	// APIToken is the Clash Royale developer API token.
	APIToken string `toml:"api_token"`
	// TimeoutSeconds bounds each upstream request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UseProxy:       true,
		APIToken:       "",
		TimeoutSeconds: 10,
	}
}

// Dir returns the crwrapped config/data directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".crwrapped")
}

// Load reads the config file from the default location, falling back to
// defaults when it doesn't exist, then applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFrom(filepath.Join(Dir(), "config.toml"))
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom reads the config file at path. A missing file is not an error;
// defaults are returned.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default location, creating the directory
// if needed.
func (c *Config) Save() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.toml"), data, 0o600)
}

func (c *Config) applyEnv() {
	if token := os.Getenv("CLASH_ROYALE_API_TOKEN"); token != "" {
		c.APIToken = token
	}
	if proxy := os.Getenv("USE_PROXY"); proxy != "" {
		c.UseProxy = strings.EqualFold(proxy, "true")
	}
}

// ClientConfig converts to the API client's option struct.
func (c *Config) ClientConfig() royale.Config {
	return royale.Config{
		UseProxy: c.UseProxy,
		APIToken: c.APIToken,
		Timeout:  time.Duration(c.TimeoutSeconds) * time.Second,
	}
}
