// Package config loads and stores CLI configuration in the XDG config dir.
// The file is only read when the user asks for it; the bare invocation runs on
// Default alone.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"igvfcatalog/cli/internal/logging"
	"igvfcatalog/cli/internal/xdg"
)

// DefaultURL is the catalog tRPC endpoint used when nothing else is configured.
const DefaultURL = "http://localhost:2023/trpc"

// Config holds client settings.
type Config struct {
	URL          string            `json:"url" yaml:"url"`
	Timeout      string            `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxURLLength int               `json:"max_url_length,omitempty" yaml:"max_url_length,omitempty"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	LogLevel     string            `json:"log_level" yaml:"log_level"`
}

// Default returns the built-in settings: fixed endpoint, no timeout, logging off.
func Default() Config {
	return Config{
		URL:      DefaultURL,
		LogLevel: "off",
	}
}

// DefaultPath returns the path to the config file in the XDG config dir.
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from p; missing file returns defaults.
// Fields absent from the file keep their default values.
func Load(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if isJSON(p) {
		err = json.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return c, fmt.Errorf("parse %s: %w", p, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", p, err)
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(p string, c Config) error {
	var (
		b   []byte
		err error
	)
	if isJSON(p) {
		b, err = json.MarshalIndent(c, "", "  ")
	} else {
		b, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Validate checks that the endpoint is an absolute http(s) URL, the timeout
// parses and the log level is known.
func (c Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", c.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q: want http(s)://host[:port]/path", c.URL)
	}
	if c.MaxURLLength < 0 {
		return fmt.Errorf("max_url_length must not be negative")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: want off, trace, debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means no client-side timeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

func isJSON(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".json")
}
