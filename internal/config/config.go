// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the keychain.
//
// Values are resolved in order: defaults, config.json, a .env file in the
// working directory, then TOKENLOGIN_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/xdg"
)

// Defaults.
const (
	DefaultBaseURL  = "http://localhost:8080/api"
	DefaultLogLevel = "info"
	DefaultTimeout  = "10s"
)

// Environment variable names that override the config file.
const (
	EnvBaseURL           = "TOKENLOGIN_BASE_URL"
	EnvLogLevel          = "TOKENLOGIN_LOG_LEVEL"
	EnvTimeout           = "TOKENLOGIN_TIMEOUT"
	EnvKeyringBackend    = "TOKENLOGIN_KEYRING_BACKEND"
	EnvKeyringDir        = "TOKENLOGIN_KEYRING_DIR"
	EnvKeyringPassphrase = "TOKENLOGIN_KEYRING_PASSPHRASE"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL  string        `json:"base_url"`
	LogLevel string        `json:"log_level"`
	Timeout  string        `json:"timeout"`
	Keyring  KeyringConfig `json:"keyring"`
}

// KeyringConfig selects the secret store backend.
type KeyringConfig struct {
	// Backend is "auto" (OS store, then file), "file", or a keyring backend
	// name such as "keychain", "wincred", "secret-service", "pass".
	Backend string `json:"backend"`
	// FileDir is where the file backend keeps items; empty means the XDG data dir.
	FileDir string `json:"file_dir"`
	// Passphrase unlocks the file backend. Prefer the env var over the file.
	Passphrase string `json:"passphrase,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: DefaultLogLevel,
		Timeout:  DefaultTimeout,
		Keyring:  KeyringConfig{Backend: "auto"},
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults. Environment
// overrides are applied on top and the result is validated.
func Load() (Config, error) {
	c, err := Resolve()
	if err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Resolve is Load without validation, for commands that must work on a
// configuration that does not validate.
func Resolve() (Config, error) {
	c, err := LoadFile()
	if err != nil {
		return c, err
	}
	_ = godotenv.Load() // optional .env in the working directory
	c.applyEnv()
	return c, nil
}

// LoadFile reads only the config file, without environment overrides.
func LoadFile() (Config, error) {
	c := Default()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, apperrors.Wrap(apperrors.ConfigInvalid, "parse "+p, err)
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.BaseURL, EnvBaseURL)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.Timeout, EnvTimeout)
	set(&c.Keyring.Backend, EnvKeyringBackend)
	set(&c.Keyring.FileDir, EnvKeyringDir)
	set(&c.Keyring.Passphrase, EnvKeyringPassphrase)
}

// Validate checks that the base URL is absolute http(s) and the timeout parses.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return apperrors.Wrap(apperrors.ConfigInvalid, "base_url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.New(apperrors.ConfigInvalid, "base_url must be an absolute http(s) URL")
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses Timeout; an empty value means the default.
func (c Config) RequestTimeout() (time.Duration, error) {
	raw := c.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ConfigInvalid, "timeout", err)
	}
	if d <= 0 {
		return 0, apperrors.New(apperrors.ConfigInvalid, "timeout must be positive")
	}
	return d, nil
}

// Set updates a single setting by its config key name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "base_url":
		c.BaseURL = value
	case "log_level":
		c.LogLevel = value
	case "timeout":
		c.Timeout = value
	case "keyring.backend":
		c.Keyring.Backend = value
	case "keyring.file_dir":
		c.Keyring.FileDir = value
	default:
		return apperrors.New(apperrors.ConfigInvalid, "unknown key "+key)
	}
	return c.Validate()
}
