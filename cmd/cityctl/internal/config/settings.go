package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

const settingsFile = "config.yaml"

// Settings are the persisted CLI defaults. Precedence at startup is
// flags > environment > settings file > built-in defaults.
type Settings struct {
	ServerURL    string `yaml:"server"`
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"-"`
}

// envSettings mirrors Settings for environment-variable overrides.
type envSettings struct {
	ServerURL      string `env:"CITYRESOLVED_SERVER"`
	Issuer         string `env:"CITYRESOLVED_ISSUER"`
	ClientID       string `env:"CITYRESOLVED_CLIENT_ID"`
	ClientSecret   string `env:"CITYRESOLVED_CLIENT_SECRET"`
	NonInteractive bool   `env:"CITYRESOLVED_NON_INTERACTIVE"`
}

func settingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".cityresolved", settingsFile), nil
}

// LoadSettings reads the settings file, if present, and applies any
// environment overrides. A missing file is not an error.
func LoadSettings() (Settings, bool, error) {
	settings := Settings{}

	path, err := settingsPath()
	if err != nil {
		return settings, false, err
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, false, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return settings, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var overrides envSettings
	if err := env.Parse(&overrides); err != nil {
		return settings, false, fmt.Errorf("failed to parse environment: %w", err)
	}
	if overrides.ServerURL != "" {
		settings.ServerURL = overrides.ServerURL
	}
	if overrides.Issuer != "" {
		settings.Issuer = overrides.Issuer
	}
	if overrides.ClientID != "" {
		settings.ClientID = overrides.ClientID
	}
	if overrides.ClientSecret != "" {
		settings.ClientSecret = overrides.ClientSecret
	}

	return settings, overrides.NonInteractive, nil
}

// SaveSettings writes the settings file.
func SaveSettings(settings Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
