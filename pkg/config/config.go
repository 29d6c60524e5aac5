// Package config provides configuration management for the shsecret CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds persisted defaults applied when command flags are left unset.
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	UI       UIConfig        `json:"ui"`
}

type DefaultSettings struct {
	Parts     int    `json:"parts"`
	Threshold int    `json:"threshold"`
	OutputDir string `json:"output_dir"`
}

type UIConfig struct {
	UseColor bool `json:"use_color"`
}

// Manager loads and saves the configuration file.
type Manager struct {
	config     *Config
	configPath string
}

// NewManager resolves the config path and loads the configuration, creating
// a default file when none exists.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	m := &Manager{configPath: configPath}

	if err := m.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		m.config = DefaultConfig()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return m, nil
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Parts:     3,
			Threshold: 2,
			OutputDir: ".",
		},
		UI: UIConfig{
			UseColor: true,
		},
	}
}

// Load reads the configuration from disk.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.config = config
	return nil
}

// Save writes the configuration to disk.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	return m.config
}

// getConfigPath returns the configuration file path.
func getConfigPath() (string, error) {
	if customPath := os.Getenv("SHSECRET_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "shsecret", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "shsecret", "config.json"), nil
}
