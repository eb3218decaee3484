package main

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// toolConfig is the optional per-user configuration file at
// ~/.config/vortextricks/config.toml. Flags always win over file values.
type toolConfig struct {
	Registry      string `toml:"registry"`
	Backend       string `toml:"backend"`
	Prefer        string `toml:"prefer"`
	VortexVersion string `toml:"vortex_version"`
}

func toolConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vortextricks", "config.toml"), nil
}

// loadToolConfig reads the config file leniently: a missing or unreadable
// file yields the zero config rather than an error.
func loadToolConfig() toolConfig {
	var cfg toolConfig
	path, err := toolConfigPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return toolConfig{}
	}
	return cfg
}
