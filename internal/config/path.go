package config

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
)

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv("VIEWMAN_CONFIG_DIR"); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDirs = append(configDirs, xdg)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "viewman", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

// GetConfigDir returns the directory the user config is read from, or "".
func GetConfigDir() string {
	configFile := getConfigFilePath()
	if configFile == "" {
		return ""
	}
	return filepath.Dir(configFile)
}
