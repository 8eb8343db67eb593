package config

import (
	"os"
	"path/filepath"
)

// GetHome returns $PRODUCTSEARCH_HOME or ~/.productsearch
func GetHome() string {
	home := os.Getenv(EnvHome)
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".productsearch"
		}
		return filepath.Join(homeDir, ".productsearch")
	}
	return ExpandPath(home)
}

// GetLogDir returns $PRODUCTSEARCH_HOME/logs
func GetLogDir() string {
	return filepath.Join(GetHome(), "logs")
}

// GetSettingsPath returns $PRODUCTSEARCH_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
