package config

import (
	"os"
	"path/filepath"
)

// GetHome returns POMAR_HOME or the ~/.pomar default
func GetHome() string {
	home := os.Getenv("POMAR_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".pomar"
		}
		return filepath.Join(homeDir, ".pomar")
	}
	return ExpandPath(home)
}

// GetDBPath returns $POMAR_HOME/state.db
func GetDBPath() string {
	return DBPathFor(GetHome())
}

// DBPathFor returns the database path inside an explicit home directory
func DBPathFor(home string) string {
	return filepath.Join(home, "state.db")
}

// GetLockDir returns $POMAR_HOME/locks
func GetLockDir() string {
	return filepath.Join(GetHome(), "locks")
}

// GetSettingsPath returns the settings file in use: settings.yaml when present,
// settings.json otherwise
func GetSettingsPath() string {
	home := GetHome()
	yamlPath := filepath.Join(home, "settings.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	return filepath.Join(home, "settings.json")
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
