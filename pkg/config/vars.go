package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "geodesk"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/geodesk by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/geodesk/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the geodesk.yaml file.
// Returns ~/.config/geodesk/geodesk.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "geodesk.yaml")
}
