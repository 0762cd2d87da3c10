package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings represents the structure of ~/.beeper/settings.json
type Settings struct {
	DBPath         string `json:"db_path,omitempty"`
	Debug          *bool  `json:"debug,omitempty"`
	GapMS          *int   `json:"gap_ms,omitempty"`
	LoopPauseMS    *int   `json:"loop_pause_ms,omitempty"`
	MaxLogFiles    *int   `json:"max_log_files,omitempty"`
	NoteDurationMS *int   `json:"note_duration_ms,omitempty"`
}

// settingsPathFunc returns the path to the settings file.
// Can be overridden in tests.
var settingsPathFunc = getDefaultSettingsPath

func getDefaultSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".beeper", "settings.json"), nil
}

// LoadSettings loads settings from ~/.beeper/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path, err := settingsPathFunc()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}

	return &settings, nil
}

// ExpandPath expands ~ to the home directory in paths.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path // Return as-is if we can't get home dir
		}
		if len(path) == 1 {
			return homeDir
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
