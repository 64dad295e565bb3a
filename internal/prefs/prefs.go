// Package prefs persists the PBX account settings.
// Settings are stored as JSON in the per-user config directory, e.g.
// ~/.config/click-to-call/preferences.json.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the persisted PBX account. The dialed phone number and the
// status line are transient UI state and are deliberately not part of this
// record.
type Settings struct {
	Domain     string `json:"domain"`
	Extension  string `json:"extension"`
	Key        string `json:"key"`
	AutoAnswer bool   `json:"auto_answer"`
}

// Configured reports whether enough of the account is present to place a
// call without prompting the user.
func (s Settings) Configured() bool {
	return s.Domain != "" && s.Extension != ""
}

const prefsFileName = "preferences.json"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "click-to-call", prefsFileName)
}

// Load reads settings from the given path, falling back to empty defaults
// when the file is absent or unreadable. It never fails; a malformed file is
// treated the same as a missing one.
func Load(path string) Settings {
	if path == "" {
		path = DefaultPath()
	}

	var settings Settings

	bytes, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(bytes, &settings); err != nil {
		return Settings{}
	}
	return settings
}

// Save writes settings to the given path, creating directories as needed.
func Save(path string, s Settings) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}
