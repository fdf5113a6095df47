package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// State is the local preferences file under ~/.crb. It only carries
// client-side settings; all game progress lives on the server.
type State struct {
	APIBaseURL string `json:"api_base_url"`
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".crb")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func statePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

func SaveState(s State) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

// LoadState returns the saved preferences, or the zero value when the
// file is missing or unreadable.
func LoadState() State {
	path, err := statePath()
	if err != nil {
		return State{}
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return State{}
	}
	var s State
	if err := json.Unmarshal(body, &s); err != nil {
		return State{}
	}
	s.APIBaseURL = strings.TrimRight(strings.TrimSpace(s.APIBaseURL), "/")
	return s
}

func ClearState() error {
	path, err := statePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
