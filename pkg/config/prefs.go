package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/smartshare/panel/pkg/types"
)

// PrefsStore persists the user's last-used summarization settings so the
// panel reopens the way it was left.
type PrefsStore struct {
	path string
	mu   sync.Mutex
}

type prefsFile struct {
	Version  string `json:"version"`
	Settings struct {
		Type   string `json:"type"`
		Format string `json:"format"`
		Length string `json:"length"`
	} `json:"settings"`
}

// NewPrefsStore creates a preferences store. If path is empty, defaults to
// ~/.smartshare/prefs.json
func NewPrefsStore(path string) (*PrefsStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".smartshare", "prefs.json")
	}
	return &PrefsStore{path: path}, nil
}

// Load returns the persisted settings, or fallback when none are stored or
// the stored values are invalid.
func (s *PrefsStore) Load(fallback types.SummarizationSettings) types.SummarizationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fallback
	}
	var file prefsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fallback
	}

	settings := types.SummarizationSettings{
		Type:   types.SummaryType(file.Settings.Type),
		Format: types.SummaryFormat(file.Settings.Format),
		Length: types.SummaryLength(file.Settings.Length),
	}
	if err := settings.Validate(); err != nil {
		return fallback
	}
	return settings
}

// Save writes settings to disk atomically.
func (s *PrefsStore) Save(settings types.SummarizationSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var file prefsFile
	file.Version = "1.0"
	file.Settings.Type = string(settings.Type)
	file.Settings.Format = string(settings.Format)
	file.Settings.Length = string(settings.Length)

	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}
