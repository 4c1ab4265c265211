// Package history persists the bounded log of past summarization outcomes.
// The log is the sole durable record: entries are prepended newest-first and
// trimmed, never mutated.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/smartshare/panel/pkg/types"
)

// MaxEntries is the fixed cap on the persisted log.
const MaxEntries = 20

// Status records whether an attempt produced a summary or an error text.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is one persisted record of a past summarization outcome. Entries are
// immutable after creation.
type Entry struct {
	URL       string                      `json:"url"`
	Summary   string                      `json:"summary"`
	Status    Status                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Settings  types.SummarizationSettings `json:"settings"`
}

// Store is a file-backed append-and-trim log. Each append is a
// read-modify-write of the whole bounded log, so concurrent panel instances
// degrade to last-writer-wins rather than corrupting the file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a history store at path. If path is empty, defaults to
// ~/.smartshare/history.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("history: failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".smartshare", "history.json")
	}
	return &Store{path: path}, nil
}

// Path returns the file path of the store.
func (s *Store) Path() string {
	return s.path
}

// Append prepends an entry, trims the log to MaxEntries, and writes the whole
// log back atomically via a temp file rename.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries = append([]Entry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	return s.write(entries)
}

// List returns the persisted entries, newest first. A missing file is an
// empty log, not an error.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

type logFile struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

func (s *Store) load() ([]Entry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: failed to read %s: %w", s.path, err)
	}

	var lf logFile
	if err := json.Unmarshal(raw, &lf); err != nil {
		return nil, fmt.Errorf("history: failed to decode %s: %w", s.path, err)
	}
	return lf.Entries, nil
}

func (s *Store) write(entries []Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("history: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(logFile{Version: "1.0", Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("history: failed to encode log: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("history: failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("history: atomic rename %s: %w", s.path, err)
	}
	return nil
}
