// Package history persists command-line and search history between sessions.
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultLimit is the number of entries kept per history file
const DefaultLimit = 200

// Well-known history files
const (
	CommandFile = "commands.toml"
	SearchFile  = "search.toml"
)

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
	Limit      int
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a new history manager with directory at ~/.local/share/tui-mixer/history/
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return NewManagerIn(filepath.Join(homeDir, ".local", "share", "tui-mixer", "history"))
}

// NewManagerIn creates a history manager storing files in dir
func NewManagerIn(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Manager{historyDir: dir, Limit: DefaultLimit}, nil
}

// Load loads history entries from a TOML file
func (m *Manager) Load(filename string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		// a corrupted history file is not worth failing over
		return []string{}, nil
	}

	return histFile.Entries, nil
}

// Save saves the newest Limit entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	if m.Limit > 0 && len(entries) > m.Limit {
		entries = entries[len(entries)-m.Limit:]
	}

	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644)
}
