package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// ErrReadOnly is returned when saving a store opened on a backup file
var ErrReadOnly = errors.New("playlist is read-only")

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
	ReadOnly bool
}

// NewJSONStore creates a new JSON store for the given file path. Backup files
// are opened read-only.
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
		ReadOnly: IsBackupFile(filePath),
	}
}

// Load loads a playlist from a JSON file
func (s *JSONStore) Load() (*model.Playlist, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPlaylist(titleFromPath(s.FilePath)), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var playlist model.Playlist
	if IsBackupFile(s.FilePath) {
		var b backupFile
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse backup: %w", err)
		}
		playlist = b.Playlist
	} else if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if playlist.Tracks == nil {
		playlist.Tracks = make([]model.Track, 0)
	}
	if err := validate(&playlist); err != nil {
		return nil, fmt.Errorf("invalid playlist %s: %w", s.FilePath, err)
	}
	s.ReadOnly = IsBackupFile(s.FilePath)

	return &playlist, nil
}

// Save saves a playlist to a JSON file
func (s *JSONStore) Save(playlist *model.Playlist) error {
	if s.ReadOnly {
		return ErrReadOnly
	}

	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(playlist, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// write next to the target and rename, so a crash never leaves half a file
	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.FilePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

// FileExists checks if the playlist file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// validate rejects documents with missing or duplicate track IDs
func validate(p *model.Playlist) error {
	seen := make(map[string]bool, len(p.Tracks)+len(p.Unselected))
	for _, list := range [][]model.Track{p.Tracks, p.Unselected} {
		for i, t := range list {
			if t.ID == "" {
				return fmt.Errorf("track %d (%q) has no id", i, t.Label())
			}
			if seen[t.ID] {
				return fmt.Errorf("duplicate track id %s", t.ID)
			}
			seen[t.ID] = true
		}
	}
	return nil
}

func titleFromPath(path string) string {
	if path == "" {
		return "Untitled"
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
