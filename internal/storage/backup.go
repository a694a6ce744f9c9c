package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

const backupExt = ".tmx"

// backupFile is the on-disk form of a backup: the playlist plus the file it
// was taken from
type backupFile struct {
	OriginalFilename string         `json:"original_filename"`
	Playlist         model.Playlist `json:"playlist"`
}

// BackupManager handles backup creation for playlist files
type BackupManager struct {
	backupDir string
	now       func() time.Time
}

// NewBackupManager creates a new backup manager
func NewBackupManager() (*BackupManager, error) {
	return NewBackupManagerIn(getBackupDir())
}

// NewBackupManagerIn creates a backup manager storing backups in dir
func NewBackupManagerIn(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: dir,
		now:       time.Now,
	}, nil
}

// Dir returns the directory backups are written to
func (bm *BackupManager) Dir() string {
	return bm.backupDir
}

// CreateBackup writes a timestamped copy of the playlist before it is saved
// over originalPath
func (bm *BackupManager) CreateBackup(playlist *model.Playlist, originalPath string, sessionID string) (string, error) {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	data, err := json.MarshalIndent(backupFile{
		OriginalFilename: absPath,
		Playlist:         *playlist,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	backupPath := filepath.Join(bm.backupDir, bm.generateBackupFilename(sessionID))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// generateBackupFilename creates a filename in the format: YYYYMMDD_HHMMSS_<sessionID>.tmx
func (bm *BackupManager) generateBackupFilename(sessionID string) string {
	timestamp := bm.now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s%s", timestamp, sessionID, backupExt)
}

// getBackupDir returns the path to the backup directory
func getBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".tui-mixer", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "tui-mixer", "backups")
}

// GetBackupDir is a public function to get the backup directory
func GetBackupDir() string {
	return getBackupDir()
}

// IsBackupFile reports whether path points into the backup directory
func IsBackupFile(path string) bool {
	if path == "" || !strings.HasSuffix(path, backupExt) {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == filepath.Clean(getBackupDir())
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string    // Full path to backup file
	Timestamp    time.Time // Parsed timestamp from filename
	SessionID    string    // 8-character session ID
	OriginalFile string    // Original filename stored in backup
	Tracks       int
}

// FindBackupsForFile returns all backup files for a given original filename,
// oldest first. An empty path returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		absPath, err := filepath.Abs(originalFilePath)
		if err != nil {
			searchPath = originalFilePath
		} else {
			searchPath = filepath.Clean(absPath)
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue // Skip files that can't be parsed
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}

		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// parseBackupFilename extracts metadata from a backup filename
// Expected format: YYYYMMDD_HHMMSS_<sessionID>.tmx
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	name := strings.TrimSuffix(filename, backupExt)
	if len(name) < 17 || name[15] != '_' {
		return BackupMetadata{}, fmt.Errorf("unexpected backup name %q", filename)
	}

	timestamp, err := time.ParseInLocation("20060102_150405", name[:15], time.Local)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	meta := BackupMetadata{
		FilePath:  fullPath,
		Timestamp: timestamp,
		SessionID: name[16:],
	}

	if data, err := os.ReadFile(fullPath); err == nil {
		var b backupFile
		if err := json.Unmarshal(data, &b); err == nil {
			meta.OriginalFile = b.OriginalFilename
			meta.Tracks = len(b.Playlist.Tracks)
		}
	}

	return meta, nil
}
