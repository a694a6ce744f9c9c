package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.json")
	store := NewJSONStore(path)

	playlist := model.NewPlaylist("Friday")
	playlist.Tracks = append(playlist.Tracks,
		model.Track{ID: "t1", Artist: "ABBA", Title: "SOS", Duration: 200 * time.Second},
		model.Track{ID: "t2", Title: "Untitled"},
	)
	playlist.Unselected = []model.Track{{ID: "t3", Title: "Maybe"}}

	if err := store.Save(playlist); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Temporary file left behind")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Title != "Friday" || len(loaded.Tracks) != 2 || len(loaded.Unselected) != 1 {
		t.Fatalf("Unexpected playlist: %+v", loaded)
	}
	if loaded.Tracks[0].Duration != 200*time.Second {
		t.Errorf("Duration not preserved: %v", loaded.Tracks[0].Duration)
	}
}

func TestJSONStoreMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "new-mix.json"))
	playlist, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if playlist.Title != "new-mix" {
		t.Errorf("Expected title from file name, got %q", playlist.Title)
	}
	if playlist.Tracks == nil || len(playlist.Tracks) != 0 {
		t.Errorf("Expected empty track list")
	}
}

func TestJSONStoreRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	data := `{"title":"x","tracks":[{"id":"a","title":"A"}],"unselected":[{"id":"a","title":"B"}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStore(path).Load(); err == nil {
		t.Errorf("Expected duplicate id error")
	}
}

func TestJSONStoreInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStore(path).Load(); err == nil {
		t.Errorf("Expected parse error")
	}
}

func TestReadOnlyStoreRefusesSave(t *testing.T) {
	store := &JSONStore{FilePath: filepath.Join(t.TempDir(), "x.json"), ReadOnly: true}
	err := store.Save(model.NewPlaylist("x"))
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestIsBackupFileDetection(t *testing.T) {
	backupDir := GetBackupDir()

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"Empty path", "", false},
		{"Regular file", "/tmp/mix.json", false},
		{"Backup file", filepath.Join(backupDir, "20251103_150405_abc12345.tmx"), true},
		{"Backup name in another directory", "/tmp/backups/20251103_150405_abc12345.tmx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBackupFile(tt.path); got != tt.expected {
				t.Errorf("IsBackupFile(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestBackupManager(t *testing.T) {
	bm, err := NewBackupManagerIn(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create backup manager: %v", err)
	}
	clock := time.Date(2025, 11, 3, 15, 4, 5, 0, time.Local)
	bm.now = func() time.Time { return clock }

	playlist := model.NewPlaylist("Friday")
	playlist.Tracks = append(playlist.Tracks, model.Track{ID: "t1", Title: "SOS"})

	first, err := bm.CreateBackup(playlist, "/tmp/friday.json", "abc12345")
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Base(first) != "20251103_150405_abc12345.tmx" {
		t.Errorf("Unexpected backup name %s", filepath.Base(first))
	}

	clock = clock.Add(time.Hour)
	if _, err := bm.CreateBackup(playlist, "/tmp/friday.json", "abc12345"); err != nil {
		t.Fatal(err)
	}
	if _, err := bm.CreateBackup(playlist, "/tmp/other.json", "def67890"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bm.Dir(), "garbage.tmx"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	all, err := bm.FindBackupsForFile("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 backup files, got %d", len(all))
	}

	friday, err := bm.FindBackupsForFile("/tmp/friday.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(friday) != 2 {
		t.Fatalf("Expected 2 backups for friday.json, got %d", len(friday))
	}
	if !friday[0].Timestamp.Before(friday[1].Timestamp) {
		t.Errorf("Backups should be sorted oldest first")
	}
	if friday[0].SessionID != "abc12345" || friday[0].Tracks != 1 {
		t.Errorf("Unexpected metadata: %+v", friday[0])
	}
}
