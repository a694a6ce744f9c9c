package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("autosave", "false")
	if cfg.Get("autosave") != "false" {
		t.Errorf("Expected 'false', got '%s'", cfg.Get("autosave"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	// Test getting a value that doesn't exist
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	// Set and then get
	cfg.Set("test", "value")
	if cfg.Get("test") != "value" {
		t.Errorf("Expected 'value', got '%s'", cfg.Get("test"))
	}
}

func TestGetAll(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("key1", "value1")
	cfg.Set("key2", "value2")

	all := cfg.GetAll()
	if len(all) != 2 {
		t.Errorf("Expected 2 settings, got %d", len(all))
	}

	if all["key1"] != "value1" {
		t.Errorf("Expected 'value1', got '%s'", all["key1"])
	}

	if all["key2"] != "value2" {
		t.Errorf("Expected 'value2', got '%s'", all["key2"])
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	// Modify the returned map
	all := cfg.GetAll()
	all["original"] = "modified"

	// Verify the original config was not modified
	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}
	// sessionSettings is nil

	// Set should initialize it
	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	// Get should handle nil gracefully
	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Theme != "tokyo-night" {
		t.Errorf("Expected default theme 'tokyo-night', got '%s'", cfg.Theme)
	}

	if cfg.sessionSettings == nil {
		t.Errorf("Default should initialize sessionSettings")
	}

	if cfg.Drag.PointerMode != PointerDrag {
		t.Errorf("Expected pointer mode %q, got %q", PointerDrag, cfg.Drag.PointerMode)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Drag.LongPressDelay() != 300*time.Millisecond {
		t.Errorf("Expected default long-press delay, got %v", cfg.Drag.LongPressDelay())
	}
	if cfg.Path() != path {
		t.Errorf("Expected path %q, got %q", path, cfg.Path())
	}
}

func TestLoadFromFileSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `theme = "gruvbox"

[settings]
autosave = "true"

[drag]
pointer_mode = "long-press"
long_press_ms = 400

[autoscroll]
max_speed = 2.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Theme != "gruvbox" {
		t.Errorf("Expected theme 'gruvbox', got '%s'", cfg.Theme)
	}
	if cfg.Get("autosave") != "true" {
		t.Errorf("Expected autosave setting, got '%s'", cfg.Get("autosave"))
	}
	if cfg.Drag.PointerMode != PointerLongPress {
		t.Errorf("Expected long-press mode, got '%s'", cfg.Drag.PointerMode)
	}
	if cfg.Drag.LongPressDelay() != 400*time.Millisecond {
		t.Errorf("Expected 400ms, got %v", cfg.Drag.LongPressDelay())
	}
	// keys missing from the file keep their defaults
	if cfg.Drag.DebounceMS != 100 {
		t.Errorf("Expected default debounce, got %d", cfg.Drag.DebounceMS)
	}
	ac := cfg.AutoScroll.Controller()
	if ac.MaxSpeed != 2.5 || ac.EdgeThreshold != 3 {
		t.Errorf("Unexpected autoscroll config: %+v", ac)
	}
}

func TestLoadFromFileInvalidPointerMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[drag]\npointer_mode = \"swipe\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Errorf("Expected an error for an unknown pointer mode")
	}
}

func TestSaveWritesOnlyPersistedSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Settings["autosave"] = "false"
	cfg.Set("session-only", "x")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Get("autosave") != "false" {
		t.Errorf("Expected persisted setting after reload")
	}
	if loaded.Get("session-only") != "" {
		t.Errorf("Session settings must not be saved")
	}
}
