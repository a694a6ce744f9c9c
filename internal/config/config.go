package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-mixer/internal/autoscroll"
)

// Pointer modes
const (
	PointerDrag      = "drag"       // press and move past the threshold
	PointerLongPress = "long-press" // hold still, then move (touch terminals)
)

// DragConfig holds input tuning for drags
type DragConfig struct {
	PointerMode   string  `toml:"pointer_mode"`
	LongPressMS   int     `toml:"long_press_ms"`
	MoveThreshold float64 `toml:"move_threshold"`
	DebounceMS    int     `toml:"debounce_ms"`
	DragThreshold int     `toml:"drag_threshold"`
	Haptics       bool    `toml:"haptics"`
}

// LongPressDelay returns the long-press delay
func (d DragConfig) LongPressDelay() time.Duration {
	return time.Duration(d.LongPressMS) * time.Millisecond
}

// Debounce returns the touch debounce window
func (d DragConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMS) * time.Millisecond
}

// AutoScrollConfig holds auto-scroll tuning, in terminal rows
type AutoScrollConfig struct {
	EdgeThreshold float64 `toml:"edge_threshold"`
	Buffer        float64 `toml:"buffer"`
	MinSpeed      float64 `toml:"min_speed"`
	MaxSpeed      float64 `toml:"max_speed"`
	OutBaseSpeed  float64 `toml:"out_base_speed"`
	OutMaxSpeed   float64 `toml:"out_max_speed"`
	OutScale      float64 `toml:"out_scale"`
}

// Controller converts the section into controller settings
func (a AutoScrollConfig) Controller() autoscroll.Config {
	return autoscroll.Config{
		EdgeThreshold: a.EdgeThreshold,
		Buffer:        a.Buffer,
		MinSpeed:      a.MinSpeed,
		MaxSpeed:      a.MaxSpeed,
		OutBaseSpeed:  a.OutBaseSpeed,
		OutMaxSpeed:   a.OutMaxSpeed,
		OutScale:      a.OutScale,
	}
}

// Config holds application configuration
type Config struct {
	Theme      string            `toml:"theme"`
	Settings   map[string]string `toml:"settings"`
	Drag       DragConfig        `toml:"drag"`
	AutoScroll AutoScrollConfig  `toml:"autoscroll"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Default(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	config := Default()
	config.path = filePath

	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = toml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults if not specified
	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	if config.Drag.PointerMode != PointerDrag && config.Drag.PointerMode != PointerLongPress {
		return nil, fmt.Errorf("invalid drag.pointer_mode %q", config.Drag.PointerMode)
	}

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Default returns the default configuration. Speeds and thresholds are in
// rows; a terminal row is treated as the unit a pixel is elsewhere.
func Default() *Config {
	return &Config{
		Theme:    "tokyo-night",
		Settings: make(map[string]string),
		Drag: DragConfig{
			PointerMode:   PointerDrag,
			LongPressMS:   300,
			MoveThreshold: 2,
			DebounceMS:    100,
			DragThreshold: 1,
			Haptics:       true,
		},
		AutoScroll: AutoScrollConfig{
			EdgeThreshold: 3,
			Buffer:        1,
			MinSpeed:      0.1,
			MaxSpeed:      1,
			OutBaseSpeed:  1,
			OutMaxSpeed:   3,
			OutScale:      0.5,
		},
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", "tui-mixer")
	return configDir, nil
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	if val, ok := c.Settings[key]; ok {
		return val
	}
	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)
	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}
	return result
}

// Path returns the file the config was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// Save persists the configuration to the TOML file
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
