package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHexToColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
	}{
		{"#ff0000", tcell.NewRGBColor(255, 0, 0)},
		{"#0f0", tcell.NewRGBColor(0, 255, 0)},
		{"nothex", tcell.ColorDefault},
		{"#12345", tcell.ColorDefault},
	}
	for _, tt := range tests {
		if got := HexToColor(tt.in); got != tt.want {
			t.Errorf("HexToColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorString(t *testing.T) {
	if got := ParseColorString("rgb(1, 2, 3)"); got != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("Unexpected color %v", got)
	}
	if got := ParseColorString("rgb(300,0,0)"); got != tcell.ColorDefault {
		t.Errorf("Out of range rgb should fall back to default, got %v", got)
	}
	if got := ParseColorString("Red"); got != tcell.ColorRed {
		t.Errorf("Named color: got %v", got)
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `name = "mine"

[colors]
list_text = "#ffffff"
list_drop_marker = "rgb(10,20,30)"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if theme.Name != "mine" {
		t.Errorf("Expected name 'mine', got '%s'", theme.Name)
	}
	if theme.Colors.ListText != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("list_text not applied")
	}
	if theme.Colors.ListDropMarker != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("list_drop_marker not applied")
	}
	// unset colors come from Tokyo Night
	if theme.Colors.DialogBorder != TokyoNight().Colors.DialogBorder {
		t.Errorf("Expected fallback dialog border")
	}
}

func TestLoadThemeUnknownColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[colors]\ntree_leaf_arrow = \"#fff\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThemeFromFile(path); err == nil {
		t.Errorf("Expected error for unknown color key")
	}
}

func TestDefaultUsesTerminalColors(t *testing.T) {
	d := Default()
	if d.Colors.ListText != tcell.ColorDefault {
		t.Errorf("Expected terminal default for list text")
	}
	if d.Colors.ListDropMarker == tcell.ColorDefault {
		t.Errorf("Drop marker must stay visible in the default theme")
	}
}

func TestBlend(t *testing.T) {
	white := tcell.NewRGBColor(255, 255, 255)
	black := tcell.NewRGBColor(0, 0, 0)

	if got := Blend(white, black, 1); got != white {
		t.Errorf("Opacity 1 should keep the color, got %v", got)
	}
	if got := Blend(white, black, 0); got != black {
		t.Errorf("Opacity 0 should give the background, got %v", got)
	}
	r, _, _ := Blend(white, black, 0.5).RGB()
	if r < 127 || r > 128 {
		t.Errorf("Expected half intensity, got %d", r)
	}
	if got := Blend(tcell.ColorDefault, black, 0.5); got != tcell.ColorDefault {
		t.Errorf("Default colors cannot be blended")
	}
}
