package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Playlist colors
	ListText        tcell.Color
	ListSelected    tcell.Color
	ListDuration    tcell.Color
	ListDropMarker  tcell.Color
	ListDragged     tcell.Color
	ListBackground  tcell.Color
	ScrollIndicator tcell.Color

	// Dialog colors (search, unselected tracks, track info)
	DialogBackground tcell.Color
	DialogBorder     tcell.Color
	DialogTitle      tcell.Color
	DialogText       tcell.Color
	DialogSelected   tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchCursor      tcell.Color
	SearchResultCount tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color
	StatusDrag     tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// fields maps the TOML key of every color to its slot
func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"list_text":           &c.ListText,
		"list_selected":       &c.ListSelected,
		"list_duration":       &c.ListDuration,
		"list_drop_marker":    &c.ListDropMarker,
		"list_dragged":        &c.ListDragged,
		"list_background":     &c.ListBackground,
		"scroll_indicator":    &c.ScrollIndicator,
		"dialog_background":   &c.DialogBackground,
		"dialog_border":       &c.DialogBorder,
		"dialog_title":        &c.DialogTitle,
		"dialog_text":         &c.DialogText,
		"dialog_selected":     &c.DialogSelected,
		"search_label":        &c.SearchLabel,
		"search_text":         &c.SearchText,
		"search_cursor":       &c.SearchCursor,
		"search_result_count": &c.SearchResultCount,
		"command_prompt":      &c.CommandPrompt,
		"command_text":        &c.CommandText,
		"command_cursor":      &c.CommandCursor,
		"help_background":     &c.HelpBackground,
		"help_border":         &c.HelpBorder,
		"help_title":          &c.HelpTitle,
		"help_content":        &c.HelpContent,
		"status_mode":         &c.StatusMode,
		"status_message":      &c.StatusMessage,
		"status_modified":     &c.StatusModified,
		"status_drag":         &c.StatusDrag,
		"header_title":        &c.HeaderTitle,
	}
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	t := &Theme{Name: "default"}
	for _, slot := range t.Colors.fields() {
		*slot = tcell.ColorDefault
	}
	t.Colors.ListDropMarker = tcell.ColorYellow
	t.Colors.StatusDrag = tcell.ColorYellow
	return t
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			ListText:          HexToColor("#c0caf5"), // Light gray-blue
			ListSelected:      HexToColor("#7aa2f7"), // Blue
			ListDuration:      HexToColor("#565f89"), // Comment gray
			ListDropMarker:    HexToColor("#e0af68"), // Yellow
			ListDragged:       HexToColor("#bb9af7"), // Magenta
			ListBackground:    HexToColor("#1a1b26"),
			ScrollIndicator:   HexToColor("#7dcfff"), // Cyan
			DialogBackground:  HexToColor("#24283b"),
			DialogBorder:      HexToColor("#7dcfff"),
			DialogTitle:       HexToColor("#bb9af7"),
			DialogText:        HexToColor("#c0caf5"),
			DialogSelected:    HexToColor("#7aa2f7"),
			SearchLabel:       HexToColor("#bb9af7"),
			SearchText:        HexToColor("#c0caf5"),
			SearchCursor:      HexToColor("#7aa2f7"),
			SearchResultCount: HexToColor("#9ece6a"), // Green
			CommandPrompt:     HexToColor("#bb9af7"),
			CommandText:       HexToColor("#c0caf5"),
			CommandCursor:     HexToColor("#7aa2f7"),
			HelpBackground:    HexToColor("#1a1b26"),
			HelpBorder:        HexToColor("#7dcfff"),
			HelpTitle:         HexToColor("#bb9af7"),
			HelpContent:       HexToColor("#c0caf5"),
			StatusMode:        HexToColor("#bb9af7"),
			StatusMessage:     HexToColor("#9ece6a"),
			StatusModified:    HexToColor("#f7768e"), // Red
			StatusDrag:        HexToColor("#e0af68"),
			HeaderTitle:       HexToColor("#bb9af7"),
		},
	}
}
