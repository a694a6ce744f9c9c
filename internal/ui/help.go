package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKeys() string
	GetDescription() string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	offset      int
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	h.offset = 0
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Scroll moves the help text by delta lines
func (h *HelpScreen) Scroll(delta int) {
	h.offset = max(0, min(h.offset+delta, len(h.GetKeybindings())-1))
}

// GetKeybindings returns the help text, one line per entry
func (h *HelpScreen) GetKeybindings() []string {
	result := []string{"Keybindings:", ""}
	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %-12s - %s", kb.GetKeys(), kb.GetDescription()))
	}

	result = append(result,
		"",
		"Dragging:",
		"  Mouse        - Press a row and move to drag it; release to drop",
		"  Long press   - Hold a row still to pick it up (touch terminals)",
		"  Dialogs      - Drag search or unselected tracks onto the playlist",
		"  Edges        - Hover near the top or bottom edge to scroll",
		"",
		"Commands:",
		"  :w [file]    - Save",
		"  :q, :q!, :wq - Quit",
		"  :search      - Open the search dialog",
		"  :unselected  - Open the unselected tracks browser",
		"  :title [t]   - Show or change the playlist title",
		"  :info        - Show details of the cursor track",
		"  :backups     - Open a backup of this file (read-only)",
		"  :export f    - Write the playlist as Markdown (.md) or text",
		"  :import f [unselected] - Read tracks from .txt, .md or .m3u",
		"  :set k v     - Change a setting for this session",
		"  :messages    - Show recent status messages",
		"  :debug       - Write the drag state to the log",
	)
	return result
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.Size()
	screen.Fill(0, 0, width, height, contentStyle)

	startX, startY := 2, 1
	boxWidth := width - 4
	boxHeight := height - 2
	if boxWidth < 10 || boxHeight < 4 {
		return
	}
	screen.DrawBox(startX, startY, boxWidth, boxHeight, borderStyle)
	screen.DrawString(startX+2, startY, " Help (? to close, j/k to scroll) ", titleStyle)

	lines := h.GetKeybindings()
	y := startY + 1
	for _, line := range lines[min(h.offset, len(lines)):] {
		if y >= startY+boxHeight-1 {
			break
		}
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
}
