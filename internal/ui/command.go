package ui

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active   bool
	input    *LineInput
	commands []string
}

// NewCommandMode creates a new CommandMode without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{input: NewLineInput(NewHistory(history.DefaultLimit))}
}

// NewCommandModeWithHistory creates a new CommandMode with history persistence
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, err := NewHistoryWithManager(manager, history.CommandFile)
	if err != nil {
		h = NewHistory(history.DefaultLimit)
	}
	return &CommandMode{input: NewLineInput(h)}
}

// SetCommands sets the names offered by Tab completion
func (c *CommandMode) SetCommands(names []string) {
	c.commands = append([]string(nil), names...)
	sort.Strings(c.commands)
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input.Commit())
		c.Stop()
		return cmd, true
	case tcell.KeyTab:
		c.complete()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.input.Text() == "" {
			// Backspace on an empty line leaves command mode
			c.Stop()
			return "", true
		}
		c.input.HandleKey(ev)
	default:
		c.input.HandleKey(ev)
	}
	return "", false
}

// complete extends the command name to the longest unambiguous prefix
func (c *CommandMode) complete() {
	text := c.input.Text()
	if strings.ContainsRune(text, ' ') {
		return
	}

	var matches []string
	for _, name := range c.commands {
		if strings.HasPrefix(name, text) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return
	case 1:
		c.input.SetText(matches[0] + " ")
	default:
		c.input.SetText(commonPrefix(matches))
	}
}

func commonPrefix(names []string) string {
	prefix := names[0]
	for _, n := range names[1:] {
		for !strings.HasPrefix(n, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.Text())
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	screen.DrawString(0, y, ":", screen.CommandPromptStyle())
	c.input.Render(screen, 1, y, screen.GetWidth()-1, screen.CommandTextStyle(), screen.CommandCursorStyle())
}
