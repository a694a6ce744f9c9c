package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/export"
	import_parser "github.com/pstuifzand/tui-mixer/internal/import"
	"github.com/pstuifzand/tui-mixer/internal/storage"
)

// commandNames are offered by Tab completion in command mode
var commandNames = []string{
	"backups", "debug", "export", "help", "import", "info", "messages", "q",
	"q!", "quit", "search", "set", "title", "unselected", "w", "wq", "write",
}

// parseCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character.
func parseCommand(cmd string) []string {
	var parts []string
	var current strings.Builder
	inWord := false
	var quote rune
	escaped := false

	for _, r := range cmd {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		if a.dirty && !a.store.ReadOnly {
			a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		} else {
			a.quit = true
		}
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		if len(parts) > 1 {
			if err := a.writeAs(parts[1]); err != nil {
				a.SetStatus("Failed to save: " + err.Error())
				return
			}
		} else if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
			return
		}
		a.SetStatus("Saved " + a.store.FilePath)
	case "wq", "x":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.quit = true
		}
	case "title":
		if len(parts) < 2 {
			a.SetStatus("Title: " + a.playlist.Title)
			return
		}
		a.playlist.Title = strings.Join(parts[1:], " ")
		a.dirty = true
	case "search":
		a.openCatalog(catalog.KindSearch)
		if len(parts) > 1 {
			if s := a.dialog(SurfaceSearch); s != nil {
				s.catalog.Input.SetText(strings.Join(parts[1:], " "))
				s.catalog.Refresh()
			}
		}
	case "unselected":
		a.openCatalog(catalog.KindUnselected)
	case "info":
		a.openInfo()
	case "messages":
		a.openMessages()
	case "backups":
		a.openBackups()
	case "export":
		if len(parts) < 2 {
			a.SetStatus("Usage: :export <file.md|file.txt>")
			return
		}
		if err := export.ExportFile(a.Playlist(), parts[1]); err != nil {
			a.SetStatus("Export failed: " + err.Error())
			return
		}
		a.SetStatus("Exported to " + parts[1])
	case "import":
		if len(parts) < 2 {
			a.SetStatus("Usage: :import <file> [unselected]")
			return
		}
		kind := catalog.KindSearch
		if len(parts) > 2 {
			k, err := catalog.ParseKind(parts[2])
			if err != nil {
				a.SetStatus(err.Error())
				return
			}
			kind = k
		}
		a.importFile(parts[1], kind)
	case "set":
		a.handleSetCommand(parts[1:])
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		a.logger.Printf("drag state:\n%s", spew.Sdump(a.coord.State()))
		a.logger.Printf("keyboard=%s pointer_mode=%s focus=%s messages=%s",
			a.keyboard.State(), a.pointerMode(), a.focus, messagesSummary(a.status.History()))
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// importFile reads a track list into the catalog. Search imports form a set
// named after the file; unselected imports join the playlist's own set.
func (a *App) importFile(path string, kind catalog.Kind) {
	data, err := os.ReadFile(path)
	if err != nil {
		a.SetStatus("Import failed: " + err.Error())
		return
	}
	tracks, err := import_parser.ImportFile(path, string(data), import_parser.FormatAuto)
	if err != nil {
		a.SetStatus("Import failed: " + err.Error())
		return
	}

	label := filepath.Base(path)
	if kind == catalog.KindUnselected {
		label = savedSet
	}
	added := a.catalog.Add(kind, label, "", tracks)
	if kind == catalog.KindUnselected && added > 0 {
		a.dirty = true
	}
	a.refreshCatalogDialogs()
	a.SetStatus(fmt.Sprintf("Imported %d tracks from %s", added, label))
}

// writeAs saves to a new file, which becomes the current file
func (a *App) writeAs(path string) error {
	store := storage.NewJSONStore(path)
	if store.ReadOnly {
		return errors.New("cannot write into the backup directory")
	}
	previous := a.store
	a.store = store
	if err := a.Save(); err != nil {
		a.store = previous
		return err
	}
	return nil
}

// handleSetCommand shows or changes session settings
func (a *App) handleSetCommand(args []string) {
	switch len(args) {
	case 0:
		all := a.cfg.GetAll()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := []string{"pointer_mode = " + a.pointerMode()}
		for _, k := range keys {
			if k != "pointer_mode" {
				lines = append(lines, fmt.Sprintf("%s = %s", k, all[k]))
			}
		}
		a.openTextDialog(SurfaceMessages, "Settings", lines)
	case 1:
		a.SetStatus(fmt.Sprintf("%s = %q", args[0], a.cfg.Get(args[0])))
	default:
		key, value := args[0], strings.Join(args[1:], " ")
		if key == "pointer_mode" && value != "drag" && value != "long-press" {
			a.SetStatus("pointer_mode must be drag or long-press")
			return
		}
		if key == "pointer_mode" && a.pressing != nil {
			a.cancelPointerDrag()
		}
		a.cfg.Set(key, value)
		if key == "album" {
			a.refreshRows()
		}
		a.SetStatus(fmt.Sprintf("%s = %s", key, value))
	}
}
