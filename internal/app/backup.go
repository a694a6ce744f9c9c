package app

import (
	"fmt"

	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/storage"
	"github.com/pstuifzand/tui-mixer/internal/ui"
)

// openBackups lists the backups of the current file
func (a *App) openBackups() {
	if a.backups == nil {
		a.SetStatus("Backups are not available")
		return
	}
	if a.store.FilePath == "" {
		a.SetStatus("No file to find backups for")
		return
	}

	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil {
		a.SetStatus(fmt.Sprintf("Failed to read backups: %v", err))
		return
	}
	if len(backups) == 0 {
		a.SetStatus("No backups found for this file")
		return
	}

	sel := ui.NewBackupSelector(SurfaceBackups, backups)
	s := &surface{id: SurfaceBackups, list: sel.List, dialog: sel.Dialog, backups: sel}
	a.attachMute(s, false)
	a.openDialog(s)
}

// loadBackupFile replaces the playlist with a backup, opened read-only. Use
// :w <file> to keep it.
func (a *App) loadBackupFile(backup storage.BackupMetadata) bool {
	if a.coord.IsDragging() {
		a.coord.CancelDrag()
	}

	store := storage.NewJSONStore(backup.FilePath)
	playlist, err := store.Load()
	if err != nil {
		a.SetStatus(fmt.Sprintf("Failed to load backup: %v", err))
		return false
	}
	if playlist.Title == "" {
		playlist.Title = a.playlist.Title
	}

	a.store = store
	a.playlist = playlist
	a.sessionID = backup.SessionID
	a.drops.Replace(playlist.Tracks)
	a.catalog.Replace(catalog.KindUnselected, savedSet, playlist.Unselected)
	a.refreshCatalogDialogs()
	a.list.Select(0)
	a.dirty = false

	a.SetStatus(fmt.Sprintf("Viewing backup from %s (read-only, :w <file> to keep)",
		backup.Timestamp.Format("2006-01-02 15:04:05")))
	return true
}
