package ui

import (
	"fmt"
	"path/filepath"

	"github.com/pstuifzand/tui-mixer/internal/storage"
)

// BackupSelector lists the backups of the current playlist, newest first
type BackupSelector struct {
	*Dialog
	backups []storage.BackupMetadata
}

// NewBackupSelector creates a selector over backups (oldest first, as
// storage returns them)
func NewBackupSelector(id string, backups []storage.BackupMetadata) *BackupSelector {
	b := &BackupSelector{
		Dialog: &Dialog{
			ID:      id,
			Title:   "Backups",
			Footer:  "enter open read-only · esc close",
			List:    NewListView(),
			Opacity: 1,
		},
	}
	for i := len(backups) - 1; i >= 0; i-- {
		b.backups = append(b.backups, backups[i])
	}

	rows := make([]Row, len(b.backups))
	for i, m := range b.backups {
		rows[i] = Row{
			ID:     m.FilePath,
			Text:   fmt.Sprintf("%s  %s", m.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(m.OriginalFile)),
			Detail: fmt.Sprintf("%d tracks", m.Tracks),
		}
	}
	b.List.SetRows(rows)
	return b
}

// Selected returns the backup under the cursor
func (b *BackupSelector) Selected() (storage.BackupMetadata, bool) {
	i := b.List.Selected()
	if i < 0 {
		return storage.BackupMetadata{}, false
	}
	return b.backups[i], true
}
