package app

import (
	"fmt"

	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/socket"
)

// HandleSocketMessage processes one socket message inside the recovery
// boundary
func (a *App) HandleSocketMessage(msg socket.Message) {
	if err := a.coord.Guard("socket", func() { a.handleSocketMessage(msg) }); err != nil {
		a.showRecovery(err)
	}
}

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	a.logger.Printf("Received socket message: command=%s, kind=%s, label=%s, tracks=%d",
		msg.Command, msg.Kind, msg.Label, len(msg.Tracks))

	switch msg.Command {
	case socket.CommandAddTracks:
		a.handleAddTracksCommand(msg)
	case socket.CommandList:
		a.respond(msg, &socket.Response{
			Success: true,
			Message: fmt.Sprintf("%s: %d tracks", a.playlist.Title, a.drops.Len()),
			Lines:   a.trackLines(),
		})
	default:
		a.logger.Printf("Unknown socket command: %s", msg.Command)
		a.respond(msg, &socket.Response{Message: "Unknown command " + msg.Command})
	}
}

// handleAddTracksCommand merges pushed tracks into a catalog set
func (a *App) handleAddTracksCommand(msg socket.Message) {
	kind, err := catalog.ParseKind(msg.Kind)
	if err != nil {
		a.logger.Printf("add_tracks: %v", err)
		a.SetStatus("Error: " + err.Error())
		return
	}

	label := msg.Label
	if label == "" {
		label = "socket"
	}
	tracks := make([]model.Track, 0, len(msg.Tracks))
	for _, wire := range msg.Tracks {
		t := wire.Track()
		if t.Title == "" {
			a.logger.Printf("add_tracks: skipping track without title %+v", wire)
			continue
		}
		tracks = append(tracks, t)
	}

	added := a.catalog.Add(kind, label, msg.Query, tracks)
	if kind == catalog.KindUnselected && label == savedSet && added > 0 {
		a.dirty = true
	}
	a.refreshCatalogDialogs()
	a.SetStatus(fmt.Sprintf("Added %d tracks to %s (%s)", added, label, kind))
}

func (a *App) respond(msg socket.Message, resp *socket.Response) {
	if msg.ResponseChan != nil {
		msg.ResponseChan <- resp
	}
}

// trackLines is the playlist as numbered text lines
func (a *App) trackLines() []string {
	tracks := a.drops.Tracks()
	lines := make([]string, len(tracks))
	for i, t := range tracks {
		lines[i] = fmt.Sprintf("%3d. %s", i+1, t.Label())
		if d := t.DurationString(); d != "" {
			lines[i] += " (" + d + ")"
		}
	}
	return lines
}
