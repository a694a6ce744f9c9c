package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/config"
	"github.com/pstuifzand/tui-mixer/internal/input"
	"github.com/pstuifzand/tui-mixer/internal/loop/looptest"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/socket"
	"github.com/pstuifzand/tui-mixer/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "save",
			expected: []string{"save"},
		},
		{
			name:     "command with arguments",
			input:    "open file.txt",
			expected: []string{"open", "file.txt"},
		},
		{
			name:     "double quoted string",
			input:    `export markdown "my file.md"`,
			expected: []string{"export", "markdown", "my file.md"},
		},
		{
			name:     "single quoted string",
			input:    "export markdown 'my file.md'",
			expected: []string{"export", "markdown", "my file.md"},
		},
		{
			name:     "mixed quotes",
			input:    `title "Hello World" and more`,
			expected: []string{"title", "Hello World", "and", "more"},
		},
		{
			name:     "escaped quotes",
			input:    `attr add key "value with \"quotes\""`,
			expected: []string{"attr", "add", "key", `value with "quotes"`},
		},
		{
			name:     "escaped backslash",
			input:    `path "C:\\Users\\test"`,
			expected: []string{"path", `C:\Users\test`},
		},
		{
			name:     "multiple spaces",
			input:    "command    with    spaces",
			expected: []string{"command", "with", "spaces"},
		},
		{
			name:     "tabs and spaces",
			input:    "command\twith\t  mixed",
			expected: []string{"command", "with", "mixed"},
		},
		{
			name:     "empty quoted string",
			input:    `command ""`,
			expected: []string{"command", ""},
		},
		{
			name:     "quoted string with special characters",
			input:    `attr add url "https://example.com/path?query=value&other=123"`,
			expected: []string{"attr", "add", "url", "https://example.com/path?query=value&other=123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommand(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d parts, got %d. Input: %q", len(tt.expected), len(result), tt.input)
				return
			}
			for i, part := range result {
				if part != tt.expected[i] {
					t.Errorf("Part %d: expected %q, got %q. Input: %q", i, tt.expected[i], part, tt.input)
				}
			}
		})
	}
}

// fixture is an App on a simulation screen, driven by a manual scheduler.
// The playlist list starts at row 1, so track i is drawn at y = 1+i.
type fixture struct {
	app   *App
	sim   tcell.SimulationScreen
	sched *looptest.Scheduler
	path  string
	dir   string
}

func newFixture(t *testing.T, titles ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mix.json")

	playlist := model.NewPlaylist("Mix")
	for i, title := range titles {
		playlist.Tracks = append(playlist.Tracks, model.Track{
			ID:       fmt.Sprintf("t%d", i),
			Artist:   "Artist",
			Title:    title,
			Duration: 3 * time.Minute,
		})
	}
	require.NoError(t, storage.NewJSONStore(path).Save(playlist))

	backups, err := storage.NewBackupManagerIn(filepath.Join(dir, "backups"))
	require.NoError(t, err)

	sim := tcell.NewSimulationScreen("UTF-8")
	sched := looptest.New()
	app, err := New(Options{
		FilePath:  path,
		Config:    config.Default(),
		Screen:    sim,
		Scheduler: sched,
		Backups:   backups,
		Logger:    log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	sim.SetSize(60, 20)
	t.Cleanup(func() { app.Close() })

	f := &fixture{app: app, sim: sim, sched: sched, path: path, dir: dir}
	app.HandleEvent(tcell.NewEventResize(60, 20))
	app.Step()
	return f
}

func (f *fixture) mouse(x, y int, buttons tcell.ButtonMask) {
	f.app.HandleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

// drag presses at (x0,y0), moves through the points and releases at the last
func (f *fixture) drag(x0, y0 int, points ...[2]int) {
	f.mouse(x0, y0, tcell.Button1)
	for _, p := range points {
		f.mouse(p[0], p[1], tcell.Button1)
	}
	last := points[len(points)-1]
	f.mouse(last[0], last[1], tcell.ButtonNone)
}

func (f *fixture) key(k tcell.Key) {
	f.app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (f *fixture) runes(s string) {
	for _, r := range s {
		f.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// command types a command line and presses enter
func (f *fixture) command(cmd string) {
	f.runes(":" + cmd)
	f.key(tcell.KeyEnter)
}

func (f *fixture) titles() []string {
	var titles []string
	for _, t := range f.app.drops.Tracks() {
		titles = append(titles, t.Title)
	}
	return titles
}

func (f *fixture) cell(x, y int) rune {
	cells, w, _ := f.sim.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func (f *fixture) line(y int) string {
	cells, w, _ := f.sim.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			line = append(line, r[0])
		}
	}
	return string(line)
}

func TestPointerDragReordersPlaylist(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")

	f.mouse(3, 1, tcell.Button1)
	f.mouse(3, 2, tcell.Button1)
	require.True(t, f.app.coord.IsDragging())
	assert.True(t, f.app.coord.IsCurrentlyDragged("t0"))

	f.mouse(3, 4, tcell.Button1)
	f.app.Step()
	assert.Equal(t, '▶', f.cell(0, 4), "drop marker before D")
	assert.Contains(t, f.line(19), "DRAG")

	f.mouse(3, 4, tcell.ButtonNone)
	assert.Equal(t, []string{"B", "C", "A", "D", "E"}, f.titles())
	// the drag is cleared on the next tick, not during the drop
	assert.True(t, f.app.coord.IsDragging())

	f.app.Step()
	assert.False(t, f.app.coord.IsDragging())
	assert.True(t, f.app.dirty)
	row, ok := f.app.list.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "t0", row.ID)
}

func TestPointerDropOnOwnSlotIsNoOp(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	f.drag(3, 2, [2]int{3, 3}, [2]int{3, 2})
	f.app.Step()

	assert.Equal(t, []string{"A", "B", "C"}, f.titles())
	assert.False(t, f.app.coord.IsDragging())
	assert.False(t, f.app.dirty)
	assert.Equal(t, "Nothing dropped", f.app.status.Current())
}

func TestPointerDropOutsideListChangesNothing(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	f.drag(3, 1, [2]int{3, 2}, [2]int{3, 0})
	f.app.Step()

	assert.Equal(t, []string{"A", "B", "C"}, f.titles())
	assert.False(t, f.app.coord.IsDragging())
	assert.Equal(t, "Nothing dropped", f.app.status.Current())
}

func TestEscapeCancelsPointerDrag(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	f.mouse(3, 1, tcell.Button1)
	f.mouse(3, 3, tcell.Button1)
	require.True(t, f.app.coord.IsDragging())

	f.key(tcell.KeyEscape)
	assert.False(t, f.app.coord.IsDragging())
	assert.Equal(t, "Drag cancelled", f.app.status.Current())

	f.mouse(3, 3, tcell.ButtonNone)
	f.app.Step()
	assert.Equal(t, []string{"A", "B", "C"}, f.titles())
}

func TestSearchDragInsertsThroughMutedDialog(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")
	f.app.catalog.Add(catalog.KindSearch, "radio", "zed", []model.Track{
		{ID: "s1", Artist: "Zed", Title: "S"},
	})

	f.runes("/")
	s := f.app.dialog(SurfaceSearch)
	require.NotNil(t, s)
	assert.Equal(t, SurfaceSearch, f.app.focus)

	// the dialog is the right half of the screen; its first result is at y=4
	f.mouse(35, 4, tcell.Button1)
	f.mouse(35, 5, tcell.Button1)
	require.True(t, f.app.coord.IsDragging())
	item, _ := f.app.coord.DraggedItem()
	assert.Equal(t, SurfaceSearch, item.Origin)
	assert.True(t, s.mute.Muted(), "origin dialog mutes over the playlist")
	assert.False(t, s.active())

	// (40,3) is inside the muted dialog and over the playlist row of C
	f.mouse(40, 3, tcell.Button1)
	f.mouse(40, 3, tcell.ButtonNone)
	assert.Equal(t, []string{"A", "B", "S", "C", "D", "E"}, f.titles())

	f.app.Step()
	assert.False(t, f.app.coord.IsDragging())
	assert.False(t, s.mute.Muted())
	// search results are copied, so the catalog keeps the track
	assert.Equal(t, 1, f.app.catalog.Len(catalog.KindSearch))
}

func TestSearchTrackAlreadyInPlaylistIsCopied(t *testing.T) {
	f := newFixture(t, "A", "B")
	f.app.catalog.Add(catalog.KindSearch, "radio", "", []model.Track{
		{ID: "t0", Artist: "Artist", Title: "A"},
	})

	f.runes("/")
	f.drag(35, 4, [2]int{35, 5}, [2]int{5, 3})
	f.app.Step()

	tracks := f.app.drops.Tracks()
	require.Len(t, tracks, 3)
	assert.Equal(t, "A", tracks[2].Title)
	assert.NotEqual(t, "t0", tracks[2].ID)
}

func TestDropOnUnselectedRemovesFromPlaylist(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	f.runes("u")
	s := f.app.dialog(SurfaceUnselected)
	require.NotNil(t, s)

	f.mouse(3, 1, tcell.Button1)
	f.mouse(3, 2, tcell.Button1)
	require.True(t, f.app.coord.IsDragging())
	assert.False(t, s.mute.Muted(), "unselected stays a drop target for playlist drags")

	f.mouse(40, 6, tcell.Button1)
	f.mouse(40, 6, tcell.ButtonNone)
	f.app.Step()

	assert.Equal(t, []string{"B", "C"}, f.titles())
	assert.Equal(t, 1, s.catalog.List.Len())
	assert.Equal(t, []model.Track{{ID: "t0", Artist: "Artist", Title: "A", Duration: 3 * time.Minute}},
		f.app.Playlist().Unselected)
}

func TestUnselectedDragBackIntoPlaylist(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	f.runes("d") // cursor is on A
	require.Equal(t, []string{"B", "C"}, f.titles())

	f.runes("u")
	f.drag(35, 2, [2]int{35, 3}, [2]int{5, 1})
	f.app.Step()

	assert.Equal(t, []string{"A", "B", "C"}, f.titles())
	assert.Equal(t, 0, f.app.catalog.Len(catalog.KindUnselected))
}

func TestKeyboardGrabMovesAndDrops(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")

	f.runes(" ")
	require.Equal(t, input.KeyboardGrabbed, f.app.keyboard.State())
	f.key(tcell.KeyDown)
	f.key(tcell.KeyDown)
	f.app.Step()
	assert.Equal(t, []string{"B", "C", "A", "D", "E"}, f.titles())
	assert.Contains(t, f.line(19), "GRAB")

	f.runes(" ")
	f.app.Step()
	assert.False(t, f.app.coord.IsDragging())
	assert.Equal(t, "Dropped", f.app.status.Current())
	assert.Equal(t, 2, f.app.list.Selected())
}

func TestKeyboardGrabCancelRestoresPosition(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D")
	f.runes("j") // cursor on B

	f.runes(" ")
	f.key(tcell.KeyDown)
	f.key(tcell.KeyDown)
	require.Equal(t, []string{"A", "C", "D", "B"}, f.titles())

	f.key(tcell.KeyEscape)
	f.app.Step()
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.titles())
	assert.False(t, f.app.coord.IsDragging())
	assert.Equal(t, "Move cancelled", f.app.status.Current())
	assert.Equal(t, 1, f.app.list.Selected())
}

func TestKeyboardGrabKeepsCursorOnGrabbedTrack(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")

	f.runes(" ")
	f.key(tcell.KeyDown)
	f.key(tcell.KeyDown)
	require.Equal(t, []string{"B", "C", "A", "D", "E"}, f.titles())

	f.runes("j")
	assert.Equal(t, 2, f.app.list.Selected(), "navigation is ignored during a grab")
	assert.Contains(t, f.app.status.Current(), "first")

	f.key(tcell.KeyEscape)
	f.app.Step()
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, f.titles())
	assert.Equal(t, 0, f.app.list.Selected())
	assert.False(t, f.app.coord.IsDragging())
}

func TestKeyboardGrabReleasesAfterClickElsewhere(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")

	f.runes(" ")
	f.key(tcell.KeyDown)
	require.Equal(t, []string{"B", "A", "C", "D", "E"}, f.titles())

	f.mouse(3, 4, tcell.Button1)
	f.mouse(3, 4, tcell.ButtonNone)
	f.app.Step()
	assert.Equal(t, 1, f.app.list.Selected())

	f.runes(" ")
	f.app.Step()
	assert.False(t, f.app.coord.IsDragging())
	assert.NotEqual(t, input.KeyboardGrabbed, f.app.keyboard.State())
	assert.Equal(t, []string{"B", "A", "C", "D", "E"}, f.titles())
	assert.Equal(t, "Dropped", f.app.status.Current())
}

func TestShiftWithoutGrab(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	f.runes("J")
	f.app.Step()
	assert.Equal(t, []string{"B", "A", "C"}, f.titles())
	assert.False(t, f.app.coord.IsDragging())

	f.runes("K")
	f.runes("K") // already at the top
	assert.Equal(t, []string{"A", "B", "C"}, f.titles())
}

func TestLongPressDrag(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")
	f.command("set pointer_mode long-press")
	require.True(t, f.app.longPress())

	f.mouse(3, 1, tcell.Button1)
	assert.False(t, f.app.coord.IsDragging(), "no drag before the delay")

	f.sched.Advance(300 * time.Millisecond)
	require.True(t, f.app.coord.IsDragging())
	assert.Equal(t, input.TouchLongPress, f.app.main.touch.State())

	f.mouse(3, 4, tcell.Button1)
	f.mouse(3, 4, tcell.ButtonNone)
	f.app.Step()

	assert.Equal(t, []string{"B", "C", "A", "D", "E"}, f.titles())
	assert.False(t, f.app.coord.IsDragging())
}

func TestLongPressMovedAwayDoesNotDrag(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D", "E")
	f.command("set pointer_mode long-press")

	f.mouse(3, 1, tcell.Button1)
	f.mouse(3, 4, tcell.Button1)
	f.sched.Advance(time.Second)
	assert.False(t, f.app.coord.IsDragging())

	f.mouse(3, 4, tcell.ButtonNone)
	f.app.Step()
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, f.titles())
}

func TestPanicShowsRecoveryAndCancelsDrag(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	f.app.keys = append(f.app.keys, KeyBinding{
		Keys:    []string{"x"},
		Handler: func(*App) { panic("boom") },
	})

	f.mouse(3, 1, tcell.Button1)
	f.mouse(3, 3, tcell.Button1)
	require.True(t, f.app.coord.IsDragging())

	f.runes("x")
	assert.False(t, f.app.coord.IsDragging())
	require.NotNil(t, f.app.dialog(SurfaceRecovery))
	assert.Equal(t, "event: boom", f.app.dialog(SurfaceRecovery).dialog.Lines[0])

	// the release of the abandoned gesture is ignored
	f.mouse(3, 3, tcell.ButtonNone)
	assert.Equal(t, []string{"A", "B", "C"}, f.titles())

	f.runes("r")
	assert.Nil(t, f.app.dialog(SurfaceRecovery))
	assert.Equal(t, "Recovered", f.app.status.Current())

	// the app is usable again
	f.drag(3, 1, [2]int{3, 2}, [2]int{3, 4})
	f.app.Step()
	assert.Equal(t, []string{"B", "C", "A"}, f.titles())
}

func TestSocketAddTracksAndList(t *testing.T) {
	f := newFixture(t, "A", "B")

	f.app.HandleSocketMessage(socket.Message{
		Command: socket.CommandAddTracks,
		Label:   "radio",
		Tracks: []socket.TrackSpec{
			{Text: "Zed - Song"},
			{Artist: "Nobody"},
		},
	})
	results := f.app.catalog.Tracks(catalog.KindSearch)
	require.Len(t, results, 1)
	assert.Equal(t, "Zed - Song", results[0].Track.Label())
	assert.Equal(t, "radio", results[0].Set)

	responses := make(chan *socket.Response, 1)
	f.app.HandleSocketMessage(socket.Message{Command: socket.CommandList, ResponseChan: responses})
	resp := <-responses
	assert.True(t, resp.Success)
	assert.Equal(t, "Mix: 2 tracks", resp.Message)
	assert.Equal(t, []string{"  1. Artist - A (3:00)", "  2. Artist - B (3:00)"}, resp.Lines)

	f.app.HandleSocketMessage(socket.Message{Command: "bogus", ResponseChan: responses})
	resp = <-responses
	assert.False(t, resp.Success)
}

func TestSocketPanicCancelsDrag(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	f.mouse(3, 1, tcell.Button1)
	f.mouse(3, 3, tcell.Button1)
	require.True(t, f.app.coord.IsDragging())

	// answering on a closed channel panics inside the handler
	responses := make(chan *socket.Response)
	close(responses)
	f.app.HandleSocketMessage(socket.Message{Command: socket.CommandList, ResponseChan: responses})

	assert.False(t, f.app.coord.IsDragging())
	require.NotNil(t, f.app.dialog(SurfaceRecovery))
	assert.Contains(t, f.app.dialog(SurfaceRecovery).dialog.Lines[0], "socket: ")

	f.mouse(3, 3, tcell.ButtonNone)
	assert.Equal(t, []string{"A", "B", "C"}, f.titles())
}

func TestSaveWritesFileAndBackup(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	f.runes("J")
	require.True(t, f.app.dirty)

	f.command("w")
	assert.False(t, f.app.dirty)

	saved, err := storage.NewJSONStore(f.path).Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", saved.Tracks[0].ID)

	backups, err := f.app.backups.FindBackupsForFile(f.path)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, 3, backups[0].Tracks)
}

func TestWriteAsSwitchesFile(t *testing.T) {
	f := newFixture(t, "A")
	other := filepath.Join(f.dir, "other.json")

	f.command("w " + other)
	assert.Equal(t, other, f.app.store.FilePath)
	_, err := os.Stat(other)
	assert.NoError(t, err)
}

func TestQuitRefusesUnsavedChanges(t *testing.T) {
	f := newFixture(t, "A", "B")
	f.runes("J")

	f.command("q")
	assert.False(t, f.app.quit)
	assert.Contains(t, f.app.status.Current(), "Unsaved changes")

	f.command("q!")
	assert.True(t, f.app.quit)
}

func TestSetCommand(t *testing.T) {
	f := newFixture(t, "A")

	f.command("set pointer_mode sideways")
	assert.Equal(t, "pointer_mode must be drag or long-press", f.app.status.Current())
	assert.False(t, f.app.longPress())

	f.command("set album true")
	assert.Equal(t, "true", f.app.cfg.Get("album"))
}

func TestRenderShowsHeaderAndStatus(t *testing.T) {
	f := newFixture(t, "A", "B")
	f.app.Step()

	assert.Contains(t, f.line(0), "Mix")
	assert.Contains(t, f.line(0), "2 tracks")
	assert.Contains(t, f.line(0), "6:00")
	assert.Contains(t, f.line(1), "Artist - A")
	assert.Contains(t, f.line(19), "NORMAL")
	assert.Contains(t, f.line(19), "Ready")
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "3:05", formatTotal(3*time.Minute+5*time.Second))
	assert.Equal(t, "1:02:03", formatTotal(time.Hour+2*time.Minute+3*time.Second))
}

func TestImportAndExportCommands(t *testing.T) {
	f := newFixture(t, "A")
	list := filepath.Join(f.dir, "picks.txt")
	require.NoError(t, os.WriteFile(list, []byte("Can - Vitamin C (3:32)\nNeu! - Hallogallo\n"), 0o644))

	f.command("import " + list)
	results := f.app.catalog.Tracks(catalog.KindSearch)
	require.Len(t, results, 2)
	assert.Equal(t, "picks.txt", results[0].Set)

	f.command("import " + list + " unselected")
	assert.Equal(t, 2, f.app.catalog.Len(catalog.KindUnselected))
	assert.True(t, f.app.dirty)

	out := filepath.Join(f.dir, "mix.md")
	f.command("export " + out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1. Artist - A (3:00)")
	assert.Contains(t, string(data), "- Neu! - Hallogallo")
}
