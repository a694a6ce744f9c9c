package app

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/config"
	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/drop"
	"github.com/pstuifzand/tui-mixer/internal/feedback"
	"github.com/pstuifzand/tui-mixer/internal/history"
	"github.com/pstuifzand/tui-mixer/internal/input"
	"github.com/pstuifzand/tui-mixer/internal/loop"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/socket"
	"github.com/pstuifzand/tui-mixer/internal/storage"
	"github.com/pstuifzand/tui-mixer/internal/theme"
	"github.com/pstuifzand/tui-mixer/internal/ui"
)

const (
	frameInterval    = 50 * time.Millisecond // ~20 FPS
	autoSaveInterval = 5 * time.Second
	statusHistory    = 50

	// savedSet is the catalog set holding the playlist's own unselected tracks
	savedSet = "saved"
)

// Scheduler is the loop the app drives: a loop.Loop when running, a
// looptest.Scheduler in tests
type Scheduler interface {
	loop.Scheduler
	RunTicks() int
	RunFrame() int
}

// Options configures an App. Nil fields get defaults.
type Options struct {
	FilePath  string
	Config    *config.Config
	Screen    tcell.Screen
	Scheduler Scheduler
	Socket    *socket.Server
	History   *history.Manager
	Backups   *storage.BackupManager
	Catalog   *catalog.Catalog
	Logger    *log.Logger
}

// App is the main application controller
type App struct {
	screen *ui.Screen
	cfg    *config.Config
	sched  Scheduler
	logger *log.Logger
	socket *socket.Server

	store     *storage.JSONStore
	playlist  *model.Playlist
	backups   *storage.BackupManager
	sessionID string

	coord    *drag.Coordinator
	drops    *drop.Coordinator
	catalog  *catalog.Catalog
	page     *ui.Page
	feedback *feedback.Controller

	// the playlist is a surface like the dialogs, always at the bottom
	main     *surface
	list     *ui.ListView
	keyboard *input.Keyboard
	dialogs  []*surface
	focus    string
	gesture  input.MouseGesture
	pressing *surface
	hover    hover
	grabFrom int
	grabID   string

	searchHistory *ui.History
	help          *ui.HelpScreen
	command       *ui.CommandMode
	status        *ui.Status
	keys          []KeyBinding

	dirty        bool
	autoSaveTime time.Time
	quit         bool
	debugMode    bool
}

// hover is where the pointer is during a drag
type hover struct {
	active bool
	x, y   int
}

// New creates an App for the playlist at opts.FilePath
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "[APP] ", log.LstdFlags|log.Lshortfile)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.New()
	}

	t := theme.LoadThemeOrDefault(opts.Config.Theme)
	var screen *ui.Screen
	var err error
	if opts.Screen != nil {
		screen, err = ui.NewScreenFrom(opts.Screen, t)
	} else {
		screen, err = ui.NewScreen(t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	screen.EnableMouse()

	store := storage.NewJSONStore(opts.FilePath)
	playlist, err := store.Load()
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}
	if playlist.Title == "" {
		playlist.Title = "Untitled"
	}

	a := &App{
		screen:    screen,
		cfg:       opts.Config,
		sched:     opts.Scheduler,
		logger:    opts.Logger,
		socket:    opts.Socket,
		store:     store,
		playlist:  playlist,
		backups:   opts.Backups,
		sessionID: generateSessionID(),
		catalog:   opts.Catalog,
		page:      ui.NewPage(),
		list:      ui.NewListView(),
		focus:     SurfacePlaylist,
		help:      ui.NewHelpScreen(),
		status:    ui.NewStatus(statusHistory, time.Now),
		grabFrom:  -1,
	}
	if a.sched == nil {
		a.sched = loop.New(a.wake)
	}
	a.autoSaveTime = a.sched.Now()

	if opts.History != nil {
		a.command = ui.NewCommandModeWithHistory(opts.History)
		a.searchHistory, err = ui.NewHistoryWithManager(opts.History, history.SearchFile)
		if err != nil {
			a.logger.Printf("search history: %v", err)
		}
	} else {
		a.command = ui.NewCommandMode()
	}
	if a.searchHistory == nil {
		a.searchHistory = ui.NewHistory(history.DefaultLimit)
	}
	a.command.SetCommands(commandNames)

	a.coord = drag.New(a.sched)
	a.drops = drop.New(a.coord, a.sched, playlist.Tracks, drop.Options{
		Container: a.list,
		OnChange:  a.onTracksChanged,
	})
	a.feedback = feedback.New(a.coord, a.sched, a.page, nil)
	a.catalog.Replace(catalog.KindUnselected, savedSet, playlist.Unselected)

	a.main = a.newListSurface(SurfacePlaylist, drag.SourcePlaylist, a.list, nil)
	a.keyboard = input.NewKeyboard(a.coord, input.KeyboardOptions{
		Source:      drag.SourcePlaylist,
		Origin:      SurfacePlaylist,
		Subject:     a.selectedSubject,
		OnDragStart: a.onGrab,
		OnMove:      a.onKeyboardMove,
		OnDragEnd:   a.onGrabEnd,
	})
	a.coord.Subscribe(a.onDragState)

	a.refreshRows()
	a.keyboard.Focus(a.list.Selected())

	a.keys = a.InitializeKeybindings()
	info := make([]ui.KeyBindingInfo, len(a.keys))
	for i := range a.keys {
		info[i] = &a.keys[i]
	}
	a.help.SetKeybindings(info)

	if a.store.ReadOnly {
		a.SetStatus("Viewing backup (read-only)")
	} else {
		a.SetStatus("Ready")
	}
	return a, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	// Create a channel for events
	eventChan := make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var messages <-chan socket.Message
	if a.socket != nil {
		messages = a.socket.Messages()
	}

	// Create a ticker for frames and auto-save checks
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.Step()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.HandleEvent(ev)
			a.sched.RunTicks()
		case msg := <-messages:
			a.HandleSocketMessage(msg)
		case <-ticker.C:
			a.Step()
			a.autoSave()
		}
	}

	return nil
}

// wake interrupts PollEvent so work deferred from a timer runs promptly
func (a *App) wake() {
	a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Step runs deferred work and frame callbacks, then paints
func (a *App) Step() {
	a.sched.RunTicks()
	a.sched.RunFrame()
	if err := a.coord.Guard("render", a.render); err != nil {
		a.showRecovery(err)
	}
}

func (a *App) autoSave() {
	if !a.dirty || a.store.ReadOnly || a.store.FilePath == "" || a.coord.IsDragging() {
		return
	}
	if a.sched.Now().Sub(a.autoSaveTime) <= autoSaveInterval {
		return
	}
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: " + err.Error())
	} else {
		a.SetStatus("Saved")
	}
}

// Close tears down every surface and closes the screen
func (a *App) Close() error {
	for len(a.dialogs) > 0 {
		a.closeDialog(a.dialogs[len(a.dialogs)-1].id)
	}
	a.keyboard.Dispose()
	a.main.dispose()
	a.feedback.Dispose()
	a.drops.Dispose()
	a.coord.CancelDrag()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// HandleEvent processes one terminal event inside the recovery boundary
func (a *App) HandleEvent(ev tcell.Event) {
	if err := a.coord.Guard("event", func() { a.handleRawEvent(ev) }); err != nil {
		a.showRecovery(err)
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()
	case *tcell.EventMouse:
		a.layout()
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventInterrupt:
		// deferred work runs after every event
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	// Handle command mode input
	if a.command.IsActive() {
		cmd, done := a.command.HandleKey(ev)
		if done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.dialog(SurfaceRecovery) != nil {
		a.handleRecoveryKey(ev)
		return
	}

	// Handle help screen
	if a.help.IsVisible() {
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q':
			a.help.Toggle()
		case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
			a.help.Scroll(1)
		case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
			a.help.Scroll(-1)
		}
		return
	}

	// Escape first drops whatever the mouse is dragging
	if ev.Key() == tcell.KeyEscape && a.pressing != nil && a.coord.IsDragging() {
		a.cancelPointerDrag()
		return
	}

	if s := a.focused(); s != nil && s != a.main {
		a.handleDialogKey(s, ev)
		return
	}
	a.handleKeypress(ev)
}

// Save writes the playlist, backing up the previous state first
func (a *App) Save() error {
	if a.store.FilePath == "" {
		return errors.New("no file name")
	}
	a.syncPlaylist()
	if a.backups != nil && !a.store.ReadOnly && a.store.FileExists() {
		if _, err := a.backups.CreateBackup(a.playlist, a.store.FilePath, a.sessionID); err != nil {
			a.logger.Printf("backup failed: %v", err)
		}
	}
	if err := a.store.Save(a.playlist); err != nil {
		return err
	}
	a.dirty = false
	a.autoSaveTime = a.sched.Now()
	return nil
}

// syncPlaylist copies the drop coordinator's order and the saved unselected
// set back into the document
func (a *App) syncPlaylist() {
	a.playlist.Tracks = a.drops.Tracks()
	a.playlist.Unselected = a.playlist.Unselected[:0]
	for _, r := range a.catalog.Tracks(catalog.KindUnselected) {
		a.playlist.Unselected = append(a.playlist.Unselected, r.Track)
	}
}

// Playlist returns the document as it would be saved
func (a *App) Playlist() *model.Playlist {
	a.syncPlaylist()
	return a.playlist
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.status.Set(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

func (a *App) onTracksChanged(tracks []model.Track) {
	a.dirty = true
	a.refreshRows()
}

// refreshRows rebuilds the playlist rows from the drop coordinator
func (a *App) refreshRows() {
	draggedID := ""
	if item, ok := a.coord.DraggedItem(); ok && item.Source() == drag.SourcePlaylist {
		draggedID = item.ID
	}
	a.list.SetRows(ui.TrackRows(a.drops.Tracks(), a.rowRenderer(), draggedID))
}

func (a *App) rowRenderer() ui.RenderFunc {
	if a.cfg.Get("album") != "true" {
		return ui.DefaultRender
	}
	return func(track model.Track, index int, dragged bool) string {
		if track.Album == "" {
			return track.Label()
		}
		return track.Label() + " [" + track.Album + "]"
	}
}

// generateSessionID creates a random 8-character session ID for backup naming
func generateSessionID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
