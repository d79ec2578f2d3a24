package presentation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/events"
	"github.com/MacsInSpace/plex-tui/internal/usecases"
)

// Params carries the collaborators of the terminal UI. The services are nil
// when the catalog connection failed at startup; the UI then stays up in an
// inert state so the failure is readable instead of a crash loop.
type Params struct {
	Playlists  *usecases.PlaylistService
	Playback   *usecases.PlaybackService
	Search     *usecases.SearchService
	Bus        *events.Bus
	ServerName string
	StartupErr error
	Debug      bool
	Log        *zap.Logger
}

// UI is the tview terminal interface: playlist sidebar, search input and
// results, track view, now-playing bar, and status line. All widget
// mutations happen on the UI goroutine; workers deliver their results
// through the event bus and QueueUpdateDraw.
type UI struct {
	app          *tview.Application
	playlistView *tview.List
	trackView    *tview.TextView
	searchInput  *tview.InputField
	resultsView  *tview.List
	nowPlaying   *tview.TextView
	statusBar    *tview.TextView

	playlists  *usecases.PlaylistService
	playback   *usecases.PlaybackService
	search     *usecases.SearchService
	bus        *events.Bus
	serverName string
	startupErr error
	debug      bool
	log        *zap.Logger

	ctx context.Context

	mu              sync.Mutex
	playlistEntries []domain.Playlist
	selectedID      string
	searchResults   []*domain.Track
}

// NewUI builds the widget tree and wires the key bindings.
func NewUI(params Params) *UI {
	ui := &UI{
		app:        tview.NewApplication(),
		playlists:  params.Playlists,
		playback:   params.Playback,
		search:     params.Search,
		bus:        params.Bus,
		serverName: params.ServerName,
		startupErr: params.StartupErr,
		debug:      params.Debug,
		log:        params.Log,
	}

	ui.playlistView = tview.NewList().ShowSecondaryText(false)
	ui.playlistView.SetBorder(true).SetTitle(" Playlists [Enter=Load] ")
	ui.playlistView.SetHighlightFullLine(true)
	ui.playlistView.SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	ui.searchInput = tview.NewInputField()
	ui.searchInput.SetLabel(" Search: ")
	ui.searchInput.SetFieldWidth(0)
	ui.searchInput.SetFieldBackgroundColor(tcell.ColorDarkSlateGray)

	ui.resultsView = tview.NewList().ShowSecondaryText(false)
	ui.resultsView.SetBorder(true).SetTitle(" Results [Enter=Play] ")
	ui.resultsView.SetHighlightFullLine(true)
	ui.resultsView.SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	ui.trackView = tview.NewTextView()
	ui.trackView.SetBorder(true).SetTitle(" Tracks ")
	ui.trackView.SetScrollable(true)

	ui.nowPlaying = tview.NewTextView()
	ui.nowPlaying.SetBorder(true).SetTitle(" Now Playing ")
	ui.nowPlaying.SetText("Nothing playing")

	ui.statusBar = tview.NewTextView()
	if ui.connected() {
		ui.statusBar.SetText(fmt.Sprintf(" Connected to %s", ui.serverName))
	} else {
		ui.statusBar.SetText(fmt.Sprintf(" Not connected: %v", ui.startupErr))
	}

	searchBox := tview.NewFlex().
		AddItem(nil, 1, 0, false).
		AddItem(ui.searchInput, 0, 1, false).
		AddItem(nil, 1, 0, false)

	rightPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(searchBox, 3, 0, false).
		AddItem(ui.trackView, 0, 2, false).
		AddItem(ui.resultsView, 0, 1, false)

	mainFlex := tview.NewFlex().
		AddItem(ui.playlistView, 0, 1, true).
		AddItem(rightPanel, 0, 2, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainFlex, 0, 1, true).
		AddItem(ui.nowPlaying, 3, 0, false).
		AddItem(ui.statusBar, 1, 0, false)

	ui.app.SetRoot(root, true)
	ui.app.SetFocus(ui.playlistView)
	ui.setupHandlers()

	return ui
}

// Run starts the event loop, kicks off the initial playlist fetch, and
// blocks in the terminal UI until the user quits.
func (ui *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ui.ctx = ctx

	go ui.eventLoop(ctx)
	if ui.connected() {
		go ui.refreshPlaylists()
	}

	return ui.app.Run()
}

func (ui *UI) connected() bool {
	return ui.playlists != nil
}

func (ui *UI) setupHandlers() {
	ui.playlistView.SetSelectedFunc(func(idx int, _, _ string, _ rune) {
		ui.mu.Lock()
		if idx < 0 || idx >= len(ui.playlistEntries) {
			ui.mu.Unlock()
			return
		}
		playlist := ui.playlistEntries[idx]
		ui.selectedID = playlist.ID
		ui.mu.Unlock()

		go ui.loadPlaylist(playlist)
	})

	ui.resultsView.SetSelectedFunc(func(idx int, _, _ string, _ rune) {
		ui.mu.Lock()
		if idx < 0 || idx >= len(ui.searchResults) {
			ui.mu.Unlock()
			return
		}
		track := ui.searchResults[idx]
		ui.mu.Unlock()

		go ui.playSearchResult(track)
	})

	ui.searchInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		query := ui.searchInput.GetText()
		if query == "" {
			return
		}
		go ui.runSearch(query)
	})

	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let the search input receive normal typing; Esc leaves it.
		if ui.app.GetFocus() == ui.searchInput {
			switch event.Key() {
			case tcell.KeyEsc:
				ui.app.SetFocus(ui.playlistView)
				return nil
			case tcell.KeyCtrlC:
				ui.quit()
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyCtrlC:
			ui.quit()
			return nil
		case tcell.KeyTab:
			ui.cycleFocus()
			return nil
		}

		if !ui.connected() {
			if event.Rune() == 'q' {
				ui.quit()
				return nil
			}
			return event
		}

		switch event.Rune() {
		case 'q':
			ui.quit()
			return nil
		case 's':
			ui.app.SetFocus(ui.searchInput)
			return nil
		case ' ':
			go ui.togglePause()
			return nil
		case 'n':
			go ui.playNext()
			return nil
		case 'p':
			go ui.playPrevious()
			return nil
		case 'r':
			go ui.shuffle()
			return nil
		}
		return event
	})
}

func (ui *UI) cycleFocus() {
	order := []tview.Primitive{ui.playlistView, ui.trackView, ui.resultsView}
	focused := ui.app.GetFocus()
	for i, primitive := range order {
		if primitive == focused {
			ui.app.SetFocus(order[(i+1)%len(order)])
			return
		}
	}
	ui.app.SetFocus(ui.playlistView)
}

func (ui *UI) quit() {
	if ui.playback != nil {
		_ = ui.playback.Stop()
	}
	ui.app.Stop()
}

// eventLoop drains the bus and applies events on the UI goroutine.
func (ui *UI) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ui.bus.PlaylistsLoaded():
			if !ok {
				return
			}
			ui.app.QueueUpdateDraw(func() {
				ui.renderPlaylists(ev.Playlists)
			})
		case ev, ok := <-ui.bus.TracksLoaded():
			if !ok {
				return
			}
			ui.handleTracksLoaded(ev)
		case ev, ok := <-ui.bus.PlaybackStarted():
			if !ok {
				return
			}
			ui.app.QueueUpdateDraw(func() {
				ui.nowPlaying.SetText(FormatNowPlaying(ev.Artist, ev.Track.Title))
			})
		case ev, ok := <-ui.bus.SearchResults():
			if !ok {
				return
			}
			ui.app.QueueUpdateDraw(func() {
				ui.renderSearchResults(ev)
			})
		case ev, ok := <-ui.bus.Status():
			if !ok {
				return
			}
			ui.app.QueueUpdateDraw(func() {
				ui.statusBar.SetText(" " + ev.Message)
			})
		}
	}
}

// handleTracksLoaded commits a fetch result only if the playlist is still
// the selected one; a slower fetch finishing after the user moved on must
// not overwrite the newer selection.
func (ui *UI) handleTracksLoaded(ev domain.TracksLoadedEvent) {
	ui.mu.Lock()
	selected := ui.selectedID
	ui.mu.Unlock()

	if ev.PlaylistID != selected {
		ui.log.Debug("discarding stale track list",
			zap.String("playlist", ev.PlaylistID),
			zap.String("selected", selected),
		)
		return
	}

	ui.app.QueueUpdateDraw(func() {
		ui.trackView.SetText(FormatTrackView(ev.PlaylistTitle, ev.List, ui.debug))
		ui.trackView.ScrollToBeginning()
	})

	go ui.startPlayback(ev)
}

func (ui *UI) startPlayback(ev domain.TracksLoadedEvent) {
	out, err := ui.playback.LoadAndPlay(ui.ctx, usecases.LoadAndPlayInput{
		List: ev.List,
		// A cached replay keeps its order; only fresh fetches of large
		// lists get the variety shuffle.
		AutoShuffle: !ev.FromCache,
	})
	if err != nil {
		ui.showError("Playback failed", err)
		return
	}
	if out.Shuffled {
		ui.showStatus(fmt.Sprintf("Shuffled %d tracks", ev.List.Len()))
	}
}

func (ui *UI) refreshPlaylists() {
	ui.showStatus("Loading playlists...")
	if _, err := ui.playlists.LoadPlaylists(ui.ctx); err != nil {
		ui.showError("Could not load playlists", err)
	}
}

func (ui *UI) loadPlaylist(playlist domain.Playlist) {
	ui.showStatus(fmt.Sprintf("Loading %s...", playlist.Title))
	_, err := ui.playlists.LoadTracks(ui.ctx, usecases.LoadTracksInput{Playlist: playlist})
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			ui.showStatus(fmt.Sprintf("Could not load %s: every %s method failed",
				playlist.Title, fetchErr.Strategy))
			return
		}
		ui.showError("Could not load "+playlist.Title, err)
	}
}

func (ui *UI) runSearch(query string) {
	ui.showStatus(fmt.Sprintf("Searching for %q...", query))
	if _, err := ui.search.Search(ui.ctx, usecases.SearchInput{Query: query}); err != nil {
		if errors.Is(err, usecases.ErrNoResults) {
			ui.showStatus(fmt.Sprintf("No results for %q", query))
			return
		}
		ui.showError("Search failed", err)
	}
}

func (ui *UI) playSearchResult(track *domain.Track) {
	if err := ui.playback.PlayTrack(ui.ctx, track); err != nil {
		ui.showPlaybackError(err)
	}
}

func (ui *UI) togglePause() {
	err := ui.playback.TogglePause()
	switch {
	case errors.Is(err, usecases.ErrNothingPlaying):
		ui.showStatus("Nothing is playing")
	case errors.Is(err, domain.ErrPauseUnsupported):
		ui.showStatus("Pause is not supported on this platform")
	case err != nil:
		ui.showError("Could not toggle pause", err)
	}
}

func (ui *UI) playNext() {
	track, err := ui.playback.Next(ui.ctx)
	if err != nil {
		ui.showPlaybackError(err)
		return
	}
	if track == nil {
		ui.showStatus("End of track list")
	}
}

func (ui *UI) playPrevious() {
	track, err := ui.playback.Previous(ui.ctx)
	if err != nil {
		ui.showPlaybackError(err)
		return
	}
	if track == nil {
		ui.showStatus("Start of track list")
	}
}

func (ui *UI) shuffle() {
	if _, err := ui.playback.ShuffleAndRestart(ui.ctx); err != nil {
		if errors.Is(err, usecases.ErrNoTrackSelected) {
			ui.showStatus("No tracks loaded")
			return
		}
		ui.showPlaybackError(err)
	}
}

func (ui *UI) showPlaybackError(err error) {
	switch {
	case errors.Is(err, domain.ErrNoPlayableSource):
		ui.showStatus("Track has no playable stream")
	case errors.Is(err, domain.ErrPlayerUnavailable):
		ui.showStatus("Player not found: install ffplay")
	default:
		ui.showError("Playback failed", err)
	}
}

func (ui *UI) renderPlaylists(playlists []domain.Playlist) {
	ui.mu.Lock()
	ui.playlistEntries = playlists
	ui.mu.Unlock()

	ui.playlistView.Clear()
	for _, playlist := range playlists {
		ui.playlistView.AddItem(FormatPlaylistEntry(playlist), "", 0, nil)
	}
	ui.statusBar.SetText(fmt.Sprintf(" Connected to %s: %d playlists", ui.serverName, len(playlists)))
}

func (ui *UI) renderSearchResults(ev domain.SearchResultsEvent) {
	ui.mu.Lock()
	ui.searchResults = ev.Tracks
	ui.mu.Unlock()

	ui.resultsView.Clear()
	for _, track := range ev.Tracks {
		ui.resultsView.AddItem(FormatSearchResult(track), "", 0, nil)
	}
	ui.statusBar.SetText(fmt.Sprintf(" Found %d tracks for %q", len(ev.Tracks), ev.Query))
	if len(ev.Tracks) > 0 {
		ui.app.SetFocus(ui.resultsView)
	}
}

// showStatus routes a status-line update through the event bus so it is
// applied on the UI goroutine like every other worker result.
func (ui *UI) showStatus(message string) {
	ui.bus.PublishStatus(domain.StatusEvent{Message: message})
}

func (ui *UI) showError(message string, err error) {
	ui.log.Warn(message, zap.Error(err))
	ui.showStatus(fmt.Sprintf("%s: %v", message, err))
}
