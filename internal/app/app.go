package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/events"
	"github.com/MacsInSpace/plex-tui/internal/infrastructure"
	"github.com/MacsInSpace/plex-tui/internal/infrastructure/ffplay"
	"github.com/MacsInSpace/plex-tui/internal/infrastructure/plex"
	"github.com/MacsInSpace/plex-tui/internal/ports"
	"github.com/MacsInSpace/plex-tui/internal/presentation"
	"github.com/MacsInSpace/plex-tui/internal/usecases"
)

// App wires configuration, adapters, services, and the terminal UI.
type App struct {
	cfg *Config
	log *zap.Logger
}

// New creates the application from loaded configuration.
func New(cfg *Config, log *zap.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Run connects to the media server, builds the service graph, and hands
// control to the terminal UI until the user quits. A failed connection does
// not abort: the UI comes up inert with the error on the status line.
func (a *App) Run(ctx context.Context) error {
	bus := events.NewBus(events.DefaultEventBufferSize, a.log)
	defer bus.Close()

	params := presentation.Params{
		Bus:   bus,
		Debug: a.cfg.Debug,
		Log:   a.log,
	}

	client := plex.NewClient(a.cfg.PlexBaseURL, a.cfg.PlexToken, a.cfg.HTTPTimeout, a.log)
	session, err := client.Connect(ctx)
	if err != nil {
		a.log.Error("catalog connection failed", zap.Error(err))
		params.StartupErr = err
	} else {
		params.ServerName = session.ServerName()

		var library ports.MusicLibrary
		if lib, ok := session.MusicLibrary(); ok {
			library = lib
		}

		selector := usecases.NewStrategySelector(a.cfg.Limits())
		fetcher := usecases.NewFetchService(library, a.log)
		cache := infrastructure.NewMemoryCache()
		resolver := usecases.NewArtistResolver(a.log)
		player := ffplay.NewPlayer(a.cfg.PlayerCommand, a.log)

		params.Playlists = usecases.NewPlaylistService(
			session, cache, selector, fetcher, bus, a.log)
		params.Playback = usecases.NewPlaybackService(
			player, resolver, domain.NewSequencer(), bus, a.cfg.ShuffleThreshold, a.log)
		params.Search = usecases.NewSearchService(
			session, bus, a.cfg.SearchLimit, a.log)
	}

	ui := presentation.NewUI(params)
	return ui.Run(ctx)
}
