package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// LoadTracksInput contains the input for the LoadTracks use case.
type LoadTracksInput struct {
	Playlist domain.Playlist
}

// LoadTracksOutput contains the result of the LoadTracks use case.
type LoadTracksOutput struct {
	List      *domain.TrackList
	FromCache bool
}

// PlaylistService drives the track-resolution pipeline: cache lookup, then
// on a miss strategy selection, fetch execution with fallbacks, and cache
// population.
type PlaylistService struct {
	catalog   ports.Catalog
	cache     ports.TrackListCache
	selector  *StrategySelector
	fetcher   *FetchService
	publisher ports.EventPublisher
	log       *zap.Logger
}

// NewPlaylistService creates a new PlaylistService. publisher may be nil.
func NewPlaylistService(
	catalog ports.Catalog,
	cache ports.TrackListCache,
	selector *StrategySelector,
	fetcher *FetchService,
	publisher ports.EventPublisher,
	log *zap.Logger,
) *PlaylistService {
	return &PlaylistService{
		catalog:   catalog,
		cache:     cache,
		selector:  selector,
		fetcher:   fetcher,
		publisher: publisher,
		log:       log,
	}
}

// LoadPlaylists lists the server's playlists, skipping entries whose
// identity could not be read.
func (s *PlaylistService) LoadPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	playlists, err := s.catalog.Playlists(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.Playlist, 0, len(playlists))
	for _, p := range playlists {
		if p.ID == "" {
			continue
		}
		kept = append(kept, p)
	}

	s.log.Info("loaded playlists", zap.Int("count", len(kept)))
	if s.publisher != nil {
		s.publisher.PublishPlaylistsLoaded(domain.PlaylistsLoadedEvent{Playlists: kept})
	}
	return kept, nil
}

// LoadTracks returns the playlist's tracks, serving from cache when
// possible. A cache hit bypasses strategy selection and fetch execution
// entirely and is the only instant path. On a miss the fetched list is
// cached before being returned; a failed fetch caches nothing.
func (s *PlaylistService) LoadTracks(
	ctx context.Context,
	input LoadTracksInput,
) (*LoadTracksOutput, error) {
	playlist := input.Playlist

	if list, ok := s.cache.Get(playlist.ID); ok {
		s.log.Debug("serving tracks from cache", zap.String("playlist", playlist.ID))
		s.publishLoaded(playlist, list, true)
		return &LoadTracksOutput{List: list, FromCache: true}, nil
	}

	_, hasLibrary := s.catalog.MusicLibrary()
	strategy := s.selector.Select(playlist, hasLibrary)
	limit := s.selector.Cap(strategy)
	apiLimit := s.selector.APILimit(limit)

	list, err := s.fetcher.Fetch(ctx, playlist, strategy, limit, apiLimit)
	if err != nil {
		s.log.Warn("fetch failed",
			zap.String("playlist", playlist.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.cache.Put(playlist.ID, list)
	s.publishLoaded(playlist, list, false)
	return &LoadTracksOutput{List: list}, nil
}

// ClearCache drops the cached track list for the playlist, forcing the next
// load to refetch.
func (s *PlaylistService) ClearCache(playlistID string) {
	s.cache.Clear(playlistID)
}

func (s *PlaylistService) publishLoaded(
	playlist domain.Playlist,
	list *domain.TrackList,
	fromCache bool,
) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishTracksLoaded(domain.TracksLoadedEvent{
		PlaylistID:    playlist.ID,
		PlaylistTitle: playlist.Title,
		List:          list,
		FromCache:     fromCache,
	})
}
