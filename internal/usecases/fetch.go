package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// errNoMusicLibrary fails library-backed fetch methods when no artist-kind
// section exists, pushing the chain toward direct enumeration.
var errNoMusicLibrary = errors.New("no music library section available")

// fetchMethod is one step of a strategy's fallback chain. It returns the
// collected tracks plus the dispatch and collect phase durations.
type fetchMethod struct {
	name string
	run  func(ctx context.Context, playlist domain.Playlist, limit, apiLimit int) ([]*domain.Track, time.Duration, time.Duration, error)
}

// FetchService executes a selected fetch strategy with a strict client-side
// result cap. Each strategy is an ordered chain of methods tried in
// sequence; any method error moves to the next, and only exhaustion of the
// whole chain surfaces as a FetchError carrying the last cause.
type FetchService struct {
	library ports.MusicLibrary // nil when no artist-kind section was found
	log     *zap.Logger
}

// NewFetchService creates a FetchService. library may be nil; library-backed
// methods then fail over to direct enumeration.
func NewFetchService(library ports.MusicLibrary, log *zap.Logger) *FetchService {
	return &FetchService{
		library: library,
		log:     log,
	}
}

// Fetch runs the strategy's fallback chain and returns the resulting track
// list, never longer than limit. apiLimit is the server-side limit passed to
// remote calls. Timing phases are recorded on the result for diagnostics
// and never affect control flow.
func (s *FetchService) Fetch(
	ctx context.Context,
	playlist domain.Playlist,
	strategy domain.Strategy,
	limit, apiLimit int,
) (*domain.TrackList, error) {
	start := time.Now()
	methods := s.methodsFor(strategy)

	var lastErr error
	for _, method := range methods {
		setup := time.Since(start)
		tracks, dispatch, materialize, err := method.run(ctx, playlist, limit, apiLimit)
		if err != nil {
			lastErr = err
			s.log.Debug("fetch method failed, trying next",
				zap.String("playlist", playlist.ID),
				zap.String("strategy", strategy.String()),
				zap.String("method", method.name),
				zap.Error(err),
			)
			continue
		}

		list := &domain.TrackList{
			Tracks:           tracks,
			Strategy:         strategy,
			DeclaredCount:    playlist.DeclaredCount,
			HasDeclaredCount: playlist.HasDeclaredCount,
			Truncated:        playlist.HasDeclaredCount && playlist.DeclaredCount > len(tracks),
			Timings: domain.Timings{
				Setup:    setup,
				Dispatch: dispatch,
				Collect:  materialize,
			},
		}
		s.log.Info("fetched tracks",
			zap.String("playlist", playlist.ID),
			zap.String("strategy", strategy.String()),
			zap.String("method", method.name),
			zap.Int("count", len(tracks)),
			zap.Bool("truncated", list.Truncated),
			zap.Duration("total", list.Timings.Total()),
		)
		return list, nil
	}

	return nil, &domain.FetchError{Strategy: strategy, Err: lastErr}
}

// methodsFor returns the ordered fallback chain for the strategy.
func (s *FetchService) methodsFor(strategy domain.Strategy) []fetchMethod {
	direct := fetchMethod{"playlist-items", s.playlistItems}

	switch strategy {
	case domain.StrategyRecentFeed:
		return []fetchMethod{
			{"recently-added", s.recentlyAdded},
			{"sorted-search", s.sortedSearch},
			direct,
		}
	case domain.StrategyLargeLibraryScan:
		return []fetchMethod{
			{"library-search", s.librarySearch},
			{"library-all", s.libraryAll},
			direct,
		}
	default:
		return []fetchMethod{direct}
	}
}

// recentlyAdded calls the library's recently-added feed.
func (s *FetchService) recentlyAdded(
	ctx context.Context, _ domain.Playlist, limit, apiLimit int,
) ([]*domain.Track, time.Duration, time.Duration, error) {
	if s.library == nil {
		return nil, 0, 0, errNoMusicLibrary
	}

	dispatchStart := time.Now()
	tracks, err := s.library.RecentlyAdded(ctx, apiLimit)
	dispatch := time.Since(dispatchStart)
	if err != nil {
		return nil, 0, 0, err
	}

	collectStart := time.Now()
	tracks = truncate(tracks, limit)
	return tracks, dispatch, time.Since(collectStart), nil
}

// sortedSearch approximates the recently-added feed with a recency-sorted
// track search.
func (s *FetchService) sortedSearch(
	ctx context.Context, _ domain.Playlist, limit, apiLimit int,
) ([]*domain.Track, time.Duration, time.Duration, error) {
	if s.library == nil {
		return nil, 0, 0, errNoMusicLibrary
	}

	dispatchStart := time.Now()
	tracks, err := s.library.SearchTracks(ctx, ports.SearchQuery{
		Sort:  "addedAt:desc",
		Limit: apiLimit,
	})
	dispatch := time.Since(dispatchStart)
	if err != nil {
		return nil, 0, 0, err
	}

	collectStart := time.Now()
	tracks = truncate(tracks, limit)
	return tracks, dispatch, time.Since(collectStart), nil
}

// librarySearch runs a wildcard track search with the limit applied by the
// server. The limit must not be client-side only: the scanned universe may
// be arbitrarily large.
func (s *FetchService) librarySearch(
	ctx context.Context, _ domain.Playlist, limit, apiLimit int,
) ([]*domain.Track, time.Duration, time.Duration, error) {
	if s.library == nil {
		return nil, 0, 0, errNoMusicLibrary
	}

	dispatchStart := time.Now()
	tracks, err := s.library.SearchTracks(ctx, ports.SearchQuery{Limit: apiLimit})
	dispatch := time.Since(dispatchStart)
	if err != nil {
		return nil, 0, 0, err
	}

	// Truncate client-side too, in case the server returned more than asked.
	collectStart := time.Now()
	tracks = truncate(tracks, limit)
	return tracks, dispatch, time.Since(collectStart), nil
}

// libraryAll enumerates the whole library lazily, stopping at the limit.
func (s *FetchService) libraryAll(
	ctx context.Context, _ domain.Playlist, limit, _ int,
) ([]*domain.Track, time.Duration, time.Duration, error) {
	if s.library == nil {
		return nil, 0, 0, errNoMusicLibrary
	}

	dispatchStart := time.Now()
	iter, err := s.library.AllTracks(ctx)
	dispatch := time.Since(dispatchStart)
	if err != nil {
		return nil, 0, 0, err
	}

	collectStart := time.Now()
	tracks, err := collect(ctx, iter, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	return tracks, dispatch, time.Since(collectStart), nil
}

// playlistItems enumerates the playlist's own item sequence, stopping at
// the requested limit. The iteration short-circuits: it never materializes
// the remainder of a catalog far exceeding the limit.
func (s *FetchService) playlistItems(
	ctx context.Context, playlist domain.Playlist, limit, _ int,
) ([]*domain.Track, time.Duration, time.Duration, error) {
	if playlist.Source == nil {
		return nil, 0, 0, errors.New("playlist has no item source")
	}

	dispatchStart := time.Now()
	iter, err := playlist.Source.Items(ctx)
	dispatch := time.Since(dispatchStart)
	if err != nil {
		return nil, 0, 0, err
	}

	collectStart := time.Now()
	tracks, err := collect(ctx, iter, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	return tracks, dispatch, time.Since(collectStart), nil
}

// collect drains up to limit tracks from the iterator.
func collect(ctx context.Context, iter domain.TrackIterator, limit int) ([]*domain.Track, error) {
	var tracks []*domain.Track
	for len(tracks) < limit {
		track, err := iter.Next(ctx)
		if errors.Is(err, domain.ErrEndOfItems) {
			break
		}
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// truncate limits tracks to at most max entries.
func truncate(tracks []*domain.Track, max int) []*domain.Track {
	if len(tracks) > max {
		return tracks[:max]
	}
	return tracks
}
