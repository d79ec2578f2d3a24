package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// SearchInput contains the input for the Search use case.
type SearchInput struct {
	Query string
}

// SearchOutput contains the result of the Search use case.
type SearchOutput struct {
	Tracks []*domain.Track
}

// SearchService searches tracks by title, preferring the music library
// section and falling back to the server-wide search when none was found.
type SearchService struct {
	catalog   ports.Catalog
	publisher ports.EventPublisher
	limit     int
	log       *zap.Logger
}

// NewSearchService creates a new SearchService. publisher may be nil.
func NewSearchService(
	catalog ports.Catalog,
	publisher ports.EventPublisher,
	limit int,
	log *zap.Logger,
) *SearchService {
	return &SearchService{
		catalog:   catalog,
		publisher: publisher,
		limit:     limit,
		log:       log,
	}
}

// Search runs a title search and returns up to the configured limit of
// matching tracks. A non-empty query that matches nothing returns
// ErrNoResults.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	if input.Query == "" {
		return &SearchOutput{}, nil
	}

	var (
		tracks []*domain.Track
		err    error
	)
	if library, ok := s.catalog.MusicLibrary(); ok {
		tracks, err = library.SearchTracks(ctx, ports.SearchQuery{
			Title: input.Query,
			Limit: s.limit,
		})
	} else {
		tracks, err = s.catalog.SearchTracks(ctx, input.Query, s.limit)
	}
	if err != nil {
		s.log.Warn("search failed", zap.String("query", input.Query), zap.Error(err))
		return nil, err
	}
	if len(tracks) == 0 {
		s.log.Debug("search found nothing", zap.String("query", input.Query))
		return nil, ErrNoResults
	}

	s.log.Debug("search completed",
		zap.String("query", input.Query),
		zap.Int("results", len(tracks)),
	)
	if s.publisher != nil {
		s.publisher.PublishSearchResults(domain.SearchResultsEvent{
			Query:  input.Query,
			Tracks: tracks,
		})
	}
	return &SearchOutput{Tracks: tracks}, nil
}
