package ports

import "github.com/MacsInSpace/plex-tui/internal/domain"

// EventPublisher defines the interface for publishing events back onto the
// UI loop. Publishing must never block the worker that produced the result.
type EventPublisher interface {
	PublishPlaylistsLoaded(event domain.PlaylistsLoadedEvent)
	PublishTracksLoaded(event domain.TracksLoadedEvent)
	PublishPlaybackStarted(event domain.PlaybackStartedEvent)
	PublishSearchResults(event domain.SearchResultsEvent)
	PublishStatus(event domain.StatusEvent)
}
