package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time check that Bus implements ports.EventPublisher.
var _ ports.EventPublisher = (*Bus)(nil)

// Bus provides a channel-based event bus delivering worker results back to
// the UI loop. Publishing is non-blocking: if a channel buffer is full the
// event is dropped with a warning rather than stalling the worker.
type Bus struct {
	playlistsLoaded chan domain.PlaylistsLoadedEvent
	tracksLoaded    chan domain.TracksLoadedEvent
	playbackStarted chan domain.PlaybackStartedEvent
	searchResults   chan domain.SearchResultsEvent
	status          chan domain.StatusEvent

	log    *zap.Logger
	closed bool
	mu     sync.RWMutex
}

// NewBus creates a new Bus with the given buffer size.
func NewBus(bufferSize int, log *zap.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	return &Bus{
		playlistsLoaded: make(chan domain.PlaylistsLoadedEvent, bufferSize),
		tracksLoaded:    make(chan domain.TracksLoadedEvent, bufferSize),
		playbackStarted: make(chan domain.PlaybackStartedEvent, bufferSize),
		searchResults:   make(chan domain.SearchResultsEvent, bufferSize),
		status:          make(chan domain.StatusEvent, bufferSize),
		log:             log,
	}
}

// PublishPlaylistsLoaded publishes a PlaylistsLoadedEvent.
func (b *Bus) PublishPlaylistsLoaded(event domain.PlaylistsLoadedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.log.Warn("attempted to publish to closed event bus", zap.String("type", "PlaylistsLoaded"))
		return
	}

	select {
	case b.playlistsLoaded <- event:
	default:
		b.log.Warn("event buffer full, dropping event", zap.String("type", "PlaylistsLoaded"))
	}
}

// PublishTracksLoaded publishes a TracksLoadedEvent.
func (b *Bus) PublishTracksLoaded(event domain.TracksLoadedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.log.Warn("attempted to publish to closed event bus", zap.String("type", "TracksLoaded"))
		return
	}

	select {
	case b.tracksLoaded <- event:
		b.log.Debug("published event",
			zap.String("type", "TracksLoaded"),
			zap.String("playlist", event.PlaylistID),
		)
	default:
		b.log.Warn("event buffer full, dropping event", zap.String("type", "TracksLoaded"))
	}
}

// PublishPlaybackStarted publishes a PlaybackStartedEvent.
func (b *Bus) PublishPlaybackStarted(event domain.PlaybackStartedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.log.Warn("attempted to publish to closed event bus", zap.String("type", "PlaybackStarted"))
		return
	}

	select {
	case b.playbackStarted <- event:
	default:
		b.log.Warn("event buffer full, dropping event", zap.String("type", "PlaybackStarted"))
	}
}

// PublishSearchResults publishes a SearchResultsEvent.
func (b *Bus) PublishSearchResults(event domain.SearchResultsEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.log.Warn("attempted to publish to closed event bus", zap.String("type", "SearchResults"))
		return
	}

	select {
	case b.searchResults <- event:
	default:
		b.log.Warn("event buffer full, dropping event", zap.String("type", "SearchResults"))
	}
}

// PublishStatus publishes a StatusEvent.
func (b *Bus) PublishStatus(event domain.StatusEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	select {
	case b.status <- event:
	default:
		b.log.Warn("event buffer full, dropping event", zap.String("type", "Status"))
	}
}

// PlaylistsLoaded returns the channel of PlaylistsLoadedEvents.
func (b *Bus) PlaylistsLoaded() <-chan domain.PlaylistsLoadedEvent {
	return b.playlistsLoaded
}

// TracksLoaded returns the channel of TracksLoadedEvents.
func (b *Bus) TracksLoaded() <-chan domain.TracksLoadedEvent {
	return b.tracksLoaded
}

// PlaybackStarted returns the channel of PlaybackStartedEvents.
func (b *Bus) PlaybackStarted() <-chan domain.PlaybackStartedEvent {
	return b.playbackStarted
}

// SearchResults returns the channel of SearchResultsEvents.
func (b *Bus) SearchResults() <-chan domain.SearchResultsEvent {
	return b.searchResults
}

// Status returns the channel of StatusEvents.
func (b *Bus) Status() <-chan domain.StatusEvent {
	return b.status
}

// Close marks the bus closed and closes all channels. Publish calls after
// Close are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	close(b.playlistsLoaded)
	close(b.tracksLoaded)
	close(b.playbackStarted)
	close(b.searchResults)
	close(b.status)
}
