package domain

import (
	"context"
	"sync"
)

// Document is a raw metadata view of a catalog item, used as the fallback
// tier when a structured field read fails. Lookup reports whether the field
// exists at all, so callers can tell "no data" apart from an empty value.
type Document interface {
	Lookup(name string) (string, bool)
}

// TrackSource is the catalog-side handle behind a Track. It exposes
// structured field reads, the raw document fallback, and the remote
// operations needed for late-stage artist resolution and playback.
type TrackSource interface {
	// Field returns the structured value of the named metadata field.
	// Returns an error if the field is absent or cannot be read.
	Field(name string) (string, error)

	// Document returns the raw metadata view, or nil if none is attached.
	Document() Document

	// Reload refetches the track by identity. When includeChildren is set
	// the server is asked to include the full artist/album lineage.
	Reload(ctx context.Context, includeChildren bool) (TrackSource, error)

	// ArtistName fetches the track's artist entity and returns its title.
	// This is a separate remote call and the most expensive lookup path.
	ArtistName(ctx context.Context) (string, error)

	// StreamURL resolves a playable stream locator for the track.
	StreamURL(ctx context.Context) (string, error)
}

// Track represents a playable audio item fetched from the catalog.
// The resolved artist is memoized on the track after first resolution and
// never recomputed; the memo is guarded because resolution runs on worker
// goroutines while the UI reads tracks for display.
type Track struct {
	ID     string
	Title  string
	Source TrackSource

	mu     sync.Mutex
	artist string
}

// NewTrack creates a Track for the given identity, display title and source.
func NewTrack(id, title string, source TrackSource) *Track {
	return &Track{
		ID:     id,
		Title:  title,
		Source: source,
	}
}

// Artist returns the memoized artist name and whether one has been resolved.
func (t *Track) Artist() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.artist, t.artist != ""
}

// SetArtist stores the resolved artist name. The first stored value wins;
// later calls are ignored so a resolution result is never recomputed.
func (t *Track) SetArtist(artist string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.artist == "" {
		t.artist = artist
	}
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.ID != ""
}
