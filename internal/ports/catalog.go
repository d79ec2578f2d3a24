package ports

import (
	"context"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// SearchQuery describes a library track search. A zero Title means a
// wildcard scan. Limit must be enforced by the server, not only client-side:
// the scanned universe may be arbitrarily large.
type SearchQuery struct {
	Title string
	Sort  string // e.g. "addedAt:desc"; empty for server default
	Limit int
}

// Catalog defines the interface for the remote media server session.
type Catalog interface {
	// ServerName returns the server's display name.
	ServerName() string

	// MusicLibrary returns the artist-kind library section, if one exists.
	MusicLibrary() (MusicLibrary, bool)

	// Playlists lists the server's playlists.
	Playlists(ctx context.Context) ([]domain.Playlist, error)

	// SearchTracks searches tracks server-wide. Used as a fallback when no
	// music library section was found.
	SearchTracks(ctx context.Context, title string, limit int) ([]*domain.Track, error)
}

// MusicLibrary defines the interface for the artist-kind library section.
type MusicLibrary interface {
	// RecentlyAdded returns the most recently added tracks, newest first.
	// Returns domain.ErrNotSupported when the server does not expose a
	// recently-added feed.
	RecentlyAdded(ctx context.Context, limit int) ([]*domain.Track, error)

	// SearchTracks runs a track search with a server-enforced result cap.
	SearchTracks(ctx context.Context, query SearchQuery) ([]*domain.Track, error)

	// AllTracks enumerates every track in the section as a lazy sequence.
	AllTracks(ctx context.Context) (domain.TrackIterator, error)
}
