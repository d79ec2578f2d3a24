package ports

import "github.com/MacsInSpace/plex-tui/internal/domain"

// TrackListCache defines the interface for the per-playlist fetch cache.
// A hit short-circuits strategy selection and fetch execution entirely;
// entries are only replaced by an explicit Clear followed by a refetch.
type TrackListCache interface {
	// Get returns the cached track list for the playlist ID, if present.
	Get(id string) (*domain.TrackList, bool)

	// Put stores the track list for the playlist ID.
	Put(id string, list *domain.TrackList)

	// Clear removes the entry for the playlist ID, if present.
	Clear(id string)
}
