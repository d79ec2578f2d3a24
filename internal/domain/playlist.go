package domain

import "context"

// TrackIterator is a lazy sequence of tracks. Next returns ErrEndOfItems
// once the sequence is exhausted. Implementations must not require the
// caller to materialize the full sequence: consumers stop iterating as soon
// as they have collected enough items.
type TrackIterator interface {
	Next(ctx context.Context) (*Track, error)
}

// PlaylistSource is the catalog-side handle behind a Playlist.
type PlaylistSource interface {
	// Items enumerates the playlist's tracks as a lazy sequence.
	Items(ctx context.Context) (TrackIterator, error)
}

// Playlist is the identity and cached display metadata of a server-side
// playlist. It is created once when the playlist list is fetched and never
// re-validated against the server within a session.
type Playlist struct {
	ID    string
	Title string

	// DeclaredCount is the server-reported total track count. It may be
	// stale or absent; HasDeclaredCount reports whether it is known.
	DeclaredCount    int
	HasDeclaredCount bool

	Source PlaylistSource
}

// SliceIterator adapts an in-memory track slice to the TrackIterator
// contract. Used by adapters whose underlying call returns a full page.
type SliceIterator struct {
	tracks []*Track
	pos    int
}

// NewSliceIterator creates a TrackIterator over the given tracks.
func NewSliceIterator(tracks []*Track) *SliceIterator {
	return &SliceIterator{tracks: tracks}
}

// Next returns the next track, or ErrEndOfItems when exhausted.
func (it *SliceIterator) Next(_ context.Context) (*Track, error) {
	if it.pos >= len(it.tracks) {
		return nil, ErrEndOfItems
	}
	t := it.tracks[it.pos]
	it.pos++
	return t, nil
}

var _ TrackIterator = (*SliceIterator)(nil)
