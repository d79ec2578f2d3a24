package domain

// PlaylistsLoadedEvent is published when the playlist list has been fetched.
type PlaylistsLoadedEvent struct {
	Playlists []Playlist
}

// TracksLoadedEvent is published when a playlist's tracks have been fetched
// or served from cache. PlaylistID identifies the fetch target so a
// later-arriving stale result can be detected and discarded instead of
// overwriting newer state.
type TracksLoadedEvent struct {
	PlaylistID    string
	PlaylistTitle string
	List          *TrackList
	FromCache     bool
}

// PlaybackStartedEvent is published when a track starts playing.
type PlaybackStartedEvent struct {
	Track  *Track
	Artist string
}

// SearchResultsEvent is published when a track search completes.
type SearchResultsEvent struct {
	Query  string
	Tracks []*Track
}

// StatusEvent carries a user-visible status line update.
type StatusEvent struct {
	Message string
}
