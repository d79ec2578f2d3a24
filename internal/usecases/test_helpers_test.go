package usecases

import (
	"context"
	"errors"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

func mockTrack(id string) *domain.Track {
	return domain.NewTrack(id, "Track "+id, nil)
}

func mockTracks(n int) []*domain.Track {
	tracks := make([]*domain.Track, n)
	for i := range tracks {
		tracks[i] = mockTrack(string(rune('A' + i%26)))
	}
	return tracks
}

// mockDocument is a raw metadata view backed by a map.
type mockDocument map[string]string

func (d mockDocument) Lookup(name string) (string, bool) {
	v, ok := d[name]
	return v, ok
}

// mockTrackSource implements domain.TrackSource with canned values and call
// counters for the expensive tiers.
type mockTrackSource struct {
	fields    map[string]string
	fieldErrs map[string]error
	doc       domain.Document

	reloaded        domain.TrackSource
	reloadErr       error
	reloadCalls     int
	reloadChildren  bool
	artistName      string
	artistErr       error
	artistCalls     int
	streamURL       string
	streamErr       error
	streamURLCalls  int
}

func (m *mockTrackSource) Field(name string) (string, error) {
	if err, ok := m.fieldErrs[name]; ok {
		return "", err
	}
	if v, ok := m.fields[name]; ok {
		return v, nil
	}
	return "", errors.New("field not present")
}

func (m *mockTrackSource) Document() domain.Document {
	return m.doc
}

func (m *mockTrackSource) Reload(_ context.Context, includeChildren bool) (domain.TrackSource, error) {
	m.reloadCalls++
	m.reloadChildren = includeChildren
	if m.reloadErr != nil {
		return nil, m.reloadErr
	}
	return m.reloaded, nil
}

func (m *mockTrackSource) ArtistName(_ context.Context) (string, error) {
	m.artistCalls++
	if m.artistErr != nil {
		return "", m.artistErr
	}
	return m.artistName, nil
}

func (m *mockTrackSource) StreamURL(_ context.Context) (string, error) {
	m.streamURLCalls++
	if m.streamErr != nil {
		return "", m.streamErr
	}
	return m.streamURL, nil
}

// countingIterator yields canned tracks and records how many times Next was
// invoked, so tests can assert that iteration short-circuits.
type countingIterator struct {
	tracks    []*domain.Track
	nextCalls int
	failAt    int // 0 disables; fail on the nth call
	err       error
}

func (it *countingIterator) Next(_ context.Context) (*domain.Track, error) {
	it.nextCalls++
	if it.failAt > 0 && it.nextCalls >= it.failAt {
		return nil, it.err
	}
	if it.nextCalls > len(it.tracks) {
		return nil, domain.ErrEndOfItems
	}
	return it.tracks[it.nextCalls-1], nil
}

// mockPlaylistSource implements domain.PlaylistSource.
type mockPlaylistSource struct {
	iter       *countingIterator
	itemsErr   error
	itemsCalls int
}

func (m *mockPlaylistSource) Items(_ context.Context) (domain.TrackIterator, error) {
	m.itemsCalls++
	if m.itemsErr != nil {
		return nil, m.itemsErr
	}
	return m.iter, nil
}

// mockLibrary implements ports.MusicLibrary.
type mockLibrary struct {
	recentTracks []*domain.Track
	recentErr    error
	recentCalls  int
	recentLimit  int

	searchTracks []*domain.Track
	searchErr    error
	searchCalls  int
	lastQuery    ports.SearchQuery

	allIter  *countingIterator
	allErr   error
	allCalls int
}

func (m *mockLibrary) RecentlyAdded(_ context.Context, limit int) ([]*domain.Track, error) {
	m.recentCalls++
	m.recentLimit = limit
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.recentTracks, nil
}

func (m *mockLibrary) SearchTracks(_ context.Context, query ports.SearchQuery) ([]*domain.Track, error) {
	m.searchCalls++
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchTracks, nil
}

func (m *mockLibrary) AllTracks(_ context.Context) (domain.TrackIterator, error) {
	m.allCalls++
	if m.allErr != nil {
		return nil, m.allErr
	}
	return m.allIter, nil
}

// mockCatalog implements ports.Catalog.
type mockCatalog struct {
	serverName   string
	library      *mockLibrary
	playlists    []domain.Playlist
	playlistsErr error

	searchTracks []*domain.Track
	searchErr    error
	searchCalls  int
	lastTitle    string
}

func (m *mockCatalog) ServerName() string {
	return m.serverName
}

func (m *mockCatalog) MusicLibrary() (ports.MusicLibrary, bool) {
	if m.library == nil {
		return nil, false
	}
	return m.library, true
}

func (m *mockCatalog) Playlists(_ context.Context) ([]domain.Playlist, error) {
	if m.playlistsErr != nil {
		return nil, m.playlistsErr
	}
	return m.playlists, nil
}

func (m *mockCatalog) SearchTracks(_ context.Context, title string, _ int) ([]*domain.Track, error) {
	m.searchCalls++
	m.lastTitle = title
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchTracks, nil
}

// mockCache implements ports.TrackListCache.
type mockCache struct {
	entries map[string]*domain.TrackList
	puts    int
	clears  int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*domain.TrackList)}
}

func (m *mockCache) Get(id string) (*domain.TrackList, bool) {
	list, ok := m.entries[id]
	return list, ok
}

func (m *mockCache) Put(id string, list *domain.TrackList) {
	m.puts++
	m.entries[id] = list
}

func (m *mockCache) Clear(id string) {
	m.clears++
	delete(m.entries, id)
}

// mockPlayer implements ports.AudioPlayer.
type mockPlayer struct {
	availableErr error
	playErr      error
	played       []string
	stopCalls    int
	toggleCalls  int
	toggleErr    error
}

func (m *mockPlayer) Available() error {
	return m.availableErr
}

func (m *mockPlayer) Play(_ context.Context, streamURL string) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, streamURL)
	return nil
}

func (m *mockPlayer) Stop() error {
	m.stopCalls++
	return nil
}

func (m *mockPlayer) TogglePause() error {
	m.toggleCalls++
	return m.toggleErr
}

// mockPublisher records published events.
type mockPublisher struct {
	playlistsLoaded []domain.PlaylistsLoadedEvent
	tracksLoaded    []domain.TracksLoadedEvent
	playbackStarted []domain.PlaybackStartedEvent
	searchResults   []domain.SearchResultsEvent
	statuses        []domain.StatusEvent
}

func (m *mockPublisher) PublishPlaylistsLoaded(event domain.PlaylistsLoadedEvent) {
	m.playlistsLoaded = append(m.playlistsLoaded, event)
}

func (m *mockPublisher) PublishTracksLoaded(event domain.TracksLoadedEvent) {
	m.tracksLoaded = append(m.tracksLoaded, event)
}

func (m *mockPublisher) PublishPlaybackStarted(event domain.PlaybackStartedEvent) {
	m.playbackStarted = append(m.playbackStarted, event)
}

func (m *mockPublisher) PublishSearchResults(event domain.SearchResultsEvent) {
	m.searchResults = append(m.searchResults, event)
}

func (m *mockPublisher) PublishStatus(event domain.StatusEvent) {
	m.statuses = append(m.statuses, event)
}
