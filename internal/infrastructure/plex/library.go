package plex

import (
	"context"
	"net/url"
	"strconv"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// mediaTypeTrack is the Plex metadata type filter for audio tracks.
const mediaTypeTrack = "10"

// defaultPageSize is how many items a lazy enumeration requests per page.
const defaultPageSize = 100

// LibrarySection is the artist-kind library section of a Plex server.
type LibrarySection struct {
	client *Client
	key    string
	title  string
}

// Title returns the section's display name.
func (l *LibrarySection) Title() string {
	return l.title
}

// RecentlyAdded returns the section's newest tracks, newest first. Older
// server builds do not expose the feed; those return ErrNotSupported and the
// caller falls back to a recency-sorted search.
func (l *LibrarySection) RecentlyAdded(
	ctx context.Context,
	limit int,
) ([]*domain.Track, error) {
	query := url.Values{
		"type":                   {mediaTypeTrack},
		"X-Plex-Container-Size":  {strconv.Itoa(limit)},
		"X-Plex-Container-Start": {"0"},
	}
	var container mediaContainer
	err := l.client.get(ctx, "/library/sections/"+l.key+"/recentlyAdded", query, &container)
	if err != nil {
		return nil, err
	}

	tracks := l.client.newTracks(container.Tracks)
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks, nil
}

// SearchTracks runs a track search within the section. The limit is passed
// as a container size so the server enforces it; the scanned universe may be
// far larger than anything the client should download.
func (l *LibrarySection) SearchTracks(
	ctx context.Context,
	query ports.SearchQuery,
) ([]*domain.Track, error) {
	values := url.Values{
		"type":                   {mediaTypeTrack},
		"X-Plex-Container-Size":  {strconv.Itoa(query.Limit)},
		"X-Plex-Container-Start": {"0"},
	}
	if query.Title != "" {
		values.Set("title", query.Title)
	}
	if query.Sort != "" {
		values.Set("sort", query.Sort)
	}

	var container mediaContainer
	if err := l.client.get(ctx, "/library/sections/"+l.key+"/all", values, &container); err != nil {
		return nil, err
	}

	tracks := l.client.newTracks(container.Tracks)
	if len(tracks) > query.Limit {
		tracks = tracks[:query.Limit]
	}
	return tracks, nil
}

// AllTracks enumerates every track in the section lazily. Consumers stop
// pulling once they have enough, so only the pages actually read are fetched.
func (l *LibrarySection) AllTracks(_ context.Context) (domain.TrackIterator, error) {
	return &pagedIterator{
		client: l.client,
		path:   "/library/sections/" + l.key + "/all",
		query: url.Values{
			"type": {mediaTypeTrack},
		},
		pageSize: defaultPageSize,
	}, nil
}

var _ ports.MusicLibrary = (*LibrarySection)(nil)

// pagedIterator walks a container endpoint page by page, requesting the next
// page only when the current one is exhausted.
type pagedIterator struct {
	client   *Client
	path     string
	query    url.Values
	pageSize int

	page   []*domain.Track
	pos    int
	offset int
	done   bool
}

func (it *pagedIterator) Next(ctx context.Context) (*domain.Track, error) {
	for it.pos >= len(it.page) {
		if it.done {
			return nil, domain.ErrEndOfItems
		}
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
	}
	track := it.page[it.pos]
	it.pos++
	return track, nil
}

func (it *pagedIterator) fetchPage(ctx context.Context) error {
	values := url.Values{}
	for k, v := range it.query {
		values[k] = v
	}
	values.Set("X-Plex-Container-Start", strconv.Itoa(it.offset))
	values.Set("X-Plex-Container-Size", strconv.Itoa(it.pageSize))

	var container mediaContainer
	if err := it.client.get(ctx, it.path, values, &container); err != nil {
		return err
	}

	it.page = it.client.newTracks(container.Tracks)
	it.pos = 0
	it.offset += len(container.Tracks)
	if len(container.Tracks) < it.pageSize {
		it.done = true
	}
	return nil
}

var _ domain.TrackIterator = (*pagedIterator)(nil)
