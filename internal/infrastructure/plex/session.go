package plex

import (
	"context"
	"net/url"
	"strconv"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// Session is an authenticated connection to one Plex server.
type Session struct {
	client     *Client
	serverName string
	library    *LibrarySection
}

// ServerName returns the server's friendly name.
func (s *Session) ServerName() string {
	return s.serverName
}

// MusicLibrary returns the artist-kind library section, if one was found.
func (s *Session) MusicLibrary() (ports.MusicLibrary, bool) {
	if s.library == nil {
		return nil, false
	}
	return s.library, true
}

// Playlists lists the server's audio playlists. Entries are built once here
// and never re-validated against the server within a session.
func (s *Session) Playlists(ctx context.Context) ([]domain.Playlist, error) {
	query := url.Values{"playlistType": {"audio"}}
	var container mediaContainer
	if err := s.client.get(ctx, "/playlists", query, &container); err != nil {
		return nil, err
	}

	playlists := make([]domain.Playlist, 0, len(container.Playlists))
	for _, node := range container.Playlists {
		playlist := domain.Playlist{
			ID:    node.RatingKey,
			Title: node.Title,
			Source: &playlistSource{
				client:    s.client,
				ratingKey: node.RatingKey,
			},
		}
		if node.LeafCount != "" {
			count, err := strconv.Atoi(node.LeafCount)
			if err == nil {
				playlist.DeclaredCount = count
				playlist.HasDeclaredCount = true
			}
		}
		playlists = append(playlists, playlist)
	}
	return playlists, nil
}

// SearchTracks searches tracks server-wide. Used as a fallback when the
// server has no music library section.
func (s *Session) SearchTracks(
	ctx context.Context,
	title string,
	limit int,
) ([]*domain.Track, error) {
	query := url.Values{
		"query":                  {title},
		"type":                   {mediaTypeTrack},
		"X-Plex-Container-Size":  {strconv.Itoa(limit)},
		"X-Plex-Container-Start": {"0"},
	}
	var container mediaContainer
	if err := s.client.get(ctx, "/search", query, &container); err != nil {
		return nil, err
	}

	tracks := s.client.newTracks(container.Tracks)
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks, nil
}

// playlistSource enumerates one playlist's items lazily, page by page.
type playlistSource struct {
	client    *Client
	ratingKey string
}

func (p *playlistSource) Items(_ context.Context) (domain.TrackIterator, error) {
	return &pagedIterator{
		client:   p.client,
		path:     "/playlists/" + p.ratingKey + "/items",
		pageSize: defaultPageSize,
	}, nil
}

var (
	_ ports.Catalog         = (*Session)(nil)
	_ domain.PlaylistSource = (*playlistSource)(nil)
)
