package plex

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// trackSource backs a domain.Track with its parsed Track element and the
// client that fetched it. Structured reads are answered locally from the
// element; Reload and ArtistName go back to the server.
type trackSource struct {
	client *Client
	node   *trackNode
}

func (s *trackSource) Field(name string) (string, error) {
	v, ok := s.node.attrs[name]
	if !ok {
		return "", fmt.Errorf("field %q not present", name)
	}
	return v, nil
}

func (s *trackSource) Document() domain.Document {
	return s.node
}

// Reload refetches the track's metadata by rating key. With includeChildren
// the server includes the full artist/album lineage, which fills in fields
// the original listing response omitted.
func (s *trackSource) Reload(
	ctx context.Context,
	includeChildren bool,
) (domain.TrackSource, error) {
	ratingKey := s.node.attr("ratingKey")
	if ratingKey == "" {
		return nil, errors.New("track has no rating key")
	}

	query := url.Values{}
	if includeChildren {
		query.Set("includeChildren", "1")
	}
	var container mediaContainer
	if err := s.client.get(ctx, "/library/metadata/"+ratingKey, query, &container); err != nil {
		return nil, err
	}
	if len(container.Tracks) == 0 {
		return nil, fmt.Errorf("track %s not found on reload", ratingKey)
	}
	return &trackSource{client: s.client, node: &container.Tracks[0]}, nil
}

// ArtistName fetches the artist entity referenced by the track and returns
// its title. A separate request per track, so callers only reach for this
// after every local tier has failed.
func (s *trackSource) ArtistName(ctx context.Context) (string, error) {
	artistKey := s.node.attr("grandparentRatingKey")
	if artistKey == "" {
		return "", errors.New("track has no artist reference")
	}

	var container mediaContainer
	if err := s.client.get(ctx, "/library/metadata/"+artistKey, nil, &container); err != nil {
		return "", err
	}
	if len(container.Directories) == 0 {
		return "", fmt.Errorf("artist %s not found", artistKey)
	}
	return container.Directories[0].Title, nil
}

// StreamURL resolves a direct-play URL from the track's first media part.
func (s *trackSource) StreamURL(_ context.Context) (string, error) {
	if len(s.node.partKeys) == 0 {
		return "", errors.New("track has no media parts")
	}
	return s.client.streamURL(s.node.partKeys[0]), nil
}

var _ domain.TrackSource = (*trackSource)(nil)
