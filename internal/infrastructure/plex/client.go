package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// authTransport adds the authentication headers to every request.
type authTransport struct {
	base     http.RoundTripper
	token    string
	clientID string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Plex-Token", t.token)
	req.Header.Set("X-Plex-Client-Identifier", t.clientID)
	req.Header.Set("X-Plex-Product", "plex-tui")
	req.Header.Set("Accept", "application/xml")

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// Client is a low-level Plex Media Server API client. It owns the HTTP
// session and the base URL; higher-level types (Session, LibrarySection,
// trackSource) issue their requests through it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a Client for the given server. The token is sent as a
// header on every request; a fresh client identifier is generated per
// process, which is how the server tells sessions apart.
func NewClient(baseURL, token string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:     http.DefaultTransport,
				token:    token,
				clientID: uuid.NewString(),
			},
		},
		log: log,
	}
}

// Connect verifies the server is reachable and discovers the music library
// section. A server without an artist-kind section still yields a usable
// Session; library-backed operations are simply unavailable on it.
func (c *Client) Connect(ctx context.Context) (*Session, error) {
	var root mediaContainer
	if err := c.get(ctx, "/", nil, &root); err != nil {
		return nil, &domain.ConnectionError{URL: c.baseURL, Err: err}
	}

	var sections mediaContainer
	if err := c.get(ctx, "/library/sections", nil, &sections); err != nil {
		return nil, &domain.ConnectionError{URL: c.baseURL, Err: err}
	}

	session := &Session{client: c, serverName: root.FriendlyName}
	for _, d := range sections.Directories {
		if d.Type == "artist" {
			session.library = &LibrarySection{client: c, key: d.Key, title: d.Title}
			c.log.Info("found music library",
				zap.String("section", d.Title),
				zap.String("key", d.Key),
			)
			break
		}
	}
	if session.library == nil {
		c.log.Warn("no music library section on server",
			zap.String("server", root.FriendlyName),
		)
	}
	return session, nil
}

// get performs a GET request and decodes the MediaContainer response.
// A 404 maps to ErrNotSupported: the server build does not expose the
// endpoint, which callers treat as a cue to fall back.
func (c *Client) get(
	ctx context.Context,
	path string,
	query url.Values,
	container *mediaContainer,
) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("plex request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotSupported, path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %s for %s", resp.Status, path)
	}
	return xml.NewDecoder(resp.Body).Decode(container)
}

// streamURL builds a direct media URL for ffplay. The player cannot send
// headers, so the token rides in the query string instead.
func (c *Client) streamURL(partKey string) string {
	return c.baseURL + partKey + "?X-Plex-Token=" + url.QueryEscape(c.token)
}

// newTrack wraps a parsed Track element in the domain type.
func (c *Client) newTrack(node *trackNode) *domain.Track {
	return domain.NewTrack(
		node.attr("ratingKey"),
		node.attr("title"),
		&trackSource{client: c, node: node},
	)
}

// newTracks wraps every Track element of a container response.
func (c *Client) newTracks(nodes []trackNode) []*domain.Track {
	tracks := make([]*domain.Track, len(nodes))
	for i := range nodes {
		tracks[i] = c.newTrack(&nodes[i])
	}
	return tracks
}
