package plex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

func trackContainer(start, count int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><MediaContainer size="`)
	b.WriteString(strconv.Itoa(count))
	b.WriteString(`">`)
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, `<Track ratingKey="%d" title="Track %d"/>`, start+i, start+i)
	}
	b.WriteString(`</MediaContainer>`)
	return b.String()
}

func TestLibrarySection_SearchTracks(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(trackContainer(0, 10)))
	})
	client, _ := newTestClient(t, handler)
	library := &LibrarySection{client: client, key: "3", title: "Music"}

	tracks, err := library.SearchTracks(context.Background(), ports.SearchQuery{
		Title: "song",
		Sort:  "addedAt:desc",
		Limit: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/library/sections/3/all" {
		t.Errorf("unexpected path %q", gotPath)
	}
	query := map[string]string{
		"type":                  mediaTypeTrack,
		"title":                 "song",
		"sort":                  "addedAt:desc",
		"X-Plex-Container-Size": "50",
	}
	for key, want := range query {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
	if len(tracks) != 10 {
		t.Errorf("expected 10 tracks, got %d", len(tracks))
	}
}

func TestLibrarySection_SearchTracksTruncatesOverrun(t *testing.T) {
	// A server that ignores the container size must still not overrun the cap.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(trackContainer(0, 80)))
	})
	client, _ := newTestClient(t, handler)
	library := &LibrarySection{client: client, key: "3"}

	tracks, err := library.SearchTracks(context.Background(), ports.SearchQuery{Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 50 {
		t.Errorf("expected overrun truncated to 50, got %d", len(tracks))
	}
}

func TestLibrarySection_RecentlyAdded(t *testing.T) {
	var gotPath, gotSize string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSize = r.URL.Query().Get("X-Plex-Container-Size")
		_, _ = w.Write([]byte(trackContainer(0, 5)))
	})
	client, _ := newTestClient(t, handler)
	library := &LibrarySection{client: client, key: "3"}

	tracks, err := library.RecentlyAdded(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/library/sections/3/recentlyAdded" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotSize != "50" {
		t.Errorf("expected container size 50, got %q", gotSize)
	}
	if len(tracks) != 5 {
		t.Errorf("expected 5 tracks, got %d", len(tracks))
	}
}

func TestLibrarySection_RecentlyAddedNotSupported(t *testing.T) {
	// Older servers have no recentlyAdded endpoint and answer 404.
	client, _ := newTestClient(t, http.NotFoundHandler())
	library := &LibrarySection{client: client, key: "3"}

	_, err := library.RecentlyAdded(context.Background(), 50)
	if !errors.Is(err, domain.ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}

func TestPagedIterator(t *testing.T) {
	var starts []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("X-Plex-Container-Start"))
		starts = append(starts, r.URL.Query().Get("X-Plex-Container-Start"))
		// 250 tracks total: two full pages and a partial third.
		count := 250 - start
		if count > defaultPageSize {
			count = defaultPageSize
		}
		_, _ = w.Write([]byte(trackContainer(start, count)))
	})
	client, _ := newTestClient(t, handler)
	library := &LibrarySection{client: client, key: "3"}

	iter, err := library.AllTracks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for {
		track, err := iter.Next(context.Background())
		if errors.Is(err, domain.ErrEndOfItems) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if track == nil {
			t.Fatal("expected non-nil track before end of items")
		}
		count++
	}

	if count != 250 {
		t.Errorf("expected 250 tracks, got %d", count)
	}
	if len(starts) != 3 {
		t.Errorf("expected 3 page fetches, got %d (%v)", len(starts), starts)
	}
}

func TestPagedIterator_StopsEarly(t *testing.T) {
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(trackContainer(0, defaultPageSize)))
	})
	client, _ := newTestClient(t, handler)
	library := &LibrarySection{client: client, key: "3"}

	iter, err := library.AllTracks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reading less than one page must fetch exactly one page.
	for i := 0; i < 50; i++ {
		if _, err := iter.Next(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if requests != 1 {
		t.Errorf("expected a single page fetch, got %d", requests)
	}
}

func TestPlaylistSource_Items(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(trackContainer(0, 3)))
	})
	client, _ := newTestClient(t, handler)
	source := &playlistSource{client: client, ratingKey: "101"}

	iter, err := source.Items(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	track, err := iter.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/playlists/101/items" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if track.ID != "0" {
		t.Errorf("unexpected first track %+v", track)
	}
}
