package plex

import (
	"context"
	"net/http"
	"testing"
)

const reloadedTrackXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer size="1">
  <Track ratingKey="201" title="First Song" grandparentTitle="First Band">
    <Media><Part key="/library/parts/201/file.mp3"/></Media>
  </Track>
</MediaContainer>`

const artistXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer size="1">
  <Directory ratingKey="301" type="artist" title="First Band"/>
</MediaContainer>`

func parseTrackNode(t *testing.T, body string) *trackNode {
	t.Helper()
	client, _ := newTestClient(t, xmlHandler(map[string]string{"/tracks": body}))
	var container mediaContainer
	if err := client.get(context.Background(), "/tracks", nil, &container); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(container.Tracks) == 0 {
		t.Fatal("expected at least one track")
	}
	return &container.Tracks[0]
}

func TestTrackNode_RetainsAllAttributes(t *testing.T) {
	node := parseTrackNode(t, tracksXML)

	if got := node.attr("ratingKey"); got != "201" {
		t.Errorf("ratingKey = %q", got)
	}
	// Attributes outside the modeled schema must still be reachable.
	if v, ok := node.Lookup("grandparentTitle"); !ok || v != "First Band" {
		t.Errorf("Lookup(grandparentTitle) = %q, %v", v, ok)
	}
	if _, ok := node.Lookup("originalTitle"); ok {
		t.Error("expected absent attribute to report not found")
	}
	if len(node.partKeys) != 1 || node.partKeys[0] != "/library/parts/201/file.mp3" {
		t.Errorf("unexpected part keys %v", node.partKeys)
	}
}

func TestTrackSource_Field(t *testing.T) {
	source := &trackSource{node: parseTrackNode(t, tracksXML)}

	if v, err := source.Field("grandparentTitle"); err != nil || v != "First Band" {
		t.Errorf("Field(grandparentTitle) = %q, %v", v, err)
	}
	if _, err := source.Field("parentTitle"); err == nil {
		t.Error("expected error for absent field")
	}
}

func TestTrackSource_StreamURL(t *testing.T) {
	client, server := newTestClient(t, xmlHandler(map[string]string{"/tracks": tracksXML}))
	source := &trackSource{client: client, node: parseTrackNode(t, tracksXML)}

	streamURL, err := source.StreamURL(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := server.URL + "/library/parts/201/file.mp3?X-Plex-Token=secret"
	if streamURL != want {
		t.Errorf("stream URL = %q, want %q", streamURL, want)
	}
}

func TestTrackSource_StreamURLWithoutParts(t *testing.T) {
	node := &trackNode{attrs: map[string]string{"ratingKey": "1"}}
	source := &trackSource{node: node}

	if _, err := source.StreamURL(context.Background()); err == nil {
		t.Error("expected error for track without media parts")
	}
}

func TestTrackSource_Reload(t *testing.T) {
	var gotPath, gotChildren string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotChildren = r.URL.Query().Get("includeChildren")
		_, _ = w.Write([]byte(reloadedTrackXML))
	})
	client, _ := newTestClient(t, handler)
	node := &trackNode{attrs: map[string]string{"ratingKey": "201", "title": "First Song"}}
	source := &trackSource{client: client, node: node}

	reloaded, err := source.Reload(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/library/metadata/201" || gotChildren != "1" {
		t.Errorf("unexpected request: path=%q includeChildren=%q", gotPath, gotChildren)
	}
	if v, err := reloaded.Field("grandparentTitle"); err != nil || v != "First Band" {
		t.Errorf("expected lineage filled in after reload, got %q, %v", v, err)
	}
}

func TestTrackSource_ReloadWithoutRatingKey(t *testing.T) {
	source := &trackSource{node: &trackNode{attrs: map[string]string{}}}

	if _, err := source.Reload(context.Background(), true); err == nil {
		t.Error("expected error for track without rating key")
	}
}

func TestTrackSource_ArtistName(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(artistXML))
	})
	client, _ := newTestClient(t, handler)
	node := &trackNode{attrs: map[string]string{
		"ratingKey":            "201",
		"grandparentRatingKey": "301",
	}}
	source := &trackSource{client: client, node: node}

	name, err := source.ArtistName(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/library/metadata/301" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if name != "First Band" {
		t.Errorf("expected artist title, got %q", name)
	}
}

func TestTrackSource_ArtistNameWithoutReference(t *testing.T) {
	source := &trackSource{node: &trackNode{attrs: map[string]string{"ratingKey": "1"}}}

	if _, err := source.ArtistName(context.Background()); err == nil {
		t.Error("expected error for track without artist reference")
	}
}
