package presentation

import (
	"fmt"
	"strings"
	"time"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/usecases"
)

// timingPrecision keeps debug timing annotations readable.
const timingPrecision = time.Millisecond

// displayArtist picks the cheapest available artist name for display: the
// memoized resolution if one happened, otherwise a local structured read.
// The full resolver chain only runs when a track is actually played.
func displayArtist(track *domain.Track) string {
	if artist, ok := track.Artist(); ok {
		return artist
	}
	if track.Source != nil {
		if v, ok := usecases.ReadField(track.Source, usecases.FieldGrandparentTitle); ok {
			return v
		}
	}
	return usecases.UnknownArtist
}

// FormatTrackLine renders one row of the track view.
func FormatTrackLine(index int, track *domain.Track) string {
	return fmt.Sprintf("%3d. %s - %s", index+1, displayArtist(track), track.Title)
}

// FormatNowPlaying renders the now-playing bar.
func FormatNowPlaying(artist, title string) string {
	return fmt.Sprintf("♪ %s - %s", artist, title)
}

// FormatTrackView renders the full track view for a loaded list: a header
// line, one line per track, and footer annotations for truncation and, in
// debug mode, fetch timings.
func FormatTrackView(title string, list *domain.TrackList, debug bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d tracks", title, list.Len())
	if list.Truncated {
		fmt.Fprintf(&b, " (of %d)", list.DeclaredCount)
	}
	b.WriteString("\n\n")

	for i, track := range list.Tracks {
		b.WriteString(FormatTrackLine(i, track))
		b.WriteByte('\n')
	}

	if list.Truncated {
		fmt.Fprintf(&b, "\nLarge playlist: only the first %d tracks are loaded.\n", list.Len())
		b.WriteString("Press [r] to shuffle and play random tracks.\n")
	}

	if debug {
		fmt.Fprintf(&b, "\n[debug] strategy=%s setup=%s dispatch=%s collect=%s\n",
			list.Strategy,
			list.Timings.Setup.Round(timingPrecision),
			list.Timings.Dispatch.Round(timingPrecision),
			list.Timings.Collect.Round(timingPrecision),
		)
	}

	return b.String()
}

// FormatPlaylistEntry renders one sidebar row.
func FormatPlaylistEntry(playlist domain.Playlist) string {
	if playlist.HasDeclaredCount {
		return fmt.Sprintf("%s (%d)", playlist.Title, playlist.DeclaredCount)
	}
	return playlist.Title
}

// FormatSearchResult renders one search result row.
func FormatSearchResult(track *domain.Track) string {
	return fmt.Sprintf("%s - %s", displayArtist(track), track.Title)
}
