package usecases

import (
	"strings"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// recentFeedMarker selects the recent-feed strategy when it appears in a
// playlist title. The match is a case-sensitive substring, mirroring how the
// server names the built-in playlist.
const recentFeedMarker = "Recently Added"

// Limits holds the fetch sizing tunables.
type Limits struct {
	// LargePlaylistThreshold is the declared count above which a playlist
	// is fetched via a library scan instead of direct enumeration.
	LargePlaylistThreshold int

	// LargePlaylistLimit caps library-scan and recent-feed fetches. Reduced
	// for responsiveness over completeness on large playlists.
	LargePlaylistLimit int

	// RegularPlaylistLimit caps direct-enumeration fetches.
	RegularPlaylistLimit int

	// MaxAPIResults is the hard ceiling on any single remote request.
	MaxAPIResults int
}

// DefaultLimits returns the standard fetch sizing.
func DefaultLimits() Limits {
	return Limits{
		LargePlaylistThreshold: 1000,
		LargePlaylistLimit:     50,
		RegularPlaylistLimit:   100,
		MaxAPIResults:          1000,
	}
}

// StrategySelector chooses a fetch strategy for a playlist based on its
// declared size and title. Selection is deterministic.
type StrategySelector struct {
	limits Limits
}

// NewStrategySelector creates a StrategySelector with the given limits.
func NewStrategySelector(limits Limits) *StrategySelector {
	return &StrategySelector{limits: limits}
}

// Select picks the fetch strategy for the playlist. hasLibrary reports
// whether an artist-kind library section is available; without one every
// playlist falls back to direct enumeration.
func (s *StrategySelector) Select(playlist domain.Playlist, hasLibrary bool) domain.Strategy {
	if hasLibrary && strings.Contains(playlist.Title, recentFeedMarker) {
		return domain.StrategyRecentFeed
	}
	if hasLibrary && playlist.HasDeclaredCount &&
		playlist.DeclaredCount > s.limits.LargePlaylistThreshold {
		return domain.StrategyLargeLibraryScan
	}
	return domain.StrategyDirectEnumeration
}

// Cap returns the client-side result cap for the strategy.
func (s *StrategySelector) Cap(strategy domain.Strategy) int {
	switch strategy {
	case domain.StrategyLargeLibraryScan, domain.StrategyRecentFeed:
		return s.limits.LargePlaylistLimit
	default:
		return s.limits.RegularPlaylistLimit
	}
}

// APILimit clamps the cap to the hard API ceiling. This is the value passed
// to the remote call itself, so the server never sees an unbounded request.
func (s *StrategySelector) APILimit(limit int) int {
	if limit > s.limits.MaxAPIResults {
		return s.limits.MaxAPIResults
	}
	return limit
}
