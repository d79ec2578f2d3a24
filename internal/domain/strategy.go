package domain

// Strategy identifies how a playlist's tracks are fetched from the catalog.
// The three strategies trade cost, completeness and metadata quality
// differently; selection is based on the playlist's declared size and title.
type Strategy int

const (
	// StrategyDirectEnumeration iterates the playlist's own item sequence.
	// Complete for small playlists, slow for very large ones.
	StrategyDirectEnumeration Strategy = iota

	// StrategyLargeLibraryScan runs a capped library-wide track search
	// instead of enumerating an oversized playlist. Fast, returns full
	// metadata, intentionally incomplete.
	StrategyLargeLibraryScan

	// StrategyRecentFeed uses the library's recently-added feed, matching
	// the semantics of a "Recently Added" playlist without enumerating it.
	StrategyRecentFeed
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyLargeLibraryScan:
		return "library-scan"
	case StrategyRecentFeed:
		return "recent-feed"
	default:
		return "direct"
	}
}
