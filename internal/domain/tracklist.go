package domain

import "time"

// Timings records the duration breakdown of one fetch operation. The values
// are diagnostic only and never influence control flow.
type Timings struct {
	// Setup is the time spent before dispatching the remote call.
	Setup time.Duration
	// Dispatch is the time from dispatch to the first result.
	Dispatch time.Duration
	// Collect is the time spent materializing the result set.
	Collect time.Duration
}

// Total returns the sum of all recorded phases.
func (t Timings) Total() time.Duration {
	return t.Setup + t.Dispatch + t.Collect
}

// TrackList is the ordered result of one fetch operation, tagged with the
// strategy that produced it. Its length never exceeds the cap the fetch ran
// with.
type TrackList struct {
	Tracks   []*Track
	Strategy Strategy

	// Truncated is set when the server-reported total exceeds the number of
	// tracks actually fetched. Truncation is an accepted outcome, not a
	// failure.
	Truncated bool

	// DeclaredCount mirrors the playlist's server-reported total at fetch
	// time; HasDeclaredCount reports whether it was known.
	DeclaredCount    int
	HasDeclaredCount bool

	Timings Timings
}

// Len returns the number of tracks in the list.
func (l *TrackList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Tracks)
}

// IsEmpty returns true if the list holds no tracks.
func (l *TrackList) IsEmpty() bool {
	return l.Len() == 0
}
