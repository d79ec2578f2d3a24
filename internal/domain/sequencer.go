package domain

import "math/rand"

// Sequencer holds the active track list and a cursor into it, using an
// index-based model. The cursor stays within [0, len) whenever the list is
// non-empty; moving past either boundary is a no-op rather than a wrap.
type Sequencer struct {
	list         *TrackList
	currentIndex int
}

// NewSequencer creates a new empty Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Load replaces the held track list and resets the cursor to the first
// track.
func (s *Sequencer) Load(list *TrackList) {
	s.list = list
	s.currentIndex = 0
}

// List returns the currently held track list, or nil if none is loaded.
func (s *Sequencer) List() *TrackList {
	return s.list
}

// Len returns the number of tracks in the held list.
func (s *Sequencer) Len() int {
	return s.list.Len()
}

// IsEmpty returns true if no list is loaded or the list has no tracks.
func (s *Sequencer) IsEmpty() bool {
	return s.Len() == 0
}

// CurrentIndex returns the cursor position.
func (s *Sequencer) CurrentIndex() int {
	return s.currentIndex
}

// Current returns the track at the cursor, or nil if the list is empty.
func (s *Sequencer) Current() *Track {
	if s.IsEmpty() {
		return nil
	}
	return s.list.Tracks[s.currentIndex]
}

// Next advances the cursor and returns the new current track. At the last
// track (or on an empty list) the cursor does not move and nil is returned.
func (s *Sequencer) Next() *Track {
	if s.IsEmpty() || s.currentIndex >= s.Len()-1 {
		return nil
	}
	s.currentIndex++
	return s.list.Tracks[s.currentIndex]
}

// Previous moves the cursor back and returns the new current track. At the
// first track (or on an empty list) the cursor does not move and nil is
// returned.
func (s *Sequencer) Previous() *Track {
	if s.IsEmpty() || s.currentIndex <= 0 {
		return nil
	}
	s.currentIndex--
	return s.list.Tracks[s.currentIndex]
}

// Shuffle permutes the held tracks in place and resets the cursor to the
// first track. No-op when the list is empty.
func (s *Sequencer) Shuffle() {
	if s.IsEmpty() {
		return
	}
	tracks := s.list.Tracks
	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
	s.currentIndex = 0
}

// Clear drops the held list and resets the cursor.
func (s *Sequencer) Clear() {
	s.list = nil
	s.currentIndex = 0
}
