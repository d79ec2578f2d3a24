package usecases

import "errors"

// Errors returned by the playback and search services.
var (
	// ErrNoTrackSelected is returned when playback is requested but the
	// sequencer holds no current track.
	ErrNoTrackSelected = errors.New("no track selected")

	// ErrNothingPlaying is returned when a pause toggle is requested with
	// no active playback process.
	ErrNothingPlaying = errors.New("nothing is currently playing")

	// ErrNoResults is returned when a search yields no results.
	ErrNoResults = errors.New("no results found")
)
