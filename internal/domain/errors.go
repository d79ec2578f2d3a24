package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the application.
var (
	// ErrEndOfItems is returned by TrackIterator.Next when the sequence is
	// exhausted.
	ErrEndOfItems = errors.New("no more items")

	// ErrNotSupported is returned by catalog adapters when the server does
	// not expose the requested access method. Fallback chains treat it like
	// any other failure and move to the next tier.
	ErrNotSupported = errors.New("not supported by server")

	// ErrNoPlayableSource is returned when a track has no resolvable stream
	// locator. Playback is not attempted.
	ErrNoPlayableSource = errors.New("track has no playable source")

	// ErrPlayerUnavailable is returned when the external player executable
	// cannot be located.
	ErrPlayerUnavailable = errors.New("player executable not found")

	// ErrPauseUnsupported is returned when the platform offers no way to
	// toggle pause on the player process.
	ErrPauseUnsupported = errors.New("pause is not supported on this platform")
)

// FetchError is returned when every fallback method for the selected fetch
// strategy failed. It carries the last underlying cause.
type FetchError struct {
	Strategy Strategy
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for strategy %s: %v", e.Strategy, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ConnectionError is returned when the initial catalog session could not be
// established. The client stays up with an empty playlist list instead of
// exiting.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
