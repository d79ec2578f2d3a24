package ports

import "context"

// AudioPlayer defines the interface for the external playback process.
// Implementations own at most one playback process at a time.
type AudioPlayer interface {
	// Available reports whether the player executable can be located.
	// Returns domain.ErrPlayerUnavailable when it cannot.
	Available() error

	// Play starts playback of the given stream URL. Any prior playback
	// process is terminated synchronously before the new one is spawned so
	// two audio streams never overlap.
	Play(ctx context.Context, streamURL string) error

	// Stop terminates the current playback process, if any.
	Stop() error

	// TogglePause toggles the paused state of the current playback process.
	TogglePause() error
}
