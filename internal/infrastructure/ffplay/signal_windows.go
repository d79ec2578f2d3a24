//go:build windows

package ffplay

import (
	"os"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

func terminate(process *os.Process) error {
	return process.Kill()
}

// Windows has no signal to flip ffplay's paused state.
func togglePause(_ *os.Process) error {
	return domain.ErrPauseUnsupported
}
