//go:build !windows

package ffplay

import (
	"os"
	"syscall"
)

func terminate(process *os.Process) error {
	return process.Signal(syscall.SIGTERM)
}

// ffplay toggles pause on SIGUSR1.
func togglePause(process *os.Process) error {
	return process.Signal(syscall.SIGUSR1)
}
