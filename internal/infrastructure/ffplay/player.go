package ffplay

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// DefaultCommand is the player binary used when none is configured.
const DefaultCommand = "ffplay"

// playerArgs keeps ffplay headless: no video window, exit when the stream
// ends, no log chatter competing with the terminal UI.
var playerArgs = []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}

// homebrewPaths are probed on macOS when the binary is not on PATH; GUI
// terminal sessions often miss the Homebrew bin directories.
var homebrewPaths = []string{"/opt/homebrew/bin", "/usr/local/bin"}

// Player plays streams by spawning one external player process at a time.
// Starting a track terminates the previous process first, so two audio
// streams never overlap.
type Player struct {
	command string
	log     *zap.Logger

	mu      sync.Mutex
	path    string
	process *os.Process
}

// NewPlayer creates a Player for the given command, e.g. "ffplay".
func NewPlayer(command string, log *zap.Logger) *Player {
	if command == "" {
		command = DefaultCommand
	}
	return &Player{command: command, log: log}
}

// Available reports whether the player binary can be located.
func (p *Player) Available() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.locate()
	return err
}

// Play starts playback of the given stream, terminating any prior player
// process. The spawned process runs detached from ctx: it keeps playing
// after the call returns.
func (p *Player) Play(_ context.Context, streamURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	path, err := p.locate()
	if err != nil {
		return err
	}

	p.stopLocked()

	args := make([]string, 0, len(playerArgs)+1)
	args = append(args, playerArgs...)
	args = append(args, streamURL)

	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.command, err)
	}
	p.process = cmd.Process
	p.log.Debug("spawned player process",
		zap.String("command", path),
		zap.Int("pid", cmd.Process.Pid),
	)

	// Reap the process when it exits so it never lingers as a zombie.
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Stop terminates the current player process, if any.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

// TogglePause toggles the paused state of the running process. A no-op when
// nothing is playing.
func (p *Player) TogglePause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.process == nil {
		return nil
	}
	return togglePause(p.process)
}

func (p *Player) stopLocked() {
	if p.process == nil {
		return
	}
	// The process may already have exited on its own.
	_ = terminate(p.process)
	p.process = nil
}

// locate resolves the player binary path, memoized for the session.
func (p *Player) locate() (string, error) {
	if p.path != "" {
		return p.path, nil
	}

	if path, err := exec.LookPath(p.command); err == nil {
		p.path = path
		return path, nil
	}

	if runtime.GOOS == "darwin" {
		for _, dir := range homebrewPaths {
			candidate := filepath.Join(dir, p.command)
			if info, err := os.Stat(candidate); err == nil && info.Mode().Perm()&0o111 != 0 {
				p.path = candidate
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s not found", domain.ErrPlayerUnavailable, p.command)
}

var _ ports.AudioPlayer = (*Player)(nil)
