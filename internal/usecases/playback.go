package usecases

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// LoadAndPlayInput contains the input for the LoadAndPlay use case.
type LoadAndPlayInput struct {
	List *domain.TrackList

	// AutoShuffle applies the large-list shuffle rule: a freshly fetched
	// list longer than the shuffle threshold is permuted before the first
	// track starts, surfacing variety from a truncated sample instead of
	// always playing the same prefix.
	AutoShuffle bool
}

// LoadAndPlayOutput contains the result of the LoadAndPlay use case.
type LoadAndPlayOutput struct {
	Track    *domain.Track
	Shuffled bool
}

// PlaybackService owns the playback sequencer and the external player.
// Starting a track always terminates the previous player process first.
type PlaybackService struct {
	player           ports.AudioPlayer
	resolver         *ArtistResolver
	sequencer        *domain.Sequencer
	publisher        ports.EventPublisher
	shuffleThreshold int
	log              *zap.Logger

	// mu serializes playback commands. Key presses and fetch completions
	// arrive on separate goroutines and the sequencer is not safe for
	// concurrent use.
	mu      sync.Mutex
	current *domain.Track
}

// NewPlaybackService creates a new PlaybackService. publisher may be nil.
func NewPlaybackService(
	player ports.AudioPlayer,
	resolver *ArtistResolver,
	sequencer *domain.Sequencer,
	publisher ports.EventPublisher,
	shuffleThreshold int,
	log *zap.Logger,
) *PlaybackService {
	return &PlaybackService{
		player:           player,
		resolver:         resolver,
		sequencer:        sequencer,
		publisher:        publisher,
		shuffleThreshold: shuffleThreshold,
		log:              log,
	}
}

// CurrentIndex returns the sequencer cursor position for display purposes.
func (p *PlaybackService) CurrentIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sequencer.CurrentIndex()
}

// LoadAndPlay loads the list into the sequencer and starts the first track.
func (p *PlaybackService) LoadAndPlay(
	ctx context.Context,
	input LoadAndPlayInput,
) (*LoadAndPlayOutput, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sequencer.Load(input.List)
	if p.sequencer.IsEmpty() {
		return nil, ErrNoTrackSelected
	}

	shuffled := false
	if input.AutoShuffle && p.sequencer.Len() > p.shuffleThreshold {
		p.sequencer.Shuffle()
		shuffled = true
	}

	if err := p.playTrack(ctx, p.sequencer.Current()); err != nil {
		return nil, err
	}
	return &LoadAndPlayOutput{Track: p.sequencer.Current(), Shuffled: shuffled}, nil
}

// PlayCurrent starts the track at the cursor.
func (p *PlaybackService) PlayCurrent(ctx context.Context) (*domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playCurrent(ctx)
}

// Next advances the cursor and plays the new current track. At the end of
// the list the call is a no-op returning nil.
func (p *PlaybackService) Next(ctx context.Context) (*domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	track := p.sequencer.Next()
	if track == nil {
		return nil, nil
	}
	if err := p.playTrack(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

// Previous moves the cursor back and plays the new current track. At the
// start of the list the call is a no-op returning nil.
func (p *PlaybackService) Previous(ctx context.Context) (*domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	track := p.sequencer.Previous()
	if track == nil {
		return nil, nil
	}
	if err := p.playTrack(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

// ShuffleAndRestart permutes the held list and plays from the new first
// track.
func (p *PlaybackService) ShuffleAndRestart(ctx context.Context) (*domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sequencer.IsEmpty() {
		return nil, ErrNoTrackSelected
	}
	p.sequencer.Shuffle()
	return p.playCurrent(ctx)
}

// PlayTrack starts playback of an arbitrary track, e.g. a search result.
func (p *PlaybackService) PlayTrack(ctx context.Context, track *domain.Track) error {
	if track == nil {
		return ErrNoTrackSelected
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playTrack(ctx, track)
}

// TogglePause toggles the paused state of the current player process.
// Returns ErrNothingPlaying before any track has been started.
func (p *PlaybackService) TogglePause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNothingPlaying
	}
	return p.player.TogglePause()
}

// Stop terminates the current player process, if any.
func (p *PlaybackService) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = nil
	return p.player.Stop()
}

// playCurrent starts the track at the cursor. Callers hold mu.
func (p *PlaybackService) playCurrent(ctx context.Context) (*domain.Track, error) {
	track := p.sequencer.Current()
	if track == nil {
		return nil, ErrNoTrackSelected
	}
	if err := p.playTrack(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

// playTrack resolves the stream locator and hands it to the player. Callers
// hold mu. The player terminates any prior process before spawning the next,
// so two audio streams never overlap.
func (p *PlaybackService) playTrack(ctx context.Context, track *domain.Track) error {
	if track.Source == nil {
		return domain.ErrNoPlayableSource
	}
	streamURL, err := track.Source.StreamURL(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNoPlayableSource, err)
	}
	if streamURL == "" {
		return domain.ErrNoPlayableSource
	}

	if err := p.player.Available(); err != nil {
		return err
	}

	if err := p.player.Play(ctx, streamURL); err != nil {
		return err
	}
	p.current = track

	artist := p.resolver.Resolve(ctx, track)
	p.log.Info("started playback",
		zap.String("track", track.ID),
		zap.String("artist", artist),
		zap.String("title", track.Title),
	)
	if p.publisher != nil {
		p.publisher.PublishPlaybackStarted(domain.PlaybackStartedEvent{
			Track:  track,
			Artist: artist,
		})
	}
	return nil
}
