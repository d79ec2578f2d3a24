package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// UnknownArtist is the display value when every resolution tier is
// exhausted. Resolution is total: callers always get a non-empty string.
const UnknownArtist = "Unknown"

// artistTier is one step of the resolution chain. It returns "" when the
// tier produced nothing, letting the chain move on.
type artistTier struct {
	name string
	run  func(ctx context.Context, track *domain.Track) string
}

// ArtistResolver turns a track into a display artist string through an
// ordered chain of increasingly expensive lookups. Cheap local-field reads
// come first; a full reload and a dedicated artist fetch are attempted only
// when every cheaper tier fails. The result is memoized on the track, so
// list redraws never re-trigger the expensive tiers.
type ArtistResolver struct {
	tiers []artistTier
	log   *zap.Logger
}

// NewArtistResolver creates an ArtistResolver.
func NewArtistResolver(log *zap.Logger) *ArtistResolver {
	r := &ArtistResolver{log: log}
	r.tiers = []artistTier{
		{"grandparent-title", r.fromGrandparentTitle},
		{"raw-document", r.fromDocument},
		{"original-title", r.fromOriginalTitle},
		{"parent-title", r.fromParentTitle},
		{"reload", r.fromReload},
		{"artist-entity", r.fromArtistEntity},
	}
	return r
}

// Resolve returns the display artist for the track. Never fails: the chain
// swallows every tier's errors and falls back to UnknownArtist when
// exhausted.
func (r *ArtistResolver) Resolve(ctx context.Context, track *domain.Track) string {
	if track == nil {
		return UnknownArtist
	}
	if artist, ok := track.Artist(); ok {
		return artist
	}

	for _, tier := range r.tiers {
		if artist := tier.run(ctx, track); artist != "" {
			r.log.Debug("resolved artist",
				zap.String("track", track.ID),
				zap.String("tier", tier.name),
			)
			track.SetArtist(artist)
			return artist
		}
	}

	track.SetArtist(UnknownArtist)
	return UnknownArtist
}

// Tier 1: the structured grandparent title, the catalog's modeling of
// "artist" for a track nested under album and artist.
func (r *ArtistResolver) fromGrandparentTitle(_ context.Context, track *domain.Track) string {
	if track.Source == nil {
		return ""
	}
	return readStructured(track.Source, FieldGrandparentTitle)
}

// Tier 2: raw-document scan over the artist lineage fields, first non-empty
// wins. No remote call.
func (r *ArtistResolver) fromDocument(_ context.Context, track *domain.Track) string {
	if track.Source == nil {
		return ""
	}
	return readDocument(track.Source.Document(),
		FieldGrandparentTitle, FieldOriginalTitle, FieldParentTitle)
}

// Tier 3: the structured original title.
func (r *ArtistResolver) fromOriginalTitle(_ context.Context, track *domain.Track) string {
	if track.Source == nil {
		return ""
	}
	return readStructured(track.Source, FieldOriginalTitle)
}

// Tier 4: the structured parent title. That is the album name, the weakest
// signal, accepted as better than nothing.
func (r *ArtistResolver) fromParentTitle(_ context.Context, track *domain.Track) string {
	if track.Source == nil {
		return ""
	}
	return readStructured(track.Source, FieldParentTitle)
}

// Tier 5: reload the track by identity with children included, then retry
// the structured grandparent title and the raw-document scan against the
// reloaded handle. Only attempted when an identity is available.
func (r *ArtistResolver) fromReload(ctx context.Context, track *domain.Track) string {
	if track.Source == nil || track.ID == "" {
		return ""
	}
	reloaded, err := track.Source.Reload(ctx, true)
	if err != nil {
		r.log.Debug("track reload failed",
			zap.String("track", track.ID),
			zap.Error(err),
		)
		return ""
	}
	if artist := readStructured(reloaded, FieldGrandparentTitle); artist != "" {
		return artist
	}
	return readDocument(reloaded.Document(),
		FieldGrandparentTitle, FieldOriginalTitle, FieldParentTitle)
}

// Tier 6: a dedicated artist-entity fetch. A separate remote call and the
// last resort.
func (r *ArtistResolver) fromArtistEntity(ctx context.Context, track *domain.Track) string {
	if track.Source == nil {
		return ""
	}
	artist, err := track.Source.ArtistName(ctx)
	if err != nil {
		r.log.Debug("artist entity fetch failed",
			zap.String("track", track.ID),
			zap.Error(err),
		)
		return ""
	}
	return strings.TrimSpace(artist)
}
