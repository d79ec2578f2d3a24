package usecases

import (
	"testing"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

func TestStrategySelector_Select(t *testing.T) {
	selector := NewStrategySelector(DefaultLimits())

	tests := []struct {
		name       string
		playlist   domain.Playlist
		hasLibrary bool
		want       domain.Strategy
	}{
		{
			name:       "unknown count defaults to direct enumeration",
			playlist:   domain.Playlist{ID: "P1", Title: "Mix"},
			hasLibrary: true,
			want:       domain.StrategyDirectEnumeration,
		},
		{
			name: "small declared count uses direct enumeration",
			playlist: domain.Playlist{
				ID: "P1", Title: "Mix", DeclaredCount: 500, HasDeclaredCount: true,
			},
			hasLibrary: true,
			want:       domain.StrategyDirectEnumeration,
		},
		{
			name: "count at threshold is not large",
			playlist: domain.Playlist{
				ID: "P1", Title: "Mix", DeclaredCount: 1000, HasDeclaredCount: true,
			},
			hasLibrary: true,
			want:       domain.StrategyDirectEnumeration,
		},
		{
			name: "count above threshold uses library scan",
			playlist: domain.Playlist{
				ID: "P1", Title: "Big Mix", DeclaredCount: 5000, HasDeclaredCount: true,
			},
			hasLibrary: true,
			want:       domain.StrategyLargeLibraryScan,
		},
		{
			name: "large playlist without library falls back to direct",
			playlist: domain.Playlist{
				ID: "P1", Title: "Big Mix", DeclaredCount: 5000, HasDeclaredCount: true,
			},
			hasLibrary: false,
			want:       domain.StrategyDirectEnumeration,
		},
		{
			name:       "recently added title uses recent feed",
			playlist:   domain.Playlist{ID: "P2", Title: "Recently Added"},
			hasLibrary: true,
			want:       domain.StrategyRecentFeed,
		},
		{
			name:       "recent feed marker as substring",
			playlist:   domain.Playlist{ID: "P2", Title: "My Recently Added Music"},
			hasLibrary: true,
			want:       domain.StrategyRecentFeed,
		},
		{
			name:       "marker match is case-sensitive",
			playlist:   domain.Playlist{ID: "P2", Title: "recently added"},
			hasLibrary: true,
			want:       domain.StrategyDirectEnumeration,
		},
		{
			name: "recent feed takes precedence over large scan",
			playlist: domain.Playlist{
				ID: "P2", Title: "Recently Added", DeclaredCount: 5000, HasDeclaredCount: true,
			},
			hasLibrary: true,
			want:       domain.StrategyRecentFeed,
		},
		{
			name:       "recent feed title without library uses direct",
			playlist:   domain.Playlist{ID: "P2", Title: "Recently Added"},
			hasLibrary: false,
			want:       domain.StrategyDirectEnumeration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selector.Select(tt.playlist, tt.hasLibrary)
			if got != tt.want {
				t.Errorf("Select() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStrategySelector_Cap(t *testing.T) {
	selector := NewStrategySelector(DefaultLimits())

	tests := []struct {
		strategy domain.Strategy
		want     int
	}{
		{domain.StrategyLargeLibraryScan, 50},
		{domain.StrategyRecentFeed, 50},
		{domain.StrategyDirectEnumeration, 100},
	}

	for _, tt := range tests {
		if got := selector.Cap(tt.strategy); got != tt.want {
			t.Errorf("Cap(%s) = %d, want %d", tt.strategy, got, tt.want)
		}
	}
}

func TestStrategySelector_APILimit(t *testing.T) {
	selector := NewStrategySelector(Limits{
		LargePlaylistThreshold: 1000,
		LargePlaylistLimit:     2000,
		RegularPlaylistLimit:   100,
		MaxAPIResults:          1000,
	})

	if got := selector.APILimit(2000); got != 1000 {
		t.Errorf("expected limit clamped to API ceiling 1000, got %d", got)
	}
	if got := selector.APILimit(100); got != 100 {
		t.Errorf("expected limit under ceiling unchanged, got %d", got)
	}
}
