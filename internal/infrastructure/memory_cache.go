package infrastructure

import (
	"sync"

	"github.com/MacsInSpace/plex-tui/internal/domain"
	"github.com/MacsInSpace/plex-tui/internal/ports"
)

// MemoryCache is an in-memory implementation of TrackListCache. Entries
// live until the user explicitly clears them; there is no expiry.
type MemoryCache struct {
	mu    sync.RWMutex
	lists map[string]*domain.TrackList
}

// NewMemoryCache creates a new MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		lists: make(map[string]*domain.TrackList),
	}
}

// Get returns the cached track list for the given playlist, if any.
func (c *MemoryCache) Get(playlistID string) (*domain.TrackList, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list, ok := c.lists[playlistID]
	return list, ok
}

// Put stores the track list for the given playlist, replacing any
// previous entry.
func (c *MemoryCache) Put(playlistID string, list *domain.TrackList) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lists[playlistID] = list
}

// Clear removes the entry for the given playlist.
func (c *MemoryCache) Clear(playlistID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.lists, playlistID)
}

// Count returns the number of cached lists (for testing/monitoring).
func (c *MemoryCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.lists)
}

// Ensure MemoryCache implements TrackListCache.
var _ ports.TrackListCache = (*MemoryCache)(nil)
