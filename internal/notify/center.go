package notify

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Center hands out one Store per user, each mirrored to its own file under
// the state directory.
type Center struct {
	mu     sync.Mutex
	dir    string
	stores map[string]*Store
}

func NewCenter(dir string) *Center {
	return &Center{
		dir:    dir,
		stores: make(map[string]*Store),
	}
}

// ForUser returns the user's store, loading its persisted log on first
// access.
func (c *Center) ForUser(userID string) *Store {
	c.mu.Lock()
	defer c.mu.Unlock()

	if store, ok := c.stores[userID]; ok {
		return store
	}

	path := filepath.Join(c.dir, fmt.Sprintf("notifications_%s.json", userID))
	store := NewStore(NewFilePersister(path))
	c.stores[userID] = store
	return store
}
