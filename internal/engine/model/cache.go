package model

import (
	"sync"

	"github.com/Faultbox/carvemesh/internal/engine/face"
)

// itemKey identifies block face data by pointer, so a block redefined under
// the same name never hits meshes built from its old data.
type itemKey struct {
	data    *face.BlockFaceData
	variant int
}

// ItemCache memoizes item meshes. Item meshes depend only on the block's
// face data and clamped variant, unlike in-world meshes whose contexts change
// per render.
type ItemCache struct {
	meshes map[itemKey]*Mesh
	mu     sync.RWMutex

	hits   int
	misses int
}

// NewItemCache creates an empty cache.
func NewItemCache() *ItemCache {
	return &ItemCache{meshes: make(map[itemKey]*Mesh)}
}

// get retrieves a cached mesh.
func (c *ItemCache) get(key itemKey) (*Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mesh, ok := c.meshes[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return mesh, ok
}

// set stores a mesh.
func (c *ItemCache) set(key itemKey, mesh *Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes[key] = mesh
}

// Len returns the number of cached meshes.
func (c *ItemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.meshes)
}

// Clear drops every cached mesh, e.g. after definitions are reloaded.
func (c *ItemCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes = make(map[itemKey]*Mesh)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *ItemCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
