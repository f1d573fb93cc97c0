package sprite

import (
	"sort"
	"sync"
)

// MissingName is the well-known name of the missing-texture sprite.
const MissingName = "missingno"

// DefaultTileSize is the pixel edge of one atlas tile.
const DefaultTileSize = 16

// Atlas lays block sprites out on a square, power-of-two tile grid.
//
// Register hands out stable *Sprite pointers; Stitch fills in their
// coordinates and may be called again after more sprites are registered.
type Atlas struct {
	tileSize    int
	size        int
	tilesPerRow int
	order       []string
	sprites     map[string]*Sprite
	dirty       bool
	mu          sync.RWMutex
}

// NewAtlas creates a stitched atlas holding only the missing sprite.
func NewAtlas(tileSize int) *Atlas {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	a := &Atlas{
		tileSize: tileSize,
		sprites:  make(map[string]*Sprite),
	}
	a.Register(MissingName)
	a.Stitch()
	return a
}

// Register returns the sprite for name, adding it if it is new.
func (a *Atlas) Register(name string) *Sprite {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.sprites[name]; ok {
		return s
	}
	s := &Sprite{Name: name, Width: a.tileSize, Height: a.tileSize}
	a.sprites[name] = s
	a.order = append(a.order, name)
	a.dirty = true
	return s
}

// Stitch assigns every registered sprite a tile, in registration order.
func (a *Atlas) Stitch() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Tiles per row, doubled until the grid can hold every sprite
	tilesPerRow := 1
	for tilesPerRow*tilesPerRow < len(a.order) {
		tilesPerRow *= 2
	}
	a.tilesPerRow = tilesPerRow
	a.size = tilesPerRow * a.tileSize

	inv := 1.0 / float32(a.size)
	for i, name := range a.order {
		s := a.sprites[name]
		s.X = (i % tilesPerRow) * a.tileSize
		s.Y = (i / tilesPerRow) * a.tileSize
		s.Width = a.tileSize
		s.Height = a.tileSize
		s.MinU = float32(s.X) * inv
		s.MinV = float32(s.Y) * inv
		s.MaxU = float32(s.X+s.Width) * inv
		s.MaxV = float32(s.Y+s.Height) * inv
	}
	a.dirty = false
}

// Sprite returns the named sprite if it is registered.
func (a *Atlas) Sprite(name string) (*Sprite, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sprites[name]
	return s, ok
}

// Lookup returns the named sprite, or the missing sprite if unknown.
func (a *Atlas) Lookup(name string) *Sprite {
	if s, ok := a.Sprite(name); ok {
		return s
	}
	return a.Missing()
}

// Missing returns the missing-texture sprite.
func (a *Atlas) Missing() *Sprite {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sprites[MissingName]
}

// Dirty reports whether sprites were registered since the last Stitch.
func (a *Atlas) Dirty() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dirty
}

// Len returns the number of registered sprites, the missing sprite included.
func (a *Atlas) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.order)
}

// Size returns the atlas edge in pixels as of the last Stitch.
func (a *Atlas) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}

// TileSize returns the pixel edge of one tile.
func (a *Atlas) TileSize() int {
	return a.tileSize
}

// Names returns the registered sprite names in sorted order.
func (a *Atlas) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, len(a.order))
	copy(names, a.order)
	sort.Strings(names)
	return names
}
