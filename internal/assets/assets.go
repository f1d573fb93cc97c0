// Package assets loads block definitions into face data and atlas sprites.
package assets

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/carvemesh/internal/engine/face"
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/internal/logger"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Block is a loaded carvable block.
type Block struct {
	name string
	data *face.BlockFaceData
}

// Name returns the block name.
func (b *Block) Name() string {
	return b.name
}

// FaceData returns the face data of every variant.
func (b *Block) FaceData() *face.BlockFaceData {
	return b.data
}

// Manager loads definition files and keeps the resulting block registry.
type Manager struct {
	atlas  *sprite.Atlas
	blocks map[string]*Block
	order  []string
	cache  *Cache
	log    *zap.Logger
	mu     sync.RWMutex
}

// NewManager creates a manager registering sprites in atlas.
func NewManager(atlas *sprite.Atlas) *Manager {
	if atlas == nil {
		atlas = sprite.NewAtlas(sprite.DefaultTileSize)
	}
	return &Manager{
		atlas:  atlas,
		blocks: make(map[string]*Block),
		cache:  NewCache(),
		log:    logger.Named("assets"),
	}
}

// Atlas returns the sprite atlas.
func (m *Manager) Atlas() *sprite.Atlas {
	return m.atlas
}

// Cache returns the parsed file cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// LoadFile loads a definitions file. Files already parsed are served from
// the cache.
func (m *Manager) LoadFile(path string) error {
	f, ok := m.cache.Get(path)
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading definitions %s: %w", path, err)
		}
		if f, err = Parse(data); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		m.cache.Set(path, f)
	}
	return m.load(path, f)
}

// LoadBytes loads definitions from memory. source only labels log entries.
func (m *Manager) LoadBytes(source string, data []byte) error {
	f, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}
	return m.load(source, f)
}

// LoadAll loads every file in paths, stopping at the first error.
func (m *Manager) LoadAll(paths []string) error {
	for _, p := range paths {
		if err := m.LoadFile(p); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) load(source string, f *File) error {
	built := make([]*Block, 0, len(f.Blocks))
	for _, bd := range f.Blocks {
		b, err := m.buildBlock(bd)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		built = append(built, b)
	}
	m.atlas.Stitch()

	m.mu.Lock()
	for _, b := range built {
		if _, exists := m.blocks[b.name]; exists {
			m.log.Warn("block redefined", zap.String("block", b.name), zap.String("source", source))
		} else {
			m.order = append(m.order, b.name)
		}
		m.blocks[b.name] = b
	}
	m.mu.Unlock()

	m.log.Info("loaded definitions",
		zap.String("source", source),
		zap.Int("blocks", len(built)),
		zap.Int("sprites", m.atlas.Len()))
	return nil
}

func (m *Manager) buildBlock(bd BlockDef) (*Block, error) {
	variants := make([]*face.VariationFaceData, len(bd.Variants))
	for i, vd := range bd.Variants {
		v, err := m.buildVariant(bd.Name, i, vd)
		if err != nil {
			return nil, err
		}
		variants[i] = v
	}
	data, err := face.NewBlockFaceData(variants...)
	if err != nil {
		return nil, fmt.Errorf("%w: block %s: %v", ErrInvalidDefinition, bd.Name, err)
	}
	return &Block{name: bd.Name, data: data}, nil
}

func (m *Manager) buildVariant(block string, index int, vd VariantDef) (*face.VariationFaceData, error) {
	if vd.Default == nil {
		return nil, fmt.Errorf("%w: block %s variant %d: missing default face", ErrInvalidDefinition, block, index)
	}

	name := vd.Name
	if name == "" {
		name = fmt.Sprintf("%s#%d", block, index)
	}

	def, err := m.buildFace(*vd.Default, m.particle(block, name, vd))
	if err != nil {
		return nil, fmt.Errorf("%w: block %s variant %s: %v", ErrInvalidDefinition, block, name, err)
	}

	overrides := make(map[geom.Facing]*face.Face)
	for f, fd := range vd.sideDefs() {
		if fd == nil {
			continue
		}
		side, err := m.buildFace(*fd, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: block %s variant %s %s: %v", ErrInvalidDefinition, block, name, geom.Facing(f), err)
		}
		overrides[geom.Facing(f)] = side
	}
	for _, f := range vd.Omit {
		overrides[f] = nil
	}

	return face.NewVariation(name, def, overrides), nil
}

// particle resolves a variant's particle sprite. A name that no texture of
// the variant uses falls back to the default face's first sprite.
func (m *Manager) particle(block, variant string, vd VariantDef) *sprite.Sprite {
	if vd.Particle == "" {
		return nil
	}
	for _, n := range vd.SpriteNames() {
		if n == vd.Particle {
			return m.atlas.Register(n)
		}
	}
	m.log.Warn("particle sprite not used by variant, using first texture sprite",
		zap.String("block", block),
		zap.String("variant", variant),
		zap.String("particle", vd.Particle))
	return nil
}

func (m *Manager) buildFace(fd FaceDef, particle *sprite.Sprite) (*face.Face, error) {
	textures := make([]texture.Transform, 0, len(fd.Textures))
	for _, td := range fd.Textures {
		sprites := make([]*sprite.Sprite, len(td.Sprites))
		for i, n := range td.Sprites {
			sprites[i] = m.atlas.Register(n)
		}
		t, err := texture.New(td.Kind, sprites)
		if err != nil {
			return nil, err
		}
		textures = append(textures, t)
	}
	return face.New(fd.Layer, particle, textures...), nil
}

// Block returns a loaded block by name.
func (m *Manager) Block(name string) (*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blocks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, name)
	}
	return b, nil
}

// Blocks returns every loaded block in first-load order.
func (m *Manager) Blocks() []*Block {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Block, len(m.order))
	for i, n := range m.order {
		out[i] = m.blocks[n]
	}
	return out
}

// Close drops every loaded block and cached file.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = make(map[string]*Block)
	m.order = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache of parsed definition files.
type Cache struct {
	data map[string]*File
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*File),
	}
}

// Get retrieves a parsed file from cache.
func (c *Cache) Get(key string) (*File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return f, ok
}

// Set stores a parsed file in cache.
func (c *Cache) Set(key string, f *File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = f
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*File)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
