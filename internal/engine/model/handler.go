package model

import (
	"github.com/Faultbox/carvemesh/internal/engine/face"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
)

// Carvable is a block whose variants are re-skinned by the compositor.
type Carvable interface {
	Name() string
	FaceData() *face.BlockFaceData
}

// BlockState is an in-world realization request. Variant arrives unclamped.
// Contexts is owned by the caller and only used for the duration of the call.
type BlockState struct {
	Block    Carvable
	Variant  int
	Contexts *texture.ContextList
}

// ItemStack is an inventory or hand realization request.
type ItemStack struct {
	Block  Carvable
	Damage int
}

// Options configures a Model.
type Options struct {
	// CacheItems memoizes item meshes per block face data and clamped variant.
	CacheItems bool
}

// Model turns block and item states into composited meshes.
type Model struct {
	compositor  *Compositor
	placeholder *Mesh
	items       *ItemCache
}

// NewModel creates a model around a compositor.
func NewModel(c *Compositor, opts Options) *Model {
	m := &Model{
		compositor:  c,
		placeholder: c.Placeholder(),
	}
	if opts.CacheItems {
		m.items = NewItemCache()
	}
	return m
}

// Placeholder returns the unresolved mesh handed out for non-carvable states.
func (m *Model) Placeholder() *Mesh {
	return m.placeholder
}

// ItemCache returns the item mesh cache, nil when caching is off.
func (m *Model) ItemCache() *ItemCache {
	return m.items
}

// HandleBlockState composites the mesh for an in-world block.
func (m *Model) HandleBlockState(state BlockState) *Mesh {
	data := faceData(state.Block)
	if data == nil {
		return m.placeholder
	}
	variant := data.ForVariant(state.Variant)
	return m.compositor.Composite(state.Block.Name(), variant, state.Contexts)
}

// HandleItemState composites the mesh for an item. Items never see a
// context, so every layer is merged and each transform emits one quad.
func (m *Model) HandleItemState(stack ItemStack) *Mesh {
	data := faceData(stack.Block)
	if data == nil {
		return m.placeholder
	}

	key := itemKey{data: data, variant: data.Clamp(stack.Damage)}
	if m.items != nil {
		if mesh, ok := m.items.get(key); ok {
			return mesh
		}
	}

	mesh := m.compositor.Composite(stack.Block.Name(), data.ForVariant(key.variant), nil)
	if m.items != nil {
		m.items.set(key, mesh)
	}
	return mesh
}

func faceData(block Carvable) *face.BlockFaceData {
	if block == nil {
		return nil
	}
	return block.FaceData()
}
