// Package face binds block variants to per-facing texture lists and layers.
package face

import (
	"errors"
	"fmt"

	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// ErrNoVariants is returned when block face data is built without variants.
var ErrNoVariants = errors.New("block has no variants")

// Face is one cube side's ordered texture list plus its render layer.
// Transforms are applied in paint order: later outputs follow earlier ones.
type Face struct {
	textures []texture.Transform
	layer    geom.Layer
	particle *sprite.Sprite
}

// New creates a face. A nil particle falls back to the first texture's.
func New(layer geom.Layer, particle *sprite.Sprite, textures ...texture.Transform) *Face {
	list := make([]texture.Transform, len(textures))
	copy(list, textures)
	if particle == nil && len(list) > 0 {
		particle = list[0].Particle()
	}
	return &Face{textures: list, layer: layer, particle: particle}
}

// Textures returns the transforms in paint order. A nil face has none.
func (f *Face) Textures() []texture.Transform {
	if f == nil {
		return nil
	}
	return f.textures
}

// Layer returns the render layer the face is drawn in, solid for a nil face.
func (f *Face) Layer() geom.Layer {
	if f == nil {
		return geom.Solid
	}
	return f.layer
}

// Particle returns the face's particle sprite, nil if it has none.
func (f *Face) Particle() *sprite.Sprite {
	if f == nil {
		return nil
	}
	return f.particle
}

// Kinds returns the texture kinds used by the face, in paint order.
func (f *Face) Kinds() []texture.Kind {
	textures := f.Textures()
	kinds := make([]texture.Kind, len(textures))
	for i, t := range textures {
		kinds[i] = t.Kind()
	}
	return kinds
}

// QuadGoal returns the largest quads-per-side among the face's textures,
// or 1 for a face without textures.
func (f *Face) QuadGoal() int {
	goal := 1
	for i, t := range f.Textures() {
		if n := t.QuadsPerSide(); i == 0 || n > goal {
			goal = n
		}
	}
	return goal
}

// VariationFaceData is the face layout of one block variant: a Face per
// facing (possibly absent) and the default face used for particles.
type VariationFaceData struct {
	name  string
	def   *Face
	sides [geom.FacingCount]*Face
}

// NewVariation creates variant face data. Every facing uses def unless
// overrides names it; an override mapped to nil leaves that facing empty.
func NewVariation(name string, def *Face, overrides map[geom.Facing]*Face) *VariationFaceData {
	v := &VariationFaceData{name: name, def: def}
	for _, f := range geom.Facings {
		v.sides[f] = def
		if o, ok := overrides[f]; ok {
			v.sides[f] = o
		}
	}
	return v
}

// Name returns the variant name.
func (v *VariationFaceData) Name() string {
	return v.name
}

// Face returns the face for facing f, ok=false when the facing has none.
func (v *VariationFaceData) Face(f geom.Facing) (*Face, bool) {
	if !f.Valid() || v.sides[f] == nil {
		return nil, false
	}
	return v.sides[f], true
}

// Faces returns the face of every facing in canonical order.
func (v *VariationFaceData) Faces() [geom.FacingCount]*Face {
	return v.sides
}

// Default returns the default face.
func (v *VariationFaceData) Default() *Face {
	return v.def
}

// Kinds returns every distinct texture kind used across the six facings.
func (v *VariationFaceData) Kinds() []texture.Kind {
	var seen [len(texture.Kinds)]bool
	var kinds []texture.Kind
	for _, f := range v.sides {
		if f == nil {
			continue
		}
		for _, k := range f.Kinds() {
			if k.Valid() && !seen[k] {
				seen[k] = true
				kinds = append(kinds, k)
			}
		}
	}
	return kinds
}

// BlockFaceData holds the face data of every variant of a block.
type BlockFaceData struct {
	variants []*VariationFaceData
}

// NewBlockFaceData creates block face data; at least one variant is required.
func NewBlockFaceData(variants ...*VariationFaceData) (*BlockFaceData, error) {
	if len(variants) == 0 {
		return nil, ErrNoVariants
	}
	for i, v := range variants {
		if v == nil {
			return nil, fmt.Errorf("variant %d is nil", i)
		}
	}
	list := make([]*VariationFaceData, len(variants))
	copy(list, variants)
	return &BlockFaceData{variants: list}, nil
}

// Len returns the number of variants.
func (b *BlockFaceData) Len() int {
	return len(b.variants)
}

// Clamp limits index to [0, Len()).
func (b *BlockFaceData) Clamp(index int) int {
	return max(0, min(index, len(b.variants)-1))
}

// ForVariant returns the face data of a variant. Out-of-range indices are
// clamped, so the lookup never fails.
func (b *BlockFaceData) ForVariant(index int) *VariationFaceData {
	return b.variants[b.Clamp(index)]
}

// Resolve returns the six faces and the default face of a variant.
func (b *BlockFaceData) Resolve(index int) ([geom.FacingCount]*Face, *Face) {
	v := b.ForVariant(index)
	return v.Faces(), v.Default()
}

// Variants returns every variant in index order.
func (b *BlockFaceData) Variants() []*VariationFaceData {
	return b.variants
}
