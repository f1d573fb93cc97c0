package texture

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// VariationTexture treats its sprite as an NxN grid of block textures
// (2x2 for v4, 3x3 for v9) and picks the cell from the block position, so
// neighbouring blocks tile the grid.
type VariationTexture struct {
	kind   Kind
	sprite *sprite.Sprite
}

// NewVariation creates a v4 or v9 texture.
func NewVariation(kind Kind, s *sprite.Sprite) *VariationTexture {
	return &VariationTexture{kind: kind, sprite: s}
}

func (t *VariationTexture) Kind() Kind               { return t.kind }
func (t *VariationTexture) QuadsPerSide() int        { return t.kind.QuadsPerSide() }
func (t *VariationTexture) Particle() *sprite.Sprite { return t.sprite }

// Cell returns the grid cell for facing f of the block at pos.
func (t *VariationTexture) Cell(f geom.Facing, pos Pos) (col, row int) {
	n := t.kind.GridSize()
	u, v := f.Frame()
	return floorMod(pos.Dot(u), n), floorMod(pos.Dot(v), n)
}

// TransformQuad retextures into the grid cell for the quad's block, or
// cell (0,0) when no position is known.
func (t *VariationTexture) TransformQuad(q geom.Quad, ctx Context, quadGoal int) []geom.Quad {
	n := t.kind.GridSize()
	col, row := 0, 0
	if pc, ok := ctx.(*PositionContext); ok && pc != nil {
		col, row = t.Cell(q.Face, pc.Pos)
	}

	mapUV := func(uv mgl32.Vec2) mgl32.Vec2 {
		return t.sprite.InterpolateCell(uv, col, row, n, n)
	}
	parts := q.Subdivide(quadGoal)
	for i := range parts {
		parts[i] = parts[i].MapUV(mapUV).WithSprite(t.sprite.Name)
	}
	return parts
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
