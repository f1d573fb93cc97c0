package texture

import (
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// RandomTexture picks one of several sprites per block position.
type RandomTexture struct {
	sprites []*sprite.Sprite
}

// NewRandom creates a random texture over the given alternatives.
func NewRandom(sprites ...*sprite.Sprite) *RandomTexture {
	return &RandomTexture{sprites: sprites}
}

func (t *RandomTexture) Kind() Kind               { return KindRandom }
func (t *RandomTexture) QuadsPerSide() int        { return KindRandom.QuadsPerSide() }
func (t *RandomTexture) Particle() *sprite.Sprite { return t.sprites[0] }

// Index returns the alternative used at pos.
func (t *RandomTexture) Index(pos Pos) int {
	return int(PositionHash(pos) % uint64(len(t.sprites)))
}

// TransformQuad retextures with the alternative chosen for the block
// position, or the first one without context.
func (t *RandomTexture) TransformQuad(q geom.Quad, ctx Context, quadGoal int) []geom.Quad {
	s := t.sprites[0]
	if pc, ok := ctx.(*PositionContext); ok && pc != nil {
		s = t.sprites[t.Index(pc.Pos)]
	}

	parts := q.Subdivide(quadGoal)
	for i := range parts {
		parts[i] = Retexture(parts[i], s)
	}
	return parts
}

// PositionHash is a stable, well-mixed hash of a block position.
func PositionHash(p Pos) uint64 {
	h := int64(p.X)*3129871 ^ int64(p.Z)*116129781 ^ int64(p.Y)
	h = h*h*42317861 + h*11
	return uint64(h >> 16)
}
