package texture

import (
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// NormalTexture paints one sprite over the quad.
type NormalTexture struct {
	sprite *sprite.Sprite
}

// NewNormal creates a normal texture for s.
func NewNormal(s *sprite.Sprite) *NormalTexture {
	return &NormalTexture{sprite: s}
}

func (t *NormalTexture) Kind() Kind               { return KindNormal }
func (t *NormalTexture) QuadsPerSide() int        { return KindNormal.QuadsPerSide() }
func (t *NormalTexture) Particle() *sprite.Sprite { return t.sprite }

// TransformQuad subdivides into quadGoal pieces so the output lines up
// with a sibling transform emitting more quads per side.
func (t *NormalTexture) TransformQuad(q geom.Quad, _ Context, quadGoal int) []geom.Quad {
	parts := q.Subdivide(quadGoal)
	for i := range parts {
		parts[i] = Retexture(parts[i], t.sprite)
	}
	return parts
}
