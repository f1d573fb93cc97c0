package texture

import (
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Edges each quadrant of a 2x2 subdivision touches, in Subdivide order.
var quadrantEdges = [4]EdgeMask{
	EdgeLeft | EdgeTop,
	EdgeRight | EdgeTop,
	EdgeLeft | EdgeBottom,
	EdgeRight | EdgeBottom,
}

// CTMTexture is a connected texture: each quarter of a face switches to the
// seamless sprite when both edges it borders connect to a matching block.
type CTMTexture struct {
	base      *sprite.Sprite
	connected *sprite.Sprite
}

// NewCTM creates a connected texture from its bordered and seamless sprites.
func NewCTM(base, connected *sprite.Sprite) *CTMTexture {
	return &CTMTexture{base: base, connected: connected}
}

func (t *CTMTexture) Kind() Kind               { return KindCTM }
func (t *CTMTexture) QuadsPerSide() int        { return KindCTM.QuadsPerSide() }
func (t *CTMTexture) Particle() *sprite.Sprite { return t.base }

// TransformQuad emits the whole quad with the base sprite when there is no
// connection state or a single quad is wanted, and four quadrants otherwise.
func (t *CTMTexture) TransformQuad(q geom.Quad, ctx Context, quadGoal int) []geom.Quad {
	conn, _ := ctx.(*ConnectionContext)
	if conn == nil || quadGoal <= 1 {
		return []geom.Quad{Retexture(q, t.base)}
	}

	mask := conn.Connections(q.Face)
	parts := q.Subdivide(len(quadrantEdges))
	for i := range parts {
		s := t.base
		if mask.Has(quadrantEdges[i]) {
			s = t.connected
		}
		parts[i] = Retexture(parts[i], s)
	}
	return parts
}
