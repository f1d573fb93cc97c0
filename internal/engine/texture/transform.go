package texture

import (
	"fmt"

	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Transform rewrites one input quad into zero or more output quads.
//
// ctx is the context registered for Kind() in the current render, or nil
// when there is none (item rendering, or nothing registered). quadGoal is
// the number of quads sibling transforms on the same face aim for, so a
// transform can size its output consistently with them.
type Transform interface {
	Kind() Kind
	QuadsPerSide() int
	TransformQuad(q geom.Quad, ctx Context, quadGoal int) []geom.Quad
	Particle() *sprite.Sprite
}

// Retexture maps a quad's local [0,1] UVs onto s and tags it with s's name.
func Retexture(q geom.Quad, s *sprite.Sprite) geom.Quad {
	return q.MapUV(s.Interpolate).WithSprite(s.Name)
}

// New creates the built-in transform for kind from its sprites.
//
//	normal, v4, v9: exactly one sprite is used (the first)
//	ctm:            base sprite, connected sprite
//	r:              one or more alternatives
func New(kind Kind, sprites []*sprite.Sprite) (Transform, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if len(sprites) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSprites, kind)
	}
	for i, s := range sprites {
		if s == nil {
			return nil, fmt.Errorf("%w: %s sprite %d is nil", ErrNoSprites, kind, i)
		}
	}

	switch kind {
	case KindCTM:
		if len(sprites) < 2 {
			return nil, fmt.Errorf("%w: ctm needs 2 sprites, got %d", ErrSpriteCount, len(sprites))
		}
		return NewCTM(sprites[0], sprites[1]), nil
	case KindV4, KindV9:
		return NewVariation(kind, sprites[0]), nil
	case KindRandom:
		return NewRandom(sprites...), nil
	default:
		return NewNormal(sprites[0]), nil
	}
}
