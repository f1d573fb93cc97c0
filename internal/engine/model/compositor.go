package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/carvemesh/internal/engine/face"
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/internal/logger"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Compositor builds variant meshes over a base mesh.
type Compositor struct {
	base    QuadSource
	pass    LayerSource
	missing *sprite.Sprite
}

// NewCompositor creates a compositor. pass is read once per full-render
// composite; a nil pass always reports the solid layer.
func NewCompositor(base QuadSource, pass LayerSource, missing *sprite.Sprite) *Compositor {
	if pass == nil {
		pass = FixedLayer(geom.Solid)
	}
	return &Compositor{base: base, pass: pass, missing: missing}
}

// Placeholder returns an empty mesh with no variant data bound.
func (c *Compositor) Placeholder() *Mesh {
	return newMesh(face.Unresolved{}, c.missing)
}

// Composite rewrites the base mesh through data's faces.
//
// With a context list (in-world rendering) a facing only contributes when
// its face is on the active pass, and every transform is asked for the
// largest quads-per-side on that face. Without one (item rendering) every
// layer contributes and the quad goal is 1. A nil data yields a placeholder.
func (c *Compositor) Composite(block string, data *face.VariationFaceData, ctx *texture.ContextList) *Mesh {
	if data == nil {
		return c.Placeholder()
	}

	m := newMesh(face.Resolved{Data: data}, c.missing)
	inWorld := ctx != nil

	var active geom.Layer
	if inWorld {
		active = c.pass.ActiveLayer()
	}

	for _, f := range geom.Facings {
		fc, ok := data.Face(f)
		if !ok {
			continue
		}

		if inWorld && fc.Layer() != active {
			logger.Debug("skipping layer",
				zap.String("block", block),
				zap.Stringer("facing", f),
				zap.Stringer("layer", fc.Layer()),
				zap.Stringer("pass", active))
			continue
		}

		quadGoal := 1
		if inWorld {
			quadGoal = fc.QuadGoal()
		}

		native := c.base.FaceQuads(f)
		general := quadsFacing(c.base.GeneralQuads(), f)

		m.faceQuads[f] = transformAll(m.faceQuads[f], native, fc, ctx, quadGoal)
		m.general = transformAll(m.general, general, fc, ctx, quadGoal)
	}

	return m
}

// transformAll runs every quad in from through the face's transforms in
// paint order, appending the results to to. Outputs are tagged with the
// face's layer.
func transformAll(to, from []geom.Quad, fc *face.Face, ctx *texture.ContextList, quadGoal int) []geom.Quad {
	layer := fc.Layer()
	for _, q := range from {
		for _, tex := range fc.Textures() {
			for _, out := range tex.TransformQuad(q, ctx.Get(tex.Kind()), quadGoal) {
				to = append(to, out.WithLayer(layer))
			}
		}
	}
	return to
}

// quadsFacing returns the quads whose facing is f.
func quadsFacing(quads []geom.Quad, f geom.Facing) []geom.Quad {
	var out []geom.Quad
	for _, q := range quads {
		if q.Face == f {
			out = append(out, q)
		}
	}
	return out
}
