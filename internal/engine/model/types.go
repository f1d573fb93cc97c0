// Package model composites per-instance block meshes: it rewrites a base
// mesh facing by facing through each variant's texture transforms, filtered
// by the active render pass.
package model

import (
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// QuadSource is the mesh-query capability: quads per facing plus the
// general quads that are not tied to a facing.
type QuadSource interface {
	FaceQuads(f geom.Facing) []geom.Quad
	GeneralQuads() []geom.Quad
}

// PerspectiveAware is the camera-transform capability.
type PerspectiveAware interface {
	HandlePerspective(kind CameraTransform) Perspective
}

// BakedModel is everything the host renderer queries on a realized mesh.
type BakedModel interface {
	QuadSource
	PerspectiveAware
	AmbientOcclusion() bool
	Gui3D() bool
	BuiltInRenderer() bool
	ParticleSprite() *sprite.Sprite
	CameraTransforms() ItemCameraTransforms
}

// LayerSource reports the render pass currently being drawn.
type LayerSource interface {
	ActiveLayer() geom.Layer
}

// LayerFunc adapts a function to LayerSource.
type LayerFunc func() geom.Layer

// ActiveLayer implements LayerSource.
func (f LayerFunc) ActiveLayer() geom.Layer {
	return f()
}

// FixedLayer is a LayerSource that always reports the same pass.
type FixedLayer geom.Layer

// ActiveLayer implements LayerSource.
func (l FixedLayer) ActiveLayer() geom.Layer {
	return geom.Layer(l)
}
