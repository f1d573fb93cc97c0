package model

import (
	"github.com/Faultbox/carvemesh/internal/engine/face"
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Mesh is a composited block mesh. Its quads never change after it is
// built; only the third-person perspective slot is filled lazily.
// Meshes must be passed by pointer.
type Mesh struct {
	faceQuads [geom.FacingCount][]geom.Quad
	general   []geom.Quad
	binding   face.Binding
	missing   *sprite.Sprite
	cameras   ItemCameraTransforms
	persp     perspectiveCache
}

var _ BakedModel = (*Mesh)(nil)

func newMesh(binding face.Binding, missing *sprite.Sprite) *Mesh {
	return &Mesh{
		binding: binding,
		missing: missing,
		cameras: DefaultCameraTransforms(),
	}
}

// FaceQuads returns the quads composited for facing f.
func (m *Mesh) FaceQuads(f geom.Facing) []geom.Quad {
	if !f.Valid() {
		return nil
	}
	return m.faceQuads[f]
}

// GeneralQuads returns the quads derived from the base mesh's general set.
func (m *Mesh) GeneralQuads() []geom.Quad {
	return m.general
}

// QuadCount returns the total number of quads in the mesh.
func (m *Mesh) QuadCount() int {
	n := len(m.general)
	for _, quads := range m.faceQuads {
		n += len(quads)
	}
	return n
}

// AmbientOcclusion reports that the host should apply ambient occlusion.
func (m *Mesh) AmbientOcclusion() bool { return true }

// Gui3D reports that the mesh renders in 3D in inventories.
func (m *Mesh) Gui3D() bool { return true }

// BuiltInRenderer reports that the host draws the quads itself.
func (m *Mesh) BuiltInRenderer() bool { return false }

// Binding returns the variant data the mesh was built from.
func (m *Mesh) Binding() face.Binding {
	return m.binding
}

// ParticleSprite returns the default face's particle sprite. The missing
// sprite stands in when no variant data is bound or the default face has no
// particle.
func (m *Mesh) ParticleSprite() *sprite.Sprite {
	switch b := m.binding.(type) {
	case face.Resolved:
		if p := b.Data.Default().Particle(); p != nil {
			return p
		}
		return m.missing
	default:
		return m.missing
	}
}

// CameraTransforms returns the per-kind item placements.
func (m *Mesh) CameraTransforms() ItemCameraTransforms {
	return m.cameras
}

// HandlePerspective returns the model and matrix for a camera transform.
// The third-person pair is computed once per mesh and reused; every other
// kind gets the mesh itself with no matrix.
func (m *Mesh) HandlePerspective(kind CameraTransform) Perspective {
	if kind == TransformThirdPerson {
		return m.persp.thirdPerson(m)
	}
	return Perspective{Model: m}
}
