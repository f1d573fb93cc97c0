package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/carvemesh/pkg/geom"
)

// StaticMesh is a fixed, render-agnostic base mesh.
type StaticMesh struct {
	faces   [geom.FacingCount][]geom.Quad
	general []geom.Quad
}

// NewStaticMesh creates a base mesh from facing-native and general quads.
func NewStaticMesh(faces map[geom.Facing][]geom.Quad, general []geom.Quad) *StaticMesh {
	m := &StaticMesh{general: general}
	for f, quads := range faces {
		if f.Valid() {
			m.faces[f] = quads
		}
	}
	return m
}

// FaceQuads implements QuadSource.
func (m *StaticMesh) FaceQuads(f geom.Facing) []geom.Quad {
	if !f.Valid() {
		return nil
	}
	return m.faces[f]
}

// GeneralQuads implements QuadSource.
func (m *StaticMesh) GeneralQuads() []geom.Quad {
	return m.general
}

// Cube returns the unit cube base mesh: one facing-native quad per facing
// with local UVs spanning [0,1] and laid out along the facing's UV frame.
func Cube() *StaticMesh {
	faces := make(map[geom.Facing][]geom.Quad, geom.FacingCount)
	for _, f := range geom.Facings {
		faces[f] = []geom.Quad{CubeFace(f)}
	}
	return NewStaticMesh(faces, nil)
}

// Parametric corners in vertex order.
var cubeCornerST = [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// CubeFace returns the unit cube quad for facing f.
func CubeFace(f geom.Facing) geom.Quad {
	d := toVec(f.Dir())
	u, v := f.Frame()
	uv3, vv3 := toVec(u), toVec(v)
	center := mgl32.Vec3{0.5, 0.5, 0.5}.Add(d.Mul(0.5))

	var corners [4]mgl32.Vec3
	var uvs [4]mgl32.Vec2
	for i, st := range cubeCornerST {
		corners[i] = center.Add(uv3.Mul(st[0] - 0.5)).Add(vv3.Mul(st[1] - 0.5))
		uvs[i] = mgl32.Vec2{st[0], st[1]}
	}
	return geom.NewQuad(f, geom.Solid, corners, uvs)
}

func toVec(d [3]int) mgl32.Vec3 {
	return mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])}
}
