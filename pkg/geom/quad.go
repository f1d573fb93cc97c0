package geom

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// NoTint marks a quad that is not colour-tinted by the host.
const NoTint = -1

// Vertex is a quad corner with its texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
}

// Quad is a 4-vertex textured rectangle, the atomic renderable primitive.
//
// Vertices run counter-clockwise seen from outside, starting at the corner
// where U and V are smallest: (s,t) = (0,0), (0,1), (1,1), (1,0).
// Quads are values; every method returns a new quad.
type Quad struct {
	Vertices  [4]Vertex
	Normal    mgl32.Vec3
	TintIndex int
	Face      Facing
	Layer     Layer
	Sprite    string
}

// Parametric coordinates of each corner.
var cornerST = [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// NewQuad creates an untinted quad for the given facing and layer.
func NewQuad(face Facing, layer Layer, corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) Quad {
	q := Quad{
		Normal:    face.Normal(),
		TintIndex: NoTint,
		Face:      face,
		Layer:     layer,
	}
	for i := range q.Vertices {
		q.Vertices[i] = Vertex{Position: corners[i], UV: uvs[i]}
	}
	return q
}

// At returns the bilinearly interpolated vertex at parametric (s,t).
func (q Quad) At(s, t float32) Vertex {
	w0 := (1 - s) * (1 - t)
	w1 := (1 - s) * t
	w2 := s * t
	w3 := s * (1 - t)

	v := q.Vertices
	return Vertex{
		Position: v[0].Position.Mul(w0).Add(v[1].Position.Mul(w1)).Add(v[2].Position.Mul(w2)).Add(v[3].Position.Mul(w3)),
		UV:       v[0].UV.Mul(w0).Add(v[1].UV.Mul(w1)).Add(v[2].UV.Mul(w2)).Add(v[3].UV.Mul(w3)),
	}
}

// Region returns the sub-quad spanning parametric [s0,s1] x [t0,t1].
func (q Quad) Region(s0, t0, s1, t1 float32) Quad {
	out := q
	for i, st := range cornerST {
		s := s0 + (s1-s0)*st[0]
		t := t0 + (t1-t0)*st[1]
		out.Vertices[i] = q.At(s, t)
	}
	return out
}

// GridSize returns the columns and rows Subdivide uses for count pieces.
// The grid is as square as count allows while cols*rows == count.
func GridSize(count int) (cols, rows int) {
	if count <= 1 {
		return 1, 1
	}
	cols = 1
	limit := int(gomath.Sqrt(float64(count)))
	for c := limit; c >= 1; c-- {
		if count%c == 0 {
			cols = c
			break
		}
	}
	return cols, count / cols
}

// Subdivide splits the quad into exactly count pieces laid out row by row.
// A count below 2 returns the quad itself.
func (q Quad) Subdivide(count int) []Quad {
	if count <= 1 {
		return []Quad{q}
	}
	cols, rows := GridSize(count)
	out := make([]Quad, 0, count)
	for r := 0; r < rows; r++ {
		t0 := float32(r) / float32(rows)
		t1 := float32(r+1) / float32(rows)
		for c := 0; c < cols; c++ {
			s0 := float32(c) / float32(cols)
			s1 := float32(c+1) / float32(cols)
			out = append(out, q.Region(s0, t0, s1, t1))
		}
	}
	return out
}

// MapUV returns a copy with fn applied to every texture coordinate.
func (q Quad) MapUV(fn func(uv mgl32.Vec2) mgl32.Vec2) Quad {
	out := q
	for i := range out.Vertices {
		out.Vertices[i].UV = fn(q.Vertices[i].UV)
	}
	return out
}

// WithSprite returns a copy tagged with the given sprite name.
func (q Quad) WithSprite(name string) Quad {
	q.Sprite = name
	return q
}

// WithLayer returns a copy baked for another render layer.
func (q Quad) WithLayer(l Layer) Quad {
	q.Layer = l
	return q
}

// WithTint returns a copy with another tint index.
func (q Quad) WithTint(index int) Quad {
	q.TintIndex = index
	return q
}

// Center returns the average of the four corner positions.
func (q Quad) Center() mgl32.Vec3 {
	var c mgl32.Vec3
	for _, v := range q.Vertices {
		c = c.Add(v.Position)
	}
	return c.Mul(0.25)
}

// UVBounds returns the min and max texture coordinates of the quad.
func (q Quad) UVBounds() (lo, hi mgl32.Vec2) {
	lo = q.Vertices[0].UV
	hi = q.Vertices[0].UV
	for _, v := range q.Vertices[1:] {
		lo = mgl32.Vec2{min(lo[0], v.UV[0]), min(lo[1], v.UV[1])}
		hi = mgl32.Vec2{max(hi[0], v.UV[0]), max(hi[1], v.UV[1])}
	}
	return lo, hi
}
