// Package sprite provides texture atlas sprites and tile-grid atlas stitching.
package sprite

import "github.com/go-gl/mathgl/mgl32"

// Sprite is a named region of the block texture atlas.
type Sprite struct {
	Name string

	// Pixel rectangle inside the atlas.
	X, Y          int
	Width, Height int

	// Normalized atlas coordinates of the rectangle.
	MinU, MinV float32
	MaxU, MaxV float32
}

// InterpolatedU maps a local coordinate in [0,1] to an atlas U.
func (s *Sprite) InterpolatedU(u float32) float32 {
	return s.MinU + (s.MaxU-s.MinU)*u
}

// InterpolatedV maps a local coordinate in [0,1] to an atlas V.
func (s *Sprite) InterpolatedV(v float32) float32 {
	return s.MinV + (s.MaxV-s.MinV)*v
}

// Interpolate maps a local UV in [0,1]^2 to atlas coordinates.
func (s *Sprite) Interpolate(uv mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{s.InterpolatedU(uv[0]), s.InterpolatedV(uv[1])}
}

// InterpolateCell maps a local UV into cell (col,row) of a cols x rows grid
// laid over the sprite, for sprites that pack several block textures.
func (s *Sprite) InterpolateCell(uv mgl32.Vec2, col, row, cols, rows int) mgl32.Vec2 {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	local := mgl32.Vec2{
		(float32(col) + uv[0]) / float32(cols),
		(float32(row) + uv[1]) / float32(rows),
	}
	return s.Interpolate(local)
}

// Contains reports whether an atlas coordinate falls inside the sprite.
func (s *Sprite) Contains(uv mgl32.Vec2) bool {
	return uv[0] >= s.MinU && uv[0] <= s.MaxU && uv[1] >= s.MinV && uv[1] <= s.MaxV
}
