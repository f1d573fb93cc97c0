// Package geom provides the block-space geometry shared by the compositor:
// cube facings, render layers and immutable quads.
package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownFacing is returned when a facing name cannot be parsed.
var ErrUnknownFacing = errors.New("unknown facing")

// Facing is one of the six directions a cube face can point.
type Facing uint8

// Facings in canonical enumeration order.
const (
	Down Facing = iota
	Up
	North
	South
	West
	East
)

// FacingCount is the number of canonical facings.
const FacingCount = 6

// Facings lists every facing in canonical order.
var Facings = [FacingCount]Facing{Down, Up, North, South, West, East}

var facingNames = [FacingCount]string{"down", "up", "north", "south", "west", "east"}

// Integer direction vectors, indexed by facing.
var facingDirs = [FacingCount][3]int{
	{0, -1, 0},
	{0, 1, 0},
	{0, 0, -1},
	{0, 0, 1},
	{-1, 0, 0},
	{1, 0, 0},
}

// Face-plane frames: the world directions that U and V increase along
// when looking at the face from outside the cube.
var facingFrames = [FacingCount][2][3]int{
	{{1, 0, 0}, {0, 0, -1}},  // down
	{{1, 0, 0}, {0, 0, 1}},   // up
	{{-1, 0, 0}, {0, -1, 0}}, // north
	{{1, 0, 0}, {0, -1, 0}},  // south
	{{0, 0, 1}, {0, -1, 0}},  // west
	{{0, 0, -1}, {0, -1, 0}}, // east
}

// Valid reports whether f is one of the six canonical facings.
func (f Facing) Valid() bool {
	return f < FacingCount
}

func (f Facing) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Facing(%d)", uint8(f))
	}
	return facingNames[f]
}

// Opposite returns the facing pointing the other way.
func (f Facing) Opposite() Facing {
	return f ^ 1
}

// Dir returns the integer unit offset toward the neighbour on this side.
func (f Facing) Dir() [3]int {
	return facingDirs[f]
}

// Normal returns the outward unit normal.
func (f Facing) Normal() mgl32.Vec3 {
	d := facingDirs[f]
	return mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])}
}

// Frame returns the world directions along which U and V increase on this face.
func (f Facing) Frame() (u, v [3]int) {
	fr := facingFrames[f]
	return fr[0], fr[1]
}

// ParseFacing converts a lowercase facing name to a Facing.
func ParseFacing(name string) (Facing, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, fn := range facingNames {
		if fn == n {
			return Facing(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFacing, name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFacing, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Facing) UnmarshalText(text []byte) error {
	parsed, err := ParseFacing(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
