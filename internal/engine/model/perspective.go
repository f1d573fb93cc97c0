package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraTransform is the context an item model is drawn in.
type CameraTransform uint8

const (
	TransformNone CameraTransform = iota
	TransformThirdPerson
	TransformFirstPerson
	TransformHead
	TransformGUI
	TransformGround
	TransformFixed
	cameraTransformCount
)

var cameraTransformNames = [cameraTransformCount]string{
	"none", "third_person", "first_person", "head", "gui", "ground", "fixed",
}

func (k CameraTransform) String() string {
	if k >= cameraTransformCount {
		return fmt.Sprintf("CameraTransform(%d)", uint8(k))
	}
	return cameraTransformNames[k]
}

// ParseCameraTransform converts a name such as "third_person" to a kind.
func ParseCameraTransform(name string) (CameraTransform, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, cn := range cameraTransformNames {
		if cn == n {
			return CameraTransform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown camera transform: %q", name)
}

// ItemTransform is a translate-rotate-scale placement of an item model.
// Rotation is in degrees, applied in Y, X, Z order.
type ItemTransform struct {
	Rotation    mgl32.Vec3
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
}

// IdentityTransform leaves the model untouched.
var IdentityTransform = ItemTransform{Scale: mgl32.Vec3{1, 1, 1}}

// Matrix returns translation * rotation * scale.
func (t ItemTransform) Matrix() mgl32.Mat4 {
	rot := mgl32.AnglesToQuat(
		mgl32.DegToRad(t.Rotation.Y()),
		mgl32.DegToRad(t.Rotation.X()),
		mgl32.DegToRad(t.Rotation.Z()),
		mgl32.YXZ,
	)
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// ThirdPersonTransform is the default block placement in a third-person hand.
var ThirdPersonTransform = ItemTransform{
	Rotation:    mgl32.Vec3{10, -45, 170},
	Translation: mgl32.Vec3{0, 1.5 / 16, -2.75 / 16},
	Scale:       mgl32.Vec3{0.375, 0.375, 0.375},
}

// ItemCameraTransforms holds a placement per camera transform kind.
type ItemCameraTransforms [cameraTransformCount]ItemTransform

// DefaultCameraTransforms returns identity placements for every kind.
func DefaultCameraTransforms() ItemCameraTransforms {
	var t ItemCameraTransforms
	for i := range t {
		t[i] = IdentityTransform
	}
	return t
}

// Get returns the placement for kind, identity for unknown kinds.
func (t ItemCameraTransforms) Get(kind CameraTransform) ItemTransform {
	if kind >= cameraTransformCount {
		return IdentityTransform
	}
	return t[kind]
}

// Perspective is the model to draw for a camera transform and the matrix to
// apply to it. A nil Matrix means none.
type Perspective struct {
	Model  BakedModel
	Matrix *mgl32.Mat4
}

// perspectiveCache memoizes the third-person pair of one mesh.
type perspectiveCache struct {
	once sync.Once
	pair Perspective
}

func (c *perspectiveCache) thirdPerson(m BakedModel) Perspective {
	c.once.Do(func() {
		mat := ThirdPersonTransform.Matrix()
		c.pair = Perspective{Model: m, Matrix: &mat}
	})
	return c.pair
}
