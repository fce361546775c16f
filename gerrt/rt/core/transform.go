package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a node's local placement. Rotation holds Euler angles in
// radians applied in XYZ order.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z(), mgl32.XYZ)
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Quat().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Snap rounds a to the nearest multiple of step. A non-positive step disables snapping.
func Snap(a, step float32) float32 {
	if step <= 0 {
		return a
	}
	return float32(math.Round(float64(a/step))) * step
}

// QuatToEuler decomposes q into XYZ Euler angles.
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := float32(math.Asin(float64(mgl32.Clamp(m13, -1, 1))))
	if math.Abs(float64(m13)) < 0.9999999 {
		x := float32(math.Atan2(float64(-m23), float64(m33)))
		z := float32(math.Atan2(float64(-m12), float64(m11)))
		return mgl32.Vec3{x, y, z}
	}
	x := float32(math.Atan2(float64(m32), float64(m22)))
	return mgl32.Vec3{x, y, 0}
}
