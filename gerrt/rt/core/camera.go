package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a Y-up perspective camera looking at Target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 20, 50},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) Forward() mgl32.Vec3 {
	f := c.Target.Sub(c.Position)
	if f.Len() < epsilon {
		return mgl32.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ScreenToRay converts pixel coordinates (origin top-left) into a world ray by
// unprojecting the near and far NDC points.
func (c *Camera) ScreenToRay(x, y float64, width, height int) Ray {
	ndcX := float32(2*x/float64(width) - 1)
	ndcY := float32(1 - 2*y/float64(height)) // Flip Y for NDC
	return c.NDCToRay(ndcX, ndcY)
}

func (c *Camera) NDCToRay(ndcX, ndcY float32) Ray {
	inv := c.ViewProjection().Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	if near.W() != 0 {
		near = near.Mul(1 / near.W())
	}
	if far.W() != 0 {
		far = far.Mul(1 / far.W())
	}

	dir := far.Vec3().Sub(near.Vec3())
	if dir.Len() < epsilon {
		dir = c.Forward()
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// Project maps a world point into normalised device coordinates.
func (c *Camera) Project(p mgl32.Vec3) mgl32.Vec3 {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() == 0 {
		return clip.Vec3()
	}
	return clip.Vec3().Mul(1 / clip.W())
}
