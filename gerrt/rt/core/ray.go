package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform moves the ray into another space. The direction is not
// renormalised so hit distances stay comparable across spaces.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// Plane is the set of points p with Normal.Dot(p) + Constant == 0.
type Plane struct {
	Normal   mgl32.Vec3
	Constant float32
}

func PlaneFromNormalAndPoint(normal, point mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Constant: -n.Dot(point)}
}

// HorizontalPlane is the plane with an up normal passing through point.
func HorizontalPlane(point mgl32.Vec3) Plane {
	return PlaneFromNormalAndPoint(mgl32.Vec3{0, 1, 0}, point)
}

func (p Plane) Distance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Constant
}

// IntersectPlane returns the point where the ray meets the plane. Rays parallel
// to the plane, or meeting it behind the origin, report false.
func (r Ray) IntersectPlane(p Plane) (mgl32.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if float32(math.Abs(float64(denom))) < epsilon {
		return mgl32.Vec3{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectAABB is a slab test. It returns the entry distance (0 when the
// origin is inside) and whether the box is hit in front of the origin.
func (r Ray) IntersectAABB(box AABB) (float32, bool) {
	if box.Empty() {
		return 0, false
	}
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if float32(math.Abs(float64(d))) < epsilon {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (box.Min[axis] - o) * inv
		t2 := (box.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// IntersectTriangle is Moller-Trumbore, double sided.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if float32(math.Abs(float64(det))) < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// ClosestPoints returns the ray parameter t, the line parameter s and the
// distance between the closest points of ray (ro, rd) and line (ao, ad).
func ClosestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < epsilon {
		return 0, 0, r.Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}
