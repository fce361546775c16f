package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is pickable triangle geometry in object space. Indices may be empty,
// in which case Positions is read as a flat triangle list.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Indices   []uint32
}

func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

func (m *Mesh) Triangle(i int) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	if len(m.Indices) > 0 {
		return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
	}
	return m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]
}

func (m *Mesh) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range m.Positions {
		b = b.Expand(p)
	}
	return b
}

// Intersect returns the nearest triangle hit distance along ray.
func (m *Mesh) Intersect(ray Ray) (float32, bool) {
	if _, ok := ray.IntersectAABB(m.Bounds()); !ok {
		return 0, false
	}
	best := float32(0)
	found := false
	for i := 0; i < m.TriangleCount(); i++ {
		if m.maxIndex(i) >= len(m.Positions) {
			continue
		}
		a, b, c := m.Triangle(i)
		if t, ok := ray.IntersectTriangle(a, b, c); ok && (!found || t < best) {
			best = t
			found = true
		}
	}
	return best, found
}

func (m *Mesh) maxIndex(i int) int {
	if len(m.Indices) == 0 {
		return 3*i + 2
	}
	return int(max(m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]))
}

// Clone deep copies the vertex data.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	out := &Mesh{Name: m.Name}
	out.Positions = append([]mgl32.Vec3(nil), m.Positions...)
	out.Indices = append([]uint32(nil), m.Indices...)
	return out
}

// NewQuadXZ builds a horizontal quad centred on the origin.
func NewQuadXZ(name string, width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	return &Mesh{
		Name: name,
		Positions: []mgl32.Vec3{
			{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}

// NewBox builds an axis aligned box mesh spanning min..max.
func NewBox(name string, lo, hi mgl32.Vec3) *Mesh {
	p := []mgl32.Vec3{
		{lo.X(), lo.Y(), lo.Z()}, {hi.X(), lo.Y(), lo.Z()}, {hi.X(), hi.Y(), lo.Z()}, {lo.X(), hi.Y(), lo.Z()},
		{lo.X(), lo.Y(), hi.Z()}, {hi.X(), lo.Y(), hi.Z()}, {hi.X(), hi.Y(), hi.Z()}, {lo.X(), hi.Y(), hi.Z()},
	}
	idx := []uint32{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
	}
	return &Mesh{Name: name, Positions: p, Indices: idx}
}

// NewRing builds a flat annulus in the XZ plane around the origin.
func NewRing(name string, inner, outer float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: name}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		m.Positions = append(m.Positions, mgl32.Vec3{c * inner, 0, s * inner}, mgl32.Vec3{c * outer, 0, s * outer})
	}
	n := uint32(segments)
	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		a, b, c, d := 2*i, 2*i+1, 2*j, 2*j+1
		m.Indices = append(m.Indices, a, b, d, a, d, c)
	}
	return m
}
