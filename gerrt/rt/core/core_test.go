package core

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	expected := mgl32.Vec3{10, 0, -1}
	if p.Sub(expected).Len() > 1e-4 {
		t.Errorf("expected %v, got %v", expected, p)
	}
}

func TestAABBTransformAndUnion(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}}
	moved := box.Transform(mgl32.Translate3D(5, 0, 0))
	assert.InDelta(t, 4.0, moved.Min.X(), 1e-5)
	assert.InDelta(t, 6.0, moved.Max.X(), 1e-5)

	u := box.Union(moved)
	assert.InDelta(t, -1.0, u.Min.X(), 1e-5)
	assert.InDelta(t, 6.0, u.Max.X(), 1e-5)
	assert.Equal(t, box, box.Union(EmptyAABB()))
	assert.Equal(t, mgl32.Vec3{}, EmptyAABB().Size())
	assert.True(t, u.Contains(mgl32.Vec3{3, 1, 0}))
}

func TestMeshIntersect(t *testing.T) {
	box := NewBox("box", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	require.Equal(t, 12, box.TriangleCount())

	tHit, ok := box.Intersect(Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}})
	require.True(t, ok)
	assert.InDelta(t, 9.0, tHit, 1e-4)

	_, ok = box.Intersect(Ray{Origin: mgl32.Vec3{5, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)

	// Out of range indices are skipped rather than panicking
	broken := &Mesh{Positions: []mgl32.Vec3{{0, 0, 0}}, Indices: []uint32{0, 1, 2}}
	_, ok = broken.Intersect(Ray{Origin: mgl32.Vec3{0, 1, 0}, Direction: mgl32.Vec3{0, -1, 0}})
	assert.False(t, ok)
}

func TestMeshClone(t *testing.T) {
	quad := NewQuadXZ("floor", 2, 2)
	c := quad.Clone()
	c.Positions[0] = mgl32.Vec3{9, 9, 9}
	assert.NotEqual(t, quad.Positions[0], c.Positions[0])

	var nilMesh *Mesh
	assert.Nil(t, nilMesh.Clone())
}

func TestCameraScreenToRayCentre(t *testing.T) {
	cam := NewCamera(60, 16.0/9.0, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 10, 10}
	cam.Target = mgl32.Vec3{0, 0, 0}

	ray := cam.ScreenToRay(640, 360, 1280, 720)
	expected := cam.Target.Sub(cam.Position).Normalize()
	if ray.Direction.Sub(expected).Len() > 1e-2 {
		t.Errorf("centre ray should look at target: got %v, expected %v", ray.Direction, expected)
	}
}

func TestCameraProjectRoundTrip(t *testing.T) {
	cam := NewCamera(60, 1.5, 0.1, 100)
	cam.Position = mgl32.Vec3{3, 15, 35}
	cam.Target = mgl32.Vec3{0, 5, 0}

	world := mgl32.Vec3{2, 1, -3}
	ndc := cam.Project(world)
	ray := cam.NDCToRay(ndc.X(), ndc.Y())

	// The point must lie on the ray through its own projection
	_, _, d := ClosestPoints(ray.Origin, ray.Direction, world, mgl32.Vec3{1, 0, 0})
	assert.Less(t, d, float32(5e-2))
}

func TestLoggerOrNop(t *testing.T) {
	l := OrNop(nil)
	require.NotNil(t, l)
	assert.False(t, l.DebugEnabled())

	dl := NewDefaultLogger("test", false)
	dl.SetDebug(true)
	assert.True(t, dl.DebugEnabled())
	assert.Equal(t, Logger(dl), OrNop(dl))
}

func TestWriterLoggerRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("ger", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("placed %s", "toono")
	l.Warnf("missing %s", "uya")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[ger] INFO: placed toono")
	assert.Contains(t, errOut.String(), "[ger] WARN: missing uya")

	l.SetDebug(true)
	l.Debugf("shown")
	assert.Contains(t, out.String(), "DEBUG: shown")
}

func TestQuatToEulerRoundTrip(t *testing.T) {
	for _, e := range []mgl32.Vec3{
		{0, 0, 0},
		{0, mgl32.DegToRad(90) - 0.01, 0},
		{0.3, -0.4, 1.2},
		{-1.1, 0.2, -2.5},
	} {
		tr := NewTransform()
		tr.Rotation = e
		got := QuatToEuler(tr.Quat())
		assert.True(t, got.ApproxEqualThreshold(e, 1e-3), "expected %v, got %v", e, got)
	}
}

func TestRingIntersect(t *testing.T) {
	ring := NewRing("ring", 1.8, 2.2, 32)
	assert.Equal(t, 64, ring.TriangleCount())

	down := mgl32.Vec3{0, -1, 0}
	_, ok := ring.Intersect(Ray{Origin: mgl32.Vec3{1.2, 5, 1.6}, Direction: down})
	assert.True(t, ok, "ray through the band must hit")
	_, ok = ring.Intersect(Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: down})
	assert.False(t, ok, "ray through the hole must miss")
}
