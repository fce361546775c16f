package scene

import (
	"testing"

	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoxPart(partID string, pos mgl32.Vec3) *Node {
	root := NewNode(partID, InstanceTag{PartID: partID})
	root.Transform.Position = pos
	child := NewNode(partID+"_mesh", nil)
	child.Mesh = core.NewBox("box", mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1})
	root.Add(child)
	return root
}

func TestInstancesKeepSceneOrder(t *testing.T) {
	s := NewScene()
	floor := NewNode("floor", FloorTag{})
	a := newBoxPart("hana", mgl32.Vec3{0, 0, 0})
	b := newBoxPart("toono", mgl32.Vec3{5, 0, 0})
	s.Add(a)
	s.Add(floor)
	s.Add(b)

	inst := s.Instances()
	require.Len(t, inst, 2)
	assert.Same(t, a, inst[0])
	assert.Same(t, b, inst[1])

	removed := s.RemoveInstances()
	assert.Len(t, removed, 2)
	assert.Empty(t, s.Instances())
	assert.Len(t, s.Children(), 1, "floor stays in the scene")
	assert.Nil(t, a.Parent())
}

func TestTopLevelWalksOwnershipChain(t *testing.T) {
	s := NewScene()
	part := newBoxPart("bagana", mgl32.Vec3{})
	s.Add(part)
	mesh := part.Children()[0]
	grandchild := NewNode("detail", nil)
	mesh.Add(grandchild)

	assert.Same(t, part, s.TopLevel(grandchild))
	assert.Same(t, part, s.TopLevel(part))
	assert.Nil(t, s.TopLevel(NewNode("loose", nil)))
	assert.True(t, s.Contains(grandchild))

	s.Remove(part)
	assert.False(t, s.Contains(grandchild))
}

func TestRaycastNearestAndVisibility(t *testing.T) {
	s := NewScene()
	near := newBoxPart("hana", mgl32.Vec3{0, 0, 5})
	far := newBoxPart("uni", mgl32.Vec3{0, 0, -5})
	s.Add(near)
	s.Add(far)

	ray := core.Ray{Origin: mgl32.Vec3{0, 1, 20}, Direction: mgl32.Vec3{0, 0, -1}}
	hit, ok := s.Raycast(ray, nil)
	require.True(t, ok)
	assert.Same(t, near, s.TopLevel(hit.Node))
	assert.InDelta(t, 14.0, hit.Distance, 1e-4)
	assert.InDelta(t, 6.0, hit.Point.Z(), 1e-4)

	near.Visible = false
	hit, ok = s.Raycast(ray, nil)
	require.True(t, ok)
	assert.Same(t, far, s.TopLevel(hit.Node))

	_, ok = s.Raycast(core.Ray{Origin: mgl32.Vec3{50, 1, 20}, Direction: mgl32.Vec3{0, 0, -1}}, nil)
	assert.False(t, ok)
}

func TestRaycastRotatedAndScaled(t *testing.T) {
	s := NewScene()
	part := newBoxPart("toono", mgl32.Vec3{0, 0, 150})
	part.Transform.Scale = mgl32.Vec3{0.1, 0.1, 0.1}
	part.Transform.Rotation = mgl32.Vec3{0, mgl32.DegToRad(45), 0}
	s.Add(part)

	hit, ok := s.Raycast(core.Ray{Origin: mgl32.Vec3{0, 0.1, 0}, Direction: mgl32.Vec3{0, 0, 1}}, nil)
	if !ok {
		t.Fatal("expected hit on scaled down object")
	}
	if hit.Distance < 149.0 || hit.Distance > 150.0 {
		t.Errorf("hit wrong distance: %f, expected ~149.86", hit.Distance)
	}
}

func TestRaycastFilterSkipsGizmos(t *testing.T) {
	s := NewScene()
	gizmo := NewNode("gizmo", GizmoTag{Axis: mgl32.Vec3{1, 0, 0}, Mode: GizmoTranslate})
	gizmo.Mesh = core.NewBox("handle", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	s.Add(gizmo)

	ray := core.Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	_, ok := s.Raycast(ray, nil)
	assert.True(t, ok)
	_, ok = s.Raycast(ray, SkipGizmos)
	assert.False(t, ok)
}

func TestBoundsAndClone(t *testing.T) {
	part := newBoxPart("esgii", mgl32.Vec3{10, 0, 0})
	b := part.Bounds()
	assert.InDelta(t, 9.0, b.Min.X(), 1e-5)
	assert.InDelta(t, 11.0, b.Max.X(), 1e-5)
	assert.InDelta(t, 2.0, b.Max.Y(), 1e-5)

	c := part.Clone()
	assert.NotEqual(t, part.Id, c.Id)
	assert.Nil(t, c.Parent())
	require.Len(t, c.Children(), 1)
	assert.NotEqual(t, part.Children()[0].Id, c.Children()[0].Id)
	assert.Equal(t, part.Tag, c.Tag)
	assert.Equal(t, b, c.Bounds())
}

func TestTagSwitch(t *testing.T) {
	kinds := func(tag Tag) string {
		switch tag.(type) {
		case FloorTag:
			return "floor"
		case InstanceTag:
			return "instance"
		case PartTag:
			return "part"
		case GizmoTag:
			return "gizmo"
		case LightTag:
			return "light"
		default:
			return "geometry"
		}
	}
	assert.Equal(t, "floor", kinds(FloorTag{}))
	assert.Equal(t, "instance", kinds(InstanceTag{PartID: "uya"}))
	assert.Equal(t, "part", kinds(PartTag{PartID: "uya"}))
	assert.Equal(t, "gizmo", kinds(GizmoTag{}))
	assert.Equal(t, "light", kinds(LightTag{Kind: LightPoint}))
	assert.Equal(t, "geometry", kinds(nil))
}
