package scene

import (
	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

type Scene struct {
	root *Node
}

func NewScene() *Scene {
	return &Scene{root: NewNode("Scene", nil)}
}

func (s *Scene) Root() *Node { return s.root }

func (s *Scene) Add(n *Node) { s.root.Add(n) }

// Remove detaches a top-level node.
func (s *Scene) Remove(n *Node) bool { return s.root.Remove(n) }

func (s *Scene) Children() []*Node { return s.root.Children() }

func (s *Scene) Contains(n *Node) bool {
	return n != nil && s.TopLevel(n) != nil
}

// Instances returns the placed instances in scene order.
func (s *Scene) Instances() []*Node {
	var out []*Node
	for _, c := range s.root.children {
		if _, ok := c.Tag.(InstanceTag); ok {
			out = append(out, c)
		}
	}
	return out
}

// RemoveInstances detaches every placed instance and returns them.
func (s *Scene) RemoveInstances() []*Node {
	removed := s.Instances()
	for _, n := range removed {
		s.root.Remove(n)
	}
	return removed
}

func (s *Scene) Find(id NodeId) *Node {
	var found *Node
	s.root.Traverse(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// TopLevel walks the ownership chain up to the direct child of the scene
// root. It returns nil for nodes that are not in this scene.
func (s *Scene) TopLevel(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.parent == s.root {
			return cur
		}
	}
	return nil
}

type Hit struct {
	Node     *Node // the mesh node that was hit
	Point    mgl32.Vec3
	Distance float32
}

// Filter reports whether a node and its subtree take part in a raycast.
type Filter func(*Node) bool

// SkipGizmos excludes manipulation handles from picking.
func SkipGizmos(n *Node) bool {
	_, gizmo := n.Tag.(GizmoTag)
	return !gizmo
}

// Raycast returns the nearest visible mesh hit under the scene root.
func (s *Scene) Raycast(ray core.Ray, filter Filter) (Hit, bool) {
	return RaycastNode(s.root, ray, filter)
}

// RaycastNode returns the nearest visible mesh hit in the subtree of under.
// Invisible nodes hide their whole subtree.
func RaycastNode(under *Node, ray core.Ray, filter Filter) (Hit, bool) {
	var best Hit
	found := false
	under.walkWorld(under.WorldMatrix(), func(n *Node, world mgl32.Mat4) bool {
		if !n.Visible {
			return false
		}
		if filter != nil && !filter(n) {
			return false
		}
		if n.Mesh == nil {
			return true
		}
		// Broad phase in world space before transforming the ray
		if _, ok := ray.IntersectAABB(n.Mesh.Bounds().Transform(world)); !ok {
			return true
		}
		local := ray.Transform(world.Inv())
		t, ok := n.Mesh.Intersect(local)
		if !ok {
			return true
		}
		// The affine transform preserves the ray parameter
		if !found || t < best.Distance {
			best = Hit{Node: n, Point: ray.At(t), Distance: t}
			found = true
		}
		return true
	})
	return best, found
}
