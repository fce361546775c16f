package scene

import (
	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type NodeId string

func NewNodeId() NodeId {
	return NodeId(uuid.NewString())
}

// Tag classifies a node. Callers switch on the concrete type; a nil Tag is
// plain geometry owned by a tagged ancestor.
type Tag interface {
	isTag()
}

// FloorTag marks the ground plane parts are dropped onto.
type FloorTag struct{}

// InstanceTag marks a placed instance in the editor.
type InstanceTag struct {
	PartID string
}

// PartTag marks a catalog part shown by the viewer modes.
type PartTag struct {
	PartID string
}

type GizmoMode int

const (
	GizmoTranslate GizmoMode = iota
	GizmoRotate
)

// GizmoTag marks manipulation handles. They are never selectable.
type GizmoTag struct {
	Axis mgl32.Vec3
	Mode GizmoMode
}

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

type LightTag struct {
	Kind      LightKind
	Color     [3]float32
	Intensity float32
}

func (FloorTag) isTag()    {}
func (InstanceTag) isTag() {}
func (PartTag) isTag()     {}
func (GizmoTag) isTag()    {}
func (LightTag) isTag()    {}

type Node struct {
	Id        NodeId
	Name      string
	Tag       Tag
	Transform core.Transform
	Visible   bool
	Mesh      *core.Mesh

	parent   *Node
	children []*Node
}

func NewNode(name string, tag Tag) *Node {
	return &Node{
		Id:        NewNodeId(),
		Name:      name,
		Tag:       tag,
		Transform: core.NewTransform(),
		Visible:   true,
	}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Add reparents child under n.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Traverse visits n and its descendants depth first. Returning false from fn
// skips the visited node's subtree.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.Transform.ObjectToWorld()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.ObjectToWorld().Mul4(m)
	}
	return m
}

func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// Clone deep copies the subtree with fresh ids. The copy is detached.
func (n *Node) Clone() *Node {
	out := &Node{
		Id:        NewNodeId(),
		Name:      n.Name,
		Tag:       n.Tag,
		Transform: n.Transform,
		Visible:   n.Visible,
		Mesh:      n.Mesh.Clone(),
	}
	for _, c := range n.children {
		out.Add(c.Clone())
	}
	return out
}

// Bounds is the world space box of every mesh in the subtree.
func (n *Node) Bounds() core.AABB {
	box := core.EmptyAABB()
	n.walkWorld(n.WorldMatrix(), func(node *Node, world mgl32.Mat4) bool {
		if node.Mesh != nil {
			box = box.Union(node.Mesh.Bounds().Transform(world))
		}
		return true
	})
	return box
}

func (n *Node) walkWorld(world mgl32.Mat4, fn func(*Node, mgl32.Mat4) bool) {
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walkWorld(world.Mul4(c.Transform.ObjectToWorld()), fn)
	}
}
