package editor

import (
	"math"

	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// RotationSnap is the rotate increment used while snapping is held.
var RotationSnap = mgl32.DegToRad(15)

const (
	handleLength    = 2.0
	handleThickness = 0.12
	ringRadius      = 2.0
	ringWidth       = 0.3
)

var gizmoAxes = []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Gizmo is the translate/rotate handle set bound to the selected instance.
// It lives in the scene as a top-level node while attached.
type Gizmo struct {
	scene  *scene.Scene
	root   *scene.Node
	mode   scene.GizmoMode
	target *scene.Node
}

func NewGizmo(s *scene.Scene) *Gizmo {
	g := &Gizmo{scene: s}
	g.root = scene.NewNode("gizmo", scene.GizmoTag{Mode: scene.GizmoTranslate})
	g.build()
	return g
}

func (g *Gizmo) build() {
	for _, c := range g.root.Children() {
		g.root.Remove(c)
	}
	g.root.Tag = scene.GizmoTag{Mode: g.mode}

	for _, axis := range gizmoAxes {
		tag := scene.GizmoTag{Axis: axis, Mode: g.mode}
		var h *scene.Node
		switch g.mode {
		case scene.GizmoTranslate:
			h = scene.NewNode("gizmo_translate", tag)
			t := float32(handleThickness)
			lo := mgl32.Vec3{-t, -t, -t}
			hi := mgl32.Vec3{t, t, t}
			for i := 0; i < 3; i++ {
				if axis[i] != 0 {
					lo[i], hi[i] = 0, handleLength
				}
			}
			h.Mesh = core.NewBox("arrow", lo, hi)
		case scene.GizmoRotate:
			h = scene.NewNode("gizmo_rotate", tag)
			h.Mesh = core.NewRing("ring", ringRadius-ringWidth/2, ringRadius+ringWidth/2, 48)
			// Rings are built around +Y; turn them to face their axis
			switch {
			case axis.X() != 0:
				h.Transform.Rotation = mgl32.Vec3{0, 0, math.Pi / 2}
			case axis.Z() != 0:
				h.Transform.Rotation = mgl32.Vec3{math.Pi / 2, 0, 0}
			}
		}
		g.root.Add(h)
	}
}

func (g *Gizmo) Root() *scene.Node     { return g.root }
func (g *Gizmo) Mode() scene.GizmoMode { return g.mode }
func (g *Gizmo) Target() *scene.Node   { return g.target }
func (g *Gizmo) Attached() bool        { return g.target != nil }

func (g *Gizmo) SetMode(m scene.GizmoMode) {
	if m == g.mode {
		return
	}
	g.mode = m
	g.build()
	g.Sync()
}

func (g *Gizmo) Attach(n *scene.Node) {
	g.target = n
	if g.root.Parent() == nil {
		g.scene.Add(g.root)
	}
	g.Sync()
}

func (g *Gizmo) Detach() {
	g.target = nil
	if g.root.Parent() != nil {
		g.root.Detach()
	}
}

// Sync moves the handles onto the target and sizes them to its bounds.
func (g *Gizmo) Sync() {
	if g.target == nil {
		return
	}
	g.root.Transform.Position = g.target.WorldPosition()

	scale := float32(1)
	if b := g.target.Bounds(); !b.Empty() {
		size := b.Size()
		scale = max(size.X(), size.Y(), size.Z()) * 0.5
		if scale < 1 {
			scale = 1
		}
	}
	g.root.Transform.Scale = mgl32.Vec3{scale, scale, scale}
}

// Pivot is the world point handles rotate and slide around.
func (g *Gizmo) Pivot() mgl32.Vec3 { return g.root.Transform.Position }
