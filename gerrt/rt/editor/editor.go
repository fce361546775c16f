// Package editor implements the free-form placement editor: picking,
// dragging on the floor plane, the gizmo, undo and scene state restore.
package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneKey is the load key shared by drops and state restores so a restore
// supersedes every load still in flight.
const SceneKey = "scene"

// UndoScope selects which mutations record a snapshot.
type UndoScope int

const (
	// ScopeDelete records only deletions.
	ScopeDelete UndoScope = iota
	// ScopeAll also records drops, drags and gizmo edits.
	ScopeAll
)

func ParseUndoScope(s string) (UndoScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "delete":
		return ScopeDelete, nil
	}
	return ScopeAll, fmt.Errorf("unknown undo scope %q", s)
}

func (s UndoScope) String() string {
	if s == ScopeDelete {
		return "delete"
	}
	return "all"
}

// Orbiter is the camera control the editor suspends while dragging.
type Orbiter interface {
	SetEnabled(bool)
}

type Options struct {
	UndoLimit int
	UndoScope UndoScope
	Orbit     Orbiter
	Logger    core.Logger
}

type dragKind int

const (
	dragNone dragKind = iota
	dragPlane
	dragGizmo
)

type dragState struct {
	kind   dragKind
	moved  bool
	plane  core.Plane
	offset mgl32.Vec3

	handle     scene.GizmoTag
	start      core.Transform
	startS     float32
	startVec   mgl32.Vec3
	pivot      mgl32.Vec3
	gizmoPlane core.Plane
}

type Editor struct {
	scene   *scene.Scene
	camera  *core.Camera
	catalog *catalog.Catalog
	queue   *asset.Queue
	history *History
	gizmo   *Gizmo
	floor   *scene.Node
	orbit   Orbiter
	log     core.Logger
	scope   UndoScope

	selected *scene.Node
	drag     dragState
	width    int
	height   int

	// a snapshot is waiting for the scene loads to settle
	pushQueued bool

	// SnapRotation rounds gizmo rotations to RotationSnap while set.
	SnapRotation bool
}

func New(s *scene.Scene, cam *core.Camera, cat *catalog.Catalog, q *asset.Queue, opts Options) *Editor {
	e := &Editor{
		scene:   s,
		camera:  cam,
		catalog: cat,
		queue:   q,
		history: NewHistory(opts.UndoLimit),
		orbit:   opts.Orbit,
		log:     core.OrNop(opts.Logger),
		scope:   opts.UndoScope,
		width:   1,
		height:  1,
	}
	e.gizmo = NewGizmo(s)
	e.floor = e.findOrAddFloor()
	if e.scope == ScopeAll {
		// Baseline so the first tracked edit can be undone.
		e.PushUndo()
	}
	return e
}

func (e *Editor) findOrAddFloor() *scene.Node {
	for _, c := range e.scene.Children() {
		if _, ok := c.Tag.(scene.FloorTag); ok {
			return c
		}
	}
	floor := scene.NewNode("floor", scene.FloorTag{})
	floor.Mesh = core.NewQuadXZ("floor", 200, 200)
	e.scene.Add(floor)

	e.scene.Add(scene.NewNode("ambient", scene.LightTag{Kind: scene.LightAmbient, Color: [3]float32{1, 1, 1}, Intensity: 0.6}))
	sun := scene.NewNode("sun", scene.LightTag{Kind: scene.LightDirectional, Color: [3]float32{1, 1, 1}, Intensity: 0.8})
	sun.Transform.Position = mgl32.Vec3{10, 20, 10}
	e.scene.Add(sun)
	return floor
}

func (e *Editor) Scene() *scene.Scene       { return e.scene }
func (e *Editor) Camera() *core.Camera      { return e.camera }
func (e *Editor) Gizmo() *Gizmo             { return e.gizmo }
func (e *Editor) History() *History         { return e.history }
func (e *Editor) Selected() *scene.Node     { return e.selected }
func (e *Editor) Dragging() bool            { return e.drag.kind != dragNone }
func (e *Editor) Scope() UndoScope          { return e.scope }
func (e *Editor) Floor() *scene.Node        { return e.floor }
func (e *Editor) Catalog() *catalog.Catalog { return e.catalog }

// SetViewport records the pointer space size and updates the camera aspect.
func (e *Editor) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	e.camera.SetViewport(width, height)
}

func (e *Editor) ray(x, y float64) core.Ray {
	return e.camera.ScreenToRay(x, y, e.width, e.height)
}

// owner walks up from a hit mesh to the nearest tagged node.
func owner(n *scene.Node) *scene.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Tag != nil {
			return cur
		}
	}
	return nil
}

// PointerDown picks under the pointer and reacts to what was hit.
func (e *Editor) PointerDown(x, y float64) {
	ray := e.ray(x, y)
	hit, ok := e.pick(ray)
	if !ok {
		e.ClearSelection()
		return
	}
	target := owner(hit.Node)
	if target == nil {
		e.ClearSelection()
		return
	}

	switch tag := target.Tag.(type) {
	case scene.InstanceTag:
		e.selectNode(target)
		e.beginPlaneDrag(ray)
		e.log.Debugf("editor: picked %s (%s)", tag.PartID, target.Id)
	case scene.GizmoTag:
		if e.selected == nil {
			return
		}
		e.beginGizmoDrag(tag, ray)
	default:
		e.ClearSelection()
	}
}

// pick tests the gizmo handles before the rest of the scene.
func (e *Editor) pick(ray core.Ray) (scene.Hit, bool) {
	if e.gizmo.Attached() {
		if hit, ok := scene.RaycastNode(e.gizmo.Root(), ray, nil); ok {
			return hit, true
		}
	}
	return e.scene.Raycast(ray, scene.SkipGizmos)
}

func (e *Editor) selectNode(n *scene.Node) {
	e.selected = n
	e.gizmo.Attach(n)
}

// ClearSelection drops the selection and detaches the gizmo.
func (e *Editor) ClearSelection() {
	e.endDrag()
	e.selected = nil
	e.gizmo.Detach()
}

// Select makes n the selection if it is a placed instance in the scene.
func (e *Editor) Select(n *scene.Node) bool {
	if n == nil || e.scene.TopLevel(n) != n {
		return false
	}
	if _, ok := n.Tag.(scene.InstanceTag); !ok {
		return false
	}
	e.selectNode(n)
	return true
}

func (e *Editor) beginPlaneDrag(ray core.Ray) {
	pos := e.selected.Transform.Position
	plane := core.HorizontalPlane(pos)
	hit, ok := ray.IntersectPlane(plane)
	if !ok {
		return
	}
	e.drag = dragState{
		kind:   dragPlane,
		plane:  plane,
		offset: pos.Sub(hit),
		start:  e.selected.Transform,
	}
	e.setOrbit(false)
}

func (e *Editor) beginGizmoDrag(handle scene.GizmoTag, ray core.Ray) {
	pivot := e.gizmo.Pivot()
	d := dragState{
		kind:   dragGizmo,
		handle: handle,
		start:  e.selected.Transform,
		pivot:  pivot,
	}
	switch handle.Mode {
	case scene.GizmoTranslate:
		if axisParallel(ray.Direction, handle.Axis) {
			return
		}
		_, s, _ := core.ClosestPoints(ray.Origin, ray.Direction, pivot, handle.Axis)
		d.startS = s
	case scene.GizmoRotate:
		d.gizmoPlane = core.PlaneFromNormalAndPoint(handle.Axis, pivot)
		hit, ok := ray.IntersectPlane(d.gizmoPlane)
		if !ok {
			return
		}
		d.startVec = hit.Sub(pivot)
		if d.startVec.Len() < 1e-6 {
			return
		}
		d.startVec = d.startVec.Normalize()
	}
	e.drag = d
	e.setOrbit(false)
}

func axisParallel(dir, axis mgl32.Vec3) bool {
	return math.Abs(float64(dir.Normalize().Dot(axis))) > 0.999
}

// PointerMove updates the active drag, if any.
func (e *Editor) PointerMove(x, y float64) {
	if e.drag.kind == dragNone || e.selected == nil {
		return
	}
	ray := e.ray(x, y)

	switch e.drag.kind {
	case dragPlane:
		hit, ok := ray.IntersectPlane(e.drag.plane)
		if !ok {
			return
		}
		p := hit.Add(e.drag.offset)
		e.selected.Transform.Position = mgl32.Vec3{p.X(), e.selected.Transform.Position.Y(), p.Z()}
	case dragGizmo:
		if !e.applyGizmo(ray) {
			return
		}
	}
	e.drag.moved = true
	e.gizmo.Sync()
}

func (e *Editor) applyGizmo(ray core.Ray) bool {
	d := &e.drag
	switch d.handle.Mode {
	case scene.GizmoTranslate:
		if axisParallel(ray.Direction, d.handle.Axis) {
			return false
		}
		_, s, _ := core.ClosestPoints(ray.Origin, ray.Direction, d.pivot, d.handle.Axis)
		e.selected.Transform.Position = d.start.Position.Add(d.handle.Axis.Mul(s - d.startS))
	case scene.GizmoRotate:
		hit, ok := ray.IntersectPlane(d.gizmoPlane)
		if !ok {
			return false
		}
		cur := hit.Sub(d.pivot)
		if cur.Len() < 1e-6 {
			return false
		}
		cur = cur.Normalize()
		angle := float32(math.Acos(float64(mgl32.Clamp(d.startVec.Dot(cur), -1, 1))))
		if d.startVec.Cross(cur).Dot(d.handle.Axis) < 0 {
			angle = -angle
		}
		if e.SnapRotation {
			angle = core.Snap(angle, RotationSnap)
		}
		rot := mgl32.QuatRotate(angle, d.handle.Axis).Mul(d.start.Quat())
		e.selected.Transform.Rotation = core.QuatToEuler(rot)
	}
	return true
}

// PointerUp ends a drag. The gizmo stays on the selection. A snapshot is
// recorded only when the drag left the selection somewhere new.
func (e *Editor) PointerUp() {
	moved := e.drag.kind != dragNone && e.drag.moved && e.selected != nil &&
		!sameTransform(e.drag.start, e.selected.Transform)
	e.endDrag()
	if moved && e.scope == ScopeAll {
		e.PushUndo()
	}
}

func sameTransform(a, b core.Transform) bool {
	return a.Position.ApproxEqualThreshold(b.Position, 1e-4) && a.Rotation.ApproxEqualThreshold(b.Rotation, 1e-4)
}

func (e *Editor) endDrag() {
	if e.drag.kind == dragNone {
		return
	}
	e.drag = dragState{}
	e.setOrbit(true)
}

func (e *Editor) setOrbit(enabled bool) {
	if e.orbit != nil {
		e.orbit.SetEnabled(enabled)
	}
}

// Place drops a catalog part where the pointer ray meets the floor plane.
// It reports false when the ray misses the floor.
func (e *Editor) Place(partID string, x, y float64) (bool, error) {
	hit, ok := e.ray(x, y).IntersectPlane(core.HorizontalPlane(mgl32.Vec3{}))
	if !ok {
		return false, nil
	}
	return true, e.PlaceAt(partID, hit)
}

// PlaceAt spawns a new instance of partID at pos with zero rotation once its
// model has loaded.
func (e *Editor) PlaceAt(partID string, pos mgl32.Vec3) error {
	def, err := e.catalog.Lookup(partID)
	if err != nil {
		return err
	}
	gen := e.queue.Current(SceneKey)
	if gen == 0 {
		gen = e.queue.Begin(SceneKey)
	}
	e.queue.Submit(SceneKey, gen, def.AssetPath, func(n *scene.Node) {
		n.Name = def.ID
		n.Tag = scene.InstanceTag{PartID: def.ID}
		n.Transform.Position = pos
		n.Transform.Rotation = mgl32.Vec3{}
		n.Visible = true
		e.scene.Add(n)
		e.ClearSelection()
		e.log.Infof("editor: placed %s at %.2f %.2f %.2f", def.ID, pos.X(), pos.Y(), pos.Z())
		if e.scope == ScopeAll {
			e.queueUndo()
		}
	})
	return nil
}

// queueUndo records a snapshot once every scene load in flight has landed,
// so a placement during a restore does not capture a half-built scene.
func (e *Editor) queueUndo() {
	if e.pushQueued {
		return
	}
	e.pushQueued = true
	e.queue.WhenIdle(SceneKey, func() {
		e.pushQueued = false
		e.PushUndo()
	})
}

// Delete removes the selected instance and records a snapshot.
func (e *Editor) Delete() bool {
	n := e.selected
	if n == nil {
		return false
	}
	e.ClearSelection()
	e.scene.Remove(n)
	e.PushUndo()
	return true
}

// HideAll makes every placed instance invisible.
func (e *Editor) HideAll() {
	e.ClearSelection()
	for _, n := range e.scene.Instances() {
		n.Visible = false
	}
}
