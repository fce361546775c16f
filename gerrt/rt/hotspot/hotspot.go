// Package hotspot implements the informational viewer: every catalog part is
// shown in one group and clicking a part reveals its description.
package hotspot

import (
	"fmt"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/camera"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const LoadKey = "hotspot"

type Tooltip struct {
	Visible bool
	PartID  string
	Title   string
	Text    string
	X, Y    float64
}

// GridItem is one entry of the parts grid.
type GridItem struct {
	ID   string
	Name string
}

type Viewer struct {
	scene   *scene.Scene
	group   *scene.Node
	cam     *core.Camera
	orbit   *camera.Orbit
	catalog *catalog.Catalog
	queue   *asset.Queue
	log     core.Logger

	parts   map[string]*scene.Node
	tooltip Tooltip
	width   int
	height  int
}

func New(s *scene.Scene, cam *core.Camera, orbit *camera.Orbit, cat *catalog.Catalog, q *asset.Queue, log core.Logger) *Viewer {
	v := &Viewer{
		scene:   s,
		group:   scene.NewNode("parts", nil),
		cam:     cam,
		orbit:   orbit,
		catalog: cat,
		queue:   q,
		log:     core.OrNop(log),
		parts:   make(map[string]*scene.Node),
		width:   1,
		height:  1,
	}
	s.Add(v.group)
	return v
}

func (v *Viewer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.cam.SetViewport(width, height)
}

func (v *Viewer) Group() *scene.Node { return v.group }
func (v *Viewer) Tooltip() Tooltip   { return v.tooltip }

// Loaded reports whether every catalog part is in the group.
func (v *Viewer) Loaded() bool { return len(v.parts) == v.catalog.Len() }

func (v *Viewer) Part(id string) (*scene.Node, bool) {
	n, ok := v.parts[id]
	return n, ok
}

// Load (re)loads every catalog part into the group. The group is framed once
// the last part arrives.
func (v *Viewer) Load() {
	for _, c := range v.group.Children() {
		v.group.Remove(c)
	}
	clear(v.parts)
	v.tooltip = Tooltip{}

	gen := v.queue.Begin(LoadKey)
	for _, def := range v.catalog.Parts() {
		def := def
		v.queue.Submit(LoadKey, gen, def.AssetPath, func(n *scene.Node) {
			n.Name = def.ID
			n.Tag = scene.PartTag{PartID: def.ID}
			v.group.Add(n)
			v.parts[def.ID] = n
			if v.Loaded() {
				v.log.Infof("hotspot: %d parts loaded", len(v.parts))
				v.ShowAll()
			}
		})
	}
}

// partOf resolves a hit mesh to the catalog part that owns it.
func partOf(n *scene.Node) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		switch tag := cur.Tag.(type) {
		case scene.PartTag:
			return tag.PartID, true
		case scene.InstanceTag:
			return tag.PartID, true
		}
	}
	return "", false
}

// Click shows the description of the part under the pointer, or hides the
// tooltip when nothing described is hit.
func (v *Viewer) Click(x, y float64) Tooltip {
	ray := v.cam.ScreenToRay(x, y, v.width, v.height)
	hit, ok := scene.RaycastNode(v.group, ray, nil)
	if !ok {
		v.tooltip = Tooltip{}
		return v.tooltip
	}
	id, ok := partOf(hit.Node)
	if !ok {
		v.tooltip = Tooltip{}
		return v.tooltip
	}
	def, ok := v.catalog.Get(id)
	if !ok || def.Description == "" {
		v.tooltip = Tooltip{}
		return v.tooltip
	}

	sx, sy := TooltipPosition(v.cam.Project(hit.Point), v.width, v.height)
	v.tooltip = Tooltip{
		Visible: true,
		PartID:  id,
		Title:   def.DisplayName,
		Text:    def.Description,
		X:       sx,
		Y:       sy,
	}
	return v.tooltip
}

// TooltipPosition places the tooltip to the right of and below the
// projected point.
func TooltipPosition(ndc mgl32.Vec3, width, height int) (float64, float64) {
	x := (float64(ndc.X())*0.5 + 0.6) * float64(width)
	y := (-float64(ndc.Y())*0.5 + 0.8) * float64(height)
	return x, y
}

func (v *Viewer) HideTooltip() { v.tooltip = Tooltip{} }

// ShowOnly hides every other part and frames the chosen one.
func (v *Viewer) ShowOnly(id string) error {
	target, ok := v.parts[id]
	if !ok {
		if _, err := v.catalog.Lookup(id); err != nil {
			return err
		}
		return fmt.Errorf("part %q not loaded yet", id)
	}
	for pid, n := range v.parts {
		n.Visible = pid == id
	}
	v.tooltip = Tooltip{}
	camera.Fit(v.cam, v.orbit, target.Bounds(), camera.FitPart)
	return nil
}

// ShowAll makes every part visible and frames the whole group.
func (v *Viewer) ShowAll() {
	for _, n := range v.parts {
		n.Visible = true
	}
	camera.Fit(v.cam, v.orbit, v.group.Bounds(), camera.FitAll)
}

// Grid lists the parts in catalog order for the parts menu.
func (v *Viewer) Grid() []GridItem {
	items := make([]GridItem, 0, v.catalog.Len())
	for _, def := range v.catalog.Parts() {
		items = append(items, GridItem{ID: def.ID, Name: def.DisplayName})
	}
	return items
}
