// Package assembly drives the guided build: parts appear one at a time in
// catalog order.
package assembly

import (
	"time"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/camera"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"
)

const (
	LoadKey         = "assembly"
	DefaultInterval = 1200 * time.Millisecond
)

type Builder struct {
	scene   *scene.Scene
	cam     *core.Camera
	orbit   *camera.Orbit
	catalog *catalog.Catalog
	queue   *asset.Queue
	log     core.Logger

	Interval time.Duration
	// OnStep runs after each part is shown by a build; step counts from 0.
	OnStep func(step int, partID string)

	parts    map[string]*scene.Node
	wanted   map[string]bool // shown as soon as their load lands
	building bool
	next     int
	elapsed  time.Duration
	tween    *camera.Tween
	active   string
}

func New(s *scene.Scene, cam *core.Camera, orbit *camera.Orbit, cat *catalog.Catalog, q *asset.Queue, log core.Logger) *Builder {
	return &Builder{
		scene:    s,
		cam:      cam,
		orbit:    orbit,
		catalog:  cat,
		queue:    q,
		log:      core.OrNop(log),
		Interval: DefaultInterval,
		parts:    make(map[string]*scene.Node),
		wanted:   make(map[string]bool),
	}
}

// Preload loads every catalog part into the cache. The stage stays empty;
// a part only appears once a build or a part button asks for it.
func (b *Builder) Preload() {
	gen := b.queue.Begin(LoadKey)
	for _, def := range b.catalog.Parts() {
		def := def
		b.queue.Submit(LoadKey, gen, def.AssetPath, func(n *scene.Node) {
			n.Name = def.ID
			n.Tag = scene.PartTag{PartID: def.ID}
			visible := b.wanted[def.ID]
			if old, ok := b.parts[def.ID]; ok {
				visible = visible || b.scene.Contains(old)
				b.scene.Remove(old)
			}
			b.parts[def.ID] = n
			delete(b.wanted, def.ID)
			if visible {
				b.scene.Add(n)
			}
		})
	}
}

func (b *Builder) Building() bool { return b.building }
func (b *Builder) Active() string { return b.active }
func (b *Builder) Loaded() int    { return len(b.parts) }

// Shown lists the cached parts currently in the scene, in catalog order.
func (b *Builder) Shown() []string {
	var ids []string
	for _, def := range b.catalog.Parts() {
		if n, ok := b.parts[def.ID]; ok && b.scene.Contains(n) {
			ids = append(ids, def.ID)
		}
	}
	return ids
}

func (b *Builder) removeAll() {
	for _, n := range b.parts {
		b.scene.Remove(n)
	}
	clear(b.wanted)
}

// show adds a cached part to the stage. A part still loading is queued and
// appears when it lands; show then reports false.
func (b *Builder) show(id string) bool {
	n, ok := b.parts[id]
	if !ok {
		b.wanted[id] = true
		return false
	}
	if !b.scene.Contains(n) {
		b.scene.Add(n)
	}
	return true
}

// BuildStep clears the stage and starts a timed build. The first part
// appears at once, the rest one per Interval. It is ignored while a build
// is running.
func (b *Builder) BuildStep() bool {
	if b.building {
		return false
	}
	b.removeAll()
	b.active = ""
	b.building = true
	b.next = 0
	b.elapsed = 0
	b.log.Infof("assembly: building %d parts every %s", b.catalog.Len(), b.Interval)
	b.step()
	return true
}

// Update advances the build timer and any camera tween.
func (b *Builder) Update(dt time.Duration) {
	if b.tween != nil && b.tween.Step(dt) {
		b.tween = nil
	}
	if !b.building {
		return
	}
	b.elapsed += dt
	for b.building && b.elapsed >= b.Interval {
		b.elapsed -= b.Interval
		b.step()
	}
}

func (b *Builder) step() {
	if b.next < b.catalog.Len() {
		def := b.catalog.At(b.next)
		step := b.next
		b.next++
		if !b.show(def.ID) {
			b.log.Warnf("assembly: %s still loading, it appears when ready", def.ID)
		}
		if b.OnStep != nil {
			b.OnStep(step, def.ID)
		}
	}
	if b.next >= b.catalog.Len() {
		b.building = false
		b.log.Debugf("assembly: build finished")
	}
}

// ShowAll stops a running build, shows every cached part and eases the
// camera home.
func (b *Builder) ShowAll() {
	b.building = false
	b.active = ""
	for _, def := range b.catalog.Parts() {
		b.show(def.ID)
	}
	b.tween = camera.TweenHome(b.cam, b.orbit)
}

// ClearAll removes every part and snaps the camera to the default view.
func (b *Builder) ClearAll() {
	b.building = false
	b.active = ""
	b.tween = nil
	b.removeAll()
	camera.Home(b.cam, b.orbit)
}

// Toggle adds the given part to whatever is already on stage and makes it
// the active one. Nothing is ever removed. It reports whether the part is
// visible now; a part still loading shows up when it lands.
func (b *Builder) Toggle(id string) (bool, error) {
	if _, err := b.catalog.Lookup(id); err != nil {
		return false, err
	}
	b.active = id
	return b.show(id), nil
}

func (b *Builder) Tweening() bool { return b.tween != nil }
