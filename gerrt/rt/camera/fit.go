// Package camera frames, orbits and animates the viewer camera.
package camera

import (
	"time"

	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FitAll frames a whole assembly, FitPart a single part.
	FitAll  float32 = 1.25
	FitPart float32 = 1.5

	TweenDuration = 600 * time.Millisecond
)

var (
	HomePosition = mgl32.Vec3{0, 15, 35}
	HomeTarget   = mgl32.Vec3{0, 5, 0}
)

// FitPosition returns the camera position and target that frame box.
// The camera sits above and in front of the centre at a distance
// proportional to the box diagonal.
func FitPosition(box core.AABB, offset float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	if box.Empty() {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	center := box.Center()
	distance := box.Size().Len() * offset
	return center.Add(mgl32.Vec3{0, distance / 5, distance / 2}), center, true
}

// Fit moves cam (and orbit, when given) to frame box. Empty boxes are ignored.
func Fit(cam *core.Camera, orbit *Orbit, box core.AABB, offset float32) bool {
	pos, target, ok := FitPosition(box, offset)
	if !ok {
		return false
	}
	cam.Position = pos
	cam.Target = target
	if orbit != nil {
		orbit.Stop()
		orbit.Target = target
	}
	return true
}

// Home snaps the camera back to the default view.
func Home(cam *core.Camera, orbit *Orbit) {
	cam.Position = HomePosition
	cam.Target = HomeTarget
	if orbit != nil {
		orbit.Stop()
		orbit.Target = HomeTarget
	}
}
