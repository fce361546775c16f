package camera

import (
	"time"

	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Tween linearly moves the camera position and orbit target over Duration.
type Tween struct {
	cam   *core.Camera
	orbit *Orbit

	fromPos, toPos       mgl32.Vec3
	fromTarget, toTarget mgl32.Vec3
	Duration             time.Duration
	elapsed              time.Duration
}

func NewTween(cam *core.Camera, orbit *Orbit, toPos, toTarget mgl32.Vec3, d time.Duration) *Tween {
	from := cam.Target
	if orbit != nil {
		orbit.Stop()
		from = orbit.Target
	}
	return &Tween{
		cam:        cam,
		orbit:      orbit,
		fromPos:    cam.Position,
		toPos:      toPos,
		fromTarget: from,
		toTarget:   toTarget,
		Duration:   d,
	}
}

// TweenHome animates back to the default view.
func TweenHome(cam *core.Camera, orbit *Orbit) *Tween {
	return NewTween(cam, orbit, HomePosition, HomeTarget, TweenDuration)
}

// Step advances by dt and reports whether the tween has finished.
func (t *Tween) Step(dt time.Duration) bool {
	t.elapsed += dt
	k := float32(1)
	if t.Duration > 0 && t.elapsed < t.Duration {
		k = float32(t.elapsed) / float32(t.Duration)
	}
	target := lerp(t.fromTarget, t.toTarget, k)
	t.cam.Position = lerp(t.fromPos, t.toPos, k)
	t.cam.Target = target
	if t.orbit != nil {
		t.orbit.Target = target
	}
	return k >= 1
}

func (t *Tween) Done() bool { return t.elapsed >= t.Duration }

func lerp(a, b mgl32.Vec3, k float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(k))
}
