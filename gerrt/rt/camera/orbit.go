package camera

import (
	"math"

	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

const DefaultDamping float32 = 0.05

const (
	polarEpsilon = 1e-4
	deltaEpsilon = 1e-6
)

// Orbit rotates, zooms and pans a camera around Target. Inputs accumulate
// and are applied by Update, which runs once per tick. With damping on the
// remaining motion decays by DampingFactor every tick.
type Orbit struct {
	Camera *core.Camera
	Target mgl32.Vec3

	Enabled       bool
	EnableRotate  bool
	EnableZoom    bool
	EnablePan     bool
	EnableDamping bool
	DampingFactor float32

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	pan        mgl32.Vec3
}

func NewOrbit(cam *core.Camera) *Orbit {
	return &Orbit{
		Camera:        cam,
		Target:        cam.Target,
		Enabled:       true,
		EnableRotate:  true,
		EnableZoom:    true,
		EnablePan:     true,
		EnableDamping: true,
		DampingFactor: DefaultDamping,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		MinPolar:      0,
		MaxPolar:      math.Pi,
		scale:         1,
	}
}

func (o *Orbit) SetEnabled(enabled bool) { o.Enabled = enabled }

// Rotate queues a rotation in radians: dx around the vertical axis, dy
// towards or away from the pole.
func (o *Orbit) Rotate(dx, dy float32) {
	if !o.Enabled || !o.EnableRotate {
		return
	}
	o.deltaTheta -= dx
	o.deltaPhi -= dy
}

// Zoom scales the distance to the target; factors below 1 move closer.
func (o *Orbit) Zoom(factor float32) {
	if !o.Enabled || !o.EnableZoom || factor <= 0 {
		return
	}
	o.scale *= factor
}

// Pan shifts camera and target in the view plane by world units.
func (o *Orbit) Pan(dx, dy float32) {
	if !o.Enabled || !o.EnablePan {
		return
	}
	forward := o.Camera.Forward()
	right := forward.Cross(o.Camera.Up)
	if right.Len() < deltaEpsilon {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up := right.Cross(forward).Normalize()
	o.pan = o.pan.Add(right.Mul(dx)).Add(up.Mul(dy))
}

// Stop discards any pending motion.
func (o *Orbit) Stop() {
	o.deltaTheta, o.deltaPhi = 0, 0
	o.scale = 1
	o.pan = mgl32.Vec3{}
}

// Moving reports whether queued motion remains.
func (o *Orbit) Moving() bool {
	return abs32(o.deltaTheta) > deltaEpsilon || abs32(o.deltaPhi) > deltaEpsilon ||
		o.pan.Len() > deltaEpsilon || abs32(o.scale-1) > deltaEpsilon
}

// Update applies pending motion to the camera and writes the target back.
func (o *Orbit) Update() bool {
	cam := o.Camera
	offset := cam.Position.Sub(o.Target)

	radius := offset.Len()
	theta := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	phi := float32(0)
	if radius > 0 {
		phi = float32(math.Acos(float64(mgl32.Clamp(offset.Y()/radius, -1, 1))))
	}

	step := float32(1)
	if o.EnableDamping {
		step = o.DampingFactor
	}
	theta += o.deltaTheta * step
	phi += o.deltaPhi * step
	phi = mgl32.Clamp(phi, max(o.MinPolar, polarEpsilon), min(o.MaxPolar, math.Pi-polarEpsilon))

	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)
	o.Target = o.Target.Add(o.pan.Mul(step))

	sinPhi := float32(math.Sin(float64(phi)))
	offset = mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}
	before := cam.Position
	cam.Position = o.Target.Add(offset)
	cam.Target = o.Target

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.pan = o.pan.Mul(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.pan = mgl32.Vec3{}
	}
	o.scale = 1

	return cam.Position.Sub(before).Len() > deltaEpsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
