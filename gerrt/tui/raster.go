package tui

import (
	"hash/fnv"
	"math"

	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// RGB is a linear colour before conversion to a terminal colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c RGB) scale(k float32) RGB {
	k = mgl32.Clamp(k, 0, 1)
	return RGB{uint8(float32(c.R) * k), uint8(float32(c.G) * k), uint8(float32(c.B) * k)}
}

func (c RGB) mix(o RGB, k float32) RGB {
	k = mgl32.Clamp(k, 0, 1)
	f := func(a, b uint8) uint8 { return uint8(float32(a)*(1-k) + float32(b)*k) }
	return RGB{f(c.R, o.R), f(c.G, o.G), f(c.B, o.B)}
}

var (
	Background = RGB{0x18, 0x1c, 0x24}
	floorColor = RGB{0x4a, 0x63, 0x45}
	selectGlow = RGB{0xff, 0xd7, 0x40}
	axisColors = [3]RGB{{0xe0, 0x40, 0x40}, {0x40, 0xd0, 0x40}, {0x40, 0x70, 0xf0}}
	partColors = []RGB{
		{0xc0, 0x8a, 0x50}, {0xd8, 0xc8, 0xa8}, {0xa0, 0x5a, 0x30}, {0xe8, 0x5d, 0x4a},
		{0x9a, 0xb8, 0xd0}, {0xf0, 0xe6, 0xd0}, {0x7d, 0x8c, 0x6a}, {0xb4, 0x78, 0xc8},
	}
	lightDir = mgl32.Vec3{0.4, 1, 0.3}.Normalize()
)

// PartColor gives each part id a stable colour.
func PartColor(id string) RGB {
	h := fnv.New32a()
	h.Write([]byte(id))
	return partColors[h.Sum32()%uint32(len(partColors))]
}

// Frame is a pixel buffer with a depth buffer. Two vertical pixels map to
// one terminal cell.
type Frame struct {
	W, H  int
	color []RGB
	depth []float32
}

func NewFrame(w, h int) *Frame {
	f := &Frame{}
	f.Resize(w, h)
	return f
}

func (f *Frame) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if w == f.W && h == f.H {
		return
	}
	f.W, f.H = w, h
	f.color = make([]RGB, w*h)
	f.depth = make([]float32, w*h)
}

func (f *Frame) Clear(bg RGB) {
	for i := range f.color {
		f.color[i] = bg
		f.depth[i] = math.MaxFloat32
	}
}

func (f *Frame) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return RGB{}
	}
	return f.color[y*f.W+x]
}

// Style picks the colours a renderer uses for a node.
type Style struct {
	Selected *scene.Node
}

// colorOf walks up to the first tagged ancestor.
func (st Style) colorOf(n *scene.Node) (RGB, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		switch tag := cur.Tag.(type) {
		case scene.FloorTag:
			return floorColor, false
		case scene.GizmoTag:
			for i := 0; i < 3; i++ {
				if tag.Axis[i] != 0 {
					return axisColors[i], true
				}
			}
			return selectGlow, true
		case scene.InstanceTag:
			c := PartColor(tag.PartID)
			if cur == st.Selected {
				c = c.mix(selectGlow, 0.45)
			}
			return c, false
		case scene.PartTag:
			return PartColor(tag.PartID), false
		}
	}
	return RGB{0xa0, 0xa0, 0xa0}, false
}

type screenTri struct {
	a, b, c mgl32.Vec3
	color   RGB
}

// Draw renders every visible mesh under root. Gizmo handles are drawn last
// and ignore depth so they stay on top.
func (f *Frame) Draw(root *scene.Node, cam *core.Camera, st Style) {
	vp := cam.ViewProjection()
	var overlay []screenTri
	root.Traverse(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh == nil {
			return true
		}
		base, onTop := st.colorOf(n)
		world := n.WorldMatrix()
		mvp := vp.Mul4(world)
		for i := 0; i < n.Mesh.TriangleCount(); i++ {
			a, b, c := n.Mesh.Triangle(i)
			t, ok := f.project(mvp, a, b, c)
			if !ok {
				continue
			}
			wa := mgl32.TransformCoordinate(a, world)
			normal := mgl32.TransformCoordinate(b, world).Sub(wa).Cross(mgl32.TransformCoordinate(c, world).Sub(wa))
			shade := float32(0.6)
			if l := normal.Len(); l > 0 {
				d := normal.Mul(1 / l).Dot(lightDir)
				if d < 0 {
					d = -d
				}
				shade = 0.35 + 0.65*d
			}
			t.color = base.scale(shade)
			if onTop {
				t.color = base
				overlay = append(overlay, t)
				continue
			}
			f.fill(t, true)
		}
		return true
	})
	for _, t := range overlay {
		f.fill(t, false)
	}
}

func (f *Frame) project(mvp mgl32.Mat4, a, b, c mgl32.Vec3) (screenTri, bool) {
	var out [3]mgl32.Vec3
	for i, p := range [3]mgl32.Vec3{a, b, c} {
		clip := mvp.Mul4x1(p.Vec4(1))
		// Triangles crossing the near plane are dropped rather than clipped
		if clip.W() <= 1e-3 {
			return screenTri{}, false
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		out[i] = mgl32.Vec3{
			(ndc.X() + 1) / 2 * float32(f.W),
			(1 - ndc.Y()) / 2 * float32(f.H),
			ndc.Z(),
		}
	}
	return screenTri{a: out[0], b: out[1], c: out[2]}, true
}

func edge(a, b mgl32.Vec3, x, y float32) float32 {
	return (b.X()-a.X())*(y-a.Y()) - (b.Y()-a.Y())*(x-a.X())
}

func (f *Frame) fill(t screenTri, depthTest bool) {
	area := edge(t.a, t.b, t.c.X(), t.c.Y())
	if area == 0 {
		return
	}
	x0 := max(int(min(t.a.X(), t.b.X(), t.c.X())), 0)
	x1 := min(int(max(t.a.X(), t.b.X(), t.c.X()))+1, f.W)
	y0 := max(int(min(t.a.Y(), t.b.Y(), t.c.Y())), 0)
	y1 := min(int(max(t.a.Y(), t.b.Y(), t.c.Y()))+1, f.H)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(t.b, t.c, px, py) / area
			w1 := edge(t.c, t.a, px, py) / area
			w2 := edge(t.a, t.b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*t.a.Z() + w1*t.b.Z() + w2*t.c.Z()
			i := y*f.W + x
			if depthTest && z >= f.depth[i] {
				continue
			}
			if depthTest {
				f.depth[i] = z
			}
			f.color[i] = t.color
		}
	}
}

// Blit writes the frame into the screen region starting at (x0, y0) using
// upper half blocks.
func (f *Frame) Blit(screen tcell.Screen, x0, y0 int) {
	for row := 0; row*2 < f.H; row++ {
		for col := 0; col < f.W; col++ {
			top := f.At(col, row*2)
			bottom := top
			if row*2+1 < f.H {
				bottom = f.At(col, row*2+1)
			}
			style := tcell.StyleDefault.Foreground(top.Tcell()).Background(bottom.Tcell())
			screen.SetContent(x0+col, y0+row, '▀', nil, style)
		}
	}
}
