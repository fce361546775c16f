// Package preview draws small front-view thumbnails of catalog parts.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 240
	DefaultHeight = 140
	DefaultScale  = 0.6
)

type Options struct {
	Width, Height int
	// Scale is the share of the canvas the model may fill.
	Scale float32
	// Supersample renders at a multiple of the output size before scaling down.
	Supersample int
	Background  color.RGBA
	Fill        color.RGBA
	Text        color.RGBA
}

func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Scale:       DefaultScale,
		Supersample: 2,
		Background:  color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
		Fill:        color.RGBA{0x8b, 0x5a, 0x2b, 0xff},
		Text:        color.RGBA{0x20, 0x20, 0x20, 0xff},
	}
}

// Render draws n at the given size with the default look.
func Render(n *scene.Node, label string, width, height int) *image.RGBA {
	opts := DefaultOptions()
	opts.Width, opts.Height = width, height
	return RenderWith(n, label, opts)
}

type triangle struct {
	a, b, c mgl32.Vec3
	depth   float32
	shade   float32
}

func RenderWith(n *scene.Node, label string, opts Options) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	cw, ch := opts.Width*opts.Supersample, opts.Height*opts.Supersample
	canvas := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	if n != nil {
		drawModel(canvas, n, opts)
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	if label != "" {
		drawLabel(out, label, opts.Text)
	}
	return out
}

func drawModel(canvas *image.RGBA, n *scene.Node, opts Options) {
	box := n.Bounds()
	if box.Empty() {
		return
	}
	size := box.Size()
	extent := max(size.X(), size.Y())
	if extent <= 0 {
		return
	}
	cw, ch := float32(canvas.Bounds().Dx()), float32(canvas.Bounds().Dy())
	k := opts.Scale * min(cw, ch) / extent
	center := box.Center()

	// Front orthographic view: +X right, +Y up, looking down -Z
	toScreen := func(p mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{
			cw/2 + (p.X()-center.X())*k,
			ch/2 - (p.Y()-center.Y())*k,
			p.Z(),
		}
	}

	var tris []triangle
	n.Traverse(func(node *scene.Node) bool {
		if !node.Visible {
			return false
		}
		if node.Mesh == nil {
			return true
		}
		world := node.WorldMatrix()
		for i := 0; i < node.Mesh.TriangleCount(); i++ {
			a, b, c := node.Mesh.Triangle(i)
			a = mgl32.TransformCoordinate(a, world)
			b = mgl32.TransformCoordinate(b, world)
			c = mgl32.TransformCoordinate(c, world)
			normal := b.Sub(a).Cross(c.Sub(a))
			shade := float32(0.55)
			if l := normal.Len(); l > 0 {
				nz := normal.Z() / l
				if nz < 0 {
					nz = -nz
				}
				shade = 0.55 + 0.45*nz
			}
			tris = append(tris, triangle{
				a: toScreen(a), b: toScreen(b), c: toScreen(c),
				depth: (a.Z() + b.Z() + c.Z()) / 3,
				shade: shade,
			})
		}
		return true
	})

	// Far to near
	sort.Slice(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })
	for _, t := range tris {
		fill(canvas, t, shaded(opts.Fill, t.shade))
	}
}

func shaded(c color.RGBA, k float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}

func edge(a, b mgl32.Vec3, x, y float32) float32 {
	return (b.X()-a.X())*(y-a.Y()) - (b.Y()-a.Y())*(x-a.X())
}

func fill(img *image.RGBA, t triangle, c color.RGBA) {
	area := edge(t.a, t.b, t.c.X(), t.c.Y())
	if area == 0 {
		return
	}
	r := img.Bounds()
	x0 := max(int(min(t.a.X(), t.b.X(), t.c.X())), r.Min.X)
	x1 := min(int(max(t.a.X(), t.b.X(), t.c.X()))+1, r.Max.X)
	y0 := max(int(min(t.a.Y(), t.b.Y(), t.c.Y())), r.Min.Y)
	y1 := min(int(max(t.a.Y(), t.b.Y(), t.c.Y()))+1, r.Max.Y)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(t.b, t.c, px, py)
			w1 := edge(t.c, t.a, px, py)
			w2 := edge(t.a, t.b, px, py)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func drawLabel(img *image.RGBA, label string, c color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	b := img.Bounds()
	x := (b.Dx() - width) / 2
	if x < 2 {
		x = 2
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, b.Dy()-face.Descent-4),
	}
	d.DrawString(label)
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteAll renders one <id>.png per catalog part into dir. A part that fails
// to load is logged and skipped.
func WriteAll(ctx context.Context, loader asset.Loader, cat *catalog.Catalog, dir string, opts Options, log core.Logger) (int, error) {
	log = core.OrNop(log)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	written := 0
	for _, def := range cat.Parts() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, err := loader.Load(ctx, def.AssetPath)
		if err != nil {
			log.Warnf("preview: skipping %s: %v", def.ID, err)
			continue
		}
		img := RenderWith(n, def.ID, opts)
		path := filepath.Join(dir, def.ID+".png")
		if err := WritePNG(path, img); err != nil {
			return written, err
		}
		log.Debugf("preview: wrote %s", path)
		written++
	}
	return written, nil
}
