package preview

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxNode() *scene.Node {
	n := scene.NewNode("box", nil)
	n.Mesh = core.NewBox("box", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	return n
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2
}

func TestRenderSilhouette(t *testing.T) {
	img := Render(boxNode(), "", DefaultWidth, DefaultHeight)
	require.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), img.Bounds())

	bg := DefaultOptions().Background
	assert.False(t, near(img.RGBAAt(DefaultWidth/2, DefaultHeight/2), bg), "model covers the centre")
	assert.True(t, near(img.RGBAAt(2, 2), bg), "corner stays background")

	// The box fills 0.6 of the height, so the left edge of the canvas is empty.
	assert.True(t, near(img.RGBAAt(10, DefaultHeight/2), bg))
}

func TestRenderLabelAndEmptyNode(t *testing.T) {
	bg := DefaultOptions().Background
	img := Render(scene.NewNode("empty", nil), "toono", 120, 60)

	marked := false
	for y := 40; y < 60 && !marked; y++ {
		for x := 0; x < 120; x++ {
			if !near(img.RGBAAt(x, y), bg) {
				marked = true
				break
			}
		}
	}
	assert.True(t, marked, "label pixels drawn near the bottom")
	assert.True(t, near(img.RGBAAt(60, 10), bg))
}

func TestHiddenNodesAreSkipped(t *testing.T) {
	n := boxNode()
	n.Visible = false
	img := Render(n, "", 80, 80)
	assert.True(t, near(img.RGBAAt(40, 40), DefaultOptions().Background))
}

func TestWriteAll(t *testing.T) {
	cat, err := catalog.New([]catalog.PartDefinition{
		{ID: "toono", AssetPath: "toono.glb"},
		{ID: "broken", AssetPath: "broken.glb"},
	})
	require.NoError(t, err)
	loader := asset.LoaderFunc(func(ctx context.Context, path string) (*scene.Node, error) {
		if path == "broken.glb" {
			return nil, errors.New("bad file")
		}
		return boxNode(), nil
	})

	dir := filepath.Join(t.TempDir(), "thumbs")
	opts := DefaultOptions()
	n, err := WriteAll(context.Background(), loader, cat, dir, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := os.Open(filepath.Join(dir, "toono.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), img.Bounds())

	_, err = os.Stat(filepath.Join(dir, "broken.png"))
	assert.True(t, os.IsNotExist(err))
}
