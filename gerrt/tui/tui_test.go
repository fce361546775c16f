package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/gerkit/gerkit"
	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/editor"
	"github.com/gerkit/gerkit/gerrt/rt/scene"
	"github.com/gerkit/gerkit/gerrt/rt/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxModel(ctx context.Context, path string) (*scene.Node, error) {
	root := scene.NewNode(path, nil)
	body := scene.NewNode("body", nil)
	body.Mesh = core.NewBox("body", mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1})
	root.Add(body)
	return root, nil
}

func testLayout() Layout {
	return Layout{
		Cols: 60, Rows: 21, Status: 20,
		Viewport: Region{0, 0, 40, 20},
		Sidebar:  Region{40, 0, 20, 20},
		Controls: []Control{
			{ID: ui.Delete, X: 42, Y: 1, W: 10},
			{ID: gerkit.PartButton("toono"), Part: "toono", X: 42, Y: 3, W: 10},
		},
	}
}

func mouse(col, row int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(col, row, b, tcell.ModNone)
}

func TestTranslateKey(t *testing.T) {
	k, ok := TranslateKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, gerkit.Key{Code: gerkit.KeyRune, Rune: 'r'}, k)

	k, ok = TranslateKey(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	require.True(t, ok)
	assert.Equal(t, gerkit.Key{Code: gerkit.KeyRune, Rune: 'z', Ctrl: true}, k)

	k, ok = TranslateKey(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, gerkit.KeyDelete, k.Code)

	_, ok = TranslateKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	assert.False(t, ok)
}

func TestQuitKeys(t *testing.T) {
	assert.True(t, Quit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, Quit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, Quit(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
}

func TestTranslatorPointerDrag(t *testing.T) {
	var tr Translator
	l := testLayout()

	assert.Equal(t, []gerkit.Event{gerkit.PointerDown{X: 10.5, Y: 11}}, tr.Translate(mouse(10, 5, tcell.ButtonPrimary), l))
	assert.Equal(t, []gerkit.Event{gerkit.PointerMove{X: 12.5, Y: 11}}, tr.Translate(mouse(12, 5, tcell.ButtonPrimary), l))
	assert.Empty(t, tr.Translate(mouse(12, 5, tcell.ButtonPrimary), l), "no move without motion")
	assert.Equal(t, []gerkit.Event{gerkit.PointerUp{}}, tr.Translate(mouse(12, 5, tcell.ButtonNone), l))
}

func TestTranslatorButtons(t *testing.T) {
	var tr Translator
	l := testLayout()

	assert.Equal(t, []gerkit.Event{gerkit.Button{ID: ui.Delete}}, tr.Translate(mouse(44, 1, tcell.ButtonPrimary), l))
	assert.Empty(t, tr.Translate(mouse(44, 1, tcell.ButtonNone), l))

	assert.Empty(t, tr.Translate(mouse(43, 3, tcell.ButtonPrimary), l), "part entries fire on release")
	assert.Equal(t, []gerkit.Event{gerkit.Button{ID: gerkit.PartButton("toono")}}, tr.Translate(mouse(45, 3, tcell.ButtonNone), l))
}

func TestTranslatorDrop(t *testing.T) {
	l := testLayout()

	tr := Translator{Drops: true}
	tr.Translate(mouse(43, 3, tcell.ButtonPrimary), l)
	tr.Translate(mouse(20, 4, tcell.ButtonPrimary), l)
	assert.Equal(t, []gerkit.Event{gerkit.Drop{PartID: "toono", X: 5.5, Y: 11}}, tr.Translate(mouse(5, 5, tcell.ButtonNone), l))

	tr = Translator{}
	tr.Translate(mouse(43, 3, tcell.ButtonPrimary), l)
	assert.Empty(t, tr.Translate(mouse(5, 5, tcell.ButtonNone), l))
}

func TestTranslatorOrbitAndZoom(t *testing.T) {
	var tr Translator
	l := testLayout()

	assert.Empty(t, tr.Translate(mouse(10, 10, tcell.ButtonSecondary), l))
	out := tr.Translate(mouse(14, 8, tcell.ButtonSecondary), l)
	require.Len(t, out, 1)
	drag := out[0].(gerkit.OrbitDrag)
	assert.InDelta(t, 0.2, drag.DX, 1e-6)
	assert.InDelta(t, -0.2, drag.DY, 1e-6)

	assert.Equal(t, []gerkit.Event{gerkit.Zoom{Factor: wheelZoom}}, tr.Translate(mouse(10, 10, tcell.WheelUp), l))
}

func TestNewLayout(t *testing.T) {
	state := ui.Default()
	l := NewLayout(80, 25, gerkit.ModeEditor, state, nil)
	assert.Equal(t, Region{0, 0, 80 - SidebarWidth, 24}, l.Viewport)
	assert.Equal(t, 24, l.Status)
	_, ok := l.Hit(l.Sidebar.X+1, 0)
	assert.True(t, ok)

	state.Collapse()
	l = NewLayout(80, 25, gerkit.ModeEditor, state, nil)
	assert.Equal(t, 80, l.Viewport.W)
	require.Len(t, l.Controls, 1)
	assert.Equal(t, ui.MiniOpenBtn, l.Controls[0].ID)

	w, h := l.PixelSize()
	assert.Equal(t, 80, w)
	assert.Equal(t, 48, h)
}

func TestNewLayoutPartsMenu(t *testing.T) {
	state := ui.Default()
	cat := catalog.Default()
	l := NewLayout(80, 40, gerkit.ModeInfo, state, cat)
	before := len(l.Controls)

	state.Open(ui.PartsMenu)
	l = NewLayout(80, 40, gerkit.ModeInfo, state, cat)
	assert.Equal(t, before+cat.Len(), len(l.Controls))
}

func TestFrameDrawsAndTintsSelection(t *testing.T) {
	cam := core.NewCamera(60, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 1, 8}
	cam.Target = mgl32.Vec3{0, 1, 0}

	s := scene.NewScene()
	n := scene.NewNode("box", scene.InstanceTag{PartID: "toono"})
	n.Mesh = core.NewBox("box", mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1})
	s.Add(n)

	f := NewFrame(40, 40)
	f.Clear(Background)
	f.Draw(s.Root(), cam, Style{})
	plain := f.At(20, 20)
	assert.NotEqual(t, Background, plain)
	assert.Equal(t, Background, f.At(0, 0))

	f.Clear(Background)
	f.Draw(s.Root(), cam, Style{Selected: n})
	assert.NotEqual(t, plain, f.At(20, 20))

	n.Visible = false
	f.Clear(Background)
	f.Draw(s.Root(), cam, Style{})
	assert.Equal(t, Background, f.At(20, 20))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"aa bb", "cc"}, wrap("aa bb cc", 5))
	assert.Empty(t, wrap("  ", 5))
}

func newSimView(t *testing.T) (*gerkit.App, *View, tcell.SimulationScreen) {
	t.Helper()
	cfg := gerkit.DefaultConfig()
	cfg.Assembly.Audio = false
	app, err := gerkit.NewAppBuilder(cfg).
		WithLoader(asset.LoaderFunc(boxModel)).
		WithLogger(gerkit.NewNopLogger()).
		UseMode().
		Build(context.Background())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)
	return app, New(app, screen, nil), screen
}

func TestViewSizesViewport(t *testing.T) {
	app, _, _ := newSimView(t)
	assert.Equal(t, 80-SidebarWidth, app.Session().Width)
	assert.Equal(t, 48, app.Session().Height)
}

func TestViewDropFromSidebar(t *testing.T) {
	app, v, screen := newSimView(t)

	var entry Control
	for _, c := range v.Layout().Controls {
		if c.Part == "toono" {
			entry = c
		}
	}
	require.NotEmpty(t, entry.ID)

	v.Handle(mouse(entry.X+1, entry.Y, tcell.ButtonPrimary))
	v.Handle(mouse(29, 12, tcell.ButtonNone))
	app.Session().Queue.Wait()
	app.Session().Pump()
	require.Len(t, app.Session().Scene.Instances(), 1)

	v.Draw()
	var status strings.Builder
	for col := 0; col < 80; col++ {
		r, _, _, _ := screen.GetContent(col, 24)
		status.WriteRune(r)
	}
	assert.Contains(t, status.String(), "editor")
}

func TestViewCollapseRelayouts(t *testing.T) {
	app, v, _ := newSimView(t)
	v.Handle(mouse(v.Layout().Sidebar.X+1, 0, tcell.ButtonPrimary))
	v.Handle(mouse(v.Layout().Sidebar.X+1, 0, tcell.ButtonNone))

	assert.Equal(t, 80, v.Layout().Viewport.W)
	assert.Equal(t, 80, app.Session().Width)
	ed, ok := gerkit.Resource[editor.Editor](app)
	require.True(t, ok)
	assert.Nil(t, ed.Selected())
}

func TestViewQuitKey(t *testing.T) {
	app, _, screen := newSimView(t)
	quit := false
	v := New(app, screen, func() { quit = true })
	v.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	assert.True(t, quit)
}
