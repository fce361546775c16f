// Package tui is the terminal front end: it rasterizes the scene into
// half-block cells, draws the sidebar and feeds mouse and keys to the app.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gerkit/gerkit"
	"github.com/gerkit/gerkit/gerrt/rt/assembly"
	"github.com/gerkit/gerkit/gerrt/rt/editor"
	"github.com/gerkit/gerkit/gerrt/rt/hotspot"
	"github.com/gerkit/gerkit/gerrt/rt/scene"
	"github.com/gerkit/gerkit/gerrt/rt/ui"

	"github.com/gdamore/tcell/v2"
)

const tooltipWidth = 30

var (
	sidebarStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(0x24, 0x29, 0x33)).Foreground(tcell.ColorWhite)
	activeStyle  = sidebarStyle.Background(tcell.NewRGBColor(0x8b, 0x5a, 0x2b))
	headingStyle = sidebarStyle.Foreground(tcell.ColorSilver)
	statusStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(0x10, 0x10, 0x10)).Foreground(tcell.ColorSilver)
	tooltipStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(0xf5, 0xef, 0xe0)).Foreground(tcell.ColorBlack)
)

// View owns the screen for one app. Draw and Handle must run on the app's
// UI goroutine; only the poll loop touches the screen from elsewhere.
type View struct {
	app    *gerkit.App
	screen tcell.Screen
	frame  *Frame
	layout Layout
	input  Translator
	events chan tcell.Event
	quit   func()
}

// New attaches a view to app and registers its input and render systems.
// quit is called when the user asks to leave.
func New(app *gerkit.App, screen tcell.Screen, quit func()) *View {
	v := &View{
		app:    app,
		screen: screen,
		frame:  NewFrame(1, 1),
		events: make(chan tcell.Event, 256),
		quit:   quit,
	}
	v.input.Drops = app.Session().Config.Mode == gerkit.ModeEditor
	app.UseSystem(gerkit.PreUpdate, func(*gerkit.Session) { v.drain() })
	app.UseSystem(gerkit.Render, func(*gerkit.Session) { v.Draw() })
	v.relayout()
	return v
}

func (v *View) Layout() Layout { return v.layout }

// Poll forwards screen events to the UI goroutine until ctx ends or the
// screen is finalized.
func (v *View) Poll(ctx context.Context) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case v.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (v *View) drain() {
	for {
		select {
		case ev := <-v.events:
			v.Handle(ev)
		default:
			return
		}
	}
}

func (v *View) relayout() {
	cols, rows := v.screen.Size()
	state, _ := gerkit.Resource[ui.State](v.app)
	s := v.app.Session()
	v.layout = NewLayout(cols, rows, s.Config.Mode, state, s.Catalog)
	if w, h := v.layout.PixelSize(); w != s.Width || h != s.Height {
		v.app.Dispatch(gerkit.Resize{Width: w, Height: h})
	}
}

// Handle applies one terminal event.
func (v *View) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.relayout()
		return
	case *tcell.EventKey:
		if Quit(ev) {
			if v.quit != nil {
				v.quit()
			}
			return
		}
	}
	for _, out := range v.input.Translate(ev, v.layout) {
		v.app.Dispatch(out)
	}
	// Buttons can open menus or collapse the sidebar
	v.relayout()
}

func (v *View) Draw() {
	s := v.app.Session()
	v.screen.Clear()

	var selected *scene.Node
	if ed, ok := gerkit.Resource[editor.Editor](v.app); ok {
		selected = ed.Selected()
	}
	vp := v.layout.Viewport
	v.frame.Resize(vp.W, vp.H*2)
	v.frame.Clear(Background)
	v.frame.Draw(s.Scene.Root(), s.Camera, Style{Selected: selected})
	v.frame.Blit(v.screen, vp.X, vp.Y)

	v.drawSidebar()
	if hv, ok := gerkit.Resource[hotspot.Viewer](v.app); ok {
		v.drawTooltip(hv.Tooltip())
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *View) drawSidebar() {
	sb := v.layout.Sidebar
	for row := sb.Y; row < sb.Y+sb.H; row++ {
		for col := sb.X; col < sb.X+sb.W; col++ {
			v.screen.SetContent(col, row, ' ', nil, sidebarStyle)
		}
	}
	for _, t := range v.layout.Text {
		drawText(v.screen, t.X, t.Y, t.W, t.Label, headingStyle)
	}
	for _, c := range v.layout.Controls {
		style := sidebarStyle
		if c.Active {
			style = activeStyle
		}
		drawText(v.screen, c.X, c.Y, c.W, c.Label, style)
	}
}

func (v *View) drawTooltip(tt hotspot.Tooltip) {
	if !tt.Visible {
		return
	}
	lines := append([]string{tt.Title}, wrap(tt.Text, tooltipWidth-2)...)
	vp := v.layout.Viewport
	col := vp.X + int(tt.X)
	row := vp.Y + int(tt.Y/2)
	col = min(max(col, vp.X), vp.X+vp.W-tooltipWidth)
	row = min(max(row, vp.Y), vp.Y+vp.H-len(lines))
	for i, line := range lines {
		style := tooltipStyle
		if i == 0 {
			style = style.Bold(true)
		}
		drawText(v.screen, col, row+i, tooltipWidth, " "+line, style)
	}
}

func (v *View) drawStatus() {
	s := v.app.Session()
	parts := []string{string(s.Config.Mode)}
	if ed, ok := gerkit.Resource[editor.Editor](v.app); ok {
		if n := ed.Selected(); n != nil {
			parts = append(parts, "selected "+n.Name)
		}
		mode := "move"
		if ed.Gizmo().Mode() == scene.GizmoRotate {
			mode = "rotate"
		}
		parts = append(parts, mode, fmt.Sprintf("undo %d", ed.History().Len()))
		parts = append(parts, "t/r gizmo  del delete  ^z undo  ^s save")
	}
	if b, ok := gerkit.Resource[assembly.Builder](v.app); ok {
		if b.Building() {
			parts = append(parts, "building")
		}
		parts = append(parts, fmt.Sprintf("%d/%d loaded", b.Loaded(), s.Catalog.Len()))
		parts = append(parts, "b build  a all  c clear")
	}
	if _, ok := gerkit.Resource[hotspot.Viewer](v.app); ok {
		parts = append(parts, "click a part  esc close")
	}
	if n := s.Queue.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("loading %d", n))
	}
	parts = append(parts, "q quit")
	line := " " + strings.Join(parts, " │ ")
	for col := 0; col < v.layout.Cols; col++ {
		v.screen.SetContent(col, v.layout.Status, ' ', nil, statusStyle)
	}
	drawText(v.screen, 0, v.layout.Status, v.layout.Cols, line, statusStyle)
}

func drawText(screen tcell.Screen, x, y, w int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= w {
			return
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < w; col++ {
		screen.SetContent(x+col, y, ' ', nil, style)
	}
}

func wrap(text string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(w) > width {
			lines = append(lines, string(cur))
			cur = nil
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// Run shows app on screen until ctx ends or the user quits. The screen must
// already be initialized; Run finalizes it.
func Run(ctx context.Context, app *gerkit.App, screen tcell.Screen) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen.EnableMouse()
	screen.HideCursor()
	v := New(app, screen, cancel)
	go v.Poll(ctx)
	defer screen.Fini()

	err := app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
