package tui

import (
	"github.com/gerkit/gerkit"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/ui"
)

const (
	SidebarWidth = 22
	miniWidth    = 3
)

type Region struct {
	X, Y, W, H int
}

func (r Region) Contains(col, row int) bool {
	return col >= r.X && col < r.X+r.W && row >= r.Y && row < r.Y+r.H
}

// Control is one clickable line of the sidebar.
type Control struct {
	ID     string
	Label  string
	X, Y   int
	W      int
	Active bool
	// Part is set for per-part entries, which can be dragged onto the
	// viewport in the editor.
	Part string
}

// Layout splits the terminal into the 3D viewport, the sidebar and a
// status line on the bottom row.
type Layout struct {
	Cols, Rows int
	Viewport   Region
	Sidebar    Region
	Status     int
	Controls   []Control
	// Text holds sidebar headings; they are not clickable.
	Text []Control
}

// Pixel converts a terminal cell to viewport pixel coordinates. Each cell is
// one pixel wide and two tall.
func (l Layout) Pixel(col, row int) (float64, float64) {
	return float64(col-l.Viewport.X) + 0.5, float64(row-l.Viewport.Y)*2 + 1
}

// PixelSize is the viewport size in pixels.
func (l Layout) PixelSize() (int, int) {
	return l.Viewport.W, l.Viewport.H * 2
}

func (l Layout) Hit(col, row int) (Control, bool) {
	for _, c := range l.Controls {
		if row == c.Y && col >= c.X && col < c.X+c.W {
			return c, true
		}
	}
	return Control{}, false
}

func NewLayout(cols, rows int, mode gerkit.Mode, state *ui.State, cat *catalog.Catalog) Layout {
	l := Layout{Cols: cols, Rows: rows, Status: rows - 1}
	body := max(rows-1, 1)

	open := true
	if state != nil {
		open, _ = state.IsOpen(ui.Sidebar)
	}
	if !open || cols < SidebarWidth*2 {
		l.Viewport = Region{0, 0, cols, body}
		if state != nil {
			l.Controls = append(l.Controls, Control{ID: ui.MiniOpenBtn, Label: " » ", X: max(cols-miniWidth, 0), Y: 0, W: miniWidth})
		}
		return l
	}

	l.Viewport = Region{0, 0, cols - SidebarWidth, body}
	l.Sidebar = Region{cols - SidebarWidth, 0, SidebarWidth, body}

	b := sidebarBuilder{layout: &l, x: l.Sidebar.X + 1, w: SidebarWidth - 2}
	b.add(Control{ID: ui.CollapseBtn, Label: "« hide"})
	b.row++

	switch mode {
	case gerkit.ModeEditor:
		b.add(Control{ID: ui.Delete, Label: "[ Delete ]"})
		b.add(Control{ID: ui.HideAll, Label: "[ Hide all ]"})
		b.row++
		b.heading("Drag or click a part:")
		b.parts(cat, "")
	case gerkit.ModeAssembly:
		b.add(Control{ID: ui.BuildStep, Label: "[ Build ]"})
		b.add(Control{ID: ui.ShowAll, Label: "[ Show all ]"})
		b.add(Control{ID: gerkit.ClearAll, Label: "[ Clear ]"})
		menu := isOpen(state, ui.BuildMenu)
		b.add(Control{ID: ui.BuildToggle, Label: arrow(menu) + " Parts", Active: menu})
		if menu {
			b.parts(cat, state.Active(ui.PartButtons))
		}
	case gerkit.ModeInfo:
		b.add(Control{ID: ui.ShowAll, Label: "[ Show all ]"})
		menu := isOpen(state, ui.PartsMenu)
		b.add(Control{ID: ui.ShowParts, Label: arrow(menu) + " Parts", Active: menu})
		if menu {
			b.parts(cat, "")
		}
	}
	return l
}

func isOpen(state *ui.State, id string) bool {
	if state == nil {
		return false
	}
	open, _ := state.IsOpen(id)
	return open
}

func arrow(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

type sidebarBuilder struct {
	layout *Layout
	x, w   int
	row    int
}

func (b *sidebarBuilder) add(c Control) {
	if b.row >= b.layout.Sidebar.H {
		return
	}
	c.X, c.Y, c.W = b.x, b.row, b.w
	b.layout.Controls = append(b.layout.Controls, c)
	b.row++
}

func (b *sidebarBuilder) heading(text string) {
	if b.row >= b.layout.Sidebar.H {
		return
	}
	b.layout.Text = append(b.layout.Text, Control{Label: text, X: b.x, Y: b.row, W: b.w})
	b.row++
}

func (b *sidebarBuilder) parts(cat *catalog.Catalog, active string) {
	if cat == nil {
		return
	}
	for _, def := range cat.Parts() {
		b.add(Control{
			ID:     gerkit.PartButton(def.ID),
			Label:  "  " + def.DisplayName,
			Active: def.ID == active,
			Part:   def.ID,
		})
	}
}
