package tui

import (
	"github.com/gerkit/gerkit"

	"github.com/gdamore/tcell/v2"
)

const (
	orbitPerCol = 0.05
	orbitPerRow = 0.1
	wheelZoom   = 0.9
)

// Translator turns terminal input into viewer events. It tracks button state
// across mouse reports, so one Translator serves one screen.
type Translator struct {
	// Drops enables dragging part entries onto the viewport.
	Drops bool

	buttons   tcell.ButtonMask
	col, row  int
	viewDrag  bool
	pending   Control
	haveEntry bool
}

// Translate maps ev against the current layout. Resize is left to the
// caller, which must rebuild the layout first.
func (t *Translator) Translate(ev tcell.Event, l Layout) []gerkit.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := TranslateKey(ev); ok {
			return []gerkit.Event{k}
		}
	case *tcell.EventMouse:
		return t.mouse(ev, l)
	}
	return nil
}

func (t *Translator) mouse(ev *tcell.EventMouse, l Layout) []gerkit.Event {
	col, row := ev.Position()
	buttons := ev.Buttons()
	shift := ev.Modifiers()&tcell.ModShift != 0
	prev, pcol, prow := t.buttons, t.col, t.row
	t.buttons, t.col, t.row = buttons&(tcell.ButtonPrimary|tcell.ButtonSecondary|tcell.ButtonMiddle), col, row

	var out []gerkit.Event
	switch {
	case buttons&tcell.WheelUp != 0:
		return append(out, gerkit.Zoom{Factor: wheelZoom})
	case buttons&tcell.WheelDown != 0:
		return append(out, gerkit.Zoom{Factor: 1 / wheelZoom})
	}

	primary := buttons&tcell.ButtonPrimary != 0
	wasPrimary := prev&tcell.ButtonPrimary != 0
	orbit := buttons&(tcell.ButtonSecondary|tcell.ButtonMiddle) != 0
	wasOrbit := prev&(tcell.ButtonSecondary|tcell.ButtonMiddle) != 0

	switch {
	case primary && !wasPrimary:
		if c, ok := l.Hit(col, row); ok {
			if c.Part != "" {
				t.pending, t.haveEntry = c, true
				break
			}
			out = append(out, gerkit.Button{ID: c.ID})
			break
		}
		if l.Viewport.Contains(col, row) {
			x, y := l.Pixel(col, row)
			t.viewDrag = true
			out = append(out, gerkit.PointerDown{X: x, Y: y, Shift: shift})
		}
	case primary && wasPrimary:
		if t.viewDrag && (col != pcol || row != prow) {
			x, y := l.Pixel(col, row)
			out = append(out, gerkit.PointerMove{X: x, Y: y, Shift: shift})
		}
	case !primary && wasPrimary:
		if t.viewDrag {
			t.viewDrag = false
			out = append(out, gerkit.PointerUp{})
		}
		if t.haveEntry {
			out = append(out, t.release(col, row, l)...)
			t.haveEntry = false
		}
	}

	if orbit && wasOrbit && (col != pcol || row != prow) {
		out = append(out, gerkit.OrbitDrag{
			DX: float32(col-pcol) * orbitPerCol,
			DY: float32(row-prow) * orbitPerRow,
		})
	}
	return out
}

// release finishes a press on a part entry: back on the entry is a click,
// over the viewport is a drop.
func (t *Translator) release(col, row int, l Layout) []gerkit.Event {
	if c, ok := l.Hit(col, row); ok && c.ID == t.pending.ID {
		return []gerkit.Event{gerkit.Button{ID: c.ID}}
	}
	if t.Drops && l.Viewport.Contains(col, row) {
		x, y := l.Pixel(col, row)
		return []gerkit.Event{gerkit.Drop{PartID: t.pending.Part, X: x, Y: y}}
	}
	return nil
}

// TranslateKey maps a key press. Ctrl+letter arrives either as a control key
// or as a rune with ModCtrl depending on the terminal.
func TranslateKey(ev *tcell.EventKey) (gerkit.Key, bool) {
	mods := ev.Modifiers()
	ctrl, shift := mods&tcell.ModCtrl != 0, mods&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyRune:
		return gerkit.Key{Code: gerkit.KeyRune, Rune: ev.Rune(), Ctrl: ctrl, Shift: shift}, true
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return gerkit.Key{Code: gerkit.KeyDelete}, true
	case tcell.KeyEscape:
		return gerkit.Key{Code: gerkit.KeyEscape}, true
	case tcell.KeyTab:
		return gerkit.Key{Code: gerkit.KeyTab}, true
	case tcell.KeyUp:
		return gerkit.Key{Code: gerkit.KeyUp}, true
	case tcell.KeyDown:
		return gerkit.Key{Code: gerkit.KeyDown}, true
	case tcell.KeyLeft:
		return gerkit.Key{Code: gerkit.KeyLeft}, true
	case tcell.KeyRight:
		return gerkit.Key{Code: gerkit.KeyRight}, true
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return gerkit.Key{Code: gerkit.KeyRune, Rune: 'a' + rune(k-tcell.KeyCtrlA), Ctrl: true}, true
	}
	return gerkit.Key{}, false
}

// Quit reports the keys that end the session.
func Quit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'q' && ev.Modifiers()&tcell.ModCtrl == 0
}
