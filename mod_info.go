package gerkit

import (
	"github.com/gerkit/gerkit/gerrt/rt/hotspot"
	"github.com/gerkit/gerkit/gerrt/rt/ui"
)

// InfoModule runs the informational viewer: click a part for its
// description, or isolate one from the parts grid.
type InfoModule struct{}

func (InfoModule) Install(app *App, s *Session) error {
	v := hotspot.New(s.Scene, s.Camera, s.Orbit, s.Catalog, s.Queue, s.Log)
	v.SetViewport(s.Width, s.Height)
	app.addResources(v)
	v.Load()

	app.OnEvent(func(s *Session, ev Event) bool {
		switch ev := ev.(type) {
		case Resize:
			v.SetViewport(ev.Width, ev.Height)
		case PointerDown:
			v.Click(ev.X, ev.Y)
			return true
		case Key:
			if ev.Code == KeyEscape {
				v.HideTooltip()
				return true
			}
		case Button:
			if ev.ID == ui.ShowAll {
				v.ShowAll()
				return true
			}
			if id, ok := PartFromButton(ev.ID); ok {
				if err := v.ShowOnly(id); err != nil {
					s.Log.Warnf("hotspot: %v", err)
				}
				return true
			}
		}
		return false
	})
	return nil
}
