package gerkit

import (
	"github.com/gerkit/gerkit/gerrt/rt/ui"
)

// UIModule owns the menu and toggle state. Mode modules react to the same
// buttons after it.
type UIModule struct{}

func (UIModule) Install(app *App, s *Session) error {
	state := ui.Default()
	for _, def := range s.Catalog.Parts() {
		state.Register(PartButton(def.ID), false)
	}
	app.addResources(state)
	app.OnEvent(func(s *Session, ev Event) bool {
		b, ok := ev.(Button)
		if !ok {
			return false
		}
		switch b.ID {
		case ui.CollapseBtn:
			state.Collapse()
		case ui.MiniOpenBtn:
			state.Expand()
		case ui.ShowParts:
			state.Toggle(ui.PartsMenu)
		case ui.BuildToggle:
			state.Toggle(ui.BuildMenu)
			state.Toggle(ui.BuildToggle)
		}
		return false
	})
	return nil
}
