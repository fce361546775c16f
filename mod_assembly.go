package gerkit

import (
	"github.com/gerkit/gerkit/gerrt/rt/assembly"
	"github.com/gerkit/gerkit/gerrt/rt/audio"
	"github.com/gerkit/gerkit/gerrt/rt/ui"
)

// ClearAll is the assembly-only button that empties the stage.
const ClearAll = "clearAll"

// AssemblyModule runs guided assembly: timed builds, show/clear all and the
// per-part buttons that add parts to the stage one click at a time.
type AssemblyModule struct{}

func (AssemblyModule) Install(app *App, s *Session) error {
	b := assembly.New(s.Scene, s.Camera, s.Orbit, s.Catalog, s.Queue, s.Log)
	if s.Config.Assembly.Interval > 0 {
		b.Interval = s.Config.Assembly.Interval
	}

	chime := audio.Silent()
	if s.Config.Assembly.Audio {
		chime = audio.NewChime(s.Log)
	}
	b.OnStep = func(step int, partID string) {
		s.Log.Debugf("assembly: step %d %s", step, partID)
		chime.Play(step)
	}
	app.OnClose(chime.Close)
	app.addResources(b)
	b.Preload()

	state, _ := Resource[ui.State](app)
	app.OnEvent(func(s *Session, ev Event) bool {
		switch ev := ev.(type) {
		case Button:
			return assemblyButton(s, b, state, ev.ID)
		case Key:
			if ev.Code != KeyRune || ev.Ctrl {
				return false
			}
			switch ev.Rune {
			case 'b':
				return assemblyButton(s, b, state, ui.BuildStep)
			case 'a':
				return assemblyButton(s, b, state, ui.ShowAll)
			case 'c':
				return assemblyButton(s, b, state, ClearAll)
			}
		}
		return false
	})
	app.UseSystem(Update, func(s *Session) {
		b.Update(s.Time.Dt)
	})
	return nil
}

func assemblyButton(s *Session, b *assembly.Builder, state *ui.State, id string) bool {
	switch id {
	case ui.BuildStep:
		clearParts(state)
		b.BuildStep()
		return true
	case ui.ShowAll:
		clearParts(state)
		b.ShowAll()
		return true
	case ClearAll:
		clearParts(state)
		b.ClearAll()
		return true
	}
	partID, ok := PartFromButton(id)
	if !ok {
		return false
	}
	shown, err := b.Toggle(partID)
	if err != nil {
		s.Log.Warnf("assembly: %v", err)
		return true
	}
	if state != nil {
		state.SetActive(ui.PartButtons, partID)
	}
	if !shown {
		s.Log.Infof("assembly: %s still loading", partID)
	}
	return true
}

func clearParts(state *ui.State) {
	if state != nil {
		state.ClearActive(ui.PartButtons)
	}
}
