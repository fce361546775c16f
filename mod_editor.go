package gerkit

import (
	"errors"
	"io/fs"

	"github.com/gerkit/gerkit/gerrt/rt/editor"
	"github.com/gerkit/gerkit/gerrt/rt/scene"
	"github.com/gerkit/gerkit/gerrt/rt/ui"
)

// DefaultStateFile is where Ctrl+S saves when no state file is configured.
const DefaultStateFile = "ger_state.json"

// EditorModule runs the free-form editor: picking, dragging, the gizmo,
// undo and state files.
type EditorModule struct{}

func (EditorModule) Install(app *App, s *Session) error {
	scope, err := editor.ParseUndoScope(s.Config.Undo.Scope)
	if err != nil {
		return err
	}
	ed := editor.New(s.Scene, s.Camera, s.Catalog, s.Queue, editor.Options{
		UndoLimit: s.Config.Undo.Limit,
		UndoScope: scope,
		Orbit:     s.Orbit,
		Logger:    s.Log,
	})
	ed.SetViewport(s.Width, s.Height)
	app.addResources(ed)

	if path := s.Config.StateFile; path != "" {
		if err := ed.LoadFile(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			s.Log.Infof("editor: no saved state at %s", path)
		}
	}

	app.OnEvent(func(s *Session, ev Event) bool {
		return editorEvent(s, ed, ev)
	})
	app.UseSystem(PostUpdate, func(s *Session) {
		ed.Gizmo().Sync()
	})
	return nil
}

func editorEvent(s *Session, ed *editor.Editor, ev Event) bool {
	switch ev := ev.(type) {
	case Resize:
		ed.SetViewport(ev.Width, ev.Height)
	case PointerDown:
		ed.SnapRotation = ev.Shift
		ed.PointerDown(ev.X, ev.Y)
		return true
	case PointerMove:
		ed.SnapRotation = ev.Shift
		ed.PointerMove(ev.X, ev.Y)
		return ed.Dragging()
	case PointerUp:
		ed.PointerUp()
		return true
	case Drop:
		if _, err := ed.Place(ev.PartID, ev.X, ev.Y); err != nil {
			s.Log.Warnf("editor: drop %s: %v", ev.PartID, err)
		}
		return true
	case Button:
		switch ev.ID {
		case ui.Delete:
			ed.Delete()
			return true
		case ui.HideAll:
			ed.HideAll()
			return true
		}
		if id, ok := PartFromButton(ev.ID); ok {
			// Menu placement drops at the viewport centre.
			if _, err := ed.Place(id, float64(s.Width)/2, float64(s.Height)/2); err != nil {
				s.Log.Warnf("editor: place %s: %v", id, err)
			}
			return true
		}
	case Key:
		return editorKey(s, ed, ev)
	}
	return false
}

func editorKey(s *Session, ed *editor.Editor, k Key) bool {
	if k.Code == KeyDelete {
		return ed.Delete()
	}
	if k.Code != KeyRune {
		return false
	}
	if k.Ctrl {
		switch k.Rune {
		case 'z':
			ed.Undo()
		case 's':
			path := stateFile(s)
			if err := ed.SaveFile(path); err != nil {
				s.Log.Errorf("editor: save %s: %v", path, err)
			} else {
				s.Log.Infof("editor: saved %s", path)
			}
		case 'o':
			path := stateFile(s)
			if err := ed.LoadFile(path); err != nil {
				s.Log.Errorf("editor: load %s: %v", path, err)
			}
		default:
			return false
		}
		return true
	}
	switch k.Rune {
	case 't':
		ed.Gizmo().SetMode(scene.GizmoTranslate)
	case 'r':
		ed.Gizmo().SetMode(scene.GizmoRotate)
	case 'h':
		ed.HideAll()
	default:
		return false
	}
	return true
}

func stateFile(s *Session) string {
	if s.Config.StateFile != "" {
		return s.Config.StateFile
	}
	return DefaultStateFile
}
