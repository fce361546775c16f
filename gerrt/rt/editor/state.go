package editor

import (
	"fmt"
	"os"

	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/codec"
	"github.com/gerkit/gerkit/gerrt/rt/scene"
)

// ExportState serializes every placed instance in scene order.
func (e *Editor) ExportState() (string, error) {
	return codec.Export(e.scene)
}

// PushUndo appends the current state to the history.
func (e *Editor) PushUndo() {
	text, err := e.ExportState()
	if err != nil {
		e.log.Errorf("editor: snapshot failed: %v", err)
		return
	}
	e.history.Push(text)
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	text, ok := e.history.Undo()
	if !ok {
		return false
	}
	if err := e.loadState(text); err != nil {
		e.log.Errorf("editor: undo failed: %v", err)
		return false
	}
	return true
}

// LoadState replaces all placed instances with the ones described by text.
// Models load asynchronously and appear as their loads complete. A malformed
// snapshot or an unknown part id leaves the scene untouched. When every edit
// is tracked the history restarts from the loaded state.
func (e *Editor) LoadState(text string) error {
	if err := e.loadState(text); err != nil {
		return err
	}
	if e.scope == ScopeAll {
		e.history.Clear()
		e.history.Push(text)
	}
	return nil
}

func (e *Editor) loadState(text string) error {
	records, err := codec.Decode(text)
	if err != nil {
		return err
	}
	defs := make([]catalog.PartDefinition, len(records))
	for i, r := range records {
		def, err := e.catalog.Lookup(r.ID)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		defs[i] = def
	}

	e.ClearSelection()
	e.scene.RemoveInstances()

	// Begin drops any snapshot still waiting on the previous generation.
	e.pushQueued = false
	gen := e.queue.Begin(SceneKey)
	for i, r := range records {
		def, rec := defs[i], r
		e.queue.Submit(SceneKey, gen, def.AssetPath, func(n *scene.Node) {
			n.Name = def.ID
			n.Tag = scene.InstanceTag{PartID: rec.ID}
			n.Transform.Position = rec.Position()
			n.Transform.Rotation = rec.Rotation()
			n.Visible = true
			e.scene.Add(n)
		})
	}
	e.log.Debugf("editor: restoring %d instances (gen %d)", len(records), gen)
	return nil
}

func (e *Editor) SaveFile(path string) error {
	text, err := e.ExportState()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (e *Editor) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	return e.LoadState(string(data))
}
