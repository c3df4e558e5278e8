package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyScriptHistory overwrites (appends to) each entity's bounded script
// trace.
func ApplyScriptHistory(w *world.World) {
	entries := w.Intents.ScriptHistory
	w.Intents.ClearScriptHistory()
	for _, e := range entries {
		hist, ok := w.ScriptHistory.GetMut(e.Entity)
		if !ok {
			w.ScriptHistory.InsertOrUpdate(e.Entity, component.ScriptHistoryComponent{})
			hist, _ = w.ScriptHistory.GetMut(e.Entity)
		}
		hist.Push(component.ScriptHistoryEntry{Time: e.Time, Payload: e.Payload})
	}
}
