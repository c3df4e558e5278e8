package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyLog appends every queued LogIntent's text as a LogEntry row keyed
// by (entity, time).
func ApplyLog(w *world.World) {
	logs := w.Intents.Log
	w.Intents.ClearLog()
	for _, l := range logs {
		w.Logs.InsertOrUpdate(component.LogKey{Entity: l.Entity, Tick: l.Time}, component.LogEntry{Text: l.Text})
	}
}
