package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/world"
)

// LogTrim drops LogEntry rows older than current_tick - LogRetentionTicks
// (spec §4.5).
func LogTrim(w *world.World) {
	cutoff := w.Tick() - component.LogRetentionTicks
	if cutoff <= 0 {
		return
	}
	w.Logs.RemoveEntityKeyed(func(k component.LogKey) bool { return k.Tick < cutoff })
}
