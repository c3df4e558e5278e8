package system

import (
	"testing"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/intent"
)

func TestApplyLogInsertsKeyedEntries(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})

	w.Intents.Log = append(w.Intents.Log, intent.LogIntent{Entity: bot, Text: "hello", Time: 3})
	ApplyLog(w)

	entry, ok := w.Logs.Get(component.LogKey{Entity: bot, Tick: 3})
	if !ok || entry.Text != "hello" {
		t.Fatalf("Logs.Get = %+v, %v, want hello, true", entry, ok)
	}
	if len(w.Intents.Log) != 0 {
		t.Fatalf("expected Log queue cleared")
	}
}

func TestLogTrimDropsOldEntries(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})

	for tick := int64(0); tick < 10; tick++ {
		w.Logs.InsertOrUpdate(component.LogKey{Entity: bot, Tick: tick}, component.LogEntry{Text: "x"})
	}
	for i := int64(0); i < 10+component.LogRetentionTicks+1; i++ {
		w.AdvanceTick()
	}
	LogTrim(w)

	cutoff := w.Tick() - component.LogRetentionTicks
	remaining := 0
	w.Logs.Iter(func(k component.LogKey, _ component.LogEntry) bool {
		if k.Tick < cutoff {
			t.Errorf("entry at tick %d should have been trimmed (cutoff %d)", k.Tick, cutoff)
		}
		remaining++
		return true
	})
}

func TestLogTrimNoOpBeforeRetentionWindow(t *testing.T) {
	w := newTestWorld()
	bot := spawnBot(w, component.WorldPosition{Room: geometry.Axial{Q: 0, R: 0}, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Logs.InsertOrUpdate(component.LogKey{Entity: bot, Tick: 0}, component.LogEntry{Text: "x"})

	LogTrim(w) // tick is still 0, cutoff <= 0, must not trim
	if !w.Logs.Contains(component.LogKey{Entity: bot, Tick: 0}) {
		t.Fatalf("expected entry to survive before the retention window opens")
	}
}
