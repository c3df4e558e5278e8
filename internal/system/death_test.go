package system

import (
	"testing"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/intent"
)

func TestDeathQueuesZeroHpEntities(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	alive := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	dead := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 1, R: 0}})
	w.Hp.InsertOrUpdate(alive, component.HpComponent{Hp: 10, HpMax: 10})
	w.Hp.InsertOrUpdate(dead, component.HpComponent{Hp: 0, HpMax: 10})

	Death(w)
	w.FlushDestroyQueue()

	if !w.Bots.Contains(alive) {
		t.Fatalf("alive entity should survive")
	}
	if w.Bots.Contains(dead) {
		t.Fatalf("zero-hp entity should have been destroyed")
	}
}

func TestDeathAppliesDeleteEntityIntent(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Hp.InsertOrUpdate(bot, component.HpComponent{Hp: 10, HpMax: 10})

	w.Intents.DeleteEntity = append(w.Intents.DeleteEntity, intent.DeleteEntityIntent{Id: bot})
	Death(w)
	w.FlushDestroyQueue()

	if w.Bots.Contains(bot) {
		t.Fatalf("explicitly deleted entity should be gone")
	}
	if len(w.Intents.DeleteEntity) != 0 {
		t.Fatalf("expected DeleteEntity queue cleared")
	}
}
