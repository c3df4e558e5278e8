package system

import (
	"testing"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/intent"
)

func TestApplyDropoffFillsStructureEnergy(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Carry.InsertOrUpdate(bot, component.CarryComponent{Carry: 20, CarryMax: 50})

	structure := w.CreateEntity()
	w.Positions.InsertOrUpdate(structure, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 1, R: 0}})
	w.Structures.InsertOrUpdate(structure, ecs.Unit{})
	w.Energy.InsertOrUpdate(structure, component.EnergyComponent{Energy: 0, EnergyMax: 50})

	w.Intents.Dropoff = append(w.Intents.Dropoff, intent.DropoffIntent{
		Bot: bot, Structure: structure, Amount: 20, Kind: component.ResourceEnergy,
	})
	ApplyDropoff(w)

	carry, _ := w.Carry.Get(bot)
	if carry.Carry != 0 {
		t.Fatalf("carry = %d, want 0", carry.Carry)
	}
	energy, ok := w.Energy.Get(structure)
	if !ok || energy.Energy != 20 {
		t.Fatalf("expected the structure's EnergyComponent to hold 20, got %+v, ok=%v", energy, ok)
	}
}

func TestApplyDropoffCappedByEnergyMax(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Carry.InsertOrUpdate(bot, component.CarryComponent{Carry: 50, CarryMax: 50})

	structure := w.CreateEntity()
	w.Positions.InsertOrUpdate(structure, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 1, R: 0}})
	w.Structures.InsertOrUpdate(structure, ecs.Unit{})
	w.Energy.InsertOrUpdate(structure, component.EnergyComponent{Energy: 95, EnergyMax: 100})

	w.Intents.Dropoff = append(w.Intents.Dropoff, intent.DropoffIntent{
		Bot: bot, Structure: structure, Amount: 50, Kind: component.ResourceEnergy,
	})
	ApplyDropoff(w)

	carry, _ := w.Carry.Get(bot)
	if carry.Carry != 45 {
		t.Fatalf("carry = %d, want 45 (50 - 5 accepted)", carry.Carry)
	}
	energy, _ := w.Energy.Get(structure)
	if energy.Energy != 100 {
		t.Fatalf("structure energy = %d, want 100 (full)", energy.Energy)
	}
}

func TestApplyDropoffIgnoresNonStructureTarget(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Carry.InsertOrUpdate(bot, component.CarryComponent{Carry: 20, CarryMax: 50})

	other := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 1, R: 0}})
	w.Energy.InsertOrUpdate(other, component.EnergyComponent{Energy: 0, EnergyMax: 50})

	w.Intents.Dropoff = append(w.Intents.Dropoff, intent.DropoffIntent{
		Bot: bot, Structure: other, Amount: 20, Kind: component.ResourceEnergy,
	})
	ApplyDropoff(w)

	carry, _ := w.Carry.Get(bot)
	if carry.Carry != 20 {
		t.Fatalf("expected dropoff onto a non-structure to be rejected, carry = %d", carry.Carry)
	}
}

func TestApplyDropoffNoOpWithoutEnergyComponent(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Carry.InsertOrUpdate(bot, component.CarryComponent{Carry: 20, CarryMax: 50})

	structure := w.CreateEntity()
	w.Positions.InsertOrUpdate(structure, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 1, R: 0}})
	w.Structures.InsertOrUpdate(structure, ecs.Unit{})

	w.Intents.Dropoff = append(w.Intents.Dropoff, intent.DropoffIntent{
		Bot: bot, Structure: structure, Amount: 20, Kind: component.ResourceEnergy,
	})
	ApplyDropoff(w)

	carry, _ := w.Carry.Get(bot)
	if carry.Carry != 20 {
		t.Fatalf("expected a structure without an EnergyComponent to reject the dropoff, carry = %d", carry.Carry)
	}
}
