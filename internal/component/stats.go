package component

import "github.com/caolo-sim/engine/internal/ecs"

// HpComponent tracks hit points; Hp must never exceed HpMax (spec §3.3).
type HpComponent struct {
	Hp    int32
	HpMax int32
}

// EnergyComponent tracks energy; Energy must never exceed EnergyMax.
type EnergyComponent struct {
	Energy    int32
	EnergyMax int32
}

// EnergyRegenComponent is the amount added to EnergyComponent each
// automated-systems pass.
type EnergyRegenComponent struct {
	Amount int32
}

// CarryComponent tracks carried resources; Carry must never exceed
// CarryMax.
type CarryComponent struct {
	Carry    int32
	CarryMax int32
}

// MeleeAttackComponent is the melee strength subtracted from a defender's
// hp on a successful attack.
type MeleeAttackComponent struct {
	Strength int32
}

// DecayComponent periodically subtracts HpAmount from an entity's hp.
type DecayComponent struct {
	HpAmount      int32
	Interval      int32
	TimeRemaining int32
}

// SpawnComponent is a structure's current spawn cycle.
type SpawnComponent struct {
	TimeToSpawn int32
	Spawning    ecs.EntityId // zero = none
}

// SpawnQueueComponent is a FIFO of entity ids awaiting spawn, bounded at
// 20 entries (spec §4.4 "Spawn" conflict policy).
type SpawnQueueComponent struct {
	Queue []ecs.EntityId
}

const SpawnQueueCapacity = 20

// PushIfRoom appends id to the queue if it has not reached capacity;
// returns false when the queue is full and the intent must be dropped.
func (s *SpawnQueueComponent) PushIfRoom(id ecs.EntityId) bool {
	if len(s.Queue) >= SpawnQueueCapacity {
		return false
	}
	s.Queue = append(s.Queue, id)
	return true
}

// PopFront removes and returns the head of the queue.
func (s *SpawnQueueComponent) PopFront() (ecs.EntityId, bool) {
	if len(s.Queue) == 0 {
		return 0, false
	}
	id := s.Queue[0]
	s.Queue = s.Queue[1:]
	return id, true
}
