package world

import (
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/intent"
)

// IntentQueues holds one singleton queue per intent kind (spec §4.4:
// "stored per-type in singleton intent queues on the world"). Script
// workers append to these queues through BotIntents during the parallel
// phase; intent systems consume and clear them during the serial phase.
type IntentQueues struct {
	Move          []intent.MoveIntent
	Mine          []intent.MineIntent
	Dropoff       []intent.DropoffIntent
	Melee         []intent.MeleeIntent
	Spawn         []intent.SpawnIntent
	Log           []intent.LogIntent
	CachePath     []intent.CachePathIntent
	MutPathCache  []intent.MutPathCacheIntent
	ScriptHistory []intent.ScriptHistoryIntent
	DeleteEntity  []intent.DeleteEntityIntent
}

func newIntentQueues() IntentQueues {
	return IntentQueues{}
}

// Append merges a BotIntents record (one script's output) into the
// world's queues. Scripts never observe each other's intents within a
// tick (spec §5); this runs after all script workers finish.
func (q *IntentQueues) Append(b BotIntents) {
	q.Move = append(q.Move, b.Move...)
	q.Mine = append(q.Mine, b.Mine...)
	q.Dropoff = append(q.Dropoff, b.Dropoff...)
	q.Melee = append(q.Melee, b.Melee...)
	q.Spawn = append(q.Spawn, b.Spawn...)
	q.Log = append(q.Log, b.Log...)
	q.CachePath = append(q.CachePath, b.CachePath...)
	q.MutPathCache = append(q.MutPathCache, b.MutPathCache...)
	q.ScriptHistory = append(q.ScriptHistory, b.ScriptHistory...)
	q.DeleteEntity = append(q.DeleteEntity, b.DeleteEntity...)
}

// ClearMove etc. clear a single queue by replacing its backing slice, as
// spec §5 requires ("Intent queues are cleared at the start of each
// intent-application phase by replacing their backing vector").
func (q *IntentQueues) ClearMove()          { q.Move = nil }
func (q *IntentQueues) ClearMine()          { q.Mine = nil }
func (q *IntentQueues) ClearDropoff()       { q.Dropoff = nil }
func (q *IntentQueues) ClearMelee()         { q.Melee = nil }
func (q *IntentQueues) ClearSpawn()         { q.Spawn = nil }
func (q *IntentQueues) ClearLog()           { q.Log = nil }
func (q *IntentQueues) ClearCachePath()     { q.CachePath = nil }
func (q *IntentQueues) ClearMutPathCache()  { q.MutPathCache = nil }
func (q *IntentQueues) ClearScriptHistory() { q.ScriptHistory = nil }
func (q *IntentQueues) ClearDeleteEntity()  { q.DeleteEntity = nil }

// BotIntents is the per-script output record: the intents one
// (entity, script) worker produced this tick.
type BotIntents struct {
	Entity        ecs.EntityId
	Move          []intent.MoveIntent
	Mine          []intent.MineIntent
	Dropoff       []intent.DropoffIntent
	Melee         []intent.MeleeIntent
	Spawn         []intent.SpawnIntent
	Log           []intent.LogIntent
	CachePath     []intent.CachePathIntent
	MutPathCache  []intent.MutPathCacheIntent
	ScriptHistory []intent.ScriptHistoryIntent
	DeleteEntity  []intent.DeleteEntityIntent
	Errored       bool
}
