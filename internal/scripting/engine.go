// Package scripting wraps gopher-lua as the external script VM spec §9
// calls for: a function-registration API, `register(name, fn)`, and a
// `VmAux` context owning the world, the calling entity, and the intent
// accumulator a script's side effects are written to. Host functions are
// grounded on the original engine's simulation/src/api/{bots,resources,
// spawns}.rs: every exported function there pulls its entity/world out of
// a VM-owned aux struct, precondition-checks, and pushes an intent plus
// an OperationResult — the same shape this file follows with gopher-lua
// in place of cao-lang.
package scripting

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/intent"
	"github.com/caolo-sim/engine/internal/pathfinding"
	"github.com/caolo-sim/engine/internal/world"
)

// VmAux is the per-run context every host function operates through
// (spec §9: "a VmAux context that owns a &World, an EntityId, and a
// &mut BotIntents"). World reads are safe across concurrently-running
// VmAux instances because the parallel script phase never mutates the
// tables it touches (spec §5) — the mutation itself happens later,
// serially, when the intent systems consume BotIntents.
type VmAux struct {
	World        *world.World
	Entity       ecs.EntityId
	Tick         int64
	MaxPathSteps int32
	Intents      world.BotIntents
}

func (aux *VmAux) logLine(text string) {
	aux.Intents.Log = append(aux.Intents.Log, intent.LogIntent{
		Entity: aux.Entity,
		Text:   text,
		Time:   aux.Tick,
	})
}

// hostFunc is the shape register() accepts. It receives the aux for the
// call in progress and the Lua state to read arguments from / push
// results onto, and returns the number of Lua return values pushed —
// mirroring gopher-lua's own lua.LGFunction, just closed over aux instead
// of reaching it through the registry.
type hostFunc func(aux *VmAux, L *lua.LState) int

// Engine compiles nothing up front: each Run call gets a fresh
// *lua.LState so one script's global pollution or a runaway loop can
// never bleed into the next (the teacher's single long-lived *lua.LState
// doesn't fit here — spec §5 runs many independent scripts per tick,
// and §7's "script over budget" edge case requires a clean abort).
type Engine struct {
	log       *zap.Logger
	hostFuncs map[string]hostFunc
	execLimit int64
}

// NewEngine builds an Engine with the built-in bot API registered
// (move_to, mine, dropoff, melee, spawn, log, and the read-only getters).
// execLimit is the `execution_limit` from GameConfig (spec §6.3, §5).
func NewEngine(execLimit int64, log *zap.Logger) *Engine {
	e := &Engine{
		log:       log,
		hostFuncs: make(map[string]hostFunc),
		execLimit: execLimit,
	}
	e.registerBuiltins()
	return e
}

// Register adds or replaces a host function under name (spec §9's
// `register(name, fn)`).
func (e *Engine) Register(name string, fn hostFunc) {
	e.hostFuncs[name] = fn
}

// Run executes source against aux, accumulating intents into
// aux.Intents. A compile error, a runtime error, or an execution_limit
// timeout all return a non-nil error; the caller (internal/executor)
// drops aux.Intents wholesale on error, matching spec §5's "Cancellation"
// clause ("the VM returns an error; its partial intent list is
// dropped").
func (e *Engine) Run(source string, aux *VmAux) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), budgetDuration(e.execLimit))
	defer cancel()
	L.SetContext(ctx)

	for name, fn := range e.hostFuncs {
		bound := fn
		L.SetGlobal(name, L.NewFunction(func(ls *lua.LState) int {
			return bound(aux, ls)
		}))
	}

	if err := L.DoString(source); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

// budgetDuration turns the instruction-count execution_limit into a
// wall-clock ceiling gopher-lua's context hook can enforce. gopher-lua
// has no native per-instruction counter exposed to callers, so this
// trades exactness for the property spec §9 actually asks for — a
// termination guarantee on a script that loops forever.
func budgetDuration(limit int64) time.Duration {
	if limit <= 0 {
		limit = 128
	}
	return time.Duration(limit) * 200 * time.Microsecond
}

func (e *Engine) registerBuiltins() {
	e.Register("log", hostLog)
	e.Register("tick", hostTick)
	e.Register("position", hostPosition)
	e.Register("hp", hostHp)
	e.Register("energy", hostEnergy)
	e.Register("carry", hostCarry)
	e.Register("move_to", hostMoveTo)
	e.Register("mine", hostMine)
	e.Register("find_resource", hostFindResource)
	e.Register("dropoff", hostDropoff)
	e.Register("melee", hostMelee)
	e.Register("spawn", hostSpawn)
}

// pushResult pushes an intent.OperationResult as a Lua integer — scripts
// branch on its numeric value the same way the original's cao-lang
// scripts branched on caolo_api::OperationResult (spec §4.4).
func pushResult(L *lua.LState, r intent.OperationResult) int {
	L.Push(lua.LNumber(int(r)))
	return 1
}

// --- Log bridge ---

func hostLog(aux *VmAux, L *lua.LState) int {
	text := L.CheckString(1)
	aux.logLine(text)
	return 0
}

// --- World-query bridge ---

func hostTick(aux *VmAux, L *lua.LState) int {
	L.Push(lua.LNumber(aux.Tick))
	return 1
}

func hostPosition(aux *VmAux, L *lua.LState) int {
	pos, ok := aux.World.Positions.Get(aux.Entity)
	if !ok {
		return 0
	}
	L.Push(lua.LNumber(pos.Room.Q))
	L.Push(lua.LNumber(pos.Room.R))
	L.Push(lua.LNumber(pos.Pos.Q))
	L.Push(lua.LNumber(pos.Pos.R))
	return 4
}

func hostHp(aux *VmAux, L *lua.LState) int {
	hp, ok := aux.World.Hp.Get(aux.Entity)
	if !ok {
		return 0
	}
	L.Push(lua.LNumber(hp.Hp))
	L.Push(lua.LNumber(hp.HpMax))
	return 2
}

func hostEnergy(aux *VmAux, L *lua.LState) int {
	en, ok := aux.World.Energy.Get(aux.Entity)
	if !ok {
		return 0
	}
	L.Push(lua.LNumber(en.Energy))
	L.Push(lua.LNumber(en.EnergyMax))
	return 2
}

func hostCarry(aux *VmAux, L *lua.LState) int {
	c, ok := aux.World.Carry.Get(aux.Entity)
	if !ok {
		return 0
	}
	L.Push(lua.LNumber(c.Carry))
	L.Push(lua.LNumber(c.CarryMax))
	return 2
}

// --- Movement bridge ---
//
// Grounded on simulation/src/api/bots.rs's move_bot: the script supplies
// a destination, the host runs pathfinding (here: the path cache plus
// Navigate, spec §4.3) and emits the single next-step MoveIntent plus
// whatever cache bookkeeping intent applies.

func hostMoveTo(aux *VmAux, L *lua.LState) int {
	from, ok := aux.World.Positions.Get(aux.Entity)
	if !ok {
		return pushResult(L, intent.InvalidInput)
	}
	target := component.WorldPosition{
		Room: geometry.Axial{Q: int32(L.CheckNumber(1)), R: int32(L.CheckNumber(2))},
		Pos:  geometry.Axial{Q: int32(L.CheckNumber(3)), R: int32(L.CheckNumber(4))},
	}

	cache, _ := aux.World.PathCache.Get(aux.Entity)

	res, err := pathfinding.Navigate(aux.World, from, target, cache, aux.MaxPathSteps)
	if err != nil {
		switch {
		case errors.Is(err, pathfinding.ErrUnreachable):
			return pushResult(L, intent.InvalidTarget)
		case errors.Is(err, pathfinding.ErrTimeout):
			return pushResult(L, intent.OperationFailed)
		default:
			return pushResult(L, intent.OperationFailed)
		}
	}

	if res.AtTarget {
		aux.Intents.MutPathCache = append(aux.Intents.MutPathCache, intent.MutPathCacheIntent{
			Bot: aux.Entity, Action: intent.PathCacheDel,
		})
		return pushResult(L, intent.Ok)
	}

	aux.Intents.Move = append(aux.Intents.Move, intent.MoveIntent{
		Bot:    aux.Entity,
		Target: component.WorldPosition{Room: from.Room, Pos: res.Step},
	})
	aux.Intents.MutPathCache = append(aux.Intents.MutPathCache, intent.MutPathCacheIntent{
		Bot: aux.Entity, Action: intent.PathCachePop,
	})
	if res.RefillCache {
		aux.Intents.CachePath = append(aux.Intents.CachePath, intent.CachePathIntent{
			Bot: aux.Entity, Cache: res.NewCache,
		})
	}
	return pushResult(L, intent.Ok)
}

// --- Resource bridge ---
//
// Grounded on simulation/src/api/resources.rs; the original's
// find_closest_resource_by_range is left unimplemented there too (its
// body is commented out), so find_resource below is new — the original
// source supplies no alternate behaviour to follow for it.

func hostMine(aux *VmAux, L *lua.LState) int {
	resource := ecs.EntityId(L.CheckInt64(1))

	res, ok := aux.World.Resources.Get(resource)
	if !ok {
		return pushResult(L, intent.InvalidTarget)
	}
	if res.Kind != component.ResourceEnergy || res.Energy <= 0 {
		return pushResult(L, intent.Empty)
	}

	if !adjacentTo(aux, resource) {
		return pushResult(L, intent.NotInRange)
	}

	aux.Intents.Mine = append(aux.Intents.Mine, intent.MineIntent{Bot: aux.Entity, Resource: resource})
	return pushResult(L, intent.Ok)
}

// find_resource scans the bot's room for the nearest resource with
// energy remaining within radius, returning its entity id or nothing if
// none is found.
func hostFindResource(aux *VmAux, L *lua.LState) int {
	radius := int32(L.CheckNumber(1))
	from, ok := aux.World.Positions.Get(aux.Entity)
	if !ok {
		return 0
	}

	var best ecs.EntityId
	bestDist := radius + 1
	aux.World.Resources.Iter(func(id ecs.EntityId, res component.ResourceComponent) bool {
		if res.Energy <= 0 {
			return true
		}
		pos, ok := aux.World.Positions.Get(id)
		if !ok || pos.Room != from.Room {
			return true
		}
		if d := geometry.Distance(from.Pos, pos.Pos); d <= radius && d < bestDist {
			best, bestDist = id, d
		}
		return true
	})
	if best.IsZero() {
		return 0
	}
	L.Push(lua.LNumber(best))
	return 1
}

// --- Structure bridge ---

func hostDropoff(aux *VmAux, L *lua.LState) int {
	structure := ecs.EntityId(L.CheckInt64(1))
	amount := int32(L.CheckNumber(2))

	carry, ok := aux.World.Carry.Get(aux.Entity)
	if !ok || carry.Carry <= 0 {
		return pushResult(L, intent.Empty)
	}
	if !adjacentTo(aux, structure) {
		return pushResult(L, intent.NotInRange)
	}
	if store, ok := aux.World.Energy.Get(structure); ok && store.Energy >= store.EnergyMax {
		return pushResult(L, intent.Full)
	}

	aux.Intents.Dropoff = append(aux.Intents.Dropoff, intent.DropoffIntent{
		Bot: aux.Entity, Structure: structure, Amount: amount, Kind: component.ResourceEnergy,
	})
	return pushResult(L, intent.Ok)
}

// --- Combat bridge ---

func hostMelee(aux *VmAux, L *lua.LState) int {
	defender := ecs.EntityId(L.CheckInt64(1))

	if _, ok := aux.World.MeleeAttack.Get(aux.Entity); !ok {
		return pushResult(L, intent.OperationFailed)
	}
	if _, ok := aux.World.Hp.Get(defender); !ok {
		return pushResult(L, intent.InvalidTarget)
	}
	if !adjacentTo(aux, defender) {
		return pushResult(L, intent.NotInRange)
	}

	aux.Intents.Melee = append(aux.Intents.Melee, intent.MeleeIntent{Attacker: aux.Entity, Defender: defender})
	return pushResult(L, intent.Ok)
}

// --- Spawn bridge ---
//
// Grounded on engine/src/api/structures.rs's spawn intent shape (the
// original's own `spawn` host function body is `unimplemented!()`): the
// caller is the spawn structure itself, acting on its own
// SpawnQueueComponent.

func hostSpawn(aux *VmAux, L *lua.LState) int {
	if _, ok := aux.World.SpawnQueues.Get(aux.Entity); !ok {
		return pushResult(L, intent.OperationFailed)
	}

	owner, hasOwner := aux.World.Owners.Get(aux.Entity)
	si := intent.SpawnIntent{SpawnId: aux.Entity, HasOwner: hasOwner}
	if hasOwner {
		si.Owner = owner.OwnerId
	}
	aux.Intents.Spawn = append(aux.Intents.Spawn, si)
	return pushResult(L, intent.Ok)
}

// --- shared helpers ---

// adjacentTo reports whether other shares a room with the calling
// entity and sits on one of its six neighbouring tiles (the "adjacent"
// precondition common to Mine, Dropoff, and Melee, spec §4.4).
func adjacentTo(aux *VmAux, other ecs.EntityId) bool {
	self, ok := aux.World.Positions.Get(aux.Entity)
	if !ok {
		return false
	}
	pos, ok := aux.World.Positions.Get(other)
	if !ok || pos.Room != self.Room {
		return false
	}
	return geometry.IsNeighbour(self.Pos, pos.Pos)
}
