// Package executor implements the tick pipeline orchestrator (spec §5):
// parallel script execution across a bounded worker pool, intent
// merging, the strict serial intent-system and automated-system passes,
// diagnostics collection, and target-tick-latency pacing. Fatal-error
// recovery replays the pre-tick snapshot (spec §7), using
// internal/persist the same way the teacher's internal/persist/db.go is
// used for its own crash-recovery reads — load before you mutate, so a
// bad tick never leaves the world half-applied.
package executor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/caolo-sim/engine/internal/archetype"
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/config"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/persist"
	"github.com/caolo-sim/engine/internal/scripting"
	"github.com/caolo-sim/engine/internal/system"
	"github.com/caolo-sim/engine/internal/world"
)

// WorkerPoolSize resolves the configured pool size, falling back to spec
// §5's default: "a fixed-size worker pool (default 3 or ¼ of CPU
// parallelism, whichever is larger)".
func WorkerPoolSize(configured int) int {
	if configured > 0 {
		return configured
	}
	if quarter := runtime.NumCPU() / 4; quarter > 3 {
		return quarter
	}
	return 3
}

// Executor drives one world through repeated Tick calls.
type Executor struct {
	world   *world.World
	engine  *scripting.Engine
	scripts *scripting.Store
	arch    archetype.Archetype
	cfg     config.ExecutionConfig
	log     *zap.Logger
}

// New builds an Executor. arch is the archetype newly-spawned bots
// receive (spec §4.5, SPEC_FULL.md §13).
func New(w *world.World, engine *scripting.Engine, scripts *scripting.Store, arch archetype.Archetype, cfg config.ExecutionConfig, log *zap.Logger) *Executor {
	return &Executor{world: w, engine: engine, scripts: scripts, arch: arch, cfg: cfg, log: log}
}

// Tick runs one full pass of the pipeline: scripts (parallel) -> intent
// merge -> intent systems (serial) -> automated systems (serial) ->
// post_process (spec §4.4's strict application order). On success it
// sleeps out the remainder of the target tick duration; on overshoot it
// returns immediately and records the overshoot in diagnostics (spec §5).
//
// A panic anywhere in the pipeline is recovered and the world rolled
// back to the snapshot captured at the start of the tick (spec §7's
// fatal-error policy): the tick that triggered it is lost, but the world
// remains consistent for the next one.
func (e *Executor) Tick(ctx context.Context) (err error) {
	pre := persist.Capture(e.world)
	defer func() {
		if r := recover(); r != nil {
			persist.Restore(e.world, pre)
			err = fmt.Errorf("tick %d panicked, world restored to pre-tick snapshot: %v", e.world.Tick(), r)
		}
	}()

	diag := e.world.Diagnostics.GetOrInit()
	if diag.PhaseDurationsNanos == nil {
		diag.PhaseDurationsNanos = make(map[string]int64)
	}

	start := time.Now()
	timePhase := func(name string, fn func()) {
		t0 := time.Now()
		fn()
		diag.PhaseDurationsNanos[name] += time.Since(t0).Nanoseconds()
	}

	timePhase("spawn_cont", func() { system.UpdateContSpawns(e.world) })

	var scriptsRan, scriptsErrored int64
	timePhase("scripts", func() {
		scriptsRan, scriptsErrored = e.runScripts(ctx)
	})

	timePhase("intent_systems", e.applyIntentSystems)
	timePhase("automated_systems", e.applyAutomatedSystems)

	e.world.FlushDestroyQueue()
	e.world.AdvanceTick()

	elapsed := time.Since(start)
	diag.TickCount++
	diag.LastTickDurationNanos = elapsed.Nanoseconds()
	diag.TargetTickDurationNanos = e.cfg.TargetTick.Nanoseconds()
	diag.NumberOfScriptsRan += scriptsRan
	diag.NumberOfScriptsErrored += scriptsErrored

	if remaining := e.cfg.TargetTick - elapsed; remaining > 0 {
		time.Sleep(remaining)
	} else {
		diag.OvershootCount++
		e.log.Warn("tick exceeded target duration",
			zap.Duration("target", e.cfg.TargetTick),
			zap.Duration("actual", elapsed))
	}
	return nil
}

// scriptJob is one (entity, script) pair the worker pool executes.
type scriptJob struct {
	entity   ecs.EntityId
	scriptID component.ScriptId
}

// runScripts distributes every scripted entity's (entity, script) pair
// across a bounded worker pool (spec §5). Each worker reads the world
// through a borrow it never mutates and returns a BotIntents record;
// scripts never observe each other's intents within the same tick, so
// results are only merged into the world's queues after every worker
// finishes.
func (e *Executor) runScripts(ctx context.Context) (ran, errored int64) {
	var jobs []scriptJob
	e.world.Scripts.Iter(func(id ecs.EntityId, es component.EntityScript) bool {
		jobs = append(jobs, scriptJob{entity: id, scriptID: es.ScriptId})
		return true
	})
	if len(jobs) == 0 {
		return 0, 0
	}

	results := make([]world.BotIntents, len(jobs))
	failed := make([]bool, len(jobs))
	tick := e.world.Tick()

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(WorkerPoolSize(e.cfg.WorkerPoolSize))

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			source, ok := e.scripts.Get(job.scriptID)
			if !ok {
				failed[i] = true
				return nil
			}

			aux := &scripting.VmAux{
				World:        e.world,
				Entity:       job.entity,
				Tick:         tick,
				MaxPathSteps: e.cfg.PathFindingLimit,
			}
			aux.Intents.Entity = job.entity

			if runErr := e.engine.Run(source, aux); runErr != nil {
				e.log.Debug("script execution failed",
					zap.Uint32("entity", uint32(job.entity)), zap.Error(runErr))
				failed[i] = true
				return nil
			}
			results[i] = aux.Intents
			return nil
		})
	}
	_ = g.Wait() // worker goroutines never return an error; failures are recorded per-job above

	for i := range jobs {
		if failed[i] {
			errored++
			continue
		}
		ran++
		e.world.Intents.Append(results[i])
	}
	return ran, errored
}

// applyIntentSystems runs step 2 of spec §4.4's strict application
// order: Melee -> Move -> Mine -> Dropoff -> SpawnIntent -> Log ->
// PathCache -> ScriptHistory.
func (e *Executor) applyIntentSystems() {
	system.ApplyMelee(e.world)
	system.ApplyMove(e.world)
	system.ApplyMine(e.world)
	system.ApplyDropoff(e.world)
	system.ApplySpawnIntent(e.world, ecs.NewInsertEntityView(e.world.Allocator()))
	system.ApplyLog(e.world)
	system.ApplyPathCache(e.world)
	system.ApplyScriptHistory(e.world)
}

// applyAutomatedSystems runs step 3 of spec §4.4's strict application
// order: Decay -> Death -> EnergyRegen -> SpawnTick -> MineralRespawn ->
// PositionsRebuild -> LogTrim.
func (e *Executor) applyAutomatedSystems() {
	system.Decay(e.world)
	system.Death(e.world)
	system.EnergyRegen(e.world)
	system.SpawnTick(e.world, e.arch)
	system.MineralRespawn(e.world)
	system.PositionsRebuild(e.world)
	system.LogTrim(e.world)
}
