// Package system implements the ordered sequence of pure functions over
// world tables that apply intents and advance automated state each tick
// (spec §4.4, §4.5). Every system is single-threaded and deterministic;
// the strict application order in RunIntentSystems/RunAutomatedSystems is
// spec-mandated, unlike the teacher's priority-sorted Runner
// (internal/core/system in github.com/l1jgo/server) — so the pipeline
// here is a fixed call sequence rather than a sortable Phase field.
package system

import "github.com/caolo-sim/engine/internal/world"

// Func is one pipeline step: a pure function over the world's tables.
type Func func(w *world.World)

// Named pairs a system function with the name diagnostics records its
// duration under.
type Named struct {
	Name string
	Run  Func
}
