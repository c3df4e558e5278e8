package pathfinding

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// NavResult is the outcome of Navigate: the step a bot should move into
// this tick, and whether its path cache needs refilling.
type NavResult struct {
	Step        geometry.Axial
	AtTarget    bool
	RefillCache bool
	NewCache    component.PathCacheComponent
}

// Navigate computes a bot's next step towards target, reusing its
// existing path cache when possible and re-running pathfinding when the
// cache is stale, exhausted, or its next step is no longer walkable
// (spec §4.3). The caller — the scripting host's movement function — is
// responsible for translating the result into intents: a MoveIntent for
// Step, a MutPathCacheIntent{Pop} to consume it, a CachePathIntent to
// install NewCache when RefillCache is set, and a MutPathCacheIntent{Del}
// when AtTarget.
func Navigate(w *world.World, from, target component.WorldPosition, cache component.PathCacheComponent, maxSteps int32) (NavResult, error) {
	if from == target {
		return NavResult{AtTarget: true}, nil
	}

	if cache.Target == target {
		if step, ok := cache.Peek(); ok && walkable(w, from.Room, step, target.Pos) {
			return NavResult{Step: step}, nil
		}
	}

	path, _, err := ToTarget(w, from, target, maxSteps)
	if err != nil {
		return NavResult{}, err
	}
	if len(path) == 0 {
		return NavResult{AtTarget: true}, nil
	}

	step := path[len(path)-1]
	var fresh component.PathCacheComponent
	fresh.Fill(target, path)
	return NavResult{Step: step, RefillCache: true, NewCache: fresh}, nil
}
