package component

import "github.com/caolo-sim/engine/internal/geometry"

// PathCacheMaxSteps is the maximum number of pre-computed steps retained
// per bot (spec §4.3).
const PathCacheMaxSteps = 64

// PathCacheComponent holds a bot's last pathfinding target and the
// remaining steps toward it, target-first.
type PathCacheComponent struct {
	Target WorldPosition
	Steps  []geometry.Axial
}

// Pop removes and returns the next step, or ok=false if the cache is
// empty. Steps are stored target-first, so the next step to walk — the
// tile adjacent to the bot's current position — is the last element.
func (c *PathCacheComponent) Pop() (geometry.Axial, bool) {
	n := len(c.Steps)
	if n == 0 {
		var zero geometry.Axial
		return zero, false
	}
	step := c.Steps[n-1]
	c.Steps = c.Steps[:n-1]
	return step, true
}

// Peek returns the next step without consuming it.
func (c *PathCacheComponent) Peek() (geometry.Axial, bool) {
	n := len(c.Steps)
	if n == 0 {
		var zero geometry.Axial
		return zero, false
	}
	return c.Steps[n-1], true
}

// Fill replaces the cache with a fresh target and step list, truncated to
// the PathCacheMaxSteps steps nearest the bot (the tail of the
// target-first list).
func (c *PathCacheComponent) Fill(target WorldPosition, steps []geometry.Axial) {
	c.Target = target
	if len(steps) > PathCacheMaxSteps {
		steps = steps[len(steps)-PathCacheMaxSteps:]
	}
	c.Steps = steps
}
