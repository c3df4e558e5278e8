package system

import (
	"sort"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyMove resolves and applies all MoveIntents queued this tick. Per
// spec §4.4, intents are sorted by target position; for equal targets
// only the first survives, the rest are dropped silently ("bots lose the
// race") — the claim on a target is recorded before that first intent's
// own validation runs, so a first-sorted mover that fails validation
// still forecloses the target for everyone behind it, mirroring
// ApplyMelee's seen-before-validation attacker dedup. A bot has at most
// one move intent per tick by construction, so no per-bot dedup is
// needed here.
func ApplyMove(w *world.World) {
	moves := w.Intents.Move
	w.Intents.ClearMove()
	if len(moves) == 0 {
		return
	}

	sort.SliceStable(moves, func(i, j int) bool {
		a, b := moves[i].Target, moves[j].Target
		if a.Room != b.Room {
			if a.Room.Q != b.Room.Q {
				return a.Room.Q < b.Room.Q
			}
			return a.Room.R < b.Room.R
		}
		if a.Pos.Q != b.Pos.Q {
			return a.Pos.Q < b.Pos.Q
		}
		return a.Pos.R < b.Pos.R
	})

	log := w.Log()
	claimed := map[component.WorldPosition]bool{}
	for _, mv := range moves {
		if claimed[mv.Target] {
			continue
		}
		claimed[mv.Target] = true

		if !w.Bots.Contains(mv.Bot) {
			log.Warn("move intent for entity without Bot flag, skipping", asField("bot", mv.Bot))
			continue
		}
		if _, ok := w.Positions.Get(mv.Bot); !ok {
			log.Warn("move intent for entity without position, skipping", asField("bot", mv.Bot))
			continue
		}
		terrain, ok := w.Terrain.Get(mv.Target.Room, mv.Target.Pos)
		if !ok || !terrain.Walkable() {
			continue
		}
		if occupant, ok := w.EntityAt.Get(mv.Target.Room, mv.Target.Pos); ok && !occupant.IsZero() && occupant != mv.Bot {
			continue
		}
		w.Positions.InsertOrUpdate(mv.Bot, mv.Target)
	}
}
