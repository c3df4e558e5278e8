package system

import (
	"sort"

	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyMelee resolves and applies all MeleeIntents. Per spec §4.4,
// intents are sorted by attacker and only the first per attacker survives
// (one swing per tick). Runs before ApplyMove so attacks resolve against
// pre-move positions.
func ApplyMelee(w *world.World) {
	attacks := w.Intents.Melee
	w.Intents.ClearMelee()
	if len(attacks) == 0 {
		return
	}

	sort.SliceStable(attacks, func(i, j int) bool { return attacks[i].Attacker < attacks[j].Attacker })

	log := w.Log()
	seen := map[ecs.EntityId]bool{}
	for _, atk := range attacks {
		if seen[atk.Attacker] {
			continue
		}
		seen[atk.Attacker] = true

		strength, ok := w.MeleeAttack.Get(atk.Attacker)
		if !ok {
			log.Warn("melee intent from entity without melee attack component", asField("attacker", atk.Attacker))
			continue
		}
		atkPos, ok := w.Positions.Get(atk.Attacker)
		if !ok {
			continue
		}
		defPos, ok := w.Positions.Get(atk.Defender)
		if !ok {
			log.Warn("melee intent against entity without position, skipping", asField("defender", atk.Defender))
			continue
		}
		if atkPos.Room != defPos.Room || geometry.Distance(atkPos.Pos, defPos.Pos) != 1 {
			continue
		}
		hp, ok := w.Hp.GetMut(atk.Defender)
		if !ok {
			log.Warn("melee intent against entity without hp, skipping", asField("defender", atk.Defender))
			continue
		}
		dmg := strength.Strength
		if dmg > hp.Hp {
			dmg = hp.Hp
		}
		hp.Hp -= dmg
	}
}
