package system

import (
	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/ecs"
)

// asField renders an EntityId as a zap field; every system logs warnings
// this way when it skips an intent at apply time (spec §7 "Intent
// application warning").
func asField(key string, id ecs.EntityId) zap.Field {
	return zap.Uint32(key, uint32(id))
}
