package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/intent"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyPathCache applies CachePathIntent (overwrite) and
// MutPathCacheIntent (pop one step / clear) in queue order.
func ApplyPathCache(w *world.World) {
	caches := w.Intents.CachePath
	w.Intents.ClearCachePath()
	for _, c := range caches {
		cache := c.Cache
		w.PathCache.InsertOrUpdate(c.Bot, cache)
	}

	muts := w.Intents.MutPathCache
	w.Intents.ClearMutPathCache()
	for _, m := range muts {
		cache, ok := w.PathCache.GetMut(m.Bot)
		if !ok {
			continue
		}
		switch m.Action {
		case intent.PathCachePop:
			cache.Pop()
		case intent.PathCacheDel:
			*cache = component.PathCacheComponent{}
		}
	}
}
