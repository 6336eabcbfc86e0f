package ecs

import "sort"

// SceneStats is a point-in-time summary of a scene, used by the debug overlay and the stress tool.
type SceneStats struct {
	LiveEntities   int
	ActiveEntities int
	BehaviorCount  int
	FreeSlots      int
	Behaviors      []BehaviorStats
}

// BehaviorStats counts attached behaviors of one type.
type BehaviorStats struct {
	Name  string
	Count int
}

// CollectStats walks the live entity set. Behavior breakdown is sorted by descending count.
func (s *Scene) CollectStats() SceneStats {
	stats := SceneStats{
		LiveEntities: len(s.live),
		FreeSlots:    len(s.arena.freeSlots),
	}

	counts := make([]int, s.registry.Len())
	for e := range s.Entities() {
		if e.Active {
			stats.ActiveEntities++
		}
		stats.BehaviorCount += len(e.slots)
		for i := range e.slots {
			counts[e.slots[i].typ]++
		}
	}

	for id, n := range counts {
		if n == 0 {
			continue
		}
		stats.Behaviors = append(stats.Behaviors, BehaviorStats{
			Name:  s.registry.Name(TypeId(id)),
			Count: n,
		})
	}
	sort.Slice(stats.Behaviors, func(i, j int) bool {
		if stats.Behaviors[i].Count != stats.Behaviors[j].Count {
			return stats.Behaviors[i].Count > stats.Behaviors[j].Count
		}
		return stats.Behaviors[i].Name < stats.Behaviors[j].Name
	})
	return stats
}
