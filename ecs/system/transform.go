package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
)

// maxHierarchyDepth guards against parent cycles.
const maxHierarchyDepth = 64

// PositionIn returns e's position in the space of ancestor by summing the
// translations of e and every parent below ancestor. A zero ancestor walks
// to the top of the hierarchy, giving the world position.
func PositionIn(w *ecs.World, e, ancestor ecs.Entity) cp.Vector {
	var pos cp.Vector
	cur := e
	for i := 0; i < maxHierarchyDepth && ecs.IsAlive(w, cur) && cur != ancestor; i++ {
		if t, ok := ecs.Get(w, cur, component.TransformComponent.Kind()); ok {
			pos = pos.Add(cp.Vector{X: t.X, Y: t.Y})
		}
		parent, ok := ecs.ParentOf(w, cur)
		if !ok {
			break
		}
		cur = parent
	}
	return pos
}

// WorldPosition returns e's position with every ancestor's translation
// applied.
func WorldPosition(w *ecs.World, e ecs.Entity) cp.Vector {
	return PositionIn(w, e, 0)
}
