package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
)

// arriveDistance is how close counts as reaching a route point.
const arriveDistance = 0.01

// PatrolSystem walks PatrolFollowers along their routes. An entity that
// reaches the last point stays there.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta().Seconds()

	ecs.ForEach2(w, component.PatrolFollowerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.PatrolFollower, t *component.Transform) {
		if p.Done() || p.Speed <= 0 || dt <= 0 {
			return
		}
		pos := cp.Vector{X: t.X, Y: t.Y}
		budget := p.Speed * dt
		for budget > 0 && !p.Done() {
			target := p.Route[p.Next]
			dist := pos.Distance(target)
			if dist <= budget || dist < arriveDistance {
				pos = target
				budget -= dist
				p.Next++
				continue
			}
			pos = pos.Add(target.Sub(pos).Normalize().Mult(budget))
			budget = 0
		}

		if spr, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && pos.X != t.X {
			spr.FacingLeft = pos.X < t.X
		}
		t.X, t.Y = pos.X, pos.Y
	})
}
