package system

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/ecs/entity"
	"go.uber.org/zap"
)

// EventEnemySpawned is pushed once per enemy created by the SpawnerSystem.
const EventEnemySpawned = "enemy_spawned"

// EnemySpawned is the Data of an EventEnemySpawned event.
type EnemySpawned struct {
	Enemy    ecs.Entity
	Spawner  ecs.Entity
	Kind     component.EnemyKind
	Position cp.Vector
}

// SpawnerSystem ticks every spawner's timer by the frame delta and creates
// one enemy under the world root whenever a timer fires.
type SpawnerSystem struct {
	res *entity.LevelResources
	log *zap.Logger
}

// NewSpawnerSystem needs the resources of a loaded level.
func NewSpawnerSystem(res *entity.LevelResources, log *zap.Logger) (*SpawnerSystem, error) {
	if res == nil {
		return nil, errors.New("spawner system: level resources are nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SpawnerSystem{res: res, log: log.Named("spawner")}, nil
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.Spawner, local *component.Transform) {
		sp.Timer.Tick(dt)
		if !sp.Timer.JustFinished() {
			return
		}
		if n := sp.Timer.TimesFinishedThisTick(); n > 1 {
			s.log.Debug("spawner fired more than once in a frame", zap.Stringer("spawner", e), zap.Int("times", n))
		}

		// Spawner transforms are relative to their layer; enemies hang off
		// the world root, so shift everything into root space.
		pos := PositionIn(w, e, s.res.WorldRoot)
		offset := pos.Sub(cp.Vector{X: local.X, Y: local.Y})
		patrol := make([]cp.Vector, len(sp.Patrol))
		for i, p := range sp.Patrol {
			patrol[i] = p.Add(offset)
		}

		enemy, err := entity.NewEnemy(w, s.res, sp.Kind, pos, patrol)
		if err != nil {
			s.log.Warn("spawn enemy", zap.Stringer("spawner", e), zap.Stringer("kind", sp.Kind), zap.Error(err))
			return
		}
		w.Events().Push(ecs.Event{Type: EventEnemySpawned, Data: EnemySpawned{
			Enemy:    enemy,
			Spawner:  e,
			Kind:     sp.Kind,
			Position: pos,
		}})
		s.log.Debug("enemy spawned",
			zap.Stringer("enemy", enemy),
			zap.Stringer("kind", sp.Kind),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y))
	})
}
