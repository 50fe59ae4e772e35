package entity

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/levels"
	"github.com/solarlune/ldtkgo"
)

// Field identifiers on the editor's Spawner entity.
const (
	PatrolField    = "Patrol"
	EnemyTypeField = "Enemy_Type"
)

// DefaultSpawnPeriod is used when no period is configured.
const DefaultSpawnPeriod = 2 * time.Second

// DecodeSpawner builds a Spawner from an editor instance. The patrol starts
// at the spawner's own position followed by the centre of every non-null
// Patrol point, all converted to world space with the entity's size and
// pivot. Failures are *levels.FieldError values.
func DecodeSpawner(inst *ldtkgo.Entity, layer *ldtkgo.Layer, period time.Duration) (component.Spawner, error) {
	if period <= 0 {
		period = DefaultSpawnPeriod
	}

	patrol := []cp.Vector{levels.EntityWorldPos(inst, layer)}

	points, err := levels.Points(inst, PatrolField)
	if err != nil {
		return component.Spawner{}, err
	}
	for _, p := range points {
		if p == nil {
			continue
		}
		px := levels.GridCenterToPixel(*p, layer.GridSize)
		patrol = append(patrol, levels.PixelToWorld(px, levels.LayerPxHeight(layer), levels.EntitySize(inst), levels.EntityPivot(inst)))
	}

	label, err := levels.Enum(inst, EnemyTypeField)
	if err != nil {
		return component.Spawner{}, err
	}
	kind, ok := component.ParseEnemyKind(label)
	if !ok {
		return component.Spawner{}, levels.NewFieldError(inst, EnemyTypeField, levels.ErrUnknownEnum, label)
	}

	return component.Spawner{
		Patrol: patrol,
		Kind:   kind,
		Timer:  component.NewRepeatingTimer(period),
	}, nil
}
