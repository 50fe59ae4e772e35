package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
)

// ErrNoEnemyAssets is returned when a kind has no prefab loaded.
var ErrNoEnemyAssets = errors.New("no assets for enemy kind")

// NewEnemy creates an enemy of kind at pos, parented under the level's world
// root, playing the kind's looping move animation and set to walk patrol.
// patrol[0] is taken to be the spawn point itself.
func NewEnemy(w *ecs.World, res *LevelResources, kind component.EnemyKind, pos cp.Vector, patrol []cp.Vector) (ecs.Entity, error) {
	if res == nil {
		return 0, fmt.Errorf("enemy: level resources are nil")
	}
	if !ecs.IsAlive(w, res.WorldRoot) {
		return 0, fmt.Errorf("enemy: world root %s: %w", res.WorldRoot, component.ErrEntityNotAlive)
	}
	assets, ok := res.Enemy(kind)
	if !ok {
		return 0, fmt.Errorf("enemy: %s: %w", kind, ErrNoEnemyAssets)
	}

	e := ecs.CreateEntity(w)
	fail := func(step string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("enemy: %s: %w", step, err)
	}

	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Kind: kind, SpawnedAt: w.Elapsed()}); err != nil {
		return fail("add enemy", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fail("add transform", err)
	}

	layer := DefaultEnemyRenderLayer
	if assets.RenderLayer != 0 {
		layer = assets.RenderLayer
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return fail("add render layer", err)
	}

	route := append([]cp.Vector(nil), patrol...)
	next := 1
	if len(route) == 0 {
		next = 0
	}
	if err := ecs.Add(w, e, component.PatrolFollowerComponent.Kind(), &component.PatrolFollower{
		Route: route,
		Next:  next,
		Speed: assets.Speed,
	}); err != nil {
		return fail("add patrol follower", err)
	}

	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:     assets.Sheet,
		UseSource: true,
		OriginX:   assets.OriginX,
		OriginY:   assets.OriginY,
	}); err != nil {
		return fail("add sprite", err)
	}
	anim := &component.Animation{
		Sheet: assets.Sheet,
		Defs:  assets.Defs,
	}
	anim.Play(assets.MoveTag)
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		return fail("add animation", err)
	}

	if err := ecs.SetParent(w, e, res.WorldRoot); err != nil {
		return fail("parent to world root", err)
	}
	return e, nil
}
