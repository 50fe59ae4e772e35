package entity

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"go.uber.org/zap/zaptest"
)

func TestNewEnemy(t *testing.T) {
	w := ecs.NewWorld()
	root := ecs.CreateEntity(w)
	res := &LevelResources{WorldRoot: root, Enemies: testEnemies()}
	patrol := []cp.Vector{{X: 10, Y: 20}, {X: 50, Y: 20}}

	e, err := NewEnemy(w, res, component.EnemySlow, patrol[0], patrol)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	if parent, ok := ecs.ParentOf(w, e); !ok || parent != root {
		t.Fatalf("enemy not parented under world root")
	}
	tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tf.X != 10 || tf.Y != 20 {
		t.Fatalf("unexpected transform %+v", tf)
	}
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok || anim.Current != "MOVE" || !anim.Playing || !anim.Defs["MOVE"].Loop {
		t.Fatalf("expected looping MOVE animation, got %+v", anim)
	}
	layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind())
	if !ok || layer.Index != DefaultEnemyRenderLayer {
		t.Fatalf("unexpected render layer %+v", layer)
	}
	follow, ok := ecs.Get(w, e, component.PatrolFollowerComponent.Kind())
	if !ok || follow.Next != 1 || follow.Speed != 40 || len(follow.Route) != 2 {
		t.Fatalf("unexpected patrol follower %+v", follow)
	}
	patrol[1] = cp.Vector{}
	if follow.Route[1] == patrol[1] {
		t.Fatalf("route must be copied")
	}
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || en.Kind != component.EnemySlow {
		t.Fatalf("unexpected enemy %+v", en)
	}
}

func TestNewEnemyDeadRoot(t *testing.T) {
	w := ecs.NewWorld()
	root := ecs.CreateEntity(w)
	ecs.DestroyEntity(w, root)
	if _, err := NewEnemy(w, &LevelResources{WorldRoot: root}, component.EnemyFast, cp.Vector{}, nil); err == nil {
		t.Fatalf("expected error for dead world root")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("expected no entities, got %d", n)
	}
}

func TestNewEnemyMissingAssets(t *testing.T) {
	w := ecs.NewWorld()
	root := ecs.CreateEntity(w)
	enemies := testEnemies()
	delete(enemies, component.EnemyFast)
	res := &LevelResources{WorldRoot: root, Enemies: enemies}

	_, err := NewEnemy(w, res, component.EnemyFast, cp.Vector{}, []cp.Vector{{}})
	if !errors.Is(err, ErrNoEnemyAssets) {
		t.Fatalf("expected ErrNoEnemyAssets, got %v", err)
	}
	if n := len(ecs.Entities(w)); n != 1 {
		t.Fatalf("expected only the world root, got %d entities", n)
	}
}

func TestLoadEnemyAssets(t *testing.T) {
	got, err := LoadEnemyAssets(nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, kind := range component.EnemyKinds() {
		a, ok := got[kind]
		if !ok {
			t.Fatalf("missing assets for %s", kind)
		}
		if a.MoveTag != "MOVE" || !a.Defs["MOVE"].Loop {
			t.Fatalf("%s: expected looping MOVE clip, got %+v", kind, a)
		}
		if a.RenderLayer != DefaultEnemyRenderLayer {
			t.Fatalf("%s: expected render layer %d, got %d", kind, DefaultEnemyRenderLayer, a.RenderLayer)
		}
		if a.Sheet != nil {
			t.Fatalf("%s: nil loader must not load a sheet", kind)
		}
	}
	if got[component.EnemyFast].Speed <= got[component.EnemySlow].Speed {
		t.Fatalf("fast enemies should outrun slow ones")
	}
}
