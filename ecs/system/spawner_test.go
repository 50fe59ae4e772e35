package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/ecs/entity"
	"github.com/milk9111/towerdefence/levels"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const slowSpawnerProject = `{
	"jsonVersion":"1.5.3","defs":{"tilesets":[],"enums":[]},
	"levels":[{
		"identifier":"Level_0","iid":"lvl0","pxWid":1280,"pxHei":768,
		"layerInstances":[{
			"__identifier":"Entities","__type":"Entities","__cWid":80,"__cHei":48,"__gridSize":16,"visible":true,
			"entityInstances":[{
				"__identifier":"Spawner","iid":"s1","px":[100,100],"width":16,"height":16,"__pivot":[0.5,0.5],
				"fieldInstances":[
					{"__identifier":"Patrol","__type":"Array<Point>","__value":[{"cx":20,"cy":6}]},
					{"__identifier":"Enemy_Type","__type":"LocalEnum.Enemy_Type","__value":"Slow"}
				]
			}]
		}]
	}]
}`

func testEnemies() map[component.EnemyKind]entity.EnemyAssets {
	defs := map[string]component.AnimationDef{"MOVE": {Name: "MOVE", FrameCount: 4, FrameW: 32, FrameH: 32, FPS: 6, Loop: true}}
	return map[component.EnemyKind]entity.EnemyAssets{
		component.EnemySlow: {Defs: defs, MoveTag: "MOVE", Speed: 40, RenderLayer: 5},
		component.EnemyFast: {Defs: defs, MoveTag: "MOVE", Speed: 90, RenderLayer: 5},
	}
}

func loadSlowSpawner(t *testing.T) (*ecs.World, *entity.LevelResources, *SpawnerSystem) {
	t.Helper()
	project, err := levels.ParseProject([]byte(slowSpawnerProject))
	if err != nil {
		t.Fatalf("parse project: %v", err)
	}
	w := ecs.NewWorld()
	res, err := entity.LoadLevelToWorld(w, project, entity.LoadOptions{
		SpawnPeriod: 2 * time.Second,
		Enemies:     testEnemies(),
		Logger:      zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	sys, err := NewSpawnerSystem(res, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new spawner system: %v", err)
	}
	return w, res, sys
}

func step(w *ecs.World, sys ecs.System, dt time.Duration) {
	w.Advance(dt)
	sys.Update(w)
}

func TestSpawnerScenario(t *testing.T) {
	w, res, sys := loadSlowSpawner(t)

	step(w, sys, 2100*time.Millisecond)

	enemies := w.Query(component.EnemyComponent.Kind())
	if len(enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(enemies))
	}
	e := enemies[0]
	tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tf.X != 100 || tf.Y != 668 {
		t.Fatalf("expected enemy at (100,668), got (%v,%v)", tf.X, tf.Y)
	}
	if parent, ok := ecs.ParentOf(w, e); !ok || parent != res.WorldRoot {
		t.Fatalf("enemy not parented under the world root")
	}
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	if anim == nil || anim.Current != "MOVE" || !anim.Playing {
		t.Fatalf("expected MOVE animation, got %+v", anim)
	}
	layer, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())
	if layer == nil || layer.Index != 5 {
		t.Fatalf("expected render layer 5, got %+v", layer)
	}
	follow, _ := ecs.Get(w, e, component.PatrolFollowerComponent.Kind())
	if follow == nil || len(follow.Route) != 2 || follow.Route[1] != (cp.Vector{X: 328, Y: 664}) {
		t.Fatalf("unexpected route %+v", follow)
	}

	events := w.Events().Drain()
	if len(events) != 1 || events[0].Type != EventEnemySpawned {
		t.Fatalf("expected one spawn event, got %+v", events)
	}
	ev, ok := events[0].Data.(EnemySpawned)
	if !ok || ev.Enemy != e || ev.Kind != component.EnemySlow {
		t.Fatalf("unexpected event data %+v", events[0].Data)
	}
}

func TestSpawnerPeriod(t *testing.T) {
	cases := []struct {
		name  string
		steps []time.Duration
		want  int
	}{
		{name: "before_period", steps: []time.Duration{1999 * time.Millisecond}, want: 0},
		{name: "exact_single_step", steps: []time.Duration{2 * time.Second}, want: 1},
		{name: "exact_in_increments", steps: []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, time.Second}, want: 1},
		{name: "overshoot_carries", steps: []time.Duration{2500 * time.Millisecond, 1500 * time.Millisecond}, want: 2},
		{name: "two_periods", steps: []time.Duration{2 * time.Second, 2 * time.Second}, want: 2},
		{name: "one_per_frame", steps: []time.Duration{5 * time.Second}, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _, sys := loadSlowSpawner(t)
			for _, dt := range tc.steps {
				step(w, sys, dt)
			}
			if got := len(w.Query(component.EnemyComponent.Kind())); got != tc.want {
				t.Fatalf("expected %d enemies, got %d", tc.want, got)
			}
		})
	}
}

func TestSpawnerSixtyFPS(t *testing.T) {
	w, _, sys := loadSlowSpawner(t)
	frame := time.Second / 60
	for i := 0; i < 60*4+1; i++ {
		step(w, sys, frame)
	}
	if got := len(w.Query(component.EnemyComponent.Kind())); got != 2 {
		t.Fatalf("expected 2 enemies after ~4s, got %d", got)
	}
}

func TestSpawnerStopsAfterUnload(t *testing.T) {
	w, res, sys := loadSlowSpawner(t)
	step(w, sys, 2*time.Second)
	entity.UnloadLevel(w, res)
	step(w, sys, 2*time.Second)
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("expected an empty world, got %d entities", n)
	}
}

func TestSpawnerWarnsOnMissingAssets(t *testing.T) {
	w, res, _ := loadSlowSpawner(t)
	delete(res.Enemies, component.EnemySlow)
	core, logs := observer.New(zap.WarnLevel)
	sys, err := NewSpawnerSystem(res, zap.New(core))
	if err != nil {
		t.Fatalf("new spawner system: %v", err)
	}

	step(w, sys, 2*time.Second)
	if n := len(w.Query(component.EnemyComponent.Kind())); n != 0 {
		t.Fatalf("expected no enemies, got %d", n)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected no spawn events")
	}
	if got := logs.FilterMessage("spawn enemy").Len(); got != 1 {
		t.Fatalf("expected one warning, got %d", got)
	}
}

func TestNewSpawnerSystemRequiresResources(t *testing.T) {
	if _, err := NewSpawnerSystem(nil, nil); err == nil {
		t.Fatalf("expected error without level resources")
	}
}
