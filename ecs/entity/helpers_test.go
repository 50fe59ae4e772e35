package entity

import (
	"fmt"
	"testing"

	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/levels"
	"github.com/solarlune/ldtkgo"
)

// spawnerJSON builds a 16x16 centre-pivot Spawner at pixel (x, y).
func spawnerJSON(iid string, x, y int, kind, patrol string) string {
	return fmt.Sprintf(`{
		"__identifier":"Spawner","iid":%q,"px":[%d,%d],"width":16,"height":16,"__pivot":[0.5,0.5],
		"fieldInstances":[
			{"__identifier":"Patrol","__type":"Array<Point>","__value":%s},
			{"__identifier":"Enemy_Type","__type":"LocalEnum.Enemy_Type","__value":%s}
		]}`, iid, x, y, patrol, kind)
}

// testProject wraps entity JSON in a single 1280x768 level with a 16px grid.
func testProject(t *testing.T, entities ...string) *levels.Project {
	t.Helper()
	list := "["
	for i, e := range entities {
		if i > 0 {
			list += ","
		}
		list += e
	}
	list += "]"
	raw := `{
		"jsonVersion":"1.5.3","bgColor":"#40465B",
		"defs":{"tilesets":[],"enums":[]},
		"levels":[{
			"identifier":"Level_0","iid":"lvl0","pxWid":1280,"pxHei":768,"__bgColor":"#102030",
			"layerInstances":[
				{"__identifier":"Entities","__type":"Entities","__cWid":80,"__cHei":48,"__gridSize":16,"visible":true,"entityInstances":` + list + `},
				{"__identifier":"Ground","__type":"IntGrid","__cWid":80,"__cHei":48,"__gridSize":16,"visible":true,"entityInstances":[]}
			]
		}]
	}`
	p, err := levels.ParseProject([]byte(raw))
	if err != nil {
		t.Fatalf("parse project: %v", err)
	}
	return p
}

func testEnemies() map[component.EnemyKind]EnemyAssets {
	return map[component.EnemyKind]EnemyAssets{
		component.EnemySlow: {
			Defs:        map[string]component.AnimationDef{"MOVE": {Name: "MOVE", FrameCount: 4, FrameW: 32, FrameH: 32, FPS: 6, Loop: true}},
			MoveTag:     "MOVE",
			Speed:       40,
			RenderLayer: 5,
			OriginX:     16,
			OriginY:     16,
		},
		component.EnemyFast: {
			Defs:        map[string]component.AnimationDef{"MOVE": {Name: "MOVE", FrameCount: 4, FrameW: 32, FrameH: 32, FPS: 12, Loop: true}},
			MoveTag:     "MOVE",
			Speed:       90,
			RenderLayer: 5,
		},
	}
}

// entityInstance decodes one entity through a throwaway project.
func entityInstance(t *testing.T, raw string) *ldtkgo.Entity {
	t.Helper()
	return testProject(t, raw).Levels[0].Layers[0].Entities[0]
}
