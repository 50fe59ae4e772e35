package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/levels"
	"github.com/solarlune/ldtkgo"
)

func TestDecodeSpawner(t *testing.T) {
	layer := &ldtkgo.Layer{Type: levels.LayerEntities, CellHeight: 48, GridSize: 16}

	cases := []struct {
		name       string
		raw        string
		wantKind   component.EnemyKind
		wantPatrol []cp.Vector
		wantErr    error
		wantField  string
	}{
		{
			name:       "own_position_only",
			raw:        spawnerJSON("a", 100, 100, `"Slow"`, `[]`),
			wantKind:   component.EnemySlow,
			wantPatrol: []cp.Vector{{X: 100, Y: 668}},
		},
		{
			name:     "points_in_order_nulls_skipped",
			raw:      spawnerJSON("b", 8, 200, `"Fast"`, `[{"cx":2,"cy":3},null,{"cx":0,"cy":0}]`),
			wantKind: component.EnemyFast,
			wantPatrol: []cp.Vector{
				{X: 8, Y: 568},
				{X: 40, Y: 712},
				{X: 8, Y: 760},
			},
		},
		{
			name:       "null_patrol",
			raw:        spawnerJSON("c", 8, 8, `"Slow"`, `null`),
			wantKind:   component.EnemySlow,
			wantPatrol: []cp.Vector{{X: 8, Y: 760}},
		},
		{
			name:      "unknown_enemy_type",
			raw:       spawnerJSON("d", 8, 8, `"Medium"`, `[]`),
			wantErr:   levels.ErrUnknownEnum,
			wantField: EnemyTypeField,
		},
		{
			name:      "null_enemy_type",
			raw:       spawnerJSON("e", 8, 8, `null`, `[]`),
			wantErr:   levels.ErrNullField,
			wantField: EnemyTypeField,
		},
		{
			name:      "missing_patrol",
			raw:       `{"__identifier":"Spawner","iid":"f","px":[8,8],"width":16,"height":16,"__pivot":[0.5,0.5],"fieldInstances":[{"__identifier":"Enemy_Type","__type":"LocalEnum.Enemy_Type","__value":"Slow"}]}`,
			wantErr:   levels.ErrMissingField,
			wantField: PatrolField,
		},
		{
			name:      "missing_enemy_type",
			raw:       `{"__identifier":"Spawner","iid":"g","px":[8,8],"width":16,"height":16,"__pivot":[0.5,0.5],"fieldInstances":[{"__identifier":"Patrol","__type":"Array<Point>","__value":[]}]}`,
			wantErr:   levels.ErrMissingField,
			wantField: EnemyTypeField,
		},
		{
			name:      "patrol_wrong_shape",
			raw:       spawnerJSON("h", 8, 8, `"Slow"`, `"north"`),
			wantErr:   levels.ErrFieldType,
			wantField: PatrolField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inst := entityInstance(t, tc.raw)
			got, err := DecodeSpawner(inst, layer, 2*time.Second)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				var fe *levels.FieldError
				if !errors.As(err, &fe) {
					t.Fatalf("expected *levels.FieldError, got %T", err)
				}
				if fe.Field != tc.wantField || fe.IID != inst.IID {
					t.Fatalf("unexpected field error %+v", fe)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Kind != tc.wantKind {
				t.Fatalf("expected kind %v, got %v", tc.wantKind, got.Kind)
			}
			if len(got.Patrol) != len(tc.wantPatrol) {
				t.Fatalf("expected %d patrol points, got %v", len(tc.wantPatrol), got.Patrol)
			}
			for i := range tc.wantPatrol {
				if got.Patrol[i] != tc.wantPatrol[i] {
					t.Fatalf("patrol[%d]: expected %v, got %v", i, tc.wantPatrol[i], got.Patrol[i])
				}
			}
			if got.Timer.Duration != 2*time.Second || got.Timer.Mode != component.TimerRepeating {
				t.Fatalf("unexpected timer %+v", got.Timer)
			}
		})
	}
}

func TestDecodeSpawnerDefaultPeriod(t *testing.T) {
	layer := &ldtkgo.Layer{CellHeight: 48, GridSize: 16}
	got, err := DecodeSpawner(entityInstance(t, spawnerJSON("a", 8, 8, `"Fast"`, `[]`)), layer, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Timer.Duration != DefaultSpawnPeriod {
		t.Fatalf("expected default period %v, got %v", DefaultSpawnPeriod, got.Timer.Duration)
	}
}
