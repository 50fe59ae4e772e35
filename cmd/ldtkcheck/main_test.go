package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/towerdefence/levels"
	"go.uber.org/zap"
)

func TestCheckDefaultProject(t *testing.T) {
	project, err := levels.LoadProjectFS(levels.LevelsFS, levels.DefaultProject)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var out bytes.Buffer
	if err := check(&out, project, 2*time.Second, zap.NewNop()); err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"Level_0", "spawner Slow", "spawner Fast", "tower slots: 8"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCheckReportsDecodeErrors(t *testing.T) {
	project, err := levels.ParseProject([]byte(`{
		"levels":[{"identifier":"Broken","layerInstances":[{
			"__identifier":"Entities","__type":"Entities","__cHei":4,"__gridSize":16,"visible":true,
			"entityInstances":[{"__identifier":"Spawner","iid":"x","px":[8,8],"width":16,"height":16,"__pivot":[0.5,0.5],
				"fieldInstances":[{"__identifier":"Enemy_Type","__type":"LocalEnum.Enemy_Type","__value":"Slow"}]}]
		}]}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = check(&bytes.Buffer{}, project, time.Second, zap.NewNop())
	if !errors.Is(err, levels.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestCheckEmptyProject(t *testing.T) {
	if err := check(&bytes.Buffer{}, &levels.Project{}, time.Second, zap.NewNop()); err == nil {
		t.Fatalf("expected error for a project without levels")
	}
}
