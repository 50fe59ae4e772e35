package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
)

func TestWorldToScreen(t *testing.T) {
	cases := []struct {
		name         string
		p            cp.Vector
		wantX, wantY float64
	}{
		{name: "origin_is_centre", p: cp.Vector{}, wantX: 640, wantY: 384},
		{name: "bottom_left", p: cp.Vector{X: -640, Y: -384}, wantX: 0, wantY: 768},
		{name: "y_up", p: cp.Vector{X: 10, Y: 100}, wantX: 650, wantY: 284},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := WorldToScreen(tc.p, 1280, 768)
			if x != tc.wantX || y != tc.wantY {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tc.wantX, tc.wantY, x, y)
			}
		})
	}
}

func TestWorldPosition(t *testing.T) {
	w := ecs.NewWorld()
	root := ecs.CreateEntity(w)
	child := ecs.CreateEntity(w)
	leaf := ecs.CreateEntity(w)
	_ = ecs.Add(w, root, component.TransformComponent.Kind(), &component.Transform{X: -640, Y: -384})
	_ = ecs.Add(w, child, component.TransformComponent.Kind(), &component.Transform{X: 10})
	_ = ecs.Add(w, leaf, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 668})
	if err := ecs.SetParent(w, child, root); err != nil {
		t.Fatalf("set parent: %v", err)
	}
	if err := ecs.SetParent(w, leaf, child); err != nil {
		t.Fatalf("set parent: %v", err)
	}

	if got := WorldPosition(w, leaf); got != (cp.Vector{X: -530, Y: 284}) {
		t.Fatalf("unexpected world position %v", got)
	}
	if got := PositionIn(w, leaf, root); got != (cp.Vector{X: 110, Y: 668}) {
		t.Fatalf("unexpected root-space position %v", got)
	}
}

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	add := func(layer int, withLayer bool) ecs.Entity {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{})
		if withLayer {
			_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
		}
		return e
	}
	enemy := add(5, true)
	ground := add(0, false)
	slot := add(1, true)
	other := add(1, true)

	got := DrawOrder(w)
	want := []ecs.Entity{ground, slot, other, enemy}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
