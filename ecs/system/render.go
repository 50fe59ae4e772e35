package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
)

var (
	debugPatrolColor  = color.RGBA{R: 255, G: 200, A: 255}
	debugSpawnerColor = color.RGBA{R: 255, A: 255}
	debugSlotColor    = color.RGBA{G: 160, B: 255, A: 255}
)

// RenderSystem draws sprites in render-layer order. World space is Y-up with
// the origin at the centre of the screen.
type RenderSystem struct {
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// WorldToScreen maps a world position to screen pixels for a screen of
// width by height.
func WorldToScreen(p cp.Vector, width, height int) (float64, float64) {
	return p.X + float64(width)/2, float64(height)/2 - p.Y
}

// DrawOrder returns the drawable entities sorted by render layer, then by
// entity id.
func DrawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layerOf := func(e ecs.Entity) int {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return layer.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(entities[i]), layerOf(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	for _, e := range DrawOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FacingLeft {
			sx = -sx
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)

		x, y := WorldToScreen(WorldPosition(w, e), width, height)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
	}

	if r.Debug {
		r.drawDebug(w, screen, width, height)
	}
}

// drawDebug outlines spawners and tower slots and traces patrol routes.
func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, width, height int) {
	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
		if len(sp.Patrol) == 0 {
			return
		}
		pos := WorldPosition(w, e)
		offset := pos.Sub(sp.Patrol[0])
		for i := 1; i < len(sp.Patrol); i++ {
			x0, y0 := WorldToScreen(sp.Patrol[i-1].Add(offset), width, height)
			x1, y1 := WorldToScreen(sp.Patrol[i].Add(offset), width, height)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, debugPatrolColor, false)
		}
		x, y := WorldToScreen(pos, width, height)
		vector.StrokeRect(screen, float32(x-8), float32(y-8), 16, 16, 1, debugSpawnerColor, false)
	})

	ecs.ForEach(w, component.TowerSlotTagComponent.Kind(), func(e ecs.Entity, _ *component.TowerSlotTag) {
		x, y := WorldToScreen(WorldPosition(w, e), width, height)
		vector.StrokeRect(screen, float32(x-8), float32(y-8), 16, 16, 1, debugSlotColor, false)
	})
}
