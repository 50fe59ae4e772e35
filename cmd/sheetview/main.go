// Command sheetview previews an enemy prefab's animation the way the game
// plays it.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/towerdefence/assets"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/ecs/entity"
	"github.com/milk9111/towerdefence/ecs/system"
	"go.uber.org/zap"
)

const viewSize = 512

type viewer struct {
	world  *ecs.World
	anim   *system.AnimationSystem
	render *system.RenderSystem
	target ecs.Entity
}

// newViewer puts a single animated sprite for assets at the world origin.
func newViewer(a entity.EnemyAssets, scale float64) (*viewer, error) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: scale, ScaleY: scale}); err != nil {
		return nil, fmt.Errorf("sheetview: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   a.Sheet,
		OriginX: a.OriginX,
		OriginY: a.OriginY,
	}); err != nil {
		return nil, fmt.Errorf("sheetview: add sprite: %w", err)
	}
	anim := &component.Animation{Sheet: a.Sheet, Defs: a.Defs}
	if !anim.Play(a.MoveTag) {
		return nil, fmt.Errorf("sheetview: animation %q not defined", a.MoveTag)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		return nil, fmt.Errorf("sheetview: add animation: %w", err)
	}
	return &viewer{
		world:  w,
		anim:   system.NewAnimationSystem(),
		render: system.NewRenderSystem(),
		target: e,
	}, nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if anim, ok := ecs.Get(v.world, v.target, component.AnimationComponent.Kind()); ok {
			anim.Playing = !anim.Playing
		}
	}
	v.world.Advance(time.Second / time.Duration(ebiten.TPS()))
	v.anim.Update(v.world)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	v.render.Draw(v.world, screen)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	kindName := flag.String("kind", "Slow", "enemy kind to preview (Slow or Fast)")
	scale := flag.Float64("scale", 4, "sprite scale")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kind, ok := component.ParseEnemyKind(*kindName)
	if !ok {
		log.Fatal("unknown enemy kind", zap.String("kind", *kindName))
	}
	all, err := entity.LoadEnemyAssets(assets.LoadImage, log)
	if err != nil {
		log.Fatal("load enemy assets", zap.Error(err))
	}
	v, err := newViewer(all[kind], *scale)
	if err != nil {
		log.Fatal("build viewer", zap.Error(err))
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle(fmt.Sprintf("%s enemy", kind))
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}
