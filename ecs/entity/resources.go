package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/prefabs"
	"go.uber.org/zap"
)

// DefaultEnemyRenderLayer puts enemies in front of the level's layers.
const DefaultEnemyRenderLayer = 5

// EnemyAssets is everything needed to put one enemy kind on screen.
type EnemyAssets struct {
	Sheet       *ebiten.Image
	SheetPath   string
	Defs        map[string]component.AnimationDef
	MoveTag     string
	Speed       float64
	RenderLayer int
	OriginX     float64
	OriginY     float64
}

// LevelResources is created by LoadLevelToWorld and stays read-only while the
// level is loaded. Systems receive it explicitly.
type LevelResources struct {
	WorldRoot       ecs.Entity
	Level           ecs.Entity
	LevelIdentifier string
	Enemies         map[component.EnemyKind]EnemyAssets
}

// Enemy returns the assets for kind.
func (r *LevelResources) Enemy(kind component.EnemyKind) (EnemyAssets, bool) {
	if r == nil {
		return EnemyAssets{}, false
	}
	a, ok := r.Enemies[kind]
	return a, ok
}

// ImageLoader resolves an asset path to an image. Nil loaders skip images.
type ImageLoader func(path string) (*ebiten.Image, error)

// EnemyAssetsFromSpec converts a prefab spec. The sheet is left nil; see
// LoadEnemyAssets.
func EnemyAssetsFromSpec(spec *prefabs.EnemySpec) EnemyAssets {
	defs := make(map[string]component.AnimationDef, len(spec.Animation.Defs))
	for name, d := range spec.Animation.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        d.Row,
			ColStart:   d.ColStart,
			FrameCount: d.FrameCount,
			FrameW:     d.FrameW,
			FrameH:     d.FrameH,
			FPS:        d.FPS,
			Loop:       d.Loop,
		}
	}
	layer := spec.RenderLayer.Index
	if layer == 0 {
		layer = DefaultEnemyRenderLayer
	}
	return EnemyAssets{
		SheetPath:   spec.Animation.Sheet,
		Defs:        defs,
		MoveTag:     spec.Animation.Current,
		Speed:       spec.MoveSpeed,
		RenderLayer: layer,
		OriginX:     spec.Sprite.OriginX,
		OriginY:     spec.Sprite.OriginY,
	}
}

// LoadEnemyAssets loads the prefab of every enemy kind. A broken prefab is an
// error; a sheet that fails to load is logged and left nil so the enemy
// still spawns, just invisible.
func LoadEnemyAssets(load ImageLoader, log *zap.Logger) (map[component.EnemyKind]EnemyAssets, error) {
	if log == nil {
		log = zap.NewNop()
	}
	out := make(map[component.EnemyKind]EnemyAssets, len(component.EnemyKinds()))
	for _, kind := range component.EnemyKinds() {
		spec, err := prefabs.LoadEnemySpec(kind.String())
		if err != nil {
			return nil, fmt.Errorf("enemy assets: %s: %w", kind, err)
		}
		a := EnemyAssetsFromSpec(spec)
		if load != nil {
			sheet, err := load(a.SheetPath)
			if err != nil {
				log.Warn("enemy sheet not loaded", zap.Stringer("kind", kind), zap.String("sheet", a.SheetPath), zap.Error(err))
			} else {
				a.Sheet = sheet
			}
		}
		out[kind] = a
	}
	return out, nil
}
