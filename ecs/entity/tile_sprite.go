package entity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/levels"
	"github.com/solarlune/ldtkgo"
	"go.uber.org/zap"
)

// tileSprites resolves an entity's editor tile to a sprite, caching images
// per tileset for the duration of one load.
type tileSprites struct {
	project *levels.Project
	load    ImageLoader
	log     *zap.Logger
	images  map[int]*ebiten.Image
	failed  map[int]bool
}

func newTileSprites(project *levels.Project, load ImageLoader, log *zap.Logger) *tileSprites {
	return &tileSprites{
		project: project,
		load:    load,
		log:     log,
		images:  make(map[int]*ebiten.Image),
		failed:  make(map[int]bool),
	}
}

func (t *tileSprites) lookup(inst *ldtkgo.Entity) (*component.Sprite, bool) {
	if t == nil || t.load == nil {
		return nil, false
	}
	uid, src, ok := levels.EntityTile(inst)
	if !ok {
		return nil, false
	}
	img, ok := t.image(uid)
	if !ok {
		return nil, false
	}
	return &component.Sprite{
		Image:     img,
		Source:    src,
		UseSource: true,
		OriginX:   float64(src.Dx()) / 2,
		OriginY:   float64(src.Dy()) / 2,
	}, true
}

func (t *tileSprites) image(uid int) (*ebiten.Image, bool) {
	if img, ok := t.images[uid]; ok {
		return img, true
	}
	if t.failed[uid] {
		return nil, false
	}
	def, ok := t.project.Tileset(uid)
	if !ok || def.Path == "" {
		t.failed[uid] = true
		t.log.Warn("tileset has no image", zap.Int("uid", uid))
		return nil, false
	}
	img, err := t.load(def.Path)
	if err != nil {
		t.failed[uid] = true
		t.log.Warn("tileset image not loaded", zap.Int("uid", uid), zap.String("path", def.Path), zap.Error(err))
		return nil, false
	}
	t.images[uid] = img
	return img, true
}
