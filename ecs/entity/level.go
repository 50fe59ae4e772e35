package entity

import (
	"fmt"
	"image/color"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/levels"
	"github.com/solarlune/ldtkgo"
	"go.uber.org/zap"
)

// DefaultOrigin centres a 1280x768 level on the world origin.
var DefaultOrigin = cp.Vector{X: -640, Y: -384}

// LoadOptions controls LoadLevelToWorld. The zero value loads level 0 with
// the default registry, origin and spawn period and no images.
type LoadOptions struct {
	Selection   levels.LevelSelection
	Origin      *cp.Vector
	SpawnPeriod time.Duration
	Registry    *Registry
	// Enemies overrides the prefab lookup; tests use it to avoid disk and GPU.
	Enemies   map[component.EnemyKind]EnemyAssets
	LoadImage ImageLoader
	Logger    *zap.Logger
}

func (o *LoadOptions) origin() cp.Vector {
	if o.Origin != nil {
		return *o.Origin
	}
	return DefaultOrigin
}

func (o *LoadOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o *LoadOptions) registry() *Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return DefaultRegistry()
}

// DecodedEntity is an editor entity that passed decoding.
type DecodedEntity struct {
	Instance *ldtkgo.Entity
	Apply    ApplyFunc
}

// DecodedLayer holds one editor layer and its decoded entities. Index 0 is
// the bottom-most layer.
type DecodedLayer struct {
	Instance *ldtkgo.Layer
	Index    int
	Entities []DecodedEntity
}

// DecodedLevel is the result of the decode phase of a level load.
type DecodedLevel struct {
	Level   *ldtkgo.Level
	Layers  []DecodedLayer
	Skipped map[string]int
}

// EntityCount returns the number of decoded entities.
func (d *DecodedLevel) EntityCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Entities)
	}
	return n
}

// DecodeLevel selects a level and decodes every entity on its Entities
// layers without touching a world. It stops at the first decode error.
func DecodeLevel(project *levels.Project, opts LoadOptions) (*DecodedLevel, error) {
	lvl, err := project.Select(opts.Selection)
	if err != nil {
		return nil, err
	}
	reg := opts.registry()
	log := opts.logger()

	out := &DecodedLevel{Level: lvl, Skipped: make(map[string]int)}
	n := len(lvl.Layers)
	for i, li := range lvl.Layers {
		if li == nil {
			continue
		}
		dl := DecodedLayer{Instance: li, Index: n - 1 - i}
		if li.Type == levels.LayerEntities {
			ctx := &DecodeContext{Project: project, Level: lvl, Layer: li, SpawnPeriod: opts.SpawnPeriod}
			for _, inst := range li.Entities {
				decode, ok := reg.Lookup(inst.Identifier)
				if !ok {
					out.Skipped[inst.Identifier]++
					log.Debug("skipping unregistered entity",
						zap.String("identifier", inst.Identifier),
						zap.String("iid", inst.IID),
						zap.String("layer", li.Identifier))
					continue
				}
				apply, err := decode(ctx, inst)
				if err != nil {
					return nil, fmt.Errorf("level %s: layer %s: %w", lvl.Identifier, li.Identifier, err)
				}
				dl.Entities = append(dl.Entities, DecodedEntity{Instance: inst, Apply: apply})
			}
		}
		out.Layers = append(out.Layers, dl)
	}
	return out, nil
}

// LoadLevelToWorld decodes the selected level and spawns it under a new world
// root. Nothing is added to w unless decoding succeeds; a failure while
// spawning destroys whatever was created.
func LoadLevelToWorld(w *ecs.World, project *levels.Project, opts LoadOptions) (*LevelResources, error) {
	if w == nil {
		return nil, fmt.Errorf("load level: world is nil")
	}
	decoded, err := DecodeLevel(project, opts)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	log := opts.logger()

	enemies := opts.Enemies
	if enemies == nil {
		enemies, err = LoadEnemyAssets(opts.LoadImage, log)
		if err != nil {
			return nil, fmt.Errorf("load level: %w", err)
		}
	}

	root := ecs.CreateEntity(w)
	res := &LevelResources{
		WorldRoot:       root,
		LevelIdentifier: decoded.Level.Identifier,
		Enemies:         enemies,
	}
	if err := spawnLevel(w, project, decoded, res, opts); err != nil {
		ecs.DestroyRecursive(w, root)
		return nil, fmt.Errorf("load level %s: %w", decoded.Level.Identifier, err)
	}

	log.Info("level loaded",
		zap.String("level", decoded.Level.Identifier),
		zap.Int("layers", len(decoded.Layers)),
		zap.Int("entities", decoded.EntityCount()),
		zap.Stringer("root", root))
	return res, nil
}

func spawnLevel(w *ecs.World, project *levels.Project, decoded *DecodedLevel, res *LevelResources, opts LoadOptions) error {
	origin := opts.origin()
	root := res.WorldRoot
	if err := ecs.Add(w, root, component.WorldRootTagComponent.Kind(), &component.WorldRootTag{}); err != nil {
		return fmt.Errorf("add world root tag: %w", err)
	}
	if err := ecs.Add(w, root, component.TransformComponent.Kind(), &component.Transform{X: origin.X, Y: origin.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("add world root transform: %w", err)
	}

	lvl := decoded.Level
	levelEnt := ecs.CreateEntity(w)
	res.Level = levelEnt
	if err := ecs.Add(w, levelEnt, component.LevelComponent.Kind(), &component.Level{
		Identifier: lvl.Identifier,
		IID:        lvl.IID,
		Width:      float64(lvl.Width),
		Height:     float64(lvl.Height),
		Background: levelBackground(project, lvl),
	}); err != nil {
		return fmt.Errorf("add level: %w", err)
	}
	if err := ecs.Add(w, levelEnt, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("add level transform: %w", err)
	}
	if err := ecs.SetParent(w, levelEnt, root); err != nil {
		return fmt.Errorf("parent level: %w", err)
	}

	sprites := newTileSprites(project, opts.LoadImage, opts.logger())
	for _, dl := range decoded.Layers {
		layerEnt := ecs.CreateEntity(w)
		if err := ecs.Add(w, layerEnt, component.LayerComponent.Kind(), &component.Layer{
			Identifier: dl.Instance.Identifier,
			Index:      dl.Index,
			GridSize:   dl.Instance.GridSize,
			GridHeight: dl.Instance.CellHeight,
			Visible:    dl.Instance.Visible,
		}); err != nil {
			return fmt.Errorf("add layer %s: %w", dl.Instance.Identifier, err)
		}
		if err := ecs.Add(w, layerEnt, component.TransformComponent.Kind(), &component.Transform{
			X:      float64(dl.Instance.OffsetX),
			Y:      -float64(dl.Instance.OffsetY),
			ScaleX: 1,
			ScaleY: 1,
		}); err != nil {
			return fmt.Errorf("add layer %s transform: %w", dl.Instance.Identifier, err)
		}
		if err := ecs.SetParent(w, layerEnt, levelEnt); err != nil {
			return fmt.Errorf("parent layer %s: %w", dl.Instance.Identifier, err)
		}

		for _, de := range dl.Entities {
			if err := spawnEntity(w, layerEnt, dl, de, sprites); err != nil {
				return err
			}
		}
	}
	return nil
}

func spawnEntity(w *ecs.World, layerEnt ecs.Entity, dl DecodedLayer, de DecodedEntity, sprites *tileSprites) error {
	inst := de.Instance
	pos := levels.EntityWorldPos(inst, dl.Instance)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("%s %s: add transform: %w", inst.Identifier, inst.IID, err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: dl.Index}); err != nil {
		return fmt.Errorf("%s %s: add render layer: %w", inst.Identifier, inst.IID, err)
	}
	if sprite, ok := sprites.lookup(inst); ok && dl.Instance.Visible {
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
			return fmt.Errorf("%s %s: add sprite: %w", inst.Identifier, inst.IID, err)
		}
	}
	if err := de.Apply(w, e); err != nil {
		return fmt.Errorf("%s %s: %w", inst.Identifier, inst.IID, err)
	}
	if err := ecs.SetParent(w, e, layerEnt); err != nil {
		return fmt.Errorf("%s %s: parent: %w", inst.Identifier, inst.IID, err)
	}
	return nil
}

// UnloadLevel destroys the world root and everything under it, including
// spawned enemies. It returns the number of entities destroyed.
func UnloadLevel(w *ecs.World, res *LevelResources) int {
	if res == nil {
		return 0
	}
	return ecs.DestroyRecursive(w, res.WorldRoot)
}

// levelBackground prefers the level's own colour over the project default.
func levelBackground(project *levels.Project, lvl *ldtkgo.Level) color.Color {
	if lvl.BGColor != nil {
		return lvl.BGColor
	}
	if project != nil && project.Project != nil && project.BGColor != nil {
		return project.BGColor
	}
	return color.Black
}
