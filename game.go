package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/towerdefence/assets"
	"github.com/milk9111/towerdefence/config"
	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/ecs/entity"
	"github.com/milk9111/towerdefence/ecs/system"
	"github.com/milk9111/towerdefence/levels"
	"github.com/milk9111/towerdefence/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

type Game struct {
	cfg       *config.Config
	log       *zap.Logger
	loadImage entity.ImageLoader

	world     *ecs.World
	res       *entity.LevelResources
	scheduler *ecs.Scheduler
	render    *system.RenderSystem

	watcher *prefabs.Watcher
	ticks   int64
	spawned int
	reloads int
	debug   bool
}

// NewGame loads the configured level into a fresh world. loadImage may be nil
// to run without sprites.
func NewGame(cfg *config.Config, log *zap.Logger, loadImage entity.ImageLoader) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:       cfg,
		log:       log,
		loadImage: loadImage,
		world:     ecs.NewWorld(),
		render:    system.NewRenderSystem(),
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// loadLevel spawns the configured level and swaps it in for the current one.
// The current level is only removed once the new one loaded.
func (g *Game) loadLevel() error {
	project, err := levels.LoadProject(g.cfg.Level.Path)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	res, err := entity.LoadLevelToWorld(g.world, project, entity.LoadOptions{
		Selection: levels.LevelSelection{
			Index:      g.cfg.Level.Index,
			Identifier: g.cfg.Level.Identifier,
		},
		SpawnPeriod: g.cfg.Spawner.Period,
		LoadImage:   g.loadImage,
		Logger:      g.log,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	spawner, err := system.NewSpawnerSystem(res, g.log)
	if err != nil {
		entity.UnloadLevel(g.world, res)
		return fmt.Errorf("game: %w", err)
	}

	if g.res != nil {
		n := entity.UnloadLevel(g.world, g.res)
		g.log.Debug("previous level unloaded", zap.Int("entities", n))
	}
	g.res = res
	g.scheduler = ecs.NewScheduler(
		spawner,
		system.NewPatrolSystem(),
		system.NewAnimationSystem(),
	)
	g.spawned = 0
	return nil
}

// Reload re-reads the level and prefabs. On failure the running level is
// kept and the error is returned.
func (g *Game) Reload() error {
	if err := g.loadLevel(); err != nil {
		g.log.Error("reload failed, keeping current level", zap.Error(err))
		return err
	}
	g.reloads++
	g.log.Info("level reloaded", zap.String("level", g.res.LevelIdentifier), zap.Int("reloads", g.reloads))
	return nil
}

// Watch starts reloading when level, prefab or sprite files change on disk.
func (g *Game) Watch() error {
	dirs := []string{"prefabs", "assets"}
	if dir := filepath.Dir(g.cfg.Level.Path); dir != "" {
		dirs = append(dirs, dir)
	}
	var existing []string
	for _, d := range dirs {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			existing = append(existing, d)
		}
	}
	if len(existing) == 0 {
		return fmt.Errorf("game: nothing to watch in %v", dirs)
	}
	w, err := prefabs.NewWatcher(prefabs.DefaultWatchExts, existing...)
	if err != nil {
		return fmt.Errorf("game: watch: %w", err)
	}
	g.watcher = w
	g.log.Info("watching for changes", zap.Strings("dirs", existing))
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// pollWatcher drains pending file events without blocking and reloads once.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			switch {
			case prefabs.IsPrefabFile(name):
				fields := []zap.Field{zap.String("prefab", filepath.Base(name))}
				if mod, ok := prefabs.ModTime(filepath.Base(name)); ok {
					fields = append(fields, zap.Time("modified", mod))
				}
				g.log.Info("prefab changed", fields...)
			case filepath.Ext(name) == ".png":
				assets.Forget(filepath.Base(name))
				g.log.Debug("sprite sheet changed", zap.String("path", name))
			default:
				g.log.Debug("file changed", zap.String("path", name))
			}
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				// A nil channel is never ready, so select stops picking it.
				g.watcher.Errors = nil
				continue
			}
			g.log.Warn("watcher error", zap.Error(err))
		default:
			if changed {
				_ = g.Reload()
			}
			return
		}
	}
}

// frameDelta spreads each second over exactly tps ticks. time.Second/60
// truncates to 16666666ns, which would stretch a 2s period to 121 frames.
func (g *Game) frameDelta() time.Duration {
	tps := int64(g.cfg.Window.TPS)
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	n := g.ticks % tps
	return time.Duration((n+1)*int64(time.Second)/tps - n*int64(time.Second)/tps)
}

// tick advances one fixed frame.
func (g *Game) tick() {
	g.step(g.frameDelta())
	g.ticks++
}

// step advances the simulation by one frame.
func (g *Game) step(dt time.Duration) {
	g.world.Advance(dt)
	g.scheduler.Update(g.world)
	for _, ev := range g.world.Events().Drain() {
		if ev.Type == system.EventEnemySpawned {
			g.spawned++
		}
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.render.Debug = g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		_ = g.Reload()
	}
	g.pollWatcher()
	g.tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg := color.Color(color.Black)
	if lvl, ok := ecs.Get(g.world, g.res.Level, component.LevelComponent.Kind()); ok && lvl.Background != nil {
		bg = lvl.Background
	}
	screen.Fill(bg)

	g.render.Debug = g.debug
	g.render.Draw(g.world, screen)

	if g.debug {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("TPS %.1f  FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("level %s  time %.1fs", g.res.LevelIdentifier, g.world.Elapsed().Seconds()),
		fmt.Sprintf("enemies %d  spawned %d", len(g.world.Query(component.EnemyComponent.Kind())), g.spawned),
		fmt.Sprintf("entities %d  reloads %d", len(ecs.Entities(g.world)), g.reloads),
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*16))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, hudFace, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
