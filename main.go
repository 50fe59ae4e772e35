package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/towerdefence/assets"
	"github.com/milk9111/towerdefence/config"
	"go.uber.org/zap"
)

type flags struct {
	configPath string
	levelPath  string
	debug      bool
	watch      bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to a TOML config file")
	flag.StringVar(&f.levelPath, "level", "", "level project path (overrides the config)")
	flag.BoolVar(&f.debug, "debug", false, "enable the debug overlay and debug logging")
	flag.BoolVar(&f.watch, "watch", false, "reload the level and prefabs when they change on disk")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so main exits only after they ran.
func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.levelPath != "" {
		cfg.Level.Path = f.levelPath
	}
	if f.watch {
		cfg.Level.Watch = true
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	game, err := NewGame(cfg, log, assets.LoadImage)
	if err != nil {
		log.Error("start game", zap.Error(err))
		return fmt.Errorf("start game: %w", err)
	}
	defer game.Close()
	game.debug = f.debug
	game.render.Debug = f.debug

	if cfg.Level.Watch {
		if err := game.Watch(); err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("run game", zap.Error(err))
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
