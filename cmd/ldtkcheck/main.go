// Command ldtkcheck loads a level project the way the game does and reports
// every level's entities, or the first decode error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/ecs/entity"
	"github.com/milk9111/towerdefence/levels"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("level", levels.DefaultProject, "level project path (falls back to the embedded project)")
	period := flag.Duration("period", entity.DefaultSpawnPeriod, "spawn period used for decoding")
	verbose := flag.Bool("v", false, "log skipped entities")
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			log = l
		}
	}

	project, err := levels.LoadProject(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := check(os.Stdout, project, *period, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// check decodes and spawns every level into a scratch world. It returns the
// first level that fails.
func check(out io.Writer, project *levels.Project, period time.Duration, log *zap.Logger) error {
	if project == nil || project.Project == nil || len(project.Levels) == 0 {
		return errors.New("ldtkcheck: project has no levels")
	}
	for i, lvl := range project.Levels {
		w := ecs.NewWorld()
		opts := entity.LoadOptions{
			Selection:   levels.LevelSelection{Index: i},
			SpawnPeriod: period,
			Logger:      log,
		}
		decoded, err := entity.DecodeLevel(project, opts)
		if err != nil {
			return fmt.Errorf("ldtkcheck: %w", err)
		}
		if _, err := entity.LoadLevelToWorld(w, project, opts); err != nil {
			return fmt.Errorf("ldtkcheck: %w", err)
		}

		fmt.Fprintf(out, "%s (%s) %dx%d px, %d layers\n", lvl.Identifier, lvl.IID, lvl.Width, lvl.Height, len(lvl.Layers))
		ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
			fmt.Fprintf(out, "  spawner %-4s every %v, patrol of %d points from (%.0f, %.0f)\n",
				sp.Kind, sp.Timer.Duration, len(sp.Patrol), sp.Patrol[0].X, sp.Patrol[0].Y)
		})
		fmt.Fprintf(out, "  tower slots: %d\n", len(w.Query(component.TowerSlotTagComponent.Kind())))

		skipped := make([]string, 0, len(decoded.Skipped))
		for id := range decoded.Skipped {
			skipped = append(skipped, id)
		}
		sort.Strings(skipped)
		for _, id := range skipped {
			fmt.Fprintf(out, "  skipped %s x%d\n", id, decoded.Skipped[id])
		}
	}
	return nil
}
