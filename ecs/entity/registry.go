package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/milk9111/towerdefence/ecs"
	"github.com/milk9111/towerdefence/ecs/component"
	"github.com/milk9111/towerdefence/levels"
	"github.com/solarlune/ldtkgo"
)

// Editor entity identifiers understood by the default registry.
const (
	SpawnerIdentifier   = "Spawner"
	TowerSlotIdentifier = "Tower_Slot"
)

// DecodeContext is what a decoder may read besides the instance itself.
type DecodeContext struct {
	Project     *levels.Project
	Level       *ldtkgo.Level
	Layer       *ldtkgo.Layer
	SpawnPeriod time.Duration
}

// ApplyFunc adds the decoded components to a freshly created entity.
type ApplyFunc func(w *ecs.World, e ecs.Entity) error

// DecodeFunc turns an editor entity instance into components. It must not
// touch the world; all failures are reported before anything is spawned.
type DecodeFunc func(ctx *DecodeContext, inst *ldtkgo.Entity) (ApplyFunc, error)

// Registry maps editor entity identifiers to decoders.
type Registry struct {
	decoders map[string]DecodeFunc
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]DecodeFunc)}
}

// DefaultRegistry knows spawners and tower slots.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SpawnerIdentifier, decodeSpawnerEntity)
	r.Register(TowerSlotIdentifier, decodeTowerSlotEntity)
	return r
}

// Register binds identifier to fn, replacing any previous decoder.
func (r *Registry) Register(identifier string, fn DecodeFunc) {
	if r.decoders == nil {
		r.decoders = make(map[string]DecodeFunc)
	}
	r.decoders[identifier] = fn
}

func (r *Registry) Lookup(identifier string) (DecodeFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.decoders[identifier]
	return fn, ok
}

// Identifiers returns the registered identifiers, sorted.
func (r *Registry) Identifiers() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.decoders))
	for id := range r.decoders {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func decodeSpawnerEntity(ctx *DecodeContext, inst *ldtkgo.Entity) (ApplyFunc, error) {
	spawner, err := DecodeSpawner(inst, ctx.Layer, ctx.SpawnPeriod)
	if err != nil {
		return nil, err
	}
	return func(w *ecs.World, e ecs.Entity) error {
		s := spawner
		if err := ecs.Add(w, e, component.SpawnerComponent.Kind(), &s); err != nil {
			return fmt.Errorf("spawner: add spawner: %w", err)
		}
		return nil
	}, nil
}

func decodeTowerSlotEntity(_ *DecodeContext, _ *ldtkgo.Entity) (ApplyFunc, error) {
	return func(w *ecs.World, e ecs.Entity) error {
		if err := ecs.Add(w, e, component.TowerSlotTagComponent.Kind(), &component.TowerSlotTag{}); err != nil {
			return fmt.Errorf("tower slot: add tag: %w", err)
		}
		return nil
	}, nil
}
