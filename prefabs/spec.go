package prefabs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type EnemySpec struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind"`
	MoveSpeed   float64         `yaml:"move_speed"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
	Animation   AnimationSpec   `yaml:"animation"`
}

// EnemySpecFile names the prefab for an enemy kind label, e.g. "Slow" ->
// "slow_enemy.yaml".
func EnemySpecFile(kind string) string {
	return strings.ToLower(kind) + "_enemy.yaml"
}

func LoadEnemySpec(kind string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](EnemySpecFile(kind))
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", EnemySpecFile(kind), err)
	}
	return &spec, nil
}

// Validate checks that the spec's current animation exists and can be cut
// from a sheet.
func (s *EnemySpec) Validate() error {
	if s.Animation.Sheet == "" {
		return fmt.Errorf("animation sheet is empty")
	}
	def, ok := s.Animation.Defs[s.Animation.Current]
	if !ok {
		return fmt.Errorf("animation %q is not defined", s.Animation.Current)
	}
	if def.FrameCount <= 0 || def.FrameW <= 0 || def.FrameH <= 0 {
		return fmt.Errorf("animation %q has empty frames", s.Animation.Current)
	}
	if def.FPS <= 0 {
		return fmt.Errorf("animation %q has non-positive fps", s.Animation.Current)
	}
	if s.MoveSpeed < 0 {
		return fmt.Errorf("move_speed must not be negative")
	}
	return nil
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type SpriteSpec struct {
	Image     string  `yaml:"image"`
	UseSource bool    `yaml:"use_source"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
}

type AnimationSpec struct {
	Sheet   string                      `yaml:"sheet"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
	Playing bool                        `yaml:"playing"`
}

type AnimationDefSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}
