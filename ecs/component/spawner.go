package component

import (
	"github.com/jakecoffman/cp"
)

// EnemyKind selects the enemy prefab a spawner produces.
type EnemyKind int

const (
	EnemySlow EnemyKind = iota
	EnemyFast
)

var enemyKindNames = map[EnemyKind]string{
	EnemySlow: "Slow",
	EnemyFast: "Fast",
}

func (k EnemyKind) String() string {
	if name, ok := enemyKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseEnemyKind maps an editor enum label to a kind. Labels are matched
// exactly.
func ParseEnemyKind(label string) (EnemyKind, bool) {
	switch label {
	case "Slow":
		return EnemySlow, true
	case "Fast":
		return EnemyFast, true
	}
	return 0, false
}

// EnemyKinds lists every kind in declaration order.
func EnemyKinds() []EnemyKind {
	return []EnemyKind{EnemySlow, EnemyFast}
}

// Spawner periodically creates enemies that walk Patrol. Patrol[0] is the
// spawner's own position and is always present.
type Spawner struct {
	Patrol []cp.Vector
	Kind   EnemyKind
	Timer  Timer
}

var SpawnerComponent = NewComponent[Spawner]()
