package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

type Enemy struct {
	Kind      EnemyKind
	SpawnedAt time.Duration
}

var EnemyComponent = NewComponent[Enemy]()

// PatrolFollower walks an entity through Route at Speed world units per
// second. Next is the index of the point being approached.
type PatrolFollower struct {
	Route []cp.Vector
	Next  int
	Speed float64
}

// Done reports whether the final route point has been reached.
func (p *PatrolFollower) Done() bool {
	return p == nil || p.Next >= len(p.Route)
}

var PatrolFollowerComponent = NewComponent[PatrolFollower]()
