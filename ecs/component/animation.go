package component

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationDef is one tagged clip on a sprite sheet: FrameCount frames laid
// out left to right on Row, starting at ColStart.
type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer time.Duration
	Playing    bool
}

// Play switches to the named clip from its first frame. Unknown names are
// ignored and reported as false.
func (a *Animation) Play(name string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

var AnimationComponent = NewComponent[Animation]()
