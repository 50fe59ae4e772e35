package component

// Transform places an entity relative to its parent. World space is Y-up with
// the origin at the centre of the screen.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
