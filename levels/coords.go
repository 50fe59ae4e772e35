package levels

import (
	"image"

	"github.com/jakecoffman/cp"
)

// PixelToWorld converts editor pixel coordinates (origin top-left, Y down) to
// world coordinates (Y up, origin at the layer's bottom-left corner). px is
// where the entity's pivot sits; the result is the centre of its bounding box.
func PixelToWorld(px image.Point, layerPxHeight int, size image.Point, pivot cp.Vector) cp.Vector {
	x := float64(px.X)
	y := float64(layerPxHeight - px.Y)
	return cp.Vector{
		X: x + float64(size.X)*(0.5-pivot.X),
		Y: y + float64(size.Y)*(pivot.Y-0.5),
	}
}

// GridCenterToPixel returns the pixel position of a grid cell's centre,
// truncated toward zero.
func GridCenterToPixel(p GridPoint, gridSize int) image.Point {
	g := float64(gridSize)
	return image.Pt(
		int((float64(p.CX)+0.5)*g),
		int((float64(p.CY)+0.5)*g),
	)
}
