package levels

import (
	"image"

	"github.com/jakecoffman/cp"
	"github.com/solarlune/ldtkgo"
)

// Layer types as written by the editor in a layer instance's __type.
const (
	LayerEntities  = "Entities"
	LayerIntGrid   = "IntGrid"
	LayerTiles     = "Tiles"
	LayerAutoLayer = "AutoLayer"
)

// Project is a decoded editor project. Levels, layers and entities are the
// ldtkgo types; this package adds selection and the game's field decoding.
type Project struct {
	*ldtkgo.Project
}

// Tileset returns the tileset definition with the given uid.
func (p *Project) Tileset(uid int) (*ldtkgo.Tileset, bool) {
	if p == nil || p.Project == nil {
		return nil, false
	}
	for _, ts := range p.Tilesets {
		if ts != nil && ts.ID == uid {
			return ts, true
		}
	}
	return nil, false
}

// LayerPxHeight is the layer height in pixels.
func LayerPxHeight(l *ldtkgo.Layer) int {
	if l == nil {
		return 0
	}
	return l.CellHeight * l.GridSize
}

// EntityPixelPos is where the entity's pivot sits, in layer pixels, Y down.
func EntityPixelPos(e *ldtkgo.Entity) image.Point {
	if len(e.Position) < 2 {
		return image.Point{}
	}
	return image.Pt(e.Position[0], e.Position[1])
}

func EntitySize(e *ldtkgo.Entity) image.Point {
	return image.Pt(e.Width, e.Height)
}

// EntityPivot defaults to the top-left corner when the editor omitted it.
func EntityPivot(e *ldtkgo.Entity) cp.Vector {
	if len(e.Pivot) < 2 {
		return cp.Vector{}
	}
	return cp.Vector{X: float64(e.Pivot[0]), Y: float64(e.Pivot[1])}
}

// EntityWorldPos converts the entity's own pixel position with PixelToWorld.
func EntityWorldPos(e *ldtkgo.Entity, layer *ldtkgo.Layer) cp.Vector {
	return PixelToWorld(EntityPixelPos(e), LayerPxHeight(layer), EntitySize(e), EntityPivot(e))
}

// EntityTile returns the editor tile drawn for the entity, if any.
func EntityTile(e *ldtkgo.Entity) (uid int, src image.Rectangle, ok bool) {
	if e == nil || e.TileRect == nil {
		return 0, image.Rectangle{}, false
	}
	r := e.TileRect
	return r.TilesetUID, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H), true
}

// GridPoint is a point field value in grid cells.
type GridPoint struct {
	CX int
	CY int
}
