package component

import "image/color"

// Level describes the loaded level in pixels.
type Level struct {
	Identifier string
	IID        string
	Width      float64
	Height     float64
	Background color.Color
}

var LevelComponent = NewComponent[Level]()

// Layer describes one editor layer. Index 0 is the bottom-most layer.
type Layer struct {
	Identifier string
	Index      int
	GridSize   int
	GridHeight int
	Visible    bool
}

var LayerComponent = NewComponent[Layer]()
