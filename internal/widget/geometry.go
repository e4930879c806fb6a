package widget

import (
	"github.com/fchimpan/sticky/internal/palette"
)

type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Shadow is a flat drop shadow. It is never drawn behind the node.
type Shadow struct {
	Type                 string  `yaml:"type"`
	Color                string  `yaml:"color"`
	Offset               Vector  `yaml:"offset"`
	Blur                 float64 `yaml:"blur"`
	ShowShadowBehindNode bool    `yaml:"showShadowBehindNode"`
}

type CornerRadius struct {
	TopLeft     float64 `yaml:"topLeft"`
	TopRight    float64 `yaml:"topRight"`
	BottomLeft  float64 `yaml:"bottomLeft"`
	BottomRight float64 `yaml:"bottomRight"`
}

// Geometry holds everything the renderer needs that is not stored.
type Geometry struct {
	FontSize     float64
	Padding      float64
	StrokeWidth  float64
	UniqueStroke float64
	InputWidth   float64
	Shadow       Shadow
	CornerRadius CornerRadius

	InputFill      string
	InputTextColor string
	OuterFill      string
	InnerFill      string
	HoverOpacity   float64
}

const hoverOpacity = 0.7

var (
	extraSmallShadow = Shadow{
		Type:   "drop-shadow",
		Color:  "#000",
		Offset: Vector{X: 1.11, Y: 1.11},
	}
	otherShadow = Shadow{
		Type:   "drop-shadow",
		Color:  "#000",
		Offset: Vector{X: 3, Y: 3},
	}
)

// Derive computes the rendering parameters for s. It is pure.
func Derive(s State) Geometry {
	size := float64(s.Size)

	shadow := otherShadow
	uniqueStroke := 2.0
	if s.Size == palette.ExtraSmall {
		shadow = extraSmallShadow
		uniqueStroke = 1.5
	}

	strokeWidth := size * 0.1
	corner := CornerRadius{
		TopLeft:     size,
		TopRight:    size,
		BottomLeft:  size,
		BottomRight: size,
	}
	// The cut bottom-right corner marks the expanded note.
	if s.Open {
		corner.BottomRight = strokeWidth
	}

	g := Geometry{
		FontSize:     size * 0.32,
		Padding:      size * 0.4,
		StrokeWidth:  strokeWidth,
		UniqueStroke: uniqueStroke,
		InputWidth:   size * 8,
		Shadow:       shadow,
		CornerRadius: corner,

		InputFill:      palette.White,
		InputTextColor: palette.Black,
		OuterFill:      palette.White,
		InnerFill:      string(s.Color),
		HoverOpacity:   hoverOpacity,
	}
	if s.Mode {
		g.InputFill = string(s.Color)
		g.InputTextColor = s.Color.TextColor()
		g.OuterFill = palette.Black
	}
	return g
}
