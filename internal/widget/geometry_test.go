package widget

import (
	"math"
	"testing"

	"github.com/fchimpan/sticky/internal/palette"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDerive_SizeScaling(t *testing.T) {
	t.Parallel()

	cases := []struct {
		size                                     palette.Size
		font, padding, stroke, unique, inputWide float64
		shadow                                   Vector
	}{
		{palette.ExtraSmall, 8, 10, 2.5, 1.5, 200, Vector{1.11, 1.11}},
		{palette.Small, 16, 20, 5, 2, 400, Vector{3, 3}},
		{palette.Medium, 24, 30, 7.5, 2, 600, Vector{3, 3}},
	}
	for _, tc := range cases {
		s := DefaultState()
		s.Size = tc.size
		g := Derive(s)

		if !approx(g.FontSize, tc.font) || !approx(g.Padding, tc.padding) || !approx(g.StrokeWidth, tc.stroke) {
			t.Fatalf("size %d: font=%v padding=%v stroke=%v", tc.size, g.FontSize, g.Padding, g.StrokeWidth)
		}
		if g.UniqueStroke != tc.unique {
			t.Fatalf("size %d: uniqueStroke=%v want %v", tc.size, g.UniqueStroke, tc.unique)
		}
		if !approx(g.InputWidth, tc.inputWide) {
			t.Fatalf("size %d: input width=%v", tc.size, g.InputWidth)
		}
		if g.Shadow.Offset != tc.shadow {
			t.Fatalf("size %d: shadow offset=%+v", tc.size, g.Shadow.Offset)
		}
		if g.Shadow.Blur != 0 || g.Shadow.ShowShadowBehindNode || g.Shadow.Color != "#000" {
			t.Fatalf("size %d: shadow must be flat black, got %+v", tc.size, g.Shadow)
		}
	}
}

func TestDerive_CornerRadius(t *testing.T) {
	t.Parallel()

	for _, sz := range palette.Sizes() {
		for _, open := range []bool{true, false} {
			s := DefaultState()
			s.Size = sz
			s.Open = open
			g := Derive(s)
			c := g.CornerRadius
			size := float64(sz)

			if c.TopLeft != size || c.TopRight != size || c.BottomLeft != size {
				t.Fatalf("size %d open=%v: corners %+v", sz, open, c)
			}
			if (c.BottomRight == g.StrokeWidth) != open {
				t.Fatalf("size %d open=%v: bottomRight=%v strokeWidth=%v", sz, open, c.BottomRight, g.StrokeWidth)
			}
			if !open && c.BottomRight != size {
				t.Fatalf("closed note should have a round bottom-right corner")
			}
			if uniform(c) == open {
				t.Fatalf("uniform=%v for open=%v", uniform(c), open)
			}
		}
	}
}

func TestDerive_Mode(t *testing.T) {
	t.Parallel()

	for _, c := range palette.All() {
		s := DefaultState()
		s.Color = c

		light := Derive(s)
		if light.InputFill != palette.White || light.InputTextColor != palette.Black || light.OuterFill != palette.White {
			t.Fatalf("light %s: %+v", c, light)
		}
		if light.InnerFill != string(c) {
			t.Fatalf("inner fill should always be the note color")
		}

		s.Mode = true
		dark := Derive(s)
		if dark.InputFill != string(c) || dark.InputTextColor != c.TextColor() || dark.OuterFill != palette.Black {
			t.Fatalf("dark %s: %+v", c, dark)
		}
		if dark.InnerFill != string(c) {
			t.Fatalf("inner fill should always be the note color")
		}
		if dark.HoverOpacity != 0.7 {
			t.Fatalf("hover opacity=%v", dark.HoverOpacity)
		}
	}
}

func TestScenario_ExtraSmall(t *testing.T) {
	t.Parallel()

	m := New(DefaultState())
	m.ApplyMenuSelection(PropertySize, Value("25"))
	g := m.Geometry()
	if g.FontSize != 8 || g.Padding != 10 || g.StrokeWidth != 2.5 || g.UniqueStroke != 1.5 {
		t.Fatalf("unexpected geometry: %+v", g)
	}
}

func TestScenario_DarkModeDefaultColor(t *testing.T) {
	t.Parallel()

	m := New(DefaultState())
	m.ApplyMenuSelection(PropertyMode, nil)
	g := m.Geometry()
	if g.InputFill != "#FFC82D" {
		t.Fatalf("input fill=%q", g.InputFill)
	}
	if g.InputTextColor != "#000000" {
		t.Fatalf("input text color=%q", g.InputTextColor)
	}
}

func uniform(c CornerRadius) bool {
	return c.TopLeft == c.TopRight && c.TopRight == c.BottomLeft && c.BottomLeft == c.BottomRight
}
