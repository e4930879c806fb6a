package palette

import (
	"math"
	"strconv"
	"strings"
)

// Color is one of the eight fixed note fills.
type Color string

const (
	Blue   Color = "#699BF7"
	Pink   Color = "#FF33CC"
	Salmon Color = "#FF8577"
	Yellow Color = "#FFC82D"
	Green  Color = "#0FA958"
	Red    Color = "#B6162A"
	Purple Color = "#9933FF"
	Gray   Color = "#C1C1C1"
)

const (
	White = "#FFFFFF"
	Black = "#000000"
)

// Text colors as they appear in the contrast table.
const (
	textWhite = "#ffffff"
	textBlack = "#000000"
)

// DefaultColor is the fill of a freshly created note.
const DefaultColor = Yellow

var fills = [...]Color{Blue, Pink, Salmon, Yellow, Green, Red, Purple, Gray}

// All returns the palette in menu order.
func All() []Color {
	out := make([]Color, len(fills))
	copy(out, fills[:])
	return out
}

// Parse matches s against the palette, ignoring case and surrounding space.
func Parse(s string) (Color, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, c := range fills {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the canonical palette constants.
func (c Color) Valid() bool { return c.Index() >= 0 }

// TextColor returns the contrast-safe text color for c.
// Colors outside the palette get black.
func (c Color) TextColor() string {
	switch c {
	case Blue, Pink, Salmon, Red, Purple:
		return textWhite
	case Yellow, Green, Gray:
		return textBlack
	default:
		return textBlack
	}
}

// Index returns the menu position of c, or -1.
func (c Color) Index() int {
	for i, f := range fills {
		if f == c {
			return i
		}
	}
	return -1
}

// Size is a note scale tier. All geometry is derived from it.
type Size int

const (
	ExtraSmall Size = 25
	Small      Size = 50
	Medium     Size = 75
)

const DefaultSize = Small

var sizes = [...]Size{ExtraSmall, Small, Medium}

func Sizes() []Size {
	out := make([]Size, len(sizes))
	copy(out, sizes[:])
	return out
}

// ParseSize reads s as a number and accepts it when it equals one of the
// tiers, so "50", "50.0", "5e1" and "0x32" all select Small.
func ParseSize(s string) (Size, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "_") {
		return 0, false
	}
	var f float64
	if hasBasePrefix(s) {
		// Hex, octal and binary integers; no sign, no exponent.
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, false
		}
		f = float64(n)
	} else {
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	}
	if f != math.Trunc(f) || f < 0 || f > float64(Medium) {
		return 0, false
	}
	sz := Size(f)
	if !sz.Valid() {
		return 0, false
	}
	return sz, true
}

func hasBasePrefix(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func (s Size) Valid() bool {
	switch s {
	case ExtraSmall, Small, Medium:
		return true
	}
	return false
}

func (s Size) Label() string {
	switch s {
	case ExtraSmall:
		return "Extra Small"
	case Small:
		return "Small"
	case Medium:
		return "Medium"
	}
	return strconv.Itoa(int(s))
}

func (s Size) String() string { return strconv.Itoa(int(s)) }
