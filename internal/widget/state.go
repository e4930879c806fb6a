package widget

import (
	"github.com/fchimpan/sticky/internal/palette"
)

// State is the persisted part of a note: the five named slots the host keeps
// durable for each instance.
type State struct {
	Text  string        `yaml:"text"`
	Open  bool          `yaml:"open"`
	Color palette.Color `yaml:"color"`
	Size  palette.Size  `yaml:"size"`
	Mode  bool          `yaml:"mode"`
}

func DefaultState() State {
	return State{
		Text:  "",
		Open:  true,
		Color: palette.DefaultColor,
		Size:  palette.DefaultSize,
		Mode:  false,
	}
}

// Normalize replaces an off-palette color or off-tier size with its default.
// It reports whether anything was replaced.
func (s State) Normalize() (State, bool) {
	fixed := false
	if c, ok := palette.Parse(string(s.Color)); ok {
		s.Color = c
	} else {
		s.Color = palette.DefaultColor
		fixed = true
	}
	if !s.Size.Valid() {
		s.Size = palette.DefaultSize
		fixed = true
	}
	return s, fixed
}
