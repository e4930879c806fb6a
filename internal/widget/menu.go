package widget

import (
	"fmt"

	"github.com/fchimpan/sticky/internal/palette"
)

// Property names used by the menu callback.
const (
	PropertyColor = "color"
	PropertySize  = "size"
	PropertyMode  = "mode"
)

type ItemType string

const (
	ItemColorSelector ItemType = "color-selector"
	ItemDropdown      ItemType = "dropdown"
	ItemAction        ItemType = "action"
)

type MenuOption struct {
	Option  string `yaml:"option"`
	Label   string `yaml:"label,omitempty"`
	Tooltip string `yaml:"tooltip,omitempty"`
}

// MenuItem is one entry of the property menu the host draws above the note.
type MenuItem struct {
	ItemType       ItemType     `yaml:"itemType"`
	PropertyName   string       `yaml:"propertyName"`
	Tooltip        string       `yaml:"tooltip"`
	Options        []MenuOption `yaml:"options,omitempty"`
	SelectedOption string       `yaml:"selectedOption,omitempty"`
	Icon           string       `yaml:"icon,omitempty"`
}

// MenuEvent is what the host reports when the user picks a menu entry.
// PropertyValue is nil for actions.
type MenuEvent struct {
	PropertyName  string
	PropertyValue *string
}

// Value is a convenience for building MenuEvent values.
func Value(s string) *string { return &s }

const modeIconTemplate = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 64 64" enable-background="new 0 0 64 64" xml:space="preserve">
<circle cx="32" cy="32" r="12" fill="%s" stroke="%s" stroke-width="6" />
</svg>`

// ModeIcon draws the mode action as a circle that is filled with the note
// color in dark mode and hollow otherwise.
func ModeIcon(c palette.Color, mode bool) string {
	fill := "#FFF"
	if mode {
		fill = string(c)
	}
	return fmt.Sprintf(modeIconTemplate, fill, c)
}

// MenuSchema describes the property menu. A closed note has no menu.
func (m *Machine) MenuSchema() []MenuItem {
	return menuSchema(m.state)
}

func menuSchema(s State) []MenuItem {
	if !s.Open {
		return []MenuItem{}
	}

	colors := palette.All()
	colorOpts := make([]MenuOption, 0, len(colors))
	for _, c := range colors {
		colorOpts = append(colorOpts, MenuOption{Option: string(c), Tooltip: string(c)})
	}

	sizes := palette.Sizes()
	sizeOpts := make([]MenuOption, 0, len(sizes))
	for _, sz := range sizes {
		sizeOpts = append(sizeOpts, MenuOption{Option: sz.String(), Label: sz.Label()})
	}

	return []MenuItem{
		{
			ItemType:       ItemColorSelector,
			PropertyName:   PropertyColor,
			Tooltip:        "Color",
			Options:        colorOpts,
			SelectedOption: string(s.Color),
		},
		{
			ItemType:       ItemDropdown,
			PropertyName:   PropertySize,
			Tooltip:        "Size",
			Options:        sizeOpts,
			SelectedOption: s.Size.String(),
		},
		{
			ItemType:     ItemAction,
			PropertyName: PropertyMode,
			Tooltip:      "Mode",
			Icon:         ModeIcon(s.Color, s.Mode),
		},
	}
}
