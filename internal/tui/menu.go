package tui

import (
	"encoding/xml"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/sticky/internal/widget"
)

// menuHit is a clickable span of the menu bar, in screen columns.
type menuHit struct {
	x0, x1 int
	item   int
	event  widget.MenuEvent
}

// cycleOption returns the event selecting the option delta steps away from
// the current selection of a selector or dropdown.
func cycleOption(item widget.MenuItem, delta int) (widget.MenuEvent, bool) {
	n := len(item.Options)
	if n == 0 {
		return widget.MenuEvent{}, false
	}
	cur := 0
	for i, o := range item.Options {
		if o.Option == item.SelectedOption {
			cur = i
			break
		}
	}
	next := ((cur+delta)%n + n) % n
	return widget.MenuEvent{
		PropertyName:  item.PropertyName,
		PropertyValue: widget.Value(item.Options[next].Option),
	}, true
}

// activate is what enter does on a focused entry.
func activate(item widget.MenuItem) (widget.MenuEvent, bool) {
	if item.ItemType == widget.ItemAction {
		return widget.MenuEvent{PropertyName: item.PropertyName}, true
	}
	return cycleOption(item, 1)
}

type svgIcon struct {
	Circle struct {
		Fill   string `xml:"fill,attr"`
		Stroke string `xml:"stroke,attr"`
	} `xml:"circle"`
}

// iconGlyph renders the action icon as a single terminal glyph: a filled
// dot when the circle is filled with its stroke color, a ring otherwise.
func iconGlyph(icon string) string {
	var svg svgIcon
	if err := xml.Unmarshal([]byte(icon), &svg); err != nil || svg.Circle.Stroke == "" {
		return "◐"
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(hex6(svg.Circle.Stroke)))
	if strings.EqualFold(svg.Circle.Fill, svg.Circle.Stroke) {
		return st.Render("●")
	}
	return st.Render("○")
}

// renderMenu draws the property menu starting at screen column x and returns
// the clickable spans.
func renderMenu(items []widget.MenuItem, focus int, x int) (string, []menuHit) {
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	var hits []menuHit
	write := func(s string) {
		b.WriteString(s)
		x += lipgloss.Width(s)
	}

	sep := styleMenuDim.Render("  │  ")
	for i, item := range items {
		if i > 0 {
			write(sep)
		}
		label := styleMenuLabel
		if i == focus {
			label = styleMenuFocus
		}
		write(label.Render(item.Tooltip) + " ")

		switch item.ItemType {
		case widget.ItemColorSelector:
			for _, o := range item.Options {
				sw := lipgloss.NewStyle().Foreground(lipgloss.Color(hex6(o.Option))).Render("██")
				l, r := " ", " "
				if o.Option == item.SelectedOption {
					l, r = styleMenuValue.Render("["), styleMenuValue.Render("]")
				}
				x0 := x
				write(l + sw + r)
				hits = append(hits, menuHit{x0: x0, x1: x, item: i, event: widget.MenuEvent{
					PropertyName:  item.PropertyName,
					PropertyValue: widget.Value(o.Option),
				}})
			}
		case widget.ItemDropdown:
			cur := item.SelectedOption
			for _, o := range item.Options {
				if o.Option == item.SelectedOption && o.Label != "" {
					cur = o.Label
				}
			}
			x0 := x
			write(styleMenuValue.Render("‹" + cur + "›"))
			if ev, ok := cycleOption(item, 1); ok {
				hits = append(hits, menuHit{x0: x0, x1: x, item: i, event: ev})
			}
		case widget.ItemAction:
			x0 := x
			write(iconGlyph(item.Icon))
			hits = append(hits, menuHit{x0: x0, x1: x, item: i, event: widget.MenuEvent{PropertyName: item.PropertyName}})
		}
	}
	return b.String(), hits
}

var (
	styleMenuLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleMenuFocus = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#d0d7de"))
	styleMenuValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleMenuDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)
