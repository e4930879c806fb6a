package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/fchimpan/sticky/internal/widget"
)

// The host canvas behind the note. Strokes and shadows are black, so the
// background has to be light for them to show on dark terminals.
const canvasBackground = "#F2F2F2"

const placeholderColor = "#8b949e"

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// scene is where a render tree landed on the canvas, in canvas cells.
type scene struct {
	w, h    int
	badge   rect
	box     rect // zero when the input frame is hidden
	content rect // text area inside box
}

type paintOpts struct {
	maxW   int
	hover  bool
	editor []string // pre-rendered editor rows; replaces the input text when set
}

// badgeCells maps a size tier to badge height in rows: 25 -> 2, 50 -> 3, 75 -> 4.
// Terminal cells are about twice as tall as wide, so the badge is twice as
// wide as it is tall.
func badgeCells(size float64) (w, h int) {
	unit := int(math.Round(size / 25))
	if unit < 1 {
		unit = 1
	}
	h = unit + 1
	return 2 * h, h
}

// paintWidget rasterises root onto canvas and reports the layout.
func paintWidget(canvas *canvasBuf, root widget.Node, opts paintOpts) scene {
	input, _ := root.Find(widget.NodeInput)
	outer, _ := root.Find(widget.NodeOuter)
	inner, _ := root.Find(widget.NodeInner)

	bw, bh := badgeCells(root.Width)
	sc := scene{badge: rect{x: 1, y: 1, w: bw, h: bh}}

	var lines []string
	textStyle := lipgloss.NewStyle()
	var frame *widget.Node
	if input.InputFrame != nil && !input.InputFrame.Hidden {
		frame = input.InputFrame

		// The input sits at (size, size): its top-left touches the badge's
		// bottom-right corner.
		scale := 8.0
		if root.Width > 0 {
			scale = input.Width / root.Width
		}
		boxW := int(math.Round(scale)) * bw
		if opts.maxW > 0 {
			boxW = min(boxW, opts.maxW-(sc.badge.x+bw)-2)
		}
		boxW = max(boxW, 12)

		padX := int(math.Round(frame.Padding / 10))
		padY := padX / 2
		innerW := max(boxW-2-2*padX, 1)

		textStyle = textStyle.
			Foreground(lipgloss.Color(hex6(input.Fill))).
			Background(lipgloss.Color(hex6(frame.Fill)))
		if input.FontSize >= 24 {
			textStyle = textStyle.Bold(true)
		}

		switch {
		case opts.editor != nil:
			lines = opts.editor
		case input.Value != "":
			lines = strings.Split(ansi.Wrap(input.Value, innerW, ""), "\n")
		default:
			lines = strings.Split(ansi.Wrap(input.Placeholder, innerW, ""), "\n")
			textStyle = textStyle.Foreground(lipgloss.Color(placeholderColor)).Bold(false)
		}

		boxH := len(lines) + 2 + 2*padY
		sc.box = rect{x: sc.badge.x + bw, y: sc.badge.y + bh, w: boxW, h: boxH}
		sc.content = rect{x: sc.box.x + 1 + padX, y: sc.box.y + 1 + padY, w: innerW, h: len(lines)}
	}

	right := sc.badge.x + sc.badge.w
	bottom := sc.badge.y + sc.badge.h
	if sc.box.w > 0 {
		right = sc.box.x + sc.box.w
		bottom = sc.box.y + sc.box.h
	}
	sc.w, sc.h = right+2, bottom+2

	canvas.Resize(sc.w, sc.h)
	bg := lipgloss.NewStyle().Background(lipgloss.Color(canvasBackground))
	canvas.Fill(bg.Render(" "))

	// Outer badge: only its shadow shows; the inner badge covers the rest.
	paintShadow(canvas, sc.badge, outer.Effect)
	paintBadge(canvas, sc.badge, inner, outer, opts.hover, bg.Render(" "))

	if frame != nil {
		paintShadow(canvas, sc.box, frame.Effect)
		paintBox(canvas, sc.box, frame)

		if opts.editor != nil {
			for i, line := range lines {
				canvas.SetRun(sc.content.x, sc.content.y+i, sc.content.w, line)
			}
		} else {
			render := func(s string) string { return textStyle.Render(s) }
			for i, line := range lines {
				canvas.Text(sc.content.x, sc.content.y+i, sc.content.x+sc.content.w, line, render)
			}
		}
	}
	return sc
}

func paintBadge(canvas *canvasBuf, r rect, inner, outer widget.Node, hover bool, transparent string) {
	fill := hex6(inner.Fill)
	if hover && inner.HoverStyle != nil {
		fill = blend(outer.Fill, inner.Fill, inner.HoverStyle.Opacity)
	}
	cell := lipgloss.NewStyle().Background(lipgloss.Color(fill)).Render(" ")
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			canvas.Set(x, y, cell)
		}
	}

	if inner.CornerRadius == nil {
		return
	}
	cr := *inner.CornerRadius
	// A corner whose radius reaches half the badge reads as round in a cell
	// grid; a small radius is the cut "speech tail" corner and stays filled.
	round := func(radius float64) bool { return radius >= inner.Width/2 }
	if round(cr.TopLeft) {
		canvas.Set(r.x, r.y, transparent)
	}
	if round(cr.TopRight) {
		canvas.Set(r.x+r.w-1, r.y, transparent)
	}
	if round(cr.BottomLeft) {
		canvas.Set(r.x, r.y+r.h-1, transparent)
	}
	if round(cr.BottomRight) {
		canvas.Set(r.x+r.w-1, r.y+r.h-1, transparent)
	}
}

// paintShadow draws a flat drop shadow one cell down and right. Small
// offsets use half blocks.
func paintShadow(canvas *canvasBuf, r rect, fx *widget.Shadow) {
	if fx == nil || r.w == 0 || r.h == 0 {
		return
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex6(fx.Color))).
		Background(lipgloss.Color(canvasBackground))

	if fx.Offset.X >= 2 {
		full := st.Render("█")
		for y := r.y + 1; y <= r.y+r.h; y++ {
			canvas.Set(r.x+r.w, y, full)
		}
		for x := r.x + 1; x <= r.x+r.w; x++ {
			canvas.Set(x, r.y+r.h, full)
		}
		return
	}

	side := st.Render("▌")
	under := st.Render("▀")
	for y := r.y + 1; y < r.y+r.h; y++ {
		canvas.Set(r.x+r.w, y, side)
	}
	for x := r.x + 1; x < r.x+r.w; x++ {
		canvas.Set(x, r.y+r.h, under)
	}
	canvas.Set(r.x+r.w, r.y+r.h, st.Render("▘"))
}

func paintBox(canvas *canvasBuf, r rect, frame *widget.Node) {
	fillStyle := lipgloss.NewStyle().Background(lipgloss.Color(hex6(frame.Fill)))
	fill := fillStyle.Render(" ")
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			canvas.Set(x, y, fill)
		}
	}

	b := lipgloss.RoundedBorder()
	if frame.StrokeWidth >= 2 {
		b = lipgloss.ThickBorder()
	}
	st := fillStyle.Foreground(lipgloss.Color(hex6(frame.Stroke)))

	x0, y0 := r.x, r.y
	x1, y1 := r.x+r.w-1, r.y+r.h-1
	for x := x0 + 1; x < x1; x++ {
		canvas.Set(x, y0, st.Render(b.Top))
		canvas.Set(x, y1, st.Render(b.Bottom))
	}
	for y := y0 + 1; y < y1; y++ {
		canvas.Set(x0, y, st.Render(b.Left))
		canvas.Set(x1, y, st.Render(b.Right))
	}
	canvas.Set(x0, y0, st.Render(b.TopLeft))
	canvas.Set(x1, y0, st.Render(b.TopRight))
	canvas.Set(x0, y1, st.Render(b.BottomLeft))
	// The bottom-right corner stays square, like the badge's speech tail.
	corner := b.BottomRight
	if frame.StrokeWidth < 2 {
		corner = lipgloss.NormalBorder().BottomRight
	}
	canvas.Set(x1, y1, st.Render(corner))
}

// blend composites top over base at the given opacity.
func blend(base, top string, opacity float64) string {
	b, err := colorful.Hex(hex6(base))
	if err != nil {
		return hex6(top)
	}
	t, err := colorful.Hex(hex6(top))
	if err != nil {
		return hex6(top)
	}
	return b.BlendRgb(t, opacity).Clamped().Hex()
}

// hex6 expands "#abc" to "#aabbcc".
func hex6(c string) string {
	if len(c) == 4 && c[0] == '#' {
		return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	return c
}
