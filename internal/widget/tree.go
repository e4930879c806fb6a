package widget

// Kind names a drawable primitive the host knows how to paint.
type Kind string

const (
	KindFrame     Kind = "frame"
	KindInput     Kind = "input"
	KindRectangle Kind = "rectangle"
)

// Handler names an event binding in the render tree. Hosts pass it back to
// Machine.Dispatch; the tree itself holds no closures.
type Handler string

const (
	HandlerNone       Handler = ""
	HandlerToggleOpen Handler = "toggle-open"
	HandlerCommitText Handler = "commit-text"
)

// Node names used by Render.
const (
	NodeWidget = "Widget"
	NodeInput  = "Input"
	NodeOuter  = "Outer"
	NodeInner  = "Inner"
)

const inputPlaceholder = "...start typing (shift+enter for a new line)"

type HoverStyle struct {
	Opacity float64 `yaml:"opacity"`
}

// Node is an immutable description of one primitive and its children.
type Node struct {
	Kind     Kind    `yaml:"kind"`
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height,omitempty"`
	Overflow string  `yaml:"overflow,omitempty"`
	Hidden   bool    `yaml:"hidden,omitempty"`

	Fill         string        `yaml:"fill,omitempty"`
	Stroke       string        `yaml:"stroke,omitempty"`
	StrokeWidth  float64       `yaml:"strokeWidth,omitempty"`
	CornerRadius *CornerRadius `yaml:"cornerRadius,omitempty"`
	Effect       *Shadow       `yaml:"effect,omitempty"`
	Padding      float64       `yaml:"padding,omitempty"`
	HAlign       string        `yaml:"horizontalAlignItems,omitempty"`
	VAlign       string        `yaml:"verticalAlignItems,omitempty"`
	HoverStyle   *HoverStyle   `yaml:"hoverStyle,omitempty"`

	// Text input only.
	Value       string  `yaml:"value,omitempty"`
	Placeholder string  `yaml:"placeholder,omitempty"`
	FontSize    float64 `yaml:"fontSize,omitempty"`
	FontWeight  string  `yaml:"fontWeight,omitempty"`
	InputFrame  *Node   `yaml:"inputFrameProps,omitempty"`

	OnClick       Handler `yaml:"onClick,omitempty"`
	OnTextEditEnd Handler `yaml:"onTextEditEnd,omitempty"`

	Children []Node `yaml:"children,omitempty"`
}

// Walk visits n and its descendants depth-first. Returning false from fn
// stops the walk.
func (n Node) Walk(fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node named name.
func (n Node) Find(name string) (Node, bool) {
	var found Node
	ok := false
	n.Walk(func(c Node) bool {
		if c.Name == name {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

// Render builds the tree for the current state.
func (m *Machine) Render() Node {
	return render(m.state)
}

func render(s State) Node {
	g := Derive(s)
	size := float64(s.Size)

	shadow := g.Shadow
	radius := g.CornerRadius
	inputRadius := CornerRadius{
		TopLeft:     g.StrokeWidth,
		TopRight:    g.StrokeWidth,
		BottomLeft:  g.StrokeWidth,
		BottomRight: g.StrokeWidth,
	}

	input := Node{
		Kind:        KindInput,
		Name:        NodeInput,
		X:           size,
		Y:           size,
		Width:       g.InputWidth,
		Fill:        g.InputTextColor,
		Value:       s.Text,
		Placeholder: inputPlaceholder,
		FontSize:    g.FontSize,
		FontWeight:  "normal",
		InputFrame: &Node{
			Kind:         KindFrame,
			Name:         "InputFrame",
			CornerRadius: &inputRadius,
			Effect:       &shadow,
			Fill:         g.InputFill,
			Hidden:       !s.Open,
			HAlign:       "center",
			VAlign:       "center",
			Overflow:     "visible",
			Padding:      g.Padding,
			Stroke:       "#000",
			StrokeWidth:  g.UniqueStroke,
		},
		OnTextEditEnd: HandlerCommitText,
	}

	outerRadius := radius
	outer := Node{
		Kind:         KindRectangle,
		Name:         NodeOuter,
		Width:        size,
		Height:       size,
		CornerRadius: &outerRadius,
		Effect:       &shadow,
		Fill:         g.OuterFill,
		Stroke:       "#000",
		StrokeWidth:  g.UniqueStroke,
	}

	innerRadius := radius
	inner := Node{
		Kind:         KindRectangle,
		Name:         NodeInner,
		Width:        size,
		Height:       size,
		CornerRadius: &innerRadius,
		Fill:         g.InnerFill,
		HoverStyle:   &HoverStyle{Opacity: g.HoverOpacity},
		OnClick:      HandlerToggleOpen,
		Stroke:       "#000",
		StrokeWidth:  g.UniqueStroke,
	}

	return Node{
		Kind:     KindFrame,
		Name:     NodeWidget,
		Width:    size,
		Height:   size,
		Overflow: "visible",
		Children: []Node{input, outer, inner},
	}
}
