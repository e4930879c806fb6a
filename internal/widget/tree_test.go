package widget

import (
	"testing"

	"github.com/fchimpan/sticky/internal/palette"
)

func TestRender_Structure(t *testing.T) {
	t.Parallel()

	root := New(DefaultState()).Render()
	if root.Kind != KindFrame || root.Name != NodeWidget || root.Width != 50 || root.Height != 50 || root.Overflow != "visible" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children))
	}
	kinds := []Kind{KindInput, KindRectangle, KindRectangle}
	names := []string{NodeInput, NodeOuter, NodeInner}
	for i, c := range root.Children {
		if c.Kind != kinds[i] || c.Name != names[i] {
			t.Fatalf("child %d: kind=%s name=%s", i, c.Kind, c.Name)
		}
	}
}

func TestRender_Input(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	st.Text = "hello"
	m := New(st)

	in, ok := m.Render().Find(NodeInput)
	if !ok {
		t.Fatalf("input node missing")
	}
	if in.Value != "hello" || in.X != 50 || in.Y != 50 || in.Width != 400 || in.FontSize != 16 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.OnTextEditEnd != HandlerCommitText {
		t.Fatalf("input must report edit end")
	}
	f := in.InputFrame
	if f == nil || f.Hidden || f.Padding != 20 || f.StrokeWidth != 2 || f.Fill != palette.White {
		t.Fatalf("unexpected input frame: %+v", f)
	}
	if !uniform(*f.CornerRadius) || f.CornerRadius.TopLeft != 5 {
		t.Fatalf("input frame radius: %+v", f.CornerRadius)
	}

	m.ToggleOpen()
	in, _ = m.Render().Find(NodeInput)
	if !in.InputFrame.Hidden {
		t.Fatalf("input frame should be hidden when closed")
	}
}

func TestRender_Badges(t *testing.T) {
	t.Parallel()

	m := New(DefaultState())
	m.ApplyMenuSelection(PropertyMode, nil)
	root := m.Render()

	outer, _ := root.Find(NodeOuter)
	inner, _ := root.Find(NodeInner)
	if outer.Fill != palette.Black || outer.Effect == nil {
		t.Fatalf("outer badge: %+v", outer)
	}
	if inner.Fill != "#FFC82D" || inner.Effect != nil {
		t.Fatalf("inner badge: %+v", inner)
	}
	if inner.OnClick != HandlerToggleOpen || inner.HoverStyle == nil || inner.HoverStyle.Opacity != 0.7 {
		t.Fatalf("inner badge must toggle on click and fade on hover: %+v", inner)
	}
	if outer.CornerRadius.BottomRight != 5 || inner.CornerRadius.BottomRight != 5 {
		t.Fatalf("open badges should have the cut corner")
	}

	// Mutating a rendered tree must not leak into the next render.
	inner.CornerRadius.TopLeft = 0
	again, _ := m.Render().Find(NodeInner)
	if again.CornerRadius.TopLeft != 50 {
		t.Fatalf("render tree shares state between calls")
	}
}

func TestWalk_Stops(t *testing.T) {
	t.Parallel()

	root := New(DefaultState()).Render()
	var seen []string
	root.Walk(func(n Node) bool {
		seen = append(seen, n.Name)
		return n.Name != NodeOuter
	})
	if len(seen) != 3 || seen[2] != NodeOuter {
		t.Fatalf("unexpected walk order: %v", seen)
	}
	if _, ok := root.Find("missing"); ok {
		t.Fatalf("Find should report missing nodes")
	}
}
