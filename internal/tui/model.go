// Package tui hosts one sticky note in the terminal: it draws the widget's
// render tree, turns clicks and keys into widget events and persists every
// commit.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fchimpan/sticky/internal/widget"
)

// ExternalStateMsg carries a state written by another client.
type ExternalStateMsg struct {
	State widget.State
}

// Screen rows above the canvas: header, menu bar, blank.
const (
	menuRow   = 1
	canvasTop = 3
	leftPad   = "  "
)

type Model struct {
	id      string
	machine *widget.Machine
	save    func(widget.State) error
	logger  *log.Logger

	ready bool
	w     int
	h     int

	hover     bool
	menuFocus int
	editing   bool
	editor    textarea.Model
	status    string

	// Layout of the last View, for hit-testing.
	scene scene
	hits  []menuHit

	viewBuf bytes.Buffer
	canvas  canvasBuf
}

// NewModel hosts a note with the given initial state. save is called after
// every committed change; it may be nil.
func NewModel(id string, initial widget.State, save func(widget.State) error, logger *log.Logger) *Model {
	m := &Model{
		id:     id,
		save:   save,
		logger: logger,
	}
	opts := []widget.Option{widget.WithHost(widget.HostFunc(m.persist))}
	if logger != nil {
		opts = append(opts, widget.WithLogger(logger))
	}
	m.machine = widget.New(initial, opts...)
	m.editor = newEditor()
	return m
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return ta
}

// State exposes the hosted note's current state.
func (m *Model) State() widget.State { return m.machine.State() }

func (m *Model) persist(s widget.State) {
	if m.save == nil {
		return
	}
	if err := m.save(s); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		if m.logger != nil {
			m.logger.Error("save failed", "id", m.id, "error", err)
		}
		return
	}
	m.status = ""
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.ready = true
		return m, nil
	case ExternalStateMsg:
		m.machine.Replace(msg.State)
		m.clampFocus()
		if !m.machine.State().Open && m.editing {
			m.stopEditing(false)
		}
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if m.editing {
			return m, m.handleEditKey(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	items := m.machine.MenuSchema()
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case " ", "space":
		m.machine.Dispatch(m.badgeClick(), "")
		m.clampFocus()
	case "e":
		if m.machine.State().Open {
			return m.startEditing()
		}
	case "tab":
		if len(items) > 0 {
			m.menuFocus = (m.menuFocus + 1) % len(items)
		}
	case "shift+tab":
		if len(items) > 0 {
			m.menuFocus = (m.menuFocus - 1 + len(items)) % len(items)
		}
	case "left", "h":
		m.cycleFocused(items, -1)
	case "right", "l":
		m.cycleFocused(items, 1)
	case "enter":
		if m.menuFocus < len(items) {
			if ev, ok := activate(items[m.menuFocus]); ok {
				m.machine.ApplyMenuEvent(ev)
			}
		}
	case "c":
		m.cycleProperty(items, widget.PropertyColor)
	case "s":
		m.cycleProperty(items, widget.PropertySize)
	case "m":
		m.cycleProperty(items, widget.PropertyMode)
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.stopEditing(true)
		return tea.Quit
	case "esc", "ctrl+s":
		m.stopEditing(true)
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) startEditing() tea.Cmd {
	m.editing = true
	m.editor.SetValue(m.machine.State().Text)
	return m.editor.Focus()
}

// stopEditing ends the edit session; commit reports the final text to the
// note's edit-end handler.
func (m *Model) stopEditing(commit bool) {
	m.editing = false
	m.editor.Blur()
	if !commit {
		return
	}
	in, ok := m.machine.Render().Find(widget.NodeInput)
	if !ok {
		return
	}
	m.machine.Dispatch(in.OnTextEditEnd, m.editor.Value())
}

func (m *Model) badgeClick() widget.Handler {
	inner, ok := m.machine.Render().Find(widget.NodeInner)
	if !ok {
		return widget.HandlerNone
	}
	return inner.OnClick
}

func (m *Model) cycleFocused(items []widget.MenuItem, delta int) {
	if m.menuFocus >= len(items) {
		return
	}
	if ev, ok := cycleOption(items[m.menuFocus], delta); ok {
		m.machine.ApplyMenuEvent(ev)
	}
}

func (m *Model) cycleProperty(items []widget.MenuItem, name string) {
	for i, item := range items {
		if item.PropertyName != name {
			continue
		}
		m.menuFocus = i
		if ev, ok := activate(item); ok {
			m.machine.ApplyMenuEvent(ev)
		}
		return
	}
}

func (m *Model) clampFocus() {
	n := len(m.machine.MenuSchema())
	if m.menuFocus >= n {
		m.menuFocus = 0
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	cx := msg.X - len(leftPad)
	cy := msg.Y - canvasTop
	overBadge := m.scene.badge.contains(cx, cy)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.hover = overBadge
		return nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
	default:
		return nil
	}

	if m.editing {
		// Clicking anywhere outside the text area ends the edit.
		if m.scene.content.contains(cx, cy) {
			return nil
		}
		m.stopEditing(true)
	}

	switch {
	case overBadge:
		m.machine.Dispatch(m.badgeClick(), "")
		m.clampFocus()
	case m.scene.box.contains(cx, cy):
		return m.startEditing()
	case msg.Y == menuRow:
		for _, h := range m.hits {
			if msg.X >= h.x0 && msg.X < h.x1 {
				m.menuFocus = h.item
				m.machine.ApplyMenuEvent(h.event)
				break
			}
		}
	}
	return nil
}

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}

	m.viewBuf.Reset()
	b := &m.viewBuf

	b.WriteString(leftPad)
	b.WriteString(renderHeader(m.id, m.machine.State(), m.status))
	b.WriteByte('\n')

	menu, hits := renderMenu(m.machine.MenuSchema(), m.menuFocus, len(leftPad))
	m.hits = hits
	if menu != "" {
		b.WriteString(leftPad)
		b.WriteString(menu)
	}
	b.WriteString("\n\n")

	opts := paintOpts{maxW: m.w - len(leftPad), hover: m.hover}
	if m.editing {
		opts.editor = m.editorRows()
	}
	m.scene = paintWidget(&m.canvas, m.machine.Render(), opts)
	m.canvas.WriteTo(b, leftPad)

	b.WriteByte('\n')
	b.WriteString(leftPad)
	b.WriteString(renderHelp(m.machine.State().Open, m.editing))
	b.WriteByte('\n')
	return b.String()
}

// editorRows sizes the textarea to the input surface and styles it with the
// surface colors.
func (m *Model) editorRows() []string {
	// Size against a text-free layout so the box does not grow with itself.
	probe := paintWidget(&canvasBuf{}, m.machine.Render(), paintOpts{maxW: m.w - len(leftPad), editor: []string{""}})
	width := max(probe.content.w, 1)
	lines := strings.Count(m.editor.Value(), "\n") + 1
	height := min(max(lines+1, 3), 12)

	g := m.machine.Geometry()
	surface := lipgloss.NewStyle().
		Background(lipgloss.Color(hex6(g.InputFill))).
		Foreground(lipgloss.Color(hex6(g.InputTextColor)))
	m.editor.FocusedStyle.Base = surface
	m.editor.FocusedStyle.Text = surface
	m.editor.FocusedStyle.CursorLine = surface
	m.editor.FocusedStyle.EndOfBuffer = surface
	m.editor.FocusedStyle.Placeholder = surface.Foreground(lipgloss.Color(placeholderColor))

	m.editor.SetWidth(width)
	m.editor.SetHeight(height)
	return strings.Split(m.editor.View(), "\n")
}

func renderHeader(id string, s widget.State, status string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	state := "closed"
	if s.Open {
		state = "open"
	}
	mode := "light"
	if s.Mode {
		mode = "dark"
	}
	sep := styleMenuDim.Render("  |  ")
	parts := []string{
		styleHeaderTitle.Render("sticky") + " " + styleMenuDim.Render(short),
		styleMenuLabel.Render("state ") + styleMenuValue.Render(state),
		styleMenuLabel.Render("size ") + styleMenuValue.Render(s.Size.Label()),
		styleMenuLabel.Render("mode ") + styleMenuValue.Render(mode),
	}
	out := strings.Join(parts, sep)
	if status != "" {
		out += sep + styleStatusErr.Render(status)
	}
	return out
}

func renderHelp(open, editing bool) string {
	switch {
	case editing:
		return styleMenuDim.Render("editing: esc/ctrl+s save, enter new line")
	case open:
		return styleMenuDim.Render("space/click badge close, e edit, tab focus menu, ←/→ change, enter apply, c/s/m color/size/mode, q quit")
	default:
		return styleMenuDim.Render("space/click badge open, q quit")
	}
}

var (
	styleHeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	styleStatusErr   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff7b72"))
)
