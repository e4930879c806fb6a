// Package widget implements the sticky-note presentation state machine.
//
// A Machine owns the five persisted slots of one note, derives every
// rendering parameter from them and applies the events a host forwards from
// its pointer, text-edit and property-menu surfaces. Persistence is left to
// the host: after each mutation the Machine hands the new State to its Host.
//
// No operation returns an error. Unknown events and out-of-range menu values
// are no-ops.
package widget

import (
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/fchimpan/sticky/internal/palette"
)

// Host receives every committed state. It is where durability and
// cross-client broadcast live.
type Host interface {
	Commit(State)
}

// HostFunc adapts a plain function to Host.
type HostFunc func(State)

func (f HostFunc) Commit(s State) { f(s) }

type Option func(*Machine)

func WithHost(h Host) Option {
	return func(m *Machine) { m.host = h }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// Machine is not safe for concurrent use; hosts call it serially.
type Machine struct {
	state  State
	host   Host
	logger *log.Logger
}

func New(initial State, opts ...Option) *Machine {
	m := &Machine{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = m.normalize(initial)
	return m
}

func (m *Machine) State() State { return m.state }

// Geometry returns the rendering parameters for the current state.
func (m *Machine) Geometry() Geometry { return Derive(m.state) }

// ToggleOpen flips between the badge and the expanded note.
func (m *Machine) ToggleOpen() {
	m.state.Open = !m.state.Open
	m.logger.Debug("toggle open", "open", m.state.Open)
	m.commit()
}

// CommitText stores the trimmed result of a finished edit.
// Whether editing is possible at all (the note must be open) is up to the host.
func (m *Machine) CommitText(raw string) {
	m.state.Text = strings.TrimFunc(raw, isEdgeSpace)
	m.logger.Debug("commit text", "len", len(m.state.Text))
	m.commit()
}

// ApplyMenuSelection handles one property-menu callback. value is nil when
// the menu entry carries no value. It reports whether the state changed.
func (m *Machine) ApplyMenuSelection(name string, value *string) bool {
	switch name {
	case PropertyColor:
		if value == nil || *value == "" {
			return false
		}
		c, ok := palette.Parse(*value)
		if !ok {
			m.logger.Warn("ignoring color outside palette", "value", *value)
			return false
		}
		m.state.Color = c
	case PropertySize:
		if value == nil || *value == "" {
			return false
		}
		sz, ok := palette.ParseSize(*value)
		if !ok {
			m.logger.Warn("ignoring unknown size tier", "value", *value)
			return false
		}
		m.state.Size = sz
	case PropertyMode:
		m.state.Mode = !m.state.Mode
	default:
		m.logger.Debug("ignoring unknown menu property", "name", name)
		return false
	}
	m.logger.Debug("menu selection", "name", name, "color", m.state.Color, "size", int(m.state.Size), "mode", m.state.Mode)
	m.commit()
	return true
}

// ApplyMenuEvent is ApplyMenuSelection for a decoded MenuEvent.
func (m *Machine) ApplyMenuEvent(ev MenuEvent) bool {
	return m.ApplyMenuSelection(ev.PropertyName, ev.PropertyValue)
}

// Replace installs a state written elsewhere (another client, or the store on
// reload). The host is the origin of that write, so it is not notified.
func (m *Machine) Replace(s State) {
	m.state = m.normalize(s)
}

// Dispatch routes a handler named in the render tree back into the machine.
func (m *Machine) Dispatch(h Handler, payload string) {
	switch h {
	case HandlerToggleOpen:
		m.ToggleOpen()
	case HandlerCommitText:
		m.CommitText(payload)
	case HandlerNone:
	default:
		m.logger.Debug("ignoring unknown handler", "handler", string(h))
	}
}

// isEdgeSpace is the whitespace set trimmed from committed text: Unicode
// White_Space plus the byte order mark, but not NEL (U+0085), which editors
// may keep as content.
func isEdgeSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func (m *Machine) normalize(s State) State {
	n, fixed := s.Normalize()
	if fixed {
		m.logger.Warn("replaced invalid stored values with defaults",
			"color", s.Color, "size", int(s.Size))
	}
	return n
}

func (m *Machine) commit() {
	if m.host != nil {
		m.host.Commit(m.state)
	}
}
