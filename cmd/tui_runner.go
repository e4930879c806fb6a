package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/sticky/internal/store"
	"github.com/fchimpan/sticky/internal/tui"
	"github.com/fchimpan/sticky/internal/widget"
)

// watcher is implemented by stores that can report writes by other clients.
type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

func defaultRunTUI(ctx context.Context, s Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	save := func(st widget.State) error {
		return s.Store.Save(ctx, s.ID, st)
	}
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if s.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(tui.NewModel(s.ID, s.Initial, save, s.Logger), opts...)

	if w, ok := s.Store.(watcher); ok {
		err := w.Watch(ctx, func() {
			st, err := s.Store.Load(ctx, s.ID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					s.Logger.Warn("reload failed", "id", s.ID, "error", err)
				}
				return
			}
			p.Send(tui.ExternalStateMsg{State: st})
		})
		if err != nil {
			// The note still works, it just will not follow other clients.
			s.Logger.Warn("watch disabled", "error", err)
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
