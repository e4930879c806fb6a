package cmd

import (
	"context"
	"fmt"

	"github.com/fchimpan/sticky/internal/store"
)

func run(ctx context.Context, deps Deps, e *env) error {
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if e == nil || e.store == nil {
		return fmt.Errorf("store is not open")
	}

	id, st, created, err := store.Resolve(ctx, e.store, e.id)
	if err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}
	if created {
		e.logger.Info("new note", "id", id)
	} else {
		e.logger.Info("opening note", "id", id)
	}

	return deps.RunTUI(ctx, Session{
		ID:      id,
		Initial: st,
		Store:   e.store,
		Mouse:   e.mouse,
		Logger:  e.logger,
	})
}
