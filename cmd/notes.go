package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fchimpan/sticky/internal/store"
	"github.com/fchimpan/sticky/internal/widget"
)

func newListCmd(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, deps, *opts)
			if err != nil {
				return withHint(deps, err)
			}
			defer e.close()

			entries, err := e.store.List(e.ctx)
			if err != nil {
				return withHint(deps, err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(deps.Stdout, "no notes")
				return nil
			}
			for _, en := range entries {
				fmt.Fprintln(deps.Stdout, listLine(en))
			}
			return nil
		},
	}
}

func listLine(en store.Entry) string {
	st := en.State
	open := "closed"
	if st.Open {
		open = "open"
	}
	first, _, _ := strings.Cut(st.Text, "\n")
	first = runewidth.Truncate(first, 40, "…")
	return fmt.Sprintf("%-36s  %-7s  %-11s  %-6s  %s", en.ID, st.Color, st.Size.Label(), open, first)
}

func newRenderCmd(deps Deps, opts *rootOptions) *cobra.Command {
	var menu bool
	c := &cobra.Command{
		Use:   "render",
		Short: "Print a note's render tree as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, deps, *opts)
			if err != nil {
				return withHint(deps, err)
			}
			defer e.close()

			_, st, _, err := store.Resolve(e.ctx, e.store, e.id)
			if err != nil {
				return withHint(deps, fmt.Errorf("failed to load note: %w", err))
			}
			m := widget.New(st, widget.WithLogger(e.logger))

			enc := yaml.NewEncoder(deps.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			if menu {
				return enc.Encode(m.MenuSchema())
			}
			return enc.Encode(m.Render())
		},
	}
	c.Flags().BoolVar(&menu, "menu", false, "print the property menu instead of the tree")
	return c
}

func newSetCmd(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <color|size|mode> [value]",
		Short: "Change a note property without opening the UI",
		Long: "Apply one property menu selection to a note and save it.\n" +
			"color takes a palette hex value, size one of 25, 50, 75; mode takes no value and flips dark mode.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value *string
			if len(args) == 2 {
				value = widget.Value(args[1])
			}
			return withHint(deps, edit(cmd, deps, *opts, func(m *widget.Machine) error {
				if !m.ApplyMenuSelection(args[0], value) {
					if value == nil {
						return fmt.Errorf("cannot set %s without a value", args[0])
					}
					return fmt.Errorf("cannot set %s to %q", args[0], *value)
				}
				return nil
			}))
		},
	}
}

func newToggleCmd(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Open or close a note without opening the UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHint(deps, edit(cmd, deps, *opts, func(m *widget.Machine) error {
				m.ToggleOpen()
				return nil
			}))
		},
	}
}

// edit loads a note, applies fn and saves whatever fn committed.
func edit(cmd *cobra.Command, deps Deps, opts rootOptions, fn func(*widget.Machine) error) error {
	e, err := setup(cmd, deps, opts)
	if err != nil {
		return err
	}
	defer e.close()

	id, st, _, err := store.Resolve(e.ctx, e.store, e.id)
	if err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}

	var saveErr error
	m := widget.New(st,
		widget.WithLogger(e.logger),
		widget.WithHost(widget.HostFunc(func(s widget.State) {
			saveErr = e.store.Save(e.ctx, id, s)
		})),
	)
	if err := fn(m); err != nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("failed to save note: %w", saveErr)
	}

	next := m.State()
	open := "closed"
	if next.Open {
		open = "open"
	}
	fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", id, next.Color, next.Size.Label(), open)
	return nil
}
