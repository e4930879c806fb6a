package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fchimpan/sticky/internal/config"
	"github.com/fchimpan/sticky/internal/logging"
	"github.com/fchimpan/sticky/internal/store"
	"github.com/fchimpan/sticky/internal/widget"
)

// Session is everything the interactive host needs to show one note.
type Session struct {
	ID      string
	Initial widget.State
	Store   store.Store
	Mouse   bool
	Logger  *log.Logger
}

type Deps struct {
	LoadConfig func() (*config.Config, error)
	OpenStore  func(path string, ephemeral bool) (store.Store, error)
	OpenLog    func(path string) (io.WriteCloser, error)
	RunTUI     func(ctx context.Context, s Session) error
	Stdout     io.Writer
	Stderr     io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		OpenStore:  openStore,
		OpenLog:    openLog,
		RunTUI:     defaultRunTUI,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

type rootOptions struct {
	statePath string
	id        string
	ephemeral bool
	verbose   bool
	logFile   string
	noMouse   bool
}

// env is the resolved configuration shared by every subcommand.
type env struct {
	ctx    context.Context
	store  store.Store
	logger *log.Logger
	mouse  bool
	id     string
	close  func()
}

func NewRootCmd(deps Deps) *cobra.Command {
	var opts rootOptions

	c := &cobra.Command{
		Use:          "sticky",
		Short:        "A sticky note badge for your terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, deps, opts)
			if err != nil {
				return withHint(deps, err)
			}
			defer e.close()
			return withHint(deps, run(e.ctx, deps, e))
		},
	}

	pf := c.PersistentFlags()
	pf.StringVar(&opts.statePath, "state", "", "state file (default from config, or the user data dir)")
	pf.StringVar(&opts.id, "id", "", "note instance id (default: most recently updated note)")
	pf.BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse support")

	c.AddCommand(
		newListCmd(deps, &opts),
		newRenderCmd(deps, &opts),
		newSetCmd(deps, &opts),
		newToggleCmd(deps, &opts),
	)

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}

// setup layers flags over the config file and opens the log and the store.
func setup(cmd *cobra.Command, deps Deps, opts rootOptions) (*env, error) {
	if deps.LoadConfig == nil {
		return nil, fmt.Errorf("deps.LoadConfig is nil")
	}
	if deps.OpenStore == nil {
		return nil, fmt.Errorf("deps.OpenStore is nil")
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, err
	}
	statePath := cfg.StatePath
	if opts.statePath != "" {
		statePath = opts.statePath
	}
	logFile := cfg.LogFile
	if opts.logFile != "" {
		logFile = opts.logFile
	}

	e := &env{
		mouse: cfg.MouseEnabled() && !opts.noMouse,
		id:    opts.id,
		close: func() {},
	}

	var logOut io.Writer
	if logFile != "" && deps.OpenLog != nil {
		w, err := deps.OpenLog(logFile)
		if err != nil {
			return nil, err
		}
		logOut = w
		e.close = func() { _ = w.Close() }
	}
	e.logger = logging.New(logOut, opts.verbose)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e.ctx = logging.WithLogger(ctx, e.logger)

	s, err := deps.OpenStore(statePath, opts.ephemeral)
	if err != nil {
		e.close()
		return nil, err
	}
	e.store = s
	e.logger.Debug("store opened", "path", statePath, "ephemeral", opts.ephemeral)
	return e, nil
}

func withHint(deps Deps, err error) error {
	if err != nil && store.IsDecodeError(err) {
		fmt.Fprintln(deps.Stderr, "hint: the state file is not valid YAML; fix it or point --state elsewhere")
	}
	return err
}

func openStore(path string, ephemeral bool) (store.Store, error) {
	if ephemeral {
		return store.NewMemoryStore(), nil
	}
	if path == "" {
		return nil, fmt.Errorf("no state file path")
	}
	return store.NewFileStore(path), nil
}

func openLog(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
