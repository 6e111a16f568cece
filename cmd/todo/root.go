package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// exitError carries a non-zero exit code out of a command.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// rootFlags apply to every subcommand and override the config file.
type rootFlags struct {
	config string
	filter string
	sort   string
	theme  string
}

type session struct {
	cfg    *config.Config
	store  *store.Store
	log    *log.Logger
	closer io.Closer
}

func (s *session) Close() error { return s.closer.Close() }

// open loads config, applies flag overrides and builds a fresh store.
func (f *rootFlags) open(logFallback io.Writer) (*session, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	if f.filter != "" {
		cfg.Filter = f.filter
	}
	if f.sort != "" {
		cfg.Sort = f.sort
	}
	if f.theme != "" {
		cfg.Theme = f.theme
	}
	filter, sort, err := cfg.Modes()
	if err != nil {
		return nil, err
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return nil, err
	}

	logger, closer, err := logging.FromConfig(cfg.Log, logFallback)
	if err != nil {
		return nil, err
	}
	logger.Debug("session started", "filter", filter.String(), "sort", sort.String(), "theme", cfg.Theme)

	return &session{
		cfg:    cfg,
		store:  store.New(store.WithLogger(logger), store.WithModes(filter, sort)),
		log:    logger,
		closer: closer,
	}, nil
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:           "todo",
		Short:         "A single-session to-do list",
		Long:          "todo keeps a to-do list in memory for one session: add, toggle, delete, filter and sort items.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal, so logs only go to a file.
			sess, err := f.open(nil)
			if err != nil {
				return err
			}
			defer sess.Close()
			return tui.Run(tui.New(sess.store, sess.cfg.Keys, sess.log))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.yaml)")
	pf.StringVar(&f.filter, "filter", "", "initial filter: all, completed, active, due")
	pf.StringVar(&f.sort, "sort", "", "initial sort: added, due")
	pf.StringVar(&f.theme, "theme", "", "theme: "+fmt.Sprint(ui.Themes))

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(newBatchCmd(&f))
	return root
}

func newBatchCmd(f *rootFlags) *cobra.Command {
	var opt cli.Options

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Apply intent lines from a file or stdin and print the views",
		Long:  "batch reads one intent per line (add, done, rm, filter, sort, ls) from file, or stdin when file is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := f.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			src := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open intents: %w", err)
				}
				defer file.Close()
				src = file
			}

			r := cli.NewRunner(sess.store, cmd.OutOrStdout(), cmd.ErrOrStderr(), opt)
			if code := r.Run(src); code != cli.ExitOK {
				return exitError(code)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opt.Group, "group", false, "group output by pending/done")
	return cmd
}
