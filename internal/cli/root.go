// Package cli is the pocketkeeper command tree. Each subcommand stands in
// for one screen of the application and prints service notices instead of
// raw errors.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pocketkeeper/internal/app"
	"github.com/dmitrijs2005/pocketkeeper/internal/config"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
	"github.com/spf13/cobra"
)

// AppFactory builds the application for a resolved configuration.
type AppFactory func(ctx context.Context, cfg *config.Config) (*app.App, error)

// errReported marks an error whose notice was already printed.
var errReported = errors.New("reported")

type runner struct {
	newApp AppFactory
	app    *app.App

	configFile string
	dataDir    string
	backend    string
	logLevel   string
}

// NewRootCmd builds the command tree using app.New.
func NewRootCmd(version, buildDate string) *cobra.Command {
	return newRootCmd(version, buildDate, app.New)
}

func newRootCmd(version, buildDate string, factory AppFactory) *cobra.Command {
	r := &runner{newApp: factory}

	root := &cobra.Command{
		Use:               "pocketkeeper",
		Short:             "Notes, budgets, transactions, tasks and accounts in local JSON files",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.open,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&r.configFile, "config", "c", "", "JSON config file")
	pf.StringVarP(&r.dataDir, "data-dir", "d", "", "data directory")
	pf.StringVarP(&r.backend, "backend", "b", "", "storage backend (file|sqlite)")
	pf.StringVarP(&r.logLevel, "log-level", "l", "", "log level")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(r.notesCmd())
	root.AddCommand(r.budgetsCmd())
	root.AddCommand(r.txCmd())
	root.AddCommand(r.categoriesCmd())
	root.AddCommand(r.tasksCmd())
	root.AddCommand(r.credsCmd())
	root.AddCommand(r.lockCmd())
	root.AddCommand(r.onboardingCmd())
	root.AddCommand(r.timerCmd())
	root.AddCommand(r.backupCmd())
	root.AddCommand(r.watchCmd())

	r.closeAfterRun(root)
	return root
}

// closeAfterRun wraps every RunE so the app is closed whether or not the
// command succeeds. Cobra skips post-run hooks after a failed RunE.
func (r *runner) closeAfterRun(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		r.closeAfterRun(c)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if cerr := r.close(); err == nil {
			err = cerr
		}
		return err
	}
}

func newVersionCmd(version, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		// version needs no data directory
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pocketkeeper %s (%s)\n", version, buildDate)
		},
	}
}

// configArgs turns the root flags back into the argument form understood by
// config.Load so that defaults, JSON and flags keep one precedence order.
func (r *runner) configArgs() []string {
	var args []string
	add := func(name, v string) {
		if v != "" {
			args = append(args, "-"+name, v)
		}
	}
	add("c", r.configFile)
	add("d", r.dataDir)
	add("b", r.backend)
	add("l", r.logLevel)
	return args
}

func (r *runner) open(cmd *cobra.Command, args []string) error {
	if r.app != nil {
		return nil
	}
	cfg := config.Load(r.configArgs())
	a, err := r.newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	r.app = a
	return nil
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// report prints err as a notice and returns errReported so the command
// exits non-zero without printing err again.
func (r *runner) report(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	printNotice(cmd.ErrOrStderr(), services.NoticeFromError(err))
	return errReported
}

// IsReported tells main whether err has already been shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}
