package cli

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what a command body sees: the wired dependencies and a printer
// bound to the command's output.
type env struct {
	*Deps
	p *Printer
}

type commandFunc func(ctx context.Context, e *env, args []string) error

type root struct {
	factory Factory
	opts    Options
}

// NewRootCommand builds the command tree. Running it without a subcommand
// logs a mood.
func NewRootCommand(factory Factory) *cobra.Command {
	r := &root{factory: factory}

	cmd := &cobra.Command{
		Use:   "vibematrix",
		Short: "Track, decode and elevate your mood",
		Long: `VibeMatrix is a mood journal for the terminal.

Run it with no command to log how you feel. Entries are kept in
~/.vibematrix.json and summarized by the commands below.

Config: ~/.vibematrix/config.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:         r.run(runLog),
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&r.opts.Fast, "fast", false, "skip the banner and confetti")
	flags.BoolVar(&r.opts.Silent, "silent", false, "skip quotes and encouragement")
	flags.StringVar(&r.opts.ConfigPath, "config", "", "config file (default ~/.vibematrix/config.yaml)")
	flags.StringVar(&r.opts.DataDir, "data-dir", "", "directory holding the mood log and schedule")
	flags.BoolVarP(&r.opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		r.statsCmd(),
		r.dashboardCmd(),
		r.streakCmd(),
		r.historyCmd(),
		r.gitCmd(),
		r.remindCmd(),
		r.loopCmd(),
		r.scheduleCmd(),
		r.moodCmd(),
		r.autoCmd(),
		r.serveCmd(),
		r.exportCmd(),
		r.configCmd(),
	)
	return cmd
}

// run adapts a commandFunc to cobra: it builds the dependencies, runs fn
// and releases them.
func (r *root) run(fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts := r.opts
		opts.In = cmd.InOrStdin()
		opts.Out = cmd.OutOrStdout()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		deps, err := r.factory(ctx, opts)
		if err != nil {
			return err
		}
		defer func() {
			if deps.Close == nil {
				return
			}
			if err := deps.Close(); err != nil {
				deps.Logger.Warn("close store", zap.Error(err))
			}
		}()

		e := &env{
			Deps: deps,
			p: &Printer{
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				theme:  NewTheme(cmd.OutOrStdout()),
				fast:   deps.Config.Fast,
				silent: deps.Config.Silent,
				intn:   rand.IntN,
			},
		}
		return fn(ctx, e, args)
	}
}

// quiet maps a user interrupt or a dismissed prompt to a clean exit.
func quiet(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}
