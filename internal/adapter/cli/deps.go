// Package cli is the command dispatcher: a cobra command tree that prompts,
// calls the journal services and renders the results.
package cli

import (
	"context"
	"io"

	"go.uber.org/zap"

	"vibematrix/internal/app"
	"vibematrix/internal/config"
)

// CommitReader returns the latest commit message of the working repository.
type CommitReader interface {
	LastCommitMessage(ctx context.Context) (string, error)
}

// Options are the global flags, resolved before any command runs.
type Options struct {
	ConfigPath string
	DataDir    string
	Fast       bool
	Silent     bool
	Verbose    bool
	In         io.Reader
	Out        io.Writer
}

// Deps are the collaborators a command runs against.
type Deps struct {
	Config    *config.Config
	Journal   *app.JournalService
	Schedules *app.ScheduleService
	Runner    *app.Runner
	Clock     app.Clock
	Prompter  Prompter
	Git       CommitReader
	Logger    *zap.Logger

	// WatchPath is the file the serve command watches for changes; empty
	// when the store is not file-backed.
	WatchPath string

	Close func() error
}

// overrides maps the global flags onto config keys. Unset flags are left
// out so file and environment values apply.
func (o Options) overrides() map[string]any {
	m := map[string]any{}
	if o.DataDir != "" {
		m["data_dir"] = o.DataDir
	}
	if o.Fast {
		m["fast"] = true
	}
	if o.Silent {
		m["silent"] = true
	}
	return m
}

// Factory builds Deps for one invocation.
type Factory func(ctx context.Context, opts Options) (*Deps, error)
