package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"vibematrix/internal/adapter/gitlog"
	"vibematrix/internal/adapter/jsonfile"
	"vibematrix/internal/adapter/memory"
	"vibematrix/internal/adapter/notify"
	"vibematrix/internal/adapter/postgres"
	"vibematrix/internal/adapter/sqlite"
	"vibematrix/internal/app"
	"vibematrix/internal/config"
	"vibematrix/internal/domain"
	"vibematrix/internal/logging"
)

// store is what every storage driver provides.
type store interface {
	domain.MoodRepository
	domain.ScheduleRepository
}

// Wire is the production Factory: it loads config, opens the configured
// store and connects the services to the terminal.
func Wire(_ context.Context, opts Options) (*Deps, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.overrides())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	repo, watchPath, closeFn, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var notifier app.Notifier = notify.Discard{}
	if cfg.Notify.Enabled {
		notifier = notify.New()
	}

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	clock := app.SystemClock{}
	return &Deps{
		Config:    cfg,
		Journal:   app.NewJournalService(repo, clock, notifier, logger),
		Schedules: app.NewScheduleService(repo, clock),
		Runner:    app.NewRunner(clock, logger),
		Clock:     clock,
		Prompter:  NewTeaPrompter(in, out),
		Git:       gitlog.New(""),
		Logger:    logger,
		WatchPath: watchPath,
		Close: func() error {
			_ = logger.Sync()
			if closeFn != nil {
				return closeFn()
			}
			return nil
		},
	}, nil
}

func openStore(cfg *config.Config, logger *zap.Logger) (store, string, func() error, error) {
	logger.Debug("opening store", zap.String("driver", cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), "", nil, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath())
		if err != nil {
			return nil, "", nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath(), err)
		}
		return db, "", db.Close, nil
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Storage.DSN)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, "", db.Close, nil
	default:
		s := jsonfile.New(cfg.LogPath(), cfg.SchedulePath(), logger)
		s.EnsureFiles()
		return s, s.LogPath(), nil, nil
	}
}
