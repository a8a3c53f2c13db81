package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"budgetbuddy/internal/app"
	"budgetbuddy/internal/backend"
	"budgetbuddy/internal/cli"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/services"
)

// environment is what both subcommands need before doing any work.
type environment struct {
	cfg     *config.Config
	logger  *log.Logger
	backend *backend.BackendResult
	tracker *services.Tracker
}

func setup(ctx context.Context) (*environment, error) {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger, err := cli.SetupLogger(cfg.LogLevel, nil)
	if err != nil {
		logger.Warn("Unknown log level, using warn", log.FieldError, err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.With(log.FieldComponent, log.ComponentBackend).Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	var publisher services.Publisher
	if res.Publisher != nil {
		publisher = res.Publisher
	}

	logger.Info("Backend ready",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		"publishing", publisher != nil)

	return &environment{
		cfg:     cfg,
		logger:  logger,
		backend: res,
		tracker: services.NewTracker(res.Store, publisher, cfg.StoreTimeout),
	}, nil
}

func (e *environment) close() {
	if err := e.backend.Cleanup(); err != nil {
		e.logger.Error("Cleanup failed", log.FieldOperation, log.OpShutdown, log.FieldError, err)
	}
}

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "start the interactive expense tracker (default)" }
func (*runCmd) Usage() string {
	return `budgetbuddy [run]

  Reads one command per line from standard input until 'exit' or end of
  input. Every change is saved before the next command is read.
  Type 'help' once running to list the commands.
`
}

func (*runCmd) SetFlags(*flag.FlagSet) {}

func (*runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := setup(ctx)
	if err != nil {
		return cli.Fail(nil, "startup failed", err)
	}
	defer env.close()

	ctx, stop := cli.GracefulShutdown(ctx, env.logger)
	defer stop()
	// Unblock the pending read so the loop can say goodbye.
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	a := app.Open(ctx, app.Config{
		In:         os.Stdin,
		Out:        os.Stdout,
		Tracker:    env.tracker,
		Logger:     env.logger,
		Currency:   env.cfg.Currency,
		GraphWidth: env.cfg.GraphWidth,
	})
	a.Run(ctx)
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the saved data in canonical form" }
func (*fmtCmd) Usage() string {
	return `budgetbuddy fmt

  Loads the saved expenses, incomes and budgets and writes them back
  unchanged, normalizing the file layout. Data that cannot be loaded is
  left untouched.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := setup(ctx)
	if err != nil {
		return cli.Fail(nil, "startup failed", err)
	}
	defer env.close()

	if err := app.Format(ctx, env.tracker); err != nil {
		return cli.Fail(env.logger, "format failed", err)
	}
	return subcommands.ExitSuccess
}
