package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ProjectFanta/fantasy-nba/internal/app"
	"github.com/ProjectFanta/fantasy-nba/internal/config"
	"github.com/ProjectFanta/fantasy-nba/internal/observability"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := &runtime{out: os.Stdout}
	if err := newCLI(r).RunContext(ctx, os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

// runtime is the per-process state shared by all commands.
type runtime struct {
	out io.Writer

	cfg      config.Config
	logger   *logging.Logger
	app      *app.App
	shutdown []func(context.Context) error
}

func newCLI(r *runtime) *cli.App {
	return &cli.App{
		Name:  "leaguectl",
		Usage: "maintain fantasy league standings, schedules and results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Usage:   "access token of the acting user",
				EnvVars: []string{"LEAGUECTL_TOKEN"},
			},
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "run against an in-memory demo league instead of Postgres",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "indent JSON output",
			},
		},
		// Exit codes are applied in main once After has flushed logs and exporters.
		ExitErrHandler: func(*cli.Context, error) {},
		Before:         r.setup,
		After:          r.teardown,

		Commands: []*cli.Command{
			r.recomputeCommand(),
			r.recomputeLeagueCommand(),
			r.scheduleCommand(),
			r.resolveCommand(),
			r.resetRoundCommand(),
			r.lockCommand(),
			r.resultsCommand(),
			r.importCommand(),
			r.standingsCommand(),
			r.lineupCommand(),
			r.matchesCommand(),
			r.tokenCommand(),
		},
	}
}

func (r *runtime) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), 1)
	}
	r.cfg = cfg

	logger := logging.NewJSON(os.Stderr, cfg.LogLevel).
		With("service", cfg.ServiceName, "version", cfg.ServiceVersion, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	r.logger = logger

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("init tracing: %v", err), 1)
	}
	r.shutdown = append(r.shutdown, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("init profiler: %v", err), 1)
	}
	r.shutdown = append(r.shutdown, func(context.Context) error { return stopProfiler() })

	application, err := app.New(c.Context, cfg, logger, app.Options{Demo: c.Bool("demo")})
	if err != nil {
		return cli.Exit(fmt.Sprintf("build app: %v", err), 7)
	}
	r.app = application
	return nil
}

func (r *runtime) teardown(c *cli.Context) error {
	if r.app != nil {
		if err := r.app.Close(); err != nil && r.logger != nil {
			r.logger.Warn("close app failed", "error", err)
		}
	}
	for i := len(r.shutdown) - 1; i >= 0; i-- {
		if err := r.shutdown[i](context.Background()); err != nil && r.logger != nil {
			r.logger.Warn("shutdown hook failed", "error", err)
		}
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
	return nil
}
