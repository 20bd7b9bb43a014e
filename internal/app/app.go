package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/config"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/infrastructure/account/jwtauth"
	"github.com/ProjectFanta/fantasy-nba/internal/infrastructure/repository/memory"
	"github.com/ProjectFanta/fantasy-nba/internal/infrastructure/repository/postgres"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/resilience"
	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

// backend is a unit of work that also exposes non-transactional repositories for reads.
type backend interface {
	store.UnitOfWork
	Repositories() store.Repositories
}

type Options struct {
	// Demo runs against an in-memory store seeded with memory.DemoSeed instead of Postgres.
	Demo bool
}

// App holds the wired services of one process.
type App struct {
	Verifier  *jwtauth.Verifier
	Recompute *usecase.RecomputeService
	Schedule  *usecase.ScheduleService
	Matches   *usecase.MatchService
	Results   *usecase.ResultService
	Import    *usecase.ImportService
	Rounds    *usecase.RoundService
	Lineups   *usecase.LineupService
	Standings *usecase.StandingsService

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		b  backend
		db *sqlx.DB
	)
	if opts.Demo {
		b = memory.NewStore(memory.DemoSeed())
		logger.Info("using in-memory demo store")
	} else {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b = postgres.NewUnitOfWork(db, resilience.RetryConfig{
			MaxRetries: cfg.DBTxMaxRetries,
			Backoff:    cfg.DBTxRetryBackoff,
		}, logger)
		logger.Info("connected to postgres", "db_name", dbNameFromURL(cfg.DBURL))
	}

	repos := b.Repositories()
	recompute := usecase.NewRecomputeService(b, repos.Competitions, logger)
	recompute.SetWorkers(cfg.RecomputeWorkers)

	return &App{
		Verifier:  jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Recompute: recompute,
		Schedule:  usecase.NewScheduleService(b, logger),
		Matches:   usecase.NewMatchService(b, repos.Competitions, repos.Matches, logger),
		Results:   usecase.NewResultService(b, repos.Competitions, repos.Results, logger),
		Import:    usecase.NewImportService(b, logger),
		Rounds:    usecase.NewRoundService(b, repos.Competitions, logger),
		Lineups:   usecase.NewLineupService(b, repos.Competitions, repos.Lineups, logger),
		Standings: usecase.NewStandingsService(repos.Competitions, repos.Standings),
		db:        db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is required")
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary, cfg.ServiceName),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
