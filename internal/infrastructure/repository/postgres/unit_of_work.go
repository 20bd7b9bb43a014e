package postgres

import (
	"context"
	"database/sql"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/resilience"
)

// UnitOfWork runs each unit in a SERIALIZABLE transaction holding a
// transaction-scoped advisory lock on the unit's key. Serialization failures
// and deadlocks are retried with a fresh transaction.
type UnitOfWork struct {
	db     *sqlx.DB
	locks  resilience.KeyedMutex
	retry  resilience.RetryConfig
	logger *logging.Logger
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(db *sqlx.DB, retry resilience.RetryConfig, logger *logging.Logger) *UnitOfWork {
	if logger == nil {
		logger = logging.Default()
	}
	return &UnitOfWork{
		db:     db,
		retry:  resilience.NormalizeRetryConfig(retry),
		logger: logger.Named("uow"),
	}
}

// Repositories returns repositories bound to the connection pool, outside any transaction.
func (u *UnitOfWork) Repositories() store.Repositories {
	return repositoriesFor(u.db)
}

func (u *UnitOfWork) Do(ctx context.Context, lockKey int64, fn func(ctx context.Context, repos store.Repositories) error) error {
	unlock := u.locks.Lock(lockKey)
	defer unlock()

	attempt := 0
	return resilience.Retry(ctx, u.retry, isRetryableTxError, func(ctx context.Context) error {
		attempt++
		err := u.runTx(ctx, lockKey, fn)
		if err != nil && isRetryableTxError(err) {
			u.logger.WarnContext(ctx, "transaction conflict, retrying",
				"lock_key", lockKey,
				"attempt", attempt,
				"error", err,
			)
		}
		return err
	})
}

func (u *UnitOfWork) runTx(ctx context.Context, lockKey int64, fn func(ctx context.Context, repos store.Repositories) error) (err error) {
	tx, err := u.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return crerr.Wrap(err, "begin transaction")
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !crerr.Is(rbErr, sql.ErrTxDone) {
			u.logger.ErrorContext(ctx, "rollback transaction failed", "lock_key", lockKey, "error", rbErr)
		}
	}()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		return crerr.Wrapf(err, "acquire advisory lock %d", lockKey)
	}
	if err = fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit transaction")
	}
	return nil
}

func repositoriesFor(db querier) store.Repositories {
	return store.Repositories{
		Competitions: NewCompetitionRepository(db),
		Lineups:      NewLineupRepository(db),
		Results:      NewPlayerResultRepository(db),
		Matches:      NewMatchRepository(db),
		Standings:    NewStandingRepository(db),
	}
}
