package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	qb "github.com/ProjectFanta/fantasy-nba/internal/platform/querybuilder"
)

type playerResultTableModel struct {
	RoundID    int64           `db:"round_id"`
	PlayerKey  string          `db:"player_key"`
	PlayerName string          `db:"player_name"`
	Points     decimal.Decimal `db:"points"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

type PlayerResultRepository struct {
	db querier
}

func NewPlayerResultRepository(db querier) *PlayerResultRepository {
	return &PlayerResultRepository{db: db}
}

func (r *PlayerResultRepository) ListByRounds(ctx context.Context, roundIDs []int64) ([]playerresult.PlayerResult, error) {
	if len(roundIDs) == 0 {
		return []playerresult.PlayerResult{}, nil
	}

	query, args, err := qb.Select("round_id", "player_key", "player_name", "points", "updated_at").
		From("player_results").
		Where(qb.InInt64("round_id", roundIDs)).
		OrderBy("round_id", "player_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player results query: %w", err)
	}

	var rows []playerResultTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}

	out := make([]playerresult.PlayerResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerresult.PlayerResult{
			RoundID:    row.RoundID,
			PlayerKey:  row.PlayerKey,
			PlayerName: row.PlayerName,
			Points:     row.Points,
			UpdatedAt:  row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *PlayerResultRepository) Upsert(ctx context.Context, items []playerresult.PlayerResult) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]playerResultTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, playerResultTableModel{
			RoundID:    item.RoundID,
			PlayerKey:  item.PlayerKey,
			PlayerName: item.PlayerName,
			Points:     item.Points,
			UpdatedAt:  item.UpdatedAt.UTC(),
		})
	}

	query, args, err := qb.InsertModels("player_results", rows, `ON CONFLICT (round_id, player_key)
DO UPDATE SET
	player_name = EXCLUDED.player_name,
	points = EXCLUDED.points,
	updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert player results query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player results: %w", err)
	}
	return nil
}

func (r *PlayerResultRepository) DeleteByRound(ctx context.Context, roundID int64) (int64, error) {
	query, args, err := qb.DeleteFrom("player_results").
		Where(qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete player results query: %w", err)
	}
	return execAffected(ctx, r.db, "delete player results", query, args)
}

func execAffected(ctx context.Context, db querier, op, query string, args []any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return affected, nil
}
