package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	qb "github.com/ProjectFanta/fantasy-nba/internal/platform/querybuilder"
)

type MatchRepository struct {
	db querier
}

func NewMatchRepository(db querier) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]match.Match, error) {
	return r.list(ctx, "list matches by competition", qb.Eq("competition_id", competitionID))
}

func (r *MatchRepository) ListByRound(ctx context.Context, roundID int64) ([]match.Match, error) {
	return r.list(ctx, "list matches by round", qb.Eq("round_id", roundID))
}

func (r *MatchRepository) list(ctx context.Context, op string, where qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(
		"id",
		"competition_id",
		"round_id",
		"home_team_id",
		"away_team_id",
		"home_score",
		"away_score",
		"result",
	).From("matches").
		Where(where).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) DeleteByRounds(ctx context.Context, roundIDs []int64) (int64, error) {
	if len(roundIDs) == 0 {
		return 0, nil
	}
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.InInt64("round_id", roundIDs)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete matches query: %w", err)
	}
	return execAffected(ctx, r.db, "delete matches", query, args)
}

func (r *MatchRepository) CreateMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]matchInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, matchInsertModel{
			CompetitionID: item.CompetitionID,
			RoundID:       item.RoundID,
			HomeTeamID:    item.HomeTeamID,
			AwayTeamID:    item.AwayTeamID,
			HomeScore:     item.HomeScore,
			AwayScore:     item.AwayScore,
			Result:        nullResult(item.Result),
		})
	}

	query, args, err := qb.InsertModels("matches", rows, "")
	if err != nil {
		return fmt.Errorf("build insert matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) UpdateOutcomes(ctx context.Context, items []match.Match) error {
	for _, item := range items {
		query, args, err := qb.Update("matches").
			Set("home_score", item.HomeScore).
			Set("away_score", item.AwayScore).
			Set("result", nullResult(item.Result)).
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update match outcome query: %w", err)
		}

		affected, err := execAffected(ctx, r.db, "update match outcome", query, args)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("update match outcome: match %d not found", item.ID)
		}
	}
	return nil
}

func (r *MatchRepository) ResetRound(ctx context.Context, roundID int64) (int64, error) {
	query, args, err := qb.Update("matches").
		Set("home_score", decimal.NullDecimal{}).
		Set("away_score", decimal.NullDecimal{}).
		SetExpr("result", "NULL").
		Where(qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build reset round matches query: %w", err)
	}
	return execAffected(ctx, r.db, "reset round matches", query, args)
}
