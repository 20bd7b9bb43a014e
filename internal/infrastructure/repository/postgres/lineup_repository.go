package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	qb "github.com/ProjectFanta/fantasy-nba/internal/platform/querybuilder"
)

type LineupRepository struct {
	db querier
}

func NewLineupRepository(db querier) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByTeamAndRound(ctx context.Context, teamID, roundID int64) (lineup.Lineup, bool, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(
			qb.Eq("l.team_id", teamID),
			qb.Eq("l.round_id", roundID),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	item, err := lineupFromRow(row)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return item, true, nil
}

func (r *LineupRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]lineup.Lineup, error) {
	query, args, err := lineupBaseSelectBuilder().
		Join("JOIN teams t ON t.id = l.team_id").
		Where(qb.Eq("t.competition_id", competitionID)).
		OrderBy("l.round_id", "l.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by competition query: %w", err)
	}

	var rows []lineupTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by competition: %w", err)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		item, err := lineupFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Lineup) error {
	entries, err := lineup.EncodeEntries(item.Entries)
	if err != nil {
		return fmt.Errorf("encode lineup entries: %w", err)
	}

	query, args, err := qb.InsertModel("lineups", lineupUpsertModel{
		TeamID:    item.TeamID,
		RoundID:   item.RoundID,
		Entries:   string(entries),
		UpdatedAt: item.UpdatedAt.UTC(),
	}, `ON CONFLICT (team_id, round_id)
DO UPDATE SET
	entries = EXCLUDED.entries,
	updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert lineup query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}
	return nil
}

func lineupBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("l.team_id", "l.round_id", "l.entries", "l.updated_at").From("lineups l")
}
