package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	qb "github.com/ProjectFanta/fantasy-nba/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db querier
}

func NewCompetitionRepository(db querier) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetLeague(ctx context.Context, leagueID int64) (competition.League, bool, error) {
	query, args, err := qb.Select("id", "name", "owner_user_id").
		From("leagues").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return competition.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.League{}, false, nil
		}
		return competition.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return competition.League{ID: row.ID, Name: row.Name, OwnerUserID: row.OwnerUserID}, true, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID int64) (competition.Competition, bool, error) {
	query, args, err := competitionBaseSelectBuilder().
		Where(qb.Eq("c.id", competitionID)).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}
	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) ListByLeague(ctx context.Context, leagueID int64) ([]competition.Competition, error) {
	query, args, err := competitionBaseSelectBuilder().
		Where(qb.Eq("c.league_id", leagueID)).
		OrderBy("c.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions by league: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) ListRounds(ctx context.Context, competitionID int64) ([]competition.Round, error) {
	query, args, err := roundBaseSelectBuilder().
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("day_index", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]competition.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetRound(ctx context.Context, roundID int64) (competition.Round, bool, error) {
	query, args, err := roundBaseSelectBuilder().
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return competition.Round{}, false, fmt.Errorf("build get round query: %w", err)
	}

	var row roundTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Round{}, false, nil
		}
		return competition.Round{}, false, fmt.Errorf("get round: %w", err)
	}
	return roundFromRow(row), true, nil
}

func (r *CompetitionRepository) UpdateRoundLock(ctx context.Context, roundID int64, lockAt *time.Time) error {
	query, args, err := qb.Update("rounds").
		Set("lock_at", nullTime(lockAt)).
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update round lock query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update round lock: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update round lock: round %d not found", roundID)
	}
	return nil
}

func (r *CompetitionRepository) ListTeams(ctx context.Context, competitionID int64) ([]competition.Team, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]competition.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetTeam(ctx context.Context, teamID int64) (competition.Team, bool, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return competition.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Team{}, false, nil
		}
		return competition.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func competitionBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"c.id",
		"c.league_id",
		"c.name",
		"c.type",
		"c.total_rounds",
		"l.owner_user_id",
	).From("competitions c").
		Join("JOIN leagues l ON l.id = c.league_id")
}

func roundBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "competition_id", "day_index", "name", "lock_at").From("rounds")
}

func teamBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "competition_id", "name", "owner_user_id").From("teams")
}
