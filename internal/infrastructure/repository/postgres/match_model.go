package postgres

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
)

type matchTableModel struct {
	ID            int64               `db:"id"`
	CompetitionID int64               `db:"competition_id"`
	RoundID       int64               `db:"round_id"`
	HomeTeamID    int64               `db:"home_team_id"`
	AwayTeamID    int64               `db:"away_team_id"`
	HomeScore     decimal.NullDecimal `db:"home_score"`
	AwayScore     decimal.NullDecimal `db:"away_score"`
	Result        sql.NullString      `db:"result"`
}

type matchInsertModel struct {
	CompetitionID int64               `db:"competition_id"`
	RoundID       int64               `db:"round_id"`
	HomeTeamID    int64               `db:"home_team_id"`
	AwayTeamID    int64               `db:"away_team_id"`
	HomeScore     decimal.NullDecimal `db:"home_score"`
	AwayScore     decimal.NullDecimal `db:"away_score"`
	Result        sql.NullString      `db:"result"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		RoundID:       row.RoundID,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		Result:        match.Result(row.Result.String),
	}
}

// nullResult stores a pending result as NULL.
func nullResult(result match.Result) sql.NullString {
	if result == match.ResultPending {
		return sql.NullString{}
	}
	return sql.NullString{String: string(result), Valid: true}
}
