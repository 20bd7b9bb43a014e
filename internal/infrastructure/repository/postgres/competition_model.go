package postgres

import (
	"database/sql"
	"time"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
)

type leagueTableModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	OwnerUserID int64  `db:"owner_user_id"`
}

type competitionTableModel struct {
	ID          int64  `db:"id"`
	LeagueID    int64  `db:"league_id"`
	Name        string `db:"name"`
	Type        string `db:"type"`
	TotalRounds int    `db:"total_rounds"`
	OwnerUserID int64  `db:"owner_user_id"`
}

type roundTableModel struct {
	ID            int64        `db:"id"`
	CompetitionID int64        `db:"competition_id"`
	DayIndex      int          `db:"day_index"`
	Name          string       `db:"name"`
	LockAt        sql.NullTime `db:"lock_at"`
}

type teamTableModel struct {
	ID            int64         `db:"id"`
	CompetitionID int64         `db:"competition_id"`
	Name          string        `db:"name"`
	OwnerUserID   sql.NullInt64 `db:"owner_user_id"`
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:          row.ID,
		LeagueID:    row.LeagueID,
		Name:        row.Name,
		Type:        competition.Type(row.Type),
		TotalRounds: row.TotalRounds,
		OwnerUserID: row.OwnerUserID,
	}
}

func roundFromRow(row roundTableModel) competition.Round {
	out := competition.Round{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		DayIndex:      row.DayIndex,
		Name:          row.Name,
	}
	if row.LockAt.Valid {
		lockAt := row.LockAt.Time.UTC()
		out.LockAt = &lockAt
	}
	return out
}

func teamFromRow(row teamTableModel) competition.Team {
	return competition.Team{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		Name:          row.Name,
		OwnerUserID:   row.OwnerUserID.Int64,
	}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}
