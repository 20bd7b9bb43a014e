package postgres

import (
	"fmt"
	"time"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
)

type lineupTableModel struct {
	TeamID    int64     `db:"team_id"`
	RoundID   int64     `db:"round_id"`
	Entries   []byte    `db:"entries"`
	UpdatedAt time.Time `db:"updated_at"`
}

type lineupUpsertModel struct {
	TeamID    int64     `db:"team_id"`
	RoundID   int64     `db:"round_id"`
	Entries   string    `db:"entries"`
	UpdatedAt time.Time `db:"updated_at"`
}

func lineupFromRow(row lineupTableModel) (lineup.Lineup, error) {
	entries, err := lineup.DecodeEntries(row.Entries)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("decode lineup team=%d round=%d: %w", row.TeamID, row.RoundID, err)
	}
	return lineup.Lineup{
		TeamID:    row.TeamID,
		RoundID:   row.RoundID,
		Entries:   entries,
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}
