package postgres

import "github.com/shopspring/decimal"

type f1StandingTableModel struct {
	CompetitionID int64           `db:"competition_id"`
	TeamID        int64           `db:"team_id"`
	TeamName      string          `db:"team_name"`
	Position      int             `db:"position"`
	RoundsPlayed  int             `db:"rounds_played"`
	Points        int             `db:"points"`
	TotalScore    decimal.Decimal `db:"total_score"`
}

type f1StandingInsertModel struct {
	CompetitionID int64           `db:"competition_id"`
	TeamID        int64           `db:"team_id"`
	Position      int             `db:"position"`
	RoundsPlayed  int             `db:"rounds_played"`
	Points        int             `db:"points"`
	TotalScore    decimal.Decimal `db:"total_score"`
}

type f1RoundScoreTableModel struct {
	CompetitionID int64           `db:"competition_id"`
	RoundID       int64           `db:"round_id"`
	TeamID        int64           `db:"team_id"`
	TeamName      string          `db:"team_name"`
	Position      int             `db:"position"`
	Score         decimal.Decimal `db:"score"`
	Points        int             `db:"points"`
}

type f1RoundScoreInsertModel struct {
	CompetitionID int64           `db:"competition_id"`
	RoundID       int64           `db:"round_id"`
	TeamID        int64           `db:"team_id"`
	Position      int             `db:"position"`
	Score         decimal.Decimal `db:"score"`
	Points        int             `db:"points"`
}

type h2hStandingTableModel struct {
	CompetitionID int64           `db:"competition_id"`
	TeamID        int64           `db:"team_id"`
	TeamName      string          `db:"team_name"`
	Position      int             `db:"position"`
	Played        int             `db:"played"`
	Wins          int             `db:"wins"`
	Losses        int             `db:"losses"`
	Ties          int             `db:"ties"`
	Points        int             `db:"points"`
	GoalsFor      decimal.Decimal `db:"goals_for"`
	GoalsAgainst  decimal.Decimal `db:"goals_against"`
	GoalDiff      decimal.Decimal `db:"goal_diff"`
}

type h2hStandingInsertModel struct {
	CompetitionID int64           `db:"competition_id"`
	TeamID        int64           `db:"team_id"`
	Position      int             `db:"position"`
	Played        int             `db:"played"`
	Wins          int             `db:"wins"`
	Losses        int             `db:"losses"`
	Ties          int             `db:"ties"`
	Points        int             `db:"points"`
	GoalsFor      decimal.Decimal `db:"goals_for"`
	GoalsAgainst  decimal.Decimal `db:"goals_against"`
	GoalDiff      decimal.Decimal `db:"goal_diff"`
}
