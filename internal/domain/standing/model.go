package standing

import "github.com/shopspring/decimal"

// F1Standing is one row of the aggregated Formula-1 style table.
type F1Standing struct {
	CompetitionID int64
	TeamID        int64
	TeamName      string
	Position      int
	RoundsPlayed  int
	Points        int
	TotalScore    decimal.Decimal
}

// F1RoundScore records a team's score, rank and awarded points in one round.
type F1RoundScore struct {
	CompetitionID int64
	RoundID       int64
	TeamID        int64
	TeamName      string
	Position      int
	Score         decimal.Decimal
	Points        int
}

// H2HStanding is one row of the head-to-head table.
type H2HStanding struct {
	CompetitionID int64
	TeamID        int64
	TeamName      string
	Position      int
	Played        int
	Wins          int
	Losses        int
	Ties          int
	Points        int
	GoalsFor      decimal.Decimal
	GoalsAgainst  decimal.Decimal
	GoalDiff      decimal.Decimal
}
