package match

import "github.com/shopspring/decimal"

// Result is the outcome code stored on a match. The zero value marks a pending match.
type Result string

const (
	ResultPending Result = ""
	ResultHome    Result = "H"
	ResultAway    Result = "A"
	ResultDraw    Result = "D"
)

// ResultFor derives the outcome code from the two team scores.
func ResultFor(home, away decimal.Decimal) Result {
	switch home.Cmp(away) {
	case 1:
		return ResultHome
	case -1:
		return ResultAway
	default:
		return ResultDraw
	}
}

// Match is a scheduled head-to-head fixture. Scores stay invalid until the match is resolved.
type Match struct {
	ID            int64
	CompetitionID int64
	RoundID       int64
	HomeTeamID    int64
	AwayTeamID    int64
	HomeScore     decimal.NullDecimal
	AwayScore     decimal.NullDecimal
	Result        Result
}

func (m Match) Resolved() bool {
	return m.Result != ResultPending && m.HomeScore.Valid && m.AwayScore.Valid
}
