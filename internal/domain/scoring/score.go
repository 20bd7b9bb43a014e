package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
)

// Results maps a normalized player name to the points earned in one round.
type Results map[string]decimal.Decimal

// Lineups indexes lineup entries by (team, round).
type Lineups map[lineup.Key][]string

// Entries returns the raw entries of a team for a round, nil when no lineup exists.
func (l Lineups) Entries(teamID, roundID int64) []string {
	return l[lineup.Key{TeamID: teamID, RoundID: roundID}]
}

// IndexLineups builds a Lineups index from stored lineups.
func IndexLineups(items []lineup.Lineup) Lineups {
	out := make(Lineups, len(items))
	for _, item := range items {
		out[item.Key()] = item.Entries
	}
	return out
}

// ScoreTeam sums the points of the distinct players in a lineup.
// Players without a recorded result contribute zero.
func ScoreTeam(entries []string, results Results) decimal.Decimal {
	total := decimal.Zero
	for _, player := range DistinctPlayers(entries) {
		if points, ok := results[player]; ok {
			total = total.Add(points)
		}
	}
	return total
}
