package scoring

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// F1PointsTable holds the points awarded by finishing position, starting at first place.
var F1PointsTable = [...]int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// F1PointsFor returns the points for a 1-based position; positions past the table earn nothing.
func F1PointsFor(position int) int {
	if position < 1 || position > len(F1PointsTable) {
		return 0
	}
	return F1PointsTable[position-1]
}

// Team is the minimal team identity the engines rank.
type Team struct {
	ID   int64
	Name string
}

// RoundContext bundles what is needed to score one round.
type RoundContext struct {
	RoundID int64
	Results Results
	Lineups Lineups
}

type RoundTeamScore struct {
	TeamID   int64
	TeamName string
	Position int
	Score    decimal.Decimal
	Points   int
}

type RoundSummary struct {
	RoundID int64
	Scores  []RoundTeamScore
}

type F1Row struct {
	TeamID       int64
	TeamName     string
	Position     int
	RoundsPlayed int
	Points       int
	TotalScore   decimal.Decimal
}

type F1Outcome struct {
	Rounds    []RoundSummary
	Standings []F1Row
}

// ComputeF1 ranks teams in every round, awards table points by rank and
// aggregates them into the final table. Every team appears in the table even
// when no round was processed.
func ComputeF1(rounds []RoundContext, teams []Team) F1Outcome {
	teams = uniqueTeams(teams)
	rows := make(map[int64]*F1Row, len(teams))
	for _, team := range teams {
		rows[team.ID] = &F1Row{TeamID: team.ID, TeamName: team.Name, TotalScore: decimal.Zero}
	}

	summaries := make([]RoundSummary, 0, len(rounds))
	for _, round := range rounds {
		scores := make([]RoundTeamScore, 0, len(teams))
		for _, team := range teams {
			scores = append(scores, RoundTeamScore{
				TeamID:   team.ID,
				TeamName: team.Name,
				Score:    ScoreTeam(round.Lineups.Entries(team.ID, round.RoundID), round.Results),
			})
		}

		slices.SortStableFunc(scores, func(a, b RoundTeamScore) int {
			if c := b.Score.Cmp(a.Score); c != 0 {
				return c
			}
			return compareTeams(a.TeamName, a.TeamID, b.TeamName, b.TeamID)
		})

		for i := range scores {
			scores[i].Position = i + 1
			scores[i].Points = F1PointsFor(i + 1)

			row := rows[scores[i].TeamID]
			row.RoundsPlayed++
			row.Points += scores[i].Points
			row.TotalScore = row.TotalScore.Add(scores[i].Score)
		}
		summaries = append(summaries, RoundSummary{RoundID: round.RoundID, Scores: scores})
	}

	standings := make([]F1Row, 0, len(rows))
	for _, team := range teams {
		standings = append(standings, *rows[team.ID])
	}
	slices.SortStableFunc(standings, func(a, b F1Row) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := b.TotalScore.Cmp(a.TotalScore); c != 0 {
			return c
		}
		return compareTeams(a.TeamName, a.TeamID, b.TeamName, b.TeamID)
	})
	for i := range standings {
		standings[i].Position = i + 1
	}

	return F1Outcome{Rounds: summaries, Standings: standings}
}

func uniqueTeams(teams []Team) []Team {
	seen := make(map[int64]struct{}, len(teams))
	out := make([]Team, 0, len(teams))
	for _, team := range teams {
		if _, ok := seen[team.ID]; ok {
			continue
		}
		seen[team.ID] = struct{}{}
		out = append(out, team)
	}
	return out
}

// compareTeams orders by normalized name, then raw name, then id.
func compareTeams(aName string, aID int64, bName string, bID int64) int {
	return cmp.Or(
		strings.Compare(NormalizeName(aName), NormalizeName(bName)),
		strings.Compare(aName, bName),
		cmp.Compare(aID, bID),
	)
}
