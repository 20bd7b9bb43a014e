package scoring

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
)

const (
	WinPoints  = 2
	DrawPoints = 1
)

// ResolvedMatch is the freshly computed outcome of a stored match.
// Changed is true when the outcome differs from what is stored.
type ResolvedMatch struct {
	MatchID    int64
	RoundID    int64
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  decimal.NullDecimal
	AwayScore  decimal.NullDecimal
	Result     match.Result
	Changed    bool
}

// Apply copies the resolved outcome onto the stored match.
func (r ResolvedMatch) Apply(m match.Match) match.Match {
	m.HomeScore = r.HomeScore
	m.AwayScore = r.AwayScore
	m.Result = r.Result
	return m
}

// AsResolved wraps a stored match without recomputing it.
func AsResolved(m match.Match) ResolvedMatch {
	return ResolvedMatch{
		MatchID:    m.ID,
		RoundID:    m.RoundID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Result:     m.Result,
	}
}

// ResolveMatches scores both sides of every match with its round's results.
// Matches of rounds without any recorded result resolve to pending.
func ResolveMatches(matches []match.Match, resultsByRound map[int64]Results, lineups Lineups) []ResolvedMatch {
	out := make([]ResolvedMatch, 0, len(matches))
	for _, m := range matches {
		resolved := AsResolved(m)

		results := resultsByRound[m.RoundID]
		if len(results) == 0 {
			resolved.HomeScore = decimal.NullDecimal{}
			resolved.AwayScore = decimal.NullDecimal{}
			resolved.Result = match.ResultPending
		} else {
			home := ScoreTeam(lineups.Entries(m.HomeTeamID, m.RoundID), results)
			away := ScoreTeam(lineups.Entries(m.AwayTeamID, m.RoundID), results)
			resolved.HomeScore = decimal.NewNullDecimal(home)
			resolved.AwayScore = decimal.NewNullDecimal(away)
			resolved.Result = match.ResultFor(home, away)
		}

		resolved.Changed = resolved.Result != m.Result ||
			!sameScore(resolved.HomeScore, m.HomeScore) ||
			!sameScore(resolved.AwayScore, m.AwayScore)
		out = append(out, resolved)
	}
	return out
}

func sameScore(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

type H2HRow struct {
	TeamID       int64
	TeamName     string
	Position     int
	Played       int
	Wins         int
	Losses       int
	Ties         int
	Points       int
	GoalsFor     decimal.Decimal
	GoalsAgainst decimal.Decimal
	GoalDiff     decimal.Decimal
}

// ComputeH2HStandings folds resolved matches into the head-to-head table.
// Pending matches and matches involving unknown teams are ignored.
func ComputeH2HStandings(teams []Team, matches []ResolvedMatch) []H2HRow {
	teams = uniqueTeams(teams)
	rows := make(map[int64]*H2HRow, len(teams))
	for _, team := range teams {
		rows[team.ID] = &H2HRow{
			TeamID:       team.ID,
			TeamName:     team.Name,
			GoalsFor:     decimal.Zero,
			GoalsAgainst: decimal.Zero,
		}
	}

	for _, m := range matches {
		if m.Result == match.ResultPending || !m.HomeScore.Valid || !m.AwayScore.Valid {
			continue
		}
		home, okHome := rows[m.HomeTeamID]
		away, okAway := rows[m.AwayTeamID]
		if !okHome || !okAway {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor = home.GoalsFor.Add(m.HomeScore.Decimal)
		home.GoalsAgainst = home.GoalsAgainst.Add(m.AwayScore.Decimal)
		away.GoalsFor = away.GoalsFor.Add(m.AwayScore.Decimal)
		away.GoalsAgainst = away.GoalsAgainst.Add(m.HomeScore.Decimal)

		switch m.Result {
		case match.ResultHome:
			home.Points += WinPoints
			home.Wins++
			away.Losses++
		case match.ResultAway:
			away.Points += WinPoints
			away.Wins++
			home.Losses++
		case match.ResultDraw:
			home.Points += DrawPoints
			away.Points += DrawPoints
			home.Ties++
			away.Ties++
		}
	}

	out := make([]H2HRow, 0, len(rows))
	for _, team := range teams {
		row := rows[team.ID]
		row.GoalDiff = row.GoalsFor.Sub(row.GoalsAgainst)
		out = append(out, *row)
	}

	slices.SortStableFunc(out, func(a, b H2HRow) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := b.GoalDiff.Cmp(a.GoalDiff); c != 0 {
			return c
		}
		if c := b.GoalsFor.Cmp(a.GoalsFor); c != 0 {
			return c
		}
		return compareTeams(a.TeamName, a.TeamID, b.TeamName, b.TeamID)
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
