package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
)

func nullDec(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(v))
}

func TestResolveMatches_ResultCodes(t *testing.T) {
	t.Parallel()

	results := map[int64]Results{1: {"p3": dec("3"), "p5": dec("5"), "p2": dec("2"), "p1": dec("1"), "p4": dec("4")}}
	lineups := Lineups{
		{TeamID: 10, RoundID: 1}: {"p3"},
		{TeamID: 11, RoundID: 1}: {"P3"},
		{TeamID: 12, RoundID: 1}: {"p5"},
		{TeamID: 13, RoundID: 1}: {"p2"},
		{TeamID: 14, RoundID: 1}: {"p1"},
		{TeamID: 15, RoundID: 1}: {"p4"},
	}
	matches := []match.Match{
		{ID: 1, RoundID: 1, HomeTeamID: 10, AwayTeamID: 11},
		{ID: 2, RoundID: 1, HomeTeamID: 12, AwayTeamID: 13},
		{ID: 3, RoundID: 1, HomeTeamID: 14, AwayTeamID: 15},
	}

	got := ResolveMatches(matches, results, lineups)
	want := []match.Result{match.ResultDraw, match.ResultHome, match.ResultAway}
	for i, resolved := range got {
		if resolved.Result != want[i] {
			t.Fatalf("match %d: result=%q want %q", resolved.MatchID, resolved.Result, want[i])
		}
		if !resolved.Changed {
			t.Fatalf("match %d: expected changed on first resolution", resolved.MatchID)
		}
	}
	if !got[1].HomeScore.Decimal.Equal(dec("5")) || !got[1].AwayScore.Decimal.Equal(dec("2")) {
		t.Fatalf("unexpected scores: %+v", got[1])
	}
}

func TestResolveMatches_Idempotent(t *testing.T) {
	t.Parallel()

	results := map[int64]Results{1: {"a": dec("7.5"), "b": dec("2")}}
	lineups := Lineups{
		{TeamID: 10, RoundID: 1}: {"a", "A"},
		{TeamID: 11, RoundID: 1}: {"b"},
	}
	matches := []match.Match{
		{ID: 1, RoundID: 1, HomeTeamID: 10, AwayTeamID: 11},
		{ID: 2, RoundID: 2, HomeTeamID: 11, AwayTeamID: 10},
	}

	first := ResolveMatches(matches, results, lineups)
	stored := make([]match.Match, 0, len(matches))
	for i, resolved := range first {
		stored = append(stored, resolved.Apply(matches[i]))
	}

	second := ResolveMatches(stored, results, lineups)
	for _, resolved := range second {
		if resolved.Changed {
			t.Fatalf("match %d changed on second run: %+v", resolved.MatchID, resolved)
		}
	}
}

func TestResolveMatches_RoundWithoutResultsIsPending(t *testing.T) {
	t.Parallel()

	stored := match.Match{
		ID: 5, RoundID: 3, HomeTeamID: 1, AwayTeamID: 2,
		HomeScore: nullDec("0"), AwayScore: nullDec("0"), Result: match.ResultDraw,
	}

	got := ResolveMatches([]match.Match{stored}, map[int64]Results{}, Lineups{})
	if got[0].Result != match.ResultPending || got[0].HomeScore.Valid || got[0].AwayScore.Valid {
		t.Fatalf("expected pending match, got %+v", got[0])
	}
	if !got[0].Changed {
		t.Fatalf("expected stale stored outcome to be reported as changed")
	}
}

func TestResolveMatches_EquivalentDecimalsAreUnchanged(t *testing.T) {
	t.Parallel()

	stored := match.Match{
		ID: 1, RoundID: 1, HomeTeamID: 1, AwayTeamID: 2,
		HomeScore: nullDec("10.50"), AwayScore: nullDec("0.0"), Result: match.ResultHome,
	}
	results := map[int64]Results{1: {"x": dec("10.5")}}
	lineups := Lineups{{TeamID: 1, RoundID: 1}: {"x"}}

	got := ResolveMatches([]match.Match{stored}, results, lineups)
	if got[0].Changed {
		t.Fatalf("expected unchanged match, got %+v", got[0])
	}
}

func TestComputeH2HStandings(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 1, Name: "Lions"}, {ID: 2, Name: "Bears"}, {ID: 3, Name: "Owls"}, {ID: 4, Name: "Idle"}}
	matches := []ResolvedMatch{
		{MatchID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: nullDec("3"), AwayScore: nullDec("3"), Result: match.ResultDraw},
		{MatchID: 2, HomeTeamID: 2, AwayTeamID: 3, HomeScore: nullDec("5"), AwayScore: nullDec("2"), Result: match.ResultHome},
		{MatchID: 3, HomeTeamID: 3, AwayTeamID: 1, HomeScore: nullDec("1"), AwayScore: nullDec("4"), Result: match.ResultAway},
		{MatchID: 4, HomeTeamID: 1, AwayTeamID: 3, Result: match.ResultPending},
		{MatchID: 5, HomeTeamID: 1, AwayTeamID: 99, HomeScore: nullDec("9"), AwayScore: nullDec("0"), Result: match.ResultHome},
	}

	got := ComputeH2HStandings(teams, matches)

	want := []H2HRow{
		{TeamID: 2, TeamName: "Bears", Position: 1, Played: 2, Wins: 1, Ties: 1, Points: 3, GoalsFor: dec("8"), GoalsAgainst: dec("5"), GoalDiff: dec("3")},
		{TeamID: 1, TeamName: "Lions", Position: 2, Played: 2, Wins: 1, Ties: 1, Points: 3, GoalsFor: dec("7"), GoalsAgainst: dec("4"), GoalDiff: dec("3")},
		{TeamID: 4, TeamName: "Idle", Position: 3, GoalsFor: dec("0"), GoalsAgainst: dec("0"), GoalDiff: dec("0")},
		{TeamID: 3, TeamName: "Owls", Position: 4, Played: 2, Losses: 2, GoalsFor: dec("3"), GoalsAgainst: dec("9"), GoalDiff: dec("-6")},
	}
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeH2HStandings_NoMatches(t *testing.T) {
	t.Parallel()

	got := ComputeH2HStandings([]Team{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}}, nil)
	if len(got) != 2 || got[0].TeamID != 1 || got[1].TeamID != 2 {
		t.Fatalf("expected all-zero rows ordered by name, got %+v", got)
	}
	for _, row := range got {
		if row.Played != 0 || row.Points != 0 || !row.GoalDiff.IsZero() {
			t.Fatalf("expected zero row, got %+v", row)
		}
	}
}
