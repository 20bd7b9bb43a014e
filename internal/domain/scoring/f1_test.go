package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestF1PointsFor(t *testing.T) {
	t.Parallel()

	want := []int{0, 25, 18, 15, 12, 10, 8, 6, 4, 2, 1, 0, 0}
	for position, points := range want {
		if got := F1PointsFor(position); got != points {
			t.Fatalf("F1PointsFor(%d)=%d, want %d", position, got, points)
		}
	}
}

func TestComputeF1_TieBrokenByName(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 1, Name: "B"}, {ID: 2, Name: "A"}, {ID: 3, Name: "C"}}
	round := RoundContext{
		RoundID: 100,
		Results: Results{"p1": dec("10"), "p2": dec("5")},
		Lineups: Lineups{
			{TeamID: 1, RoundID: 100}: {"p1"},
			{TeamID: 2, RoundID: 100}: {"P1"},
			{TeamID: 3, RoundID: 100}: {"p2"},
		},
	}

	got := ComputeF1([]RoundContext{round}, teams)

	wantRound := []RoundTeamScore{
		{TeamID: 2, TeamName: "A", Position: 1, Score: dec("10"), Points: 25},
		{TeamID: 1, TeamName: "B", Position: 2, Score: dec("10"), Points: 18},
		{TeamID: 3, TeamName: "C", Position: 3, Score: dec("5"), Points: 15},
	}
	if len(got.Rounds) != 1 {
		t.Fatalf("expected one round summary, got %d", len(got.Rounds))
	}
	if diff := cmp.Diff(wantRound, got.Rounds[0].Scores, decimalComparer); diff != "" {
		t.Fatalf("round scores mismatch (-want +got):\n%s", diff)
	}

	wantStandings := []F1Row{
		{TeamID: 2, TeamName: "A", Position: 1, RoundsPlayed: 1, Points: 25, TotalScore: dec("10")},
		{TeamID: 1, TeamName: "B", Position: 2, RoundsPlayed: 1, Points: 18, TotalScore: dec("10")},
		{TeamID: 3, TeamName: "C", Position: 3, RoundsPlayed: 1, Points: 15, TotalScore: dec("5")},
	}
	if diff := cmp.Diff(wantStandings, got.Standings, decimalComparer); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeF1_EndToEndScenario(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 1, Name: "X"}, {ID: 2, Name: "Y"}}
	lineups := IndexLineups([]lineup.Lineup{
		{TeamID: 1, RoundID: 9, Entries: []string{"Alice", "ALICE", "bob"}},
		{TeamID: 2, RoundID: 9, Entries: []string{}},
	})
	round := RoundContext{RoundID: 9, Results: Results{"alice": dec("20"), "bob": dec("15")}, Lineups: lineups}

	got := ComputeF1([]RoundContext{round}, teams)
	scores := got.Rounds[0].Scores
	if scores[0].TeamID != 1 || !scores[0].Score.Equal(dec("35")) || scores[0].Points != 25 {
		t.Fatalf("unexpected winner row: %+v", scores[0])
	}
	if scores[1].TeamID != 2 || !scores[1].Score.IsZero() || scores[1].Points != 18 {
		t.Fatalf("unexpected runner-up row: %+v", scores[1])
	}
}

func TestComputeF1_AggregatesAcrossRounds(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Bravo"}, {ID: 3, Name: "Charlie"}}
	lineups := Lineups{
		{TeamID: 1, RoundID: 1}: {"a"},
		{TeamID: 2, RoundID: 1}: {"b"},
		{TeamID: 3, RoundID: 1}: {"c"},
		{TeamID: 1, RoundID: 2}: {"c"},
		{TeamID: 2, RoundID: 2}: {"a"},
		{TeamID: 3, RoundID: 2}: {"b"},
	}
	rounds := []RoundContext{
		{RoundID: 1, Results: Results{"a": dec("30"), "b": dec("20"), "c": dec("10")}, Lineups: lineups},
		{RoundID: 2, Results: Results{"a": dec("40"), "b": dec("5"), "c": dec("1")}, Lineups: lineups},
	}

	got := ComputeF1(rounds, teams)

	// Alpha 25+15=40 (31), Bravo 18+25=43 (60), Charlie 15+18=33 (15).
	want := []F1Row{
		{TeamID: 2, TeamName: "Bravo", Position: 1, RoundsPlayed: 2, Points: 43, TotalScore: dec("60")},
		{TeamID: 1, TeamName: "Alpha", Position: 2, RoundsPlayed: 2, Points: 40, TotalScore: dec("31")},
		{TeamID: 3, TeamName: "Charlie", Position: 3, RoundsPlayed: 2, Points: 33, TotalScore: dec("15")},
	}
	if diff := cmp.Diff(want, got.Standings, decimalComparer); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeF1_PointsTieBrokenByTotalScore(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	lineups := Lineups{
		{TeamID: 1, RoundID: 1}: {"x"},
		{TeamID: 2, RoundID: 1}: {"y"},
		{TeamID: 1, RoundID: 2}: {"x"},
		{TeamID: 2, RoundID: 2}: {"y"},
	}
	rounds := []RoundContext{
		{RoundID: 1, Results: Results{"x": dec("10"), "y": dec("9")}, Lineups: lineups},
		{RoundID: 2, Results: Results{"x": dec("1"), "y": dec("30")}, Lineups: lineups},
	}

	got := ComputeF1(rounds, teams)
	if got.Standings[0].TeamID != 2 || got.Standings[0].Points != 43 {
		t.Fatalf("expected B first on total score, got %+v", got.Standings)
	}
}

func TestComputeF1_BeyondPointsTable(t *testing.T) {
	t.Parallel()

	teams := make([]Team, 0, 12)
	for i := 1; i <= 12; i++ {
		teams = append(teams, Team{ID: int64(i), Name: string(rune('A' + i - 1))})
	}
	got := ComputeF1([]RoundContext{{RoundID: 1, Results: Results{"p": dec("1")}}}, teams)

	scores := got.Rounds[0].Scores
	if scores[9].Points != 1 || scores[10].Points != 0 || scores[11].Points != 0 {
		t.Fatalf("unexpected tail points: %+v", scores[9:])
	}
}

func TestComputeF1_ZeroRounds(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}, {ID: 1, Name: "A"}}
	got := ComputeF1(nil, teams)

	if len(got.Rounds) != 0 {
		t.Fatalf("expected no round summaries, got %d", len(got.Rounds))
	}
	want := []F1Row{
		{TeamID: 1, TeamName: "A", Position: 1, TotalScore: decimal.Zero},
		{TeamID: 2, TeamName: "B", Position: 2, TotalScore: decimal.Zero},
	}
	if diff := cmp.Diff(want, got.Standings, decimalComparer); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}

	if empty := ComputeF1(nil, nil); len(empty.Standings) != 0 {
		t.Fatalf("expected empty standings without teams")
	}
}

func TestComputeF1_TieBreakIgnoresNameCase(t *testing.T) {
	t.Parallel()

	teams := []Team{{ID: 1, Name: "Beta"}, {ID: 2, Name: "alpha"}, {ID: 4, Name: "gamma"}, {ID: 3, Name: "Gamma"}}
	got := ComputeF1(nil, teams)

	order := make([]int64, 0, len(got.Standings))
	for _, row := range got.Standings {
		order = append(order, row.TeamID)
	}
	want := []int64{2, 1, 3, 4}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("tie-break order mismatch (-want +got):\n%s", diff)
	}
}
