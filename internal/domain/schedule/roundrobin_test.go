package schedule

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func seqIDs(start int64, n int) []int64 {
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start+int64(i))
	}
	return out
}

type pairKey struct{ a, b int64 }

func unordered(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// assertSingleRoundRobin checks that every pair meets once and no team plays twice in a round.
func assertSingleRoundRobin(t *testing.T, teams []int64, plan Plan) {
	t.Helper()

	pairs := make(map[pairKey]int)
	perRound := make(map[int64]map[int64]int)
	for _, f := range plan.Fixtures {
		if f.HomeTeamID == f.AwayTeamID {
			t.Fatalf("team %d paired with itself", f.HomeTeamID)
		}
		pairs[unordered(f.HomeTeamID, f.AwayTeamID)]++
		if perRound[f.RoundID] == nil {
			perRound[f.RoundID] = make(map[int64]int)
		}
		perRound[f.RoundID][f.HomeTeamID]++
		perRound[f.RoundID][f.AwayTeamID]++
	}

	wantPairs := len(teams) * (len(teams) - 1) / 2
	if len(plan.Fixtures) != wantPairs || len(pairs) != wantPairs {
		t.Fatalf("expected %d distinct fixtures, got %d fixtures / %d pairs", wantPairs, len(plan.Fixtures), len(pairs))
	}
	for pair, count := range pairs {
		if count != 1 {
			t.Fatalf("pair %v met %d times", pair, count)
		}
	}
	for roundID, counts := range perRound {
		for teamID, count := range counts {
			if count != 1 {
				t.Fatalf("team %d plays %d times in round %d", teamID, count, roundID)
			}
		}
	}
}

func TestRoundRobin_FourTeams(t *testing.T) {
	t.Parallel()

	teams := []int64{11, 12, 13, 14}
	rounds := []int64{101, 102, 103}

	plan, err := RoundRobin(teams, rounds, 1)
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}
	if plan.HasBye {
		t.Fatalf("even team count must not inject a bye")
	}
	if len(plan.RoundIDsUsed) != 3 {
		t.Fatalf("expected 3 rounds used, got %v", plan.RoundIDsUsed)
	}
	assertSingleRoundRobin(t, teams, plan)

	for _, roundID := range rounds {
		count := 0
		for _, f := range plan.Fixtures {
			if f.RoundID == roundID {
				count++
			}
		}
		if count != 2 {
			t.Fatalf("round %d has %d matches, want 2", roundID, count)
		}
	}

	first := plan.Fixtures[0]
	if first.RoundID != 101 || first.HomeTeamID != 11 || first.AwayTeamID != 14 {
		t.Fatalf("unexpected first fixture: %+v", first)
	}
}

func TestRoundRobin_FiveTeamsNeedsFiveRounds(t *testing.T) {
	t.Parallel()

	teams := seqIDs(1, 5)

	_, err := RoundRobin(teams, seqIDs(100, 4), 1)
	var insufficient *InsufficientRoundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientRoundsError, got %v", err)
	}
	if insufficient.Needed != 5 || insufficient.Available != 4 || insufficient.Missing() != 1 {
		t.Fatalf("unexpected deficit: %+v", insufficient)
	}

	rounds := seqIDs(100, 6)
	plan, err := RoundRobin(teams, rounds, 1)
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}
	if !plan.HasBye {
		t.Fatalf("odd team count must inject a bye")
	}
	if len(plan.RoundIDsUsed) != 5 {
		t.Fatalf("expected 5 rounds used, got %v", plan.RoundIDsUsed)
	}
	assertSingleRoundRobin(t, teams, plan)
	if len(plan.Fixtures) != 10 {
		t.Fatalf("expected 10 fixtures, got %d", len(plan.Fixtures))
	}

	byes := make(map[int64]int)
	for _, roundID := range plan.RoundIDsUsed {
		playing := make(map[int64]bool)
		for _, f := range plan.Fixtures {
			if f.RoundID == roundID {
				playing[f.HomeTeamID] = true
				playing[f.AwayTeamID] = true
			}
		}
		for _, team := range teams {
			if !playing[team] {
				byes[team]++
			}
		}
	}
	for _, team := range teams {
		if byes[team] != 1 {
			t.Fatalf("team %d has %d byes, want 1", team, byes[team])
		}
	}
}

func TestRoundRobin_DoubleLegMirrorsHomeAway(t *testing.T) {
	t.Parallel()

	teams := seqIDs(1, 4)
	plan, err := RoundRobin(teams, seqIDs(100, 6), 2)
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}
	if len(plan.Fixtures) != 12 {
		t.Fatalf("expected 12 fixtures, got %d", len(plan.Fixtures))
	}

	ordered := make(map[pairKey]int)
	for _, f := range plan.Fixtures {
		ordered[pairKey{a: f.HomeTeamID, b: f.AwayTeamID}]++
	}
	if len(ordered) != 12 {
		t.Fatalf("expected every ordered pair exactly once, got %d distinct", len(ordered))
	}
}

func TestRoundRobin_Preconditions(t *testing.T) {
	t.Parallel()

	if _, err := RoundRobin([]int64{1}, seqIDs(1, 5), 1); !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams, got %v", err)
	}
	if _, err := RoundRobin([]int64{1, 2, 2}, seqIDs(1, 5), 1); !errors.Is(err, ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
	if _, err := RoundRobin([]int64{1, 2}, seqIDs(1, 5), 0); !errors.Is(err, ErrInvalidLegs) {
		t.Fatalf("expected ErrInvalidLegs, got %v", err)
	}

	plan, err := RoundRobin([]int64{7, 8}, []int64{42}, 1)
	if err != nil {
		t.Fatalf("two teams: %v", err)
	}
	if len(plan.Fixtures) != 1 || plan.Fixtures[0] != (Fixture{RoundID: 42, HomeTeamID: 7, AwayTeamID: 8}) {
		t.Fatalf("unexpected two-team plan: %+v", plan.Fixtures)
	}
}

func TestRoundRobin_RandomTeamSets(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(20241016)
	for iteration := 0; iteration < 50; iteration++ {
		count := faker.IntRange(2, 16)
		teams := make([]int64, 0, count)
		used := make(map[int64]struct{}, count)
		for len(teams) < count {
			id := int64(faker.IntRange(1, 1_000_000))
			if _, ok := used[id]; ok {
				continue
			}
			used[id] = struct{}{}
			teams = append(teams, id)
		}

		needed := RoundsNeeded(count, 1)
		plan, err := RoundRobin(teams, seqIDs(1, needed+faker.IntRange(0, 3)), 1)
		if err != nil {
			t.Fatalf("iteration %d (%d teams): %v", iteration, count, err)
		}
		if len(plan.RoundIDsUsed) != needed {
			t.Fatalf("iteration %d: used %d rounds, want %d", iteration, len(plan.RoundIDsUsed), needed)
		}
		assertSingleRoundRobin(t, teams, plan)
	}
}
