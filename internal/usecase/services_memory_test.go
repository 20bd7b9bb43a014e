package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/schedule"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/infrastructure/repository/memory"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

const (
	testLeagueOwner int64 = 1
	testOwnerX      int64 = 5
	testOwnerY      int64 = 6

	testH2HCompetition int64 = 10
	testF1Competition  int64 = 20
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

type testServices struct {
	store     *memory.Store
	recompute *RecomputeService
	schedule  *ScheduleService
	matches   *MatchService
	results   *ResultService
	imports   *ImportService
	rounds    *RoundService
	lineups   *LineupService
	standings *StandingsService
}

// testSeed holds one H2H competition (teams 1..3, rounds 11..13) and one F1
// competition (teams 4 and 5, rounds 21 and 22). Round 12 locked on 2026-01-01.
func testSeed() memory.Seed {
	locked := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	resultsAt := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return memory.Seed{
		Leagues: []competition.League{{ID: 1, Name: "Office League", OwnerUserID: testLeagueOwner}},
		Competitions: []competition.Competition{
			{ID: testH2HCompetition, LeagueID: 1, Name: "Season", Type: competition.TypeH2H, TotalRounds: 3},
			{ID: testF1Competition, LeagueID: 1, Name: "Sprint", Type: competition.TypeF1, TotalRounds: 2},
		},
		Rounds: []competition.Round{
			{ID: 11, CompetitionID: testH2HCompetition, DayIndex: 1, Name: "Week 1"},
			{ID: 12, CompetitionID: testH2HCompetition, DayIndex: 2, Name: "Week 2", LockAt: &locked},
			{ID: 13, CompetitionID: testH2HCompetition, DayIndex: 3, Name: "Week 3"},
			{ID: 21, CompetitionID: testF1Competition, DayIndex: 1, Name: "Sprint 1"},
			{ID: 22, CompetitionID: testF1Competition, DayIndex: 2, Name: "Sprint 2"},
		},
		Teams: []competition.Team{
			{ID: 1, CompetitionID: testH2HCompetition, Name: "X", OwnerUserID: testOwnerX},
			{ID: 2, CompetitionID: testH2HCompetition, Name: "Y", OwnerUserID: testOwnerY},
			{ID: 3, CompetitionID: testH2HCompetition, Name: "Z", OwnerUserID: testLeagueOwner},
			{ID: 4, CompetitionID: testF1Competition, Name: "X", OwnerUserID: testOwnerX},
			{ID: 5, CompetitionID: testF1Competition, Name: "Y", OwnerUserID: testOwnerY},
		},
		Lineups: []lineup.Lineup{
			{TeamID: 1, RoundID: 11, Entries: []string{"alice"}},
			{TeamID: 2, RoundID: 11, Entries: []string{"bob"}},
			{TeamID: 3, RoundID: 11, Entries: []string{"carol"}},
			{TeamID: 4, RoundID: 21, Entries: []string{"Alice", "ALICE", "bob"}},
		},
		Results: []playerresult.PlayerResult{
			{RoundID: 21, PlayerKey: "alice", PlayerName: "Alice", Points: decimal.NewFromInt(20), UpdatedAt: resultsAt},
			{RoundID: 21, PlayerKey: "bob", PlayerName: "Bob", Points: decimal.NewFromInt(15), UpdatedAt: resultsAt},
		},
	}
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	st := memory.NewStore(testSeed())
	repos := st.Repositories()
	logger := logging.NewNop()

	svc := testServices{
		store:     st,
		recompute: NewRecomputeService(st, repos.Competitions, logger),
		schedule:  NewScheduleService(st, logger),
		matches:   NewMatchService(st, repos.Competitions, repos.Matches, logger),
		results:   NewResultService(st, repos.Competitions, repos.Results, logger),
		imports:   NewImportService(st, logger),
		rounds:    NewRoundService(st, repos.Competitions, logger),
		lineups:   NewLineupService(st, repos.Competitions, repos.Lineups, logger),
		standings: NewStandingsService(repos.Competitions, repos.Standings),
	}
	svc.lineups.now = func() time.Time { return testNow }
	svc.results.now = func() time.Time { return testNow }
	svc.imports.now = func() time.Time { return testNow }
	return svc
}

func TestRecompute_F1EndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	summary, err := svc.recompute.Recompute(ctx, RecomputeInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testF1Competition,
		Mode:          RecomputeF1,
	})
	require.NoError(t, err)
	require.NotNil(t, summary.F1)
	assert.Nil(t, summary.H2H)
	assert.Equal(t, F1Summary{RoundsProcessed: 1, TeamsEvaluated: 2}, *summary.F1)

	table, err := svc.standings.F1(ctx, testF1Competition)
	require.NoError(t, err)

	type row struct {
		TeamID   int64
		Position int
		Points   int
		Total    string
	}
	got := make([]row, 0, len(table.Standings))
	for _, item := range table.Standings {
		got = append(got, row{item.TeamID, item.Position, item.Points, item.TotalScore.String()})
	}
	want := []row{
		{TeamID: 4, Position: 1, Points: 25, Total: "35"},
		{TeamID: 5, Position: 2, Points: 18, Total: "0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected f1 table (-want +got):\n%s", diff)
	}

	require.Len(t, table.Rounds, 2)
	for _, score := range table.Rounds {
		assert.Equal(t, int64(21), score.RoundID, "round without results must be skipped")
	}
}

func TestRecompute_ForbiddenForNonOwner(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	_, err := svc.recompute.Recompute(context.Background(), RecomputeInput{
		ActorUserID:   testOwnerX,
		CompetitionID: testF1Competition,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = svc.recompute.Recompute(context.Background(), RecomputeInput{CompetitionID: testF1Competition})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRecompute_UnknownCompetition(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	_, err := svc.recompute.Recompute(context.Background(), RecomputeInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: 404,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func scheduleH2H(t *testing.T, svc testServices) ScheduleResult {
	t.Helper()

	result, err := svc.schedule.Generate(context.Background(), GenerateScheduleInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testH2HCompetition,
	})
	require.NoError(t, err)
	return result
}

func TestSchedule_GenerateOddTeamCount(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	result := scheduleH2H(t, svc)

	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 3, result.RoundsUsed)
	assert.True(t, result.HasBye)
	assert.Zero(t, result.MatchesDeleted)

	items, err := svc.matches.ListByCompetition(context.Background(), testH2HCompetition)
	require.NoError(t, err)
	require.Len(t, items, 3)

	pairs := make(map[[2]int64]int)
	for _, item := range items {
		assert.Equal(t, match.ResultPending, item.Result)
		a, b := min(item.HomeTeamID, item.AwayTeamID), max(item.HomeTeamID, item.AwayTeamID)
		pairs[[2]int64{a, b}]++
	}
	assert.Len(t, pairs, 3, "every pair meets exactly once")

	again := scheduleH2H(t, svc)
	assert.Equal(t, int64(3), again.MatchesDeleted)
}

func TestSchedule_InsufficientRounds(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	_, err := svc.schedule.Generate(context.Background(), GenerateScheduleInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testH2HCompetition,
		Legs:          2,
	})
	require.ErrorIs(t, err, ErrPrecondition)

	var insufficient *schedule.InsufficientRoundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 6, insufficient.Needed)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 3, insufficient.Missing())
}

func TestSchedule_RejectsForeignTeamAndF1Competition(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	_, err := svc.schedule.Generate(context.Background(), GenerateScheduleInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testH2HCompetition,
		TeamIDs:       []int64{1, 4},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.schedule.Generate(context.Background(), GenerateScheduleInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testF1Competition,
	})
	require.ErrorIs(t, err, ErrPrecondition)
}

var h2hTestScores = map[int64]int64{1: 20, 2: 15, 3: 30}

func saveRoundElevenResults(t *testing.T, svc testServices) SaveResultsResult {
	t.Helper()

	result, err := svc.results.Save(context.Background(), SaveResultsInput{
		ActorUserID: testLeagueOwner,
		RoundID:     11,
		Items: []ResultItem{
			{Player: "Alice", Points: decimal.NewFromInt(h2hTestScores[1])},
			{Player: "bob", Points: decimal.NewFromInt(h2hTestScores[2])},
			{Player: " CAROL ", Points: decimal.NewFromInt(h2hTestScores[3])},
		},
	})
	require.NoError(t, err)
	return result
}

func TestResults_SaveResolvesMatchesAndRecomputeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	scheduleH2H(t, svc)

	saved := saveRoundElevenResults(t, svc)
	assert.Equal(t, 3, saved.Saved)
	require.NotNil(t, saved.Recompute.H2H)
	assert.Equal(t, 1, saved.Recompute.H2H.MatchesUpdated)

	items, err := svc.matches.ListByCompetition(ctx, testH2HCompetition)
	require.NoError(t, err)
	for _, item := range items {
		if item.RoundID != 11 {
			assert.False(t, item.Resolved(), "match %d in an unplayed round must stay pending", item.ID)
			continue
		}
		require.True(t, item.Resolved())
		home := decimal.NewFromInt(h2hTestScores[item.HomeTeamID])
		away := decimal.NewFromInt(h2hTestScores[item.AwayTeamID])
		assert.True(t, item.HomeScore.Decimal.Equal(home))
		assert.True(t, item.AwayScore.Decimal.Equal(away))
		assert.Equal(t, match.ResultFor(home, away), item.Result)
	}

	second, err := svc.recompute.Recompute(ctx, RecomputeInput{ActorUserID: testLeagueOwner, CompetitionID: testH2HCompetition})
	require.NoError(t, err)
	require.NotNil(t, second.H2H)
	assert.Equal(t, 3, second.H2H.MatchesEvaluated)
	assert.Zero(t, second.H2H.MatchesUpdated)

	table, err := svc.standings.H2H(ctx, testH2HCompetition)
	require.NoError(t, err)
	require.Len(t, table.Standings, 3)

	played, points := 0, 0
	for _, row := range table.Standings {
		played += row.Played
		points += row.Points
	}
	assert.Equal(t, 2, played)
	assert.Equal(t, 3, points)
	assert.Equal(t, 3, table.Standings[0].Points)
}

func TestResults_SaveCollapsesDuplicatesAndSkipsBlankNames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	result, err := svc.results.Save(ctx, SaveResultsInput{
		ActorUserID: testLeagueOwner,
		RoundID:     22,
		Items: []ResultItem{
			{Player: "  Alice ", Points: decimal.NewFromInt(1)},
			{Player: "   ", Points: decimal.NewFromInt(9)},
			{Player: "alice", Points: decimal.RequireFromString("12.5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 2, result.Skipped)

	items, err := svc.results.ListByRound(ctx, 22)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].PlayerKey)
	assert.True(t, items[0].Points.Equal(decimal.RequireFromString("12.5")))

	_, err = svc.results.Save(ctx, SaveResultsInput{
		ActorUserID: testLeagueOwner,
		RoundID:     22,
		Items:       []ResultItem{{Player: " ", Points: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatches_ResolveRoundTouchesOnlyThatRound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	scheduleH2H(t, svc)

	repos := svc.store.Repositories()
	require.NoError(t, repos.Results.Upsert(ctx, []playerresult.PlayerResult{
		{RoundID: 11, PlayerKey: "alice", PlayerName: "alice", Points: decimal.NewFromInt(20)},
		{RoundID: 11, PlayerKey: "bob", PlayerName: "bob", Points: decimal.NewFromInt(15)},
		{RoundID: 11, PlayerKey: "carol", PlayerName: "carol", Points: decimal.NewFromInt(30)},
	}))

	result, err := svc.matches.ResolveRound(ctx, ResolveRoundInput{ActorUserID: testLeagueOwner, RoundID: 12})
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchesEvaluated)
	assert.Zero(t, result.MatchesUpdated)

	result, err = svc.matches.ResolveRound(ctx, ResolveRoundInput{ActorUserID: testLeagueOwner, RoundID: 11})
	require.NoError(t, err)
	assert.Equal(t, testH2HCompetition, result.CompetitionID)
	assert.Equal(t, 1, result.MatchesEvaluated)
	assert.Equal(t, 1, result.MatchesUpdated)

	_, err = svc.matches.ResolveRound(ctx, ResolveRoundInput{ActorUserID: testOwnerY, RoundID: 11})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRounds_ResetReturnsMatchesToPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	scheduleH2H(t, svc)
	saveRoundElevenResults(t, svc)

	result, err := svc.rounds.Reset(ctx, ResetRoundInput{ActorUserID: testLeagueOwner, RoundID: 11})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ResultsDeleted)
	assert.Equal(t, int64(1), result.MatchesReset)

	items, err := svc.matches.ListByCompetition(ctx, testH2HCompetition)
	require.NoError(t, err)
	for _, item := range items {
		assert.False(t, item.Resolved())
		assert.False(t, item.HomeScore.Valid)
		assert.Equal(t, match.ResultPending, item.Result)
	}

	table, err := svc.standings.H2H(ctx, testH2HCompetition)
	require.NoError(t, err)
	for _, row := range table.Standings {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
	}
}

func TestRounds_UpdateLockSetsAndClears(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	jakarta := time.FixedZone("WIB", 7*60*60)
	at := time.Date(2026, 3, 1, 19, 0, 0, 0, jakarta)

	round, err := svc.rounds.UpdateLock(ctx, UpdateLockInput{ActorUserID: testLeagueOwner, RoundID: 13, LockAt: &at})
	require.NoError(t, err)
	require.NotNil(t, round.LockAt)
	assert.Equal(t, time.UTC, round.LockAt.Location())
	assert.True(t, round.LockAt.Equal(at))

	round, err = svc.rounds.UpdateLock(ctx, UpdateLockInput{ActorUserID: testLeagueOwner, RoundID: 13})
	require.NoError(t, err)
	assert.Nil(t, round.LockAt)

	_, err = svc.rounds.UpdateLock(ctx, UpdateLockInput{ActorUserID: testOwnerX, RoundID: 13, LockAt: &at})
	require.ErrorIs(t, err, ErrForbidden)
}

// recordingUnitOfWork records lock keys and fails every unit with failWith
// after fn has run, which rolls the memory store back.
type recordingUnitOfWork struct {
	inner    *memory.Store
	keys     []int64
	failWith error
}

func (u *recordingUnitOfWork) Do(ctx context.Context, lockKey int64, fn func(ctx context.Context, repos store.Repositories) error) error {
	u.keys = append(u.keys, lockKey)
	return u.inner.Do(ctx, lockKey, func(ctx context.Context, repos store.Repositories) error {
		if err := fn(ctx, repos); err != nil {
			return err
		}
		return u.failWith
	})
}

func TestRounds_UpdateLockRunsInsideUnitOfWork(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memory.NewStore(testSeed())
	uow := &recordingUnitOfWork{inner: st, failWith: errTxConflict}
	rounds := NewRoundService(uow, st.Repositories().Competitions, logging.NewNop())
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := rounds.UpdateLock(ctx, UpdateLockInput{ActorUserID: testLeagueOwner, RoundID: 13, LockAt: &at})
	require.ErrorIs(t, err, errTxConflict)
	assert.Equal(t, []int64{testH2HCompetition}, uow.keys)

	stored, found, err := st.Repositories().Competitions.GetRound(ctx, 13)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, stored.LockAt, "failed unit must not leave the lock behind")

	uow.failWith = nil
	round, err := rounds.UpdateLock(ctx, UpdateLockInput{ActorUserID: testLeagueOwner, RoundID: 13, LockAt: &at})
	require.NoError(t, err)
	require.NotNil(t, round.LockAt)
	assert.True(t, round.LockAt.Equal(at))
	assert.Equal(t, testH2HCompetition, round.CompetitionID)
}

func TestLineups_SaveRespectsOwnershipAndLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	saved, err := svc.lineups.Save(ctx, SaveLineupInput{
		ActorUserID: testOwnerX,
		TeamID:      1,
		RoundID:     13,
		Entries:     []string{" Dave ", "", "erin"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dave", "erin"}, saved.Lineup.Entries)
	assert.Equal(t, testNow, saved.Lineup.UpdatedAt)

	got, found, err := svc.lineups.Get(ctx, 1, 13)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"Dave", "erin"}, got.Entries)

	_, err = svc.lineups.Save(ctx, SaveLineupInput{ActorUserID: testOwnerY, TeamID: 1, RoundID: 13, Entries: []string{"x"}})
	require.ErrorIs(t, err, ErrForbidden, "only the team owner may save")

	_, err = svc.lineups.Save(ctx, SaveLineupInput{ActorUserID: testOwnerX, TeamID: 1, RoundID: 21, Entries: []string{"x"}})
	require.ErrorIs(t, err, ErrInvalidInput, "round of another competition")

	_, err = svc.lineups.Save(ctx, SaveLineupInput{ActorUserID: testOwnerX, TeamID: 1, RoundID: 12, Entries: []string{"x"}})
	require.ErrorIs(t, err, ErrPrecondition, "locked round")

	_, err = svc.lineups.Save(ctx, SaveLineupInput{ActorUserID: testOwnerX, TeamID: 1, RoundID: 12, Entries: []string{"x"}, Override: true})
	require.ErrorIs(t, err, ErrForbidden, "override needs the league owner")

	_, err = svc.lineups.Save(ctx, SaveLineupInput{ActorUserID: testLeagueOwner, TeamID: 3, RoundID: 12, Entries: []string{"x"}, Override: true})
	require.NoError(t, err)
}

func TestLineups_SaveValidatesEntryCount(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	_, err := svc.lineups.Save(context.Background(), SaveLineupInput{
		ActorUserID: testOwnerX, TeamID: 1, RoundID: 13, Entries: []string{" ", ""},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	tooMany := make([]string, lineup.MaxEntries+1)
	for i := range tooMany {
		tooMany[i] = "player"
	}
	_, err = svc.lineups.Save(context.Background(), SaveLineupInput{
		ActorUserID: testOwnerX, TeamID: 1, RoundID: 13, Entries: tooMany,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func importRows() []ImportRow {
	return []ImportRow{
		{RoundID: 22, TeamName: "X", PlayerName: "Alice", Points: "20,5"},
		{RoundID: 22, TeamName: "x ", PlayerName: "ALICE", Points: "3"},
		{RoundID: 22, TeamName: "Y", PlayerName: "dave", Points: "10"},
		{RoundID: 99, TeamName: "X", PlayerName: "bob", Points: "4"},
		{RoundID: 22, TeamName: "Nope", PlayerName: "bob", Points: "1"},
		{RoundID: 22, TeamName: "X", PlayerName: "carol", Points: "1"},
		{RoundID: 22, TeamName: "X", PlayerName: "bob", Points: "abc"},
	}
}

func TestImport_DryRunPreviewsWithoutWriting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	result, err := svc.imports.Import(ctx, ImportInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testF1Competition,
		Rows:          importRows(),
		DryRun:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Total)
	assert.Equal(t, 2, result.Valid)
	assert.Equal(t, 5, result.Invalid)
	assert.Equal(t, 2, result.Inserted)
	assert.Nil(t, result.Recompute)

	statuses := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		statuses = append(statuses, row.Status)
	}
	assert.Equal(t, []string{"valid", "invalid", "valid", "invalid", "invalid", "invalid", "invalid"}, statuses)
	assert.Equal(t, "20.5", result.Rows[0].Points)
	assert.Equal(t, int64(4), result.Rows[0].TeamID)
	assert.Contains(t, result.Rows[1].Issues[0], "duplicate of line 1")

	items, err := svc.results.ListByRound(ctx, 22)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestImport_ApplyWritesValidRowsAndRecomputes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)

	result, err := svc.imports.Import(ctx, ImportInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testF1Competition,
		Rows:          importRows(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Recompute)
	require.NotNil(t, result.Recompute.F1)
	assert.Equal(t, 2, result.Recompute.F1.RoundsProcessed)

	items, err := svc.results.ListByRound(ctx, 22)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alice", items[0].PlayerKey)
	assert.True(t, items[0].Points.Equal(decimal.RequireFromString("20.5")))
	assert.Equal(t, "dave", items[1].PlayerKey)
}

func TestImport_ExistingResultNeedsOverwrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	rows := []ImportRow{{RoundID: 21, TeamName: "X", PlayerName: "alice", Points: "7"}}

	blocked, err := svc.imports.Import(ctx, ImportInput{ActorUserID: testLeagueOwner, CompetitionID: testF1Competition, Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 1, blocked.Invalid)
	assert.Nil(t, blocked.Recompute, "zero valid rows is a no-op")

	applied, err := svc.imports.Import(ctx, ImportInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testF1Competition,
		Rows:          rows,
		Overwrite:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied.Overwritten)
	assert.Zero(t, applied.Inserted)

	items, err := svc.results.ListByRound(ctx, 21)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Points.Equal(decimal.NewFromInt(7)))
}

var errTxConflict = errors.New("serialization conflict")

// conflictOnceUnitOfWork fails the first attempt of every unit after fn has run,
// rolling it back, then runs fn again the way a retried transaction does.
type conflictOnceUnitOfWork struct {
	inner    *memory.Store
	attempts int
}

func (u *conflictOnceUnitOfWork) Do(ctx context.Context, lockKey int64, fn func(ctx context.Context, repos store.Repositories) error) error {
	u.attempts++
	err := u.inner.Do(ctx, lockKey, func(ctx context.Context, repos store.Repositories) error {
		if err := fn(ctx, repos); err != nil {
			return err
		}
		return errTxConflict
	})
	if !errors.Is(err, errTxConflict) {
		return err
	}
	u.attempts++
	return u.inner.Do(ctx, lockKey, fn)
}

func TestImport_RetriedUnitOfWorkReportsSingleAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memory.NewStore(testSeed())
	uow := &conflictOnceUnitOfWork{inner: st}
	imports := NewImportService(uow, logging.NewNop())
	imports.now = func() time.Time { return testNow }

	result, err := imports.Import(ctx, ImportInput{
		ActorUserID:   testLeagueOwner,
		CompetitionID: testF1Competition,
		Rows:          importRows(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, uow.attempts)

	assert.Equal(t, 7, result.Total)
	assert.Equal(t, 2, result.Valid)
	assert.Equal(t, 5, result.Invalid)
	assert.Equal(t, 2, result.Inserted)
	assert.Zero(t, result.Overwritten)
	assert.Len(t, result.Rows, result.Total)
	require.NotNil(t, result.Recompute)

	items, err := st.Repositories().Results.ListByRounds(ctx, []int64{22})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRecomputeLeague_FansOutOverCompetitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices(t)
	svc.recompute.SetWorkers(2)

	result, err := svc.recompute.RecomputeLeague(ctx, RecomputeLeagueInput{ActorUserID: testLeagueOwner, LeagueID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Zero(t, result.FailedCount)
	require.Len(t, result.Items, 2)
	assert.Equal(t, testH2HCompetition, result.Items[0].CompetitionID)
	assert.Equal(t, testF1Competition, result.Items[1].CompetitionID)

	_, err = svc.recompute.RecomputeLeague(ctx, RecomputeLeagueInput{ActorUserID: testOwnerX, LeagueID: 1})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestStandings_NeverComputedReportsZeroRows(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	table, err := svc.standings.H2H(context.Background(), testH2HCompetition)
	require.NoError(t, err)
	require.Len(t, table.Standings, 3)
	for i, row := range table.Standings {
		assert.Equal(t, i+1, row.Position)
		assert.Zero(t, row.Points)
	}
}
