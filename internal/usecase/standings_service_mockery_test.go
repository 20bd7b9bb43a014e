package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
	competitionmock "github.com/ProjectFanta/fantasy-nba/internal/mocks/domain/competition"
	standingmock "github.com/ProjectFanta/fantasy-nba/internal/mocks/domain/standing"
)

func TestStandingsService_H2H_ReturnsPersistedRowsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	standings := standingmock.NewRepository(t)
	service := NewStandingsService(competitions, standings)

	competitions.
		On("GetByID", mock.Anything, int64(7)).
		Return(competition.Competition{ID: 7, Type: competition.TypeH2H}, true, nil).
		Once()
	standings.
		On("ListH2H", mock.Anything, int64(7)).
		Return([]standing.H2HStanding{
			{CompetitionID: 7, TeamID: 2, TeamName: "Y", Position: 1, Played: 1, Wins: 1, Points: 3,
				GoalsFor: decimal.NewFromInt(60), GoalsAgainst: decimal.NewFromInt(30), GoalDiff: decimal.NewFromInt(30)},
			{CompetitionID: 7, TeamID: 1, TeamName: "X", Position: 2, Played: 1, Losses: 1,
				GoalsFor: decimal.NewFromInt(30), GoalsAgainst: decimal.NewFromInt(60), GoalDiff: decimal.NewFromInt(-30)},
		}, nil).
		Once()

	table, err := service.H2H(ctx, 7)
	require.NoError(t, err)
	require.Len(t, table.Standings, 2)
	assert.Equal(t, int64(2), table.Standings[0].TeamID)
	assert.Equal(t, 3, table.Standings[0].Points)
	assert.True(t, table.Standings[1].GoalDiff.Equal(decimal.NewFromInt(-30)))
}

func TestStandingsService_H2H_FallsBackToZeroRowsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	competitions := competitionmock.NewRepository(t)
	standings := standingmock.NewRepository(t)
	service := NewStandingsService(competitions, standings)

	competitions.On("GetByID", mock.Anything, int64(7)).Return(competition.Competition{ID: 7}, true, nil).Once()
	standings.On("ListH2H", mock.Anything, int64(7)).Return(nil, nil).Once()
	competitions.
		On("ListTeams", mock.Anything, int64(7)).
		Return([]competition.Team{
			{ID: 1, CompetitionID: 7, Name: "Bravo"},
			{ID: 2, CompetitionID: 7, Name: "Alpha"},
		}, nil).
		Once()

	table, err := service.H2H(ctx, 7)
	require.NoError(t, err)
	require.Len(t, table.Standings, 2)
	assert.Equal(t, "Alpha", table.Standings[0].TeamName)
	assert.Equal(t, 1, table.Standings[0].Position)
	assert.Equal(t, "Bravo", table.Standings[1].TeamName)
	assert.Zero(t, table.Standings[1].Played)
}

func TestStandingsService_F1_CompetitionNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	competitions := competitionmock.NewRepository(t)
	standings := standingmock.NewRepository(t)
	service := NewStandingsService(competitions, standings)

	competitions.On("GetByID", mock.Anything, int64(99)).Return(competition.Competition{}, false, nil).Once()

	_, err := service.F1(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_F1_PropagatesRepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	competitions := competitionmock.NewRepository(t)
	standings := standingmock.NewRepository(t)
	service := NewStandingsService(competitions, standings)
	boom := errors.New("connection reset")

	competitions.On("GetByID", mock.Anything, int64(5)).Return(competition.Competition{ID: 5}, true, nil).Once()
	standings.On("ListF1", mock.Anything, int64(5)).Return(nil, boom).Once()

	_, err := service.F1(context.Background(), 5)
	require.ErrorIs(t, err, boom)
}

func TestStandingsService_RejectsNonPositiveCompetition(t *testing.T) {
	t.Parallel()

	service := NewStandingsService(competitionmock.NewRepository(t), standingmock.NewRepository(t))
	_, err := service.H2H(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
