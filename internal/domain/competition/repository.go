package competition

import (
	"context"
	"time"
)

// Repository describes competition, round and team persistence needs from use cases.
type Repository interface {
	GetLeague(ctx context.Context, leagueID int64) (League, bool, error)
	GetByID(ctx context.Context, competitionID int64) (Competition, bool, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Competition, error)
	// ListRounds returns rounds ordered by day index ascending.
	ListRounds(ctx context.Context, competitionID int64) ([]Round, error)
	GetRound(ctx context.Context, roundID int64) (Round, bool, error)
	UpdateRoundLock(ctx context.Context, roundID int64, lockAt *time.Time) error
	// ListTeams returns teams ordered by id.
	ListTeams(ctx context.Context, competitionID int64) ([]Team, error)
	GetTeam(ctx context.Context, teamID int64) (Team, bool, error)
}
