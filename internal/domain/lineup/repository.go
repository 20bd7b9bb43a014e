package lineup

import "context"

// Repository describes lineup persistence needs from use cases.
type Repository interface {
	GetByTeamAndRound(ctx context.Context, teamID, roundID int64) (Lineup, bool, error)
	ListByCompetition(ctx context.Context, competitionID int64) ([]Lineup, error)
	Upsert(ctx context.Context, item Lineup) error
}
