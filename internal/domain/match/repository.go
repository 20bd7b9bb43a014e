package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionID int64) ([]Match, error)
	ListByRound(ctx context.Context, roundID int64) ([]Match, error)
	// DeleteByRounds removes every match scheduled in the given rounds and returns the count.
	DeleteByRounds(ctx context.Context, roundIDs []int64) (int64, error)
	CreateMany(ctx context.Context, items []Match) error
	// UpdateOutcomes writes scores and result codes of the given matches by id.
	UpdateOutcomes(ctx context.Context, items []Match) error
	// ResetRound clears scores and results of the round's matches and returns the count.
	ResetRound(ctx context.Context, roundID int64) (int64, error)
}
