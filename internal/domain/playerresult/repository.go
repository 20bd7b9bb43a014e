package playerresult

import "context"

// Repository describes player result persistence needs from use cases.
type Repository interface {
	ListByRounds(ctx context.Context, roundIDs []int64) ([]PlayerResult, error)
	// Upsert inserts or overwrites results keyed by (round, player key).
	Upsert(ctx context.Context, items []PlayerResult) error
	DeleteByRound(ctx context.Context, roundID int64) (int64, error)
}
