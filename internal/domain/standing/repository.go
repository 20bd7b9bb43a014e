package standing

import "context"

// Repository stores derived standings. Replace operations drop every row of the
// competition before inserting the new projection.
type Repository interface {
	ReplaceF1(ctx context.Context, competitionID int64, rows []F1Standing, rounds []F1RoundScore) error
	ReplaceH2H(ctx context.Context, competitionID int64, rows []H2HStanding) error
	ListF1(ctx context.Context, competitionID int64) ([]F1Standing, error)
	ListF1RoundScores(ctx context.Context, competitionID int64) ([]F1RoundScore, error)
	ListH2H(ctx context.Context, competitionID int64) ([]H2HStanding, error)
}
