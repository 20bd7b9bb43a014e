package usecase

import (
	"context"
	"fmt"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
)

func requireActor(actorUserID int64) error {
	if actorUserID <= 0 {
		return fmt.Errorf("%w: authenticated user is required", ErrUnauthorized)
	}
	return nil
}

// ownedCompetition loads a competition and checks that actor owns its league.
func ownedCompetition(ctx context.Context, repo competition.Repository, competitionID, actorUserID int64) (competition.Competition, error) {
	if err := requireActor(actorUserID); err != nil {
		return competition.Competition{}, err
	}
	comp, exists, err := repo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%d", ErrNotFound, competitionID)
	}
	if !comp.OwnedBy(actorUserID) {
		return competition.Competition{}, fmt.Errorf("%w: user %d does not own competition %d", ErrForbidden, actorUserID, competitionID)
	}
	return comp, nil
}

// roundWithCompetition resolves the round and its competition without any ownership check.
func roundWithCompetition(ctx context.Context, repo competition.Repository, roundID int64) (competition.Round, competition.Competition, error) {
	round, exists, err := repo.GetRound(ctx, roundID)
	if err != nil {
		return competition.Round{}, competition.Competition{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return competition.Round{}, competition.Competition{}, fmt.Errorf("%w: round=%d", ErrNotFound, roundID)
	}
	comp, exists, err := repo.GetByID(ctx, round.CompetitionID)
	if err != nil {
		return competition.Round{}, competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Round{}, competition.Competition{}, fmt.Errorf("%w: competition=%d", ErrNotFound, round.CompetitionID)
	}
	return round, comp, nil
}

// ownedRound is roundWithCompetition plus the league owner check.
func ownedRound(ctx context.Context, repo competition.Repository, roundID, actorUserID int64) (competition.Round, competition.Competition, error) {
	if err := requireActor(actorUserID); err != nil {
		return competition.Round{}, competition.Competition{}, err
	}
	round, comp, err := roundWithCompetition(ctx, repo, roundID)
	if err != nil {
		return competition.Round{}, competition.Competition{}, err
	}
	if !comp.OwnedBy(actorUserID) {
		return competition.Round{}, competition.Competition{}, fmt.Errorf("%w: user %d does not own competition %d", ErrForbidden, actorUserID, comp.ID)
	}
	return round, comp, nil
}
