package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

type ResetRoundInput struct {
	ActorUserID int64
	RoundID     int64 `validate:"gt=0"`
}

type ResetRoundResult struct {
	RoundID        int64            `json:"round_id"`
	ResultsDeleted int64            `json:"results_deleted"`
	MatchesReset   int64            `json:"matches_reset"`
	Recompute      RecomputeSummary `json:"recompute"`
}

type UpdateLockInput struct {
	ActorUserID int64
	RoundID     int64 `validate:"gt=0"`
	LockAt      *time.Time
}

type RoundService struct {
	uow          store.UnitOfWork
	competitions competition.Repository
	logger       *logging.Logger
}

func NewRoundService(uow store.UnitOfWork, competitions competition.Repository, logger *logging.Logger) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RoundService{uow: uow, competitions: competitions, logger: logger.Named("rounds")}
}

// Reset wipes a round's player results, returns its matches to pending and
// recomputes the competition.
func (s *RoundService) Reset(ctx context.Context, input ResetRoundInput) (ResetRoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Reset", attribute.Int64("round_id", input.RoundID))
	defer span.End()

	if err := validateInput(input); err != nil {
		return ResetRoundResult{}, err
	}
	_, comp, err := ownedRound(ctx, s.competitions, input.RoundID, input.ActorUserID)
	if err != nil {
		recordSpanError(span, err)
		return ResetRoundResult{}, err
	}

	result := ResetRoundResult{RoundID: input.RoundID}
	err = s.uow.Do(ctx, comp.ID, func(ctx context.Context, repos store.Repositories) error {
		current, err := ownedCompetition(ctx, repos.Competitions, comp.ID, input.ActorUserID)
		if err != nil {
			return err
		}
		if result.ResultsDeleted, err = repos.Results.DeleteByRound(ctx, input.RoundID); err != nil {
			return fmt.Errorf("delete round results: %w", err)
		}
		if result.MatchesReset, err = repos.Matches.ResetRound(ctx, input.RoundID); err != nil {
			return fmt.Errorf("reset round matches: %w", err)
		}
		result.Recompute, err = recomputeDerived(ctx, repos, current, RecomputeAll)
		return err
	})
	if err != nil {
		recordSpanError(span, err)
		return ResetRoundResult{}, err
	}

	s.logger.InfoContext(ctx, "round reset",
		"competition_id", comp.ID,
		"round_id", input.RoundID,
		"results_deleted", result.ResultsDeleted,
		"matches_reset", result.MatchesReset,
	)
	return result, nil
}

// UpdateLock sets the lineup lock of a round; a nil LockAt clears it.
func (s *RoundService) UpdateLock(ctx context.Context, input UpdateLockInput) (competition.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.UpdateLock", attribute.Int64("round_id", input.RoundID))
	defer span.End()

	if err := validateInput(input); err != nil {
		return competition.Round{}, err
	}
	_, comp, err := ownedRound(ctx, s.competitions, input.RoundID, input.ActorUserID)
	if err != nil {
		recordSpanError(span, err)
		return competition.Round{}, err
	}

	var lockAt *time.Time
	if input.LockAt != nil {
		utc := input.LockAt.UTC()
		lockAt = &utc
	}

	var round competition.Round
	err = s.uow.Do(ctx, comp.ID, func(ctx context.Context, repos store.Repositories) error {
		current, _, err := ownedRound(ctx, repos.Competitions, input.RoundID, input.ActorUserID)
		if err != nil {
			return err
		}
		if err := repos.Competitions.UpdateRoundLock(ctx, current.ID, lockAt); err != nil {
			return fmt.Errorf("update round lock: %w", err)
		}
		current.LockAt = lockAt
		round = current
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return competition.Round{}, err
	}

	s.logger.InfoContext(ctx, "round lock updated", "competition_id", comp.ID, "round_id", round.ID, "locked", lockAt != nil)
	return round, nil
}
