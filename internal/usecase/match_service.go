package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

type ResolveRoundInput struct {
	ActorUserID int64
	RoundID     int64 `validate:"gt=0"`
}

type ResolveRoundResult struct {
	CompetitionID int64 `json:"competition_id"`
	RoundID       int64 `json:"round_id"`
	H2HSummary
}

type MatchService struct {
	uow          store.UnitOfWork
	competitions competition.Repository
	matches      match.Repository
	logger       *logging.Logger
}

func NewMatchService(uow store.UnitOfWork, competitions competition.Repository, matches match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		uow:          uow,
		competitions: competitions,
		matches:      matches,
		logger:       logger.Named("match"),
	}
}

// ResolveRound rescores only the matches of one round, then rebuilds the H2H table.
func (s *MatchService) ResolveRound(ctx context.Context, input ResolveRoundInput) (ResolveRoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResolveRound",
		attribute.Int64("round_id", input.RoundID),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return ResolveRoundResult{}, err
	}
	if err := validateInput(input); err != nil {
		return ResolveRoundResult{}, err
	}
	_, comp, err := ownedRound(ctx, s.competitions, input.RoundID, input.ActorUserID)
	if err != nil {
		return ResolveRoundResult{}, err
	}

	result := ResolveRoundResult{CompetitionID: comp.ID, RoundID: input.RoundID}
	err = s.uow.Do(ctx, comp.ID, func(ctx context.Context, repos store.Repositories) error {
		current, err := ownedCompetition(ctx, repos.Competitions, comp.ID, input.ActorUserID)
		if err != nil {
			return err
		}
		state, err := loadCompetitionState(ctx, repos, current)
		if err != nil {
			return err
		}
		matches, err := repos.Matches.ListByCompetition(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		summary, err := rebuildH2H(ctx, repos, state, matches, func(m match.Match) bool {
			return m.RoundID == input.RoundID
		})
		if err != nil {
			return err
		}
		result.H2HSummary = summary
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return ResolveRoundResult{}, err
	}

	s.logger.InfoContext(ctx, "round resolved",
		"competition_id", result.CompetitionID,
		"round_id", result.RoundID,
		"matches_evaluated", result.MatchesEvaluated,
		"matches_updated", result.MatchesUpdated,
	)
	return result, nil
}

func (s *MatchService) ListByCompetition(ctx context.Context, competitionID int64) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByCompetition")
	defer span.End()

	if competitionID <= 0 {
		return nil, fmt.Errorf("%w: competition id must be positive", ErrInvalidInput)
	}
	if _, exists, err := s.competitions.GetByID(ctx, competitionID); err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: competition=%d", ErrNotFound, competitionID)
	}

	items, err := s.matches.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}
