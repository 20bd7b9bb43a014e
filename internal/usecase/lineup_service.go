package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

type SaveLineupInput struct {
	ActorUserID int64
	TeamID      int64 `validate:"gt=0"`
	RoundID     int64 `validate:"gt=0"`
	Entries     []string
	// Override bypasses the round lock; only honoured for the league owner.
	Override bool
}

type SaveLineupResult struct {
	Lineup    lineup.Lineup    `json:"lineup"`
	Recompute RecomputeSummary `json:"recompute"`
}

type LineupService struct {
	uow          store.UnitOfWork
	competitions competition.Repository
	lineups      lineup.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewLineupService(uow store.UnitOfWork, competitions competition.Repository, lineups lineup.Repository, logger *logging.Logger) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		uow:          uow,
		competitions: competitions,
		lineups:      lineups,
		logger:       logger.Named("lineups"),
		now:          time.Now,
	}
}

func (s *LineupService) Get(ctx context.Context, teamID, roundID int64) (lineup.Lineup, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get",
		attribute.Int64("team_id", teamID),
		attribute.Int64("round_id", roundID),
	)
	defer span.End()

	if teamID <= 0 || roundID <= 0 {
		return lineup.Lineup{}, false, fmt.Errorf("%w: team_id and round_id are required", ErrInvalidInput)
	}
	item, exists, err := s.lineups.GetByTeamAndRound(ctx, teamID, roundID)
	if err != nil {
		recordSpanError(span, err)
		return lineup.Lineup{}, false, fmt.Errorf("get lineup by team and round: %w", err)
	}
	return item, exists, nil
}

func (s *LineupService) Save(ctx context.Context, input SaveLineupInput) (SaveLineupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Save",
		attribute.Int64("team_id", input.TeamID),
		attribute.Int64("round_id", input.RoundID),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return SaveLineupResult{}, err
	}
	if err := validateInput(input); err != nil {
		return SaveLineupResult{}, err
	}
	entries := cleanEntries(input.Entries)
	if len(entries) == 0 {
		return SaveLineupResult{}, fmt.Errorf("%w: lineup needs at least one player", ErrInvalidInput)
	}
	if len(entries) > lineup.MaxEntries {
		return SaveLineupResult{}, fmt.Errorf("%w: lineup accepts at most %d players, got %d", ErrInvalidInput, lineup.MaxEntries, len(entries))
	}

	team, exists, err := s.competitions.GetTeam(ctx, input.TeamID)
	if err != nil {
		return SaveLineupResult{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return SaveLineupResult{}, fmt.Errorf("%w: team=%d", ErrNotFound, input.TeamID)
	}
	if team.OwnerUserID != input.ActorUserID {
		return SaveLineupResult{}, fmt.Errorf("%w: user %d does not own team %d", ErrForbidden, input.ActorUserID, team.ID)
	}

	now := s.now().UTC()
	var result SaveLineupResult
	err = s.uow.Do(ctx, team.CompetitionID, func(ctx context.Context, repos store.Repositories) error {
		round, comp, err := roundWithCompetition(ctx, repos.Competitions, input.RoundID)
		if err != nil {
			return err
		}
		if round.CompetitionID != team.CompetitionID {
			return fmt.Errorf("%w: round %d does not belong to competition %d", ErrInvalidInput, round.ID, team.CompetitionID)
		}
		if round.IsLocked(now) {
			if !input.Override {
				return fmt.Errorf("%w: round %d locked at %s", ErrPrecondition, round.ID, round.LockAt.UTC().Format(time.RFC3339))
			}
			if !comp.OwnedBy(input.ActorUserID) {
				return fmt.Errorf("%w: only the league owner may override the lock of round %d", ErrForbidden, round.ID)
			}
		}

		item := lineup.Lineup{
			TeamID:    team.ID,
			RoundID:   round.ID,
			Entries:   entries,
			UpdatedAt: now,
		}
		if err := repos.Lineups.Upsert(ctx, item); err != nil {
			return fmt.Errorf("upsert lineup: %w", err)
		}
		result.Lineup = item
		result.Recompute, err = recomputeDerived(ctx, repos, comp, RecomputeAll)
		return err
	})
	if err != nil {
		recordSpanError(span, err)
		return SaveLineupResult{}, err
	}

	s.logger.InfoContext(ctx, "lineup saved",
		"team_id", team.ID,
		"round_id", input.RoundID,
		"entries", len(entries),
		"override", input.Override,
	)
	return result, nil
}

func cleanEntries(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}
