package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/schedule"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

type GenerateScheduleInput struct {
	ActorUserID   int64
	CompetitionID int64 `validate:"gt=0"`
	// TeamIDs narrows the schedule to a subset of the competition's teams; empty means all.
	TeamIDs []int64 `validate:"omitempty,dive,gt=0"`
	// Legs is 1 for a single round robin, 2 for home and away. Zero means 1.
	Legs int `validate:"min=0,max=2"`
}

type ScheduleResult struct {
	CompetitionID  int64      `json:"competition_id"`
	Created        int        `json:"created"`
	RoundsUsed     int        `json:"rounds_used"`
	HasBye         bool       `json:"has_bye"`
	MatchesDeleted int64      `json:"matches_deleted"`
	Standings      H2HSummary `json:"standings"`
}

type ScheduleService struct {
	uow    store.UnitOfWork
	logger *logging.Logger
}

func NewScheduleService(uow store.UnitOfWork, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{uow: uow, logger: logger.Named("schedule")}
}

// Generate replaces the matches of the rounds a round robin consumes and rebuilds the H2H table.
func (s *ScheduleService) Generate(ctx context.Context, input GenerateScheduleInput) (ScheduleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate",
		attribute.Int64("competition_id", input.CompetitionID),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return ScheduleResult{}, err
	}
	if err := validateInput(input); err != nil {
		return ScheduleResult{}, err
	}
	legs := max(input.Legs, 1)

	result := ScheduleResult{CompetitionID: input.CompetitionID}
	err := s.uow.Do(ctx, input.CompetitionID, func(ctx context.Context, repos store.Repositories) error {
		comp, err := ownedCompetition(ctx, repos.Competitions, input.CompetitionID, input.ActorUserID)
		if err != nil {
			return err
		}
		if comp.Type != competition.TypeH2H {
			return fmt.Errorf("%w: competition %d is %s, schedules apply to %s", ErrPrecondition, comp.ID, comp.Type, competition.TypeH2H)
		}

		rounds, err := repos.Competitions.ListRounds(ctx, comp.ID)
		if err != nil {
			return fmt.Errorf("list rounds: %w", err)
		}
		teams, err := repos.Competitions.ListTeams(ctx, comp.ID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teamIDs, err := scheduleTeamIDs(teams, input.TeamIDs)
		if err != nil {
			return err
		}
		roundIDs := make([]int64, 0, len(rounds))
		for _, round := range rounds {
			roundIDs = append(roundIDs, round.ID)
		}

		plan, err := schedule.RoundRobin(teamIDs, roundIDs, legs)
		if err != nil {
			return mapScheduleError(err)
		}

		deleted, err := repos.Matches.DeleteByRounds(ctx, plan.RoundIDsUsed)
		if err != nil {
			return fmt.Errorf("delete scheduled matches: %w", err)
		}
		items := make([]match.Match, 0, len(plan.Fixtures))
		for _, f := range plan.Fixtures {
			items = append(items, match.Match{
				CompetitionID: comp.ID,
				RoundID:       f.RoundID,
				HomeTeamID:    f.HomeTeamID,
				AwayTeamID:    f.AwayTeamID,
			})
		}
		if len(items) > 0 {
			if err := repos.Matches.CreateMany(ctx, items); err != nil {
				return fmt.Errorf("create matches: %w", err)
			}
		}

		summary, err := recomputeDerived(ctx, repos, comp, RecomputeH2H)
		if err != nil {
			return err
		}

		result.Created = len(items)
		result.RoundsUsed = len(plan.RoundIDsUsed)
		result.HasBye = plan.HasBye
		result.MatchesDeleted = deleted
		result.Standings = *summary.H2H
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return ScheduleResult{}, err
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"competition_id", result.CompetitionID,
		"created", result.Created,
		"rounds_used", result.RoundsUsed,
		"has_bye", result.HasBye,
	)
	return result, nil
}

func scheduleTeamIDs(teams []competition.Team, requested []int64) ([]int64, error) {
	if len(requested) == 0 {
		out := make([]int64, 0, len(teams))
		for _, team := range teams {
			out = append(out, team.ID)
		}
		return out, nil
	}

	known := make(map[int64]struct{}, len(teams))
	for _, team := range teams {
		known[team.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: team %d does not belong to the competition", ErrInvalidInput, id)
		}
	}
	return append([]int64(nil), requested...), nil
}

func mapScheduleError(err error) error {
	var insufficient *schedule.InsufficientRoundsError
	switch {
	case errors.As(err, &insufficient):
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	case errors.Is(err, schedule.ErrNotEnoughTeams):
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	case errors.Is(err, schedule.ErrDuplicateTeam), errors.Is(err, schedule.ErrInvalidLegs):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("build schedule: %w", err)
	}
}
