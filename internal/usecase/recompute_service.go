package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

const defaultRecomputeWorkers = 4

type RecomputeInput struct {
	ActorUserID   int64 `validate:"gt=0"`
	CompetitionID int64 `validate:"gt=0"`
	Mode          RecomputeMode
}

type RecomputeLeagueInput struct {
	ActorUserID int64 `validate:"gt=0"`
	LeagueID    int64 `validate:"gt=0"`
	Mode        RecomputeMode
}

type LeagueRecomputeItem struct {
	CompetitionID int64             `json:"competition_id"`
	Status        string            `json:"status"`
	DurationMs    int64             `json:"duration_ms"`
	Summary       *RecomputeSummary `json:"summary,omitempty"`
	Message       string            `json:"message,omitempty"`
}

type LeagueRecomputeResult struct {
	LeagueID     int64                 `json:"league_id"`
	WorkerCount  int                   `json:"worker_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	Items        []LeagueRecomputeItem `json:"items"`
}

const (
	recomputeStatusSuccess = "success"
	recomputeStatusFailed  = "failed"
)

// RecomputeService rebuilds derived standings and match outcomes.
type RecomputeService struct {
	uow          store.UnitOfWork
	competitions competition.Repository
	logger       *logging.Logger
	workers      int
}

func NewRecomputeService(uow store.UnitOfWork, competitions competition.Repository, logger *logging.Logger) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecomputeService{
		uow:          uow,
		competitions: competitions,
		logger:       logger.Named("recompute"),
		workers:      defaultRecomputeWorkers,
	}
}

// SetWorkers bounds the pool used by RecomputeLeague.
func (s *RecomputeService) SetWorkers(workers int) {
	if workers > 0 {
		s.workers = workers
	}
}

func (s *RecomputeService) Recompute(ctx context.Context, input RecomputeInput) (RecomputeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.Recompute",
		attribute.Int64("competition_id", input.CompetitionID),
		attribute.String("mode", string(input.Mode)),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return RecomputeSummary{}, err
	}
	if err := validateInput(input); err != nil {
		return RecomputeSummary{}, err
	}
	mode, err := ParseRecomputeMode(string(input.Mode))
	if err != nil {
		return RecomputeSummary{}, err
	}

	start := time.Now()
	var summary RecomputeSummary
	err = s.uow.Do(ctx, input.CompetitionID, func(ctx context.Context, repos store.Repositories) error {
		comp, err := ownedCompetition(ctx, repos.Competitions, input.CompetitionID, input.ActorUserID)
		if err != nil {
			return err
		}
		summary, err = recomputeDerived(ctx, repos, comp, mode)
		return err
	})
	if err != nil {
		recordSpanError(span, err)
		return RecomputeSummary{}, err
	}

	s.logSummary(ctx, summary, time.Since(start))
	return summary, nil
}

// RecomputeLeague recomputes every competition of a league on a bounded worker pool.
// A failing competition does not stop the others; failures are joined into the returned error.
func (s *RecomputeService) RecomputeLeague(ctx context.Context, input RecomputeLeagueInput) (LeagueRecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputeLeague",
		attribute.Int64("league_id", input.LeagueID),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return LeagueRecomputeResult{}, err
	}
	if err := validateInput(input); err != nil {
		return LeagueRecomputeResult{}, err
	}
	mode, err := ParseRecomputeMode(string(input.Mode))
	if err != nil {
		return LeagueRecomputeResult{}, err
	}

	league, exists, err := s.competitions.GetLeague(ctx, input.LeagueID)
	if err != nil {
		return LeagueRecomputeResult{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return LeagueRecomputeResult{}, fmt.Errorf("%w: league=%d", ErrNotFound, input.LeagueID)
	}
	if league.OwnerUserID != input.ActorUserID {
		return LeagueRecomputeResult{}, fmt.Errorf("%w: user %d does not own league %d", ErrForbidden, input.ActorUserID, input.LeagueID)
	}

	competitions, err := s.competitions.ListByLeague(ctx, input.LeagueID)
	if err != nil {
		return LeagueRecomputeResult{}, fmt.Errorf("list competitions: %w", err)
	}

	result := LeagueRecomputeResult{
		LeagueID:    input.LeagueID,
		WorkerCount: min(s.workers, max(len(competitions), 1)),
		Items:       make([]LeagueRecomputeItem, 0, len(competitions)),
	}
	if len(competitions) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(result.WorkerCount)
	if err != nil {
		return LeagueRecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		failures []error
		workers  sync.WaitGroup
	)
	for _, comp := range competitions {
		comp := comp
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			item := LeagueRecomputeItem{CompetitionID: comp.ID}

			var summary RecomputeSummary
			var runErr error
			var catcher panics.Catcher
			catcher.Try(func() {
				summary, runErr = s.Recompute(ctx, RecomputeInput{
					ActorUserID:   input.ActorUserID,
					CompetitionID: comp.ID,
					Mode:          mode,
				})
			})
			if recovered := catcher.Recovered(); recovered != nil {
				runErr = recovered.AsError()
			}

			item.DurationMs = time.Since(start).Milliseconds()
			if runErr != nil {
				item.Status = recomputeStatusFailed
				item.Message = runErr.Error()
			} else {
				item.Status = recomputeStatusSuccess
				item.Summary = &summary
			}

			mu.Lock()
			defer mu.Unlock()
			result.Items = append(result.Items, item)
			if runErr != nil {
				failures = append(failures, fmt.Errorf("competition %d: %w", comp.ID, runErr))
			}
		})
		if submitErr != nil {
			workers.Done()
			workers.Wait()
			return LeagueRecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", submitErr)
		}
	}
	workers.Wait()

	slices.SortFunc(result.Items, func(a, b LeagueRecomputeItem) int {
		return cmp.Compare(a.CompetitionID, b.CompetitionID)
	})
	for _, item := range result.Items {
		if item.Status == recomputeStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}

	s.logger.InfoContext(ctx, "league recompute finished",
		"league_id", input.LeagueID,
		"competitions", len(competitions),
		"failed", result.FailedCount,
	)
	if err := errors.Join(failures...); err != nil {
		recordSpanError(span, err)
		return result, err
	}
	return result, nil
}

func (s *RecomputeService) logSummary(ctx context.Context, summary RecomputeSummary, took time.Duration) {
	args := []any{
		"competition_id", summary.CompetitionID,
		"mode", string(summary.Mode),
		"duration", took,
	}
	if summary.F1 != nil {
		args = append(args, "rounds_processed", summary.F1.RoundsProcessed, "teams_evaluated", summary.F1.TeamsEvaluated)
	}
	if summary.H2H != nil {
		args = append(args, "matches_evaluated", summary.H2H.MatchesEvaluated, "matches_updated", summary.H2H.MatchesUpdated)
	}
	s.logger.InfoContext(ctx, "recompute finished", args...)
}
