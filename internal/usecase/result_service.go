package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/scoring"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

type ResultItem struct {
	Player string          `json:"player"`
	Points decimal.Decimal `json:"points"`
}

type SaveResultsInput struct {
	ActorUserID int64
	RoundID     int64        `validate:"gt=0"`
	Items       []ResultItem `validate:"required,min=1"`
}

type SaveResultsResult struct {
	RoundID   int64            `json:"round_id"`
	Saved     int              `json:"saved"`
	Skipped   int              `json:"skipped"`
	Recompute RecomputeSummary `json:"recompute"`
}

type ResultService struct {
	uow          store.UnitOfWork
	competitions competition.Repository
	results      playerresult.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewResultService(uow store.UnitOfWork, competitions competition.Repository, results playerresult.Repository, logger *logging.Logger) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultService{
		uow:          uow,
		competitions: competitions,
		results:      results,
		logger:       logger.Named("results"),
		now:          time.Now,
	}
}

// Save upserts a round's player results and recomputes the competition.
// Items without a usable name are skipped; a repeated player keeps its last value.
func (s *ResultService) Save(ctx context.Context, input SaveResultsInput) (SaveResultsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Save",
		attribute.Int64("round_id", input.RoundID),
		attribute.Int("items", len(input.Items)),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return SaveResultsResult{}, err
	}
	if err := validateInput(input); err != nil {
		return SaveResultsResult{}, err
	}

	items := collapseResultItems(input.RoundID, input.Items, s.now().UTC())
	if len(items) == 0 {
		return SaveResultsResult{}, fmt.Errorf("%w: no valid results in payload", ErrInvalidInput)
	}

	_, comp, err := ownedRound(ctx, s.competitions, input.RoundID, input.ActorUserID)
	if err != nil {
		return SaveResultsResult{}, err
	}

	result := SaveResultsResult{
		RoundID: input.RoundID,
		Saved:   len(items),
		Skipped: len(input.Items) - len(items),
	}
	err = s.uow.Do(ctx, comp.ID, func(ctx context.Context, repos store.Repositories) error {
		current, err := ownedCompetition(ctx, repos.Competitions, comp.ID, input.ActorUserID)
		if err != nil {
			return err
		}
		if err := repos.Results.Upsert(ctx, items); err != nil {
			return fmt.Errorf("upsert player results: %w", err)
		}
		result.Recompute, err = recomputeDerived(ctx, repos, current, RecomputeAll)
		return err
	})
	if err != nil {
		recordSpanError(span, err)
		return SaveResultsResult{}, err
	}

	s.logger.InfoContext(ctx, "player results saved",
		"competition_id", comp.ID,
		"round_id", input.RoundID,
		"saved", result.Saved,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *ResultService) ListByRound(ctx context.Context, roundID int64) ([]playerresult.PlayerResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListByRound")
	defer span.End()

	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round id must be positive", ErrInvalidInput)
	}
	if _, exists, err := s.competitions.GetRound(ctx, roundID); err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: round=%d", ErrNotFound, roundID)
	}

	items, err := s.results.ListByRounds(ctx, []int64{roundID})
	if err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	slices.SortFunc(items, func(a, b playerresult.PlayerResult) int {
		return strings.Compare(a.PlayerKey, b.PlayerKey)
	})
	return items, nil
}

func collapseResultItems(roundID int64, items []ResultItem, now time.Time) []playerresult.PlayerResult {
	index := make(map[string]int, len(items))
	out := make([]playerresult.PlayerResult, 0, len(items))
	for _, item := range items {
		key := scoring.NormalizeName(item.Player)
		if key == "" {
			continue
		}
		row := playerresult.PlayerResult{
			RoundID:    roundID,
			PlayerKey:  key,
			PlayerName: strings.TrimSpace(item.Player),
			Points:     item.Points,
			UpdatedAt:  now,
		}
		if pos, ok := index[key]; ok {
			out[pos] = row
			continue
		}
		index[key] = len(out)
		out = append(out, row)
	}
	return out
}
