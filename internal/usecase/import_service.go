package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/scoring"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
	"github.com/ProjectFanta/fantasy-nba/internal/platform/logging"
)

// ImportRow is one parsed line of an uploaded results file.
type ImportRow struct {
	RoundID    int64  `json:"round_id"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	Points     string `json:"points"`
}

type ImportInput struct {
	ActorUserID   int64
	CompetitionID int64       `validate:"gt=0"`
	Rows          []ImportRow `validate:"max=5000"`
	DryRun        bool
	Overwrite     bool
}

const (
	importStatusValid   = "valid"
	importStatusInvalid = "invalid"
)

type ImportPreviewRow struct {
	Line       int      `json:"line"`
	RoundID    int64    `json:"round_id"`
	TeamName   string   `json:"team_name"`
	TeamID     int64    `json:"team_id,omitempty"`
	PlayerName string   `json:"player_name"`
	PlayerKey  string   `json:"player_key,omitempty"`
	Points     string   `json:"points"`
	Status     string   `json:"status"`
	Overwrites bool     `json:"overwrites,omitempty"`
	Issues     []string `json:"issues,omitempty"`
}

type ImportResult struct {
	CompetitionID int64              `json:"competition_id"`
	DryRun        bool               `json:"dry_run"`
	Total         int                `json:"total"`
	Valid         int                `json:"valid"`
	Invalid       int                `json:"invalid"`
	Inserted      int                `json:"inserted"`
	Overwritten   int                `json:"overwritten"`
	Rows          []ImportPreviewRow `json:"rows"`
	Recompute     *RecomputeSummary  `json:"recompute,omitempty"`
}

type ImportService struct {
	uow    store.UnitOfWork
	logger *logging.Logger
	now    func() time.Time
}

func NewImportService(uow store.UnitOfWork, logger *logging.Logger) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{uow: uow, logger: logger.Named("import"), now: time.Now}
}

// Import validates parsed result rows against the competition and, unless DryRun
// is set, writes the valid ones and recomputes. Invalid rows never block valid ones.
func (s *ImportService) Import(ctx context.Context, input ImportInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import",
		attribute.Int64("competition_id", input.CompetitionID),
		attribute.Int("rows", len(input.Rows)),
		attribute.Bool("dry_run", input.DryRun),
	)
	defer span.End()

	if err := requireActor(input.ActorUserID); err != nil {
		return ImportResult{}, err
	}
	if err := validateInput(input); err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	err := s.uow.Do(ctx, input.CompetitionID, func(ctx context.Context, repos store.Repositories) error {
		// A retried unit of work runs this closure again; start each attempt clean.
		result = ImportResult{
			CompetitionID: input.CompetitionID,
			DryRun:        input.DryRun,
			Total:         len(input.Rows),
			Rows:          make([]ImportPreviewRow, 0, len(input.Rows)),
		}

		comp, err := ownedCompetition(ctx, repos.Competitions, input.CompetitionID, input.ActorUserID)
		if err != nil {
			return err
		}

		checker, err := newImportChecker(ctx, repos, comp.ID, input.Rows)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		valid := make([]playerresult.PlayerResult, 0, len(input.Rows))
		for i, row := range input.Rows {
			preview, points := checker.check(i+1, row, input.Overwrite)
			result.Rows = append(result.Rows, preview)
			if preview.Status != importStatusValid {
				result.Invalid++
				continue
			}
			result.Valid++
			if preview.Overwrites {
				result.Overwritten++
			} else {
				result.Inserted++
			}
			valid = append(valid, playerresult.PlayerResult{
				RoundID:    preview.RoundID,
				PlayerKey:  preview.PlayerKey,
				PlayerName: strings.TrimSpace(row.PlayerName),
				Points:     points,
				UpdatedAt:  now,
			})
		}

		if input.DryRun || len(valid) == 0 {
			return nil
		}
		if err := repos.Results.Upsert(ctx, valid); err != nil {
			return fmt.Errorf("upsert imported results: %w", err)
		}
		summary, err := recomputeDerived(ctx, repos, comp, RecomputeAll)
		if err != nil {
			return err
		}
		result.Recompute = &summary
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return ImportResult{}, err
	}
	s.logger.InfoContext(ctx, "results import processed",
		"competition_id", input.CompetitionID,
		"dry_run", input.DryRun,
		"total", result.Total,
		"valid", result.Valid,
		"invalid", result.Invalid,
		"inserted", result.Inserted,
		"overwritten", result.Overwritten,
	)
	return result, nil
}

type resultKey struct {
	roundID int64
	player  string
}

type importChecker struct {
	rounds   map[int64]struct{}
	teams    map[string]int64
	rosters  map[int64]map[string]struct{}
	existing map[resultKey]struct{}
	seen     map[resultKey]int
}

func newImportChecker(ctx context.Context, repos store.Repositories, competitionID int64, rows []ImportRow) (*importChecker, error) {
	rounds, err := repos.Competitions.ListRounds(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	teams, err := repos.Competitions.ListTeams(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	lineups, err := repos.Lineups.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	c := &importChecker{
		rounds:   make(map[int64]struct{}, len(rounds)),
		teams:    make(map[string]int64, len(teams)),
		rosters:  rosterUnion(lineups),
		existing: make(map[resultKey]struct{}),
		seen:     make(map[resultKey]int, len(rows)),
	}
	for _, round := range rounds {
		c.rounds[round.ID] = struct{}{}
	}
	for _, team := range teams {
		if key := scoring.NormalizeName(team.Name); key != "" {
			if _, dup := c.teams[key]; !dup {
				c.teams[key] = team.ID
			}
		}
	}

	roundIDs := make([]int64, 0)
	requested := make(map[int64]struct{})
	for _, row := range rows {
		if _, ok := c.rounds[row.RoundID]; !ok {
			continue
		}
		if _, ok := requested[row.RoundID]; ok {
			continue
		}
		requested[row.RoundID] = struct{}{}
		roundIDs = append(roundIDs, row.RoundID)
	}
	stored, err := repos.Results.ListByRounds(ctx, roundIDs)
	if err != nil {
		return nil, fmt.Errorf("list existing results: %w", err)
	}
	for _, item := range stored {
		c.existing[resultKey{roundID: item.RoundID, player: scoring.NormalizeName(item.PlayerKey)}] = struct{}{}
	}
	return c, nil
}

func rosterUnion(lineups []lineup.Lineup) map[int64]map[string]struct{} {
	out := make(map[int64]map[string]struct{})
	for _, item := range lineups {
		roster, ok := out[item.TeamID]
		if !ok {
			roster = make(map[string]struct{})
			out[item.TeamID] = roster
		}
		for _, player := range scoring.DistinctPlayers(item.Entries) {
			roster[player] = struct{}{}
		}
	}
	return out
}

func (c *importChecker) check(line int, row ImportRow, overwrite bool) (ImportPreviewRow, decimal.Decimal) {
	preview := ImportPreviewRow{
		Line:       line,
		RoundID:    row.RoundID,
		TeamName:   strings.TrimSpace(row.TeamName),
		PlayerName: strings.TrimSpace(row.PlayerName),
		PlayerKey:  scoring.NormalizeName(row.PlayerName),
		Points:     strings.TrimSpace(row.Points),
	}

	if _, ok := c.rounds[row.RoundID]; !ok {
		preview.Issues = append(preview.Issues, fmt.Sprintf("round %d does not belong to the competition", row.RoundID))
	}

	teamID, teamFound := c.teams[scoring.NormalizeName(row.TeamName)]
	if teamFound {
		preview.TeamID = teamID
	} else {
		preview.Issues = append(preview.Issues, fmt.Sprintf("team %q not found", preview.TeamName))
	}

	if preview.PlayerKey == "" {
		preview.Issues = append(preview.Issues, "player name is required")
	} else if teamFound {
		if roster := c.rosters[teamID]; len(roster) > 0 {
			if _, ok := roster[preview.PlayerKey]; !ok {
				preview.Issues = append(preview.Issues, fmt.Sprintf("player %q is not in any lineup of team %q", preview.PlayerName, preview.TeamName))
			}
		}
	}

	points, err := parsePoints(row.Points)
	if err != nil {
		preview.Issues = append(preview.Issues, err.Error())
	} else {
		preview.Points = points.String()
	}

	if preview.PlayerKey != "" {
		key := resultKey{roundID: row.RoundID, player: preview.PlayerKey}
		if first, dup := c.seen[key]; dup {
			preview.Issues = append(preview.Issues, fmt.Sprintf("duplicate of line %d for the same round and player", first))
		} else {
			c.seen[key] = line
		}
		if _, exists := c.existing[key]; exists {
			if overwrite {
				preview.Overwrites = true
			} else {
				preview.Issues = append(preview.Issues, "result already exists for this round and player")
			}
		}
	}

	if len(preview.Issues) > 0 {
		preview.Status = importStatusInvalid
		preview.Overwrites = false
		return preview, decimal.Zero
	}
	preview.Status = importStatusValid
	return preview, points
}

// parsePoints accepts a dot or a comma as decimal separator.
func parsePoints(raw string) (decimal.Decimal, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if value == "" {
		return decimal.Zero, fmt.Errorf("points are required")
	}
	points, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("points %q are not numeric", strings.TrimSpace(raw))
	}
	return points, nil
}
