package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/scoring"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
)

type F1StandingRow struct {
	Position     int             `json:"position"`
	TeamID       int64           `json:"team_id"`
	TeamName     string          `json:"team_name"`
	RoundsPlayed int             `json:"rounds_played"`
	Points       int             `json:"points"`
	TotalScore   decimal.Decimal `json:"total_score"`
}

type F1RoundScoreRow struct {
	RoundID  int64           `json:"round_id"`
	Position int             `json:"position"`
	TeamID   int64           `json:"team_id"`
	TeamName string          `json:"team_name"`
	Score    decimal.Decimal `json:"score"`
	Points   int             `json:"points"`
}

type F1Table struct {
	CompetitionID int64             `json:"competition_id"`
	Standings     []F1StandingRow   `json:"standings"`
	Rounds        []F1RoundScoreRow `json:"rounds"`
}

type H2HStandingRow struct {
	Position     int             `json:"position"`
	TeamID       int64           `json:"team_id"`
	TeamName     string          `json:"team_name"`
	Played       int             `json:"played"`
	Wins         int             `json:"wins"`
	Losses       int             `json:"losses"`
	Ties         int             `json:"ties"`
	Points       int             `json:"points"`
	GoalsFor     decimal.Decimal `json:"goals_for"`
	GoalsAgainst decimal.Decimal `json:"goals_against"`
	GoalDiff     decimal.Decimal `json:"goal_diff"`
}

type H2HTable struct {
	CompetitionID int64            `json:"competition_id"`
	Standings     []H2HStandingRow `json:"standings"`
}

// StandingsService reads the persisted standings tables.
type StandingsService struct {
	competitions competition.Repository
	standings    standing.Repository
}

func NewStandingsService(competitions competition.Repository, standings standing.Repository) *StandingsService {
	return &StandingsService{competitions: competitions, standings: standings}
}

// F1 returns the F1 table and per-round scores. A competition that was never
// recomputed reports every team on an all-zero row.
func (s *StandingsService) F1(ctx context.Context, competitionID int64) (F1Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.F1", attribute.Int64("competition_id", competitionID))
	defer span.End()

	if err := s.requireCompetition(ctx, competitionID); err != nil {
		recordSpanError(span, err)
		return F1Table{}, err
	}

	rows, err := s.standings.ListF1(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return F1Table{}, fmt.Errorf("list f1 standings: %w", err)
	}
	rounds, err := s.standings.ListF1RoundScores(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return F1Table{}, fmt.Errorf("list f1 round scores: %w", err)
	}

	table := F1Table{
		CompetitionID: competitionID,
		Standings:     make([]F1StandingRow, 0, len(rows)),
		Rounds:        make([]F1RoundScoreRow, 0, len(rounds)),
	}
	if len(rows) == 0 {
		teams, err := s.teams(ctx, competitionID)
		if err != nil {
			recordSpanError(span, err)
			return F1Table{}, err
		}
		for _, row := range scoring.ComputeF1(nil, teams).Standings {
			table.Standings = append(table.Standings, F1StandingRow{
				Position:   row.Position,
				TeamID:     row.TeamID,
				TeamName:   row.TeamName,
				TotalScore: row.TotalScore,
			})
		}
		return table, nil
	}

	for _, row := range rows {
		table.Standings = append(table.Standings, F1StandingRow{
			Position:     row.Position,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			RoundsPlayed: row.RoundsPlayed,
			Points:       row.Points,
			TotalScore:   row.TotalScore,
		})
	}
	for _, row := range rounds {
		table.Rounds = append(table.Rounds, F1RoundScoreRow{
			RoundID:  row.RoundID,
			Position: row.Position,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Score:    row.Score,
			Points:   row.Points,
		})
	}
	return table, nil
}

func (s *StandingsService) H2H(ctx context.Context, competitionID int64) (H2HTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.H2H", attribute.Int64("competition_id", competitionID))
	defer span.End()

	if err := s.requireCompetition(ctx, competitionID); err != nil {
		recordSpanError(span, err)
		return H2HTable{}, err
	}

	rows, err := s.standings.ListH2H(ctx, competitionID)
	if err != nil {
		recordSpanError(span, err)
		return H2HTable{}, fmt.Errorf("list h2h standings: %w", err)
	}

	table := H2HTable{CompetitionID: competitionID, Standings: make([]H2HStandingRow, 0, len(rows))}
	if len(rows) == 0 {
		teams, err := s.teams(ctx, competitionID)
		if err != nil {
			recordSpanError(span, err)
			return H2HTable{}, err
		}
		for _, row := range scoring.ComputeH2HStandings(teams, nil) {
			table.Standings = append(table.Standings, h2hRowFromScoring(row))
		}
		return table, nil
	}

	for _, row := range rows {
		table.Standings = append(table.Standings, H2HStandingRow{
			Position:     row.Position,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Wins:         row.Wins,
			Losses:       row.Losses,
			Ties:         row.Ties,
			Points:       row.Points,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalDiff:     row.GoalDiff,
		})
	}
	return table, nil
}

func h2hRowFromScoring(row scoring.H2HRow) H2HStandingRow {
	return H2HStandingRow{
		Position:     row.Position,
		TeamID:       row.TeamID,
		TeamName:     row.TeamName,
		Played:       row.Played,
		Wins:         row.Wins,
		Losses:       row.Losses,
		Ties:         row.Ties,
		Points:       row.Points,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		GoalDiff:     row.GoalDiff,
	}
}

func (s *StandingsService) requireCompetition(ctx context.Context, competitionID int64) error {
	if competitionID <= 0 {
		return fmt.Errorf("%w: competition id must be positive", ErrInvalidInput)
	}
	_, exists, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: competition=%d", ErrNotFound, competitionID)
	}
	return nil
}

func (s *StandingsService) teams(ctx context.Context, competitionID int64) ([]scoring.Team, error) {
	teams, err := s.competitions.ListTeams(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return toScoringTeams(teams), nil
}
