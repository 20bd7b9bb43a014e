package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
	qb "github.com/ProjectFanta/fantasy-nba/internal/platform/querybuilder"
)

// StandingRepository persists the derived tables. Replace methods are only
// consistent when called inside a transaction.
type StandingRepository struct {
	db querier
}

func NewStandingRepository(db querier) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ReplaceF1(ctx context.Context, competitionID int64, rows []standing.F1Standing, rounds []standing.F1RoundScore) error {
	if err := r.deleteByCompetition(ctx, "f1_round_scores", competitionID); err != nil {
		return err
	}
	if err := r.deleteByCompetition(ctx, "f1_standings", competitionID); err != nil {
		return err
	}

	if len(rows) > 0 {
		models := make([]f1StandingInsertModel, 0, len(rows))
		for _, row := range rows {
			models = append(models, f1StandingInsertModel{
				CompetitionID: competitionID,
				TeamID:        row.TeamID,
				Position:      row.Position,
				RoundsPlayed:  row.RoundsPlayed,
				Points:        row.Points,
				TotalScore:    row.TotalScore,
			})
		}
		if err := r.insert(ctx, "f1_standings", models); err != nil {
			return err
		}
	}

	if len(rounds) > 0 {
		models := make([]f1RoundScoreInsertModel, 0, len(rounds))
		for _, row := range rounds {
			models = append(models, f1RoundScoreInsertModel{
				CompetitionID: competitionID,
				RoundID:       row.RoundID,
				TeamID:        row.TeamID,
				Position:      row.Position,
				Score:         row.Score,
				Points:        row.Points,
			})
		}
		if err := r.insert(ctx, "f1_round_scores", models); err != nil {
			return err
		}
	}
	return nil
}

func (r *StandingRepository) ReplaceH2H(ctx context.Context, competitionID int64, rows []standing.H2HStanding) error {
	if err := r.deleteByCompetition(ctx, "h2h_standings", competitionID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	models := make([]h2hStandingInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, h2hStandingInsertModel{
			CompetitionID: competitionID,
			TeamID:        row.TeamID,
			Position:      row.Position,
			Played:        row.Played,
			Wins:          row.Wins,
			Losses:        row.Losses,
			Ties:          row.Ties,
			Points:        row.Points,
			GoalsFor:      row.GoalsFor,
			GoalsAgainst:  row.GoalsAgainst,
			GoalDiff:      row.GoalDiff,
		})
	}
	return r.insert(ctx, "h2h_standings", models)
}

func (r *StandingRepository) ListF1(ctx context.Context, competitionID int64) ([]standing.F1Standing, error) {
	query, args, err := qb.Select(
		"s.competition_id",
		"s.team_id",
		"t.name AS team_name",
		"s.position",
		"s.rounds_played",
		"s.points",
		"s.total_score",
	).From("f1_standings s").
		Join("JOIN teams t ON t.id = s.team_id").
		Where(qb.Eq("s.competition_id", competitionID)).
		OrderBy("s.position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list f1 standings query: %w", err)
	}

	var rows []f1StandingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list f1 standings: %w", err)
	}

	out := make([]standing.F1Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.F1Standing{
			CompetitionID: row.CompetitionID,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Position:      row.Position,
			RoundsPlayed:  row.RoundsPlayed,
			Points:        row.Points,
			TotalScore:    row.TotalScore,
		})
	}
	return out, nil
}

func (r *StandingRepository) ListF1RoundScores(ctx context.Context, competitionID int64) ([]standing.F1RoundScore, error) {
	query, args, err := qb.Select(
		"s.competition_id",
		"s.round_id",
		"s.team_id",
		"t.name AS team_name",
		"s.position",
		"s.score",
		"s.points",
	).From("f1_round_scores s").
		Join("JOIN teams t ON t.id = s.team_id").
		Join("JOIN rounds r ON r.id = s.round_id").
		Where(qb.Eq("s.competition_id", competitionID)).
		OrderBy("r.day_index", "s.round_id", "s.position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list f1 round scores query: %w", err)
	}

	var rows []f1RoundScoreTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list f1 round scores: %w", err)
	}

	out := make([]standing.F1RoundScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.F1RoundScore{
			CompetitionID: row.CompetitionID,
			RoundID:       row.RoundID,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Position:      row.Position,
			Score:         row.Score,
			Points:        row.Points,
		})
	}
	return out, nil
}

func (r *StandingRepository) ListH2H(ctx context.Context, competitionID int64) ([]standing.H2HStanding, error) {
	query, args, err := qb.Select(
		"s.competition_id",
		"s.team_id",
		"t.name AS team_name",
		"s.position",
		"s.played",
		"s.wins",
		"s.losses",
		"s.ties",
		"s.points",
		"s.goals_for",
		"s.goals_against",
		"s.goal_diff",
	).From("h2h_standings s").
		Join("JOIN teams t ON t.id = s.team_id").
		Where(qb.Eq("s.competition_id", competitionID)).
		OrderBy("s.position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list h2h standings query: %w", err)
	}

	var rows []h2hStandingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list h2h standings: %w", err)
	}

	out := make([]standing.H2HStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.H2HStanding{
			CompetitionID: row.CompetitionID,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Position:      row.Position,
			Played:        row.Played,
			Wins:          row.Wins,
			Losses:        row.Losses,
			Ties:          row.Ties,
			Points:        row.Points,
			GoalsFor:      row.GoalsFor,
			GoalsAgainst:  row.GoalsAgainst,
			GoalDiff:      row.GoalDiff,
		})
	}
	return out, nil
}

func (r *StandingRepository) deleteByCompetition(ctx context.Context, table string, competitionID int64) error {
	query, args, err := qb.DeleteFrom(table).
		Where(qb.Eq("competition_id", competitionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func (r *StandingRepository) insert(ctx context.Context, table string, models any) error {
	query, args, err := qb.InsertModels(table, models, "")
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
