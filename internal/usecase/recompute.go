package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/scoring"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
)

type RecomputeMode string

const (
	RecomputeF1  RecomputeMode = "f1"
	RecomputeH2H RecomputeMode = "h2h"
	RecomputeAll RecomputeMode = "all"
)

// ParseRecomputeMode accepts f1, h2h or all; empty means all.
func ParseRecomputeMode(v string) (RecomputeMode, error) {
	switch mode := RecomputeMode(strings.ToLower(strings.TrimSpace(v))); mode {
	case "":
		return RecomputeAll, nil
	case RecomputeF1, RecomputeH2H, RecomputeAll:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: unknown recompute mode %q", ErrInvalidInput, v)
	}
}

func (m RecomputeMode) includesF1() bool  { return m == RecomputeF1 || m == RecomputeAll }
func (m RecomputeMode) includesH2H() bool { return m == RecomputeH2H || m == RecomputeAll }

type F1Summary struct {
	RoundsProcessed int `json:"rounds_processed"`
	TeamsEvaluated  int `json:"teams_evaluated"`
}

type H2HSummary struct {
	MatchesEvaluated int `json:"matches_evaluated"`
	MatchesUpdated   int `json:"matches_updated"`
}

type RecomputeSummary struct {
	CompetitionID int64         `json:"competition_id"`
	Mode          RecomputeMode `json:"mode"`
	F1            *F1Summary    `json:"f1,omitempty"`
	H2H           *H2HSummary   `json:"h2h,omitempty"`
}

// competitionState is everything the engines read for one competition.
type competitionState struct {
	competition    competition.Competition
	rounds         []competition.Round
	teams          []scoring.Team
	resultsByRound map[int64]scoring.Results
	lineups        scoring.Lineups
}

func loadCompetitionState(ctx context.Context, repos store.Repositories, comp competition.Competition) (competitionState, error) {
	rounds, err := repos.Competitions.ListRounds(ctx, comp.ID)
	if err != nil {
		return competitionState{}, fmt.Errorf("list rounds: %w", err)
	}
	teams, err := repos.Competitions.ListTeams(ctx, comp.ID)
	if err != nil {
		return competitionState{}, fmt.Errorf("list teams: %w", err)
	}

	roundIDs := make([]int64, 0, len(rounds))
	for _, round := range rounds {
		roundIDs = append(roundIDs, round.ID)
	}
	results, err := repos.Results.ListByRounds(ctx, roundIDs)
	if err != nil {
		return competitionState{}, fmt.Errorf("list player results: %w", err)
	}
	lineups, err := repos.Lineups.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return competitionState{}, fmt.Errorf("list lineups: %w", err)
	}

	return competitionState{
		competition:    comp,
		rounds:         rounds,
		teams:          toScoringTeams(teams),
		resultsByRound: groupResults(results),
		lineups:        scoring.IndexLineups(lineups),
	}, nil
}

func toScoringTeams(teams []competition.Team) []scoring.Team {
	out := make([]scoring.Team, 0, len(teams))
	for _, team := range teams {
		out = append(out, scoring.Team{ID: team.ID, Name: team.Name})
	}
	return out
}

// groupResults keys results by round and normalized player. Rows whose key
// normalizes to empty are dropped.
func groupResults(items []playerresult.PlayerResult) map[int64]scoring.Results {
	out := make(map[int64]scoring.Results)
	for _, item := range items {
		key := scoring.NormalizeName(item.PlayerKey)
		if key == "" {
			continue
		}
		byPlayer, ok := out[item.RoundID]
		if !ok {
			byPlayer = make(scoring.Results)
			out[item.RoundID] = byPlayer
		}
		byPlayer[key] = item.Points
	}
	return out
}

// recomputeDerived rebuilds the derived tables of one competition. Callers must
// run it inside a unit of work keyed by the competition id.
func recomputeDerived(ctx context.Context, repos store.Repositories, comp competition.Competition, mode RecomputeMode) (RecomputeSummary, error) {
	state, err := loadCompetitionState(ctx, repos, comp)
	if err != nil {
		return RecomputeSummary{}, err
	}

	summary := RecomputeSummary{CompetitionID: comp.ID, Mode: mode}
	if mode.includesF1() {
		f1, err := rebuildF1(ctx, repos, state)
		if err != nil {
			return RecomputeSummary{}, err
		}
		summary.F1 = &f1
	}
	if mode.includesH2H() {
		matches, err := repos.Matches.ListByCompetition(ctx, comp.ID)
		if err != nil {
			return RecomputeSummary{}, fmt.Errorf("list matches: %w", err)
		}
		h2h, err := rebuildH2H(ctx, repos, state, matches, nil)
		if err != nil {
			return RecomputeSummary{}, err
		}
		summary.H2H = &h2h
	}
	return summary, nil
}

// rebuildF1 scores every round that has at least one result and replaces the F1 tables.
func rebuildF1(ctx context.Context, repos store.Repositories, state competitionState) (F1Summary, error) {
	contexts := make([]scoring.RoundContext, 0, len(state.rounds))
	for _, round := range state.rounds {
		results := state.resultsByRound[round.ID]
		if len(results) == 0 {
			continue
		}
		contexts = append(contexts, scoring.RoundContext{
			RoundID: round.ID,
			Results: results,
			Lineups: state.lineups,
		})
	}

	outcome := scoring.ComputeF1(contexts, state.teams)

	competitionID := state.competition.ID
	rows := make([]standing.F1Standing, 0, len(outcome.Standings))
	for _, row := range outcome.Standings {
		rows = append(rows, standing.F1Standing{
			CompetitionID: competitionID,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Position:      row.Position,
			RoundsPlayed:  row.RoundsPlayed,
			Points:        row.Points,
			TotalScore:    row.TotalScore,
		})
	}
	roundScores := make([]standing.F1RoundScore, 0, len(outcome.Rounds)*len(state.teams))
	for _, summary := range outcome.Rounds {
		for _, score := range summary.Scores {
			roundScores = append(roundScores, standing.F1RoundScore{
				CompetitionID: competitionID,
				RoundID:       summary.RoundID,
				TeamID:        score.TeamID,
				TeamName:      score.TeamName,
				Position:      score.Position,
				Score:         score.Score,
				Points:        score.Points,
			})
		}
	}

	if err := repos.Standings.ReplaceF1(ctx, competitionID, rows, roundScores); err != nil {
		return F1Summary{}, fmt.Errorf("replace f1 standings: %w", err)
	}
	return F1Summary{RoundsProcessed: len(outcome.Rounds), TeamsEvaluated: len(state.teams)}, nil
}

// rebuildH2H resolves matches, writes back the changed ones and replaces the H2H table.
// When only is non-nil, matches outside it keep their stored outcome.
func rebuildH2H(ctx context.Context, repos store.Repositories, state competitionState, matches []match.Match, only func(match.Match) bool) (H2HSummary, error) {
	targets := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if only == nil || only(m) {
			targets = append(targets, m)
		}
	}
	resolvedTargets := scoring.ResolveMatches(targets, state.resultsByRound, state.lineups)

	byID := make(map[int64]scoring.ResolvedMatch, len(resolvedTargets))
	changed := make([]match.Match, 0, len(resolvedTargets))
	for i, resolved := range resolvedTargets {
		byID[resolved.MatchID] = resolved
		if resolved.Changed {
			changed = append(changed, resolved.Apply(targets[i]))
		}
	}
	if len(changed) > 0 {
		if err := repos.Matches.UpdateOutcomes(ctx, changed); err != nil {
			return H2HSummary{}, fmt.Errorf("update match outcomes: %w", err)
		}
	}

	all := make([]scoring.ResolvedMatch, 0, len(matches))
	for _, m := range matches {
		if resolved, ok := byID[m.ID]; ok {
			all = append(all, resolved)
			continue
		}
		all = append(all, scoring.AsResolved(m))
	}

	table := scoring.ComputeH2HStandings(state.teams, all)
	competitionID := state.competition.ID
	rows := make([]standing.H2HStanding, 0, len(table))
	for _, row := range table {
		rows = append(rows, standing.H2HStanding{
			CompetitionID: competitionID,
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
	if err := repos.Standings.ReplaceH2H(ctx, competitionID, rows); err != nil {
		return H2HSummary{}, fmt.Errorf("replace h2h standings: %w", err)
	}

	return H2HSummary{MatchesEvaluated: len(targets), MatchesUpdated: len(changed)}, nil
}
