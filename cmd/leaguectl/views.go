package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

type matchView struct {
	ID         int64            `json:"id"`
	RoundID    int64            `json:"round_id"`
	HomeTeamID int64            `json:"home_team_id"`
	AwayTeamID int64            `json:"away_team_id"`
	HomeScore  *decimal.Decimal `json:"home_score"`
	AwayScore  *decimal.Decimal `json:"away_score"`
	Result     *string          `json:"result"`
}

func toMatchViews(items []match.Match) []matchView {
	out := make([]matchView, 0, len(items))
	for _, item := range items {
		view := matchView{
			ID:         item.ID,
			RoundID:    item.RoundID,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
		}
		if item.HomeScore.Valid {
			score := item.HomeScore.Decimal
			view.HomeScore = &score
		}
		if item.AwayScore.Valid {
			score := item.AwayScore.Decimal
			view.AwayScore = &score
		}
		if item.Result != match.ResultPending {
			result := string(item.Result)
			view.Result = &result
		}
		out = append(out, view)
	}
	return out
}

type resultView struct {
	PlayerKey  string          `json:"player_key"`
	PlayerName string          `json:"player_name"`
	Points     decimal.Decimal `json:"points"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toResultViews(items []playerresult.PlayerResult) []resultView {
	out := make([]resultView, 0, len(items))
	for _, item := range items {
		out = append(out, resultView{
			PlayerKey:  item.PlayerKey,
			PlayerName: item.PlayerName,
			Points:     item.Points,
			UpdatedAt:  item.UpdatedAt,
		})
	}
	return out
}

type lineupView struct {
	TeamID    int64      `json:"team_id"`
	RoundID   int64      `json:"round_id"`
	Entries   []string   `json:"entries"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toLineupView(item lineup.Lineup) lineupView {
	view := lineupView{TeamID: item.TeamID, RoundID: item.RoundID, Entries: item.Entries}
	if view.Entries == nil {
		view.Entries = []string{}
	}
	if !item.UpdatedAt.IsZero() {
		updated := item.UpdatedAt
		view.UpdatedAt = &updated
	}
	return view
}

type lineupSaveView struct {
	Lineup    lineupView               `json:"lineup"`
	Recompute usecase.RecomputeSummary `json:"recompute"`
}

type roundView struct {
	ID            int64      `json:"id"`
	CompetitionID int64      `json:"competition_id"`
	DayIndex      int        `json:"day_index"`
	Name          string     `json:"name"`
	LockAt        *time.Time `json:"lock_at"`
}

func toRoundView(item competition.Round) roundView {
	return roundView{
		ID:            item.ID,
		CompetitionID: item.CompetitionID,
		DayIndex:      item.DayIndex,
		Name:          item.Name,
		LockAt:        item.LockAt,
	}
}
