package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
)

type CompetitionRepository struct {
	store *Store
}

func (r *CompetitionRepository) GetLeague(_ context.Context, leagueID int64) (competition.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.data.leagues[leagueID]
	return item, ok, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID int64) (competition.Competition, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.data.competitions[competitionID]
	if !ok {
		return competition.Competition{}, false, nil
	}
	if league, ok := r.store.data.leagues[item.LeagueID]; ok {
		item.OwnerUserID = league.OwnerUserID
	}
	return item, true, nil
}

func (r *CompetitionRepository) ListByLeague(_ context.Context, leagueID int64) ([]competition.Competition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	league, hasLeague := r.store.data.leagues[leagueID]
	out := make([]competition.Competition, 0)
	for _, item := range r.store.data.competitions {
		if item.LeagueID != leagueID {
			continue
		}
		if hasLeague {
			item.OwnerUserID = league.OwnerUserID
		}
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b competition.Competition) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *CompetitionRepository) ListRounds(_ context.Context, competitionID int64) ([]competition.Round, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]competition.Round, 0)
	for _, item := range r.store.data.rounds {
		if item.CompetitionID == competitionID {
			out = append(out, cloneRound(item))
		}
	}
	slices.SortFunc(out, func(a, b competition.Round) int {
		return cmp.Or(cmp.Compare(a.DayIndex, b.DayIndex), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *CompetitionRepository) GetRound(_ context.Context, roundID int64) (competition.Round, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.data.rounds[roundID]
	if !ok {
		return competition.Round{}, false, nil
	}
	return cloneRound(item), true, nil
}

func (r *CompetitionRepository) UpdateRoundLock(_ context.Context, roundID int64, lockAt *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.data.rounds[roundID]
	if !ok {
		return fmt.Errorf("round %d not found", roundID)
	}
	item.LockAt = lockAt
	r.store.data.rounds[roundID] = cloneRound(item)
	return nil
}

func (r *CompetitionRepository) ListTeams(_ context.Context, competitionID int64) ([]competition.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]competition.Team, 0)
	for _, item := range r.store.data.teams {
		if item.CompetitionID == competitionID {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b competition.Team) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *CompetitionRepository) GetTeam(_ context.Context, teamID int64) (competition.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.data.teams[teamID]
	return item, ok, nil
}
