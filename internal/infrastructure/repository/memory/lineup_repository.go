package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
)

type LineupRepository struct {
	store *Store
}

func (r *LineupRepository) GetByTeamAndRound(_ context.Context, teamID, roundID int64) (lineup.Lineup, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.data.lineups[lineup.Key{TeamID: teamID, RoundID: roundID}]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) ListByCompetition(_ context.Context, competitionID int64) ([]lineup.Lineup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for key, item := range r.store.data.lineups {
		team, ok := r.store.data.teams[key.TeamID]
		if !ok || team.CompetitionID != competitionID {
			continue
		}
		out = append(out, cloneLineup(item))
	}
	slices.SortFunc(out, func(a, b lineup.Lineup) int {
		return cmp.Or(cmp.Compare(a.RoundID, b.RoundID), cmp.Compare(a.TeamID, b.TeamID))
	})
	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.data.lineups[item.Key()] = cloneLineup(item)
	return nil
}
