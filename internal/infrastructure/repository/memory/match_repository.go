package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competitionID int64) ([]match.Match, error) {
	return r.list(func(m match.Match) bool { return m.CompetitionID == competitionID }), nil
}

func (r *MatchRepository) ListByRound(_ context.Context, roundID int64) ([]match.Match, error) {
	return r.list(func(m match.Match) bool { return m.RoundID == roundID }), nil
}

func (r *MatchRepository) list(keep func(match.Match) bool) []match.Match {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.store.data.matches {
		if keep(item) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b match.Match) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (r *MatchRepository) DeleteByRounds(_ context.Context, roundIDs []int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var deleted int64
	for id, item := range r.store.data.matches {
		if slices.Contains(roundIDs, item.RoundID) {
			delete(r.store.data.matches, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MatchRepository) CreateMany(_ context.Context, items []match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.data.nextMatchID++
		item.ID = r.store.data.nextMatchID
		r.store.data.matches[item.ID] = item
	}
	return nil
}

func (r *MatchRepository) UpdateOutcomes(_ context.Context, items []match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		stored, ok := r.store.data.matches[item.ID]
		if !ok {
			return fmt.Errorf("match %d not found", item.ID)
		}
		stored.HomeScore = item.HomeScore
		stored.AwayScore = item.AwayScore
		stored.Result = item.Result
		r.store.data.matches[item.ID] = stored
	}
	return nil
}

func (r *MatchRepository) ResetRound(_ context.Context, roundID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var reset int64
	for id, item := range r.store.data.matches {
		if item.RoundID != roundID {
			continue
		}
		item.HomeScore = decimal.NullDecimal{}
		item.AwayScore = decimal.NullDecimal{}
		item.Result = match.ResultPending
		r.store.data.matches[id] = item
		reset++
	}
	return reset, nil
}
