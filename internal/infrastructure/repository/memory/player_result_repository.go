package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
)

type PlayerResultRepository struct {
	store *Store
}

func (r *PlayerResultRepository) ListByRounds(_ context.Context, roundIDs []int64) ([]playerresult.PlayerResult, error) {
	if len(roundIDs) == 0 {
		return []playerresult.PlayerResult{}, nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]playerresult.PlayerResult, 0)
	for key, item := range r.store.data.results {
		if slices.Contains(roundIDs, key.roundID) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b playerresult.PlayerResult) int {
		return cmp.Or(cmp.Compare(a.RoundID, b.RoundID), strings.Compare(a.PlayerKey, b.PlayerKey))
	})
	return out, nil
}

func (r *PlayerResultRepository) Upsert(_ context.Context, items []playerresult.PlayerResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.data.results[resultKey{roundID: item.RoundID, player: item.PlayerKey}] = item
	}
	return nil
}

func (r *PlayerResultRepository) DeleteByRound(_ context.Context, roundID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var deleted int64
	for key := range r.store.data.results {
		if key.roundID == roundID {
			delete(r.store.data.results, key)
			deleted++
		}
	}
	return deleted, nil
}
