package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
)

type StandingRepository struct {
	store *Store
}

func (r *StandingRepository) ReplaceF1(_ context.Context, competitionID int64, rows []standing.F1Standing, rounds []standing.F1RoundScore) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.data.f1[competitionID] = append([]standing.F1Standing(nil), rows...)
	r.store.data.f1Rounds[competitionID] = append([]standing.F1RoundScore(nil), rounds...)
	return nil
}

func (r *StandingRepository) ReplaceH2H(_ context.Context, competitionID int64, rows []standing.H2HStanding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.data.h2h[competitionID] = append([]standing.H2HStanding(nil), rows...)
	return nil
}

func (r *StandingRepository) ListF1(_ context.Context, competitionID int64) ([]standing.F1Standing, error) {
	r.store.mu.RLock()
	out := append([]standing.F1Standing{}, r.store.data.f1[competitionID]...)
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b standing.F1Standing) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return out, nil
}

func (r *StandingRepository) ListF1RoundScores(_ context.Context, competitionID int64) ([]standing.F1RoundScore, error) {
	r.store.mu.RLock()
	out := append([]standing.F1RoundScore{}, r.store.data.f1Rounds[competitionID]...)
	rounds := r.store.data.rounds
	order := make(map[int64]int, len(out))
	for _, row := range out {
		order[row.RoundID] = rounds[row.RoundID].DayIndex
	}
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b standing.F1RoundScore) int {
		return cmp.Or(
			cmp.Compare(order[a.RoundID], order[b.RoundID]),
			cmp.Compare(a.RoundID, b.RoundID),
			cmp.Compare(a.Position, b.Position),
		)
	})
	return out, nil
}

func (r *StandingRepository) ListH2H(_ context.Context, competitionID int64) ([]standing.H2HStanding, error) {
	r.store.mu.RLock()
	out := append([]standing.H2HStanding{}, r.store.data.h2h[competitionID]...)
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b standing.H2HStanding) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return out, nil
}
