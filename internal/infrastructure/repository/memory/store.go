package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/store"
)

// Seed is the initial content of a Store.
type Seed struct {
	Leagues      []competition.League
	Competitions []competition.Competition
	Rounds       []competition.Round
	Teams        []competition.Team
	Lineups      []lineup.Lineup
	Results      []playerresult.PlayerResult
	Matches      []match.Match
}

type resultKey struct {
	roundID int64
	player  string
}

type dataset struct {
	leagues      map[int64]competition.League
	competitions map[int64]competition.Competition
	rounds       map[int64]competition.Round
	teams        map[int64]competition.Team
	lineups      map[lineup.Key]lineup.Lineup
	results      map[resultKey]playerresult.PlayerResult
	matches      map[int64]match.Match
	nextMatchID  int64
	f1           map[int64][]standing.F1Standing
	f1Rounds     map[int64][]standing.F1RoundScore
	h2h          map[int64][]standing.H2HStanding
}

// Store keeps every table in process memory. Do runs units of work one at a
// time and restores a snapshot when fn fails.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data dataset
}

var _ store.UnitOfWork = (*Store)(nil)

func NewStore(seed Seed) *Store {
	data := dataset{
		leagues:      make(map[int64]competition.League, len(seed.Leagues)),
		competitions: make(map[int64]competition.Competition, len(seed.Competitions)),
		rounds:       make(map[int64]competition.Round, len(seed.Rounds)),
		teams:        make(map[int64]competition.Team, len(seed.Teams)),
		lineups:      make(map[lineup.Key]lineup.Lineup, len(seed.Lineups)),
		results:      make(map[resultKey]playerresult.PlayerResult, len(seed.Results)),
		matches:      make(map[int64]match.Match, len(seed.Matches)),
		f1:           make(map[int64][]standing.F1Standing),
		f1Rounds:     make(map[int64][]standing.F1RoundScore),
		h2h:          make(map[int64][]standing.H2HStanding),
	}
	for _, item := range seed.Leagues {
		data.leagues[item.ID] = item
	}
	for _, item := range seed.Competitions {
		data.competitions[item.ID] = item
	}
	for _, item := range seed.Rounds {
		data.rounds[item.ID] = cloneRound(item)
	}
	for _, item := range seed.Teams {
		data.teams[item.ID] = item
	}
	for _, item := range seed.Lineups {
		data.lineups[item.Key()] = cloneLineup(item)
	}
	for _, item := range seed.Results {
		data.results[resultKey{roundID: item.RoundID, player: item.PlayerKey}] = item
	}
	for _, item := range seed.Matches {
		data.matches[item.ID] = item
		data.nextMatchID = max(data.nextMatchID, item.ID)
	}
	return &Store{data: data}
}

// Repositories returns repositories reading and writing the store directly.
func (s *Store) Repositories() store.Repositories {
	return store.Repositories{
		Competitions: &CompetitionRepository{store: s},
		Lineups:      &LineupRepository{store: s},
		Results:      &PlayerResultRepository{store: s},
		Matches:      &MatchRepository{store: s},
		Standings:    &StandingRepository{store: s},
	}
}

// Do ignores lockKey: the store serializes every unit of work.
func (s *Store) Do(ctx context.Context, _ int64, fn func(ctx context.Context, repos store.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) snapshot() dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := dataset{
		leagues:      maps.Clone(s.data.leagues),
		competitions: maps.Clone(s.data.competitions),
		rounds:       make(map[int64]competition.Round, len(s.data.rounds)),
		teams:        maps.Clone(s.data.teams),
		lineups:      make(map[lineup.Key]lineup.Lineup, len(s.data.lineups)),
		results:      maps.Clone(s.data.results),
		matches:      maps.Clone(s.data.matches),
		nextMatchID:  s.data.nextMatchID,
		f1:           make(map[int64][]standing.F1Standing, len(s.data.f1)),
		f1Rounds:     make(map[int64][]standing.F1RoundScore, len(s.data.f1Rounds)),
		h2h:          make(map[int64][]standing.H2HStanding, len(s.data.h2h)),
	}
	for id, item := range s.data.rounds {
		out.rounds[id] = cloneRound(item)
	}
	for key, item := range s.data.lineups {
		out.lineups[key] = cloneLineup(item)
	}
	for id, rows := range s.data.f1 {
		out.f1[id] = append([]standing.F1Standing(nil), rows...)
	}
	for id, rows := range s.data.f1Rounds {
		out.f1Rounds[id] = append([]standing.F1RoundScore(nil), rows...)
	}
	for id, rows := range s.data.h2h {
		out.h2h[id] = append([]standing.H2HStanding(nil), rows...)
	}
	return out
}

func cloneRound(item competition.Round) competition.Round {
	if item.LockAt != nil {
		lockAt := *item.LockAt
		item.LockAt = &lockAt
	}
	return item
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.Entries = append([]string(nil), item.Entries...)
	return copied
}
