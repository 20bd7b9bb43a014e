package store

import (
	"context"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/match"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/standing"
)

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	Competitions competition.Repository
	Lineups      lineup.Repository
	Results      playerresult.Repository
	Matches      match.Repository
	Standings    standing.Repository
}

// UnitOfWork runs fn atomically. Calls sharing a lockKey are serialized, so a
// competition id as key makes read, derive and write of that competition atomic.
// Any error returned by fn rolls the whole unit back.
type UnitOfWork interface {
	Do(ctx context.Context, lockKey int64, fn func(ctx context.Context, repos Repositories) error) error
}
