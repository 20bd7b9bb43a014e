package playerresult

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerResult is the point value a player earned in one round.
// (RoundID, PlayerKey) is unique; PlayerKey is the normalized player name.
type PlayerResult struct {
	RoundID    int64
	PlayerKey  string
	PlayerName string
	Points     decimal.Decimal
	UpdatedAt  time.Time
}
