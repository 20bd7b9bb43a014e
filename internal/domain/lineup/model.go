package lineup

import "time"

// MaxEntries caps the number of player names a lineup may hold.
const MaxEntries = 12

// Lineup is a team's declared players for one round, keyed by (TeamID, RoundID).
// Entries keep the raw names as submitted.
type Lineup struct {
	TeamID    int64
	RoundID   int64
	Entries   []string
	UpdatedAt time.Time
}

type Key struct {
	TeamID  int64
	RoundID int64
}

func (l Lineup) Key() Key {
	return Key{TeamID: l.TeamID, RoundID: l.RoundID}
}
