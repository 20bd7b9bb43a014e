package competition

import (
	"fmt"
	"strings"
	"time"
)

// Type selects how a competition is ranked.
type Type string

const (
	TypeH2H Type = "H2H"
	TypeF1  Type = "F1"
)

func (t Type) Valid() bool {
	return t == TypeH2H || t == TypeF1
}

// League groups competitions and carries the owning admin.
type League struct {
	ID          int64
	Name        string
	OwnerUserID int64
}

// Competition is a season-long contest inside a league.
// OwnerUserID is the owner of the parent league.
type Competition struct {
	ID          int64
	LeagueID    int64
	Name        string
	Type        Type
	TotalRounds int
	OwnerUserID int64
}

func (c Competition) OwnedBy(userID int64) bool {
	return userID > 0 && c.OwnerUserID == userID
}

// Round is one scoring period. DayIndex defines chronological order inside a competition.
type Round struct {
	ID            int64
	CompetitionID int64
	DayIndex      int
	Name          string
	LockAt        *time.Time
}

// IsLocked reports whether lineup edits are closed at now.
func (r Round) IsLocked(now time.Time) bool {
	return r.LockAt != nil && !now.Before(*r.LockAt)
}

// Team takes part in exactly one competition. OwnerUserID is zero for unowned teams.
type Team struct {
	ID            int64
	CompetitionID int64
	Name          string
	OwnerUserID   int64
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be positive")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}
