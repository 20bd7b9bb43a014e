package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrNotEnoughTeams = errors.New("round robin needs at least 2 teams")
	ErrDuplicateTeam  = errors.New("duplicate team in round robin")
	ErrInvalidLegs    = errors.New("legs must be at least 1")
)

// InsufficientRoundsError reports how many rounds a schedule needs versus how many exist.
type InsufficientRoundsError struct {
	Needed    int
	Available int
}

func (e *InsufficientRoundsError) Error() string {
	return fmt.Sprintf("insufficient rounds: need %d, have %d", e.Needed, e.Available)
}

// Missing is the number of rounds to add to the calendar.
func (e *InsufficientRoundsError) Missing() int {
	return e.Needed - e.Available
}

// Fixture is one generated pairing.
type Fixture struct {
	RoundID    int64
	HomeTeamID int64
	AwayTeamID int64
}

// Plan is the output of RoundRobin.
type Plan struct {
	Fixtures     []Fixture
	RoundIDsUsed []int64
	HasBye       bool
}

// RoundsNeeded returns the number of rounds a round robin of teamCount teams
// takes over the given number of legs. Odd counts play one extra week for the bye.
func RoundsNeeded(teamCount, legs int) int {
	if teamCount < 2 || legs < 1 {
		return 0
	}
	if teamCount%2 == 1 {
		teamCount++
	}
	return (teamCount - 1) * legs
}

// RoundRobin pairs every team with every other team once per leg using the
// circle method. Rounds are consumed in the given order, one per week.
// Home and away alternate by week; each further leg mirrors the previous one.
func RoundRobin(teamIDs []int64, roundIDs []int64, legs int) (Plan, error) {
	if legs < 1 {
		return Plan{}, ErrInvalidLegs
	}
	if len(teamIDs) < 2 {
		return Plan{}, ErrNotEnoughTeams
	}
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if _, ok := seen[id]; ok {
			return Plan{}, fmt.Errorf("%w: %d", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
	}

	needed := RoundsNeeded(len(teamIDs), legs)
	if len(roundIDs) < needed {
		return Plan{}, &InsufficientRoundsError{Needed: needed, Available: len(roundIDs)}
	}

	// The arrangement holds indexes into teamIDs; index bye pads odd counts.
	bye := -1
	arrangement := make([]int, 0, len(teamIDs)+1)
	for i := range teamIDs {
		arrangement = append(arrangement, i)
	}
	if len(arrangement)%2 == 1 {
		bye = len(teamIDs)
		arrangement = append(arrangement, bye)
	}

	n := len(arrangement)
	weeks := n - 1
	half := n / 2

	type pairing struct{ home, away int }
	firstLeg := make([][]pairing, 0, weeks)
	for week := 0; week < weeks; week++ {
		pairs := make([]pairing, 0, half)
		for i := 0; i < half; i++ {
			a, b := arrangement[i], arrangement[n-1-i]
			if a == bye || b == bye {
				continue
			}
			if week%2 == 0 {
				pairs = append(pairs, pairing{home: a, away: b})
			} else {
				pairs = append(pairs, pairing{home: b, away: a})
			}
		}
		firstLeg = append(firstLeg, pairs)
		rotate(arrangement)
	}

	plan := Plan{
		Fixtures:     make([]Fixture, 0, legs*weeks*half),
		RoundIDsUsed: append([]int64(nil), roundIDs[:needed]...),
		HasBye:       bye >= 0,
	}
	for leg := 0; leg < legs; leg++ {
		for week, pairs := range firstLeg {
			roundID := roundIDs[leg*weeks+week]
			for _, p := range pairs {
				home, away := p.home, p.away
				if leg%2 == 1 {
					home, away = away, home
				}
				plan.Fixtures = append(plan.Fixtures, Fixture{
					RoundID:    roundID,
					HomeTeamID: teamIDs[home],
					AwayTeamID: teamIDs[away],
				})
			}
		}
	}
	return plan, nil
}

// rotate keeps element 0 fixed and moves the last element to position 1.
func rotate(arrangement []int) {
	if len(arrangement) < 3 {
		return
	}
	last := arrangement[len(arrangement)-1]
	copy(arrangement[2:], arrangement[1:len(arrangement)-1])
	arrangement[1] = last
}
