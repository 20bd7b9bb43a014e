package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/competition"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/lineup"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/playerresult"
	"github.com/ProjectFanta/fantasy-nba/internal/domain/scoring"
)

const (
	DemoOwnerUserID       int64 = 1
	DemoLeagueID          int64 = 1
	DemoH2HCompetitionID  int64 = 10
	DemoF1CompetitionID   int64 = 20
	demoH2HFirstRoundID   int64 = 100
	demoF1FirstRoundID    int64 = 200
	demoH2HRounds               = 6
	demoF1Rounds                = 3
	demoTeamOwnerBaseUser int64 = 100
)

// DemoSeed is a small league with one head-to-head and one F1 competition,
// used when no database is configured.
func DemoSeed() Seed {
	seed := Seed{
		Leagues: []competition.League{
			{ID: DemoLeagueID, Name: "Friday Night Hoops", OwnerUserID: DemoOwnerUserID},
		},
		Competitions: []competition.Competition{
			{ID: DemoH2HCompetitionID, LeagueID: DemoLeagueID, Name: "Regular Season", Type: competition.TypeH2H, TotalRounds: demoH2HRounds},
			{ID: DemoF1CompetitionID, LeagueID: DemoLeagueID, Name: "Playoff Sprint", Type: competition.TypeF1, TotalRounds: demoF1Rounds},
		},
	}

	start := time.Date(2026, 10, 20, 23, 0, 0, 0, time.UTC)
	for i := range demoH2HRounds {
		lockAt := start.AddDate(0, 0, 7*i)
		seed.Rounds = append(seed.Rounds, competition.Round{
			ID:            demoH2HFirstRoundID + int64(i),
			CompetitionID: DemoH2HCompetitionID,
			DayIndex:      i + 1,
			Name:          fmt.Sprintf("Week %d", i+1),
			LockAt:        &lockAt,
		})
	}
	for i := range demoF1Rounds {
		seed.Rounds = append(seed.Rounds, competition.Round{
			ID:            demoF1FirstRoundID + int64(i),
			CompetitionID: DemoF1CompetitionID,
			DayIndex:      i + 1,
			Name:          fmt.Sprintf("Sprint %d", i+1),
		})
	}

	names := []string{"Downtown Splash", "Paint Beasts", "Fast Breakers", "Glass Cleaners"}
	for i, name := range names {
		seed.Teams = append(seed.Teams,
			competition.Team{ID: int64(1000 + i), CompetitionID: DemoH2HCompetitionID, Name: name, OwnerUserID: demoTeamOwnerBaseUser + int64(i)},
			competition.Team{ID: int64(2000 + i), CompetitionID: DemoF1CompetitionID, Name: name, OwnerUserID: demoTeamOwnerBaseUser + int64(i)},
		)
	}

	rosters := [][]string{
		{"Stephen Curry", "Klay Thompson", "Damian Lillard"},
		{"Joel Embiid", "Nikola Jokic", "Anthony Davis"},
		{"Ja Morant", "De'Aaron Fox", "Tyrese Haliburton"},
		{"Rudy Gobert", "Domantas Sabonis", "Bam Adebayo"},
	}
	updatedAt := start.Add(-24 * time.Hour)
	for i, roster := range rosters {
		seed.Lineups = append(seed.Lineups,
			lineup.Lineup{TeamID: int64(1000 + i), RoundID: demoH2HFirstRoundID, Entries: roster, UpdatedAt: updatedAt},
			lineup.Lineup{TeamID: int64(2000 + i), RoundID: demoF1FirstRoundID, Entries: roster, UpdatedAt: updatedAt},
		)
	}

	points := map[string]string{
		"Stephen Curry":     "41.5",
		"Klay Thompson":     "22",
		"Damian Lillard":    "30.25",
		"Joel Embiid":       "48",
		"Nikola Jokic":      "55.5",
		"Anthony Davis":     "12",
		"Ja Morant":         "33",
		"De'Aaron Fox":      "27.75",
		"Tyrese Haliburton": "36",
		"Rudy Gobert":       "18.5",
		"Domantas Sabonis":  "44",
		"Bam Adebayo":       "29",
	}
	for _, roundID := range []int64{demoH2HFirstRoundID, demoF1FirstRoundID} {
		for name, value := range points {
			seed.Results = append(seed.Results, playerresult.PlayerResult{
				RoundID:    roundID,
				PlayerKey:  scoring.NormalizeName(name),
				PlayerName: name,
				Points:     decimal.RequireFromString(value),
				UpdatedAt:  start.Add(72 * time.Hour),
			})
		}
	}
	return seed
}
