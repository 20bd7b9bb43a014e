package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

func TestParseImportFile_WithHeaderInAnyOrder(t *testing.T) {
	t.Parallel()

	input := "Player Name;Points;Team;Round\n" +
		"Stephen Curry;41,5;Downtown Splash;100\n" +
		"\n" +
		"  Joel Embiid ; 48 ;Paint Beasts; 100\n"

	rows, err := parseImportFile(strings.NewReader(input), ";")
	require.NoError(t, err)
	assert.Equal(t, []usecase.ImportRow{
		{RoundID: 100, TeamName: "Downtown Splash", PlayerName: "Stephen Curry", Points: "41,5"},
		{RoundID: 100, TeamName: "Paint Beasts", PlayerName: "Joel Embiid", Points: "48"},
	}, rows)
}

func TestParseImportFile_WithoutHeaderUsesFixedColumns(t *testing.T) {
	t.Parallel()

	input := "100,Downtown Splash,Klay Thompson,22\n" +
		"abc,Downtown Splash,Damian Lillard\n"

	rows, err := parseImportFile(strings.NewReader(input), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, usecase.ImportRow{RoundID: 100, TeamName: "Downtown Splash", PlayerName: "Klay Thompson", Points: "22"}, rows[0])
	assert.Zero(t, rows[1].RoundID, "unparseable round ids are left for the preview to flag")
	assert.Empty(t, rows[1].Points)
}

func TestParseImportFile_TabDelimiterAndBOMHeader(t *testing.T) {
	t.Parallel()

	input := "\ufeffround_id\tteam_name\tplayer_name\tpts\n200\tGlass Cleaners\tBam Adebayo\t29\n"

	rows, err := parseImportFile(strings.NewReader(input), "tab")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bam Adebayo", rows[0].PlayerName)
	assert.Equal(t, int64(200), rows[0].RoundID)
}

func TestParseDelimiter_RejectsMultiCharacter(t *testing.T) {
	t.Parallel()

	_, err := parseDelimiter("::")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}
