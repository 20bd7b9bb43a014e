package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

// importColumns is the fixed column order when the file has no header.
var importColumns = []string{"round_id", "team", "player", "points"}

var importHeaderAliases = map[string]string{
	"round":       "round_id",
	"round_id":    "round_id",
	"roundid":     "round_id",
	"team":        "team",
	"team_name":   "team",
	"teamname":    "team",
	"player":      "player",
	"player_name": "player",
	"playername":  "player",
	"points":      "points",
	"pts":         "points",
}

// parseImportFile reads delimited rows of round id, team, player and points.
// A header row is optional and may reorder the columns.
func parseImportFile(r io.Reader, delimiter string) ([]usecase.ImportRow, error) {
	comma, err := parseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows    []usecase.ImportRow
		columns map[string]int
		first   = true
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read import file: %w", err)
		}
		if isBlankRecord(record) {
			continue
		}
		if first {
			first = false
			if header, ok := parseImportHeader(record); ok {
				columns = header
				continue
			}
			columns = defaultImportColumns()
		}
		rows = append(rows, importRowFromRecord(record, columns))
	}
	return rows, nil
}

func parseDelimiter(raw string) (rune, error) {
	switch raw {
	case "", ",":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(raw) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character", usecase.ErrInvalidInput)
	}
	r, _ := utf8.DecodeRuneInString(raw)
	return r, nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func defaultImportColumns() map[string]int {
	columns := make(map[string]int, len(importColumns))
	for i, name := range importColumns {
		columns[name] = i
	}
	return columns
}

// parseImportHeader accepts the record as a header when every required column is named.
func parseImportHeader(record []string) (map[string]int, bool) {
	if _, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64); err == nil {
		return nil, false
	}
	columns := make(map[string]int, len(importColumns))
	for i, field := range record {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(field, "\ufeff")))
		key = strings.ReplaceAll(key, " ", "_")
		if name, ok := importHeaderAliases[key]; ok {
			if _, seen := columns[name]; !seen {
				columns[name] = i
			}
		}
	}
	if len(columns) != len(importColumns) {
		return nil, false
	}
	return columns, true
}

func importRowFromRecord(record []string, columns map[string]int) usecase.ImportRow {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	// An unparseable round id stays zero and is reported by the import preview.
	roundID, _ := strconv.ParseInt(field("round_id"), 10, 64)
	return usecase.ImportRow{
		RoundID:    roundID,
		TeamName:   field("team"),
		PlayerName: field("player"),
		Points:     field("points"),
	}
}
