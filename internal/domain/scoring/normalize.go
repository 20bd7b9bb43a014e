package scoring

import "strings"

// NormalizeName canonicalizes a player or team name for matching.
// An empty result means the name is absent.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DistinctPlayers normalizes entries, drops absent names and keeps the first
// occurrence of each player.
func DistinctPlayers(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		key := NormalizeName(entry)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
