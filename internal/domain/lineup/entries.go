package lineup

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Stored lineups come in two shapes: a bare JSON array of names, or an object
// wrapping that array under "items". Both decode into storedEntries.
type entriesShape uint8

const (
	shapeUnknown entriesShape = iota
	shapeList
	shapeWrapped
)

type storedEntries struct {
	shape entriesShape
	items []any
}

func classifyEntries(raw any) storedEntries {
	switch v := raw.(type) {
	case []any:
		return storedEntries{shape: shapeList, items: v}
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return storedEntries{shape: shapeWrapped, items: items}
		}
	}
	return storedEntries{shape: shapeUnknown}
}

// ExtractEntries flattens a decoded lineup value into raw player names.
// Unknown shapes yield an empty slice; null elements become empty strings.
func ExtractEntries(raw any) []string {
	stored := classifyEntries(raw)
	if stored.shape == shapeUnknown {
		return []string{}
	}

	out := make([]string, 0, len(stored.items))
	for _, item := range stored.items {
		out = append(out, entryString(item))
	}
	return out
}

// DecodeEntries parses a stored JSON lineup payload. Empty and null payloads yield no entries.
func DecodeEntries(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []string{}, nil
	}

	var raw any
	if err := sonic.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode lineup entries: %w", err)
	}
	return ExtractEntries(raw), nil
}

// EncodeEntries renders entries in the canonical array shape.
func EncodeEntries(entries []string) ([]byte, error) {
	if entries == nil {
		entries = []string{}
	}
	data, err := sonic.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode lineup entries: %w", err)
	}
	return data, nil
}

func entryString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		encoded, err := sonic.MarshalString(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return encoded
	}
}
