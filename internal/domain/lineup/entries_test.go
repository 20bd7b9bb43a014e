package lineup

import (
	"reflect"
	"testing"
)

func TestDecodeEntries_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{name: "flat array", payload: `["Alice"," bob ","ALICE"]`, want: []string{"Alice", " bob ", "ALICE"}},
		{name: "wrapped items", payload: `{"items":["carol","dave"],"formation":"x"}`, want: []string{"carol", "dave"}},
		{name: "mixed element types", payload: `["eve", null, 7, true]`, want: []string{"eve", "", "7", "true"}},
		{name: "object without items", payload: `{"players":["x"]}`, want: []string{}},
		{name: "items is not an array", payload: `{"items":"x"}`, want: []string{}},
		{name: "scalar", payload: `"alice"`, want: []string{}},
		{name: "null", payload: `null`, want: []string{}},
		{name: "empty", payload: ``, want: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeEntries([]byte(tc.payload))
			if err != nil {
				t.Fatalf("decode entries: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected entries: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestDecodeEntries_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := DecodeEntries([]byte(`["alice"`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestEncodeEntries_CanonicalArray(t *testing.T) {
	t.Parallel()

	data, err := EncodeEntries([]string{"Alice", "bob"})
	if err != nil {
		t.Fatalf("encode entries: %v", err)
	}
	if string(data) != `["Alice","bob"]` {
		t.Fatalf("unexpected canonical payload: %s", data)
	}

	empty, err := EncodeEntries(nil)
	if err != nil {
		t.Fatalf("encode nil entries: %v", err)
	}
	if string(empty) != `[]` {
		t.Fatalf("unexpected empty payload: %s", empty)
	}
}
