package store

import (
	"reflect"
	"testing"
)

func TestStringListScan(t *testing.T) {
	cases := []struct {
		name string
		src  any
		want StringList
	}{
		{"null", nil, nil},
		{"json array", `["go","sql"]`, StringList{"go", "sql"}},
		{"json bytes", []byte(`["a"]`), StringList{"a"}},
		{"empty json array", `[]`, StringList{}},
		{"double encoded", `"[\"x\",\"y\"]"`, StringList{"x", "y"}},
		{"postgres literal", `{go,"a,b","quote \"q\"",NULL}`, StringList{"go", "a,b", `quote "q"`}},
		{"empty postgres literal", `{}`, StringList{}},
		{"driver strings", []string{"one"}, StringList{"one"}},
		{"driver values", []any{"one", nil, 2}, StringList{"one", "2"}},
		{"blank", "  ", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			if err := got.Scan(tc.src); err != nil {
				t.Fatalf("scan %v: %v", tc.src, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestStringListScanRejectsUnknownShapes(t *testing.T) {
	for _, src := range []any{42, "plain", `{"unterminated}`, `[1,`} {
		var got StringList
		if err := got.Scan(src); err == nil {
			t.Fatalf("expected error scanning %#v, got %#v", src, got)
		}
	}
}

func TestStringListValue(t *testing.T) {
	value, err := StringList(nil).Value()
	if err != nil || value != nil {
		t.Fatalf("expected nil value for nil list, got %v (%v)", value, err)
	}
	value, err = StringList{}.Value()
	if err != nil || value != "[]" {
		t.Fatalf("expected empty array, got %v (%v)", value, err)
	}
	value, err = StringList{"a", "b"}.Value()
	if err != nil || value != `["a","b"]` {
		t.Fatalf("unexpected encoded value %v (%v)", value, err)
	}
}

func TestStringListUnmarshalJSON(t *testing.T) {
	var got StringList
	if err := got.UnmarshalJSON([]byte(`"[\"p\"]"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, StringList{"p"}) {
		t.Fatalf("unexpected list %#v", got)
	}
	if err := got.UnmarshalJSON([]byte(`null`)); err != nil || got != nil {
		t.Fatalf("expected null to clear the list, got %#v (%v)", got, err)
	}
}
