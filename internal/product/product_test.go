package product

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseThicknesses(t *testing.T) {
	cases := map[string]Thicknesses{
		"12, 18, 25":   {"12", "18", "25"},
		"6,9,12,18":    {"6", "9", "12", "18"},
		"":             {},
		"  ,  , ":      {},
		" 19mm ,,25 ": {"19mm", "25"},
	}
	for in, want := range cases {
		if got := ParseThicknesses(in); !reflect.DeepEqual(got, want) {
			t.Errorf("ParseThicknesses(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestThicknessesJSON(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`{"thicknesses":"12, 18, 25"}`), &in); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if !reflect.DeepEqual(*in.Thicknesses, Thicknesses{"12", "18", "25"}) {
		t.Fatalf("string form decoded to %#v", *in.Thicknesses)
	}

	in = Input{}
	if err := json.Unmarshal([]byte(`{"thicknesses":[" 6 ","", "9"]}`), &in); err != nil {
		t.Fatalf("array form: %v", err)
	}
	if !reflect.DeepEqual(*in.Thicknesses, Thicknesses{"6", "9"}) {
		t.Fatalf("array form decoded to %#v", *in.Thicknesses)
	}

	in = Input{}
	if err := json.Unmarshal([]byte(`{"description":"x"}`), &in); err != nil {
		t.Fatalf("absent: %v", err)
	}
	if in.Thicknesses != nil {
		t.Fatalf("absent thicknesses must stay nil")
	}

	if err := json.Unmarshal([]byte(`{"thicknesses":12}`), &in); err == nil {
		t.Fatalf("expected error for numeric thicknesses")
	}

	b, _ := json.Marshal(Product{})
	if !json.Valid(b) || !strings.Contains(string(b), `"thicknesses":[]`) {
		t.Fatalf("nil thicknesses must encode as []: %s", b)
	}
}

