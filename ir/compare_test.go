package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Array < Map < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Array", FromString("a"), FromSlice(nil), -1},
		{"Array < Map", FromSlice(nil), NewMap(), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// Int and Float never compare equal
		{"Int < Float", FromInt(1), FromFloat(1.0), -1},
		{"Int < Int", FromInt(1), FromInt(2), -1},
		{"Float < Float", FromFloat(1.0), FromFloat(2.0), -1},

		{"String < String", FromString("a"), FromString("b"), -1},

		{"Short Map < Long Map",
			FromList([]*Node{FromInt(1)}),
			FromList([]*Node{FromInt(1), FromInt(2)}),
			-1},
		{"Map Key Comparison",
			FromKeyVals([]KeyVal{{Key: StringKey("a"), Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: StringKey("b"), Val: FromInt(1)}}),
			-1},
		{"Map Value Comparison",
			FromKeyVals([]KeyVal{{Key: StringKey("a"), Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: StringKey("a"), Val: FromInt(2)}}),
			-1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare(a, b) = %d, want %d", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %d, want %d", got, -tt.expected)
			}
		})
	}
}

func TestEqualMeta(t *testing.T) {
	a := NewMap().WithMeta(&Meta{Shape: ShapeAssoc})
	b := NewMap()
	if Equal(a, b) {
		t.Error("meta ignored")
	}
	b.Meta = &Meta{Shape: ShapeAssoc}
	if !Equal(a, b) {
		t.Error("equal nodes differ")
	}
	if !Equal(NewMap().WithMeta(&Meta{}), NewMap()) {
		t.Error("empty meta differs from nil")
	}
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		n    *Node
		want string
	}{
		{FromString("abc"), "abc"},
		{FromInt(-12), "-12"},
		{FromFloat(1.5), "1.5"},
		{FromBool(true), "1"},
		{FromBool(false), ""},
		{Null(), ""},
	}
	for _, tt := range tests {
		if got := ScalarString(tt.n); got != tt.want {
			t.Errorf("ScalarString(%v) = %q want %q", tt.n.Type, got, tt.want)
		}
	}
}
