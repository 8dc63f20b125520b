package ir

import (
	"testing"
)

func TestStringKey(t *testing.T) {
	tests := []struct {
		in    string
		isInt bool
		num   int64
	}{
		{"0", true, 0},
		{"12", true, 12},
		{"-3", true, -3},
		{"-0", false, 0},
		{"012", false, 0},
		{"1.5", false, 0},
		{" 1", false, 0},
		{"+1", false, 0},
		{"", false, 0},
		{"foo", false, 0},
		{"9223372036854775807", true, 9223372036854775807},
		{"9223372036854775808", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k := StringKey(tt.in)
			n, ok := k.Int()
			if ok != tt.isInt {
				t.Fatalf("StringKey(%q).IsInt() = %v", tt.in, ok)
			}
			if ok && n != tt.num {
				t.Errorf("got %d want %d", n, tt.num)
			}
			if k.String() != tt.in {
				t.Errorf("String() = %q", k.String())
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		in   any
		want Key
		err  bool
	}{
		{nil, NoKey, false},
		{"a", StringKey("a"), false},
		{"7", IntKey(7), false},
		{7, IntKey(7), false},
		{uint8(3), IntKey(3), false},
		{int32(-2), IntKey(-2), false},
		{1.5, NoKey, true},
		{[]int{}, NoKey, true},
	}
	for _, tt := range tests {
		got, err := KeyOf(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("KeyOf(%#v) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("KeyOf(%#v) = %v want %v", tt.in, got, tt.want)
		}
	}
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		a, b Key
		want int
	}{
		{NoKey, IntKey(0), -1},
		{IntKey(2), IntKey(10), -1},
		{IntKey(10), StringKey("a"), -1},
		{StringKey("b"), StringKey("a"), 1},
		{StringKey("a"), StringKey("a"), 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFormatPath(t *testing.T) {
	if got := FormatPath(Path("limits", "foo", 3)); got != "limits.foo.3" {
		t.Errorf("got %q", got)
	}
	if got := FormatPath(nil); got != "" {
		t.Errorf("got %q", got)
	}
}
