package gomap

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/restree/ir"

	"github.com/goccy/go-yaml"
)

type stringer struct{ v string }

func (s stringer) String() string { return s.v }

type serializable struct{ v any }

func (s *serializable) SerializeForResult() any { return s.v }

type page struct {
	Title   string `json:"title"`
	Length  int    `result:"field=len"`
	Hidden  string `json:"-"`
	Note    string `json:"note,omitempty"`
	private int
}

func TestToIRScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *ir.Node
	}{
		{"nil", nil, ir.Null()},
		{"string", "foo", ir.FromString("foo")},
		{"int", 42, ir.FromInt(42)},
		{"uint8", uint8(7), ir.FromInt(7)},
		{"float", 1.5, ir.FromFloat(1.5)},
		{"bool", true, ir.FromBool(true)},
		{"bytes", []byte("ab"), ir.FromString("ab")},
		{"stringer", stringer{"s"}, ir.FromString("s")},
		{"error", errors.New("oops"), ir.FromString("oops")},
		{"nil pointer", (*page)(nil), ir.Null()},
		{"invalid utf8", "\x80foobar\x80", ir.FromString("\ufffdfoobar\ufffd")},
		{"nfc", "a\u0301", ir.FromString("\u00e1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToIR(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestToIRContainers(t *testing.T) {
	got, err := ToIR(map[string]any{
		"b":  []any{1, "x"},
		"a":  page{Title: "T", Length: 3, Hidden: "h"},
		"10": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	pg := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.StringKey("title"), Val: ir.FromString("T")},
		{Key: ir.StringKey("len"), Val: ir.FromInt(3)},
	}).WithMeta(&ir.Meta{Shape: ir.ShapeAssoc})
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.IntKey(10), Val: ir.FromBool(true)},
		{Key: ir.StringKey("a"), Val: pg},
		{Key: ir.StringKey("b"), Val: ir.FromList([]*ir.Node{ir.FromInt(1), ir.FromString("x")})},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestToIRMapSlice(t *testing.T) {
	got, err := ToIR(yaml.MapSlice{
		{Key: "z", Value: 1},
		{Key: "a", Value: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.StringKey("z"), Val: ir.FromInt(1)},
		{Key: ir.StringKey("a"), Val: ir.FromInt(2)},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestToIRErrors(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tests := []struct {
		name string
		in   any
		err  error
		msg  string
	}{
		{"inf", math.Inf(1), ErrNonFinite, "cannot add non-finite floats to result"},
		{"nested nan", map[string]any{"a": []any{math.NaN()}}, ErrNonFinite, "at a[0]"},
		{"file", f, ErrUnsupportedValue, "cannot add resource (stream) to result"},
		{"reader", strings.NewReader("x"), ErrUnsupportedValue, "stream"},
		{"chan", make(chan int), ErrUnsupportedValue, "cannot add chan to result"},
		{"func", func() {}, ErrUnsupportedValue, "cannot add func to result"},
		{"bad map key", map[float64]int{1.5: 1}, ErrUnsupportedValue, "map keys"},
		{"serializer object", &serializable{v: &serializable{}},
			ErrUnserializable, "*gomap.serializable.SerializeForResult() returned an object of class *gomap.serializable"},
		{"serializer invalid", &serializable{v: []any{math.Inf(-1)}},
			ErrNonFinite, "*gomap.serializable.SerializeForResult() returned an invalid value: at [0]: cannot add non-finite floats to result"},
		{"node nan", ir.FromList([]*ir.Node{ir.FromFloat(math.NaN())}), ErrNonFinite, "at 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToIR(tt.in)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestSerializerIsUnserializable(t *testing.T) {
	_, err := ToIR(&serializable{v: []any{math.Inf(1)}})
	if !errors.Is(err, ErrUnserializable) {
		t.Errorf("got %v", err)
	}
}

func TestSerializer(t *testing.T) {
	got, err := ToIR(&serializable{v: map[string]any{"k": "v"}})
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromMap(map[string]*ir.Node{"k": ir.FromString("v")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNoValidate(t *testing.T) {
	got, err := ToIR(math.Inf(1), NoValidate(true))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(*got.Float64, 1) {
		t.Errorf("got %v", got.Float())
	}
	got, err = ToIR("\x80", NoValidate(true))
	if err != nil {
		t.Fatal(err)
	}
	if got.String != "\x80" {
		t.Errorf("string normalized: %q", got.String)
	}
	if _, err := ToIR(make(chan int), NoValidate(true)); err == nil {
		t.Error("chan accepted without validation")
	}
}

func TestBufferIsStringer(t *testing.T) {
	got, err := ToIR(bytes.NewBufferString("buf"))
	if err != nil {
		t.Fatal(err)
	}
	if got.String != "buf" {
		t.Errorf("got %q", got.String)
	}
}

func TestNodeInput(t *testing.T) {
	in := ir.FromSlice([]*ir.Node{ir.FromString("a\u0301")})
	got, err := ToIR(in)
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromList([]*ir.Node{ir.FromString("\u00e1")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if in.Values[0].String != "a\u0301" {
		t.Error("input modified")
	}
}

func TestCycle(t *testing.T) {
	type loop struct {
		Next *loop
	}
	l := &loop{}
	l.Next = l
	if _, err := ToIR(l); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("got %v", err)
	}
}
