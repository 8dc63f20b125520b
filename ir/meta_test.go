package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetArrayType(t *testing.T) {
	n := FromMap(map[string]*Node{
		"a": NewMap(),
		"b": FromInt(1),
	})
	if err := SetArrayTypeRecursive(n, ShapeKVP, "key"); err != nil {
		t.Fatal(err)
	}
	for _, x := range []*Node{n, n.Get(StringKey("a"))} {
		if x.Meta.Shape != ShapeKVP || x.Meta.KVPKeyName != "key" {
			t.Errorf("meta %+v", x.Meta)
		}
	}
	if err := SetArrayType(n, Shape("bogus"), ""); !errors.Is(err, ErrBadShape) {
		t.Errorf("bogus shape: %v", err)
	}
	if err := SetArrayType(FromInt(1), ShapeArray, ""); !errors.Is(err, ErrNotContainer) {
		t.Errorf("scalar: %v", err)
	}
	if err := SetArrayType(n, ShapeArray, ""); err != nil {
		t.Fatal(err)
	}
	if n.Meta.KVPKeyName != "key" {
		t.Error("empty kvp key name must leave existing name")
	}
}

func TestKeyLists(t *testing.T) {
	n := NewMap()
	a, b, c := StringKey("a"), StringKey("b"), StringKey("c")
	SetSubelementsList(n, a, b)
	SetSubelementsList(n, b, c)
	if diff := cmp.Diff([]Key{a, b, c}, n.Meta.Subelements); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	UnsetSubelementsList(n, a, c)
	if diff := cmp.Diff([]Key{b}, n.Meta.Subelements); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	SetPreserveKeysList(n, IntKey(0), a)
	UnsetPreserveKeysList(n, IntKey(0))
	if !n.Meta.Preserves(a) || n.Meta.Preserves(IntKey(0)) {
		t.Errorf("preserve keys %v", n.Meta.PreserveKeys)
	}
}

func TestIndexedTagNameRecursive(t *testing.T) {
	n := FromList([]*Node{FromList([]*Node{FromInt(1)}), FromString("x")})
	if err := SetIndexedTagNameRecursive(n, "v"); err != nil {
		t.Fatal(err)
	}
	if n.Meta.IndexedTagName != "v" || n.Values[0].Meta.IndexedTagName != "v" {
		t.Error("tag name not set recursively")
	}
	if n.Values[1].Meta != nil {
		t.Error("scalar got metadata")
	}
}

func TestStripMetadata(t *testing.T) {
	n := FromMap(map[string]*Node{
		"a": FromList([]*Node{FromInt(1)}).WithMeta(&Meta{IndexedTagName: "x"}),
	}).WithMeta(&Meta{Shape: ShapeAssoc})

	once := StripMetadata(n)
	twice := StripMetadata(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("not idempotent (-once +twice):\n%s", diff)
	}
	if once.Meta != nil || once.Get(StringKey("a")).Meta != nil {
		t.Error("metadata left behind")
	}
	if n.Meta == nil {
		t.Error("input modified")
	}

	top, m := StripMetadataNonRecursive(n)
	if top.Meta != nil || m.Shape != ShapeAssoc {
		t.Errorf("top meta %+v", m)
	}
	if top.Get(StringKey("a")).Meta.IndexedTagName != "x" {
		t.Error("non-recursive strip removed child metadata")
	}
}

func TestMetaConflictsAndMerge(t *testing.T) {
	a := &Meta{Shape: ShapeAssoc, Subelements: []Key{StringKey("x")}}
	b := &Meta{Shape: ShapeArray, IndexedTagName: "i", Subelements: []Key{StringKey("y")}}
	if diff := cmp.Diff([]string{WireShape}, a.Conflicts(b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	b.Shape = ShapeAssoc
	if c := a.Conflicts(b); len(c) != 0 {
		t.Errorf("unexpected conflicts %v", c)
	}
	a.Merge(b)
	want := &Meta{
		Shape:          ShapeAssoc,
		IndexedTagName: "i",
		Subelements:    []Key{StringKey("x"), StringKey("y")},
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMetaWireRoundTrip(t *testing.T) {
	m := &Meta{
		Shape:        ShapeBCKVP,
		KVPKeyName:   "name",
		KVPMerge:     true,
		Content:      StringKey("text"),
		PreserveKeys: []Key{IntKey(0), StringKey("k")},
		BCBools:      []Key{StringKey("b")},
	}
	got := &Meta{}
	for _, kv := range m.Entries() {
		if err := got.SetWire(kv.Key.String(), kv.Val); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := got.SetWire("_nope", Null()); err == nil {
		t.Error("expected error for unknown name")
	}
	if err := got.SetWire(WireShape, FromString("tree")); !errors.Is(err, ErrBadShape) {
		t.Errorf("got %v", err)
	}
}
