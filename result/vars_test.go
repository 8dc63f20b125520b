package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/restree/ir"
)

func TestAddMetadataToResultVars(t *testing.T) {
	obj := m(nil, kv("p", s("q")))
	obj.Type = ir.ObjectType
	in := m(nil,
		kv("a", ir.FromInt(1)),
		kv("b", ir.FromBool(true)),
		kv("_type", s("data")),
		kv("list", ir.FromList([]*ir.Node{s("x"), ir.FromBool(false)})),
		kv("sparse", m(nil, kv(1, s("y")))),
		kv("obj", obj))
	want := m(&ir.Meta{
		Shape:          ir.ShapeKVP,
		KVPKeyName:     "key",
		PreserveKeys:   ir.Path("a", "b", "list", "sparse", "obj"),
		BCBools:        ir.Path("b"),
		IndexedTagName: "var",
	},
		kv("a", ir.FromInt(1)),
		kv("b", ir.FromBool(true)),
		kv("_type", s("data")),
		kv("list", m(&ir.Meta{
			Shape:          ir.ShapeArray,
			BCBools:        ir.Path(1),
			IndexedTagName: "value",
		}, kv(0, s("x")), kv(1, ir.FromBool(false)))),
		kv("sparse", m(&ir.Meta{
			Shape:          ir.ShapeKVP,
			KVPKeyName:     "key",
			PreserveKeys:   ir.Path(1),
			IndexedTagName: "var",
		}, kv(1, s("y")))),
		kv("obj", m(&ir.Meta{
			Shape:          ir.ShapeKVP,
			KVPKeyName:     "key",
			PreserveKeys:   ir.Path("p"),
			IndexedTagName: "var",
		}, kv("p", s("q")))))
	got := AddMetadataToResultVars(in, false)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if in.Meta != nil {
		t.Error("input modified")
	}
}

func TestAddMetadataToResultVarsForceHash(t *testing.T) {
	in := ir.FromList([]*ir.Node{s("x")})
	want := m(&ir.Meta{
		Shape:          ir.ShapeKVP,
		KVPKeyName:     "key",
		PreserveKeys:   ir.Path(0),
		IndexedTagName: "var",
	}, kv(0, s("x")))
	if diff := cmp.Diff(want, AddMetadataToResultVars(in, true), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := AddMetadataToResultVars(s("x"), true); got.String != "x" {
		t.Errorf("scalar: got %v", got)
	}
}
