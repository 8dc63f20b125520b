package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/result"
	"github.com/signadot/restree/transform"
)

func kv(k any, v *ir.Node) ir.KeyVal { return ir.KeyVal{Key: ir.Path(k)[0], Val: v} }

func m(kvs ...ir.KeyVal) *ir.Node { return ir.FromKeyVals(kvs) }

func arr(vs ...*ir.Node) *ir.Node { return ir.FromSlice(vs) }

func s(v string) *ir.Node { return ir.FromString(v) }

func i(v int64) *ir.Node { return ir.FromInt(v) }

const pagesScript = `
maxSize: 20
transform: types=armor:name;strip=all
path: query
ops:
- op: add
  path: query.pages
  name: Main
  value: {id: 1, ns: 0}
- op: add
  path: query.pages
  name: Talk
  value: {id: 2}
- op: type
  path: query.pages
  shape: kvp
- op: add
  path: query
  name: big
  value: xxxxxxxxxxxxxxxxxxxxxxxxx
- op: add
  path: query.list
  value: a
- op: add
  path: query.list
  value: b
  flags: [top]
- op: limit
  name: pages
  value: 10
`

func TestExec(t *testing.T) {
	sc, err := Decode([]byte(pagesScript))
	if err != nil {
		t.Fatal(err)
	}
	got, warnings, err := sc.Exec(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := m(
		kv("pages", arr(
			m(kv("name", s("Main")), kv("value", m(kv("id", i(1)), kv("ns", i(0))))),
			m(kv("name", s("Talk")), kv("value", m(kv("id", i(2))))))),
		kv("list", arr(s("b"), s("a"))))
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || warnings[0].Where() != "query.big" {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestExecSpecOverride(t *testing.T) {
	sc, err := Decode([]byte(pagesScript))
	if err != nil {
		t.Fatal(err)
	}
	sc.Path = "limits"
	got, _, err := sc.Exec(&transform.Spec{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m(kv("pages", i(10))), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRunMetadataOps(t *testing.T) {
	sc, err := Decode([]byte(`{"ops": [
		{"op": "add", "path": "a", "name": "x", "value": true},
		{"op": "add", "path": "a", "name": 0, "value": "zero"},
		{"op": "element", "path": "a", "tag": "item", "recursive": true},
		{"op": "preserve", "path": "a", "keys": ["x", 0]},
		{"op": "unpreserve", "path": "a", "keys": [0]},
		{"op": "subelements", "path": "a", "keys": ["x"]},
		{"op": "bcsubelements", "path": "a", "keys": ["y"]},
		{"op": "bcbools", "path": "a", "keys": ["x"]},
		{"op": "content", "path": "b", "name": "text", "value": "hi"},
		{"op": "field", "path": "b", "name": "other", "flags": ["override"]},
		{"op": "nosize"},
		{"op": "remove", "path": "c"},
		{"op": "size"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	tr := sc.NewTree()
	if err := sc.Run(tr); err != nil {
		t.Fatal(err)
	}
	got, err := tr.GetResultData(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := m(
		kv("a", m(kv("x", ir.FromBool(true)), kv(0, s("zero"))).WithMeta(&ir.Meta{
			IndexedTagName: "item",
			PreserveKeys:   ir.Path("x"),
			Subelements:    ir.Path("x"),
			BCSubelements:  ir.Path("y"),
			BCBools:        ir.Path("x"),
		})),
		kv("b", m(kv("text", s("hi"))).WithMeta(&ir.Meta{Content: ir.StringKey("other")})))
	want.Meta = &ir.Meta{Shape: ir.ShapeAssoc}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRunReset(t *testing.T) {
	sc, err := Decode([]byte("ops:\n- {op: add, name: a, value: 1}\n- {op: reset}\n- {op: add, name: b, value: 2}\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, _, err := sc.Exec(&transform.Spec{Strip: transform.StripAll}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m(kv("b", i(2))), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{
		"ops: [{op: frob}]",
		"ops: [{op: add, flags: [sideways]}]",
		"ops: [{op: type, shape: list}]",
		"ops: [{op: limit, name: 3}]",
		"opz: []",
		"ops: {}",
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := Decode([]byte(in)); !errors.Is(err, ErrScript) {
				t.Errorf("got %v, want %v", err, ErrScript)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	sc, err := Decode([]byte("ops:\n- {op: add, name: a, value: 1}\n- {op: add, name: a, value: 2}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := sc.Exec(nil, nil); !errors.Is(err, result.ErrConflictingScalar) {
		t.Errorf("got %v, want %v", err, result.ErrConflictingScalar)
	}
	sc, err = Decode([]byte("ops: [{op: limit, name: x, value: many}]"))
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Run(sc.NewTree()); err == nil {
		t.Error("non-integer limit accepted")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "s.json")
	if err := os.WriteFile(p, []byte(`{"transform": "strip=all", "ops": [{"op": "add", "name": "k", "value": "v"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	got, _, err := sc.Exec(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m(kv("k", s("v"))), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	x := filepath.Join(dir, "s.xml")
	if err := os.WriteFile(x, []byte("<api />"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(x); !errors.Is(err, ErrScript) {
		t.Errorf("got %v, want %v", err, ErrScript)
	}
}

func TestDefaultTransform(t *testing.T) {
	t.Setenv(TransformEnv, "strip=all")
	sc := &Script{}
	spec, err := sc.Spec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.Strip != transform.StripAll {
		t.Errorf("got %s", spec)
	}
	sc.Transform = "types"
	if spec, _ = sc.Spec(); spec.Strip != transform.StripNone || spec.Types == nil {
		t.Errorf("got %s", spec)
	}
}
