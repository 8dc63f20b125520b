package encode

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/signadot/restree/format"
	"github.com/signadot/restree/ir"

	"github.com/fatih/color"
)

func kv(k any, v *ir.Node) ir.KeyVal { return ir.KeyVal{Key: ir.Path(k)[0], Val: v} }

func m(meta *ir.Meta, kvs ...ir.KeyVal) *ir.Node {
	return ir.FromKeyVals(kvs).WithMeta(meta)
}

func s(v string) *ir.Node { return ir.FromString(v) }

func encodeString(t *testing.T, node *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEncodeJSON(t *testing.T) {
	obj := m(nil, kv("k", s("v")))
	obj.Type = ir.ObjectType
	tests := []struct {
		name string
		in   *ir.Node
		opts []EncodeOption
		want string
	}{
		{
			name: "pretty",
			in: m(nil,
				kv("a", s("x")),
				kv("b", ir.FromList([]*ir.Node{ir.FromInt(1), ir.FromFloat(2)})),
				kv("c", m(nil))),
			want: "{\n  \"a\": \"x\",\n  \"b\": [\n    1,\n    2.0\n  ],\n  \"c\": []\n}\n",
		},
		{
			name: "wire",
			in: m(nil,
				kv("a", ir.Null()),
				kv("b", ir.FromBool(true)),
				kv("c", ir.FromSlice([]*ir.Node{ir.FromFloat(1.5), ir.FromFloat(1e21)}))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `{"a":null,"b":true,"c":[1.5,1e+21]}` + "\n",
		},
		{
			name: "object stays an object",
			in:   m(nil, kv(0, obj)),
			opts: []EncodeOption{EncodeWire(true)},
			want: `[{"k":"v"}]` + "\n",
		},
		{
			name: "sparse keys",
			in:   m(nil, kv(1, s("a")), kv(0, s("b"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `{"1":"a","0":"b"}` + "\n",
		},
		{
			name: "meta",
			in: m(&ir.Meta{Shape: ir.ShapeArray, PreserveKeys: ir.Path("x", 1)},
				kv(0, s("a"))),
			opts: []EncodeOption{EncodeWire(true), EncodeMeta(true)},
			want: `{"0":"a","_type":"array","_preservekeys":["x",1]}` + "\n",
		},
		{
			name: "meta hidden",
			in:   m(&ir.Meta{Shape: ir.ShapeArray}, kv(0, s("a"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `["a"]` + "\n",
		},
		{
			name: "indent",
			in:   m(nil, kv("a", ir.FromInt(1))),
			opts: []EncodeOption{EncodeIndent(4)},
			want: "{\n    \"a\": 1\n}\n",
		},
		{
			name: "scalar",
			in:   s("x"),
			want: "\"x\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeString(t, tt.in, tt.opts...); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestEncodeNonFinite(t *testing.T) {
	node := m(nil, kv("x", ir.FromFloat(math.Inf(1))))
	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			err := Encode(node, bytes.NewBuffer(nil), EncodeFormat(f))
			if !errors.Is(err, ErrEncoding) {
				t.Errorf("got %v, want %v", err, ErrEncoding)
			}
		})
	}
}

func TestQuoteJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{"a\"b\\c", `"a\"b\\c"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x01\x1f", `"\u0001\u001f"`},
		{"é☃", `"é☃"`},
		{"  ", `"  "`},
	}
	for _, tt := range tests {
		if got := quoteJSON(tt.in); got != tt.want {
			t.Errorf("quoteJSON(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEncodeYAML(t *testing.T) {
	in := m(nil, kv("a", s("x")), kv("n", ir.FromInt(1)))
	if got, want := encodeString(t, in, EncodeFormat(format.YAMLFormat)), "a: x\nn: 1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	in = m(&ir.Meta{KVPKeyName: "name"}, kv("a", s("x")))
	got := encodeString(t, in, EncodeFormat(format.YAMLFormat), EncodeMeta(true))
	if want := "a: x\n_kvpkeyname: name\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeXML(t *testing.T) {
	tests := []struct {
		name string
		in   *ir.Node
		opts []EncodeOption
		want string
	}{
		{
			name: "indexed",
			in:   m(&ir.Meta{IndexedTagName: "item"}, kv(0, s("a")), kv(1, s("b"))),
			want: "<?xml version=\"1.0\"?>\n<api>\n  <item>a</item>\n  <item>b</item>\n</api>\n",
		},
		{
			name: "default tag name",
			in:   m(nil, kv(0, s("a"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api><_v>a</_v></api>` + "\n",
		},
		{
			name: "index attributes",
			in:   m(&ir.Meta{Shape: ir.ShapeAssoc}, kv(0, s("a"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api><_v _idx="0">a</_v></api>` + "\n",
		},
		{
			name: "attributes",
			in: m(nil,
				kv("name", s("x&y")),
				kv("flag", ir.FromBool(true)),
				kv("off", ir.FromBool(false)),
				kv("nothing", ir.Null()),
				kv("num", ir.FromInt(3)),
				kv("sub", m(nil, kv("k", s("v\n"))))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api name="x&amp;y" flag="" num="3"><sub k="v&#10;" /></api>` + "\n",
		},
		{
			name: "content",
			in:   m(nil, kv("*", s("text <b>")), kv("lang", s("en"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api lang="en" xml:space="preserve">text &lt;b&gt;</api>` + "\n",
		},
		{
			name: "content with children",
			in: m(&ir.Meta{Content: ir.StringKey("text")},
				kv("text", s("hi")),
				kv("sub", m(nil))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api><sub /><text xml:space="preserve">hi</text></api>` + "\n",
		},
		{
			name: "subelements",
			in: m(&ir.Meta{Subelements: ir.Path("body")},
				kv("body", s("text")),
				kv("title", s("t"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api title="t"><body xml:space="preserve">text</body></api>` + "\n",
		},
		{
			name: "mangled names",
			in: m(&ir.Meta{PreserveKeys: ir.Path("2keep")},
				kv("a b", s("1")),
				kv("2keep", s("2"))),
			opts: []EncodeOption{EncodeWire(true)},
			want: `<?xml version="1.0"?><api a_0020_b="1" 2keep="2" />` + "\n",
		},
		{
			name: "root name",
			in:   m(nil),
			opts: []EncodeOption{EncodeWire(true), XMLRoot("result")},
			want: `<?xml version="1.0"?><result />` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]EncodeOption{EncodeFormat(format.XMLFormat)}, tt.opts...)
			if got := encodeString(t, tt.in, opts...); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestMangleName(t *testing.T) {
	tests := []struct {
		in       string
		preserve []ir.Key
		want     string
	}{
		{"ok-name.x", nil, "ok-name.x"},
		{"1abc", nil, "_0031_abc"},
		{"a b", nil, "a_0020_b"},
		{"", nil, "_"},
		{"1abc", ir.Path("1abc"), "1abc"},
		{"日本", nil, "日本"},
	}
	for _, tt := range tests {
		if got := mangleName(tt.in, tt.preserve); got != tt.want {
			t.Errorf("mangleName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColors(t *testing.T) {
	color.NoColor = true
	c := NewColors()
	if got := c.Color(ir.StringType, ValueColor, "100%"); got != "100%" {
		t.Errorf("got %q", got)
	}
	if got := c.Color(ir.NullType, FieldColor, "x"); got != "x" {
		t.Errorf("got %q", got)
	}
	got := encodeString(t, m(nil, kv("a", s("%d"))), EncodeWire(true), EncodeColors(c))
	if want := `{"a":"%d"}` + "\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatFromOpts(t *testing.T) {
	if f := FormatFromOpts(EncodeWire(true), EncodeFormat(format.XMLFormat)); f != format.XMLFormat {
		t.Errorf("got %s", f)
	}
}
