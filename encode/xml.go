package encode

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/signadot/restree/ir"
)

var (
	xmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttr = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;",
		`"`, "&quot;", "'", "&#039;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;")
)

type xmlAttribute struct {
	name, value string
}

type xmlChild struct {
	name  string
	value *ir.Node
	attrs []xmlAttribute
}

// encodeXML writes node in the legacy XML layout: string-keyed scalars
// become attributes, string-keyed containers child elements, and
// integer-keyed entries repeated elements named by the IndexedTagName
// metadata ("_v" by default). The content key becomes the element text.
func (es *EncState) encodeXML(w io.Writer, node *ir.Node) error {
	b := &strings.Builder{}
	b.WriteString(es.color(ir.NullType, MetaColor, `<?xml version="1.0"?>`))
	if err := es.xmlElement(b, es.xmlRoot, node, -es.indent, nil); err != nil {
		return err
	}
	return writeString(w, b.String())
}

func (es *EncState) xmlIndent(indent int) string {
	if es.wire {
		return ""
	}
	return "\n" + strings.Repeat(" ", indent)
}

// xmlElement writes value as an element called name, or only its children
// when name is empty.
func (es *EncState) xmlElement(b *strings.Builder, name string, value *ir.Node, indent int, attrs []xmlAttribute) error {
	indent += es.indent
	ind := es.xmlIndent(indent)
	if !value.IsContainer() {
		if value.Type == ir.NumberType && !isFinite(value) {
			return fmt.Errorf("%w: non-finite number in element %s", ErrEncoding, name)
		}
		b.WriteString(ind)
		es.xmlTag(b, name, attrs, ir.ScalarString(value), true)
		return nil
	}

	meta := value.Meta
	contentKey := ir.StringKey("*")
	if c := meta.GetContent(); !c.IsZero() {
		contentKey = c
	}
	var preserve, subelementKeys, bcBools []ir.Key
	var itn string
	if meta != nil {
		preserve = meta.PreserveKeys
		subelementKeys = append(slices.Clone(meta.Subelements), meta.BCSubelements...)
		bcBools = meta.BCBools
		itn = meta.IndexedTagName
	}
	indexedTagName := "_v"
	if itn != "" {
		indexedTagName = mangleName(itn, preserve)
	}
	shape := meta.GetShape()
	indexAttrs := shape != ir.ShapeUnset && shape != ir.ShapeArray

	var (
		content     *ir.Node
		subelements []xmlChild
		indexed     []xmlChild
	)
	for _, kv := range entries(value) {
		k, v := kv.Key, kv.Val
		old := v
		if v.Type == ir.BoolType && !slices.Contains(bcBools, k) {
			v = ir.FromString(fmt.Sprint(v.Bool))
		}
		switch {
		case k == contentKey:
			if v.Type != ir.NullType {
				content = v
			}
		case k.IsInt():
			var ia []xmlAttribute
			if indexAttrs {
				ia = []xmlAttribute{{name: "_idx", value: k.String()}}
			}
			indexed = append(indexed, xmlChild{name: indexedTagName, value: v, attrs: ia})
		case v.IsContainer():
			subelements = append(subelements, xmlChild{name: mangleName(k.String(), preserve), value: v})
		case slices.Contains(subelementKeys, k) || name == "":
			subelements = append(subelements, xmlChild{name: mangleName(k.String(), preserve), value: wrapContent(v)})
		case old.Type == ir.BoolType:
			if old.Bool {
				attrs = append(attrs, xmlAttribute{name: mangleName(k.String(), preserve)})
			}
		case v.Type != ir.NullType:
			if v.Type == ir.NumberType && !isFinite(v) {
				return fmt.Errorf("%w: non-finite number in attribute %s", ErrEncoding, k)
			}
			attrs = append(attrs, xmlAttribute{name: mangleName(k.String(), preserve), value: ir.ScalarString(v)})
		}
	}

	if content != nil {
		if len(subelements) != 0 || len(indexed) != 0 {
			subelements = append(subelements, xmlChild{
				name:  mangleName(contentKey.String(), preserve),
				value: wrapContent(content),
			})
			content = nil
		} else if !content.IsContainer() {
			attrs = addAttr(attrs, xmlAttribute{name: "xml:space", value: "preserve"})
		}
	}

	switch {
	case content != nil && !content.IsContainer():
		b.WriteString(ind)
		es.xmlTag(b, name, attrs, ir.ScalarString(content), true)
	case content != nil:
		if name != "" {
			b.WriteString(ind)
			es.xmlTag(b, name, attrs, "", false)
		}
		if err := es.xmlElement(b, "", content, indent, nil); err != nil {
			return err
		}
		if name != "" {
			b.WriteString(ind)
			es.xmlClose(b, name)
		}
	case len(subelements) == 0 && len(indexed) == 0:
		if name != "" {
			b.WriteString(ind)
			es.xmlTag(b, name, attrs, "", true)
		}
	default:
		if name != "" {
			b.WriteString(ind)
			es.xmlTag(b, name, attrs, "", false)
		}
		for _, c := range append(subelements, indexed...) {
			if err := es.xmlElement(b, c.name, c.value, indent, c.attrs); err != nil {
				return err
			}
		}
		if name != "" {
			b.WriteString(ind)
			es.xmlClose(b, name)
		}
	}
	return nil
}

// xmlTag writes an element. With closed and empty text the tag is self
// closing; without closed only the start tag is written.
func (es *EncState) xmlTag(b *strings.Builder, name string, attrs []xmlAttribute, text string, closed bool) {
	b.WriteString(es.color(ir.MapType, TagColor, "<"+name))
	for _, a := range attrs {
		b.WriteString(" " + es.color(ir.MapType, FieldColor, a.name) + `="` +
			es.color(ir.StringType, ValueColor, xmlAttr.Replace(a.value)) + `"`)
	}
	switch {
	case !closed:
		b.WriteString(es.color(ir.MapType, TagColor, ">"))
	case text == "":
		b.WriteString(es.color(ir.MapType, TagColor, " />"))
	default:
		b.WriteString(es.color(ir.MapType, TagColor, ">"))
		b.WriteString(es.color(ir.StringType, ValueColor, xmlText.Replace(text)))
		es.xmlClose(b, name)
	}
}

func (es *EncState) xmlClose(b *strings.Builder, name string) {
	b.WriteString(es.color(ir.MapType, TagColor, "</"+name+">"))
}

func addAttr(attrs []xmlAttribute, a xmlAttribute) []xmlAttribute {
	for _, x := range attrs {
		if x.name == a.name {
			return attrs
		}
	}
	return append(attrs, a)
}

func wrapContent(v *ir.Node) *ir.Node {
	content := ir.StringKey("content")
	return ir.FromKeyVals([]ir.KeyVal{{Key: content, Val: v}}).
		WithMeta(&ir.Meta{Content: content, Shape: ir.ShapeAssoc})
}

func isFinite(n *ir.Node) bool {
	if n.Float64 == nil {
		return true
	}
	return !math.IsInf(*n.Float64, 0) && !math.IsNaN(*n.Float64)
}

// mangleName turns name into a valid XML element or attribute name,
// replacing each invalid character by _xxxx_ with its hex code point.
// Names in preserve are used as they are.
func mangleName(name string, preserve []ir.Key) string {
	if slices.Contains(preserve, ir.StringKey(name)) {
		return name
	}
	if name == "" {
		return "_"
	}
	b := &strings.Builder{}
	for i, r := range name {
		ok := isNameChar(r)
		if i == 0 {
			ok = isNameStartChar(r)
		}
		if ok {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(b, "_%04x_", r)
	}
	return b.String()
}

func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_',
		'A' <= r && r <= 'Z',
		'a' <= r && r <= 'z',
		0xC0 <= r && r <= 0xD6,
		0xD8 <= r && r <= 0xF6,
		0xF8 <= r && r <= 0x2FF,
		0x370 <= r && r <= 0x37D,
		0x37F <= r && r <= 0x1FFF,
		0x200C <= r && r <= 0x200D,
		0x2070 <= r && r <= 0x218F,
		0x2C00 <= r && r <= 0x2FEF,
		0x3001 <= r && r <= 0xD7FF,
		0xF900 <= r && r <= 0xFDCF,
		0xFDF0 <= r && r <= 0xFFFD,
		0x10000 <= r && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r),
		r == '-' || r == '.' || r == 0xB7,
		'0' <= r && r <= '9',
		0x300 <= r && r <= 0x36F,
		0x203F <= r && r <= 0x2040:
		return true
	}
	return false
}
