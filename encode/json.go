package encode

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/signadot/restree/ir"
)

// encodeJSON writes node as JSON. Mappings whose keys are 0..n-1 in
// order are written as arrays unless metadata is written with them.
func (es *EncState) encodeJSON(w io.Writer, node *ir.Node, depth int) error {
	if !node.IsContainer() {
		v, err := scalarText(node)
		if err != nil {
			return err
		}
		return writeString(w, es.color(node.Type, ValueColor, v))
	}
	kvs := entries(node)
	var metaKVs []ir.KeyVal
	if es.meta {
		metaKVs = node.Meta.Entries()
	}
	list := node.Type != ir.ObjectType && node.IsList() && len(metaKVs) == 0
	open, close := "{", "}"
	if list {
		open, close = "[", "]"
	}
	if len(kvs)+len(metaKVs) == 0 {
		return writeString(w, es.color(node.Type, SepColor, open+close))
	}
	if err := writeString(w, es.color(node.Type, SepColor, open)); err != nil {
		return err
	}
	n := len(kvs) + len(metaKVs)
	for i := range n {
		var (
			kv   ir.KeyVal
			attr = FieldColor
		)
		if i < len(kvs) {
			kv = kvs[i]
		} else {
			kv = metaKVs[i-len(kvs)]
			attr = MetaColor
		}
		if err := es.jsonNL(w, depth+1); err != nil {
			return err
		}
		if !list {
			field := es.color(node.Type, attr, quoteJSON(kv.Key.String()))
			sep := ":"
			if !es.wire {
				sep = ": "
			}
			if err := writeString(w, field+es.color(node.Type, SepColor, sep)); err != nil {
				return err
			}
		}
		if err := es.encodeJSON(w, kv.Val, depth+1); err != nil {
			return err
		}
		if i < n-1 {
			if err := writeString(w, es.color(node.Type, SepColor, ",")); err != nil {
				return err
			}
		}
	}
	if err := es.jsonNL(w, depth); err != nil {
		return err
	}
	return writeString(w, es.color(node.Type, SepColor, close))
}

func (es *EncState) jsonNL(w io.Writer, depth int) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*depth))
}

// quoteJSON returns v as a JSON string literal. Non-ASCII text is kept
// as is; control characters are escaped.
func quoteJSON(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		case '\u2028', '\u2029':
			d = append(d, fmt.Sprintf("\\u%04x", r)...)
		default:
			if unicode.IsControl(r) {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	return string(append(d, '"'))
}
