package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/restree/format"
	"github.com/signadot/restree/ir"
)

type EncState struct {
	format  format.Format
	indent  int
	wire    bool
	meta    bool
	xmlRoot string

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. Output is terminated by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent:  2,
		xmlRoot: "api",
	}
	for _, opt := range opts {
		opt(es)
	}
	var err error
	switch es.format {
	case format.JSONFormat:
		err = es.encodeJSON(w, node, 0)
	case format.YAMLFormat:
		return es.encodeYAML(w, node)
	case format.XMLFormat:
		err = es.encodeXML(w, node)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
	if err != nil {
		return err
	}
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func (es *EncState) color(t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

// entries returns the key/value pairs of a container, numbering the
// values of plain sequences.
func entries(node *ir.Node) []ir.KeyVal {
	kvs := node.KeyVals()
	if node.Type == ir.ArrayType {
		for i := range kvs {
			kvs[i].Key = ir.IntKey(int64(i))
		}
	}
	return kvs
}

// scalarText renders a scalar for JSON and YAML.
func scalarText(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.NumberType:
		if node.Int64 != nil {
			return strconv.FormatInt(*node.Int64, 10), nil
		}
		f := node.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", fmt.Errorf("%w: non-finite number %v", ErrEncoding, f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case ir.StringType:
		return quoteJSON(node.String), nil
	}
	return "", fmt.Errorf("%w: %s is not a scalar", ErrEncoding, node.Type)
}
