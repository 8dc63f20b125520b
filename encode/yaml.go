package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/signadot/restree/ir"

	"github.com/goccy/go-yaml"
)

func (es *EncState) encodeYAML(w io.Writer, node *ir.Node) error {
	v, err := es.yamlValue(node)
	if err != nil {
		return err
	}
	opts := []yaml.EncodeOption{yaml.Indent(es.indent)}
	if es.wire {
		opts = append(opts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// yamlValue converts node to values goccy/go-yaml writes in order:
// mappings become yaml.MapSlice and lists []any.
func (es *EncState) yamlValue(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		f := node.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: non-finite number %v", ErrEncoding, f)
		}
		return f, nil
	case ir.StringType:
		return node.String, nil
	}
	var metaKVs []ir.KeyVal
	if es.meta {
		metaKVs = node.Meta.Entries()
	}
	if node.Type != ir.ObjectType && node.IsList() && len(metaKVs) == 0 {
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			yv, err := es.yamlValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yv
		}
		return res, nil
	}
	res := make(yaml.MapSlice, 0, len(node.Values)+len(metaKVs))
	for _, kv := range append(entries(node), metaKVs...) {
		yv, err := es.yamlValue(kv.Val)
		if err != nil {
			return nil, err
		}
		var yk any = kv.Key.String()
		if n, ok := kv.Key.Int(); ok {
			yk = n
		}
		res = append(res, yaml.MapItem{Key: yk, Value: yv})
	}
	return res, nil
}
