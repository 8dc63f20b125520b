package gomap

import "github.com/signadot/restree/ir"

// FromIR converts a node to plain Go values: nil, bool, int64, float64,
// string, []any for sequences and mappings whose keys are 0..n-1 in
// order, and map[string]any for other mappings. Metadata is dropped.
func FromIR(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		return node.Float()
	case ir.StringType:
		return node.String
	case ir.ArrayType:
		return fromList(node)
	}
	if node.Type == ir.MapType && node.IsList() {
		return fromList(node)
	}
	res := make(map[string]any, len(node.Values))
	for i, v := range node.Values {
		res[node.Keys[i].String()] = FromIR(v)
	}
	return res
}

func fromList(node *ir.Node) []any {
	res := make([]any, len(node.Values))
	for i, v := range node.Values {
		res[i] = FromIR(v)
	}
	return res
}
