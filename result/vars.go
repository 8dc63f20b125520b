package result

import (
	"slices"

	"github.com/signadot/restree/ir"
)

var reservedVarKeys = []ir.Key{
	ir.StringKey(ir.WireShape),
	ir.StringKey(ir.WirePreserveKeys),
	ir.StringKey(ir.WireKVPKeyName),
	ir.StringKey(ir.WireIndexedTagName),
	ir.StringKey(ir.WireBCBools),
}

// AddMetadataToResultVars returns a copy of a free-form variable dump
// annotated for output. Hash-like mappings become kvp lists of "var"
// elements keyed by "key"; list-like mappings become arrays of "value"
// elements. Booleans are listed so backward compatible output keeps
// them. Objects, and mappings marked assoc, are always hash-like.
func AddMetadataToResultVars(vars *ir.Node, forceHash bool) *ir.Node {
	if !vars.IsContainer() {
		return vars.Clone()
	}
	res := &ir.Node{Type: ir.MapType}
	hash := forceHash
	var (
		bools  []ir.Key
		maxKey int64 = -1
	)
	for i, v := range vars.Values {
		k := ir.IntKey(int64(i))
		if vars.Type.IsKeyed() {
			k = vars.Keys[i]
		}
		switch {
		case v.IsContainer():
			v = AddMetadataToResultVars(v, isObjectLike(v))
		case v.Type == ir.BoolType:
			bools = append(bools, k)
			v = v.Clone()
		default:
			v = v.Clone()
		}
		if n, ok := k.Int(); !ok {
			hash = true
		} else if n > maxKey {
			maxKey = n
		}
		res.Set(k, v)
	}
	if !hash && maxKey != int64(len(vars.Values))-1 {
		hash = true
	}
	if hash {
		var keys []ir.Key
		for _, k := range res.Keys {
			if !slices.Contains(reservedVarKeys, k) {
				keys = append(keys, k)
			}
		}
		res.Meta = &ir.Meta{
			Shape:          ir.ShapeKVP,
			KVPKeyName:     "key",
			PreserveKeys:   keys,
			BCBools:        bools,
			IndexedTagName: "var",
		}
		return res
	}
	res.Meta = &ir.Meta{
		Shape:          ir.ShapeArray,
		BCBools:        bools,
		IndexedTagName: "value",
	}
	return res
}

func isObjectLike(n *ir.Node) bool {
	return n.Type == ir.ObjectType || n.Meta.GetShape() == ir.ShapeAssoc
}
