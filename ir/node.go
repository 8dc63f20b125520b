package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type Type

	// Keys[i] is the key of Values[i] for MapType and ObjectType nodes.
	Keys   []Key
	Values []*Node
	Meta   *Meta

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

type KeyVal struct {
	Key Key
	Val *Node
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Keys = nil
	dst.Values = nil
	dst.Meta = nil
	dst.Float64 = nil
	dst.Int64 = nil
	if y.Keys != nil {
		dst.Keys = slices.Clone(y.Keys)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Meta != nil {
		dst.Meta = y.Meta.Clone()
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// NewMap returns an empty mapping.
func NewMap() *Node {
	return &Node{Type: MapType}
}

// FromList returns a mapping with keys 0..len(vs)-1.
func FromList(vs []*Node) *Node {
	res := &Node{
		Type:   MapType,
		Keys:   make([]Key, len(vs)),
		Values: vs,
	}
	for i := range vs {
		res.Keys[i] = IntKey(int64(i))
	}
	return res
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: MapType}
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

// FromMap returns a mapping of m in sorted key order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: MapType}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Set(StringKey(k), m[k])
	}
	return res
}

// FromSlice returns a plain sequence.
func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

func (y *Node) WithMeta(m *Meta) *Node {
	y.Meta = m
	return y
}

func (y *Node) KeyVals() []KeyVal {
	res := make([]KeyVal, len(y.Values))
	for i, v := range y.Values {
		res[i].Val = v
		if i < len(y.Keys) {
			res[i].Key = y.Keys[i]
		}
	}
	return res
}

func (y *Node) IsContainer() bool {
	return !y.Type.IsLeaf()
}

// Float returns the numeric value of a NumberType node.
func (y *Node) Float() float64 {
	if y.Int64 != nil {
		return float64(*y.Int64)
	}
	if y.Float64 != nil {
		return *y.Float64
	}
	return 0
}

// EnsureMeta returns y.Meta, allocating it if needed.
func (y *Node) EnsureMeta() *Meta {
	if y.Meta == nil {
		y.Meta = &Meta{}
	}
	return y.Meta
}

// Visit calls f on y and each descendant in pre-order with the key path
// from y. If f returns false the children of that node are skipped.
func (y *Node) Visit(f func(path []Key, n *Node) bool) {
	y.visit(nil, f)
}

func (y *Node) visit(path []Key, f func([]Key, *Node) bool) {
	if !f(path, y) {
		return
	}
	for i, v := range y.Values {
		var k Key
		if i < len(y.Keys) {
			k = y.Keys[i]
		} else {
			k = IntKey(int64(i))
		}
		v.visit(append(path[:len(path):len(path)], k), f)
	}
}
