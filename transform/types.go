package transform

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/restree/ir"
)

// sortKeys orders the entries of node for sequence output: numeric keys
// by value first, then the others by byte order.
func sortKeys(node *ir.Node) {
	kvs := node.KeyVals()
	slices.SortStableFunc(kvs, func(a, b ir.KeyVal) int {
		return compareKeys(a.Key, b.Key)
	})
	for i, kv := range kvs {
		node.Keys[i] = kv.Key
		node.Values[i] = kv.Val
	}
}

func compareKeys(a, b ir.Key) int {
	af, aNum := numericKey(a)
	bf, bNum := numericKey(b)
	switch {
	case aNum && bNum:
		return cmp.Compare(af, bf)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

// numericKey returns the value of a key that reads as a decimal number,
// allowing surrounding white space.
func numericKey(k ir.Key) (float64, bool) {
	if n, ok := k.Int(); ok {
		return float64(n), true
	}
	s := strings.TrimSpace(k.String())
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789+-.eE", r)
	}) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// armorKVP turns the entries of node into a list of items each holding
// the key under the kvp key name and the value under the value key.
// With KVPMerge, assoc values have the key name added to them instead.
func (s *Spec) armorKVP(node *ir.Node, meta *ir.Meta, types *TypesOptions, strip StripMode) *ir.Node {
	keyName := types.ArmorKVP
	if meta.KVPKeyName != "" {
		keyName = meta.KVPKeyName
	}
	nameKey := ir.StringKey(keyName)
	valKey := ir.StringKey("value")
	if s.BC != nil {
		valKey = star
	}
	items := make([]*ir.Node, 0, len(node.Values))
	for i, k := range node.Keys {
		v := node.Values[i]
		var item *ir.Node
		if meta.KVPMerge && v.Type.IsKeyed() && mergeShape(v) == ir.ShapeAssoc {
			item = &ir.Node{
				Type:   ir.MapType,
				Keys:   slices.Clone(v.Keys),
				Values: slices.Clone(v.Values),
				Meta:   v.Meta.Clone(),
			}
			if !item.Has(nameKey) {
				item.Set(nameKey, k.Node())
			}
			if strip == StripNone {
				_ = ir.SetPreserveKeysList(item, nameKey)
			}
		} else {
			item = ir.FromKeyVals([]ir.KeyVal{
				{Key: nameKey, Val: k.Node()},
				{Key: valKey, Val: v},
			})
			if strip == StripNone {
				item.Meta = &ir.Meta{
					PreserveKeys: []ir.Key{nameKey},
					Content:      valKey,
					Shape:        ir.ShapeAssoc,
				}
			}
		}
		if types.AssocAsObject {
			item.Type = ir.ObjectType
		}
		items = append(items, item)
	}
	return ir.FromSlice(items)
}

// mergeShape returns the shape a kvp value has for merging, or
// ir.ShapeUnset for scalars.
func mergeShape(v *ir.Node) ir.Shape {
	if !v.IsContainer() {
		return ir.ShapeUnset
	}
	if s := v.Meta.GetShape(); s != ir.ShapeUnset {
		return s
	}
	switch v.Type {
	case ir.ArrayType:
		return ir.ShapeArray
	case ir.ObjectType:
		return ir.ShapeAssoc
	}
	ints := make([]int64, 0, len(v.Keys))
	for _, k := range v.Keys {
		n, ok := k.Int()
		if !ok {
			return ir.ShapeAssoc
		}
		ints = append(ints, n)
	}
	slices.Sort(ints)
	for i, n := range ints {
		if n != int64(i) {
			return ir.ShapeAssoc
		}
	}
	return ir.ShapeArray
}
