package transform

import (
	"fmt"

	"github.com/signadot/restree/debug"
	"github.com/signadot/restree/ir"
)

var star = ir.StringKey("*")

// Apply returns a transformed copy of node; node itself is not modified.
// A nil spec returns a plain copy.
func Apply(node *ir.Node, spec *Spec) (*ir.Node, error) {
	if node == nil {
		return nil, nil
	}
	res := node.Clone()
	if spec == nil || !res.IsContainer() {
		return res, nil
	}
	return spec.apply(nil, res, spec.Strip)
}

// keyed turns sequences and objects back into mappings so every stage
// sees one representation.
func keyed(node *ir.Node) {
	switch node.Type {
	case ir.ArrayType:
		*node = *ir.FromList(node.Values).WithMeta(node.Meta)
	case ir.ObjectType:
		node.Type = ir.MapType
		if node.Meta.GetShape() == ir.ShapeUnset {
			node.EnsureMeta().Shape = ir.ShapeAssoc
		}
	}
}

func (s *Spec) apply(path []ir.Key, node *ir.Node, strip StripMode) (*ir.Node, error) {
	keyed(node)
	if s.Custom != nil {
		if err := s.Custom(path, node); err != nil {
			return nil, fmt.Errorf("%w at %q: %w", ErrCustom, ir.FormatPath(path), err)
		}
		if !node.IsContainer() {
			return node, nil
		}
		keyed(node)
	}
	meta := node.Meta
	if meta == nil {
		meta = &ir.Meta{}
	}
	node.Meta = nil

	types := s.Types
	if (s.BC != nil || types != nil) && meta.Shape == ir.ShapeBCKVP && meta.KVPKeyName == "" {
		return nil, fmt.Errorf("%w (path %q)", ErrInvalidKVPMetadata, ir.FormatPath(path))
	}

	bools := false
	if s.BC != nil {
		bools = !s.BC.NoBool
		types = s.applyBC(node, meta, types)
	}

	childStrip := strip
	if strip == StripBase {
		childStrip = StripNone
	}
	isArray, maxKey := true, int64(-1)
	keys, vals := node.Keys, node.Values
	node.Keys, node.Values = nil, nil
	for i, k := range keys {
		v := vals[i]
		if bools && v.Type == ir.BoolType && !meta.IsBCBool(k) {
			if !v.Bool {
				continue
			}
			v = ir.FromString("")
		}
		if n, ok := k.Int(); !ok || meta.Preserves(k) {
			isArray = false
		} else if n > maxKey {
			maxKey = n
		}
		if v.IsContainer() {
			cv, err := s.apply(append(path[:len(path):len(path)], k), v, childStrip)
			if err != nil {
				return nil, err
			}
			v = cv
		}
		node.Keys = append(node.Keys, k)
		node.Values = append(node.Values, v)
	}

	var keep *ir.Meta
	switch strip {
	case StripNone:
		keep = meta
	case StripBC:
		keep = &ir.Meta{IndexedTagName: meta.IndexedTagName, Subelements: meta.Subelements}
	}
	if types == nil {
		node.Meta = nonZero(keep)
		return node, nil
	}

	if maxKey != int64(len(node.Keys)-1) {
		isArray = false
	}
	shape := ir.ShapeAssoc
	if isArray {
		shape = ir.ShapeArray
	}
	if meta.Shape != ir.ShapeUnset && meta.Shape != ir.ShapeDefault {
		shape = meta.Shape
	}
	switch shape {
	case ir.ShapeKVP, ir.ShapeBCKVP:
		if types.ArmorKVP == "" {
			shape = ir.ShapeAssoc
		}
	case ir.ShapeBCArray:
		shape = ir.ShapeArray
	case ir.ShapeBCAssoc:
		shape = ir.ShapeAssoc
	}
	if debug.Transform() {
		debug.Logf("transform %s: %s\n", path, shape)
	}

	switch shape {
	case ir.ShapeAssoc:
		meta.Shape = ir.ShapeAssoc
		if types.AssocAsObject {
			node.Type = ir.ObjectType
		}
		node.Meta = nonZero(keep)
		return node, nil
	case ir.ShapeArray:
		sortKeys(node)
		meta.Shape = ir.ShapeArray
		res := ir.FromSlice(node.Values)
		res.Meta = nonZero(keep)
		return res, nil
	}
	meta.Shape = ir.ShapeArray
	res := s.armorKVP(node, meta, types, strip)
	res.Meta = nonZero(keep)
	return res, nil
}

// applyBC applies the legacy shims to node and returns the types options
// in effect for it.
func (s *Spec) applyBC(node *ir.Node, meta *ir.Meta, types *TypesOptions) *TypesOptions {
	if !s.BC.NoStar && !meta.Content.IsZero() && meta.Content != star {
		if v := node.Delete(meta.Content); v != nil {
			node.Set(star, v)
		}
		meta.Content = star
	}
	if !s.BC.NoSub {
		for _, k := range meta.BCSubelements {
			v := node.Get(k)
			if v == nil || v.Type == ir.NullType {
				continue
			}
			wrapped := ir.FromKeyVals([]ir.KeyVal{{Key: star, Val: v}})
			wrapped.Meta = &ir.Meta{Content: star, Shape: ir.ShapeAssoc}
			node.Set(k, wrapped)
		}
	}
	switch meta.Shape {
	case ir.ShapeBCArray, ir.ShapeBCAssoc:
		meta.Shape = ir.ShapeDefault
	case ir.ShapeBCKVP:
		t := TypesOptions{}
		if types != nil {
			t = *types
		}
		t.ArmorKVP = meta.KVPKeyName
		types = &t
	}
	return types
}

func nonZero(m *ir.Meta) *ir.Meta {
	if m.IsZero() {
		return nil
	}
	return m
}
