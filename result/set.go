package result

import (
	"fmt"
	"strings"

	"github.com/signadot/restree/gomap"
	"github.com/signadot/restree/ir"
)

// SetValue adds value to the mapping arr under name, or under the next
// positional key when name is ir.NoKey.
//
// An existing value is kept when it equals the new one; existing and new
// mappings with disjoint keys are merged. Anything else is an error
// unless Override is given, in which case the value is replaced in place.
// Override never permits merging mappings whose keys overlap.
//
// With AddOnTop, new keys go first and a positional append takes key 0,
// renumbering the other integer keys.
func SetValue(arr *ir.Node, name ir.Key, value any, flags Flag) error {
	node, err := toNode(value, flags)
	if err != nil {
		return err
	}
	return setNode(arr, name, node, flags)
}

func toNode(value any, flags Flag) (*ir.Node, error) {
	return gomap.ToIR(value, gomap.NoValidate(flags.has(NoValidate)))
}

func setNode(arr *ir.Node, name ir.Key, node *ir.Node, flags Flag) error {
	if !arr.Type.IsKeyed() {
		return fmt.Errorf("%w: cannot set a value in a %s", ErrInvalidPath, arr.Type)
	}
	if name.IsZero() {
		if flags.has(AddOnTop) {
			arr.Unshift(node)
		} else {
			arr.Append(node)
		}
		return nil
	}
	cur := arr.Get(name)
	if cur == nil || cur.Type == ir.NullType {
		if flags.has(AddOnTop) {
			arr.Prepend(name, node)
		} else {
			arr.Set(name, node)
		}
		return nil
	}
	if cur.IsContainer() && node.IsContainer() {
		return mergeInto(cur, node, name)
	}
	if flags.has(Override) {
		arr.Set(name, node)
		return nil
	}
	if cur.Type != node.Type || ir.Compare(cur, node) != 0 {
		return fmt.Errorf("%w: attempting to add element %s=%s, existing value is %s",
			ErrConflictingScalar, name, display(node), display(cur))
	}
	return nil
}

// mergeInto adds the entries of src to dst, failing without modifying dst
// when any key or metadata field is set on both sides.
func mergeInto(dst, src *ir.Node, name ir.Key) error {
	var conflicts []string
	for _, k := range src.Keys {
		if dst.Has(k) {
			conflicts = append(conflicts, k.String())
		}
	}
	conflicts = append(conflicts, dst.Meta.Conflicts(src.Meta)...)
	if len(conflicts) != 0 {
		return fmt.Errorf("%w (%s) when attempting to merge element %s",
			ErrConflictingMergeKeys, strings.Join(conflicts, ", "), name)
	}
	if dst.Type == ir.ArrayType {
		*dst = *ir.FromList(dst.Values).WithMeta(dst.Meta)
	}
	for i, k := range src.Keys {
		dst.Set(k, src.Values[i])
	}
	if !src.Meta.IsZero() {
		dst.EnsureMeta().Merge(src.Meta)
	}
	return nil
}

func display(n *ir.Node) string {
	if n.IsContainer() {
		return "Array"
	}
	return ir.ScalarString(n)
}

// UnsetValue removes name from the mapping arr, returning the removed
// value or nil if name was absent.
func UnsetValue(arr *ir.Node, name ir.Key) *ir.Node {
	if !arr.Type.IsKeyed() {
		return nil
	}
	return arr.Delete(name)
}

// SetContentValue designates name as the content key of arr and adds
// value under it.
func SetContentValue(arr *ir.Node, name ir.Key, value any, flags Flag) error {
	if name.IsZero() {
		return ErrUnnamedContent
	}
	node, err := toNode(value, flags)
	if err != nil {
		return err
	}
	if err := SetContentField(arr, name, flags); err != nil {
		return err
	}
	return setNode(arr, name, node, flags)
}

// SetContentField designates name as the content key of arr. Replacing a
// different content key that holds a value requires Override.
func SetContentField(arr *ir.Node, name ir.Key, flags Flag) error {
	if name.IsZero() {
		return ErrUnnamedContent
	}
	if !arr.IsContainer() {
		return fmt.Errorf("%w: %s", ir.ErrNotContainer, arr.Type)
	}
	cur := arr.Meta.GetContent()
	if !cur.IsZero() && cur != name && !flags.has(Override) {
		if v := arr.Get(cur); v != nil && v.Type != ir.NullType {
			return fmt.Errorf("%w: attempting to set content element as %s when %s is already set as the content element",
				ErrConflictingContent, name, cur)
		}
	}
	arr.EnsureMeta().Content = name
	return nil
}
