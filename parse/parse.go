package parse

import (
	"fmt"
	"slices"

	"github.com/signadot/restree/gomap"
	"github.com/signadot/restree/ir"

	"github.com/goccy/go-yaml"
)

// Parse decodes a JSON or YAML document into a node, keeping the order
// of mapping entries. Sequences become mappings keyed 0..n-1.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if !o.format.Decodable() {
		return nil, fmt.Errorf("%w: cannot decode %s", ErrParse, o.format)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	node, err := gomap.ToIR(v, gomap.NoValidate(o.noValidate))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if o.liftMeta {
		if err := Lift(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Lift moves entries named like metadata into the Meta of each mapping
// under node.
func Lift(node *ir.Node) error {
	var err error
	node.Visit(func(path []ir.Key, n *ir.Node) bool {
		if err != nil || !n.Type.IsKeyed() {
			return err == nil
		}
		for i := 0; i < len(n.Keys); {
			k := n.Keys[i]
			if k.IsInt() || !ir.IsWireName(k.String()) {
				i++
				continue
			}
			if err = n.EnsureMeta().SetWire(k.String(), n.Values[i]); err != nil {
				err = fmt.Errorf("%w: at %s: %w", ErrParse, ir.FormatPath(path), err)
				return false
			}
			n.Keys = slices.Delete(n.Keys, i, i+1)
			n.Values = slices.Delete(n.Values, i, i+1)
		}
		return true
	})
	return err
}
