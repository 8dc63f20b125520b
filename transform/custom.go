package transform

import (
	"bytes"
	"fmt"

	"github.com/signadot/restree/encode"
	"github.com/signadot/restree/format"
	"github.com/signadot/restree/gomap"
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprCustom returns a CustomFunc which replaces every scalar value of
// every mapping with the result of the expression source. The expression
// sees the variables key, value and path (the mapping's path, dot
// separated).
//
//	ExprCustom(`type(value) == "string" ? upper(value) : value`)
func ExprCustom(source string) (CustomFunc, error) {
	program, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSpec, err)
	}
	return func(path []ir.Key, node *ir.Node) error {
		for i, v := range node.Values {
			if v.IsContainer() {
				continue
			}
			out, err := vm.Run(program, exprEnv(node.Keys[i].String(), v, path))
			if err != nil {
				return fmt.Errorf("evaluating at %s: %w", node.Keys[i], err)
			}
			res, err := gomap.ToIR(out)
			if err != nil {
				return err
			}
			node.Values[i] = res
		}
		return nil
	}, nil
}

func exprEnv(key string, value *ir.Node, path []ir.Key) map[string]any {
	var v any
	if value != nil {
		v = gomap.FromIR(value)
	}
	return map[string]any{
		"key":   key,
		"value": v,
		"path":  ir.FormatPath(path),
	}
}

// ExprFilter returns a CustomFunc which drops the entries of every
// mapping for which the boolean expression source is false. The
// expression sees the same variables as in ExprCustom, with container
// values given as generic maps and slices.
func ExprFilter(source string) (CustomFunc, error) {
	program, err := expr.Compile(source, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSpec, err)
	}
	return func(path []ir.Key, node *ir.Node) error {
		keys, vals := node.Keys, node.Values
		node.Keys, node.Values = nil, nil
		for i, k := range keys {
			out, err := vm.Run(program, exprEnv(k.String(), vals[i], path))
			if err != nil {
				return fmt.Errorf("evaluating at %s: %w", k, err)
			}
			if keep, _ := out.(bool); keep {
				node.Keys = append(node.Keys, k)
				node.Values = append(node.Values, vals[i])
			}
		}
		return nil
	}, nil
}

// JSONPatchCustom returns a CustomFunc which applies an RFC 6902 JSON
// patch to the root of the data. Metadata is visible to the patch under
// its wire names, such as "_type".
func JSONPatchCustom(patch []byte) (CustomFunc, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSpec, err)
	}
	return func(path []ir.Key, node *ir.Node) error {
		if len(path) != 0 {
			return nil
		}
		buf := bytes.NewBuffer(nil)
		err := encode.Encode(node, buf,
			encode.EncodeFormat(format.JSONFormat),
			encode.EncodeMeta(true),
			encode.EncodeWire(true))
		if err != nil {
			return err
		}
		out, err := ops.Apply(buf.Bytes())
		if err != nil {
			return err
		}
		res, err := parse.Parse(out, parse.ParseFormat(format.JSONFormat), parse.LiftMeta(true))
		if err != nil {
			return err
		}
		*node = *res
		return nil
	}, nil
}

// Chain returns a CustomFunc running fs in order, stopping when one
// fails or leaves a scalar in place of the node. Nil entries are skipped.
func Chain(fs ...CustomFunc) CustomFunc {
	return func(path []ir.Key, node *ir.Node) error {
		for _, f := range fs {
			if f == nil {
				continue
			}
			if err := f(path, node); err != nil {
				return err
			}
			if !node.IsContainer() {
				return nil
			}
		}
		return nil
	}
}
