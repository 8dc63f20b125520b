package main

import (
	"errors"
	"fmt"

	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/ir/kpath"
	"github.com/signadot/restree/transform"

	"github.com/scott-cotton/cli"
)

var errNotFound = errors.New("not found")

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path, err := kpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	spec, err := cfg.spec("")
	if err != nil {
		return err
	}
	for i, arg := range inputs(args[1:]) {
		doc, err := getObjFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		v, err := lookup(doc, path)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", args[0], arg, err)
		}
		res, err := transform.Apply(v, spec)
		if err != nil {
			return err
		}
		if err := cfg.render(cc.Out, res, i > 0); err != nil {
			return err
		}
	}
	return nil
}

// lookup returns the value at path under node.
func lookup(node *ir.Node, path []ir.Key) (*ir.Node, error) {
	for i, k := range path {
		if !node.IsContainer() {
			return nil, fmt.Errorf("%s is a %s", ir.FormatPath(path[:i]), node.Type)
		}
		if node.Type == ir.ArrayType {
			node = ir.FromList(node.Values)
		}
		next := node.Get(k)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", errNotFound, ir.FormatPath(path[:i+1]))
		}
		node = next
	}
	return node, nil
}
