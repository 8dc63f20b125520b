package main

import (
	"fmt"

	"github.com/signadot/restree/result"
	"github.com/signadot/restree/transform"

	"github.com/scott-cotton/cli"
)

func vars(cfg *VarsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Vars.Parse(cc, args)
	if err != nil {
		cfg.Vars.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	spec, err := cfg.spec("")
	if err != nil {
		return err
	}
	for i, arg := range inputs(args) {
		doc, err := getObjFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		res, err := transform.Apply(result.AddMetadataToResultVars(doc, cfg.Hash), spec)
		if err != nil {
			return err
		}
		if err := cfg.render(cc.Out, res, i > 0); err != nil {
			return err
		}
	}
	return nil
}
