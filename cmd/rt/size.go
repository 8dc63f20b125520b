package main

import (
	"fmt"

	"github.com/signadot/restree/result"

	"github.com/scott-cotton/cli"
)

func size(cfg *SizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Size.Parse(cc, args)
	if err != nil {
		cfg.Size.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	args = inputs(args)
	for _, arg := range args {
		doc, err := getObjFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		n := result.Size(doc)
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "%s: %d\n", arg, n)
			continue
		}
		fmt.Fprintf(cc.Out, "%d\n", n)
	}
	return nil
}
