package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/parse"

	"github.com/scott-cotton/cli"
)

// getObjFile parses the document in path, or standard input for "-".
func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// inputs returns args, or "-" when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
