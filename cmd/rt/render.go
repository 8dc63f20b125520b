package main

import (
	"io"

	"github.com/signadot/restree/encode"
	"github.com/signadot/restree/format"
	"github.com/signadot/restree/ir"
)

// render encodes node to w, preceded by a document separator in yaml
// output when sep is set. A nil node is rendered as null.
func (cfg *MainConfig) render(w io.Writer, node *ir.Node, sep bool) error {
	if node == nil {
		node = ir.Null()
	}
	if sep && cfg.outFormat() == format.YAMLFormat {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	return encode.Encode(node, w, cfg.encOpts(w)...)
}
