package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/restree/encode"
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/libdiff"
	"github.com/signadot/restree/transform"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	spec, err := cfg.spec("")
	if err != nil {
		return err
	}
	var docs [2]*ir.Node
	for i, arg := range args {
		doc, err := getObjFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if docs[i], err = transform.Apply(doc, spec); err != nil {
			return fmt.Errorf("error transforming %s: %w", arg, err)
		}
	}
	if cfg.Reverse {
		docs[0], docs[1] = docs[1], docs[0]
	}
	var differs bool
	if cfg.Lines {
		differs, err = diffLines(cfg, cc.Out, docs[0], docs[1])
	} else {
		differs, err = diffTrees(cfg, cc.Out, docs[0], docs[1])
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffTrees(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return false, nil
	}
	return true, cfg.render(w, libdiff.ToNode(changes), false)
}

func diffLines(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	var texts [2]string
	for i, doc := range []*ir.Node{a, b} {
		buf := bytes.NewBuffer(nil)
		err := encode.Encode(doc, buf,
			encode.EncodeFormat(cfg.outFormat()),
			encode.EncodeMeta(cfg.Meta))
		if err != nil {
			return false, err
		}
		texts[i] = buf.String()
	}
	if texts[0] == texts[1] {
		return false, nil
	}
	out := libdiff.Lines(texts[0], texts[1])
	if cfg.useColor(w) {
		out = colorLines(out)
	}
	_, err := io.WriteString(w, out)
	return true, err
}

// colorLines colors the removed and added lines of a line diff.
func colorLines(d string) string {
	del := color.New(color.FgRed).SprintFunc()
	ins := color.New(color.FgGreen).SprintFunc()
	buf := &strings.Builder{}
	for _, line := range strings.SplitAfter(d, "\n") {
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "- "):
			buf.WriteString(del(body))
		case strings.HasPrefix(line, "+ "):
			buf.WriteString(ins(body))
		default:
			buf.WriteString(body)
		}
		if body != line {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
