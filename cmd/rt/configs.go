package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/restree/encode"
	"github.com/signadot/restree/format"
	"github.com/signadot/restree/parse"
	"github.com/signadot/restree/script"
	"github.com/signadot/restree/transform"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='encode with color'"`
	WireOut    bool   `cli:"name=wire desc='output in compact format'"`
	Meta       bool   `cli:"name=meta desc='output metadata as _-prefixed keys in json and yaml'"`
	NoValidate bool   `cli:"name=novalidate desc='keep input strings as they are'"`
	Root       string `cli:"name=root desc='name of the xml root element'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	X bool `cli:"name=x aliases=xml desc='output xml'"`

	Transform string `cli:"name=transform desc='output transform, such as bc;types=armor:name;strip=all'"`
	Expr      string `cli:"name=expr desc='expression replacing scalar values'"`
	Filter    string `cli:"name=filter desc='expression selecting mapping entries'"`
	Patch     string `cli:"name=patch desc='json patch file applied to the output'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	fmat := format.YAMLFormat
	if cfg.J {
		fmat = format.JSONFormat
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{
		parse.ParseFormat(fmat),
		parse.LiftMeta(true),
		parse.NoValidate(cfg.NoValidate),
	}
}

func (cfg *MainConfig) outFormat() format.Format {
	var fmat format.Format
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.X:
		fmat = format.XMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeMeta(cfg.Meta),
	}
	if cfg.Root != "" {
		res = append(res, encode.XMLRoot(cfg.Root))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: as requested by
// -color if given, otherwise when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// spec builds the output transform from -transform, falling back to def
// and then to $RESTREE_TRANSFORM, with the -filter, -expr and -patch
// customizations run in that order.
func (cfg *MainConfig) spec(def string) (*transform.Spec, error) {
	v := cfg.Transform
	if v == "" {
		v = def
	}
	if v == "" {
		v = script.DefaultTransform()
	}
	spec, err := transform.ParseSpec(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var customs []transform.CustomFunc
	if cfg.Filter != "" {
		f, err := transform.ExprFilter(cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: -filter: %w", cli.ErrUsage, err)
		}
		customs = append(customs, f)
	}
	if cfg.Expr != "" {
		f, err := transform.ExprCustom(cfg.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: -expr: %w", cli.ErrUsage, err)
		}
		customs = append(customs, f)
	}
	if cfg.Patch != "" {
		d, err := os.ReadFile(cfg.Patch)
		if err != nil {
			return nil, err
		}
		f, err := transform.JSONPatchCustom(d)
		if err != nil {
			return nil, fmt.Errorf("%w: -patch %s: %w", cli.ErrUsage, cfg.Patch, err)
		}
		customs = append(customs, f)
	}
	if len(customs) != 0 {
		spec.Custom = transform.Chain(customs...)
	}
	return spec, nil
}

type BuildConfig struct {
	*MainConfig
	MaxSize int    `cli:"name=max desc='size limit, overriding the scripts'"`
	Path    string `cli:"name=p aliases=path desc='path to output, overriding the scripts'"`
	Strict  bool   `cli:"name=strict desc='fail when values were dropped by the size limit'"`

	Build *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SizeConfig struct {
	*MainConfig

	Size *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Lines   bool `cli:"name=lines desc='diff the encoded documents line by line'"`

	Diff *cli.Command
}

type VarsConfig struct {
	*MainConfig
	Hash bool `cli:"name=hash desc='output sequences as key/value pairs too'"`

	Vars *cli.Command
}
