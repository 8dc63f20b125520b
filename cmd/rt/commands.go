package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "rt").
		WithSynopsis("rt [opts] command [opts]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rtMain(cfg, cc, args)
		}).
		WithSubs(
			BuildCommand(cfg),
			GetCommand(cfg),
			SizeCommand(cfg),
			DiffCommand(cfg),
			VarsCommand(cfg))
}

const mainDescription = `rt builds and renders api result trees.

Output Transform

Results are rendered through a transform given by -transform, or by
$RESTREE_TRANSFORM when absent.  A transform is a list of ';' separated
stages:

  bc[=nobool,nostar,nosub]   legacy output shims
  types[=armor:<key>,object] apply array types
  strip[=all|base|bc]        drop metadata

-filter and -expr give expressions run on every mapping before the
stages, with the variables key, value and path.  -patch names a json
patch applied to the root, which sees metadata as _-prefixed keys.`

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [-max n] [-p path] [-strict] scripts").
		WithDescription(buildDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

const buildDescription = `build runs result building scripts and outputs the results.

A script is a yaml or json document of the form

  maxSize: 1000               # optional size limit
  transform: bc;types         # optional default output transform
  path: query                 # optional path of the output
  ops:
  - op: add
    path: query.pages
    name: Main Page
    value: {pageid: 1, ns: 0}
  - op: type
    path: query.pages
    shape: kvp
    kvpKeyName: title

Values dropped by the size limit are logged as warnings.`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <path> [files]").
		WithDescription("get and render elements of result documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SizeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Size, "size").
		WithAliases("s").
		WithSynopsis("size [files]").
		WithDescription("print the data size of result documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return size(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-lines] a b").
		WithDescription("diff result documents after the output transform").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func VarsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VarsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Vars, "vars").
		WithAliases("v").
		WithSynopsis("vars [-hash] [files]").
		WithDescription("render documents as result variables").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vars(cfg, cc, args)
		})
}
