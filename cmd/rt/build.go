package main

import (
	"fmt"

	"github.com/signadot/restree/result"
	"github.com/signadot/restree/script"

	"github.com/scott-cotton/cli"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		cfg.Build.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: build requires at least one script", cli.ErrUsage)
	}
	if cfg.MaxSize < 0 {
		return fmt.Errorf("%w: -max must not be negative", cli.ErrUsage)
	}
	reporter := result.LogReporter{Log: theLog}
	for i, arg := range args {
		sc, err := script.Load(arg)
		if err != nil {
			return err
		}
		if cfg.MaxSize != 0 {
			sc.MaxSize = &cfg.MaxSize
		}
		if cfg.Path != "" {
			sc.Path = cfg.Path
		}
		spec, err := cfg.spec(sc.Transform)
		if err != nil {
			return err
		}
		res, warnings, err := sc.Exec(spec, theLog.With("script", arg))
		if err != nil {
			return fmt.Errorf("error building %s: %w", arg, err)
		}
		for _, w := range warnings {
			reporter.AddWarning(w)
		}
		if cfg.Strict && len(warnings) != 0 {
			return fmt.Errorf("%s: %d values dropped by the size limit", arg, len(warnings))
		}
		if err := cfg.render(cc.Out, res, i > 0); err != nil {
			return err
		}
	}
	return nil
}
