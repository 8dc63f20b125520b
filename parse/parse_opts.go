package parse

import "github.com/signadot/restree/format"

type parseOpts struct {
	format     format.Format
	liftMeta   bool
	noValidate bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// LiftMeta moves mapping entries named like metadata, such as "_type"
// or "_element", into the Meta of their mapping.
func LiftMeta(v bool) ParseOption {
	return func(o *parseOpts) { o.liftMeta = v }
}

// NoValidate keeps strings as they are and accepts non-finite numbers.
func NoValidate(v bool) ParseOption {
	return func(o *parseOpts) { o.noValidate = v }
}
