package encode

import "github.com/signadot/restree/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeMeta writes the metadata of JSON and YAML mappings as extra
// entries under their wire names, such as "_type". XML always uses
// metadata to decide its layout.
func EncodeMeta(v bool) EncodeOption {
	return func(es *EncState) { es.meta = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire selects compact output without line breaks.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// XMLRoot names the root element of XML output, "api" by default.
func XMLRoot(name string) EncodeOption {
	return func(es *EncState) { es.xmlRoot = name }
}
